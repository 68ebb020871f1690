package testutil

import (
	"context"

	"github.com/shuuuu87/DarkFocus/internal/entity"
	"github.com/shuuuu87/DarkFocus/internal/repository"
)

var (
	User1 = entity.User{
		Base: entity.Base{ID: "user1"},
		Name: "alice",
	}

	User2 = entity.User{
		Base: entity.Base{ID: "user2"},
		Name: "bob",
	}
)

// InsertFixtureUsers puts the two standard users into the database of ctx.
func InsertFixtureUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()

	for _, user := range []entity.User{User1, User2} {
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}
