package migration

import (
	"context"

	"github.com/shuuuu87/DarkFocus/internal/entity"
	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
)

// migrate0000 creates the database with the latest schema.
func migrate0000(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Task{},
		&entity.Challenge{},
		&entity.DailyStats{},
		&entity.Migration{},
	)
}
