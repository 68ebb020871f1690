package entity

import (
	"context"

	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
)

// MigrateTable creates the latest schema directly, bypassing versioned
// migrations. Meant for tests and fresh local databases.
func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Task{},
		&Challenge{},
		&DailyStats{},
		&Migration{},
	)
}
