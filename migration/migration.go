package migration

import (
	"context"
	"errors"
	"fmt"

	"github.com/shuuuu87/DarkFocus/internal/entity"
	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
	"gorm.io/gorm"
)

// migrations run in order. Index i carries the schema from version i-1 to
// version i; migrate0000 always brings a fresh database to the latest
// schema directly.
var migrations = []func(context.Context) error{
	migrate0000,
}

// Migrate brings the database schema up to date and records the reached
// version, so already-applied steps never run twice.
func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	next := 0
	current := entity.Migration{}
	err := xcontext.DB(ctx).Order("version DESC").Take(&current).Error
	switch {
	case err == nil:
		fmt.Sscanf(current.Version, "%04d", &next)
		next++
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Fresh database; migrate0000 builds the latest schema, so skip the
		// incremental steps after it.
		if err := migrate0000(ctx); err != nil {
			return err
		}

		next = len(migrations)
	default:
		return err
	}

	for ; next < len(migrations); next++ {
		xcontext.Logger(ctx).Infof("Migrating to version %04d", next)
		if err := migrations[next](ctx); err != nil {
			return err
		}
	}

	version := fmt.Sprintf("%04d", len(migrations)-1)
	if current.Version == version {
		return nil
	}

	return xcontext.DB(ctx).Save(&entity.Migration{Version: version}).Error
}
