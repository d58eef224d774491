package migration

import (
	"context"
	"errors"
	"fmt"

	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
	"gorm.io/gorm"
)

// migrators holds every schema version in order. Append only.
var migrators = []func(context.Context) error{
	migrate0000,
}

// Migrate applies every schema version not yet recorded in the migrations
// table.
func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	for i, migrator := range migrators {
		version := fmt.Sprintf("%04d", i)

		var applied entity.Migration
		err := xcontext.DB(ctx).Take(&applied, "version=?", version).Error
		if err == nil {
			continue
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		xcontext.Logger(ctx).Infof("Applying migration %s", version)
		if err := migrator(ctx); err != nil {
			return err
		}

		err = xcontext.DB(ctx).Create(&entity.Migration{Version: version}).Error
		if err != nil {
			return err
		}
	}

	return nil
}
