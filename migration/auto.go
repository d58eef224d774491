package migration

import "context"

// AutoMigrate brings the schema to the latest version in one shot. When this
// migrator is called, no need to call other migrators.
func AutoMigrate(ctx context.Context) error {
	return migrate0000(ctx)
}
