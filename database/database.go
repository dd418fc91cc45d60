package database

import (
	"crm-app/controllers/idgen"
	"crm-app/migration"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Prepare registers the id callback, migrates the schema and seeds lookups.
func Prepare(db *gorm.DB, log *zap.Logger) error {
	if err := idgen.AutoGenerateSnowflakeID(db); err != nil {
		return err
	}
	if err := migration.Migrate(db); err != nil {
		return err
	}
	RunSeeders(db, log)
	return nil
}
