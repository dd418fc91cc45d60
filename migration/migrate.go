package migration

import (
	"crm-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.InquiryStatus{},
		&models.Customer{},
		&models.Inquiry{},
		&models.FollowUp{},
	)
}
