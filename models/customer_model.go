package models

import (
	"crm-app/types"
	"time"
)

// Customer status values, stored verbatim.
const (
	CustomerStatusLead      = "潜在"
	CustomerStatusFollowing = "跟进中"
	CustomerStatusQuoting   = "报价中"
	CustomerStatusSampling  = "样品中"
	CustomerStatusWon       = "成交"
	CustomerStatusLost      = "流失"
)

var CustomerStatuses = []string{
	CustomerStatusLead,
	CustomerStatusFollowing,
	CustomerStatusQuoting,
	CustomerStatusSampling,
	CustomerStatusWon,
	CustomerStatusLost,
}

type Customer struct {
	ID          types.SnowflakeID  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CompanyName string             `json:"company_name" gorm:"size:255;not null"`
	ContactName string             `json:"contact_name" gorm:"size:128"`
	Email       *string            `json:"email,omitempty" gorm:"size:255"`
	Phone       *string            `json:"phone,omitempty" gorm:"size:64"`
	Country     string             `json:"country" gorm:"size:64;not null"`
	Source      *string            `json:"source,omitempty" gorm:"size:64"`
	Status      string             `json:"status" gorm:"size:16;not null;default:潜在"`
	CreatedAt   time.Time          `json:"created_at" gorm:"index"`
	UserID      *types.SnowflakeID `json:"user_id" gorm:"index"`
	// weak link: deleting the user only clears the reference
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

func (Customer) TableName() string {
	return "customers"
}
