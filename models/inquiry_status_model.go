package models

import (
	"crm-app/types"
	"time"
)

// InquiryStatus is the admin-maintained lookup an inquiry's status points at.
type InquiryStatus struct {
	ID          types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name        string            `json:"name" gorm:"size:64;not null"`
	Description string            `json:"description" gorm:"size:255"`
	Color       string            `json:"color" gorm:"size:32;not null"`
	ColorIndex  int               `json:"color_index"`
	CreatedAt   time.Time         `json:"created_at"`
}

func (InquiryStatus) TableName() string {
	return "inquiry_status"
}
