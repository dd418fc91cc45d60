package models

import (
	"crm-app/types"
	"time"
)

type Inquiry struct {
	ID          types.SnowflakeID  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CustomerID  types.SnowflakeID  `json:"customer_id" gorm:"index;not null"`
	ProductName string             `json:"product_name" gorm:"size:255;not null"`
	Quantity    string             `json:"quantity" gorm:"size:64"`
	Message     *string            `json:"message,omitempty" gorm:"type:text"`
	Channel     *string            `json:"channel,omitempty" gorm:"size:64"`
	Subject     *string            `json:"subject,omitempty" gorm:"size:255"`
	StatusID    *types.SnowflakeID `json:"status_id" gorm:"column:status;index"`
	CreatedAt   time.Time          `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time          `json:"updated_at"`

	Customer *Customer      `json:"customer,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Status   *InquiryStatus `json:"status,omitempty" gorm:"foreignKey:StatusID"`
}

func (Inquiry) TableName() string {
	return "inquiries"
}
