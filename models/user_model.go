package models

import (
	"crm-app/types"
	"time"
)

const (
	RoleSales   = "sales"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

var UserRoles = []string{RoleSales, RoleManager, RoleAdmin}

// User is provisioned outside the CRM. Only Role may change afterwards.
type User struct {
	ID        types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name      string            `json:"name" gorm:"size:128;not null"`
	Email     string            `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Role      string            `json:"role" gorm:"size:16;not null;default:sales"`
	CreatedAt time.Time         `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
