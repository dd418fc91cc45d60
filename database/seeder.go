// database/seeder.go
package database

import (
	"crm-app/models"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB, log *zap.Logger) {
	SeedInquiryStatuses(db, log)
}

// DefaultInquiryStatuses is the starting workflow. Admins rename or extend
// it directly in the table afterwards.
var DefaultInquiryStatuses = []models.InquiryStatus{
	{Name: "新询盘", Description: "刚收到, 尚未回复", Color: "#3b82f6", ColorIndex: 1},
	{Name: "已回复", Description: "已首次回复客户", Color: "#06b6d4", ColorIndex: 2},
	{Name: "报价中", Description: "已发送报价", Color: "#a855f7", ColorIndex: 3},
	{Name: "样品中", Description: "样品寄送或测试中", Color: "#f97316", ColorIndex: 4},
	{Name: "成交", Description: "已下单", Color: "#22c55e", ColorIndex: 5},
	{Name: "关闭", Description: "无后续", Color: "#6b7280", ColorIndex: 6},
}

// SeedInquiryStatuses inserts the defaults by name, skipping existing rows.
func SeedInquiryStatuses(db *gorm.DB, log *zap.Logger) {
	for _, s := range DefaultInquiryStatuses {
		var existing models.InquiryStatus
		err := db.Where("name = ?", s.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("Failed to check inquiry status", zap.String("name", s.Name), zap.Error(err))
			continue
		}
		status := s
		if err := db.Create(&status).Error; err != nil {
			log.Error("Failed to seed inquiry status", zap.String("name", s.Name), zap.Error(err))
		}
	}
}
