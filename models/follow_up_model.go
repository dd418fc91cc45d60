package models

import (
	"crm-app/types"
	"time"
)

// Follow-up methods. The set is closed and case-sensitive.
const (
	MethodEmail    = "邮件"
	MethodPhone    = "电话"
	MethodWhatsApp = "WhatsApp"
	MethodSample   = "样品"
	MethodQuote    = "报价"
	MethodVisit    = "拜访"
	MethodOther    = "其他"
)

var FollowUpMethods = []string{
	MethodEmail,
	MethodPhone,
	MethodWhatsApp,
	MethodSample,
	MethodQuote,
	MethodVisit,
	MethodOther,
}

func IsFollowUpMethod(method string) bool {
	for _, m := range FollowUpMethods {
		if m == method {
			return true
		}
	}
	return false
}

// FollowUp is append-only. There is no update or delete path.
type FollowUp struct {
	ID         types.SnowflakeID  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	InquiryID  types.SnowflakeID  `json:"inquiry_id" gorm:"index:idx_follow_ups_timeline,priority:1;not null"`
	ActionDate types.Date         `json:"action_date" gorm:"index:idx_follow_ups_timeline,priority:2;not null"`
	Method     string             `json:"method" gorm:"size:16;not null"`
	Content    string             `json:"content" gorm:"type:text;not null"`
	NextAction *types.Date        `json:"next_action,omitempty" gorm:"index"`
	CreatedAt  time.Time          `json:"created_at"`
	UserID     *types.SnowflakeID `json:"user_id,omitempty"`

	Inquiry *Inquiry `json:"-" gorm:"foreignKey:InquiryID;constraint:OnDelete:CASCADE"`
}

func (FollowUp) TableName() string {
	return "follow_ups"
}
