package services

import (
	"context"
	"crm-app/models"
	"crm-app/repositories"
	"crm-app/types"
	"crm-app/utils"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Mailer delivers one message. utils.SMTPMailer is the production one.
type Mailer interface {
	Send(mail utils.Mail) error
}

type ReminderResult struct {
	Date      types.Date `json:"date"`
	FollowUps int        `json:"follow_ups"`
	Emails    int        `json:"emails"`
	Skipped   int        `json:"skipped"`
	Failed    int        `json:"failed"`
}

type ReminderService struct {
	followUps *repositories.FollowUpRepository
	inquiries *repositories.InquiryRepository
	mailer    Mailer
	log       *zap.Logger
}

func NewReminderService(followUps *repositories.FollowUpRepository, inquiries *repositories.InquiryRepository, mailer Mailer, log *zap.Logger) *ReminderService {
	return &ReminderService{followUps: followUps, inquiries: inquiries, mailer: mailer, log: log}
}

type dueItem struct {
	followUp models.FollowUp
	inquiry  models.Inquiry
}

// SendDue mails every salesperson one digest of the follow-ups whose next
// action falls on day. Follow-ups whose customer has no owner with an email
// are skipped. A failed send is logged and counted, the rest still go out.
func (s *ReminderService) SendDue(ctx context.Context, day types.Date) (*ReminderResult, error) {
	result := &ReminderResult{Date: day}

	due, err := s.followUps.ListDue(ctx, day)
	if err != nil {
		return nil, err
	}
	result.FollowUps = len(due)
	if len(due) == 0 {
		return result, nil
	}

	ids := make([]types.SnowflakeID, 0, len(due))
	for _, f := range due {
		if !slices.Contains(ids, f.InquiryID) {
			ids = append(ids, f.InquiryID)
		}
	}
	page, err := s.inquiries.List(ctx, repositories.Criteria{}.WithIn("id", ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[types.SnowflakeID]models.Inquiry, len(page.Rows))
	for _, inq := range page.Rows {
		byID[inq.ID] = inq
	}

	byEmail := make(map[string][]dueItem)
	for _, f := range due {
		inq, ok := byID[f.InquiryID]
		if !ok || inq.Customer == nil || inq.Customer.User == nil || inq.Customer.User.Email == "" {
			result.Skipped++
			continue
		}
		email := inq.Customer.User.Email
		byEmail[email] = append(byEmail[email], dueItem{followUp: f, inquiry: inq})
	}

	emails := make([]string, 0, len(byEmail))
	for email := range byEmail {
		emails = append(emails, email)
	}
	slices.Sort(emails)

	for _, email := range emails {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		items := byEmail[email]
		mail := utils.Mail{
			To:      []string{email},
			Subject: fmt.Sprintf("跟进提醒 %s (%d)", day, len(items)),
			Body:    reminderBody(day, items),
		}
		if err := s.mailer.Send(mail); err != nil {
			result.Failed++
			s.log.Error("Failed to send reminder", zap.String("to", email), zap.Error(err))
			continue
		}
		result.Emails++
		s.log.Info("Reminder sent", zap.String("to", email), zap.Int("items", len(items)))
	}
	return result, nil
}

func reminderBody(day types.Date, items []dueItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>以下询盘的下一步行动日期为 %s:</p>", day)
	b.WriteString(`<table border="1" cellpadding="4" cellspacing="0">`)
	b.WriteString("<tr><th>客户</th><th>产品</th><th>上次跟进</th><th>方式</th><th>内容</th></tr>")
	for _, it := range items {
		company := ""
		if it.inquiry.Customer != nil {
			company = it.inquiry.Customer.CompanyName
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(company),
			html.EscapeString(it.inquiry.ProductName),
			it.followUp.ActionDate,
			html.EscapeString(it.followUp.Method),
			html.EscapeString(it.followUp.Content),
		)
	}
	b.WriteString("</table>")
	return b.String()
}
