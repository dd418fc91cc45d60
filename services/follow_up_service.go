package services

import (
	"context"
	"crm-app/filters"
	"crm-app/models"
	"crm-app/repositories"
	"crm-app/types"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// NewFollowUp is the input of AddFollowUp. A zero ActionDate means today.
type NewFollowUp struct {
	InquiryID  types.SnowflakeID  `json:"inquiry_id" validate:"required"`
	Method     string             `json:"method" validate:"required,oneof=邮件 电话 WhatsApp 样品 报价 拜访 其他"`
	Content    string             `json:"content" validate:"required"`
	ActionDate types.Date         `json:"action_date"`
	NextAction *types.Date        `json:"next_action"`
	UserID     *types.SnowflakeID `json:"user_id"`
}

type FollowUpService struct {
	followUps *repositories.FollowUpRepository
	inquiries *repositories.InquiryRepository
	log       *zap.Logger
}

func NewFollowUpService(followUps *repositories.FollowUpRepository, inquiries *repositories.InquiryRepository, log *zap.Logger) *FollowUpService {
	return &FollowUpService{followUps: followUps, inquiries: inquiries, log: log}
}

// AddFollowUp appends one entry to an inquiry's timeline. Input is fully
// validated before the store is touched.
func (s *FollowUpService) AddFollowUp(ctx context.Context, in NewFollowUp) (*models.FollowUp, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.ActionDate.IsZero() {
		in.ActionDate = types.Today()
	}
	if in.NextAction != nil && in.NextAction.IsZero() {
		in.NextAction = nil
	}

	found, err := s.inquiries.Exists(ctx, in.InquiryID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, types.NewNotFoundError("inquiry", in.InquiryID)
	}

	followUp := models.FollowUp{
		InquiryID:  in.InquiryID,
		ActionDate: in.ActionDate,
		Method:     in.Method,
		Content:    in.Content,
		NextAction: in.NextAction,
		UserID:     in.UserID,
	}
	if err := s.followUps.Insert(ctx, &followUp); err != nil {
		s.log.Error("Failed to insert follow-up", zap.Stringer("inquiry_id", in.InquiryID), zap.Error(err))
		return nil, err
	}

	s.log.Debug("Follow-up added",
		zap.Stringer("id", followUp.ID),
		zap.Stringer("inquiry_id", followUp.InquiryID),
		zap.String("method", followUp.Method))
	return &followUp, nil
}

// ListForInquiry returns the timeline oldest first. Each call re-reads the
// store.
func (s *FollowUpService) ListForInquiry(ctx context.Context, inquiryID types.SnowflakeID) ([]models.FollowUp, error) {
	return s.list(ctx, inquiryID, false)
}

// ListForInquiryDesc is the newest-first view of the same timeline.
func (s *FollowUpService) ListForInquiryDesc(ctx context.Context, inquiryID types.SnowflakeID) ([]models.FollowUp, error) {
	return s.list(ctx, inquiryID, true)
}

func (s *FollowUpService) list(ctx context.Context, inquiryID types.SnowflakeID, desc bool) ([]models.FollowUp, error) {
	found, err := s.inquiries.Exists(ctx, inquiryID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, types.NewNotFoundError("inquiry", inquiryID)
	}
	return s.followUps.ListByInquiry(ctx, inquiryID, desc)
}

// ListForInquiries loads the timelines of several inquiries in one query,
// grouped by inquiry in the caller's order.
func (s *FollowUpService) ListForInquiries(ctx context.Context, inquiries []models.Inquiry) (map[types.SnowflakeID][]models.FollowUp, error) {
	ids := make([]types.SnowflakeID, 0, len(inquiries))
	for _, inq := range inquiries {
		ids = append(ids, inq.ID)
	}
	if len(ids) == 0 {
		return map[types.SnowflakeID][]models.FollowUp{}, nil
	}

	page, err := s.followUps.List(ctx, repositories.Criteria{}.WithIn("inquiry_id", ids).OrderBy("action_date", false))
	if err != nil {
		return nil, err
	}
	return filters.GroupFollowUpsByInquiry(inquiries, sortTimeline(page.Rows)), nil
}

// sortTimeline orders rows the way ListByInquiry does: action date, then
// creation time, then id.
func sortTimeline(rows []models.FollowUp) []models.FollowUp {
	slices.SortStableFunc(rows, func(a, b models.FollowUp) int {
		if c := a.ActionDate.Compare(b.ActionDate); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmpID(a.ID, b.ID)
	})
	return rows
}

func cmpID(a, b types.SnowflakeID) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
