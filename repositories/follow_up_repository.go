package repositories

import (
	"context"
	"crm-app/models"
	"crm-app/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var followUpColumns = newColumnSet(
	"id", "inquiry_id", "action_date", "method", "content", "next_action", "created_at", "user_id",
)

// FollowUpRepository exposes insert and reads only.
type FollowUpRepository struct {
	DB *gorm.DB
}

func NewFollowUpRepository(DB *gorm.DB) *FollowUpRepository {
	return &FollowUpRepository{DB: DB}
}

func (r *FollowUpRepository) Insert(ctx context.Context, followUp *models.FollowUp) error {
	return types.NewStoreError("insert follow-up", r.DB.WithContext(ctx).Omit("Inquiry").Create(followUp).Error)
}

func (r *FollowUpRepository) GetByID(ctx context.Context, id types.SnowflakeID) (*models.FollowUp, error) {
	return firstByID[models.FollowUp](ctx, r.DB, "follow_up", id, nil)
}

func (r *FollowUpRepository) List(ctx context.Context, c Criteria) (Page[models.FollowUp], error) {
	return listPage[models.FollowUp](ctx, r.DB, followUpColumns, c, nil)
}

// ListByInquiry returns the timeline of one inquiry ordered by action date,
// then creation time, then id.
func (r *FollowUpRepository) ListByInquiry(ctx context.Context, inquiryID types.SnowflakeID, desc bool) ([]models.FollowUp, error) {
	rows := make([]models.FollowUp, 0)
	err := r.DB.WithContext(ctx).
		Where("inquiry_id = ?", inquiryID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "action_date"}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc}).
		Find(&rows).Error
	if err != nil {
		return nil, types.NewStoreError("list follow-ups", err)
	}
	return rows, nil
}

// ListDue returns follow-ups whose next action falls on day.
func (r *FollowUpRepository) ListDue(ctx context.Context, day types.Date) ([]models.FollowUp, error) {
	page, err := r.List(ctx, Criteria{}.WithEq("next_action", day).OrderBy("inquiry_id", false))
	if err != nil {
		return nil, err
	}
	return page.Rows, nil
}
