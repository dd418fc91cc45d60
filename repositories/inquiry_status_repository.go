package repositories

import (
	"context"
	"crm-app/models"
	"crm-app/types"

	"gorm.io/gorm"
)

var inquiryStatusColumns = newColumnSet("id", "name", "description", "color", "color_index", "created_at")

type InquiryStatusRepository struct {
	DB *gorm.DB
}

func NewInquiryStatusRepository(DB *gorm.DB) *InquiryStatusRepository {
	return &InquiryStatusRepository{DB: DB}
}

func (r *InquiryStatusRepository) Insert(ctx context.Context, status *models.InquiryStatus) error {
	return types.NewStoreError("insert inquiry status", r.DB.WithContext(ctx).Create(status).Error)
}

func (r *InquiryStatusRepository) GetByID(ctx context.Context, id types.SnowflakeID) (*models.InquiryStatus, error) {
	return firstByID[models.InquiryStatus](ctx, r.DB, "inquiry_status", id, nil)
}

func (r *InquiryStatusRepository) Exists(ctx context.Context, id types.SnowflakeID) (bool, error) {
	return exists[models.InquiryStatus](ctx, r.DB, id)
}

// List defaults to the configured display order.
func (r *InquiryStatusRepository) List(ctx context.Context, c Criteria) (Page[models.InquiryStatus], error) {
	if c.Order == nil {
		c = c.OrderBy("color_index", false)
	}
	return listPage[models.InquiryStatus](ctx, r.DB, inquiryStatusColumns, c, nil)
}
