package repositories

import (
	"context"
	"crm-app/models"
	"crm-app/types"

	"gorm.io/gorm"
)

var inquiryColumns = newColumnSet(
	"id", "customer_id", "product_name", "quantity", "message", "channel",
	"subject", "status", "created_at", "updated_at",
)

type InquiryRepository struct {
	DB *gorm.DB
}

func NewInquiryRepository(DB *gorm.DB) *InquiryRepository {
	return &InquiryRepository{DB: DB}
}

// withCustomerAndStatus expands inquiry → customer → user and inquiry →
// status in one joined select.
func withCustomerAndStatus(tx *gorm.DB) *gorm.DB {
	return tx.Joins("Customer").Joins("Customer.User").Joins("Status")
}

func (r *InquiryRepository) Insert(ctx context.Context, inquiry *models.Inquiry) error {
	return types.NewStoreError("insert inquiry", r.DB.WithContext(ctx).Omit("Customer", "Status").Create(inquiry).Error)
}

func (r *InquiryRepository) GetByID(ctx context.Context, id types.SnowflakeID) (*models.Inquiry, error) {
	return firstByID[models.Inquiry](ctx, r.DB, "inquiry", id, withCustomerAndStatus)
}

func (r *InquiryRepository) List(ctx context.Context, c Criteria) (Page[models.Inquiry], error) {
	return listPage[models.Inquiry](ctx, r.DB, inquiryColumns, c, withCustomerAndStatus)
}

func (r *InquiryRepository) Exists(ctx context.Context, id types.SnowflakeID) (bool, error) {
	return exists[models.Inquiry](ctx, r.DB, id)
}

// UpdateStatus writes the status reference and bumps updated_at. The caller
// resolves statusID first.
func (r *InquiryRepository) UpdateStatus(ctx context.Context, id types.SnowflakeID, statusID types.SnowflakeID) error {
	res := r.DB.WithContext(ctx).Model(&models.Inquiry{}).Where("id = ?", id).Update("status", statusID)
	if res.Error != nil {
		return types.NewStoreError("update inquiry status", res.Error)
	}
	if res.RowsAffected == 0 {
		found, err := exists[models.Inquiry](ctx, r.DB, id)
		if err != nil {
			return err
		}
		if !found {
			return types.NewNotFoundError("inquiry", id)
		}
	}
	return nil
}
