package repositories

import (
	"context"
	"crm-app/models"
	"crm-app/types"

	"gorm.io/gorm"
)

var customerColumns = newColumnSet(
	"id", "company_name", "contact_name", "email", "phone", "country",
	"source", "status", "created_at", "user_id",
)

type CustomerRepository struct {
	DB *gorm.DB
}

func NewCustomerRepository(DB *gorm.DB) *CustomerRepository {
	return &CustomerRepository{DB: DB}
}

// withUser joins the assigned salesperson in the same query.
func withUser(tx *gorm.DB) *gorm.DB {
	return tx.Joins("User")
}

func (r *CustomerRepository) Insert(ctx context.Context, customer *models.Customer) error {
	return types.NewStoreError("insert customer", r.DB.WithContext(ctx).Omit("User").Create(customer).Error)
}

func (r *CustomerRepository) GetByID(ctx context.Context, id types.SnowflakeID) (*models.Customer, error) {
	return firstByID[models.Customer](ctx, r.DB, "customer", id, withUser)
}

func (r *CustomerRepository) List(ctx context.Context, c Criteria) (Page[models.Customer], error) {
	return listPage[models.Customer](ctx, r.DB, customerColumns, c, withUser)
}

func (r *CustomerRepository) Exists(ctx context.Context, id types.SnowflakeID) (bool, error) {
	return exists[models.Customer](ctx, r.DB, id)
}

func (r *CustomerRepository) UpdateStatus(ctx context.Context, id types.SnowflakeID, status string) error {
	res := r.DB.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return types.NewStoreError("update customer status", res.Error)
	}
	if res.RowsAffected == 0 {
		// some drivers report zero rows when the value is unchanged
		found, err := exists[models.Customer](ctx, r.DB, id)
		if err != nil {
			return err
		}
		if !found {
			return types.NewNotFoundError("customer", id)
		}
	}
	return nil
}
