package repositories

import (
	"context"
	"crm-app/models"
	"crm-app/types"

	"gorm.io/gorm"
)

var userColumns = newColumnSet("id", "name", "email", "role", "created_at")

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(DB *gorm.DB) *UserRepository {
	return &UserRepository{DB: DB}
}

// Create user
func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	return types.NewStoreError("insert user", r.DB.WithContext(ctx).Create(user).Error)
}

// Get user by ID
func (r *UserRepository) GetByID(ctx context.Context, id types.SnowflakeID) (*models.User, error) {
	return firstByID[models.User](ctx, r.DB, "user", id, nil)
}

func (r *UserRepository) List(ctx context.Context, c Criteria) (Page[models.User], error) {
	return listPage[models.User](ctx, r.DB, userColumns, c, nil)
}

// UpdateRole is the only mutation a provisioned user allows.
func (r *UserRepository) UpdateRole(ctx context.Context, id types.SnowflakeID, role string) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return types.NewStoreError("update user role", res.Error)
	}
	if res.RowsAffected == 0 {
		// some drivers report zero rows when the value is unchanged
		found, err := exists[models.User](ctx, r.DB, id)
		if err != nil {
			return err
		}
		if !found {
			return types.NewNotFoundError("user", id)
		}
	}
	return nil
}
