package services

import (
	"context"
	"crm-app/models"
	"crm-app/repositories"
	"crm-app/types"
	"strings"

	"go.uber.org/zap"
)

type NewUser struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=sales manager admin"`
}

type UserService struct {
	repo *repositories.UserRepository
	log  *zap.Logger
}

func NewUserService(repo *repositories.UserRepository, log *zap.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// Create user
func (s *UserService) CreateUser(ctx context.Context, in NewUser) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	user := models.User{Name: in.Name, Email: in.Email, Role: in.Role}
	if user.Role == "" {
		user.Role = models.RoleSales
	}
	if err := s.repo.Insert(ctx, &user); err != nil {
		s.log.Error("Failed to insert user", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// Get user by ID
func (s *UserService) GetUserByID(ctx context.Context, id types.SnowflakeID) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Get all users
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	page, err := s.repo.List(ctx, repositories.Criteria{}.OrderBy("name", false))
	if err != nil {
		return nil, err
	}
	return page.Rows, nil
}

func (s *UserService) UpdateRole(ctx context.Context, id types.SnowflakeID, role string) (*models.User, error) {
	if err := oneOf("role", role, models.UserRoles); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	s.log.Info("User role changed", zap.Stringer("user_id", id), zap.String("role", role))
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	page, err := s.repo.List(ctx, repositories.Criteria{}.WithEq("email", strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		return nil, err
	}
	if len(page.Rows) == 0 {
		return nil, &types.NotFoundError{Entity: "user", ID: email}
	}
	return &page.Rows[0], nil
}
