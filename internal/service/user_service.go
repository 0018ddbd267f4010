package service

import (
	"context"
	"fmt"

	"waterbilling/internal/models"
	"waterbilling/internal/store"
	"waterbilling/internal/util"

	"go.uber.org/zap"
)

// UserService handles dashboard and portal account records. Credentials
// and session handling live with the external identity provider.
type UserService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(store *store.Store) *UserService {
	return &UserService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// CreateUserRequest represents a request to create a user record
type CreateUserRequest struct {
	ID         string  `json:"id" binding:"required"`
	Email      string  `json:"email" binding:"required"`
	Role       string  `json:"role" binding:"required"`
	CustomerID *string `json:"customer_id"`
}

// UpdateUserRequest represents a partial user update
type UpdateUserRequest struct {
	ID         string  `json:"id" binding:"required"`
	Email      *string `json:"email"`
	Role       *string `json:"role"`
	CustomerID *string `json:"customer_id"`
}

// ListUsers retrieves all users
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.GetUsers(ctx)
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUserByID(ctx, id)
}

// CreateUser persists a new user record
func (s *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	user := &models.User{
		ID:         sanitize(req.ID),
		Email:      sanitize(req.Email),
		Role:       sanitize(req.Role),
		CustomerID: sanitizePtr(req.CustomerID),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return user, nil
}

// UpdateUser applies the supplied fields onto the stored user
func (s *UserService) UpdateUser(ctx context.Context, req *UpdateUserRequest) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, sanitize(req.ID))
	if err != nil {
		return nil, err
	}

	updated := *user
	if v := sanitizePtr(req.Email); v != nil {
		updated.Email = *v
	}
	if v := sanitizePtr(req.Role); v != nil {
		updated.Role = *v
	}
	if req.CustomerID != nil {
		updated.CustomerID = sanitizePtr(req.CustomerID)
	}

	if err := s.store.UpdateUser(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &updated, nil
}

// DeleteUser deletes a user by ID
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.store.DeleteUser(ctx, sanitize(id))
}
