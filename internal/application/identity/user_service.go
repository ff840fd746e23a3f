package identity

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	appevent "github.com/storefront/backend/internal/application/event"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

// UserService holds operator-level user management
type UserService struct {
	users  identity.UserRepository
	events shared.EventPublisher
	logger *zap.Logger
}

func NewUserService(users identity.UserRepository, events shared.EventPublisher, logger *zap.Logger) *UserService {
	return &UserService{users: users, events: events, logger: logger}
}

// SetRoleByEmail promotes or demotes the account registered under email
func (s *UserService) SetRoleByEmail(ctx context.Context, email string, role identity.Role) (*UserResponse, error) {
	user, err := s.users.FindByEmail(ctx, identity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := user.SetRole(role); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	appevent.PublishPending(ctx, s.events, s.logger, user)

	s.logger.Info("User role changed", zap.String("user_id", user.ID.String()), zap.Int("role", int(role)))
	resp := ToUserResponse(user)
	return &resp, nil
}

// Count returns the number of registered users
func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.users.Count(ctx)
}
