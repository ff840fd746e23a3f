package identity

import (
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant for User
const AggregateTypeUser = "User"

// User domain event types
const (
	EventTypeUserRegistered    = "UserRegistered"
	EventTypeUserPasswordReset = "UserPasswordReset"
	EventTypeUserRoleChanged   = "UserRoleChanged"
)

// UserRegisteredEvent is published when a customer signs up
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, user.ID),
		Email:           user.Email,
	}
}

// UserPasswordResetEvent is published after a forgot-password reset
type UserPasswordResetEvent struct {
	shared.BaseDomainEvent
}

func NewUserPasswordResetEvent(user *User) *UserPasswordResetEvent {
	return &UserPasswordResetEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserPasswordReset, AggregateTypeUser, user.ID),
	}
}

// UserRoleChangedEvent is published when a user is promoted or demoted
type UserRoleChangedEvent struct {
	shared.BaseDomainEvent
	Role Role `json:"role"`
}

func NewUserRoleChangedEvent(user *User) *UserRoleChangedEvent {
	return &UserRoleChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRoleChanged, AggregateTypeUser, user.ID),
		Role:            user.Role,
	}
}
