package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository stores accounts. Email arguments are normalized by the
// implementation, so lookups are case-insensitive.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
