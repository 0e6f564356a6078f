package users

import (
	"context"
)

// Repository is the user directory. Create must refuse a duplicate email
// with common.ErrDuplicateEmail; GetByEmail reports a missing entry with
// common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
