package identity

import "context"

// UserStore persists accounts. Implementations return sentinel.ErrNotFound
// for absent users and sentinel.ErrConflict for duplicate emails.
type UserStore interface {
	Create(ctx context.Context, user User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
}
