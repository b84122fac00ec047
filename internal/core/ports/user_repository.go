package ports

import (
	"context"

	"github.com/ratehub/store-rating-api/internal/core/domain"
)

// StoreListFilter narrows and orders store listings. Filter strings match as
// case-insensitive substrings; empty strings mean "no filter".
type StoreListFilter struct {
	Name    string
	Email   string
	Address string
	Sort    Sort
}

// UserListFilter narrows and orders the admin user listing. Role, when set,
// matches exactly.
type UserListFilter struct {
	Name    string
	Email   string
	Address string
	Role    string
	Sort    Sort
}

// StoreWithRating is the admin view of a store: identity plus the read-time
// average of all its ratings. Rating is nil when the store has none.
type StoreWithRating struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Address string   `json:"address"`
	Rating  *float64 `json:"rating"`
}

// UserWithRating is the admin view of any user. Rating is only populated for
// rows with role "store".
type UserWithRating struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Address string   `json:"address"`
	Role    string   `json:"role"`
	Rating  *float64 `json:"rating"`
}

// UserRepository is the persistence boundary for the users table (which holds
// both accounts and stores).
type UserRepository interface {
	// Create inserts the user and returns its generated id. Returns
	// domain.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *domain.User) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	ListUsers(ctx context.Context, filter UserListFilter) ([]UserWithRating, error)
	ListStores(ctx context.Context, filter StoreListFilter) ([]StoreWithRating, error)
	CountUsers(ctx context.Context) (int64, error)
	CountStores(ctx context.Context) (int64, error)
}
