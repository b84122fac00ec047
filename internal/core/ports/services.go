package ports

import (
	"context"

	"github.com/ratehub/store-rating-api/internal/core/domain"
)

// RegisterInput carries a self-service registration. The created account
// always gets role "user".
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Address  string
}

// CreateAccountInput carries an admin-initiated account creation; Role is
// "store" for store creation and any valid role for user creation.
type CreateAccountInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     string
}

// DashboardStats are the admin landing-page counters.
type DashboardStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

// StoreDashboard is the store owner's view of their own store.
type StoreDashboard struct {
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Rating       *float64 `json:"rating"`
	TotalRatings int64    `json:"totalRatings"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
}

type AdminService interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	ListStores(ctx context.Context, filter StoreListFilter) ([]StoreWithRating, error)
	CreateStore(ctx context.Context, in CreateAccountInput) (int64, error)
	ListUsers(ctx context.Context, filter UserListFilter) ([]UserWithRating, error)
	CreateUser(ctx context.Context, in CreateAccountInput) (int64, error)
}

type RatingService interface {
	ListStoresForUser(ctx context.Context, userID int64, filter StoreListFilter) ([]StoreForUser, error)
	SubmitRating(ctx context.Context, userID, storeID int64, rating int) (created bool, err error)
	StoreDashboard(ctx context.Context, storeID int64) (*StoreDashboard, error)
	ListRaters(ctx context.Context, storeID int64, sort Sort) ([]Rater, error)
}
