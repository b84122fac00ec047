package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ratehub/store-rating-api/internal/core/domain"
	"github.com/ratehub/store-rating-api/internal/core/ports"
)

// AdminService implements the admin-only operations: dashboard counters and
// account management for both users and stores.
type AdminService struct {
	users   ports.UserRepository
	ratings ports.RatingRepository
	log     zerolog.Logger
}

func NewAdminService(users ports.UserRepository, ratings ports.RatingRepository, log zerolog.Logger) *AdminService {
	return &AdminService{users: users, ratings: ratings, log: log}
}

func (s *AdminService) DashboardStats(ctx context.Context) (*ports.DashboardStats, error) {
	totalUsers, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	totalStores, err := s.users.CountStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("count stores: %w", err)
	}
	totalRatings, err := s.ratings.CountRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("count ratings: %w", err)
	}

	return &ports.DashboardStats{
		TotalUsers:   totalUsers,
		TotalStores:  totalStores,
		TotalRatings: totalRatings,
	}, nil
}

func (s *AdminService) ListStores(ctx context.Context, filter ports.StoreListFilter) ([]ports.StoreWithRating, error) {
	return s.users.ListStores(ctx, filter)
}

// CreateStore creates a store account. The role is fixed here rather than
// taken from input so a crafted payload cannot mint admins.
func (s *AdminService) CreateStore(ctx context.Context, in ports.CreateAccountInput) (int64, error) {
	in.Role = domain.RoleStore
	return s.createAccount(ctx, in)
}

func (s *AdminService) ListUsers(ctx context.Context, filter ports.UserListFilter) ([]ports.UserWithRating, error) {
	return s.users.ListUsers(ctx, filter)
}

func (s *AdminService) CreateUser(ctx context.Context, in ports.CreateAccountInput) (int64, error) {
	if !domain.ValidRole(in.Role) {
		return 0, domain.ErrValidation
	}
	return s.createAccount(ctx, in)
}

func (s *AdminService) createAccount(ctx context.Context, in ports.CreateAccountInput) (int64, error) {
	if !domain.ValidPassword(in.Password) {
		return 0, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Address:      in.Address,
		Role:         in.Role,
	})
	if err != nil {
		return 0, err
	}

	s.log.Info().Int64("user_id", id).Str("role", in.Role).Msg("account created by admin")
	return id, nil
}
