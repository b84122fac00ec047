package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ratehub/store-rating-api/internal/core/domain"
	"github.com/ratehub/store-rating-api/internal/core/ports"
)

// AggregateCache abstracts the per-store aggregate cache (Redis). A miss is
// reported as (nil, nil). Cache failures are never fatal: the service logs
// and falls back to the database.
type AggregateCache interface {
	Get(ctx context.Context, storeID int64) (*ports.RatingAggregate, error)
	Set(ctx context.Context, storeID int64, agg ports.RatingAggregate) error
	Invalidate(ctx context.Context, storeID int64) error
}

// RatingService implements rating submission and the rating-derived read
// models for normal users and store owners.
type RatingService struct {
	users   ports.UserRepository
	ratings ports.RatingRepository
	cache   AggregateCache
	log     zerolog.Logger
}

func NewRatingService(users ports.UserRepository, ratings ports.RatingRepository, cache AggregateCache, log zerolog.Logger) *RatingService {
	return &RatingService{users: users, ratings: ratings, cache: cache, log: log}
}

func (s *RatingService) ListStoresForUser(ctx context.Context, userID int64, filter ports.StoreListFilter) ([]ports.StoreForUser, error) {
	return s.ratings.ListStoresForUser(ctx, userID, filter)
}

// SubmitRating records a 1-5 rating of a store by a normal user. The write is
// a single atomic insert-or-update keyed on (user_id, store_id), so
// concurrent duplicate submissions cannot produce two rows.
func (s *RatingService) SubmitRating(ctx context.Context, userID, storeID int64, rating int) (bool, error) {
	if !domain.ValidRatingValue(rating) {
		return false, domain.ErrValidation
	}

	store, err := s.users.FindByID(ctx, storeID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return false, domain.ErrStoreNotFound
		}
		return false, err
	}
	if store.Role != domain.RoleStore {
		return false, domain.ErrStoreNotFound
	}

	created, err := s.ratings.Upsert(ctx, userID, storeID, rating)
	if err != nil {
		return false, fmt.Errorf("upsert rating: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, storeID); err != nil {
			s.log.Warn().Err(err).Int64("store_id", storeID).Msg("failed to invalidate aggregate cache")
		}
	}

	s.log.Info().
		Int64("user_id", userID).
		Int64("store_id", storeID).
		Int("rating", rating).
		Bool("created", created).
		Msg("rating recorded")

	return created, nil
}

// StoreDashboard returns the owner's view of their store. The aggregate is
// served from cache when fresh; a miss or a cache error reads the database
// and repopulates.
func (s *RatingService) StoreDashboard(ctx context.Context, storeID int64) (*ports.StoreDashboard, error) {
	store, err := s.users.FindByID(ctx, storeID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrStoreNotFound
		}
		return nil, err
	}

	agg, err := s.aggregate(ctx, storeID)
	if err != nil {
		return nil, err
	}

	return &ports.StoreDashboard{
		Name:         store.Name,
		Address:      store.Address,
		Rating:       agg.Average,
		TotalRatings: agg.Total,
	}, nil
}

func (s *RatingService) ListRaters(ctx context.Context, storeID int64, sort ports.Sort) ([]ports.Rater, error) {
	return s.ratings.ListRaters(ctx, storeID, sort)
}

func (s *RatingService) aggregate(ctx context.Context, storeID int64) (ports.RatingAggregate, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, storeID)
		if err != nil {
			s.log.Warn().Err(err).Int64("store_id", storeID).Msg("aggregate cache read failed, using database")
		} else if cached != nil {
			return *cached, nil
		}
	}

	agg, err := s.ratings.Aggregate(ctx, storeID)
	if err != nil {
		return ports.RatingAggregate{}, fmt.Errorf("aggregate ratings: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, storeID, agg); err != nil {
			s.log.Warn().Err(err).Int64("store_id", storeID).Msg("failed to set aggregate cache")
		}
	}
	return agg, nil
}
