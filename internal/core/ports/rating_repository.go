package ports

import (
	"context"
	"time"
)

// StoreForUser is the normal-user view of a store: the overall average plus
// the caller's own rating. Both are nil when absent.
type StoreForUser struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Rating     *float64 `json:"rating"`
	UserRating *int     `json:"userRating"`
}

// Rater is one row of a store owner's rater listing.
type Rater struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Rating  int       `json:"rating"`
	RatedAt time.Time `json:"ratingDate"`
}

// RatingAggregate is the read-time summary for one store. Average is nil when
// the store has no ratings yet.
type RatingAggregate struct {
	Average *float64 `json:"rating"`
	Total   int64    `json:"totalRatings"`
}

// RatingRepository is the persistence boundary for the ratings table.
type RatingRepository interface {
	// Upsert atomically inserts or replaces the caller's rating for a store,
	// honoring the (user_id, store_id) uniqueness constraint. It reports
	// whether a new row was created (as opposed to an existing one updated).
	Upsert(ctx context.Context, userID, storeID int64, rating int) (created bool, err error)

	// ListStoresForUser returns all stores with their average rating and the
	// given user's own rating, filtered and sorted.
	ListStoresForUser(ctx context.Context, userID int64, filter StoreListFilter) ([]StoreForUser, error)

	// Aggregate computes the average and count of ratings for one store.
	Aggregate(ctx context.Context, storeID int64) (RatingAggregate, error)

	// ListRaters returns the users who rated the given store.
	ListRaters(ctx context.Context, storeID int64, sort Sort) ([]Rater, error)

	CountRatings(ctx context.Context) (int64, error)
}
