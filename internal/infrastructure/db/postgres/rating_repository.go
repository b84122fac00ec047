package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/ratehub/store-rating-api/internal/core/ports"
)

var raterSortColumns = map[ports.SortField]string{
	ports.SortByName:   "u.name",
	ports.SortByEmail:  "u.email",
	ports.SortByRating: "r.rating",
	ports.SortByDate:   "r.created_at",
}

var userStoreSortColumns = map[ports.SortField]string{
	ports.SortByName:    "u.name",
	ports.SortByAddress: "u.address",
	ports.SortByRating:  "rating",
}

// RatingRepository persists ratings. The (user_id, store_id) composite
// primary key enforces the one-rating-per-user-per-store invariant at the
// schema level.
type RatingRepository struct {
	db *DB
}

func NewRatingRepository(db *DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert performs the insert-or-update as a single atomic statement; the
// xmax=0 trick distinguishes a fresh insert from a conflict update.
// created_at is only written on insert.
func (r *RatingRepository) Upsert(ctx context.Context, userID, storeID int64, rating int) (bool, error) {
	ctx, cancel := r.db.queryCtx(ctx)
	defer cancel()

	var created bool
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO ratings (user_id, store_id, rating)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, store_id) DO UPDATE SET rating = EXCLUDED.rating
		 RETURNING (xmax = 0)`,
		userID, storeID, rating,
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upsert rating: %w", err)
	}
	return created, nil
}

func (r *RatingRepository) ListStoresForUser(ctx context.Context, userID int64, filter ports.StoreListFilter) ([]ports.StoreForUser, error) {
	ctx, cancel := r.db.queryCtx(ctx)
	defer cancel()

	var sb strings.Builder
	sb.WriteString(
		`SELECT u.id, u.name, u.address,
		        (SELECT AVG(rating)::float8 FROM ratings WHERE store_id = u.id) AS rating,
		        (SELECT rating::int4 FROM ratings WHERE store_id = u.id AND user_id = $1) AS user_rating
		 FROM users u
		 WHERE u.role = 'store'`)
	args := []any{userID}
	args = appendSubstringFilter(&sb, args, "u.name", filter.Name)
	args = appendSubstringFilter(&sb, args, "u.address", filter.Address)
	appendOrderBy(&sb, userStoreSortColumns, filter.Sort)

	rows, err := r.db.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list stores for user: %w", err)
	}
	defer rows.Close()

	stores := make([]ports.StoreForUser, 0)
	for rows.Next() {
		var (
			s          ports.StoreForUser
			userRating *int32
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.Rating, &userRating); err != nil {
			return nil, fmt.Errorf("scan store row: %w", err)
		}
		if userRating != nil {
			v := int(*userRating)
			s.UserRating = &v
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

func (r *RatingRepository) Aggregate(ctx context.Context, storeID int64) (ports.RatingAggregate, error) {
	ctx, cancel := r.db.queryCtx(ctx)
	defer cancel()

	var agg ports.RatingAggregate
	err := r.db.Pool.QueryRow(ctx,
		`SELECT AVG(rating)::float8, COUNT(*) FROM ratings WHERE store_id = $1`,
		storeID,
	).Scan(&agg.Average, &agg.Total)
	if err != nil {
		return ports.RatingAggregate{}, fmt.Errorf("aggregate ratings: %w", err)
	}
	return agg, nil
}

func (r *RatingRepository) ListRaters(ctx context.Context, storeID int64, sort ports.Sort) ([]ports.Rater, error) {
	ctx, cancel := r.db.queryCtx(ctx)
	defer cancel()

	var sb strings.Builder
	sb.WriteString(
		`SELECT u.id, u.name, u.email, r.rating::int4, r.created_at
		 FROM ratings r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.store_id = $1`)
	appendOrderBy(&sb, raterSortColumns, sort)

	rows, err := r.db.Pool.Query(ctx, sb.String(), storeID)
	if err != nil {
		return nil, fmt.Errorf("list raters: %w", err)
	}
	defer rows.Close()

	raters := make([]ports.Rater, 0)
	for rows.Next() {
		var rt ports.Rater
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Email, &rt.Rating, &rt.RatedAt); err != nil {
			return nil, fmt.Errorf("scan rater row: %w", err)
		}
		raters = append(raters, rt)
	}
	return raters, rows.Err()
}

func (r *RatingRepository) CountRatings(ctx context.Context) (int64, error) {
	ctx, cancel := r.db.queryCtx(ctx)
	defer cancel()

	var n int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM ratings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count ratings: %w", err)
	}
	return n, nil
}
