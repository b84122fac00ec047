package service

import (
	"context"
	"sort"
	"time"

	"github.com/ratehub/store-rating-api/internal/core/domain"
	"github.com/ratehub/store-rating-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = cloneUser(u)
	return u
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (int64, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return 0, domain.ErrEmailTaken
		}
	}
	return r.add(cloneUser(user)).ID, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) ListUsers(_ context.Context, _ ports.UserListFilter) ([]ports.UserWithRating, error) {
	out := make([]ports.UserWithRating, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, ports.UserWithRating{ID: u.ID, Name: u.Name, Email: u.Email, Address: u.Address, Role: u.Role})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) ListStores(_ context.Context, _ ports.StoreListFilter) ([]ports.StoreWithRating, error) {
	out := make([]ports.StoreWithRating, 0)
	for _, u := range r.users {
		if u.Role == domain.RoleStore {
			out = append(out, ports.StoreWithRating{ID: u.ID, Name: u.Name, Email: u.Email, Address: u.Address})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) CountUsers(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) CountStores(_ context.Context) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == domain.RoleStore {
			n++
		}
	}
	return n, nil
}

type ratingKey struct {
	userID  int64
	storeID int64
}

type stubRatingRepo struct {
	ratings   map[ratingKey]int
	createdAt map[ratingKey]time.Time
	// users backs ListStoresForUser; tests that exercise the store
	// browsing view share one stubUserRepo between both stubs.
	users *stubUserRepo
}

func newStubRatingRepo() *stubRatingRepo {
	return &stubRatingRepo{
		ratings:   make(map[ratingKey]int),
		createdAt: make(map[ratingKey]time.Time),
	}
}

// Upsert mirrors the real ON CONFLICT statement: one row per key, created_at
// written only on first insert.
func (r *stubRatingRepo) Upsert(_ context.Context, userID, storeID int64, rating int) (bool, error) {
	k := ratingKey{userID: userID, storeID: storeID}
	_, exists := r.ratings[k]
	r.ratings[k] = rating
	if !exists {
		r.createdAt[k] = time.Now().UTC()
	}
	return !exists, nil
}

// ListStoresForUser mirrors the real query: every store row carries the
// average over all its ratings plus the caller's own rating, nil when the
// caller has not rated that store.
func (r *stubRatingRepo) ListStoresForUser(_ context.Context, userID int64, _ ports.StoreListFilter) ([]ports.StoreForUser, error) {
	out := make([]ports.StoreForUser, 0)
	if r.users == nil {
		return out, nil
	}
	for _, u := range r.users.users {
		if u.Role != domain.RoleStore {
			continue
		}
		s := ports.StoreForUser{ID: u.ID, Name: u.Name, Address: u.Address}

		var sum, count int64
		for k, v := range r.ratings {
			if k.storeID != u.ID {
				continue
			}
			sum += int64(v)
			count++
			if k.userID == userID {
				own := v
				s.UserRating = &own
			}
		}
		if count > 0 {
			avg := float64(sum) / float64(count)
			s.Rating = &avg
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRatingRepo) Aggregate(_ context.Context, storeID int64) (ports.RatingAggregate, error) {
	var sum, count int64
	for k, v := range r.ratings {
		if k.storeID == storeID {
			sum += int64(v)
			count++
		}
	}
	agg := ports.RatingAggregate{Total: count}
	if count > 0 {
		avg := float64(sum) / float64(count)
		agg.Average = &avg
	}
	return agg, nil
}

func (r *stubRatingRepo) ListRaters(_ context.Context, storeID int64, _ ports.Sort) ([]ports.Rater, error) {
	out := make([]ports.Rater, 0)
	for k, v := range r.ratings {
		if k.storeID == storeID {
			out = append(out, ports.Rater{ID: k.userID, Rating: v, RatedAt: r.createdAt[k]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRatingRepo) CountRatings(_ context.Context) (int64, error) {
	return int64(len(r.ratings)), nil
}

type stubCache struct {
	data          map[int64]ports.RatingAggregate
	getErr        error
	sets          int
	invalidations int
}

func newStubCache() *stubCache {
	return &stubCache{data: make(map[int64]ports.RatingAggregate)}
}

func (c *stubCache) Get(_ context.Context, storeID int64) (*ports.RatingAggregate, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	agg, ok := c.data[storeID]
	if !ok {
		return nil, nil
	}
	return &agg, nil
}

func (c *stubCache) Set(_ context.Context, storeID int64, agg ports.RatingAggregate) error {
	c.sets++
	c.data[storeID] = agg
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, storeID int64) error {
	c.invalidations++
	delete(c.data, storeID)
	return nil
}
