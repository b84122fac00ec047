package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/ratehub/store-rating-api/internal/api/middleware"
	"github.com/ratehub/store-rating-api/internal/core/domain"
	"github.com/ratehub/store-rating-api/internal/core/ports"
)

type stubRatingService struct {
	listStoresFn   func(ctx context.Context, userID int64, filter ports.StoreListFilter) ([]ports.StoreForUser, error)
	submitRatingFn func(ctx context.Context, userID, storeID int64, rating int) (bool, error)
	dashboardFn    func(ctx context.Context, storeID int64) (*ports.StoreDashboard, error)
	listRatersFn   func(ctx context.Context, storeID int64, sort ports.Sort) ([]ports.Rater, error)
}

func (s *stubRatingService) ListStoresForUser(ctx context.Context, userID int64, filter ports.StoreListFilter) ([]ports.StoreForUser, error) {
	return s.listStoresFn(ctx, userID, filter)
}

func (s *stubRatingService) SubmitRating(ctx context.Context, userID, storeID int64, rating int) (bool, error) {
	return s.submitRatingFn(ctx, userID, storeID, rating)
}

func (s *stubRatingService) StoreDashboard(ctx context.Context, storeID int64) (*ports.StoreDashboard, error) {
	return s.dashboardFn(ctx, storeID)
}

func (s *stubRatingService) ListRaters(ctx context.Context, storeID int64, sort ports.Sort) ([]ports.Rater, error) {
	return s.listRatersFn(ctx, storeID, sort)
}

func ratingBody(storeID int64, rating int) string {
	return fmt.Sprintf(`{"storeId":%d,"rating":%d}`, storeID, rating)
}

func TestUserHandler_SubmitRating_Created(t *testing.T) {
	stub := &stubRatingService{
		submitRatingFn: func(_ context.Context, userID, storeID int64, rating int) (bool, error) {
			if userID != 7 || storeID != 2 || rating != 5 {
				t.Fatalf("unexpected args: user=%d store=%d rating=%d", userID, storeID, rating)
			}
			return true, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/user/ratings", ratingBody(2, 5))
	c.Set(middleware.UserContextKey, &domain.User{ID: 7, Role: domain.RoleUser})

	if err := h.SubmitRating(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for a new rating, got %d", rec.Code)
	}
}

func TestUserHandler_SubmitRating_Updated(t *testing.T) {
	stub := &stubRatingService{
		submitRatingFn: func(_ context.Context, _, _ int64, _ int) (bool, error) {
			return false, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/user/ratings", ratingBody(2, 3))
	c.Set(middleware.UserContextKey, &domain.User{ID: 7, Role: domain.RoleUser})

	if err := h.SubmitRating(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for an updated rating, got %d", rec.Code)
	}
}

func TestUserHandler_SubmitRating_ValueOutOfRange(t *testing.T) {
	stub := &stubRatingService{
		submitRatingFn: func(_ context.Context, _, _ int64, _ int) (bool, error) {
			t.Fatalf("service must not be reached for an out-of-range value")
			return false, nil
		},
	}
	h := NewUserHandler(stub)

	for _, rating := range []int{0, 6, -1} {
		c, _ := newTestContext(t, http.MethodPost, "/api/user/ratings", ratingBody(2, rating))
		c.Set(middleware.UserContextKey, &domain.User{ID: 7, Role: domain.RoleUser})
		assertHTTPError(t, h.SubmitRating(c), http.StatusBadRequest)
	}
}

func TestUserHandler_SubmitRating_RequiresIdentity(t *testing.T) {
	h := NewUserHandler(&stubRatingService{})

	c, _ := newTestContext(t, http.MethodPost, "/api/user/ratings", ratingBody(2, 5))
	assertHTTPError(t, h.SubmitRating(c), http.StatusUnauthorized)
}

func TestUserHandler_SubmitRating_StoreNotFound(t *testing.T) {
	stub := &stubRatingService{
		submitRatingFn: func(_ context.Context, _, _ int64, _ int) (bool, error) {
			return false, domain.ErrStoreNotFound
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/user/ratings", ratingBody(99, 4))
	c.Set(middleware.UserContextKey, &domain.User{ID: 7, Role: domain.RoleUser})
	if err := h.SubmitRating(c); err != domain.ErrStoreNotFound {
		t.Fatalf("expected ErrStoreNotFound to propagate, got %v", err)
	}
}

func TestUserHandler_ListStores_PassesFilter(t *testing.T) {
	var got ports.StoreListFilter
	stub := &stubRatingService{
		listStoresFn: func(_ context.Context, userID int64, filter ports.StoreListFilter) ([]ports.StoreForUser, error) {
			if userID != 7 {
				t.Fatalf("expected caller id 7, got %d", userID)
			}
			got = filter
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet,
		"/api/user/stores?name=cafe&sortField=rating&sortDirection=desc", "")
	c.Set(middleware.UserContextKey, &domain.User{ID: 7, Role: domain.RoleUser})

	if err := h.ListStores(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Name != "cafe" {
		t.Fatalf("expected name filter passed through, got %+v", got)
	}
	if got.Sort.Field != ports.SortByRating || got.Sort.Direction != ports.SortDesc {
		t.Fatalf("unexpected sort: %+v", got.Sort)
	}
}

func TestUserHandler_ListStores_UnknownSortFallsBack(t *testing.T) {
	var got ports.StoreListFilter
	stub := &stubRatingService{
		listStoresFn: func(_ context.Context, _ int64, filter ports.StoreListFilter) ([]ports.StoreForUser, error) {
			got = filter
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/api/user/stores?sortField=password;drop", "")
	c.Set(middleware.UserContextKey, &domain.User{ID: 7, Role: domain.RoleUser})

	if err := h.ListStores(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Sort.Field != ports.SortByName || got.Sort.Direction != ports.SortAsc {
		t.Fatalf("expected fallback to name/asc, got %+v", got.Sort)
	}
}
