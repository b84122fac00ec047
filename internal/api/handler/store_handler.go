package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-rating-api/internal/core/ports"
)

// StoreHandler handles the store-owner operations. The caller's own id is the
// store id (store accounts double as the store entity).
type StoreHandler struct {
	ratingService ports.RatingService
}

func NewStoreHandler(ratingService ports.RatingService) *StoreHandler {
	return &StoreHandler{ratingService: ratingService}
}

// Dashboard returns the owner's store with its aggregate rating.
//
// @Summary      Store owner dashboard
// @Tags         store
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.StoreDashboard
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/store/dashboard [get]
func (h *StoreHandler) Dashboard(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	dashboard, err := h.ratingService.StoreDashboard(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboard)
}

// Raters returns the users who rated the owner's store.
//
// @Summary      List raters of own store
// @Tags         store
// @Produce      json
// @Security     BearerAuth
// @Param        sortField      query  string  false  "name|email|rating|date"
// @Param        sortDirection  query  string  false  "asc|desc"
// @Success      200  {array}   ports.Rater
// @Failure      403  {object}  errorResponse
// @Router       /api/store/users [get]
func (h *StoreHandler) Raters(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	sort := ports.ParseSort(c.QueryParam("sortField"), c.QueryParam("sortDirection"),
		ports.SortByName, ports.SortByEmail, ports.SortByRating, ports.SortByDate)

	raters, err := h.ratingService.ListRaters(c.Request().Context(), user.ID, sort)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, raters)
}
