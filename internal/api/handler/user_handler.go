package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-rating-api/internal/api/metrics"
	"github.com/ratehub/store-rating-api/internal/core/ports"
)

// UserHandler handles the normal-user operations: browsing stores and
// submitting ratings.
type UserHandler struct {
	ratingService ports.RatingService
}

func NewUserHandler(ratingService ports.RatingService) *UserHandler {
	return &UserHandler{ratingService: ratingService}
}

// ListStores returns all stores with their average rating and the caller's
// own rating.
//
// @Summary      Browse stores
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        sortField      query  string  false  "name|address|rating"
// @Param        sortDirection  query  string  false  "asc|desc"
// @Param        name           query  string  false  "substring filter"
// @Param        address        query  string  false  "substring filter"
// @Success      200  {array}   ports.StoreForUser
// @Failure      403  {object}  errorResponse
// @Router       /api/user/stores [get]
func (h *UserHandler) ListStores(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	filter := ports.StoreListFilter{
		Name:    c.QueryParam("name"),
		Address: c.QueryParam("address"),
		Sort: ports.ParseSort(c.QueryParam("sortField"), c.QueryParam("sortDirection"),
			ports.SortByName, ports.SortByAddress, ports.SortByRating),
	}

	stores, err := h.ratingService.ListStoresForUser(c.Request().Context(), user.ID, filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stores)
}

// SubmitRating records the caller's 1-5 rating of a store, creating or
// replacing it.
//
// @Summary      Rate a store
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitRatingRequest  true  "Rating"
// @Success      200   {object}  messageResponse  "existing rating updated"
// @Success      201   {object}  messageResponse  "new rating created"
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/user/ratings [post]
func (h *UserHandler) SubmitRating(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req submitRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.ratingService.SubmitRating(c.Request().Context(), user.ID, req.StoreID, req.Rating)
	if err != nil {
		return err
	}

	if created {
		metrics.RatingsSubmittedTotal.WithLabelValues("created").Inc()
		return c.JSON(http.StatusCreated, messageResponse{Message: "Rating submitted successfully"})
	}
	metrics.RatingsSubmittedTotal.WithLabelValues("updated").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Rating updated successfully"})
}
