package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-rating-api/internal/api/middleware"
	"github.com/ratehub/store-rating-api/internal/core/domain"
)

// currentUser extracts the identity resolved by the Auth middleware. Its
// presence proves the middleware ran; a handler reached without it is a
// routing mistake and is rejected with 401.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.UserContextKey).(*domain.User)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
