package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-rating-api/internal/core/domain"
)

// UserContextKey is where Auth stores the resolved *domain.User.
const UserContextKey = "user"

// UserResolver is the narrow lookup Auth needs to turn token claims into a
// live user record.
type UserResolver interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

// Auth validates the bearer token and re-resolves the referenced user on
// every request. Trusting only the user id from the claims (never the role)
// means role changes and account removal take effect immediately even though
// a signed token stays nominally valid for its full lifetime.
func Auth(jwtSecret string, resolver UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			userID, ok := claimUserID(claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := resolver.FindByID(c.Request().Context(), userID)
			if err != nil {
				if err == domain.ErrUserNotFound {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token, user not found")
				}
				return err
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// claimUserID extracts the numeric user id claim. JSON decoding yields
// float64 for numbers.
func claimUserID(claims jwt.MapClaims) (int64, bool) {
	switch v := claims["user_id"].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}
