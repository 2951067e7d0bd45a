package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/minhquan-ng/auth-capstone-api/internal/domain"
	"github.com/minhquan-ng/auth-capstone-api/internal/service"
	"github.com/minhquan-ng/auth-capstone-api/internal/token"
	"github.com/minhquan-ng/auth-capstone-api/internal/util"
)

const (
	contextUserKey   = "auth.user"
	contextUserIDKey = "auth.user_id"
)

// RequireAuth guards a route with the access token. The Authorization header
// carries the token directly, without a Bearer prefix.
func RequireAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accessToken := strings.TrimSpace(c.Request().Header.Get("Authorization"))
			if accessToken == "" {
				return c.JSON(http.StatusUnauthorized, util.Message("Access token not found"))
			}

			user, err := auth.Authenticate(c.Request().Context(), accessToken)
			switch {
			case err == nil:
			case errors.Is(err, token.ErrMalformed), errors.Is(err, token.ErrSignature), errors.Is(err, token.ErrExpired):
				return c.JSON(http.StatusForbidden, util.Message("Invalid access token"))
			case errors.Is(err, service.ErrUserNotFound):
				return c.JSON(http.StatusUnauthorized, util.Message("Unauthorized"))
			default:
				return c.JSON(http.StatusInternalServerError, util.Message("unable to verify access token"))
			}

			c.Set(contextUserKey, user)
			c.Set(contextUserIDKey, user.ID)
			return next(c)
		}
	}
}

func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(contextUserKey).(*domain.User)
	return user, ok
}
