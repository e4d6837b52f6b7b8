package middleware

import (
	"github.com/campusvibes/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// TrackActivity touches the authenticated user's last-active timestamp on
// every request. Unauthenticated requests pass through untouched, and a
// failed touch never fails the request.
func TrackActivity(userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID := GetUserID(c); !userID.IsZero() {
				_ = userRepo.TouchActivity(c.Request().Context(), userID)
			}
			return next(c)
		}
	}
}
