package handlers

import (
	"net/http"

	"github.com/campusvibes/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles user listing and discovery.
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers user routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users", h.GetAllUsers)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/suggested", h.GetSuggestedUsers)
}

// GetAllUsers lists approved users.
func (h *UserHandler) GetAllUsers(c echo.Context) error {
	users, err := h.userRepository.GetApprovedUsers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}

// SearchUsers matches users by name or email, excluding the caller. An empty
// query returns an empty list.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	users, err := h.userRepository.SearchUsers(c.Request().Context(), c.QueryParam("query"), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}

// GetSuggestedUsers samples up to ten users the caller does not follow.
func (h *UserHandler) GetSuggestedUsers(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	users, err := h.userRepository.GetSuggestedUsers(c.Request().Context(), currentUserID, 10)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}
