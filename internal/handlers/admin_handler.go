package handlers

import (
	"net/http"
	"strconv"

	"github.com/campusvibes/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// AdminHandler handles user administration: the approval queue and account
// removal.
type AdminHandler struct {
	userRepository repositories.UserRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userRepo repositories.UserRepository) *AdminHandler {
	return &AdminHandler{userRepository: userRepo}
}

// RegisterAdminRoutes registers user-administration routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.PUT("/users/:user_id/approval", h.SetApproval)
	g.DELETE("/users/:user_id", h.DeleteUser)
}

// ListUsers lists all users with pagination, including unapproved accounts.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := h.userRepository.ListUsers(c.Request().Context(), (page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"users":      users,
		"pagination": paginationMeta(page, limit, total),
	})
}

// SetApproval approves or un-approves an account. Approval gates login, so
// revoking it locks the account out of new sessions.
func (h *AdminHandler) SetApproval(c echo.Context) error {
	userID, err := parseObjectID(c, "user_id")
	if err != nil {
		return err
	}

	var req struct {
		Approved bool `json:"approved"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	user, err := h.userRepository.SetApproval(c.Request().Context(), userID, req.Approved)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	userID, err := parseObjectID(c, "user_id")
	if err != nil {
		return err
	}

	if err := h.userRepository.DeleteUser(c.Request().Context(), userID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}
