package handlers

import (
	"net/http"

	"github.com/campusvibes/backend/internal/models"
	"github.com/campusvibes/backend/internal/realtime"
	"github.com/campusvibes/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// GroupHandler handles group creation, membership and group messaging.
type GroupHandler struct {
	groupRepository repositories.GroupRepository
	gateway         *realtime.Gateway
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupRepo repositories.GroupRepository, gateway *realtime.Gateway) *GroupHandler {
	return &GroupHandler{groupRepository: groupRepo, gateway: gateway}
}

// RegisterGroupRoutes registers group routes
func (h *GroupHandler) RegisterGroupRoutes(g *echo.Group) {
	g.POST("/groups", h.CreateGroup)
	g.GET("/groups", h.ListPublicGroups)
	g.GET("/groups/joined", h.ListJoinedGroups)
	g.POST("/groups/:group_id/join", h.JoinGroup)
	g.GET("/groups/:group_id/messages", h.GetGroupMessages)
	g.POST("/groups/:group_id/messages", h.SendGroupMessage)
}

// CreateGroup creates a group with the caller as its admin member.
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	group := &models.Group{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   currentUserID,
		IsPublic:    req.IsPublic,
	}
	if err := h.groupRepository.CreateGroup(c.Request().Context(), group); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, group)
}

// ListPublicGroups lists groups anyone may join.
func (h *GroupHandler) ListPublicGroups(c echo.Context) error {
	groups, err := h.groupRepository.ListPublicGroups(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, groups)
}

// ListJoinedGroups lists the caller's groups.
func (h *GroupHandler) ListJoinedGroups(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	groups, err := h.groupRepository.ListJoinedGroups(c.Request().Context(), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, groups)
}

// JoinGroup adds the caller to a public group. Joining twice is a 409.
func (h *GroupHandler) JoinGroup(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	groupID, err := parseObjectID(c, "group_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	group, err := h.groupRepository.GetGroupByID(ctx, groupID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if !group.IsPublic {
		return echo.NewHTTPError(http.StatusForbidden, "This group is private")
	}

	err = h.groupRepository.AddMember(ctx, groupID, currentUserID, models.GroupRoleMember)
	if err == repositories.ErrAlreadyMember {
		return echo.NewHTTPError(http.StatusConflict, "You are already a member of this group")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Joined group successfully"})
}

// GetGroupMessages returns a group's messages in send order. Members only.
func (h *GroupHandler) GetGroupMessages(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	groupID, err := parseObjectID(c, "group_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	group, err := h.groupRepository.GetGroupByID(ctx, groupID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if !group.HasMember(currentUserID) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not a member of this group")
	}

	messages, err := h.groupRepository.GetGroupMessages(ctx, groupID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, messages)
}

// SendGroupMessage persists and fans out a group message.
func (h *GroupHandler) SendGroupMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	groupID, err := parseObjectID(c, "group_id")
	if err != nil {
		return err
	}

	var req models.SendGroupMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message, err := h.gateway.SendGroupMessage(c.Request().Context(), currentUserID, groupID, req.Message)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}
	return c.JSON(http.StatusCreated, message)
}
