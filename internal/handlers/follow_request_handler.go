package handlers

import (
	"net/http"

	"github.com/campusvibes/backend/internal/models"
	"github.com/campusvibes/backend/internal/realtime"
	"github.com/campusvibes/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FollowRequestHandler handles the consent flow for following private
// profiles.
type FollowRequestHandler struct {
	followRequestRepository repositories.FollowRequestRepository
	userRepository          repositories.UserRepository
	gateway                 *realtime.Gateway
}

// NewFollowRequestHandler creates a new FollowRequestHandler
func NewFollowRequestHandler(followRequestRepo repositories.FollowRequestRepository, userRepo repositories.UserRepository, gateway *realtime.Gateway) *FollowRequestHandler {
	return &FollowRequestHandler{
		followRequestRepository: followRequestRepo,
		userRepository:          userRepo,
		gateway:                 gateway,
	}
}

// RegisterFollowRequestRoutes registers follow-request routes
func (h *FollowRequestHandler) RegisterFollowRequestRoutes(g *echo.Group) {
	g.POST("/follow-requests/:user_id", h.SendRequest)
	g.GET("/follow-requests", h.ListPending)
	g.PUT("/follow-requests/:request_id/accept", h.AcceptRequest)
	g.PUT("/follow-requests/:request_id/reject", h.RejectRequest)
}

// SendRequest creates a pending follow request addressed to a user. At most
// one pending request per pair; already-following callers are rejected.
func (h *FollowRequestHandler) SendRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := parseObjectID(c, "user_id")
	if err != nil {
		return err
	}
	if targetID == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot send a follow request to yourself")
	}

	ctx := c.Request().Context()
	target, err := h.userRepository.GetUserByID(ctx, targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if target.IsFollowedBy(currentUserID) {
		return echo.NewHTTPError(http.StatusBadRequest, "You already follow this user")
	}

	request, err := h.followRequestRepository.Create(ctx, currentUserID, targetID)
	if err == repositories.ErrPendingRequestExists {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, request)
}

// ListPending lists the pending requests addressed to the caller, with sender
// display fields.
func (h *FollowRequestHandler) ListPending(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	ctx := c.Request().Context()
	requests, err := h.followRequestRepository.ListPendingFor(ctx, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	expanded := make([]models.ExpandedFollowRequest, len(requests))
	for i, request := range requests {
		expanded[i] = models.ExpandedFollowRequest{FollowRequest: request}
		if from, err := h.userRepository.GetCompactByID(ctx, request.From); err == nil {
			expanded[i].FromUser = *from
		}
	}
	return c.JSON(http.StatusOK, expanded)
}

// AcceptRequest resolves a pending request to accepted and establishes the
// follow relationship. Only the addressee may accept.
func (h *FollowRequestHandler) AcceptRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	requestID, err := parseObjectID(c, "request_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	request, err := h.followRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if request.To != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "This follow request is not addressed to you")
	}

	// Resolve first so a concurrent accept/reject settles on exactly one
	// outcome before the graph changes.
	if _, err := h.followRequestRepository.Resolve(ctx, requestID, models.FollowRequestAccepted); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	if err := h.gateway.Follow(ctx, request.From, request.To); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Follow request accepted"})
}

// RejectRequest resolves a pending request to rejected. Only the addressee
// may reject. The sender may request again later.
func (h *FollowRequestHandler) RejectRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	requestID, err := parseObjectID(c, "request_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	request, err := h.followRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if request.To != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "This follow request is not addressed to you")
	}

	if _, err := h.followRequestRepository.Resolve(ctx, requestID, models.FollowRequestRejected); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Follow request rejected"})
}
