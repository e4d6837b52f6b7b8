package handlers

import (
	"net/http"

	"github.com/campusvibes/backend/internal/realtime"
	"github.com/campusvibes/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// WSHandler upgrades authenticated requests to websocket sessions on the hub.
type WSHandler struct {
	hub            *realtime.Hub
	gateway        *realtime.Gateway
	userRepository repositories.UserRepository
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(hub *realtime.Hub, gateway *realtime.Gateway, userRepo repositories.UserRepository) *WSHandler {
	return &WSHandler{hub: hub, gateway: gateway, userRepository: userRepo}
}

// RegisterWSRoutes registers the websocket route
func (h *WSHandler) RegisterWSRoutes(g *echo.Group) {
	g.GET("/ws", h.Connect)
}

// Connect upgrades the request and serves the session until the peer
// disconnects.
func (h *WSHandler) Connect(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return realtime.ServeWS(h.hub, h.gateway, h.userRepository, currentUserID, c.Response(), c.Request())
}
