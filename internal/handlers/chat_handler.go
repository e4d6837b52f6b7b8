package handlers

import (
	"net/http"

	"github.com/campusvibes/backend/internal/models"
	"github.com/campusvibes/backend/internal/realtime"
	"github.com/campusvibes/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatHandler handles one-to-one chat creation and listing.
type ChatHandler struct {
	chatRepository    repositories.ChatRepository
	messageRepository repositories.MessageRepository
	userRepository    repositories.UserRepository
	gateway           *realtime.Gateway
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatRepo repositories.ChatRepository, messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, gateway *realtime.Gateway) *ChatHandler {
	return &ChatHandler{
		chatRepository:    chatRepo,
		messageRepository: messageRepo,
		userRepository:    userRepo,
		gateway:           gateway,
	}
}

// RegisterChatRoutes registers chat routes
func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.POST("/chats", h.StartChat)
	g.GET("/chats", h.GetChats)
}

// StartChat finds or creates the chat between the caller and another user.
// Repeated requests for the same pair return the same chat. The recipient's
// personal room is only told about the chat when this call created it.
func (h *ChatHandler) StartChat(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.StartChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	otherID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid userId")
	}
	if otherID == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot start a chat with yourself")
	}

	ctx := c.Request().Context()
	if _, err := h.userRepository.GetUserByID(ctx, otherID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	chat, created, err := h.chatRepository.StartChat(ctx, currentUserID, otherID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	expanded, err := h.expandChat(c, chat)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if created {
		h.gateway.AnnounceNewChat(otherID, expanded)
		return c.JSON(http.StatusCreated, expanded)
	}
	return c.JSON(http.StatusOK, expanded)
}

// GetChats lists the caller's chats, most recently active first, with
// participant display fields and the last message expanded.
func (h *ChatHandler) GetChats(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	chats, err := h.chatRepository.GetChatsForUser(c.Request().Context(), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	expanded := make([]models.ExpandedChat, 0, len(chats))
	for i := range chats {
		e, err := h.expandChat(c, &chats[i])
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		expanded = append(expanded, *e)
	}
	return c.JSON(http.StatusOK, expanded)
}

func (h *ChatHandler) expandChat(c echo.Context, chat *models.Chat) (*models.ExpandedChat, error) {
	ctx := c.Request().Context()

	participants, err := h.userRepository.GetCompactByIDs(ctx, chat.Participants)
	if err != nil {
		return nil, err
	}

	expanded := &models.ExpandedChat{Chat: *chat, Participants: participants}
	if !chat.LastMessageID.IsZero() {
		if message, err := h.messageRepository.GetMessageByID(ctx, chat.LastMessageID); err == nil {
			expanded.LastMessage = message
		}
	}
	return expanded, nil
}
