package handlers

import (
	"net/http"

	"github.com/campusvibes/backend/internal/models"
	"github.com/campusvibes/backend/internal/realtime"
	"github.com/campusvibes/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageHandler handles direct-message history, sending and read receipts.
// Sending over HTTP goes through the same gateway path as the websocket
// send-message event, so delivery semantics are identical.
type MessageHandler struct {
	chatRepository    repositories.ChatRepository
	messageRepository repositories.MessageRepository
	gateway           *realtime.Gateway
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(chatRepo repositories.ChatRepository, messageRepo repositories.MessageRepository, gateway *realtime.Gateway) *MessageHandler {
	return &MessageHandler{
		chatRepository:    chatRepo,
		messageRepository: messageRepo,
		gateway:           gateway,
	}
}

// RegisterMessageRoutes registers message routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.GET("/chats/:chat_id/messages", h.GetMessages)
	g.POST("/messages", h.SendMessage)
	g.PUT("/messages/read", h.MarkRead)
}

// GetMessages returns a chat's messages in send order. Only participants may
// read them.
func (h *MessageHandler) GetMessages(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	chatID, err := parseObjectID(c, "chat_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	chat, err := h.chatRepository.GetChatByID(ctx, chatID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if !isParticipant(chat, currentUserID) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not a participant of this chat")
	}

	messages, err := h.messageRepository.GetMessagesByChat(ctx, chatID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, messages)
}

// SendMessage persists and fans out a direct message.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	chatID, err := primitive.ObjectIDFromHex(req.ChatID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid chatId")
	}

	message, err := h.gateway.SendDirectMessage(c.Request().Context(), currentUserID, chatID, req.Content)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}
	return c.JSON(http.StatusCreated, message)
}

// MarkRead adds the caller to readBy on every message of the chat.
func (h *MessageHandler) MarkRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.MarkReadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	chatID, err := primitive.ObjectIDFromHex(req.ChatID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid chatId")
	}

	ctx := c.Request().Context()
	chat, err := h.chatRepository.GetChatByID(ctx, chatID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if !isParticipant(chat, currentUserID) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not a participant of this chat")
	}

	if err := h.messageRepository.MarkRead(ctx, chatID, currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Messages marked as read"})
}

func isParticipant(chat *models.Chat, userID primitive.ObjectID) bool {
	for _, p := range chat.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
