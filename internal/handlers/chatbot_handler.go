package handlers

import (
	"net/http"

	"github.com/campusvibes/backend/internal/chatbot"
	"github.com/campusvibes/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ChatbotHandler exposes the campus assistant.
type ChatbotHandler struct {
	bot            *chatbot.Bot
	userRepository repositories.UserRepository
}

// NewChatbotHandler creates a new ChatbotHandler
func NewChatbotHandler(bot *chatbot.Bot, userRepo repositories.UserRepository) *ChatbotHandler {
	return &ChatbotHandler{bot: bot, userRepository: userRepo}
}

// RegisterChatbotRoutes registers chatbot routes
func (h *ChatbotHandler) RegisterChatbotRoutes(g *echo.Group) {
	g.POST("/chatbot", h.Ask)
}

// Ask answers a campus question. Responses are tailored to the caller's name
// and account type.
func (h *ChatbotHandler) Ask(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req struct {
		Message string `json:"message" validate:"required,min=1,max=1000"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	reply := h.bot.Respond(req.Message, user.FullName, user.Type)
	return c.JSON(http.StatusOK, echo.Map{"reply": reply})
}
