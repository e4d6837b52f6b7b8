package handlers

import (
	"net/http"

	"github.com/campusvibes/backend/internal/models"
	"github.com/campusvibes/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ModerationHandler manages the denylist behind the moderation filter. Admin
// only.
type ModerationHandler struct {
	blockedWordRepository repositories.BlockedWordRepository
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(blockedWordRepo repositories.BlockedWordRepository) *ModerationHandler {
	return &ModerationHandler{blockedWordRepository: blockedWordRepo}
}

// RegisterAdminModerationRoutes registers denylist routes
func (h *ModerationHandler) RegisterAdminModerationRoutes(g *echo.Group) {
	g.POST("/blocked-words", h.AddBlockedWord)
	g.GET("/blocked-words", h.GetBlockedWords)
	g.DELETE("/blocked-words/:word_id", h.DeleteBlockedWord)
}

// AddBlockedWord adds a word to the denylist. Takes effect on the next
// moderation check; already-published content is not re-evaluated.
func (h *ModerationHandler) AddBlockedWord(c echo.Context) error {
	var req models.AddBlockedWordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	word, err := h.blockedWordRepository.Add(c.Request().Context(), req.Word)
	if err == repositories.ErrWordAlreadyBlocked {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, word)
}

// GetBlockedWords lists the denylist.
func (h *ModerationHandler) GetBlockedWords(c echo.Context) error {
	words, err := h.blockedWordRepository.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, words)
}

// DeleteBlockedWord removes a denylist entry.
func (h *ModerationHandler) DeleteBlockedWord(c echo.Context) error {
	wordID, err := parseObjectID(c, "word_id")
	if err != nil {
		return err
	}

	if err := h.blockedWordRepository.Delete(c.Request().Context(), wordID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Blocked word deleted successfully"})
}
