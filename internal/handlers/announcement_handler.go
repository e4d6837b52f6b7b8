package handlers

import (
	"net/http"

	"github.com/campusvibes/backend/internal/models"
	"github.com/campusvibes/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// AnnouncementHandler handles campus-wide announcements. Reading is open to
// all authenticated users; creation and deletion are admin routes.
type AnnouncementHandler struct {
	announcementRepository repositories.AnnouncementRepository
	uploadDir              string
}

// NewAnnouncementHandler creates a new AnnouncementHandler
func NewAnnouncementHandler(announcementRepo repositories.AnnouncementRepository, uploadDir string) *AnnouncementHandler {
	return &AnnouncementHandler{announcementRepository: announcementRepo, uploadDir: uploadDir}
}

// RegisterAnnouncementRoutes registers the read route
func (h *AnnouncementHandler) RegisterAnnouncementRoutes(g *echo.Group) {
	g.GET("/announcements", h.GetAnnouncements)
}

// RegisterAdminAnnouncementRoutes registers the admin routes
func (h *AnnouncementHandler) RegisterAdminAnnouncementRoutes(g *echo.Group) {
	g.POST("/announcements", h.CreateAnnouncement)
	g.DELETE("/announcements/:announcement_id", h.DeleteAnnouncement)
}

// GetAnnouncements lists announcements, newest first.
func (h *AnnouncementHandler) GetAnnouncements(c echo.Context) error {
	announcements, err := h.announcementRepository.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, announcements)
}

// CreateAnnouncement creates an announcement with an optional attached file.
func (h *AnnouncementHandler) CreateAnnouncement(c echo.Context) error {
	var req models.CreateAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	filePath, err := saveUpload(c, "file", h.uploadDir)
	if err != nil {
		return err
	}

	announcement := &models.Announcement{
		Title:       req.Title,
		Description: req.Description,
		File:        filePath,
	}
	if err := h.announcementRepository.Create(c.Request().Context(), announcement); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, announcement)
}

// DeleteAnnouncement removes an announcement.
func (h *AnnouncementHandler) DeleteAnnouncement(c echo.Context) error {
	announcementID, err := parseObjectID(c, "announcement_id")
	if err != nil {
		return err
	}

	if err := h.announcementRepository.Delete(c.Request().Context(), announcementID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Announcement deleted successfully"})
}
