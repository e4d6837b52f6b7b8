package handlers

import (
	"net/http"
	"time"

	"github.com/campusvibes/backend/internal/models"
	"github.com/campusvibes/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// AnalyticsHandler serves the admin dashboard's traffic, activity and
// demographic numbers from the PostgreSQL time series and the user store.
type AnalyticsHandler struct {
	analyticsRepository repositories.AnalyticsRepository
	userRepository      repositories.UserRepository
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsRepo repositories.AnalyticsRepository, userRepo repositories.UserRepository) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsRepository: analyticsRepo,
		userRepository:      userRepo,
	}
}

// RegisterAnalyticsRoutes registers the public visit-recording route
func (h *AnalyticsHandler) RegisterAnalyticsRoutes(g *echo.Group) {
	g.POST("/analytics/visit", h.RecordVisit)
}

// RegisterAdminAnalyticsRoutes registers the dashboard routes
func (h *AnalyticsHandler) RegisterAdminAnalyticsRoutes(g *echo.Group) {
	g.GET("/analytics/traffic", h.GetTraffic)
	g.GET("/analytics/user-activity", h.GetUserActivity)
	g.GET("/analytics/gender-distribution", h.GetGenderDistribution)
}

// RecordVisit increments today's visit counter.
func (h *AnalyticsHandler) RecordVisit(c echo.Context) error {
	traffic, err := h.analyticsRepository.RecordVisit()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, traffic)
}

// GetTraffic returns the last 30 days of daily visit counts.
func (h *AnalyticsHandler) GetTraffic(c echo.Context) error {
	since := time.Now().AddDate(0, 0, -30)
	traffic, err := h.analyticsRepository.TrafficSince(since)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, traffic)
}

// GetUserActivity returns the last 6 months of active-user samples together
// with the current count, the previous sample and the period average.
func (h *AnalyticsHandler) GetUserActivity(c echo.Context) error {
	since := time.Now().AddDate(0, -6, 0)
	samples, err := h.analyticsRepository.ActivitySince(since)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	current, err := h.userRepository.CountActiveSince(c.Request().Context(), time.Now().Add(-5*time.Minute))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var previous models.UserActivity
	if len(samples) > 0 {
		previous = samples[len(samples)-1]
	}

	var average int64
	if len(samples) > 0 {
		var sum int64
		for _, s := range samples {
			sum += s.ActiveUsers
		}
		average = sum / int64(len(samples))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"current":  current,
		"previous": previous.ActiveUsers,
		"average":  average,
		"samples":  samples,
	})
}

// GetGenderDistribution returns user counts grouped by gender.
func (h *AnalyticsHandler) GetGenderDistribution(c echo.Context) error {
	distribution, err := h.userRepository.GenderDistribution(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, distribution)
}
