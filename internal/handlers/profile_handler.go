package handlers

import (
	"net/http"

	"github.com/campusvibes/backend/internal/models"
	"github.com/campusvibes/backend/internal/realtime"
	"github.com/campusvibes/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ProfileHandler handles profile viewing, editing and the follow graph.
type ProfileHandler struct {
	userRepository repositories.UserRepository
	postRepository repositories.PostRepository
	gateway        *realtime.Gateway
	uploadDir      string
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository, gateway *realtime.Gateway, uploadDir string) *ProfileHandler {
	return &ProfileHandler{
		userRepository: userRepo,
		postRepository: postRepo,
		gateway:        gateway,
		uploadDir:      uploadDir,
	}
}

// RegisterProfileRoutes registers profile routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile/:user_id", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.PUT("/profile/visibility", h.UpdateVisibility)
	g.POST("/profile/:user_id/follow", h.FollowUser)
	g.POST("/profile/:user_id/unfollow", h.UnfollowUser)
}

// GetProfile returns a user's profile with follower/following display fields
// and their approved posts. Private profiles hide posts from everyone but the
// owner and their followers.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	userID, err := parseObjectID(c, "user_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	followers, err := h.userRepository.GetCompactByIDs(ctx, user.Followers)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	following, err := h.userRepository.GetCompactByIDs(ctx, user.Following)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	posts := []models.Post{}
	visible := user.ProfileVisibility == models.VisibilityPublic ||
		userID == currentUserID ||
		user.IsFollowedBy(currentUserID)
	if visible {
		posts, err = h.postRepository.GetApprovedPostsByUser(ctx, userID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":      user,
		"followers": followers,
		"following": following,
		"posts":     posts,
	})
}

// UpdateProfile updates the caller's editable profile fields, with an
// optional new profile image.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	image, err := saveUpload(c, "image", h.uploadDir)
	if err != nil {
		return err
	}
	if image == "" {
		image = req.Image
	}

	user, err := h.userRepository.UpdateProfile(c.Request().Context(), currentUserID, req.FullName, req.AboutMe, image)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateVisibility toggles the caller's profile between public and private.
func (h *ProfileHandler) UpdateVisibility(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateVisibilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.SetVisibility(c.Request().Context(), currentUserID, req.ProfileVisibility)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// FollowUser follows a public-profile user directly. Private profiles
// require a follow request instead.
func (h *ProfileHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := parseObjectID(c, "user_id")
	if err != nil {
		return err
	}
	if targetID == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot follow yourself")
	}

	ctx := c.Request().Context()
	target, err := h.userRepository.GetUserByID(ctx, targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if target.ProfileVisibility == models.VisibilityPrivate {
		return echo.NewHTTPError(http.StatusForbidden, "This profile is private; send a follow request instead")
	}

	if err := h.gateway.Follow(ctx, currentUserID, targetID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User followed successfully"})
}

// UnfollowUser removes the follow relationship.
func (h *ProfileHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := parseObjectID(c, "user_id")
	if err != nil {
		return err
	}

	if err := h.gateway.Unfollow(c.Request().Context(), currentUserID, targetID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User unfollowed successfully"})
}
