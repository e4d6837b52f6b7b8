package handlers

import (
	"net/http"
	"strconv"

	"github.com/campusvibes/backend/internal/models"
	"github.com/campusvibes/backend/internal/moderation"
	"github.com/campusvibes/backend/internal/realtime"
	"github.com/campusvibes/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// PostHandler handles post creation, the feed, likes and comments.
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	filter         *moderation.Filter
	gateway        *realtime.Gateway
	uploadDir      string
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, filter *moderation.Filter, gateway *realtime.Gateway, uploadDir string) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		filter:         filter,
		gateway:        gateway,
		uploadDir:      uploadDir,
	}
}

// RegisterPostRoutes registers post routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.DELETE("/posts/:post_id", h.DeletePost)
	g.POST("/posts/:post_id/like", h.LikePost)
	g.POST("/posts/:post_id/comments", h.AddComment)
	g.GET("/posts/:post_id/comments", h.GetComments)
}

// RegisterAdminPostRoutes registers the moderation queue routes
func (h *PostHandler) RegisterAdminPostRoutes(g *echo.Group) {
	g.GET("/posts", h.GetAllPostsAdmin)
	g.PUT("/posts/:post_id/approve", h.ApprovePost)
	g.PUT("/posts/:post_id/reject", h.RejectPost)
}

// CreatePost creates a pending post. Text posts carry inline content;
// image/video/document posts require an uploaded file whose stored path
// becomes the content. Denylisted content still creates the post but issues
// exactly one self-addressed warning notification.
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	content := req.Content
	if req.Type != models.PostTypeText {
		path, err := saveUpload(c, "file", h.uploadDir)
		if err != nil {
			return err
		}
		if path == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "File is required for image/video/document posts")
		}
		content = path
	} else if content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Content is required for text posts")
	}

	flagged, err := h.filter.Contains(ctx, req.Content, req.Caption)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post := &models.Post{
		UserID:  currentUserID,
		Type:    req.Type,
		Caption: req.Caption,
		Content: content,
	}
	if err := h.postRepository.CreatePost(ctx, post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if flagged {
		if err := h.gateway.IssueWarning(ctx, currentUserID, moderation.WarningMessage); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	author, err := h.userRepository.GetCompactByID(ctx, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	expanded := &models.ExpandedPost{Post: *post, Author: *author}
	h.gateway.PublishPost(expanded)

	if flagged {
		return c.JSON(http.StatusCreated, echo.Map{
			"message": "Post created successfully, but a warning has been issued for inappropriate content.",
			"post":    expanded,
			"warning": true,
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Post created successfully", "post": expanded})
}

// GetPosts returns the approved feed with pagination, newest first, with
// author display fields expanded.
func (h *PostHandler) GetPosts(c echo.Context) error {
	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	ctx := c.Request().Context()
	posts, total, err := h.postRepository.GetApprovedPosts(ctx, (page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	expanded, err := h.expandPosts(c, posts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts":      expanded,
		"pagination": paginationMeta(page, limit, total),
	})
}

// DeletePost deletes a post. Only the owner may delete it.
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseObjectID(c, "post_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Unauthorized to delete this post")
	}

	if err := h.postRepository.DeletePost(ctx, postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}

// LikePost toggles the caller's like on a post.
func (h *PostHandler) LikePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseObjectID(c, "post_id")
	if err != nil {
		return err
	}

	update, err := h.gateway.ToggleLike(c.Request().Context(), currentUserID, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, update)
}

// AddComment adds a comment to a post. Denylisted comments are rejected
// outright, unlike posts.
func (h *PostHandler) AddComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID.IsZero() {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseObjectID(c, "post_id")
	if err != nil {
		return err
	}

	var req models.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	flagged, err := h.filter.Contains(ctx, req.Text)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if flagged {
		return echo.NewHTTPError(http.StatusBadRequest, "Your comment contains prohibited words.")
	}

	comment, err := h.gateway.AddComment(ctx, currentUserID, postID, req.Text)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetComments returns a post's comments with commenter display fields.
func (h *PostHandler) GetComments(c echo.Context) error {
	postID, err := parseObjectID(c, "post_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	comments, err := h.postRepository.GetComments(ctx, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	type expandedComment struct {
		models.Comment
		User models.UserCompact `json:"user"`
	}
	expanded := make([]expandedComment, len(comments))
	for i, comment := range comments {
		expanded[i] = expandedComment{Comment: comment}
		if user, err := h.userRepository.GetCompactByID(ctx, comment.UserID); err == nil {
			expanded[i].User = *user
		}
	}
	return c.JSON(http.StatusOK, expanded)
}

// GetAllPostsAdmin returns every post regardless of status for the
// moderation queue.
func (h *PostHandler) GetAllPostsAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	posts, err := h.postRepository.GetAllPosts(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	expanded, err := h.expandPosts(c, posts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": expanded})
}

// ApprovePost transitions a post to approved.
func (h *PostHandler) ApprovePost(c echo.Context) error {
	return h.setStatus(c, models.StatusApproved)
}

// RejectPost transitions a post to rejected.
func (h *PostHandler) RejectPost(c echo.Context) error {
	return h.setStatus(c, models.StatusRejected)
}

func (h *PostHandler) setStatus(c echo.Context, status string) error {
	postID, err := parseObjectID(c, "post_id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.SetStatus(c.Request().Context(), postID, status)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": post})
}

func (h *PostHandler) expandPosts(c echo.Context, posts []models.Post) ([]models.ExpandedPost, error) {
	ctx := c.Request().Context()
	cache := make(map[string]models.UserCompact)

	expanded := make([]models.ExpandedPost, len(posts))
	for i, post := range posts {
		expanded[i] = models.ExpandedPost{Post: post}
		key := post.UserID.Hex()
		if author, ok := cache[key]; ok {
			expanded[i].Author = author
			continue
		}
		author, err := h.userRepository.GetCompactByID(ctx, post.UserID)
		if err != nil {
			continue
		}
		cache[key] = *author
		expanded[i].Author = *author
	}
	return expanded, nil
}
