package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post types.
const (
	PostTypeText     = "text"
	PostTypeImage    = "image"
	PostTypeVideo    = "video"
	PostTypeDocument = "document"
)

// Moderation statuses. Every post starts pending and becomes visible in the
// feed only after an admin approves it.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Comment is embedded in its post, ordered by insertion.
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	UserID    primitive.ObjectID `json:"userId" bson:"user_id"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

// Post represents a campus post stored in MongoDB. Content holds inline text
// for text posts and the stored-file path for image/video/document posts.
type Post struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID   `json:"userId" bson:"user_id"`
	Type      string               `json:"type" bson:"type"`
	Caption   string               `json:"caption" bson:"caption"`
	Content   string               `json:"content" bson:"content"`
	Status    string               `json:"status" bson:"status"`
	Likes     []primitive.ObjectID `json:"likes" bson:"likes"`
	Comments  []Comment            `json:"comments" bson:"comments"`
	CreatedAt time.Time            `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updated_at"`
}

// ExpandedPost carries the author's display fields alongside the post.
type ExpandedPost struct {
	Post   `bson:",inline"`
	Author UserCompact `json:"author" bson:"author"`
}

// CreatePostRequest defines the form fields for creating a post. The file for
// non-text posts arrives as a multipart upload.
type CreatePostRequest struct {
	Type    string `form:"type" validate:"required,oneof=text image video document"`
	Caption string `form:"caption" validate:"omitempty,max=500"`
	Content string `form:"content" validate:"omitempty,max=5000"`
}

// AddCommentRequest defines the request body for commenting on a post
type AddCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}
