package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement is a campus-wide notice posted by faculty or admins, with an
// optional attached file path.
type Announcement struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	File        string             `json:"file,omitempty" bson:"file,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// CreateAnnouncementRequest defines the form fields for an announcement.
type CreateAnnouncementRequest struct {
	Title       string `form:"title" validate:"required,min=2,max=200"`
	Description string `form:"description" validate:"required,min=2,max=2000"`
}
