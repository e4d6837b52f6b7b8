package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// BlockedWord is a denylist entry consumed by the moderation filter.
// Admin-managed, independent lifecycle.
type BlockedWord struct {
	ID   primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Word string             `json:"word" bson:"word"`
}

// AddBlockedWordRequest defines the request body for adding a denylist entry
type AddBlockedWordRequest struct {
	Word string `json:"word" validate:"required,min=1,max=60"`
}
