package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat is a two-party conversation, created lazily on first contact. The
// participant pair is stored sorted so the same two users always map to the
// same document.
type Chat struct {
	ID            primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Participants  []primitive.ObjectID `json:"participants" bson:"participants"`
	LastMessageID primitive.ObjectID   `json:"lastMessageId,omitempty" bson:"last_message_id,omitempty"`
	CreatedAt     time.Time            `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updated_at"`
}

// ExpandedChat carries participant display fields and the last message.
type ExpandedChat struct {
	Chat         `bson:",inline"`
	Participants []UserCompact `json:"participants" bson:"participant_users"`
	LastMessage  *Message      `json:"lastMessage,omitempty" bson:"last_message,omitempty"`
}

// StartChatRequest identifies the other participant.
type StartChatRequest struct {
	UserID string `json:"userId" validate:"required"`
}
