package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message belongs to exactly one chat. Immutable after creation except for
// readBy growth; the sender is in readBy from the start.
type Message struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	ChatID    primitive.ObjectID   `json:"chatId" bson:"chat_id"`
	SenderID  primitive.ObjectID   `json:"senderId" bson:"sender_id"`
	Content   string               `json:"content" bson:"content"`
	ReadBy    []primitive.ObjectID `json:"readBy" bson:"read_by"`
	CreatedAt time.Time            `json:"createdAt" bson:"created_at"`
}

// ExpandedMessage carries the sender's display fields for rendering.
type ExpandedMessage struct {
	Message `bson:",inline"`
	Sender  UserCompact `json:"sender" bson:"sender"`
}

// SendMessageRequest defines the request body for sending a direct message
type SendMessageRequest struct {
	ChatID  string `json:"chatId" validate:"required"`
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

// MarkReadRequest marks every message of a chat as read by the caller.
type MarkReadRequest struct {
	ChatID string `json:"chatId" validate:"required"`
}
