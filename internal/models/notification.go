package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types.
const (
	NotificationLike     = "like"
	NotificationComment  = "comment"
	NotificationFollow   = "follow"
	NotificationUnfollow = "unfollow"
	NotificationWarning  = "warning"
)

// Notification targets a single user and is created as a side effect of other
// actions. Only the read flag ever changes after creation. Warning
// notifications are self-addressed (FromUserID == UserID) and carry their own
// message text.
type Notification struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"userId" bson:"user_id"`
	Type       string             `json:"type" bson:"type"`
	FromUserID primitive.ObjectID `json:"fromUserId" bson:"from_user_id"`
	PostID     primitive.ObjectID `json:"postId,omitempty" bson:"post_id,omitempty"`
	Message    string             `json:"message,omitempty" bson:"message,omitempty"`
	Read       bool               `json:"read" bson:"read"`
	CreatedAt  time.Time          `json:"createdAt" bson:"created_at"`
}

// ExpandedNotification carries the acting user's display fields and a
// human-readable message composed from the notification type.
type ExpandedNotification struct {
	Notification `bson:",inline"`
	FromUser     UserCompact `json:"fromUser" bson:"from_user"`
	PostCaption  string      `json:"postCaption,omitempty" bson:"post_caption,omitempty"`
}

// ComposeMessage builds the display message for a notification. Warning
// notifications use their stored message; the rest are derived from the actor
// name and type.
func (n *ExpandedNotification) ComposeMessage() string {
	if n.Type == NotificationWarning {
		if n.Message != "" {
			return n.Message
		}
		return "Your post contains inappropriate content."
	}

	switch n.Type {
	case NotificationLike:
		return fmt.Sprintf("%s liked your post %q.", n.FromUser.FullName, n.PostCaption)
	case NotificationComment:
		return fmt.Sprintf("%s commented on your post %q.", n.FromUser.FullName, n.PostCaption)
	case NotificationFollow:
		return fmt.Sprintf("%s started following you.", n.FromUser.FullName)
	case NotificationUnfollow:
		return fmt.Sprintf("%s unfollowed you.", n.FromUser.FullName)
	}
	return n.Message
}
