package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group member roles.
const (
	GroupRoleAdmin  = "admin"
	GroupRoleMember = "member"
)

// GroupMember ties a user to a group with a role. The creator joins as admin.
type GroupMember struct {
	UserID primitive.ObjectID `json:"userId" bson:"user_id"`
	Role   string             `json:"role" bson:"role"`
}

// Group is a multi-member conversation space.
type Group struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	CreatedBy   primitive.ObjectID `json:"createdBy" bson:"created_by"`
	IsPublic    bool               `json:"isPublic" bson:"is_public"`
	Members     []GroupMember      `json:"members" bson:"members"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// HasMember reports whether userID is a member of the group.
func (g *Group) HasMember(userID primitive.ObjectID) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// GroupMessage is the group counterpart of Message.
type GroupMessage struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	GroupID   primitive.ObjectID `json:"groupId" bson:"group_id"`
	SenderID  primitive.ObjectID `json:"senderId" bson:"sender_id"`
	Message   string             `json:"message" bson:"message"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// ExpandedGroupMessage carries the sender's display fields.
type ExpandedGroupMessage struct {
	GroupMessage `bson:",inline"`
	Sender       UserCompact `json:"sender" bson:"sender"`
}

// CreateGroupRequest defines the request body for creating a group
type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=80"`
	Description string `json:"description" validate:"omitempty,max=500"`
	IsPublic    bool   `json:"isPublic"`
}

// SendGroupMessageRequest defines the request body for a group message
type SendGroupMessageRequest struct {
	Message string `json:"message" validate:"required,min=1,max=5000"`
}
