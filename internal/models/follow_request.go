package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Follow request statuses. A request is mutated to accepted or rejected at
// most once and never reverts to pending.
const (
	FollowRequestPending  = "pending"
	FollowRequestAccepted = "accepted"
	FollowRequestRejected = "rejected"
)

// FollowRequest is the consent record required to follow a private-profile
// user. At most one pending request exists per (from, to) pair.
type FollowRequest struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	From      primitive.ObjectID `json:"from" bson:"from"`
	To        primitive.ObjectID `json:"to" bson:"to"`
	Status    string             `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

// ExpandedFollowRequest carries the sender's display fields.
type ExpandedFollowRequest struct {
	FollowRequest `bson:",inline"`
	FromUser      UserCompact `json:"fromUser" bson:"from_user"`
}
