package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile visibility values.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered campus member stored in MongoDB.
// New accounts start unapproved and cannot log in until an admin approves them.
type User struct {
	ID                primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	FullName          string               `json:"fullName" bson:"full_name"`
	Email             string               `json:"email" bson:"email"`
	Password          string               `json:"-" bson:"password"`
	Image             string               `json:"image" bson:"image"`
	AboutMe           string               `json:"aboutMe" bson:"about_me"`
	Gender            string               `json:"gender" bson:"gender"` // male, female, other
	Role              string               `json:"role" bson:"role"`     // user, admin
	Type              string               `json:"type" bson:"type"`     // student, faculty
	Document          string               `json:"document" bson:"document"`
	IsApproved        bool                 `json:"isApproved" bson:"is_approved"`
	Followers         []primitive.ObjectID `json:"followers" bson:"followers"`
	Following         []primitive.ObjectID `json:"following" bson:"following"`
	LastActive        time.Time            `json:"lastActive" bson:"last_active"`
	IsOnline          bool                 `json:"isOnline" bson:"is_online"`
	ProfileVisibility string               `json:"profileVisibility" bson:"profile_visibility"`
	CreatedAt         time.Time            `json:"createdAt" bson:"created_at"`
	UpdatedAt         time.Time            `json:"updatedAt" bson:"updated_at"`
}

// UserCompact is the reduced user shape embedded in expanded records
// (message senders, notification actors, follower lists).
type UserCompact struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	FullName string             `json:"fullName" bson:"full_name"`
	Email    string             `json:"email,omitempty" bson:"email,omitempty"`
	Image    string             `json:"image" bson:"image"`
}

// ToCompact returns the compact representation of the user.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Image:    u.Image,
	}
}

// IsFollowedBy reports whether userID is in the user's followers set.
func (u *User) IsFollowedBy(userID primitive.ObjectID) bool {
	for _, f := range u.Followers {
		if f == userID {
			return true
		}
	}
	return false
}

// RegisterUserRequest defines the multipart form fields for registration.
// Image and document paths are attached by the handler after upload.
type RegisterUserRequest struct {
	FullName string `form:"fullName" validate:"required,min=2,max=80"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=8"`
	AboutMe  string `form:"aboutMe" validate:"omitempty,max=500"`
	Gender   string `form:"gender" validate:"required,oneof=male female other"`
	Type     string `form:"type" validate:"required,oneof=student faculty"`
}

// LoginRequest defines the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the editable profile fields.
type UpdateProfileRequest struct {
	FullName string `form:"fullName" validate:"omitempty,min=2,max=80"`
	AboutMe  string `form:"aboutMe" validate:"omitempty,max=500"`
	Image    string `form:"image"`
}

// UpdateVisibilityRequest toggles profile visibility.
type UpdateVisibilityRequest struct {
	ProfileVisibility string `json:"profileVisibility" validate:"required,oneof=public private"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
