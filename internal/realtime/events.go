package realtime

import "encoding/json"

// Inbound events (client to server).
const (
	EventJoinUserRoom     = "join-user-room"
	EventJoinChat         = "join-chat"
	EventJoinGroup        = "join-group"
	EventJoinPost         = "join-post"
	EventSendMessage      = "send-message"
	EventSendGroupMessage = "send-group-message"
)

// Outbound events (server to room).
const (
	EventNewMessage      = "new-message"
	EventNewGroupMessage = "new-group-message"
	EventNewNotification = "new-notification"
	EventNewChat         = "new-chat"
	EventNewPost         = "new-post"
	EventPostLiked       = "post-liked"
	EventNewComment      = "new-comment"
	EventError           = "error"
)

// FeedRoom receives new-post events. Every connection joins it at session
// start.
const FeedRoom = "feed"

// Envelope is the wire frame for every websocket message in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// UserRoom is the personal notification channel of a user.
func UserRoom(userID string) string { return "user:" + userID }

// ChatRoom is the fan-out room of a two-party chat.
func ChatRoom(chatID string) string { return "chat:" + chatID }

// GroupRoom is the fan-out room of a group.
func GroupRoom(groupID string) string { return "group:" + groupID }

// PostRoom is the per-post room for like and comment events. Clients join it
// when they open a post instead of receiving global broadcasts.
func PostRoom(postID string) string { return "post:" + postID }

// LikeUpdate is the post-liked payload: the authoritative likes array after a
// toggle.
type LikeUpdate struct {
	PostID string   `json:"postId"`
	Likes  []string `json:"likes"`
	Liked  bool     `json:"liked"`
}

// ErrorPayload is sent only to the offending connection; transport errors are
// never fatal to the connection.
type ErrorPayload struct {
	Message string `json:"message"`
}
