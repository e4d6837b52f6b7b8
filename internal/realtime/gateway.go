package realtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campusvibes/backend/internal/models"
	"github.com/campusvibes/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Broadcaster is the transport contract the gateway needs: at-most-once,
// best-effort, in-order-per-writer delivery to a room.
type Broadcaster interface {
	Broadcast(room, event string, data interface{})
}

// Gateway performs the authoritative write for every realtime-producing
// domain event, then broadcasts it. The write either fully succeeds and the
// returned record is visible to subsequent reads, or it fails and nothing is
// broadcast. Like, comment, follow and unfollow actions also create the
// target owner's notification here; self-actions never notify.
type Gateway struct {
	broadcaster   Broadcaster
	users         repositories.UserRepository
	posts         repositories.PostRepository
	chats         repositories.ChatRepository
	messages      repositories.MessageRepository
	groups        repositories.GroupRepository
	notifications repositories.NotificationRepository
	logger        *slog.Logger
}

// NewGateway creates the persistence gateway.
func NewGateway(
	broadcaster Broadcaster,
	users repositories.UserRepository,
	posts repositories.PostRepository,
	chats repositories.ChatRepository,
	messages repositories.MessageRepository,
	groups repositories.GroupRepository,
	notifications repositories.NotificationRepository,
	logger *slog.Logger,
) *Gateway {
	return &Gateway{
		broadcaster:   broadcaster,
		users:         users,
		posts:         posts,
		chats:         chats,
		messages:      messages,
		groups:        groups,
		notifications: notifications,
		logger:        logger,
	}
}

// SendDirectMessage persists a message into a chat the sender participates
// in, updates the chat's last message, and fans the expanded record out to
// the chat room.
func (g *Gateway) SendDirectMessage(ctx context.Context, senderID, chatID primitive.ObjectID, content string) (*models.ExpandedMessage, error) {
	chat, err := g.chats.GetChatByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	participant := false
	for _, p := range chat.Participants {
		if p == senderID {
			participant = true
			break
		}
	}
	if !participant {
		return nil, fmt.Errorf("sender is not a participant of this chat")
	}

	message := &models.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Content:  content,
		ReadBy:   []primitive.ObjectID{senderID},
	}
	if err := g.messages.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if err := g.chats.SetLastMessage(ctx, chatID, message.ID); err != nil {
		g.logger.Error("update chat last message", "chat", chatID.Hex(), "error", err)
	}

	expanded, err := g.expandMessage(ctx, message)
	if err != nil {
		return nil, err
	}

	g.broadcaster.Broadcast(ChatRoom(chatID.Hex()), EventNewMessage, expanded)
	return expanded, nil
}

// SendGroupMessage persists a message into a group the sender belongs to and
// fans the expanded record out to the group room.
func (g *Gateway) SendGroupMessage(ctx context.Context, senderID, groupID primitive.ObjectID, text string) (*models.ExpandedGroupMessage, error) {
	group, err := g.groups.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(senderID) {
		return nil, fmt.Errorf("sender is not a member of this group")
	}

	message := &models.GroupMessage{
		GroupID:  groupID,
		SenderID: senderID,
		Message:  text,
	}
	if err := g.groups.CreateGroupMessage(ctx, message); err != nil {
		return nil, err
	}

	sender, err := g.users.GetCompactByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	expanded := &models.ExpandedGroupMessage{GroupMessage: *message, Sender: *sender}

	g.broadcaster.Broadcast(GroupRoom(groupID.Hex()), EventNewGroupMessage, expanded)
	return expanded, nil
}

// ToggleLike atomically toggles the actor's like on a post and broadcasts the
// authoritative likes array to the post room. A like (not an unlike) of
// someone else's post creates one notification for the owner.
func (g *Gateway) ToggleLike(ctx context.Context, actorID, postID primitive.ObjectID) (*LikeUpdate, error) {
	post, err := g.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked, likes, err := g.posts.ToggleLike(ctx, postID, actorID)
	if err != nil {
		return nil, err
	}

	update := &LikeUpdate{
		PostID: postID.Hex(),
		Likes:  hexIDs(likes),
		Liked:  liked,
	}
	g.broadcaster.Broadcast(PostRoom(postID.Hex()), EventPostLiked, update)

	if liked && actorID != post.UserID {
		g.notify(ctx, &models.Notification{
			UserID:     post.UserID,
			Type:       models.NotificationLike,
			FromUserID: actorID,
			PostID:     postID,
		})
	}
	return update, nil
}

// AddComment persists a comment on a post, broadcasts it to the post room,
// and notifies the post owner unless they commented themselves.
func (g *Gateway) AddComment(ctx context.Context, actorID, postID primitive.ObjectID, text string) (*models.Comment, error) {
	post, err := g.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{UserID: actorID, Text: text}
	if err := g.posts.AddComment(ctx, postID, comment); err != nil {
		return nil, err
	}

	g.broadcaster.Broadcast(PostRoom(postID.Hex()), EventNewComment, map[string]interface{}{
		"postId":  postID.Hex(),
		"comment": comment,
	})

	if actorID != post.UserID {
		g.notify(ctx, &models.Notification{
			UserID:     post.UserID,
			Type:       models.NotificationComment,
			FromUserID: actorID,
			PostID:     postID,
		})
	}
	return comment, nil
}

// Follow adds the follow relationship and notifies the target.
func (g *Gateway) Follow(ctx context.Context, followerID, targetID primitive.ObjectID) error {
	if err := g.users.Follow(ctx, followerID, targetID); err != nil {
		return err
	}
	g.notify(ctx, &models.Notification{
		UserID:     targetID,
		Type:       models.NotificationFollow,
		FromUserID: followerID,
	})
	return nil
}

// Unfollow removes the follow relationship and notifies the target.
func (g *Gateway) Unfollow(ctx context.Context, followerID, targetID primitive.ObjectID) error {
	if err := g.users.Unfollow(ctx, followerID, targetID); err != nil {
		return err
	}
	g.notify(ctx, &models.Notification{
		UserID:     targetID,
		Type:       models.NotificationUnfollow,
		FromUserID: followerID,
	})
	return nil
}

// IssueWarning creates a self-addressed warning notification, used by the
// moderation filter when a post contains denylisted words.
func (g *Gateway) IssueWarning(ctx context.Context, userID primitive.ObjectID, message string) error {
	notification := &models.Notification{
		UserID:     userID,
		Type:       models.NotificationWarning,
		FromUserID: userID,
		Message:    message,
	}
	if err := g.notifications.CreateNotification(ctx, notification); err != nil {
		return err
	}
	g.broadcaster.Broadcast(UserRoom(userID.Hex()), EventNewNotification, notification)
	return nil
}

// AnnounceNewChat tells the other participant's personal room about a chat
// the caller just created. The chat is already persisted.
func (g *Gateway) AnnounceNewChat(recipientID primitive.ObjectID, chat *models.ExpandedChat) {
	g.broadcaster.Broadcast(UserRoom(recipientID.Hex()), EventNewChat, chat)
}

// PublishPost fans a freshly created post out to the feed room. The post is
// already persisted.
func (g *Gateway) PublishPost(post *models.ExpandedPost) {
	g.broadcaster.Broadcast(FeedRoom, EventNewPost, post)
}

// notify persists a notification, then emits it to the target's personal
// room. Notification failures are logged, not propagated: the triggering
// action has already succeeded.
func (g *Gateway) notify(ctx context.Context, notification *models.Notification) {
	if err := g.notifications.CreateNotification(ctx, notification); err != nil {
		g.logger.Error("create notification", "type", notification.Type, "error", err)
		return
	}
	g.broadcaster.Broadcast(UserRoom(notification.UserID.Hex()), EventNewNotification, notification)
}

func (g *Gateway) expandMessage(ctx context.Context, message *models.Message) (*models.ExpandedMessage, error) {
	sender, err := g.users.GetCompactByID(ctx, message.SenderID)
	if err != nil {
		return nil, err
	}
	return &models.ExpandedMessage{Message: *message, Sender: *sender}, nil
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}
