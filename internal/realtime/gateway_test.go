package realtime

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/campusvibes/backend/internal/models"
	"github.com/campusvibes/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// recorder captures broadcasts and, shared with the fakes below, the order of
// persistence relative to fan-out.
type recorder struct {
	sequence *[]string
	events   []recordedEvent
}

type recordedEvent struct {
	Room  string
	Event string
	Data  interface{}
}

func (r *recorder) Broadcast(room, event string, data interface{}) {
	*r.sequence = append(*r.sequence, "broadcast:"+event)
	r.events = append(r.events, recordedEvent{Room: room, Event: event, Data: data})
}

// The fakes embed the repository interfaces; only the methods the gateway
// calls are implemented.

type fakeUsers struct {
	repositories.UserRepository
	compact map[primitive.ObjectID]*models.UserCompact
}

func (f *fakeUsers) GetCompactByID(ctx context.Context, id primitive.ObjectID) (*models.UserCompact, error) {
	if u, ok := f.compact[id]; ok {
		return u, nil
	}
	return &models.UserCompact{ID: id, FullName: "Someone"}, nil
}

func (f *fakeUsers) Follow(ctx context.Context, follower, target primitive.ObjectID) error {
	return nil
}

func (f *fakeUsers) Unfollow(ctx context.Context, follower, target primitive.ObjectID) error {
	return nil
}

type fakePosts struct {
	repositories.PostRepository
	sequence *[]string
	post     *models.Post
	liked    bool
}

func (f *fakePosts) GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return f.post, nil
}

func (f *fakePosts) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (bool, []primitive.ObjectID, error) {
	*f.sequence = append(*f.sequence, "persist:toggle-like")
	if f.liked {
		return true, []primitive.ObjectID{userID}, nil
	}
	return false, nil, nil
}

func (f *fakePosts) AddComment(ctx context.Context, postID primitive.ObjectID, comment *models.Comment) error {
	*f.sequence = append(*f.sequence, "persist:comment")
	comment.ID = primitive.NewObjectID()
	return nil
}

type fakeChats struct {
	repositories.ChatRepository
	chat *models.Chat
}

func (f *fakeChats) GetChatByID(ctx context.Context, id primitive.ObjectID) (*models.Chat, error) {
	return f.chat, nil
}

func (f *fakeChats) SetLastMessage(ctx context.Context, chatID, messageID primitive.ObjectID) error {
	return nil
}

type fakeMessages struct {
	repositories.MessageRepository
	sequence *[]string
}

func (f *fakeMessages) CreateMessage(ctx context.Context, message *models.Message) error {
	*f.sequence = append(*f.sequence, "persist:message")
	message.ID = primitive.NewObjectID()
	return nil
}

type fakeGroups struct {
	repositories.GroupRepository
	group *models.Group
}

func (f *fakeGroups) GetGroupByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	return f.group, nil
}

func (f *fakeGroups) CreateGroupMessage(ctx context.Context, message *models.GroupMessage) error {
	message.ID = primitive.NewObjectID()
	return nil
}

type fakeNotifications struct {
	repositories.NotificationRepository
	sequence *[]string
	created  []*models.Notification
}

func (f *fakeNotifications) CreateNotification(ctx context.Context, notification *models.Notification) error {
	*f.sequence = append(*f.sequence, "persist:notification")
	notification.ID = primitive.NewObjectID()
	f.created = append(f.created, notification)
	return nil
}

type gatewayFixture struct {
	gateway       *Gateway
	broadcaster   *recorder
	posts         *fakePosts
	notifications *fakeNotifications
	sequence      *[]string
}

func newGatewayFixture(t *testing.T, chat *models.Chat, group *models.Group, post *models.Post, liked bool) *gatewayFixture {
	t.Helper()
	sequence := &[]string{}
	broadcaster := &recorder{sequence: sequence}
	posts := &fakePosts{sequence: sequence, post: post, liked: liked}
	notifications := &fakeNotifications{sequence: sequence}

	gateway := NewGateway(
		broadcaster,
		&fakeUsers{compact: map[primitive.ObjectID]*models.UserCompact{}},
		posts,
		&fakeChats{chat: chat},
		&fakeMessages{sequence: sequence},
		&fakeGroups{group: group},
		notifications,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return &gatewayFixture{
		gateway:       gateway,
		broadcaster:   broadcaster,
		posts:         posts,
		notifications: notifications,
		sequence:      sequence,
	}
}

func TestSendDirectMessagePersistsBeforeBroadcast(t *testing.T) {
	sender := primitive.NewObjectID()
	other := primitive.NewObjectID()
	chat := &models.Chat{ID: primitive.NewObjectID(), Participants: []primitive.ObjectID{sender, other}}
	f := newGatewayFixture(t, chat, nil, nil, false)

	message, err := f.gateway.SendDirectMessage(context.Background(), sender, chat.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", message.Content)

	require.NotEmpty(t, *f.sequence)
	assert.Equal(t, "persist:message", (*f.sequence)[0])

	require.Len(t, f.broadcaster.events, 1)
	assert.Equal(t, ChatRoom(chat.ID.Hex()), f.broadcaster.events[0].Room)
	assert.Equal(t, EventNewMessage, f.broadcaster.events[0].Event)
}

func TestSendDirectMessageRejectsNonParticipant(t *testing.T) {
	chat := &models.Chat{
		ID:           primitive.NewObjectID(),
		Participants: []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()},
	}
	f := newGatewayFixture(t, chat, nil, nil, false)

	_, err := f.gateway.SendDirectMessage(context.Background(), primitive.NewObjectID(), chat.ID, "hi")
	assert.Error(t, err)
	assert.Empty(t, f.broadcaster.events, "nothing may be broadcast when the write is refused")
}

func TestSendGroupMessageRequiresMembership(t *testing.T) {
	member := primitive.NewObjectID()
	group := &models.Group{
		ID:      primitive.NewObjectID(),
		Members: []models.GroupMember{{UserID: member, Role: models.GroupRoleMember}},
	}
	f := newGatewayFixture(t, nil, group, nil, false)

	_, err := f.gateway.SendGroupMessage(context.Background(), primitive.NewObjectID(), group.ID, "hi")
	assert.Error(t, err)
	assert.Empty(t, f.broadcaster.events)

	message, err := f.gateway.SendGroupMessage(context.Background(), member, group.ID, "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", message.Message)
	require.Len(t, f.broadcaster.events, 1)
	assert.Equal(t, GroupRoom(group.ID.Hex()), f.broadcaster.events[0].Room)
}

func TestToggleLikeNotifiesOwnerOnLikeOnly(t *testing.T) {
	owner := primitive.NewObjectID()
	actor := primitive.NewObjectID()
	post := &models.Post{ID: primitive.NewObjectID(), UserID: owner}

	f := newGatewayFixture(t, nil, nil, post, true)
	update, err := f.gateway.ToggleLike(context.Background(), actor, post.ID)
	require.NoError(t, err)
	assert.True(t, update.Liked)

	require.Len(t, f.notifications.created, 1)
	assert.Equal(t, owner, f.notifications.created[0].UserID)
	assert.Equal(t, models.NotificationLike, f.notifications.created[0].Type)

	// Unlike: broadcast still happens, but no notification.
	f = newGatewayFixture(t, nil, nil, post, false)
	update, err = f.gateway.ToggleLike(context.Background(), actor, post.ID)
	require.NoError(t, err)
	assert.False(t, update.Liked)
	assert.Empty(t, f.notifications.created)
	require.NotEmpty(t, f.broadcaster.events)
	assert.Equal(t, PostRoom(post.ID.Hex()), f.broadcaster.events[0].Room)
}

func TestToggleLikeSelfNeverNotifies(t *testing.T) {
	owner := primitive.NewObjectID()
	post := &models.Post{ID: primitive.NewObjectID(), UserID: owner}
	f := newGatewayFixture(t, nil, nil, post, true)

	_, err := f.gateway.ToggleLike(context.Background(), owner, post.ID)
	require.NoError(t, err)
	assert.Empty(t, f.notifications.created)
}

func TestAddCommentPersistsBeforeBroadcastAndNotifies(t *testing.T) {
	owner := primitive.NewObjectID()
	actor := primitive.NewObjectID()
	post := &models.Post{ID: primitive.NewObjectID(), UserID: owner}
	f := newGatewayFixture(t, nil, nil, post, false)

	comment, err := f.gateway.AddComment(context.Background(), actor, post.ID, "nice")
	require.NoError(t, err)
	assert.Equal(t, "nice", comment.Text)

	require.GreaterOrEqual(t, len(*f.sequence), 2)
	assert.Equal(t, "persist:comment", (*f.sequence)[0])
	assert.Equal(t, "broadcast:"+EventNewComment, (*f.sequence)[1])

	require.Len(t, f.notifications.created, 1)
	assert.Equal(t, models.NotificationComment, f.notifications.created[0].Type)
}

func TestAddCommentSelfNoNotification(t *testing.T) {
	owner := primitive.NewObjectID()
	post := &models.Post{ID: primitive.NewObjectID(), UserID: owner}
	f := newGatewayFixture(t, nil, nil, post, false)

	_, err := f.gateway.AddComment(context.Background(), owner, post.ID, "mine")
	require.NoError(t, err)
	assert.Empty(t, f.notifications.created)
}

func TestFollowNotifiesTarget(t *testing.T) {
	follower := primitive.NewObjectID()
	target := primitive.NewObjectID()
	f := newGatewayFixture(t, nil, nil, nil, false)

	require.NoError(t, f.gateway.Follow(context.Background(), follower, target))

	require.Len(t, f.notifications.created, 1)
	assert.Equal(t, target, f.notifications.created[0].UserID)
	assert.Equal(t, models.NotificationFollow, f.notifications.created[0].Type)

	require.Len(t, f.broadcaster.events, 1)
	assert.Equal(t, UserRoom(target.Hex()), f.broadcaster.events[0].Room)
	assert.Equal(t, EventNewNotification, f.broadcaster.events[0].Event)
}

func TestIssueWarningIsSelfAddressed(t *testing.T) {
	user := primitive.NewObjectID()
	f := newGatewayFixture(t, nil, nil, nil, false)

	require.NoError(t, f.gateway.IssueWarning(context.Background(), user, "watch it"))

	require.Len(t, f.notifications.created, 1)
	notification := f.notifications.created[0]
	assert.Equal(t, user, notification.UserID)
	assert.Equal(t, user, notification.FromUserID)
	assert.Equal(t, models.NotificationWarning, notification.Type)
	assert.Equal(t, "watch it", notification.Message)

	require.Len(t, f.broadcaster.events, 1)
	assert.Equal(t, UserRoom(user.Hex()), f.broadcaster.events[0].Room)
}
