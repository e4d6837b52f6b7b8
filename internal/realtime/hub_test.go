package realtime

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func receive(t *testing.T, client *Client) Envelope {
	t.Helper()
	select {
	case raw, ok := <-client.Receive():
		require.True(t, ok, "send channel closed")
		var envelope Envelope
		require.NoError(t, json.Unmarshal(raw, &envelope))
		return envelope
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delivery")
		return Envelope{}
	}
}

func TestHubDeliversToRoomMembers(t *testing.T) {
	hub := newTestHub(t)

	a := NewClient(hub, primitive.NewObjectID())
	b := NewClient(hub, primitive.NewObjectID())
	hub.Register(a)
	hub.Register(b)

	room := PostRoom(primitive.NewObjectID().Hex())
	require.NoError(t, hub.Join(a, room))
	require.NoError(t, hub.Join(b, room))

	hub.Broadcast(room, EventPostLiked, map[string]string{"postId": "x"})

	assert.Equal(t, EventPostLiked, receive(t, a).Event)
	assert.Equal(t, EventPostLiked, receive(t, b).Event)
}

func TestHubNoRetroactiveDelivery(t *testing.T) {
	hub := newTestHub(t)

	client := NewClient(hub, primitive.NewObjectID())
	hub.Register(client)

	room := ChatRoom("abc")
	hub.Broadcast(room, EventNewMessage, map[string]string{"seq": "before-join"})
	require.NoError(t, hub.Join(client, room))
	hub.Broadcast(room, EventNewMessage, map[string]string{"seq": "after-join"})

	// The ops channel is FIFO, so the first delivery must be the post-join
	// broadcast; the earlier one is gone.
	envelope := receive(t, client)
	var data map[string]string
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.Equal(t, "after-join", data["seq"])
}

func TestHubAtMostOncePerConnection(t *testing.T) {
	hub := newTestHub(t)

	client := NewClient(hub, primitive.NewObjectID())
	hub.Register(client)

	room := GroupRoom("g1")
	require.NoError(t, hub.Join(client, room))
	require.NoError(t, hub.Join(client, room))

	hub.Broadcast(room, EventNewGroupMessage, "one")
	receive(t, client)

	select {
	case raw := <-client.Receive():
		t.Fatalf("duplicate delivery: %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubLeaveStopsDelivery(t *testing.T) {
	hub := newTestHub(t)

	client := NewClient(hub, primitive.NewObjectID())
	hub.Register(client)

	room := ChatRoom("c1")
	require.NoError(t, hub.Join(client, room))
	hub.Leave(client, room)
	hub.Broadcast(room, EventNewMessage, "gone")

	// Feed broadcast as a sentinel: it must be the first thing delivered.
	hub.Broadcast(FeedRoom, EventNewPost, "sentinel")
	assert.Equal(t, EventNewPost, receive(t, client).Event)
}

func TestHubRegisterAutoJoinsFeed(t *testing.T) {
	hub := newTestHub(t)

	client := NewClient(hub, primitive.NewObjectID())
	hub.Register(client)
	hub.Broadcast(FeedRoom, EventNewPost, "hello")

	assert.Equal(t, EventNewPost, receive(t, client).Event)
}

func TestHubUnregisterClosesClient(t *testing.T) {
	hub := newTestHub(t)

	client := NewClient(hub, primitive.NewObjectID())
	hub.Register(client)
	hub.Unregister(client)

	select {
	case _, ok := <-client.Receive():
		assert.False(t, ok, "expected closed send channel")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for unregister")
	}
}

func TestHubRejectsEmptyRoom(t *testing.T) {
	hub := newTestHub(t)

	client := NewClient(hub, primitive.NewObjectID())
	hub.Register(client)

	assert.Error(t, hub.Join(client, ""))
}
