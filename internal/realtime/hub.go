package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

type opKind int

const (
	opRegister opKind = iota
	opUnregister
	opJoin
	opLeave
	opBroadcast
)

type hubOp struct {
	kind    opKind
	client  *Client
	room    string
	payload []byte
}

// Hub is the connection registry and fan-out broadcaster. A single goroutine
// (Run) owns the room-membership tables; all mutation and delivery flows
// through one FIFO channel, so operations issued in order by one caller are
// applied in order and no locking is needed.
//
// Membership is process-local and ephemeral: it is lost on restart and
// clients must re-join their rooms after reconnecting. Delivery is
// best-effort and at-most-once per connection; there is no replay.
type Hub struct {
	logger *slog.Logger

	ops chan hubOp

	rooms       map[string]map[*Client]struct{}
	memberships map[*Client]map[string]struct{}
}

// NewHub creates a hub. The caller starts it with Run and injects it wherever
// broadcasting is needed; it is not a package-level singleton.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:      logger,
		ops:         make(chan hubOp, 256),
		rooms:       make(map[string]map[*Client]struct{}),
		memberships: make(map[*Client]map[string]struct{}),
	}
}

// Run processes registry and broadcast operations until the context is
// cancelled. It must run in exactly one goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.memberships {
				h.drop(client)
			}
			return
		case op := <-h.ops:
			h.apply(op)
		}
	}
}

func (h *Hub) apply(op hubOp) {
	switch op.kind {
	case opRegister:
		h.memberships[op.client] = make(map[string]struct{})
		h.addToRoom(op.client, FeedRoom)
	case opUnregister:
		h.drop(op.client)
	case opJoin:
		h.addToRoom(op.client, op.room)
	case opLeave:
		h.removeFromRoom(op.client, op.room)
	case opBroadcast:
		h.fanOut(op.room, op.payload)
	}
}

func (h *Hub) addToRoom(client *Client, room string) {
	rooms, ok := h.memberships[client]
	if !ok {
		// Join after disconnect; ignore.
		return
	}
	rooms[room] = struct{}{}
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][client] = struct{}{}
}

func (h *Hub) removeFromRoom(client *Client, room string) {
	if rooms, ok := h.memberships[client]; ok {
		delete(rooms, room)
	}
	if members, ok := h.rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// drop removes the client from every room and closes its send channel.
func (h *Hub) drop(client *Client) {
	rooms, ok := h.memberships[client]
	if !ok {
		return
	}
	for room := range rooms {
		h.removeFromRoom(client, room)
	}
	delete(h.memberships, client)
	close(client.send)
}

// fanOut delivers the payload to every current member of the room, at most
// once each. A member whose send buffer is full is dropped rather than
// allowed to block delivery to the rest of the room.
func (h *Hub) fanOut(room string, payload []byte) {
	for client := range h.rooms[room] {
		select {
		case client.send <- payload:
		default:
			h.logger.Warn("dropping slow client", "room", room, "user", client.userID)
			h.drop(client)
		}
	}
}

// Register adds a connection to the hub and its feed room.
func (h *Hub) Register(client *Client) {
	h.ops <- hubOp{kind: opRegister, client: client}
}

// Unregister removes a connection from every room it joined.
func (h *Hub) Unregister(client *Client) {
	h.ops <- hubOp{kind: opUnregister, client: client}
}

// Join adds the connection to a room. Idempotent. An empty room id is
// rejected and reported to the caller; it is not fatal to the connection.
func (h *Hub) Join(client *Client, room string) error {
	if room == "" {
		return fmt.Errorf("room id is required")
	}
	h.ops <- hubOp{kind: opJoin, client: client, room: room}
	return nil
}

// Leave removes the connection from a room.
func (h *Hub) Leave(client *Client, room string) {
	if room == "" {
		return
	}
	h.ops <- hubOp{kind: opLeave, client: client, room: room}
}

// Broadcast delivers an event to every connection currently joined to the
// room. Callers persist their records first: a broadcast is a notification of
// a completed write, never a substitute for one.
func (h *Hub) Broadcast(room, event string, data interface{}) {
	raw, err := json.Marshal(data)
	if err != nil {
		h.logger.Error("marshal broadcast payload", "event", event, "error", err)
		return
	}
	payload, err := json.Marshal(Envelope{Event: event, Data: raw})
	if err != nil {
		h.logger.Error("marshal broadcast envelope", "event", event, "error", err)
		return
	}
	h.ops <- hubOp{kind: opBroadcast, room: room, payload: payload}
}
