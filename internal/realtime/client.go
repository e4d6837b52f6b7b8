package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/campusvibes/backend/internal/repositories"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced at the HTTP layer
	},
}

// Client is one live websocket connection. The hub only ever touches its send
// channel; the read and write pumps own the underlying connection.
type Client struct {
	hub     *Hub
	gateway *Gateway
	conn    *websocket.Conn
	send    chan []byte

	userID primitive.ObjectID
}

// NewClient creates a client for an already-upgraded connection. Exposed for
// the hub tests; production connections go through ServeWS.
func NewClient(hub *Hub, userID primitive.ObjectID) *Client {
	return &Client{
		hub:    hub,
		send:   make(chan []byte, sendBufferSize),
		userID: userID,
	}
}

// Receive returns the client's delivery channel.
func (c *Client) Receive() <-chan []byte { return c.send }

// ServeWS upgrades the request, registers the connection with the hub, marks
// the user online, and runs the pumps until the connection closes.
func ServeWS(hub *Hub, gateway *Gateway, users repositories.UserRepository, userID primitive.ObjectID, w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		hub:     hub,
		gateway: gateway,
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		userID:  userID,
	}
	hub.Register(client)

	ctx := context.Background()
	if err := users.SetOnline(ctx, userID, true); err != nil {
		hub.logger.Warn("mark user online", "user", userID.Hex(), "error", err)
	}

	go client.writePump()
	client.readPump()

	hub.Unregister(client)
	if err := users.SetOnline(ctx, userID, false); err != nil {
		hub.logger.Warn("mark user offline", "user", userID.Hex(), "error", err)
	}
	return nil
}

func (c *Client) readPump() {
	defer c.conn.Close()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.hub.logger.Warn("websocket read error", "user", c.userID.Hex(), "error", err)
			}
			return
		}
		c.dispatch(raw)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub dropped the client.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// dispatch handles one inbound frame. All failures are reported back to this
// connection only and never tear it down.
func (c *Client) dispatch(raw []byte) {
	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		c.sendError("malformed event")
		return
	}

	ctx := context.Background()

	switch envelope.Event {
	case EventJoinUserRoom:
		// Connections may only join their own personal room.
		c.join(UserRoom(c.userID.Hex()))

	case EventJoinChat:
		c.joinKeyed(envelope.Data, "chatId", ChatRoom)

	case EventJoinGroup:
		c.joinKeyed(envelope.Data, "groupId", GroupRoom)

	case EventJoinPost:
		c.joinKeyed(envelope.Data, "postId", PostRoom)

	case EventSendMessage:
		var data struct {
			ChatID  string `json:"chatId"`
			Content string `json:"content"`
		}
		if err := json.Unmarshal(envelope.Data, &data); err != nil || data.Content == "" {
			c.sendError("chatId and content are required")
			return
		}
		chatID, err := primitive.ObjectIDFromHex(data.ChatID)
		if err != nil {
			c.sendError("invalid chat id")
			return
		}
		if _, err := c.gateway.SendDirectMessage(ctx, c.userID, chatID, data.Content); err != nil {
			c.sendError(err.Error())
		}

	case EventSendGroupMessage:
		var data struct {
			GroupID string `json:"groupId"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Data, &data); err != nil || data.Message == "" {
			c.sendError("groupId and message are required")
			return
		}
		groupID, err := primitive.ObjectIDFromHex(data.GroupID)
		if err != nil {
			c.sendError("invalid group id")
			return
		}
		if _, err := c.gateway.SendGroupMessage(ctx, c.userID, groupID, data.Message); err != nil {
			c.sendError(err.Error())
		}

	default:
		c.sendError("unknown event: " + envelope.Event)
	}
}

func (c *Client) joinKeyed(data json.RawMessage, key string, room func(string) string) {
	var fields map[string]string
	if err := json.Unmarshal(data, &fields); err != nil || fields[key] == "" {
		c.sendError(key + " is required to join a room")
		return
	}
	c.join(room(fields[key]))
}

func (c *Client) join(room string) {
	if err := c.hub.Join(c, room); err != nil {
		c.sendError(err.Error())
	}
}

// sendError emits an error event to this connection only.
func (c *Client) sendError(message string) {
	raw, _ := json.Marshal(ErrorPayload{Message: message})
	payload, _ := json.Marshal(Envelope{Event: EventError, Data: raw})
	select {
	case c.send <- payload:
	default:
	}
}
