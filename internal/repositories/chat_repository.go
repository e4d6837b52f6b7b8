package repositories

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/campusvibes/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChatRepository defines the interface for chat data operations
type ChatRepository interface {
	StartChat(ctx context.Context, a, b primitive.ObjectID) (*models.Chat, bool, error)
	GetChatByID(ctx context.Context, id primitive.ObjectID) (*models.Chat, error)
	GetChatsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Chat, error)
	SetLastMessage(ctx context.Context, chatID, messageID primitive.ObjectID) error
}

// MongoChatRepository implements ChatRepository for MongoDB
type MongoChatRepository struct {
	collection *mongo.Collection
}

// NewMongoChatRepository creates a new MongoChatRepository
func NewMongoChatRepository(db *mongo.Database) *MongoChatRepository {
	return &MongoChatRepository{collection: db.Collection("chats")}
}

// NormalizePair returns the two ids in a canonical order so a pair of users
// always maps to the same participants array.
func NormalizePair(a, b primitive.ObjectID) []primitive.ObjectID {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return []primitive.ObjectID{a, b}
}

// StartChat finds or creates the chat between two users. A single upsert on
// the sorted participant pair makes repeated requests return the same chat.
// The returned bool reports whether the chat was created by this call.
func (r *MongoChatRepository) StartChat(ctx context.Context, a, b primitive.ObjectID) (*models.Chat, bool, error) {
	participants := NormalizePair(a, b)
	// Mongo stores timestamps at millisecond precision; truncate so the
	// created-by-this-call comparison below is exact.
	now := time.Now().Truncate(time.Millisecond)

	var chat models.Chat
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"participants": participants},
		bson.M{"$setOnInsert": bson.M{
			"participants": participants,
			"created_at":   now,
			"updated_at":   now,
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&chat)
	if err != nil {
		return nil, false, err
	}

	created := !chat.CreatedAt.Before(now)
	return &chat, created, nil
}

// GetChatByID retrieves a chat by ID
func (r *MongoChatRepository) GetChatByID(ctx context.Context, id primitive.ObjectID) (*models.Chat, error) {
	var chat models.Chat
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&chat)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("chat not found")
		}
		return nil, err
	}
	return &chat, nil
}

// GetChatsForUser retrieves every chat the user participates in, most
// recently active first.
func (r *MongoChatRepository) GetChatsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Chat, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"participants": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var chats []models.Chat
	if err = cursor.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// SetLastMessage records the chat's most recent message.
func (r *MongoChatRepository) SetLastMessage(ctx context.Context, chatID, messageID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": chatID},
		bson.M{"$set": bson.M{"last_message_id": messageID, "updated_at": time.Now()}})
	return err
}
