package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/campusvibes/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrWordAlreadyBlocked is returned when adding a word already on the denylist.
var ErrWordAlreadyBlocked = fmt.Errorf("word already blocked")

// BlockedWordRepository defines the interface for the moderation denylist
type BlockedWordRepository interface {
	Add(ctx context.Context, word string) (*models.BlockedWord, error)
	List(ctx context.Context) ([]models.BlockedWord, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Words(ctx context.Context) ([]string, error)
}

// MongoBlockedWordRepository implements BlockedWordRepository for MongoDB
type MongoBlockedWordRepository struct {
	collection *mongo.Collection
}

// NewMongoBlockedWordRepository creates the repository and ensures the unique
// word index.
func NewMongoBlockedWordRepository(db *mongo.Database) *MongoBlockedWordRepository {
	r := &MongoBlockedWordRepository{collection: db.Collection("blocked_words")}
	_, _ = r.collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "word", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return r
}

// Add inserts a denylist entry. Words are stored lowercase.
func (r *MongoBlockedWordRepository) Add(ctx context.Context, word string) (*models.BlockedWord, error) {
	entry := &models.BlockedWord{
		ID:   primitive.NewObjectID(),
		Word: strings.ToLower(strings.TrimSpace(word)),
	}
	_, err := r.collection.InsertOne(ctx, entry)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrWordAlreadyBlocked
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// List retrieves all denylist entries.
func (r *MongoBlockedWordRepository) List(ctx context.Context) ([]models.BlockedWord, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var words []models.BlockedWord
	if err = cursor.All(ctx, &words); err != nil {
		return nil, err
	}
	return words, nil
}

// Delete removes a denylist entry by ID.
func (r *MongoBlockedWordRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("blocked word not found")
	}
	return nil
}

// Words returns the plain denylist for the moderation filter.
func (r *MongoBlockedWordRepository) Words(ctx context.Context) ([]string, error) {
	entries, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	words := make([]string, len(entries))
	for i, e := range entries {
		words[i] = e.Word
	}
	return words, nil
}
