package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/campusvibes/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnnouncementRepository defines the interface for announcement operations
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	List(ctx context.Context) ([]models.Announcement, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoAnnouncementRepository implements AnnouncementRepository for MongoDB
type MongoAnnouncementRepository struct {
	collection *mongo.Collection
}

// NewMongoAnnouncementRepository creates a new MongoAnnouncementRepository
func NewMongoAnnouncementRepository(db *mongo.Database) *MongoAnnouncementRepository {
	return &MongoAnnouncementRepository{collection: db.Collection("announcements")}
}

// Create inserts an announcement.
func (r *MongoAnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	announcement.ID = primitive.NewObjectID()
	announcement.CreatedAt = time.Now()
	announcement.UpdatedAt = announcement.CreatedAt
	_, err := r.collection.InsertOne(ctx, announcement)
	return err
}

// List retrieves all announcements, newest first.
func (r *MongoAnnouncementRepository) List(ctx context.Context) ([]models.Announcement, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var announcements []models.Announcement
	if err = cursor.All(ctx, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

// Delete removes an announcement by ID.
func (r *MongoAnnouncementRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("announcement not found")
	}
	return nil
}
