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

// ErrPendingRequestExists is returned when a pending request for the same
// (from, to) pair already exists.
var ErrPendingRequestExists = fmt.Errorf("follow request already sent")

// FollowRequestRepository defines the interface for follow-request operations
type FollowRequestRepository interface {
	Create(ctx context.Context, from, to primitive.ObjectID) (*models.FollowRequest, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.FollowRequest, error)
	Resolve(ctx context.Context, id primitive.ObjectID, status string) (*models.FollowRequest, error)
	ListPendingFor(ctx context.Context, to primitive.ObjectID) ([]models.FollowRequest, error)
}

// MongoFollowRequestRepository implements FollowRequestRepository for MongoDB
type MongoFollowRequestRepository struct {
	collection *mongo.Collection
}

// NewMongoFollowRequestRepository creates the repository and ensures the
// partial unique index that enforces at most one pending request per ordered
// (from, to) pair.
func NewMongoFollowRequestRepository(db *mongo.Database) *MongoFollowRequestRepository {
	r := &MongoFollowRequestRepository{collection: db.Collection("follow_requests")}
	_, _ = r.collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "from", Value: 1}, {Key: "to", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": models.FollowRequestPending}),
	})
	return r
}

// Create inserts a pending request. The partial unique index rejects a second
// pending request for the same pair regardless of interleaving.
func (r *MongoFollowRequestRepository) Create(ctx context.Context, from, to primitive.ObjectID) (*models.FollowRequest, error) {
	request := &models.FollowRequest{
		ID:        primitive.NewObjectID(),
		From:      from,
		To:        to,
		Status:    models.FollowRequestPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	_, err := r.collection.InsertOne(ctx, request)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrPendingRequestExists
	}
	if err != nil {
		return nil, err
	}
	return request, nil
}

// GetByID retrieves a follow request by ID
func (r *MongoFollowRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FollowRequest, error) {
	var request models.FollowRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("follow request not found")
		}
		return nil, err
	}
	return &request, nil
}

// Resolve transitions a pending request to accepted or rejected. The pending
// filter makes the transition one-way: a resolved request never changes again.
func (r *MongoFollowRequestRepository) Resolve(ctx context.Context, id primitive.ObjectID, status string) (*models.FollowRequest, error) {
	var request models.FollowRequest
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.FollowRequestPending},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("pending follow request not found")
		}
		return nil, err
	}
	return &request, nil
}

// ListPendingFor retrieves the pending requests addressed to a user.
func (r *MongoFollowRequestRepository) ListPendingFor(ctx context.Context, to primitive.ObjectID) ([]models.FollowRequest, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"to": to, "status": models.FollowRequestPending})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.FollowRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}
