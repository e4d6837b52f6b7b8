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

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	GetApprovedPosts(ctx context.Context, skip, limit int64) ([]models.Post, int64, error)
	GetApprovedPostsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	DeletePost(ctx context.Context, id primitive.ObjectID) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Post, error)
	ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (liked bool, likes []primitive.ObjectID, err error)
	AddComment(ctx context.Context, postID primitive.ObjectID, comment *models.Comment) error
	GetComments(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post. Posts always start in pending status and
// reach the feed only through admin approval.
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.Status = models.StatusPending
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("post not found")
		}
		return nil, err
	}
	return &post, nil
}

// GetApprovedPosts retrieves approved posts with pagination, newest first.
func (r *MongoPostRepository) GetApprovedPosts(ctx context.Context, skip, limit int64) ([]models.Post, int64, error) {
	filter := bson.M{"status": models.StatusApproved}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetApprovedPostsByUser retrieves a user's approved posts, newest first.
func (r *MongoPostRepository) GetApprovedPostsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{
		"user_id": userID,
		"status":  models.StatusApproved,
	}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetAllPosts retrieves every post regardless of status, for the admin
// moderation queue.
func (r *MongoPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost deletes a post by ID
func (r *MongoPostRepository) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("post not found")
	}
	return nil
}

// SetStatus transitions a post's moderation status.
func (r *MongoPostRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("post not found")
		}
		return nil, err
	}
	return &post, nil
}

// ToggleLike atomically adds the user to the likes set if absent, otherwise
// removes them. Two concurrent toggles cannot both read stale state: each
// attempt is a single conditional update.
func (r *MongoPostRepository) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (bool, []primitive.ObjectID, error) {
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)

	// Add-if-absent.
	var post models.Post
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "likes": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"likes": userID}},
		after).Decode(&post)
	if err == nil {
		return true, post.Likes, nil
	}
	if err != mongo.ErrNoDocuments {
		return false, nil, err
	}

	// Already present: remove-if-present.
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "likes": userID},
		bson.M{"$pull": bson.M{"likes": userID}},
		after).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil, fmt.Errorf("post not found")
		}
		return false, nil, err
	}
	return false, post.Likes, nil
}

// AddComment appends a comment to the post's embedded comment list.
func (r *MongoPostRepository) AddComment(ctx context.Context, postID primitive.ObjectID, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("post not found")
	}
	return nil
}

// GetComments retrieves the ordered comment list of a post.
func (r *MongoPostRepository) GetComments(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	post, err := r.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}
