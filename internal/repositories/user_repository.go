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

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetCompactByID(ctx context.Context, id primitive.ObjectID) (*models.UserCompact, error)
	GetCompactByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.UserCompact, error)
	SearchUsers(ctx context.Context, query string, exclude primitive.ObjectID) ([]models.User, error)
	GetApprovedUsers(ctx context.Context) ([]models.User, error)
	GetSuggestedUsers(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.User, error)
	ListUsers(ctx context.Context, skip, limit int64) ([]models.User, int64, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	SetApproval(ctx context.Context, id primitive.ObjectID, approved bool) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, fullName, aboutMe, image string) (*models.User, error)
	SetVisibility(ctx context.Context, id primitive.ObjectID, visibility string) (*models.User, error)
	Follow(ctx context.Context, follower, target primitive.ObjectID) error
	Unfollow(ctx context.Context, follower, target primitive.ObjectID) error
	TouchActivity(ctx context.Context, id primitive.ObjectID) error
	SetOnline(ctx context.Context, id primitive.ObjectID, online bool) error
	CountActiveSince(ctx context.Context, since time.Time) (int64, error)
	GenderDistribution(ctx context.Context) (map[string]int64, error)
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository and ensures the
// unique email index.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	r := &MongoUserRepository{collection: db.Collection("users")}
	_, _ = r.collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return r
}

// CreateUser inserts a new user. New users start unapproved with empty
// follower sets.
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	user.LastActive = user.CreatedAt
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.ProfileVisibility == "" {
		user.ProfileVisibility = models.VisibilityPublic
	}
	if user.Followers == nil {
		user.Followers = []primitive.ObjectID{}
	}
	if user.Following == nil {
		user.Following = []primitive.ObjectID{}
	}
	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("user already exists")
	}
	return err
}

// GetUserByID retrieves a user by ID
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// GetCompactByID retrieves the display fields of a single user.
func (r *MongoUserRepository) GetCompactByID(ctx context.Context, id primitive.ObjectID) (*models.UserCompact, error) {
	user, err := r.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	compact := user.ToCompact()
	return &compact, nil
}

// GetCompactByIDs retrieves display fields for a set of users.
func (r *MongoUserRepository) GetCompactByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.UserCompact, error) {
	if len(ids) == 0 {
		return []models.UserCompact{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	compacts := make([]models.UserCompact, len(users))
	for i, u := range users {
		compacts[i] = u.ToCompact()
	}
	return compacts, nil
}

// SearchUsers matches full name or email case-insensitively, excluding the
// caller. An empty query returns no results.
func (r *MongoUserRepository) SearchUsers(ctx context.Context, query string, exclude primitive.ObjectID) ([]models.User, error) {
	if query == "" {
		return []models.User{}, nil
	}
	filter := bson.M{
		"$and": bson.A{
			bson.M{"$or": bson.A{
				bson.M{"full_name": bson.M{"$regex": query, "$options": "i"}},
				bson.M{"email": bson.M{"$regex": query, "$options": "i"}},
			}},
			bson.M{"_id": bson.M{"$ne": exclude}},
		},
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetApprovedUsers retrieves all approved users
func (r *MongoUserRepository) GetApprovedUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"is_approved": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetSuggestedUsers samples users the given user does not follow yet.
func (r *MongoUserRepository) GetSuggestedUsers(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.User, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"_id":       bson.M{"$ne": userID},
			"followers": bson.M{"$nin": bson.A{userID}},
		}}},
		{{Key: "$sample", Value: bson.M{"size": limit}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListUsers retrieves users with pagination, newest first.
func (r *MongoUserRepository) ListUsers(ctx context.Context, skip, limit int64) ([]models.User, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// DeleteUser deletes a user by ID
func (r *MongoUserRepository) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

// SetApproval approves or declines a user account.
func (r *MongoUserRepository) SetApproval(ctx context.Context, id primitive.ObjectID, approved bool) (*models.User, error) {
	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"is_approved": approved, "updated_at": time.Now()},
	})
}

// UpdateProfile updates the editable profile fields.
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, fullName, aboutMe, image string) (*models.User, error) {
	set := bson.M{"updated_at": time.Now()}
	if fullName != "" {
		set["full_name"] = fullName
	}
	if aboutMe != "" {
		set["about_me"] = aboutMe
	}
	if image != "" {
		set["image"] = image
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

// SetVisibility updates the profile visibility.
func (r *MongoUserRepository) SetVisibility(ctx context.Context, id primitive.ObjectID, visibility string) (*models.User, error) {
	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"profile_visibility": visibility, "updated_at": time.Now()},
	})
}

func (r *MongoUserRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.User, error) {
	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// Follow adds target to the follower's following set and the follower to the
// target's followers set. $addToSet keeps both updates idempotent.
func (r *MongoUserRepository) Follow(ctx context.Context, follower, target primitive.ObjectID) error {
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": follower},
		bson.M{"$addToSet": bson.M{"following": target}}); err != nil {
		return err
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": target},
		bson.M{"$addToSet": bson.M{"followers": follower}})
	return err
}

// Unfollow removes the follow relationship in both directions.
func (r *MongoUserRepository) Unfollow(ctx context.Context, follower, target primitive.ObjectID) error {
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": follower},
		bson.M{"$pull": bson.M{"following": target}}); err != nil {
		return err
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": target},
		bson.M{"$pull": bson.M{"followers": follower}})
	return err
}

// TouchActivity updates the user's last-active timestamp.
func (r *MongoUserRepository) TouchActivity(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_active": time.Now()}})
	return err
}

// SetOnline flips the online flag, recording last-active on disconnect.
func (r *MongoUserRepository) SetOnline(ctx context.Context, id primitive.ObjectID, online bool) error {
	set := bson.M{"is_online": online}
	if !online {
		set["last_active"] = time.Now()
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// CountActiveSince counts users active after the given time.
func (r *MongoUserRepository) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"last_active": bson.M{"$gte": since}})
}

// GenderDistribution aggregates user counts by gender.
func (r *MongoUserRepository) GenderDistribution(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$gender", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Gender string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	dist := map[string]int64{"male": 0, "female": 0, "other": 0}
	for _, row := range rows {
		dist[row.Gender] = row.Count
	}
	return dist, nil
}
