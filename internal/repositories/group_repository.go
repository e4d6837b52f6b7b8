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

// ErrAlreadyMember is returned when a user joins a group twice.
var ErrAlreadyMember = fmt.Errorf("already a member")

// GroupRepository defines the interface for group and group-message operations
type GroupRepository interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroupByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error)
	AddMember(ctx context.Context, groupID, userID primitive.ObjectID, role string) error
	ListPublicGroups(ctx context.Context) ([]models.Group, error)
	ListJoinedGroups(ctx context.Context, userID primitive.ObjectID) ([]models.Group, error)
	CreateGroupMessage(ctx context.Context, message *models.GroupMessage) error
	GetGroupMessages(ctx context.Context, groupID primitive.ObjectID) ([]models.GroupMessage, error)
}

// MongoGroupRepository implements GroupRepository for MongoDB
type MongoGroupRepository struct {
	groups   *mongo.Collection
	messages *mongo.Collection
}

// NewMongoGroupRepository creates a new MongoGroupRepository
func NewMongoGroupRepository(db *mongo.Database) *MongoGroupRepository {
	return &MongoGroupRepository{
		groups:   db.Collection("groups"),
		messages: db.Collection("group_messages"),
	}
}

// CreateGroup inserts a group with the creator as its admin member.
func (r *MongoGroupRepository) CreateGroup(ctx context.Context, group *models.Group) error {
	group.ID = primitive.NewObjectID()
	group.CreatedAt = time.Now()
	group.UpdatedAt = group.CreatedAt
	if len(group.Members) == 0 {
		group.Members = []models.GroupMember{{UserID: group.CreatedBy, Role: models.GroupRoleAdmin}}
	}
	_, err := r.groups.InsertOne(ctx, group)
	return err
}

// GetGroupByID retrieves a group by ID
func (r *MongoGroupRepository) GetGroupByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	var group models.Group
	err := r.groups.FindOne(ctx, bson.M{"_id": id}).Decode(&group)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("group not found")
		}
		return nil, err
	}
	return &group, nil
}

// AddMember adds a user to the group. The membership filter makes the update
// conditional, so two concurrent joins cannot insert the user twice.
func (r *MongoGroupRepository) AddMember(ctx context.Context, groupID, userID primitive.ObjectID, role string) error {
	res, err := r.groups.UpdateOne(ctx,
		bson.M{"_id": groupID, "members.user_id": bson.M{"$ne": userID}},
		bson.M{
			"$push": bson.M{"members": models.GroupMember{UserID: userID, Role: role}},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the group does not exist or the user is already in it.
		if _, err := r.GetGroupByID(ctx, groupID); err != nil {
			return err
		}
		return ErrAlreadyMember
	}
	return nil
}

// ListPublicGroups retrieves all public groups
func (r *MongoGroupRepository) ListPublicGroups(ctx context.Context) ([]models.Group, error) {
	cursor, err := r.groups.Find(ctx, bson.M{"is_public": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []models.Group
	if err = cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// ListJoinedGroups retrieves the groups the user belongs to.
func (r *MongoGroupRepository) ListJoinedGroups(ctx context.Context, userID primitive.ObjectID) ([]models.Group, error) {
	cursor, err := r.groups.Find(ctx, bson.M{"members.user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []models.Group
	if err = cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// CreateGroupMessage inserts a group message.
func (r *MongoGroupRepository) CreateGroupMessage(ctx context.Context, message *models.GroupMessage) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	_, err := r.messages.InsertOne(ctx, message)
	return err
}

// GetGroupMessages retrieves a group's messages in send order.
func (r *MongoGroupRepository) GetGroupMessages(ctx context.Context, groupID primitive.ObjectID) ([]models.GroupMessage, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.messages.Find(ctx, bson.M{"group_id": groupID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.GroupMessage
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
