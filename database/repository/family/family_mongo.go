package familyRepo

import (
	"context"
	"fmt"
	"time"

	"clearmind/database"
	"clearmind/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFamilyRepo implements FamilyRepository using MongoDB.
type MongoFamilyRepo struct {
	groups        *mongo.Collection
	invitations   *mongo.Collection
	notifications *mongo.Collection
}

// NewMongoFamilyRepo creates a new instance of FamilyRepository using MongoDB.
func NewMongoFamilyRepo() FamilyRepository {
	db := database.MongoClient.Database("clearmind")
	repo := &MongoFamilyRepo{
		groups:        db.Collection("family_groups"),
		invitations:   db.Collection("invitations"),
		notifications: db.Collection("group_notifications"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoFamilyRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	_, err := r.groups.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "members.email", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create group indexes: %w", err)
	}

	_, err = r.invitations.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "inviteeEmail", Value: 1}, {Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create invitation indexes: %w", err)
	}

	_, err = r.notifications.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "groupId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create notification indexes: %w", err)
	}
	return nil
}

// --- Groups ---

func (r *MongoFamilyRepo) CreateGroup(group *models.FamilyGroup) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now().UnixMilli()
	group.CreatedAt = now
	group.UpdatedAt = now

	if _, err := r.groups.InsertOne(ctx, group); err != nil {
		return fmt.Errorf("failed to create family group: %w", err)
	}
	return nil
}

func (r *MongoFamilyRepo) GetGroupByID(id string) (*models.FamilyGroup, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var group models.FamilyGroup
	if err := r.groups.FindOne(ctx, bson.M{"id": id}).Decode(&group); err != nil {
		return nil, fmt.Errorf("failed to fetch family group with id %s: %w", id, err)
	}
	return &group, nil
}

func (r *MongoFamilyRepo) GetGroupsByMember(email string) ([]models.FamilyGroup, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.groups.Find(ctx, bson.M{"members.email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch groups for %s: %w", email, err)
	}
	defer cursor.Close(ctx)

	var groups []models.FamilyGroup
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode groups: %w", err)
	}
	return groups, nil
}

func (r *MongoFamilyRepo) UpdateGroup(group *models.FamilyGroup) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	group.UpdatedAt = time.Now().UnixMilli()
	result, err := r.groups.UpdateOne(ctx, bson.M{"id": group.ID}, bson.M{"$set": group})
	if err != nil {
		return fmt.Errorf("failed to update family group with id %s: %w", group.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("family group with id %s not found", group.ID)
	}
	return nil
}

func (r *MongoFamilyRepo) DeleteGroup(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.groups.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete family group with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("family group with id %s not found", id)
	}

	// Orphaned invitations and notifications go with the group.
	if _, err := r.invitations.DeleteMany(ctx, bson.M{"groupId": id}); err != nil {
		return fmt.Errorf("failed to delete invitations for group %s: %w", id, err)
	}
	if _, err := r.notifications.DeleteMany(ctx, bson.M{"groupId": id}); err != nil {
		return fmt.Errorf("failed to delete notifications for group %s: %w", id, err)
	}
	return nil
}

// --- Invitations ---

func (r *MongoFamilyRepo) CreateInvitation(inv *models.Invitation) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	inv.CreatedAt = time.Now().UnixMilli()
	if _, err := r.invitations.InsertOne(ctx, inv); err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	return nil
}

func (r *MongoFamilyRepo) GetInvitationByID(id string) (*models.Invitation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var inv models.Invitation
	if err := r.invitations.FindOne(ctx, bson.M{"id": id}).Decode(&inv); err != nil {
		return nil, fmt.Errorf("failed to fetch invitation with id %s: %w", id, err)
	}
	return &inv, nil
}

func (r *MongoFamilyRepo) GetInvitationsByInvitee(email string) ([]models.Invitation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.invitations.Find(ctx, bson.M{"inviteeEmail": email, "status": "pending"})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invitations for %s: %w", email, err)
	}
	defer cursor.Close(ctx)

	var invs []models.Invitation
	if err := cursor.All(ctx, &invs); err != nil {
		return nil, fmt.Errorf("failed to decode invitations: %w", err)
	}
	return invs, nil
}

func (r *MongoFamilyRepo) UpdateInvitationStatus(id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.invitations.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update invitation with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("invitation with id %s not found", id)
	}
	return nil
}

// --- Notifications ---

func (r *MongoFamilyRepo) CreateNotification(n *models.GroupNotification) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n.CreatedAt = time.Now().UnixMilli()
	if _, err := r.notifications.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *MongoFamilyRepo) GetNotificationsByGroup(groupID string, limit int64) ([]models.GroupNotification, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.notifications.Find(ctx, bson.M{"groupId": groupID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications for group %s: %w", groupID, err)
	}
	defer cursor.Close(ctx)

	var out []models.GroupNotification
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return out, nil
}

func (r *MongoFamilyRepo) MarkNotificationRead(id, email string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.notifications.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$addToSet": bson.M{"readBy": email}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("notification with id %s not found", id)
	}
	return nil
}
