package talentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talentshout/database"
	"talentshout/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no talent profile matches the given identifier.
var ErrNotFound = errors.New("talent profile not found")

// Repository persists talent profiles.
type Repository interface {
	Create(ctx context.Context, profile *models.TalentProfile) error
	GetByID(ctx context.Context, id string) (*models.TalentProfile, error)
	GetByUserID(ctx context.Context, userID string) (*models.TalentProfile, error)
	UpdateSettings(ctx context.Context, id string, set map[string]interface{}) (*models.TalentProfile, error)
	// UpdateAggregates rewrites the computed rating and booking counters.
	UpdateAggregates(ctx context.Context, id string, avgRating float64, total, completed int) error
}

// MongoTalentRepo implements Repository using MongoDB.
type MongoTalentRepo struct {
	coll *mongo.Collection
}

// NewMongoTalentRepo constructs a new instance of MongoTalentRepo.
func NewMongoTalentRepo() Repository {
	return &MongoTalentRepo{coll: database.DB().Collection("talent_profiles")}
}

// EnsureIndexes creates the indexes the talent repository relies on.
func (repo *MongoTalentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create talent profile indexes: %w", err)
	}
	return nil
}

// Create inserts a new talent profile document.
func (repo *MongoTalentRepo) Create(ctx context.Context, profile *models.TalentProfile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, profile); err != nil {
		return fmt.Errorf("error creating talent profile: %w", err)
	}
	return nil
}

// GetByID retrieves a talent profile by ID.
func (repo *MongoTalentRepo) GetByID(ctx context.Context, id string) (*models.TalentProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile models.TalentProfile
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching talent profile with id %s: %w", id, err)
	}
	return &profile, nil
}

// GetByUserID retrieves a talent profile by its owning account.
func (repo *MongoTalentRepo) GetByUserID(ctx context.Context, userID string) (*models.TalentProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile models.TalentProfile
	if err := repo.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching talent profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

// UpdateSettings applies talent-owned settings changes.
func (repo *MongoTalentRepo) UpdateSettings(ctx context.Context, id string, set map[string]interface{}) (*models.TalentProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	setFields := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range set {
		setFields[k] = v
	}

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": setFields})
	if err != nil {
		return nil, fmt.Errorf("error updating talent profile %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	return repo.GetByID(ctx, id)
}

// UpdateAggregates rewrites the computed rating and booking counters.
func (repo *MongoTalentRepo) UpdateAggregates(ctx context.Context, id string, avgRating float64, total, completed int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"average_rating":     avgRating,
		"total_bookings":     total,
		"completed_bookings": completed,
		"updated_at":         time.Now().UTC(),
	}}
	if _, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("error updating talent aggregates for %s: %w", id, err)
	}
	return nil
}
