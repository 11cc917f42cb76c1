package applicationRepo

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

// ErrNotFound is returned when no application matches the given identifier.
var ErrNotFound = errors.New("talent application not found")

// ErrStaleTransition is returned when a guarded status update matched no
// document.
var ErrStaleTransition = errors.New("application not in expected status")

// Repository persists talent applications.
type Repository interface {
	Create(ctx context.Context, app *models.TalentApplication) error
	GetByID(ctx context.Context, id string) (*models.TalentApplication, error)
	GetActiveByUserID(ctx context.Context, userID string) (*models.TalentApplication, error)
	Transition(ctx context.Context, id string, from []models.ApplicationStatus, to models.ApplicationStatus, set map[string]interface{}) (*models.TalentApplication, error)
	ListByStatus(ctx context.Context, status models.ApplicationStatus, limit int64) ([]models.TalentApplication, error)
	CountByStatus(ctx context.Context, status models.ApplicationStatus) (int, error)
}

// MongoApplicationRepo implements Repository using MongoDB.
type MongoApplicationRepo struct {
	coll *mongo.Collection
}

// NewMongoApplicationRepo constructs a new instance of MongoApplicationRepo.
func NewMongoApplicationRepo() Repository {
	return &MongoApplicationRepo{coll: database.DB().Collection("talent_applications")}
}

// EnsureIndexes creates the indexes the application repository relies on.
func (repo *MongoApplicationRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create application indexes: %w", err)
	}
	return nil
}

// Create inserts a new application document.
func (repo *MongoApplicationRepo) Create(ctx context.Context, app *models.TalentApplication) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, app); err != nil {
		return fmt.Errorf("error creating talent application: %w", err)
	}
	return nil
}

// GetByID retrieves an application by ID.
func (repo *MongoApplicationRepo) GetByID(ctx context.Context, id string) (*models.TalentApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var app models.TalentApplication
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&app); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching application with id %s: %w", id, err)
	}
	return &app, nil
}

// GetActiveByUserID returns the user's most recent non-rejected application,
// or nil if none exists.
func (repo *MongoApplicationRepo) GetActiveByUserID(ctx context.Context, userID string) (*models.TalentApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"user_id": userID,
		"status":  bson.M{"$ne": models.ApplicationRejected},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var app models.TalentApplication
	if err := repo.coll.FindOne(ctx, filter, opts).Decode(&app); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching active application for user %s: %w", userID, err)
	}
	return &app, nil
}

// Transition performs a status-guarded update on an application.
func (repo *MongoApplicationRepo) Transition(ctx context.Context, id string, from []models.ApplicationStatus, to models.ApplicationStatus, set map[string]interface{}) (*models.TalentApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": from},
	}
	setFields := bson.M{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	for k, v := range set {
		setFields[k] = v
	}

	res, err := repo.coll.UpdateOne(ctx, filter, bson.M{"$set": setFields})
	if err != nil {
		return nil, fmt.Errorf("error transitioning application %s to %s: %w", id, to, err)
	}
	if res.MatchedCount == 0 {
		if _, getErr := repo.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrStaleTransition
	}

	return repo.GetByID(ctx, id)
}

// ListByStatus returns applications in the given status, oldest first so the
// review queue is FIFO.
func (repo *MongoApplicationRepo) ListByStatus(ctx context.Context, status models.ApplicationStatus, limit int64) ([]models.TalentApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := repo.coll.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer cursor.Close(ctx)

	var apps []models.TalentApplication
	for cursor.Next(ctx) {
		var app models.TalentApplication
		if err := cursor.Decode(&app); err != nil {
			return nil, fmt.Errorf("error decoding application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return apps, nil
}

// CountByStatus counts applications in the given status.
func (repo *MongoApplicationRepo) CountByStatus(ctx context.Context, status models.ApplicationStatus) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := repo.coll.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("error counting applications: %w", err)
	}
	return int(n), nil
}
