package accountRepo

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

// ErrNotFound is returned when no account matches the given identifier.
var ErrNotFound = errors.New("account not found")

// Repository persists platform accounts.
type Repository interface {
	Create(ctx context.Context, acc *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	SetRole(ctx context.Context, id string, role models.Role) error
}

// MongoAccountRepo implements Repository using MongoDB.
type MongoAccountRepo struct {
	coll *mongo.Collection
}

// NewMongoAccountRepo constructs a new instance of MongoAccountRepo.
func NewMongoAccountRepo() Repository {
	return &MongoAccountRepo{coll: database.DB().Collection("accounts")}
}

// EnsureIndexes creates the indexes the account repository relies on.
func (repo *MongoAccountRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create account indexes: %w", err)
	}
	return nil
}

// Create inserts a new account document.
func (repo *MongoAccountRepo) Create(ctx context.Context, acc *models.Account) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, acc); err != nil {
		return fmt.Errorf("error creating account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by ID.
func (repo *MongoAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var acc models.Account
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&acc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching account with id %s: %w", id, err)
	}
	return &acc, nil
}

// GetByEmail retrieves an account by email.
func (repo *MongoAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var acc models.Account
	if err := repo.coll.FindOne(ctx, bson.M{"email": email}).Decode(&acc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching account with email %s: %w", email, err)
	}
	return &acc, nil
}

// SetRole updates the account's role, e.g. fan -> talent on application
// approval.
func (repo *MongoAccountRepo) SetRole(ctx context.Context, id string, role models.Role) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return fmt.Errorf("error updating role for account %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
