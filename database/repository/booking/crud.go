package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"talentshout/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new booking document.
func (repo *MongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.bookingColl.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking document by ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := repo.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking with id %s: %w", id, err)
	}
	return &b, nil
}

// GetByCode retrieves a booking document by its human-readable code.
func (repo *MongoBookingRepo) GetByCode(ctx context.Context, code string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := repo.bookingColl.FindOne(ctx, bson.M{"code": code}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking with code %s: %w", code, err)
	}
	return &b, nil
}

// Transition performs a status-guarded compare-and-swap update. The filter
// matches only when the booking is in one of the expected statuses, so of two
// concurrent writers exactly one observes MatchedCount == 1.
func (repo *MongoBookingRepo) Transition(ctx context.Context, id string, from []models.BookingStatus, to models.BookingStatus, set map[string]interface{}) (*models.Booking, error) {
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

	update := bson.M{
		"$set": setFields,
		"$inc": bson.M{"version": 1},
	}

	res, err := repo.bookingColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("error transitioning booking %s to %s: %w", id, to, err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing booking from a lost race.
		if _, getErr := repo.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrStaleTransition
	}

	return repo.GetByID(ctx, id)
}

// SetRating records a customer rating on a completed booking that has not
// been rated yet.
func (repo *MongoBookingRepo) SetRating(ctx context.Context, id string, rating int, review string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":              id,
		"status":          models.StatusCompleted,
		"customer_rating": bson.M{"$in": bson.A{nil, 0}},
	}
	update := bson.M{
		"$set": bson.M{
			"customer_rating": rating,
			"review":          review,
			"updated_at":      time.Now().UTC(),
		},
		"$inc": bson.M{"version": 1},
	}

	res, err := repo.bookingColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("error rating booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		if _, getErr := repo.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrStaleTransition
	}

	return repo.GetByID(ctx, id)
}
