package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NextCode allocates the next booking code for the year via an atomic
// findAndModify on the counters collection, e.g. "TS-2026-0120". The counter
// document is upserted on first use each year.
func (repo *MongoBookingRepo) NextCode(ctx context.Context, year int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": fmt.Sprintf("booking_code_%d", year)}
	update := bson.M{"$inc": bson.M{"seq": 1}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int `bson:"seq"`
	}
	if err := repo.counterColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return "", fmt.Errorf("failed to allocate booking code: %w", err)
	}

	return fmt.Sprintf("TS-%d-%04d", year, counter.Seq), nil
}
