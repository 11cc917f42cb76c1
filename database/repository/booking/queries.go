package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"talentshout/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func scopeFilter(scope Scope) bson.M {
	filter := bson.M{}
	if scope.CustomerID != "" {
		filter["customer_id"] = scope.CustomerID
	}
	if scope.TalentID != "" {
		filter["talent_id"] = scope.TalentID
	}
	return filter
}

// List returns bookings matching the query, newest first.
func (repo *MongoBookingRepo) List(ctx context.Context, q ListQuery) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := scopeFilter(q.Scope)
	if q.Status != "" {
		filter["status"] = q.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := repo.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}

// ListOverdue returns bookings whose due date has passed while still
// undelivered, for the due-date sweep.
func (repo *MongoBookingRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"due_date": bson.M{"$lt": asOf},
		"status": bson.M{"$in": bson.A{
			models.StatusPendingPayment,
			models.StatusPaymentConfirmed,
			models.StatusInProgress,
		}},
	}

	cursor, err := repo.bookingColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing overdue bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding overdue booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}

// CountByStatus groups bookings within the scope by status.
func (repo *MongoBookingRepo) CountByStatus(ctx context.Context, scope Scope) (map[models.BookingStatus]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": scopeFilter(scope)},
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}

	cursor, err := repo.bookingColl.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error counting bookings by status: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[models.BookingStatus]int)
	for cursor.Next(ctx) {
		var row struct {
			Status models.BookingStatus `bson:"_id"`
			Count  int                  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("error decoding status count: %w", err)
		}
		counts[row.Status] = row.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return counts, nil
}

// SumAmounts totals completed bookings in the scope. Amounts are stored as
// decimal strings, so the summation happens client-side in exact arithmetic.
func (repo *MongoBookingRepo) SumAmounts(ctx context.Context, scope Scope) (AmountTotals, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := scopeFilter(scope)
	filter["status"] = models.StatusCompleted

	opts := options.Find().SetProjection(bson.M{
		"amount_paid":     1,
		"platform_fee":    1,
		"talent_earnings": 1,
	})

	cursor, err := repo.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return AmountTotals{}, fmt.Errorf("error summing booking amounts: %w", err)
	}
	defer cursor.Close(ctx)

	totals := AmountTotals{
		Gross:    decimal.Zero,
		Fees:     decimal.Zero,
		Earnings: decimal.Zero,
	}
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return AmountTotals{}, fmt.Errorf("error decoding booking amounts: %w", err)
		}
		totals.Gross = totals.Gross.Add(b.AmountPaid.Decimal)
		totals.Fees = totals.Fees.Add(b.PlatformFee.Decimal)
		totals.Earnings = totals.Earnings.Add(b.TalentEarnings.Decimal)
	}
	if err := cursor.Err(); err != nil {
		return AmountTotals{}, fmt.Errorf("cursor error: %w", err)
	}
	return totals, nil
}

// AverageRating is the mean customer rating over rated completed bookings.
func (repo *MongoBookingRepo) AverageRating(ctx context.Context, talentID string) (float64, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{
			"talent_id":       talentID,
			"status":          models.StatusCompleted,
			"customer_rating": bson.M{"$gte": 1},
		}},
		{"$group": bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$customer_rating"},
			"count": bson.M{"$sum": 1},
		}},
	}

	cursor, err := repo.bookingColl.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("error computing average rating: %w", err)
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		var row struct {
			Avg   float64 `bson:"avg"`
			Count int     `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return 0, 0, fmt.Errorf("error decoding average rating: %w", err)
		}
		return row.Avg, row.Count, nil
	}
	if err := cursor.Err(); err != nil {
		return 0, 0, fmt.Errorf("cursor error: %w", err)
	}
	return 0, 0, nil
}

// SumCompletedInWindow totals gross amounts of bookings completed in [from, to).
func (repo *MongoBookingRepo) SumCompletedInWindow(ctx context.Context, scope Scope, from, to time.Time) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := scopeFilter(scope)
	filter["status"] = models.StatusCompleted
	filter["completed_at"] = bson.M{"$gte": from, "$lt": to}

	opts := options.Find().SetProjection(bson.M{"amount_paid": 1})

	cursor, err := repo.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error summing window amounts: %w", err)
	}
	defer cursor.Close(ctx)

	total := decimal.Zero
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return decimal.Zero, fmt.Errorf("error decoding booking amount: %w", err)
		}
		total = total.Add(b.AmountPaid.Decimal)
	}
	if err := cursor.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("cursor error: %w", err)
	}
	return total, nil
}
