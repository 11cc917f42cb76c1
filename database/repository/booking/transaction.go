package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"talentshout/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ConfirmPayment writes the payment record and advances the booking from
// pending_payment to payment_confirmed inside a single Mongo transaction.
// A booking can never be observed payment_confirmed without its completed
// payment row, and the status filter makes duplicate confirmations lose the
// race rather than double-apply.
func (repo *MongoBookingRepo) ConfirmPayment(ctx context.Context, bookingID string, payment *models.Payment) (*models.Booking, error) {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := repo.paymentColl.InsertOne(sc, payment); err != nil {
			return fmt.Errorf("insert payment failed: %w", err)
		}

		filter := bson.M{
			"id":     bookingID,
			"status": models.StatusPendingPayment,
		}
		update := bson.M{
			"$set": bson.M{
				"status":     models.StatusPaymentConfirmed,
				"updated_at": time.Now().UTC(),
			},
			"$inc": bson.M{"version": 1},
		}

		res, err := repo.bookingColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("advance booking status failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrStaleTransition
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrStaleTransition {
			return nil, ErrStaleTransition
		}
		return nil, fmt.Errorf("payment confirmation transaction failed: %w", err)
	}

	return repo.GetByID(ctx, bookingID)
}

// GetPaymentByBookingID returns the payment attached to a booking, if any.
func (repo *MongoBookingRepo) GetPaymentByBookingID(ctx context.Context, bookingID string) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Payment
	if err := repo.paymentColl.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching payment for booking %s: %w", bookingID, err)
	}
	return &p, nil
}

// GetPaymentByReference looks a payment up by its provider reference.
func (repo *MongoBookingRepo) GetPaymentByReference(ctx context.Context, reference string) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Payment
	if err := repo.paymentColl.FindOne(ctx, bson.M{"reference": reference}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching payment with reference %s: %w", reference, err)
	}
	return &p, nil
}
