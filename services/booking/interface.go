package booking

import (
	"context"

	"talentshout/models"
)

// BookingService coordinates the full booking lifecycle: creation, payment
// confirmation, fulfilment, cancellation and refund. It is the only writer
// of booking state.
type BookingService interface {
	// Create validates the talent is accepting bookings, snapshots the price
	// and fee split, and returns a new booking in pending_payment.
	Create(ctx context.Context, principal models.Principal, input models.BookingInput) (*models.Booking, error)

	// Pay validates and settles a charge through the requested gateway, then
	// confirms the booking. On decline or timeout the booking is left in
	// pending_payment with no partial side effects.
	Pay(ctx context.Context, principal models.Principal, bookingID string, req models.PaymentRequest) (*models.Booking, error)

	// ConfirmPayment atomically records the payment and advances the booking
	// to payment_confirmed. A repeat call with the same provider reference is
	// idempotent and returns the already-confirmed booking.
	ConfirmPayment(ctx context.Context, principal models.Principal, bookingID string, conf models.PaymentConfirmation) (*models.Booking, error)

	// Acknowledge marks a paid booking as in_progress on behalf of the talent.
	Acknowledge(ctx context.Context, principal models.Principal, bookingID string) (*models.Booking, error)

	// DeliverVideo completes a paid booking with the uploaded video URL.
	DeliverVideo(ctx context.Context, principal models.Principal, bookingID, videoURL string) (*models.Booking, error)

	// Cancel terminates a non-terminal booking. Not permitted from completed,
	// and only admins (or the sweep) may cancel.
	Cancel(ctx context.Context, principal models.Principal, bookingID string) (*models.Booking, error)

	// Refund reverses the settled charge and terminates the booking. Unlike
	// Cancel it is also permitted from completed.
	Refund(ctx context.Context, principal models.Principal, bookingID string) (*models.Booking, error)

	// Rate records the customer's rating on a completed booking.
	Rate(ctx context.Context, principal models.Principal, bookingID string, rating int, review string) (*models.Booking, error)

	// Get returns the booking with nested customer/talent/payment summaries,
	// subject to the caller's visibility.
	Get(ctx context.Context, principal models.Principal, bookingID string) (*models.BookingDetail, error)

	// List returns the bookings visible to the caller's role.
	List(ctx context.Context, principal models.Principal, filter models.BookingFilter) ([]models.Booking, error)

	// SweepOverdue cancels bookings whose due date passed without delivery.
	// Returns the number of bookings cancelled.
	SweepOverdue(ctx context.Context) (int, error)
}
