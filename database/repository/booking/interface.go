package bookingRepo

import (
	"context"
	"errors"
	"time"

	"talentshout/models"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when no booking matches the given identifier.
var ErrNotFound = errors.New("booking not found")

// ErrStaleTransition is returned when a compare-and-swap update matched no
// document: the booking was not in any of the expected statuses, typically
// because a concurrent writer got there first.
var ErrStaleTransition = errors.New("booking not in expected status")

// Scope narrows queries to one side of the marketplace. The zero value is
// platform-wide (admin).
type Scope struct {
	CustomerID string
	TalentID   string
}

// ListQuery describes a role-scoped booking listing.
type ListQuery struct {
	Scope  Scope
	Status models.BookingStatus // empty = all statuses
	Skip   int64
	Limit  int64
}

// AmountTotals are exact sums over a set of bookings.
type AmountTotals struct {
	Gross    decimal.Decimal
	Fees     decimal.Decimal
	Earnings decimal.Decimal
}

// Repository persists bookings. It is the only writer of booking rows; all
// mutating operations are status-guarded compare-and-swap updates so that
// concurrent writers against the same booking cannot both succeed.
type Repository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByCode(ctx context.Context, code string) (*models.Booking, error)

	// NextCode allocates the next human-readable booking code for the year,
	// e.g. "TS-2026-0120". Allocation is atomic across concurrent creators.
	NextCode(ctx context.Context, year int) (string, error)

	// ConfirmPayment inserts the payment record and flips the booking from
	// pending_payment to payment_confirmed in a single transaction. Returns
	// ErrStaleTransition if the booking is not pending_payment.
	ConfirmPayment(ctx context.Context, bookingID string, payment *models.Payment) (*models.Booking, error)

	// GetPaymentByBookingID returns the payment attached to a booking, or nil.
	GetPaymentByBookingID(ctx context.Context, bookingID string) (*models.Payment, error)

	// GetPaymentByReference looks a payment up by its provider reference,
	// used to make duplicate confirmations idempotent.
	GetPaymentByReference(ctx context.Context, reference string) (*models.Payment, error)

	// Transition performs a guarded status change, optionally setting extra
	// fields, and returns the updated booking. Returns ErrStaleTransition if
	// the booking is in none of the from statuses.
	Transition(ctx context.Context, id string, from []models.BookingStatus, to models.BookingStatus, set map[string]interface{}) (*models.Booking, error)

	// SetRating records a customer rating on a completed, unrated booking.
	SetRating(ctx context.Context, id string, rating int, review string) (*models.Booking, error)

	List(ctx context.Context, q ListQuery) ([]models.Booking, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]models.Booking, error)

	CountByStatus(ctx context.Context, scope Scope) (map[models.BookingStatus]int, error)

	// SumAmounts totals completed bookings within the scope. Sums are computed
	// in decimal arithmetic; no remainder is dropped.
	SumAmounts(ctx context.Context, scope Scope) (AmountTotals, error)

	// AverageRating is the mean customer rating over rated completed bookings
	// for the talent, with the number of rated bookings.
	AverageRating(ctx context.Context, talentID string) (float64, int, error)

	// SumCompletedInWindow totals gross amounts of bookings completed within
	// [from, to), used for the trailing-window growth calculation.
	SumCompletedInWindow(ctx context.Context, scope Scope, from, to time.Time) (decimal.Decimal, error)
}
