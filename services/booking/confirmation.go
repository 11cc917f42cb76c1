package booking

import (
	"context"
	"time"

	bookingRepo "talentshout/database/repository/booking"
	"talentshout/models"
	"talentshout/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pay settles the charge for a pending booking and confirms it. The
// idempotency key is derived from the booking so a client retry after a lost
// response presents the same key to the gateway.
func (s *DefaultBookingService) Pay(ctx context.Context, principal models.Principal, bookingID string, req models.PaymentRequest) (*models.Booking, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != principal.ID && !principal.IsAdmin() {
		return nil, &utils.NotFoundError{Entity: "booking", ID: bookingID}
	}

	if b.Status != models.StatusPendingPayment {
		if existing, perr := s.Repo.GetPaymentByBookingID(ctx, bookingID); perr == nil && existing != nil {
			// Duplicate submission after a successful charge: return the
			// confirmed booking rather than charging again.
			return nil, &utils.AlreadyProcessedError{Message: "booking already paid", Result: b}
		}
		return nil, &utils.InvalidStateTransitionError{From: string(b.Status), To: string(models.StatusPaymentConfirmed)}
	}

	method, err := s.Methods.Get(req.Gateway)
	if err != nil {
		return nil, utils.NewValidationError("gateway", err.Error())
	}

	req.BookingID = b.ID
	req.Amount = b.AmountPaid
	req.Currency = b.Currency
	req.Idempotency = "pay-" + b.ID

	conf, err := s.Submitter.Process(ctx, method, req)
	if err != nil {
		// Declines and timeouts leave the booking in pending_payment.
		return nil, err
	}

	return s.ConfirmPayment(ctx, principal, bookingID, *conf)
}

// ConfirmPayment records the payment and flips the booking to
// payment_confirmed in one transaction. The booking is never observable as
// payment_confirmed without its completed payment row, and a duplicate
// confirmation with the same provider reference returns the prior result.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, principal models.Principal, bookingID string, conf models.PaymentConfirmation) (*models.Booking, error) {
	if conf.Reference == "" {
		return nil, utils.NewValidationError("reference", "missing provider reference")
	}

	// Duplicate webhook/retry: the reference was already recorded.
	if prior, err := s.Repo.GetPaymentByReference(ctx, conf.Reference); err != nil {
		return nil, err
	} else if prior != nil {
		if prior.BookingID != bookingID {
			return nil, utils.NewValidationError("reference", "provider reference belongs to another booking")
		}
		s.Logger.Info("duplicate payment confirmation ignored",
			zap.String("bookingId", bookingID), zap.String("reference", conf.Reference))
		return s.load(ctx, bookingID)
	}

	p := &models.Payment{
		ID:            uuid.New().String(),
		BookingID:     bookingID,
		Gateway:       conf.Gateway,
		Reference:     conf.Reference,
		MaskedAccount: conf.MaskedAccount,
		Status:        models.PaymentCompleted,
		CreatedAt:     time.Now().UTC(),
	}

	updated, err := s.Repo.ConfirmPayment(ctx, bookingID, p)
	if err == bookingRepo.ErrStaleTransition {
		// Lost a race or the booking is not pending. If our reference won a
		// concurrent confirmation this is still a duplicate, handled above on
		// retry; otherwise the transition is genuinely invalid.
		if prior, perr := s.Repo.GetPaymentByReference(ctx, conf.Reference); perr == nil && prior != nil && prior.BookingID == bookingID {
			return s.load(ctx, bookingID)
		}
		return nil, s.invalidTransition(ctx, bookingID, models.StatusPaymentConfirmed)
	}
	if err != nil {
		return nil, notFound(err, bookingID)
	}

	s.Logger.Info("payment confirmed", append(describe(updated),
		zap.String("gateway", string(conf.Gateway)),
		zap.String("reference", conf.Reference))...)
	return updated, nil
}
