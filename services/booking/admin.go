package booking

import (
	"context"

	bookingRepo "talentshout/database/repository/booking"
	"talentshout/models"
	"talentshout/utils"

	"go.uber.org/zap"
)

var cancellableStatuses = []models.BookingStatus{
	models.StatusPendingPayment,
	models.StatusPaymentConfirmed,
	models.StatusInProgress,
}

// Cancel terminates a booking that has not yet been delivered. Completed
// bookings cannot be cancelled; the escape hatch for those is Refund. Only
// admins and the due-date sweep cancel bookings.
func (s *DefaultBookingService) Cancel(ctx context.Context, principal models.Principal, bookingID string) (*models.Booking, error) {
	if !principal.IsAdmin() {
		return nil, &utils.PermissionError{Message: "cancellation requires an admin"}
	}

	updated, err := s.Repo.Transition(ctx, bookingID, cancellableStatuses, models.StatusCancelled, nil)
	if err == bookingRepo.ErrStaleTransition {
		return nil, s.invalidTransition(ctx, bookingID, models.StatusCancelled)
	}
	if err != nil {
		return nil, notFound(err, bookingID)
	}

	s.Logger.Info("booking cancelled", describe(updated)...)
	s.recomputeTalentAggregates(ctx, updated.TalentID)
	return updated, nil
}

// Refund reverses the settled charge through the original gateway and then
// terminates the booking. The money moves first: if the gateway reversal
// fails, the booking keeps its current status and the operation can be
// retried. Refunding a completed booking keeps its video and completion
// timestamps for the audit trail.
func (s *DefaultBookingService) Refund(ctx context.Context, principal models.Principal, bookingID string) (*models.Booking, error) {
	if !principal.IsAdmin() {
		return nil, &utils.PermissionError{Message: "refunds require an admin"}
	}

	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status.IsTerminal() {
		return nil, &utils.InvalidStateTransitionError{From: string(b.Status), To: string(models.StatusRefunded)}
	}

	// pending_payment bookings carry no settled charge, so there is nothing
	// to reverse at the gateway.
	if b.Status != models.StatusPendingPayment {
		p, err := s.Repo.GetPaymentByBookingID(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, utils.NewValidationError("booking_id", "booking has no payment to reverse")
		}
		method, err := s.Methods.Get(p.Gateway)
		if err != nil {
			return nil, err
		}
		if err := method.Reverse(ctx, p.Reference, b.AmountPaid, b.Currency); err != nil {
			s.Logger.Error("gateway reversal failed", append(describe(b),
				zap.String("gateway", string(p.Gateway)), zap.Error(err))...)
			return nil, err
		}
	}

	updated, err := s.Repo.Transition(ctx, bookingID,
		append(cancellableStatuses, models.StatusCompleted),
		models.StatusRefunded, nil)
	if err == bookingRepo.ErrStaleTransition {
		return nil, s.invalidTransition(ctx, bookingID, models.StatusRefunded)
	}
	if err != nil {
		return nil, notFound(err, bookingID)
	}

	s.Logger.Info("booking refunded", append(describe(updated), zap.String("amount", fmtAmount(updated)))...)
	s.recomputeTalentAggregates(ctx, updated.TalentID)
	return updated, nil
}
