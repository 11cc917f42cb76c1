package booking

import (
	"context"
	"time"

	bookingRepo "talentshout/database/repository/booking"
	"talentshout/models"

	"go.uber.org/zap"
)

// SweepOverdue cancels bookings whose delivery window passed without a video.
// Each booking is cancelled with a guarded transition, so a booking delivered
// between the scan and the write is left alone.
func (s *DefaultBookingService) SweepOverdue(ctx context.Context) (int, error) {
	overdue, err := s.Repo.ListOverdue(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for i := range overdue {
		b := &overdue[i]
		_, err := s.Repo.Transition(ctx, b.ID, cancellableStatuses, models.StatusCancelled, nil)
		if err == bookingRepo.ErrStaleTransition {
			continue
		}
		if err != nil {
			s.Logger.Warn("failed to cancel overdue booking", append(describe(b), zap.Error(err))...)
			continue
		}
		cancelled++
		s.Logger.Info("overdue booking cancelled", describe(b)...)
		s.recomputeTalentAggregates(ctx, b.TalentID)
	}

	if cancelled > 0 {
		s.Logger.Info("due-date sweep finished",
			zap.Int("scanned", len(overdue)), zap.Int("cancelled", cancelled))
	}
	return cancelled, nil
}
