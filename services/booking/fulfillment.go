package booking

import (
	"context"
	"strings"
	"time"

	bookingRepo "talentshout/database/repository/booking"
	"talentshout/models"
	"talentshout/utils"

	"go.uber.org/zap"
)

// Acknowledge moves a paid booking to in_progress, signalling the talent has
// picked the request up.
func (s *DefaultBookingService) Acknowledge(ctx context.Context, principal models.Principal, bookingID string) (*models.Booking, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.requireTalentOwner(ctx, principal, b); err != nil {
		return nil, err
	}

	updated, err := s.Repo.Transition(ctx, bookingID,
		[]models.BookingStatus{models.StatusPaymentConfirmed},
		models.StatusInProgress, nil)
	if err == bookingRepo.ErrStaleTransition {
		return nil, s.invalidTransition(ctx, bookingID, models.StatusInProgress)
	}
	if err != nil {
		return nil, notFound(err, bookingID)
	}

	s.Logger.Info("booking acknowledged", describe(updated)...)
	return updated, nil
}

// DeliverVideo completes a paid booking with the recorded video. A booking can
// only be completed with a video attached, and completion stamps completed_at.
func (s *DefaultBookingService) DeliverVideo(ctx context.Context, principal models.Principal, bookingID, videoURL string) (*models.Booking, error) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return nil, utils.NewValidationError("video_url", "a delivered booking must carry its video")
	}

	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.requireTalentOwner(ctx, principal, b); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated, err := s.Repo.Transition(ctx, bookingID,
		[]models.BookingStatus{models.StatusPaymentConfirmed, models.StatusInProgress},
		models.StatusCompleted,
		map[string]interface{}{"video_url": videoURL, "completed_at": now})
	if err == bookingRepo.ErrStaleTransition {
		return nil, s.invalidTransition(ctx, bookingID, models.StatusCompleted)
	}
	if err != nil {
		return nil, notFound(err, bookingID)
	}

	s.Logger.Info("video delivered", append(describe(updated), zap.String("videoUrl", videoURL))...)
	s.recomputeTalentAggregates(ctx, updated.TalentID)
	return updated, nil
}

// Rate records the customer's 1-5 rating on a completed booking. A booking can
// be rated once; repeats return the prior result.
func (s *DefaultBookingService) Rate(ctx context.Context, principal models.Principal, bookingID string, rating int, review string) (*models.Booking, error) {
	if rating < 1 || rating > 5 {
		return nil, utils.NewValidationError("rating", "rating must be between 1 and 5")
	}

	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != principal.ID {
		return nil, &utils.PermissionError{Message: "only the booking customer may rate it"}
	}
	if b.Status != models.StatusCompleted {
		return nil, &utils.InvalidStateTransitionError{From: string(b.Status), To: string(models.StatusCompleted)}
	}
	if b.CustomerRating != 0 {
		return nil, &utils.AlreadyProcessedError{Message: "booking already rated", Result: b}
	}

	updated, err := s.Repo.SetRating(ctx, bookingID, rating, review)
	if err == bookingRepo.ErrStaleTransition {
		// Raced with another rating of the same booking.
		prior, lerr := s.load(ctx, bookingID)
		if lerr != nil {
			return nil, lerr
		}
		return nil, &utils.AlreadyProcessedError{Message: "booking already rated", Result: prior}
	}
	if err != nil {
		return nil, notFound(err, bookingID)
	}

	s.Logger.Info("booking rated", append(describe(updated), zap.Int("rating", rating))...)
	s.recomputeTalentAggregates(ctx, updated.TalentID)
	return updated, nil
}

// requireTalentOwner verifies the principal is the booking's talent (or an
// admin acting on their behalf).
func (s *DefaultBookingService) requireTalentOwner(ctx context.Context, principal models.Principal, b *models.Booking) error {
	if principal.IsAdmin() {
		return nil
	}
	profile, err := s.talentProfileFor(ctx, principal)
	if err != nil {
		return err
	}
	if profile.ID != b.TalentID {
		return &utils.PermissionError{Message: "booking belongs to another talent"}
	}
	return nil
}
