package booking

import (
	"context"
	"fmt"

	accountRepo "talentshout/database/repository/account"
	bookingRepo "talentshout/database/repository/booking"
	talentRepo "talentshout/database/repository/talent"
	"talentshout/models"
	"talentshout/services/payment"
	"talentshout/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo        bookingRepo.Repository
	TalentRepo  talentRepo.Repository
	AccountRepo accountRepo.Repository
	Methods     *payment.Registry
	Submitter   *payment.Submitter
	FeeRate     decimal.Decimal // platform fee rate applied to new bookings
	DueDays     int             // delivery window granted to the talent
	Logger      *zap.Logger
}

// notFound translates repository sentinels into the caller-facing taxonomy.
func notFound(err error, id string) error {
	if err == bookingRepo.ErrNotFound {
		return &utils.NotFoundError{Entity: "booking", ID: id}
	}
	return err
}

// load fetches a booking, translating the missing case.
func (s *DefaultBookingService) load(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, notFound(err, bookingID)
	}
	return b, nil
}

// talentProfileFor resolves the principal's talent profile.
func (s *DefaultBookingService) talentProfileFor(ctx context.Context, principal models.Principal) (*models.TalentProfile, error) {
	profile, err := s.TalentRepo.GetByUserID(ctx, principal.ID)
	if err != nil {
		if err == talentRepo.ErrNotFound {
			return nil, &utils.PermissionError{Message: "caller has no talent profile"}
		}
		return nil, err
	}
	return profile, nil
}

// canSee reports whether the principal may view the booking. Talents are
// matched through their profile since bookings reference the profile ID.
func (s *DefaultBookingService) canSee(ctx context.Context, principal models.Principal, b *models.Booking) (bool, error) {
	if principal.IsAdmin() || b.CustomerID == principal.ID {
		return true, nil
	}
	profile, err := s.TalentRepo.GetByUserID(ctx, principal.ID)
	if err != nil {
		if err == talentRepo.ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return profile.ID == b.TalentID, nil
}

// recomputeTalentAggregates rewrites the talent profile's derived rating and
// booking counters from the booking collection. Failures are logged, not
// surfaced: the aggregates are recomputed on the next mutation anyway.
func (s *DefaultBookingService) recomputeTalentAggregates(ctx context.Context, talentID string) {
	counts, err := s.Repo.CountByStatus(ctx, bookingRepo.Scope{TalentID: talentID})
	if err != nil {
		s.Logger.Warn("failed to count bookings for talent aggregates",
			zap.String("talentId", talentID), zap.Error(err))
		return
	}
	total := 0
	for _, n := range counts {
		total += n
	}

	avg, _, err := s.Repo.AverageRating(ctx, talentID)
	if err != nil {
		s.Logger.Warn("failed to compute average rating",
			zap.String("talentId", talentID), zap.Error(err))
		return
	}

	if err := s.TalentRepo.UpdateAggregates(ctx, talentID, avg, total, counts[models.StatusCompleted]); err != nil {
		s.Logger.Warn("failed to persist talent aggregates",
			zap.String("talentId", talentID), zap.Error(err))
	}
}

// invalidTransition builds the taxonomy error for a rejected status change,
// re-reading the booking so the error names the actual current status.
func (s *DefaultBookingService) invalidTransition(ctx context.Context, bookingID string, to models.BookingStatus) error {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return err
	}
	return &utils.InvalidStateTransitionError{From: string(b.Status), To: string(to)}
}

func pageToSkipLimit(filter models.BookingFilter) (int64, int64) {
	pageSize := int64(filter.PageSize)
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	page := int64(filter.Page)
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize, pageSize
}

// ensure interface compliance at compile time.
var _ BookingService = (*DefaultBookingService)(nil)

func describe(b *models.Booking) []zap.Field {
	return []zap.Field{
		zap.String("bookingId", b.ID),
		zap.String("code", b.Code),
		zap.String("status", string(b.Status)),
	}
}

func fmtAmount(b *models.Booking) string {
	return fmt.Sprintf("%s %s", b.Currency, b.AmountPaid.StringFixed(2))
}
