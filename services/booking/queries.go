package booking

import (
	"context"

	accountRepo "talentshout/database/repository/account"
	bookingRepo "talentshout/database/repository/booking"
	talentRepo "talentshout/database/repository/talent"
	"talentshout/models"
	"talentshout/utils"
)

// Get returns the booking with nested customer, talent and payment summaries.
// Visibility failures surface as not-found so callers cannot probe for the
// existence of other users' bookings.
func (s *DefaultBookingService) Get(ctx context.Context, principal models.Principal, bookingID string) (*models.BookingDetail, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	visible, err := s.canSee(ctx, principal, b)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, &utils.NotFoundError{Entity: "booking", ID: bookingID}
	}

	detail := &models.BookingDetail{Booking: *b}

	if acct, err := s.AccountRepo.GetByID(ctx, b.CustomerID); err == nil {
		detail.Customer = &models.CustomerSummary{ID: acct.ID, DisplayName: acct.DisplayName}
	} else if err != accountRepo.ErrNotFound {
		return nil, err
	}

	if profile, err := s.TalentRepo.GetByID(ctx, b.TalentID); err == nil {
		detail.Talent = &models.TalentSummary{
			ID:        profile.ID,
			StageName: profile.StageName,
			Category:  profile.Category,
		}
	} else if err != talentRepo.ErrNotFound {
		return nil, err
	}

	p, err := s.Repo.GetPaymentByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		detail.Payment = &models.PaymentSummary{
			Gateway:   string(p.Gateway),
			Reference: p.Reference,
			Status:    string(p.Status),
			CreatedAt: p.CreatedAt,
		}
	}

	return detail, nil
}

// List returns the bookings visible to the caller's role: fans see bookings
// they placed, talents see bookings addressed to them, admins see everything.
func (s *DefaultBookingService) List(ctx context.Context, principal models.Principal, filter models.BookingFilter) ([]models.Booking, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, utils.NewValidationError("status", "unknown booking status")
	}

	scope := bookingRepo.Scope{}
	switch {
	case principal.IsAdmin():
		// Platform-wide.
	case principal.Role == models.RoleTalent:
		profile, err := s.talentProfileFor(ctx, principal)
		if err != nil {
			return nil, err
		}
		scope.TalentID = profile.ID
	default:
		scope.CustomerID = principal.ID
	}

	skip, limit := pageToSkipLimit(filter)
	return s.Repo.List(ctx, bookingRepo.ListQuery{
		Scope:  scope,
		Status: filter.Status,
		Skip:   skip,
		Limit:  limit,
	})
}
