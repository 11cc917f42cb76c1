package booking

import (
	"context"
	"time"

	talentRepo "talentshout/database/repository/talent"
	"talentshout/models"
	"talentshout/services/settlement"
	"talentshout/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create builds a new booking in pending_payment. The talent's current price
// and the platform fee rate are snapshotted onto the booking so later policy
// changes never alter the split of historical bookings.
func (s *DefaultBookingService) Create(ctx context.Context, principal models.Principal, input models.BookingInput) (*models.Booking, error) {
	if principal.ID == "" {
		return nil, &utils.PermissionError{Message: "authentication required"}
	}

	profile, err := s.TalentRepo.GetByID(ctx, input.TalentID)
	if err != nil {
		if err == talentRepo.ErrNotFound {
			return nil, &utils.NotFoundError{Entity: "talent", ID: input.TalentID}
		}
		return nil, err
	}
	if !profile.AcceptingBookings {
		return nil, utils.NewValidationError("talent_id", "talent is not currently accepting bookings")
	}
	if !profile.Currency.IsValid() {
		return nil, utils.NewValidationError("currency", "talent profile has an unsupported currency")
	}

	split, err := settlement.Compute(profile.Price.Decimal, s.FeeRate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	code, err := s.Repo.NextCode(ctx, now.Year())
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		ID:             uuid.New().String(),
		Code:           code,
		CustomerID:     principal.ID,
		TalentID:       profile.ID,
		RecipientName:  input.RecipientName,
		Occasion:       input.Occasion,
		Instructions:   input.Instructions,
		Currency:       profile.Currency,
		AmountPaid:     profile.Price,
		PlatformFee:    models.NewMoney(split.PlatformFee),
		TalentEarnings: models.NewMoney(split.TalentEarnings),
		FeeRate:        s.FeeRate.String(),
		Status:         models.StatusPendingPayment,
		DueDate:        now.AddDate(0, 0, s.DueDays),
		CreatedAt:      now,
		UpdatedAt:      now,
		Version:        1,
	}

	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.Logger.Info("booking created", append(describe(b), zap.String("amount", fmtAmount(b)))...)
	s.recomputeTalentAggregates(ctx, b.TalentID)
	return b, nil
}
