package talent

import (
	"context"
	"time"

	accountRepo "talentshout/database/repository/account"
	applicationRepo "talentshout/database/repository/application"
	talentRepo "talentshout/database/repository/talent"
	"talentshout/models"
	"talentshout/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultTalentService implements TalentService.
type DefaultTalentService struct {
	Apps     applicationRepo.Repository
	Profiles talentRepo.Repository
	Accounts accountRepo.Repository
	Logger   *zap.Logger
}

var _ TalentService = (*DefaultTalentService)(nil)

// Apply submits a talent application. A fresh application starts in pending;
// an earlier rejection does not block resubmission.
func (s *DefaultTalentService) Apply(ctx context.Context, principal models.Principal, input models.ApplicationInput) (*models.TalentApplication, error) {
	if principal.ID == "" {
		return nil, &utils.PermissionError{Message: "authentication required"}
	}

	if _, err := s.Profiles.GetByUserID(ctx, principal.ID); err == nil {
		return nil, utils.NewValidationError("user_id", "caller already has a talent profile")
	} else if err != talentRepo.ErrNotFound {
		return nil, err
	}

	active, err := s.Apps.GetActiveByUserID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, &utils.AlreadyProcessedError{Message: "an application is already in review", Result: active}
	}

	price, err := models.MoneyFromString(input.ProposedPrice)
	if err != nil || price.LessThanOrEqual(decimal.Zero) {
		return nil, utils.NewValidationError("proposed_price", "proposed price must be a positive decimal amount")
	}
	if !input.Currency.IsValid() {
		return nil, utils.NewValidationError("currency", "unsupported currency")
	}

	now := time.Now().UTC()
	app := &models.TalentApplication{
		ID:            uuid.New().String(),
		UserID:        principal.ID,
		StageName:     input.StageName,
		Category:      input.Category,
		ProposedPrice: price,
		Currency:      input.Currency,
		Social:        input.Social,
		Status:        models.ApplicationPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Apps.Create(ctx, app); err != nil {
		return nil, err
	}

	s.Logger.Info("talent application submitted",
		zap.String("applicationId", app.ID), zap.String("userId", principal.ID),
		zap.String("stageName", app.StageName))
	return app, nil
}

// GetApplication returns an application to its owner or an admin.
func (s *DefaultTalentService) GetApplication(ctx context.Context, principal models.Principal, id string) (*models.TalentApplication, error) {
	app, err := s.Apps.GetByID(ctx, id)
	if err != nil {
		if err == applicationRepo.ErrNotFound {
			return nil, &utils.NotFoundError{Entity: "application", ID: id}
		}
		return nil, err
	}
	if app.UserID != principal.ID && !principal.IsAdmin() {
		return nil, &utils.NotFoundError{Entity: "application", ID: id}
	}
	return app, nil
}

// MyApplication returns the caller's active application, or nil.
func (s *DefaultTalentService) MyApplication(ctx context.Context, principal models.Principal) (*models.TalentApplication, error) {
	return s.Apps.GetActiveByUserID(ctx, principal.ID)
}

// ReviewQueue lists applications awaiting an admin decision, oldest first.
func (s *DefaultTalentService) ReviewQueue(ctx context.Context, principal models.Principal, status models.ApplicationStatus, limit int64) ([]models.TalentApplication, error) {
	if !principal.IsAdmin() {
		return nil, &utils.PermissionError{Message: "review queue requires an admin"}
	}
	if status == "" {
		status = models.ApplicationPending
	}
	if !status.IsValid() {
		return nil, utils.NewValidationError("status", "unknown application status")
	}
	return s.Apps.ListByStatus(ctx, status, limit)
}

// Review applies an admin decision to an application. Approval provisions
// the talent profile from the application's proposed terms, upgrades the
// account role, and settles the application in onboarding. Profile
// provisioning and the role change happen exactly once because the approved
// transition is status-guarded.
func (s *DefaultTalentService) Review(ctx context.Context, principal models.Principal, id string, input models.ApplicationReviewInput) (*models.TalentApplication, error) {
	if !principal.IsAdmin() {
		return nil, &utils.PermissionError{Message: "application review requires an admin"}
	}

	switch input.Status {
	case models.ApplicationUnderReview, models.ApplicationApproved, models.ApplicationRejected:
	default:
		return nil, utils.NewValidationError("status", "review decision must be under_review, approved or rejected")
	}

	app, err := s.Apps.GetByID(ctx, id)
	if err != nil {
		if err == applicationRepo.ErrNotFound {
			return nil, &utils.NotFoundError{Entity: "application", ID: id}
		}
		return nil, err
	}
	if !app.Status.CanTransition(input.Status) {
		return nil, &utils.InvalidStateTransitionError{From: string(app.Status), To: string(input.Status)}
	}

	now := time.Now().UTC()
	set := map[string]interface{}{"reviewed_at": now}
	if input.AdminNotes != "" {
		set["admin_notes"] = input.AdminNotes
	}

	updated, err := s.Apps.Transition(ctx, id,
		[]models.ApplicationStatus{app.Status}, input.Status, set)
	if err == applicationRepo.ErrStaleTransition {
		fresh, gerr := s.Apps.GetByID(ctx, id)
		if gerr != nil {
			return nil, gerr
		}
		return nil, &utils.InvalidStateTransitionError{From: string(fresh.Status), To: string(input.Status)}
	}
	if err != nil {
		return nil, err
	}

	s.Logger.Info("application reviewed",
		zap.String("applicationId", id), zap.String("decision", string(input.Status)),
		zap.String("reviewedBy", principal.ID))

	if input.Status != models.ApplicationApproved {
		return updated, nil
	}
	return s.onboard(ctx, updated)
}

// onboard provisions the talent profile for an approved application and
// upgrades the account role, then parks the application in onboarding.
func (s *DefaultTalentService) onboard(ctx context.Context, app *models.TalentApplication) (*models.TalentApplication, error) {
	now := time.Now().UTC()
	profile := &models.TalentProfile{
		ID:        uuid.New().String(),
		UserID:    app.UserID,
		StageName: app.StageName,
		Category:  app.Category,
		Price:     app.ProposedPrice,
		Currency:  app.Currency,
		// Closed until the talent opens availability themselves.
		AcceptingBookings: false,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.Profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	if err := s.Accounts.SetRole(ctx, app.UserID, models.RoleTalent); err != nil {
		s.Logger.Error("failed to upgrade account role after approval",
			zap.String("userId", app.UserID), zap.Error(err))
		return nil, err
	}

	settled, err := s.Apps.Transition(ctx, app.ID,
		[]models.ApplicationStatus{models.ApplicationApproved},
		models.ApplicationOnboarding, nil)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("talent onboarded",
		zap.String("userId", app.UserID), zap.String("profileId", profile.ID),
		zap.String("stageName", profile.StageName))
	return settled, nil
}

// GetProfile returns a talent profile by ID.
func (s *DefaultTalentService) GetProfile(ctx context.Context, id string) (*models.TalentProfile, error) {
	profile, err := s.Profiles.GetByID(ctx, id)
	if err != nil {
		if err == talentRepo.ErrNotFound {
			return nil, &utils.NotFoundError{Entity: "talent", ID: id}
		}
		return nil, err
	}
	return profile, nil
}

// UpdateSettings applies the talent's own pricing and availability changes.
// Price changes affect future bookings only; existing bookings keep their
// snapshot.
func (s *DefaultTalentService) UpdateSettings(ctx context.Context, principal models.Principal, input models.TalentSettingsInput) (*models.TalentProfile, error) {
	profile, err := s.Profiles.GetByUserID(ctx, principal.ID)
	if err != nil {
		if err == talentRepo.ErrNotFound {
			return nil, &utils.PermissionError{Message: "caller has no talent profile"}
		}
		return nil, err
	}

	set := make(map[string]interface{})
	if input.Price != nil {
		price, err := models.MoneyFromString(*input.Price)
		if err != nil || price.LessThanOrEqual(decimal.Zero) {
			return nil, utils.NewValidationError("price", "price must be a positive decimal amount")
		}
		set["price"] = price
	}
	if input.Currency != nil {
		if !input.Currency.IsValid() {
			return nil, utils.NewValidationError("currency", "unsupported currency")
		}
		set["currency"] = *input.Currency
	}
	if input.AcceptingBookings != nil {
		set["accepting_bookings"] = *input.AcceptingBookings
	}
	if len(set) == 0 {
		return profile, nil
	}

	updated, err := s.Profiles.UpdateSettings(ctx, profile.ID, set)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("talent settings updated",
		zap.String("profileId", profile.ID), zap.Int("fields", len(set)))
	return updated, nil
}
