package talent

import (
	"context"
	"errors"
	"testing"
	"time"

	accountRepo "talentshout/database/repository/account"
	applicationRepo "talentshout/database/repository/application"
	talentRepo "talentshout/database/repository/talent"
	"talentshout/models"
	"talentshout/utils"

	"go.uber.org/zap"
)

type fakeAppRepo struct {
	apps map[string]*models.TalentApplication
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{apps: make(map[string]*models.TalentApplication)}
}

func (f *fakeAppRepo) Create(ctx context.Context, app *models.TalentApplication) error {
	cp := *app
	f.apps[app.ID] = &cp
	return nil
}

func (f *fakeAppRepo) GetByID(ctx context.Context, id string) (*models.TalentApplication, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, applicationRepo.ErrNotFound
	}
	cp := *app
	return &cp, nil
}

func (f *fakeAppRepo) GetActiveByUserID(ctx context.Context, userID string) (*models.TalentApplication, error) {
	var latest *models.TalentApplication
	for _, app := range f.apps {
		if app.UserID != userID || app.Status == models.ApplicationRejected {
			continue
		}
		if latest == nil || app.CreatedAt.After(latest.CreatedAt) {
			latest = app
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeAppRepo) Transition(ctx context.Context, id string, from []models.ApplicationStatus, to models.ApplicationStatus, set map[string]interface{}) (*models.TalentApplication, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, applicationRepo.ErrNotFound
	}
	matched := false
	for _, s := range from {
		if app.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return nil, applicationRepo.ErrStaleTransition
	}
	app.Status = to
	for k, v := range set {
		switch k {
		case "admin_notes":
			app.AdminNotes = v.(string)
		case "reviewed_at":
			t := v.(time.Time)
			app.ReviewedAt = &t
		}
	}
	app.UpdatedAt = time.Now().UTC()
	cp := *app
	return &cp, nil
}

func (f *fakeAppRepo) ListByStatus(ctx context.Context, status models.ApplicationStatus, limit int64) ([]models.TalentApplication, error) {
	var out []models.TalentApplication
	for _, app := range f.apps {
		if app.Status == status {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (f *fakeAppRepo) CountByStatus(ctx context.Context, status models.ApplicationStatus) (int, error) {
	n := 0
	for _, app := range f.apps {
		if app.Status == status {
			n++
		}
	}
	return n, nil
}

var _ applicationRepo.Repository = (*fakeAppRepo)(nil)

type fakeProfileRepo struct {
	profiles map[string]*models.TalentProfile
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *models.TalentProfile) error {
	cp := *p
	f.profiles[p.ID] = &cp
	return nil
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*models.TalentProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, talentRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.TalentProfile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, talentRepo.ErrNotFound
}

func (f *fakeProfileRepo) UpdateSettings(ctx context.Context, id string, set map[string]interface{}) (*models.TalentProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, talentRepo.ErrNotFound
	}
	for k, v := range set {
		switch k {
		case "price":
			p.Price = v.(models.Money)
		case "currency":
			p.Currency = v.(models.Currency)
		case "accepting_bookings":
			p.AcceptingBookings = v.(bool)
		}
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) UpdateAggregates(ctx context.Context, id string, avgRating float64, total, completed int) error {
	return nil
}

var _ talentRepo.Repository = (*fakeProfileRepo)(nil)

type fakeAccounts struct {
	roles map[string]models.Role
}

func (f *fakeAccounts) Create(ctx context.Context, a *models.Account) error { return nil }

func (f *fakeAccounts) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return nil, accountRepo.ErrNotFound
}

func (f *fakeAccounts) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return nil, accountRepo.ErrNotFound
}

func (f *fakeAccounts) SetRole(ctx context.Context, id string, role models.Role) error {
	f.roles[id] = role
	return nil
}

var _ accountRepo.Repository = (*fakeAccounts)(nil)

var (
	applicant = models.Principal{ID: "user-1", Role: models.RoleFan}
	reviewer  = models.Principal{ID: "admin-1", Role: models.RoleAdmin}
)

func newTestService() (*DefaultTalentService, *fakeAppRepo, *fakeProfileRepo, *fakeAccounts) {
	apps := newFakeAppRepo()
	profiles := &fakeProfileRepo{profiles: make(map[string]*models.TalentProfile)}
	accounts := &fakeAccounts{roles: make(map[string]models.Role)}
	svc := &DefaultTalentService{
		Apps:     apps,
		Profiles: profiles,
		Accounts: accounts,
		Logger:   zap.NewNop(),
	}
	return svc, apps, profiles, accounts
}

func validInput() models.ApplicationInput {
	return models.ApplicationInput{
		StageName:     "Winky D",
		Category:      "music",
		ProposedPrice: "150.00",
		Currency:      models.CurrencyUSD,
		Social:        models.SocialMetrics{Instagram: 120000},
	}
}

func TestApplyCreatesPendingApplication(t *testing.T) {
	svc, _, _, _ := newTestService()

	app, err := svc.Apply(context.Background(), applicant, validInput())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if app.Status != models.ApplicationPending {
		t.Errorf("status = %s, want pending", app.Status)
	}
	if got := app.ProposedPrice.StringFixed(2); got != "150.00" {
		t.Errorf("proposed price = %s", got)
	}
}

func TestApplyRejectsSecondActiveApplication(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.Apply(ctx, applicant, validInput()); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Apply(ctx, applicant, validInput())

	var aErr *utils.AlreadyProcessedError
	if !errors.As(err, &aErr) {
		t.Fatalf("expected AlreadyProcessedError, got %v", err)
	}
}

func TestApplyAllowsResubmissionAfterRejection(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	first, err := svc.Apply(ctx, applicant, validInput())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Review(ctx, reviewer, first.ID, models.ApplicationReviewInput{
		Status:     models.ApplicationRejected,
		AdminNotes: "insufficient following",
	}); err != nil {
		t.Fatal(err)
	}

	second, err := svc.Apply(ctx, applicant, validInput())
	if err != nil {
		t.Fatalf("resubmission after rejection failed: %v", err)
	}
	if second.ID == first.ID {
		t.Error("resubmission reused the rejected application")
	}
}

func TestApplyRejectsBadPrice(t *testing.T) {
	svc, _, _, _ := newTestService()
	for _, price := range []string{"", "abc", "0", "-5.00"} {
		input := validInput()
		input.ProposedPrice = price
		_, err := svc.Apply(context.Background(), applicant, input)
		var vErr *utils.ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("price %q: expected ValidationError, got %v", price, err)
		}
	}
}

func TestApprovalProvisionsProfileAndUpgradesRole(t *testing.T) {
	svc, _, profiles, accounts := newTestService()
	ctx := context.Background()
	app, err := svc.Apply(ctx, applicant, validInput())
	if err != nil {
		t.Fatal(err)
	}

	settled, err := svc.Review(ctx, reviewer, app.ID, models.ApplicationReviewInput{
		Status: models.ApplicationApproved,
	})
	if err != nil {
		t.Fatalf("Review(approved) failed: %v", err)
	}
	if settled.Status != models.ApplicationOnboarding {
		t.Errorf("application status = %s, want onboarding", settled.Status)
	}

	profile, err := profiles.GetByUserID(ctx, applicant.ID)
	if err != nil {
		t.Fatalf("no profile provisioned: %v", err)
	}
	if profile.StageName != "Winky D" {
		t.Errorf("provisioned profile = %+v", profile)
	}
	if profile.AcceptingBookings {
		t.Error("fresh profiles must start closed to bookings")
	}
	if got := profile.Price.StringFixed(2); got != "150.00" {
		t.Errorf("profile price = %s, want the proposed price", got)
	}
	if accounts.roles[applicant.ID] != models.RoleTalent {
		t.Errorf("role = %s, want talent", accounts.roles[applicant.ID])
	}
}

func TestReviewRejectsInvalidDecision(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	app, err := svc.Apply(ctx, applicant, validInput())
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Review(ctx, reviewer, app.ID, models.ApplicationReviewInput{
		Status: models.ApplicationOnboarding,
	})
	var vErr *utils.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestReviewRejectsNonAdmin(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Review(context.Background(), applicant, "app-1", models.ApplicationReviewInput{
		Status: models.ApplicationApproved,
	})
	var pErr *utils.PermissionError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected PermissionError, got %v", err)
	}
}

func TestReviewRejectsIllegalTransition(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	app, err := svc.Apply(ctx, applicant, validInput())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Review(ctx, reviewer, app.ID, models.ApplicationReviewInput{
		Status: models.ApplicationRejected,
	}); err != nil {
		t.Fatal(err)
	}

	_, err = svc.Review(ctx, reviewer, app.ID, models.ApplicationReviewInput{
		Status: models.ApplicationApproved,
	})
	var sErr *utils.InvalidStateTransitionError
	if !errors.As(err, &sErr) {
		t.Fatalf("expected InvalidStateTransitionError, got %v", err)
	}
}

func TestUpdateSettingsTogglesAvailability(t *testing.T) {
	svc, _, profiles, _ := newTestService()
	ctx := context.Background()
	app, _ := svc.Apply(ctx, applicant, validInput())
	if _, err := svc.Review(ctx, reviewer, app.ID, models.ApplicationReviewInput{
		Status: models.ApplicationApproved,
	}); err != nil {
		t.Fatal(err)
	}

	on := true
	newPrice := "200.00"
	updated, err := svc.UpdateSettings(ctx, applicant, models.TalentSettingsInput{
		Price:             &newPrice,
		AcceptingBookings: &on,
	})
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if !updated.AcceptingBookings {
		t.Error("availability toggle not applied")
	}
	if got := updated.Price.StringFixed(2); got != "200.00" {
		t.Errorf("price = %s, want 200.00", got)
	}

	stored, _ := profiles.GetByUserID(ctx, applicant.ID)
	if !stored.AcceptingBookings {
		t.Error("availability not persisted")
	}
}

func TestUpdateSettingsRequiresProfile(t *testing.T) {
	svc, _, _, _ := newTestService()
	off := false

	_, err := svc.UpdateSettings(context.Background(), applicant, models.TalentSettingsInput{AcceptingBookings: &off})

	var pErr *utils.PermissionError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected PermissionError, got %v", err)
	}
}
