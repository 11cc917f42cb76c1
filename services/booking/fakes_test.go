package booking

import (
	"context"
	"fmt"
	"time"

	accountRepo "talentshout/database/repository/account"
	bookingRepo "talentshout/database/repository/booking"
	talentRepo "talentshout/database/repository/talent"
	"talentshout/models"
	"talentshout/services/payment"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// fakeBookingRepo is an in-memory Repository that mirrors the CAS semantics
// of the Mongo implementation: guarded updates fail with ErrStaleTransition
// when the booking is not in one of the expected statuses.
type fakeBookingRepo struct {
	bookings map[string]*models.Booking
	payments map[string]*models.Payment // by payment ID
	seq      int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[string]*models.Booking),
		payments: make(map[string]*models.Payment),
	}
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) GetByCode(ctx context.Context, code string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.Code == code {
			cp := *b
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (f *fakeBookingRepo) NextCode(ctx context.Context, year int) (string, error) {
	f.seq++
	return fmt.Sprintf("TS-%d-%04d", year, f.seq), nil
}

func (f *fakeBookingRepo) ConfirmPayment(ctx context.Context, bookingID string, p *models.Payment) (*models.Booking, error) {
	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	if b.Status != models.StatusPendingPayment {
		return nil, bookingRepo.ErrStaleTransition
	}
	cp := *p
	f.payments[p.ID] = &cp
	b.Status = models.StatusPaymentConfirmed
	b.UpdatedAt = time.Now().UTC()
	b.Version++
	out := *b
	return &out, nil
}

func (f *fakeBookingRepo) GetPaymentByBookingID(ctx context.Context, bookingID string) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.BookingID == bookingID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) GetPaymentByReference(ctx context.Context, reference string) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.Reference == reference {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) Transition(ctx context.Context, id string, from []models.BookingStatus, to models.BookingStatus, set map[string]interface{}) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	matched := false
	for _, s := range from {
		if b.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return nil, bookingRepo.ErrStaleTransition
	}
	b.Status = to
	for k, v := range set {
		switch k {
		case "video_url":
			b.VideoURL = v.(string)
		case "completed_at":
			t := v.(time.Time)
			b.CompletedAt = &t
		}
	}
	b.UpdatedAt = time.Now().UTC()
	b.Version++
	out := *b
	return &out, nil
}

func (f *fakeBookingRepo) SetRating(ctx context.Context, id string, rating int, review string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	if b.Status != models.StatusCompleted || b.CustomerRating != 0 {
		return nil, bookingRepo.ErrStaleTransition
	}
	b.CustomerRating = rating
	b.Review = review
	b.UpdatedAt = time.Now().UTC()
	b.Version++
	out := *b
	return &out, nil
}

func (f *fakeBookingRepo) List(ctx context.Context, q bookingRepo.ListQuery) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if q.Scope.CustomerID != "" && b.CustomerID != q.Scope.CustomerID {
			continue
		}
		if q.Scope.TalentID != "" && b.TalentID != q.Scope.TalentID {
			continue
		}
		if q.Status != "" && b.Status != q.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookingRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Status.IsTerminal() || b.Status == models.StatusCompleted {
			continue
		}
		if b.DueDate.Before(asOf) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByStatus(ctx context.Context, scope bookingRepo.Scope) (map[models.BookingStatus]int, error) {
	counts := make(map[models.BookingStatus]int)
	for _, b := range f.bookings {
		if scope.CustomerID != "" && b.CustomerID != scope.CustomerID {
			continue
		}
		if scope.TalentID != "" && b.TalentID != scope.TalentID {
			continue
		}
		counts[b.Status]++
	}
	return counts, nil
}

func (f *fakeBookingRepo) SumAmounts(ctx context.Context, scope bookingRepo.Scope) (bookingRepo.AmountTotals, error) {
	var totals bookingRepo.AmountTotals
	for _, b := range f.bookings {
		if b.Status != models.StatusCompleted {
			continue
		}
		if scope.CustomerID != "" && b.CustomerID != scope.CustomerID {
			continue
		}
		if scope.TalentID != "" && b.TalentID != scope.TalentID {
			continue
		}
		totals.Gross = totals.Gross.Add(b.AmountPaid.Decimal)
		totals.Fees = totals.Fees.Add(b.PlatformFee.Decimal)
		totals.Earnings = totals.Earnings.Add(b.TalentEarnings.Decimal)
	}
	return totals, nil
}

func (f *fakeBookingRepo) AverageRating(ctx context.Context, talentID string) (float64, int, error) {
	sum, n := 0, 0
	for _, b := range f.bookings {
		if b.TalentID == talentID && b.Status == models.StatusCompleted && b.CustomerRating >= 1 {
			sum += b.CustomerRating
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(n), n, nil
}

func (f *fakeBookingRepo) SumCompletedInWindow(ctx context.Context, scope bookingRepo.Scope, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, b := range f.bookings {
		if b.Status != models.StatusCompleted || b.CompletedAt == nil {
			continue
		}
		if scope.TalentID != "" && b.TalentID != scope.TalentID {
			continue
		}
		if b.CompletedAt.Before(from) || !b.CompletedAt.Before(to) {
			continue
		}
		total = total.Add(b.AmountPaid.Decimal)
	}
	return total, nil
}

var _ bookingRepo.Repository = (*fakeBookingRepo)(nil)

type fakeTalentRepo struct {
	profiles map[string]*models.TalentProfile // by profile ID
}

func newFakeTalentRepo(profiles ...*models.TalentProfile) *fakeTalentRepo {
	f := &fakeTalentRepo{profiles: make(map[string]*models.TalentProfile)}
	for _, p := range profiles {
		f.profiles[p.ID] = p
	}
	return f
}

func (f *fakeTalentRepo) Create(ctx context.Context, p *models.TalentProfile) error {
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeTalentRepo) GetByID(ctx context.Context, id string) (*models.TalentProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, talentRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeTalentRepo) GetByUserID(ctx context.Context, userID string) (*models.TalentProfile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, talentRepo.ErrNotFound
}

func (f *fakeTalentRepo) UpdateSettings(ctx context.Context, id string, set map[string]interface{}) (*models.TalentProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, talentRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeTalentRepo) UpdateAggregates(ctx context.Context, id string, avgRating float64, total, completed int) error {
	p, ok := f.profiles[id]
	if !ok {
		return talentRepo.ErrNotFound
	}
	p.AverageRating = avgRating
	p.TotalBookings = total
	p.CompletedBookings = completed
	return nil
}

var _ talentRepo.Repository = (*fakeTalentRepo)(nil)

type fakeAccountRepo struct {
	accounts map[string]*models.Account
}

func newFakeAccountRepo(accounts ...*models.Account) *fakeAccountRepo {
	f := &fakeAccountRepo{accounts: make(map[string]*models.Account)}
	for _, a := range accounts {
		f.accounts[a.ID] = a
	}
	return f
}

func (f *fakeAccountRepo) Create(ctx context.Context, a *models.Account) error {
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, accountRepo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, accountRepo.ErrNotFound
}

func (f *fakeAccountRepo) SetRole(ctx context.Context, id string, role models.Role) error {
	a, ok := f.accounts[id]
	if !ok {
		return accountRepo.ErrNotFound
	}
	a.Role = role
	return nil
}

var _ accountRepo.Repository = (*fakeAccountRepo)(nil)

// scriptedMethod scripts Submit outcomes and records reversals.
type scriptedMethod struct {
	gateway   models.Gateway
	outcomes  []error
	calls     int
	successes int
	reference string
	reversed  []string
	revErr    error
}

func (m *scriptedMethod) Name() models.Gateway { return m.gateway }

func (m *scriptedMethod) Validate(req models.PaymentRequest) error { return nil }

func (m *scriptedMethod) Submit(ctx context.Context, req models.PaymentRequest) (*models.PaymentConfirmation, error) {
	var out error
	if m.calls < len(m.outcomes) {
		out = m.outcomes[m.calls]
	}
	m.calls++
	if out != nil {
		return nil, out
	}
	ref := m.reference
	if ref == "" {
		// References must be unique per charge: the service treats a reused
		// reference on a different booking as a conflict.
		m.successes++
		ref = fmt.Sprintf("ref-%d", m.successes)
	}
	return &models.PaymentConfirmation{
		Gateway:       m.gateway,
		Reference:     ref,
		MaskedAccount: "07** ***456",
		ConfirmedAt:   time.Now().UTC(),
	}, nil
}

func (m *scriptedMethod) Reverse(ctx context.Context, reference string, amount models.Money, currency models.Currency) error {
	if m.revErr != nil {
		return m.revErr
	}
	m.reversed = append(m.reversed, reference)
	return nil
}

var _ payment.Method = (*scriptedMethod)(nil)

// testEnv bundles the service under test with its fakes.
type testEnv struct {
	svc     *DefaultBookingService
	repo    *fakeBookingRepo
	talents *fakeTalentRepo
	method  *scriptedMethod
}

const (
	testFanID      = "fan-1"
	testTalentUser = "user-t1"
	testProfileID  = "talent-1"
)

var (
	fanPrincipal    = models.Principal{ID: testFanID, Role: models.RoleFan}
	talentPrincipal = models.Principal{ID: testTalentUser, Role: models.RoleTalent}
	adminPrincipal  = models.Principal{ID: "admin-1", Role: models.RoleAdmin}
)

func newTestEnv() *testEnv {
	repo := newFakeBookingRepo()
	talents := newFakeTalentRepo(&models.TalentProfile{
		ID:                testProfileID,
		UserID:            testTalentUser,
		StageName:         "Winky D",
		Category:          "music",
		Price:             models.NewMoney(decimal.RequireFromString("100.00")),
		Currency:          models.CurrencyUSD,
		AcceptingBookings: true,
	})
	accounts := newFakeAccountRepo(
		&models.Account{ID: testFanID, Email: "fan@example.com", DisplayName: "Tino", Role: models.RoleFan},
		&models.Account{ID: testTalentUser, Email: "talent@example.com", DisplayName: "Winky", Role: models.RoleTalent},
	)
	method := &scriptedMethod{gateway: models.GatewayPaynow}

	svc := &DefaultBookingService{
		Repo:        repo,
		TalentRepo:  talents,
		AccountRepo: accounts,
		Methods:     payment.NewRegistry(method),
		Submitter:   payment.NewSubmitter(zap.NewNop(), nil, 50*time.Millisecond),
		FeeRate:     decimal.RequireFromString("0.25"),
		DueDays:     7,
		Logger:      zap.NewNop(),
	}
	return &testEnv{svc: svc, repo: repo, talents: talents, method: method}
}

func (e *testEnv) createBooking(ctx context.Context) *models.Booking {
	b, err := e.svc.Create(ctx, fanPrincipal, models.BookingInput{
		TalentID:      testProfileID,
		RecipientName: "Rudo",
		Occasion:      "birthday",
	})
	if err != nil {
		panic(err)
	}
	return b
}

func (e *testEnv) paidBooking(ctx context.Context) *models.Booking {
	b := e.createBooking(ctx)
	paid, err := e.svc.Pay(ctx, fanPrincipal, b.ID, models.PaymentRequest{
		Gateway: models.GatewayPaynow,
		Phone:   "0772123456",
	})
	if err != nil {
		panic(err)
	}
	return paid
}
