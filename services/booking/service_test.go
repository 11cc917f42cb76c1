package booking

import (
	"context"
	"errors"
	"strings"
	"testing"

	"talentshout/models"
	"talentshout/utils"
)

func TestCreateSnapshotsPriceAndSplit(t *testing.T) {
	env := newTestEnv()
	b := env.createBooking(context.Background())

	if b.Status != models.StatusPendingPayment {
		t.Fatalf("new booking status = %s, want pending_payment", b.Status)
	}
	if got := b.AmountPaid.StringFixed(2); got != "100.00" {
		t.Errorf("amount = %s, want 100.00", got)
	}
	if got := b.PlatformFee.StringFixed(2); got != "25.00" {
		t.Errorf("platform fee = %s, want 25.00", got)
	}
	if got := b.TalentEarnings.StringFixed(2); got != "75.00" {
		t.Errorf("talent earnings = %s, want 75.00", got)
	}
	if b.FeeRate != "0.25" {
		t.Errorf("fee rate snapshot = %q, want 0.25", b.FeeRate)
	}
	if !strings.HasPrefix(b.Code, "TS-") {
		t.Errorf("booking code = %q", b.Code)
	}
	if !b.DueDate.After(b.CreatedAt) {
		t.Errorf("due date %v not after creation %v", b.DueDate, b.CreatedAt)
	}
}

func TestCreateRejectsClosedTalent(t *testing.T) {
	env := newTestEnv()
	env.talents.profiles[testProfileID].AcceptingBookings = false

	_, err := env.svc.Create(context.Background(), fanPrincipal, models.BookingInput{TalentID: testProfileID})

	var vErr *utils.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestPayConfirmsBookingWithPaymentRecord(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	b := env.createBooking(ctx)

	paid, err := env.svc.Pay(ctx, fanPrincipal, b.ID, models.PaymentRequest{
		Gateway: models.GatewayPaynow,
		Phone:   "0772123456",
	})
	if err != nil {
		t.Fatalf("Pay failed: %v", err)
	}
	if paid.Status != models.StatusPaymentConfirmed {
		t.Errorf("status = %s, want payment_confirmed", paid.Status)
	}

	p, err := env.repo.GetPaymentByBookingID(ctx, b.ID)
	if err != nil || p == nil {
		t.Fatalf("confirmed booking has no payment record (err=%v)", err)
	}
	if p.Status != models.PaymentCompleted {
		t.Errorf("payment status = %s, want completed", p.Status)
	}
}

func TestPayTimeoutLeavesBookingPending(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	b := env.createBooking(ctx)
	env.method.outcomes = []error{context.DeadlineExceeded, context.DeadlineExceeded}

	_, err := env.svc.Pay(ctx, fanPrincipal, b.ID, models.PaymentRequest{
		Gateway: models.GatewayPaynow,
		Phone:   "0772123456",
	})

	var tErr *utils.PaymentTimeoutError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected PaymentTimeoutError, got %v", err)
	}
	after, _ := env.repo.GetByID(ctx, b.ID)
	if after.Status != models.StatusPendingPayment {
		t.Errorf("status after timeout = %s, want pending_payment", after.Status)
	}
	if p, _ := env.repo.GetPaymentByBookingID(ctx, b.ID); p != nil {
		t.Errorf("timeout must not leave a payment record, got %+v", p)
	}
}

func TestPayDeclineLeavesBookingPending(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	b := env.createBooking(ctx)
	env.method.outcomes = []error{&utils.PaymentDeclinedError{Gateway: "paynow", Reason: "insufficient funds"}}

	_, err := env.svc.Pay(ctx, fanPrincipal, b.ID, models.PaymentRequest{
		Gateway: models.GatewayPaynow,
		Phone:   "0772123456",
	})

	var dErr *utils.PaymentDeclinedError
	if !errors.As(err, &dErr) {
		t.Fatalf("expected PaymentDeclinedError, got %v", err)
	}
	after, _ := env.repo.GetByID(ctx, b.ID)
	if after.Status != models.StatusPendingPayment {
		t.Errorf("status after decline = %s, want pending_payment", after.Status)
	}
}

func TestPayRepeatOnPaidBookingReturnsPriorResult(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	b := env.paidBooking(ctx)

	_, err := env.svc.Pay(ctx, fanPrincipal, b.ID, models.PaymentRequest{
		Gateway: models.GatewayPaynow,
		Phone:   "0772123456",
	})

	var aErr *utils.AlreadyProcessedError
	if !errors.As(err, &aErr) {
		t.Fatalf("expected AlreadyProcessedError, got %v", err)
	}
	if env.method.calls != 1 {
		t.Errorf("gateway charged %d times for one booking, want 1", env.method.calls)
	}
}

func TestConfirmPaymentDuplicateReferenceIsIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	b := env.paidBooking(ctx)

	again, err := env.svc.ConfirmPayment(ctx, fanPrincipal, b.ID, models.PaymentConfirmation{
		Gateway:   models.GatewayPaynow,
		Reference: "ref-1",
	})
	if err != nil {
		t.Fatalf("duplicate confirmation errored: %v", err)
	}
	if again.Status != models.StatusPaymentConfirmed {
		t.Errorf("status = %s", again.Status)
	}
	if n := len(env.repo.payments); n != 1 {
		t.Errorf("duplicate confirmation created %d payment rows, want 1", n)
	}
}

func TestAcknowledgeMovesPaidBookingInProgress(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	b := env.paidBooking(ctx)

	acked, err := env.svc.Acknowledge(ctx, talentPrincipal, b.ID)
	if err != nil {
		t.Fatalf("Acknowledge failed: %v", err)
	}
	if acked.Status != models.StatusInProgress {
		t.Errorf("status = %s, want in_progress", acked.Status)
	}
}

func TestAcknowledgeRejectsUnpaidBooking(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	b := env.createBooking(ctx)

	_, err := env.svc.Acknowledge(ctx, talentPrincipal, b.ID)

	var sErr *utils.InvalidStateTransitionError
	if !errors.As(err, &sErr) {
		t.Fatalf("expected InvalidStateTransitionError, got %v", err)
	}
	if sErr.From != string(models.StatusPendingPayment) {
		t.Errorf("error From = %q, want pending_payment", sErr.From)
	}
}

func TestDeliverVideoCompletesWithVideoAndTimestamp(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	b := env.paidBooking(ctx)

	done, err := env.svc.DeliverVideo(ctx, talentPrincipal, b.ID, "https://cdn.example.com/v/abc.mp4")
	if err != nil {
		t.Fatalf("DeliverVideo failed: %v", err)
	}
	if done.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", done.Status)
	}
	if done.VideoURL == "" || done.CompletedAt == nil {
		t.Errorf("completed booking missing video (%q) or completed_at (%v)", done.VideoURL, done.CompletedAt)
	}
}

func TestDeliverVideoRequiresURL(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	b := env.paidBooking(ctx)

	_, err := env.svc.DeliverVideo(ctx, talentPrincipal, b.ID, "   ")

	var vErr *utils.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCancelNotAllowedFromCompleted(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	b := env.paidBooking(ctx)
	if _, err := env.svc.DeliverVideo(ctx, talentPrincipal, b.ID, "https://cdn.example.com/v/abc.mp4"); err != nil {
		t.Fatal(err)
	}

	_, err := env.svc.Cancel(ctx, adminPrincipal, b.ID)

	var sErr *utils.InvalidStateTransitionError
	if !errors.As(err, &sErr) {
		t.Fatalf("expected InvalidStateTransitionError, got %v", err)
	}
}

func TestRefundFromCompletedReversesChargeAndKeepsVideo(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	b := env.paidBooking(ctx)
	if _, err := env.svc.DeliverVideo(ctx, talentPrincipal, b.ID, "https://cdn.example.com/v/abc.mp4"); err != nil {
		t.Fatal(err)
	}

	refunded, err := env.svc.Refund(ctx, adminPrincipal, b.ID)
	if err != nil {
		t.Fatalf("Refund failed: %v", err)
	}
	if refunded.Status != models.StatusRefunded {
		t.Errorf("status = %s, want refunded", refunded.Status)
	}
	if refunded.VideoURL == "" || refunded.CompletedAt == nil {
		t.Errorf("refund erased the delivery record: video=%q completed_at=%v", refunded.VideoURL, refunded.CompletedAt)
	}
	if len(env.method.reversed) != 1 || env.method.reversed[0] != "ref-1" {
		t.Errorf("gateway reversals = %v, want [ref-1]", env.method.reversed)
	}
}

func TestRefundKeepsStatusWhenReversalFails(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	b := env.paidBooking(ctx)
	env.method.revErr = errors.New("gateway unreachable")

	_, err := env.svc.Refund(ctx, adminPrincipal, b.ID)
	if err == nil {
		t.Fatal("expected reversal failure to surface")
	}
	after, _ := env.repo.GetByID(ctx, b.ID)
	if after.Status != models.StatusPaymentConfirmed {
		t.Errorf("status after failed reversal = %s, want payment_confirmed", after.Status)
	}
}

func TestCancelRequiresAdmin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	b := env.createBooking(ctx)

	_, err := env.svc.Cancel(ctx, fanPrincipal, b.ID)

	var pErr *utils.PermissionError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected PermissionError, got %v", err)
	}
	after, _ := env.repo.GetByID(ctx, b.ID)
	if after.Status != models.StatusPendingPayment {
		t.Errorf("status = %s, want pending_payment", after.Status)
	}
}

func TestRefundRequiresAdmin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	b := env.paidBooking(ctx)

	_, err := env.svc.Refund(ctx, fanPrincipal, b.ID)

	var pErr *utils.PermissionError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected PermissionError, got %v", err)
	}
}

func TestRateOnceThenAlreadyProcessed(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	b := env.paidBooking(ctx)
	if _, err := env.svc.DeliverVideo(ctx, talentPrincipal, b.ID, "https://cdn.example.com/v/abc.mp4"); err != nil {
		t.Fatal(err)
	}

	rated, err := env.svc.Rate(ctx, fanPrincipal, b.ID, 5, "perfect")
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if rated.CustomerRating != 5 {
		t.Errorf("rating = %d, want 5", rated.CustomerRating)
	}

	_, err = env.svc.Rate(ctx, fanPrincipal, b.ID, 3, "changed my mind")
	var aErr *utils.AlreadyProcessedError
	if !errors.As(err, &aErr) {
		t.Fatalf("expected AlreadyProcessedError on repeat rating, got %v", err)
	}
	after, _ := env.repo.GetByID(ctx, b.ID)
	if after.CustomerRating != 5 {
		t.Errorf("repeat rating overwrote the original: %d", after.CustomerRating)
	}
}

func TestRateRejectsOutOfRange(t *testing.T) {
	env := newTestEnv()
	for _, rating := range []int{0, -1, 6} {
		_, err := env.svc.Rate(context.Background(), fanPrincipal, "whatever", rating, "")
		var vErr *utils.ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("rating %d: expected ValidationError, got %v", rating, err)
		}
	}
}

func TestGetHidesOtherUsersBookings(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	b := env.createBooking(ctx)

	stranger := models.Principal{ID: "fan-2", Role: models.RoleFan}
	_, err := env.svc.Get(ctx, stranger, b.ID)

	var nErr *utils.NotFoundError
	if !errors.As(err, &nErr) {
		t.Fatalf("expected NotFoundError for foreign booking, got %v", err)
	}
}

func TestGetAssemblesDetail(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	b := env.paidBooking(ctx)

	detail, err := env.svc.Get(ctx, fanPrincipal, b.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if detail.Customer == nil || detail.Customer.DisplayName != "Tino" {
		t.Errorf("customer summary = %+v", detail.Customer)
	}
	if detail.Talent == nil || detail.Talent.StageName != "Winky D" {
		t.Errorf("talent summary = %+v", detail.Talent)
	}
	if detail.Payment == nil || detail.Payment.Reference != "ref-1" {
		t.Errorf("payment summary = %+v", detail.Payment)
	}
}

func TestListScopesByRole(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.createBooking(ctx)
	env.createBooking(ctx)

	other := models.Principal{ID: "fan-2", Role: models.RoleFan}
	mine, err := env.svc.List(ctx, fanPrincipal, models.BookingFilter{})
	if err != nil {
		t.Fatal(err)
	}
	theirs, err := env.svc.List(ctx, other, models.BookingFilter{})
	if err != nil {
		t.Fatal(err)
	}
	all, err := env.svc.List(ctx, adminPrincipal, models.BookingFilter{})
	if err != nil {
		t.Fatal(err)
	}

	if len(mine) != 2 || len(theirs) != 0 || len(all) != 2 {
		t.Errorf("list sizes: fan=%d stranger=%d admin=%d", len(mine), len(theirs), len(all))
	}
}

func TestSweepCancelsOnlyOverdueUndelivered(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	overdue := env.paidBooking(ctx)
	env.repo.bookings[overdue.ID].DueDate = env.repo.bookings[overdue.ID].CreatedAt.AddDate(0, 0, -1)

	delivered := env.paidBooking(ctx)
	if _, err := env.svc.DeliverVideo(ctx, talentPrincipal, delivered.ID, "https://cdn.example.com/v/abc.mp4"); err != nil {
		t.Fatal(err)
	}
	env.repo.bookings[delivered.ID].DueDate = env.repo.bookings[delivered.ID].CreatedAt.AddDate(0, 0, -1)

	fresh := env.paidBooking(ctx)

	n, err := env.svc.SweepOverdue(ctx)
	if err != nil {
		t.Fatalf("SweepOverdue failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("sweep cancelled %d bookings, want 1", n)
	}

	if b, _ := env.repo.GetByID(ctx, overdue.ID); b.Status != models.StatusCancelled {
		t.Errorf("overdue booking status = %s, want cancelled", b.Status)
	}
	if b, _ := env.repo.GetByID(ctx, delivered.ID); b.Status != models.StatusCompleted {
		t.Errorf("delivered booking was swept: %s", b.Status)
	}
	if b, _ := env.repo.GetByID(ctx, fresh.ID); b.Status != models.StatusPaymentConfirmed {
		t.Errorf("fresh booking was swept: %s", b.Status)
	}
}

func TestCompletedBookingsFeedTalentAggregates(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	b := env.paidBooking(ctx)
	if _, err := env.svc.DeliverVideo(ctx, talentPrincipal, b.ID, "https://cdn.example.com/v/abc.mp4"); err != nil {
		t.Fatal(err)
	}
	if _, err := env.svc.Rate(ctx, fanPrincipal, b.ID, 4, "great"); err != nil {
		t.Fatal(err)
	}

	profile := env.talents.profiles[testProfileID]
	if profile.CompletedBookings != 1 || profile.TotalBookings != 1 {
		t.Errorf("counters = total %d / completed %d", profile.TotalBookings, profile.CompletedBookings)
	}
	if profile.AverageRating != 4 {
		t.Errorf("average rating = %v, want 4", profile.AverageRating)
	}
}
