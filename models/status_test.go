package models

import "testing"

func TestBookingLifecyclePath(t *testing.T) {
	path := []BookingStatus{
		StatusPendingPayment,
		StatusPaymentConfirmed,
		StatusInProgress,
		StatusCompleted,
	}
	for i := 0; i < len(path)-1; i++ {
		if !path[i].CanTransition(path[i+1]) {
			t.Errorf("%s -> %s should be permitted", path[i], path[i+1])
		}
	}
}

func TestTerminalStatusesAdmitNothing(t *testing.T) {
	for _, s := range []BookingStatus{StatusCancelled, StatusRefunded} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
		for _, to := range []BookingStatus{
			StatusPendingPayment, StatusPaymentConfirmed, StatusInProgress,
			StatusCompleted, StatusCancelled, StatusRefunded,
		} {
			if s.CanTransition(to) {
				t.Errorf("terminal %s permits transition to %s", s, to)
			}
		}
	}
}

func TestCompletedAdmitsOnlyRefund(t *testing.T) {
	if !StatusCompleted.CanTransition(StatusRefunded) {
		t.Error("completed -> refunded should be permitted")
	}
	if StatusCompleted.CanTransition(StatusCancelled) {
		t.Error("completed -> cancelled must be rejected")
	}
	if StatusCompleted.IsTerminal() {
		t.Error("completed is not fully terminal while a refund is possible")
	}
}

func TestNoBackwardBookingTransitions(t *testing.T) {
	order := map[BookingStatus]int{
		StatusPendingPayment:   0,
		StatusPaymentConfirmed: 1,
		StatusInProgress:       2,
		StatusCompleted:        3,
	}
	for from, rank := range order {
		for to, toRank := range order {
			if toRank < rank && from.CanTransition(to) {
				t.Errorf("backward transition %s -> %s permitted", from, to)
			}
		}
	}
}

func TestStatusValidity(t *testing.T) {
	if BookingStatus("shipped").IsValid() {
		t.Error("unknown booking status reported valid")
	}
	if ApplicationStatus("archived").IsValid() {
		t.Error("unknown application status reported valid")
	}
}

func TestApplicationResubmissionEdge(t *testing.T) {
	if !ApplicationRejected.CanTransition(ApplicationPending) {
		t.Error("rejected applications must be resubmittable")
	}
	if ApplicationApproved.CanTransition(ApplicationRejected) {
		t.Error("approved -> rejected must be rejected")
	}
	if !ApplicationApproved.CanTransition(ApplicationOnboarding) {
		t.Error("approved -> onboarding should be permitted")
	}
}
