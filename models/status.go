package models

// BookingStatus enumerates the lifecycle states of a booking.
type BookingStatus string

const (
	StatusPendingPayment   BookingStatus = "pending_payment"
	StatusPaymentConfirmed BookingStatus = "payment_confirmed"
	StatusInProgress       BookingStatus = "in_progress"
	StatusCompleted        BookingStatus = "completed"
	StatusCancelled        BookingStatus = "cancelled"
	StatusRefunded         BookingStatus = "refunded"
)

// bookingTransitions is the full set of permitted status edges. Cancelled and
// refunded are absorbing; completed admits only a refund.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPendingPayment:   {StatusPaymentConfirmed, StatusCancelled, StatusRefunded},
	StatusPaymentConfirmed: {StatusInProgress, StatusCompleted, StatusCancelled, StatusRefunded},
	StatusInProgress:       {StatusCompleted, StatusCancelled, StatusRefunded},
	StatusCompleted:        {StatusRefunded},
	StatusCancelled:        {},
	StatusRefunded:         {},
}

// IsValid reports whether s is a known booking status.
func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// IsTerminal reports whether no further transition is permitted from s.
// Completed is terminal for everything except a refund.
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// CanTransition reports whether the edge s -> to is permitted.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	for _, next := range bookingTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// ApplicationStatus enumerates the review states of a talent application.
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationUnderReview ApplicationStatus = "under_review"
	ApplicationApproved    ApplicationStatus = "approved"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationOnboarding  ApplicationStatus = "onboarding"
)

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:     {ApplicationUnderReview, ApplicationApproved, ApplicationRejected},
	ApplicationUnderReview: {ApplicationApproved, ApplicationRejected},
	ApplicationRejected:    {ApplicationPending}, // owner resubmission
	ApplicationApproved:    {ApplicationOnboarding},
	ApplicationOnboarding:  {},
}

// IsValid reports whether s is a known application status.
func (s ApplicationStatus) IsValid() bool {
	_, ok := applicationTransitions[s]
	return ok
}

// CanTransition reports whether the edge s -> to is permitted.
func (s ApplicationStatus) CanTransition(to ApplicationStatus) bool {
	for _, next := range applicationTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
