package handlers

import (
	"talentshout/services/account"
	"talentshout/services/booking"
	"talentshout/services/dashboard"
	"talentshout/services/talent"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Account endpoints
	RegisterHandler gin.HandlerFunc
	LoginHandler    gin.HandlerFunc
	LogoutHandler   gin.HandlerFunc
	MeHandler       gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler      gin.HandlerFunc
	ListBookingsHandler       gin.HandlerFunc
	GetBookingHandler         gin.HandlerFunc
	PayBookingHandler         gin.HandlerFunc
	AcknowledgeBookingHandler gin.HandlerFunc
	DeliverBookingHandler     gin.HandlerFunc
	RateBookingHandler        gin.HandlerFunc

	// Admin endpoints
	AdminCancelBookingHandler   gin.HandlerFunc
	AdminRefundBookingHandler   gin.HandlerFunc
	AdminCompleteBookingHandler gin.HandlerFunc
	AdminDashboardHandler       gin.HandlerFunc
	ReviewQueueHandler          gin.HandlerFunc
	ReviewApplicationHandler    gin.HandlerFunc

	// Talent endpoints
	ApplyHandler                gin.HandlerFunc
	GetApplicationHandler       gin.HandlerFunc
	MyApplicationHandler        gin.HandlerFunc
	GetTalentProfileHandler     gin.HandlerFunc
	UpdateTalentSettingsHandler gin.HandlerFunc

	// Dashboard endpoint
	DashboardHandler gin.HandlerFunc
}

// NewHandlerBundle wires every handler to its service.
func NewHandlerBundle(
	accounts account.AccountService,
	bookings booking.BookingService,
	talents talent.TalentService,
	dashboards dashboard.DashboardService,
) *HandlerBundle {
	return &HandlerBundle{
		RegisterHandler: NewRegisterHandler(accounts),
		LoginHandler:    NewLoginHandler(accounts),
		LogoutHandler:   NewLogoutHandler(accounts),
		MeHandler:       NewMeHandler(accounts),

		CreateBookingHandler:      NewCreateBookingHandler(bookings),
		ListBookingsHandler:       NewListBookingsHandler(bookings),
		GetBookingHandler:         NewGetBookingHandler(bookings),
		PayBookingHandler:         NewPayBookingHandler(bookings),
		AcknowledgeBookingHandler: NewAcknowledgeBookingHandler(bookings),
		DeliverBookingHandler:     NewDeliverBookingHandler(bookings),
		RateBookingHandler:        NewRateBookingHandler(bookings),

		AdminCancelBookingHandler:   NewAdminCancelBookingHandler(bookings),
		AdminRefundBookingHandler:   NewAdminRefundBookingHandler(bookings),
		AdminCompleteBookingHandler: NewAdminCompleteBookingHandler(bookings),
		AdminDashboardHandler:       NewAdminDashboardHandler(dashboards),
		ReviewQueueHandler:          NewReviewQueueHandler(talents),
		ReviewApplicationHandler:    NewReviewApplicationHandler(talents),

		ApplyHandler:                NewApplyHandler(talents),
		GetApplicationHandler:       NewGetApplicationHandler(talents),
		MyApplicationHandler:        NewMyApplicationHandler(talents),
		GetTalentProfileHandler:     NewGetTalentProfileHandler(talents),
		UpdateTalentSettingsHandler: NewUpdateTalentSettingsHandler(talents),

		DashboardHandler: NewDashboardHandler(dashboards),
	}
}
