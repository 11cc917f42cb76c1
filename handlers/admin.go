package handlers

import (
	"net/http"

	"talentshout/middleware"
	"talentshout/services/booking"
	"talentshout/services/dashboard"
	"talentshout/utils"

	"github.com/gin-gonic/gin"
)

// NewAdminCancelBookingHandler terminates a non-completed booking.
func NewAdminCancelBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := svc.Cancel(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// NewAdminRefundBookingHandler reverses a charge and terminates the booking.
func NewAdminRefundBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := svc.Refund(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// NewAdminCompleteBookingHandler force-completes a booking with a video on
// the talent's behalf, e.g. when the video was delivered out of band.
func NewAdminCompleteBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			VideoURL string `json:"video_url" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		b, err := svc.DeliverVideo(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"), input.VideoURL)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// NewAdminDashboardHandler returns the platform-wide rollup.
func NewAdminDashboardHandler(svc dashboard.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := svc.Admin(c.Request.Context(), middleware.GetPrincipal(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}
