package handlers

import (
	"net/http"
	"strconv"

	"talentshout/middleware"
	"talentshout/models"
	"talentshout/services/booking"
	"talentshout/utils"

	"github.com/gin-gonic/gin"
)

// NewCreateBookingHandler handles booking creation by a fan.
func NewCreateBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.BookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		b, err := svc.Create(c.Request.Context(), middleware.GetPrincipal(c), input)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, b)
	}
}

// NewPayBookingHandler submits a payment for a pending booking.
func NewPayBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.PaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		b, err := svc.Pay(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"), req)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// NewAcknowledgeBookingHandler marks a paid booking as in progress.
func NewAcknowledgeBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := svc.Acknowledge(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// NewDeliverBookingHandler completes a booking with the recorded video.
func NewDeliverBookingHandler(svc booking.BookingService) gin.HandlerFunc {
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

// NewRateBookingHandler records the customer's rating.
func NewRateBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Rating int    `json:"rating" binding:"required"`
			Review string `json:"review"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		b, err := svc.Rate(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"), input.Rating, input.Review)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// NewGetBookingHandler returns the booking detail view.
func NewGetBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := svc.Get(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}

// NewListBookingsHandler returns the caller's role-scoped booking list.
func NewListBookingsHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.BookingFilter{
			Status: models.BookingStatus(c.Query("status")),
		}
		filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
		filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

		list, err := svc.List(c.Request.Context(), middleware.GetPrincipal(c), filter)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": list, "count": len(list)})
	}
}
