package handlers

import (
	"net/http"
	"strconv"

	"talentshout/middleware"
	"talentshout/models"
	"talentshout/services/talent"
	"talentshout/utils"

	"github.com/gin-gonic/gin"
)

// NewApplyHandler submits a talent application.
func NewApplyHandler(svc talent.TalentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.ApplicationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		app, err := svc.Apply(c.Request.Context(), middleware.GetPrincipal(c), input)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, app)
	}
}

// NewGetApplicationHandler returns an application to its owner or an admin.
func NewGetApplicationHandler(svc talent.TalentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		app, err := svc.GetApplication(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, app)
	}
}

// NewMyApplicationHandler returns the caller's active application.
func NewMyApplicationHandler(svc talent.TalentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		app, err := svc.MyApplication(c.Request.Context(), middleware.GetPrincipal(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		if app == nil {
			utils.JSONError(c, http.StatusNotFound, "not found", "no active application")
			return
		}
		c.JSON(http.StatusOK, app)
	}
}

// NewReviewQueueHandler lists applications awaiting review, oldest first.
func NewReviewQueueHandler(svc talent.TalentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
		apps, err := svc.ReviewQueue(c.Request.Context(), middleware.GetPrincipal(c),
			models.ApplicationStatus(c.Query("status")), limit)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"applications": apps, "count": len(apps)})
	}
}

// NewReviewApplicationHandler applies an admin decision to an application.
func NewReviewApplicationHandler(svc talent.TalentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.ApplicationReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		app, err := svc.Review(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"), input)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, app)
	}
}

// NewGetTalentProfileHandler returns a public talent profile.
func NewGetTalentProfileHandler(svc talent.TalentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := svc.GetProfile(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// NewUpdateTalentSettingsHandler applies the talent's own settings changes.
func NewUpdateTalentSettingsHandler(svc talent.TalentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.TalentSettingsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		profile, err := svc.UpdateSettings(c.Request.Context(), middleware.GetPrincipal(c), input)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}
