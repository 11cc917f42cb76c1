package handlers

import (
	"net/http"

	"talentshout/middleware"
	"talentshout/models"
	"talentshout/services/dashboard"
	"talentshout/utils"

	"github.com/gin-gonic/gin"
)

// NewDashboardHandler serves the fan or talent rollup depending on the
// caller's role.
func NewDashboardHandler(svc dashboard.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := middleware.GetPrincipal(c)

		var (
			payload interface{}
			err     error
		)
		if p.Role == models.RoleTalent {
			payload, err = svc.Talent(c.Request.Context(), p)
		} else {
			payload, err = svc.Fan(c.Request.Context(), p)
		}
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, payload)
	}
}
