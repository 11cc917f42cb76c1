package handlers

import (
	"net/http"

	"talentshout/middleware"
	"talentshout/models"
	"talentshout/services/account"
	"talentshout/utils"

	"github.com/gin-gonic/gin"
)

// NewRegisterHandler handles account registration.
func NewRegisterHandler(svc account.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		resp, err := svc.Register(c.Request.Context(), input)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// NewLoginHandler handles authentication.
func NewLoginHandler(svc account.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		resp, err := svc.Login(c.Request.Context(), input)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// NewLogoutHandler revokes the caller's session.
func NewLogoutHandler(svc account.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Logout(c.Request.Context(), middleware.GetPrincipal(c)); err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "logged out"})
	}
}

// NewMeHandler returns the caller's own account.
func NewMeHandler(svc account.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		acc, err := svc.Get(c.Request.Context(), middleware.GetPrincipal(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, acc)
	}
}
