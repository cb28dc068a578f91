package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authsvc "rickbags/internal/service/auth"
)

func (h *api) register(c *gin.Context) {
	var req authsvc.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	u, err := h.AuthSvc.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	// Registration logs the user straight in.
	data := sessionData(c)
	data.UserID = &u.ID
	if err := h.saveSession(c); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *api) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	u, err := h.AuthSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	// The anonymous cart survives login; only the identity changes.
	data := sessionData(c)
	data.UserID = &u.ID
	if err := h.saveSession(c); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *api) logout(c *gin.Context) {
	if err := h.destroySession(c); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (h *api) me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
}

type profileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

func (h *api) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	u := currentUser(c)
	if err := h.AuthSvc.UpdateProfile(c.Request.Context(), u.ID, req.FirstName, req.LastName, req.Phone); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h *api) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := h.AuthSvc.ForgotPassword(c.Request.Context(), req.Email, h.Cfg.ResetURLBase); err != nil {
		h.fail(c, err)
		return
	}
	// Same response whether or not the email exists.
	c.JSON(http.StatusOK, gin.H{"status": "if the address exists, a reset link has been sent"})
}

type resetPasswordRequest struct {
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

func (h *api) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := h.AuthSvc.ResetPassword(c.Request.Context(), req.Token, req.Password, req.ConfirmPassword); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password updated"})
}
