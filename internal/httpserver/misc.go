package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// contact forwards the storefront contact form to the shop inbox.
func (h *api) contact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = "Contact form message"
	}
	body := fmt.Sprintf("From: %s <%s>\n\n%s", req.Name, req.Email, req.Message)
	if err := h.Mailer.Send(c.Request.Context(), []string{h.Cfg.Mail.ContactRecipient}, subject, body); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "message sent"})
}

type newsletterRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h *api) subscribeNewsletter(c *gin.Context) {
	var req newsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !strings.Contains(email, "@") {
		badRequest(c, "valid email required")
		return
	}
	if _, err := h.Newsletter.Subscribe(c.Request.Context(), email); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "subscribed"})
}
