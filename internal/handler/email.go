package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hackhub/hackhub-server/internal/mailer"
)

// Sender is the mailer surface the direct email endpoint needs.
type Sender interface {
	Send(msg mailer.Message) error
	Enabled() bool
}

// EmailHandler serves POST /api/send-email, the synchronous path the
// front end calls directly. It always answers 200 once the input is
// valid: a provider failure must never bubble up and break the user
// flow that triggered the mail.
type EmailHandler struct {
	Mailer Sender
}

func NewEmailHandler(m Sender) *EmailHandler { return &EmailHandler{Mailer: m} }

type sendEmailReq struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Template string `json:"template"`
	Data     struct {
		HackathonTitle   string `json:"hackathonTitle"`
		RegistrationDate string `json:"registrationDate"`
		CreatedDate      string `json:"createdDate"`
		StartDate        string `json:"startDate"`
	} `json:"data"`
}

// Send renders the named template and submits the mail.
func (h *EmailHandler) Send(c echo.Context) error {
	var req sendEmailReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.To == "" || req.Subject == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and subject are required."})
	}
	log.Printf("POST /api/send-email | to=%s subject=%q template=%s", req.To, req.Subject, req.Template)

	html, text, err := mailer.Render(req.Template, mailer.TemplateData{
		HackathonTitle:   req.Data.HackathonTitle,
		RegistrationDate: req.Data.RegistrationDate,
		CreatedDate:      req.Data.CreatedDate,
		StartDate:        req.Data.StartDate,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error."})
	}

	if !h.Mailer.Enabled() {
		_ = h.Mailer.Send(mailer.Message{To: req.To, Subject: req.Subject, Body: html, Text: text})
		return c.JSON(http.StatusOK, echo.Map{
			"message": "Email logged successfully (SMTP not configured)",
			"emailId": fmt.Sprintf("logged_%d", time.Now().UnixMilli()),
		})
	}
	if err := h.Mailer.Send(mailer.Message{To: req.To, Subject: req.Subject, Body: html, Text: text}); err != nil {
		log.Printf("send-email: provider failure swallowed: %v", err)
		return c.JSON(http.StatusOK, echo.Map{
			"message": "Email processing completed (may have failed)",
			"emailId": fmt.Sprintf("failed_%d", time.Now().UnixMilli()),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Email sent successfully!",
		"emailId": fmt.Sprintf("smtp_%d", time.Now().UnixMilli()),
	})
}
