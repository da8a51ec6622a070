package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template kinds understood by the notification pipeline. Unknown kinds
// fall back to a generic notice rather than failing, matching how the
// platform has always treated malformed template requests.
const (
	TemplateRegistrationConfirmation = "registration-confirmation"
	TemplateHackathonCreated         = "hackathon-created"
	TemplateHackathonReminder        = "hackathon-reminder"
)

// TemplateData carries the values interpolated into the fixed templates.
type TemplateData struct {
	HackathonTitle   string
	RegistrationDate string
	CreatedDate      string
	StartDate        string
}

const wrap = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">%s</div>`

var templates = map[string]*template.Template{
	TemplateRegistrationConfirmation: template.Must(template.New(TemplateRegistrationConfirmation).Parse(fmt.Sprintf(wrap, `
  <h2 style="color: #4F46E5;">Registration Confirmed! 🎉</h2>
  <p>Dear Participant,</p>
  <p>You have successfully registered for <strong>{{.HackathonTitle}}</strong>!</p>
  <p><strong>Registration Date:</strong> {{.RegistrationDate}}</p>
  <p>We're excited to have you participate. You'll receive more details about the hackathon soon.</p>
  <p>Best regards,<br>HackHub Team</p>`))),
	TemplateHackathonCreated: template.Must(template.New(TemplateHackathonCreated).Parse(fmt.Sprintf(wrap, `
  <h2 style="color: #4F46E5;">Hackathon Created Successfully! 🚀</h2>
  <p>Dear Faculty Member,</p>
  <p>Your hackathon <strong>{{.HackathonTitle}}</strong> has been created successfully!</p>
  <p><strong>Created Date:</strong> {{.CreatedDate}}</p>
  <p>Students can now register for your hackathon. You can manage registrations from your faculty dashboard.</p>
  <p>Best regards,<br>HackHub Team</p>`))),
	TemplateHackathonReminder: template.Must(template.New(TemplateHackathonReminder).Parse(fmt.Sprintf(wrap, `
  <h2 style="color: #4F46E5;">Hackathon Reminder! ⏰</h2>
  <p>Dear Participant,</p>
  <p>This is a reminder that <strong>{{.HackathonTitle}}</strong> starts soon!</p>
  <p><strong>Start Date:</strong> {{.StartDate}}</p>
  <p>Make sure you're prepared and ready to participate. Good luck!</p>
  <p>Best regards,<br>HackHub Team</p>`))),
}

var fallback = template.Must(template.New("default").Parse(fmt.Sprintf(wrap, `
  <h2 style="color: #4F46E5;">HackHub Notification</h2>
  <p>You have a new notification from HackHub.</p>
  <p>Best regards,<br>HackHub Team</p>`)))

// Render produces the HTML body and plain-text alternative for the
// given template kind. Unknown kinds render the generic notification.
func Render(kind string, data TemplateData) (html string, text string, err error) {
	tmpl, ok := templates[kind]
	if !ok {
		tmpl = fallback
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render %s: %w", kind, err)
	}
	return buf.String(), plainText(kind, data), nil
}

func plainText(kind string, data TemplateData) string {
	switch kind {
	case TemplateRegistrationConfirmation:
		return fmt.Sprintf("Registration Confirmed! You have successfully registered for %s on %s.", data.HackathonTitle, data.RegistrationDate)
	case TemplateHackathonCreated:
		return fmt.Sprintf("Hackathon Created! Your hackathon %s has been created successfully on %s.", data.HackathonTitle, data.CreatedDate)
	case TemplateHackathonReminder:
		return fmt.Sprintf("Reminder: %s starts on %s. Get ready!", data.HackathonTitle, data.StartDate)
	default:
		return "You have a new notification from HackHub."
	}
}
