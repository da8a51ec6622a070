package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	data := TemplateData{
		HackathonTitle:   "AI <Jam>",
		RegistrationDate: "September 1, 2026",
		CreatedDate:      "August 30, 2026",
		StartDate:        "October 1, 2026",
	}

	tests := []struct {
		kind     string
		wantHTML string
		wantText string
	}{
		{TemplateRegistrationConfirmation, "Registration Confirmed!", "successfully registered for AI <Jam> on September 1, 2026"},
		{TemplateHackathonCreated, "Hackathon Created Successfully!", "created successfully on August 30, 2026"},
		{TemplateHackathonReminder, "Hackathon Reminder!", "starts on October 1, 2026"},
	}
	for _, tc := range tests {
		t.Run(tc.kind, func(t *testing.T) {
			html, text, err := Render(tc.kind, data)
			require.NoError(t, err)
			require.Contains(t, html, tc.wantHTML)
			// html/template escapes interpolated values.
			require.Contains(t, html, "AI &lt;Jam&gt;")
			require.NotContains(t, html, "AI <Jam>")
			require.Contains(t, text, tc.wantText)
		})
	}
}

func TestRenderUnknownKindFallsBack(t *testing.T) {
	html, text, err := Render("password-reset", TemplateData{})
	require.NoError(t, err)
	require.Contains(t, html, "HackHub Notification")
	require.Equal(t, "You have a new notification from HackHub.", text)
}
