// Package queue defines message payloads exchanged over the message broker.
package queue

// NotificationQueueName is the durable queue carrying outbound email
// notifications from the API to the background sender.
const NotificationQueueName = "notification.email"

// Event kinds. The values double as template names on the consumer side.
const (
	KindRegistrationConfirmation = "registration-confirmation"
	KindHackathonCreated         = "hackathon-created"
	KindHackathonReminder        = "hackathon-reminder"
)

// NotificationEvent is published whenever a CRUD operation wants an
// email sent: a student registered, a faculty member created a listing,
// or a reminder is due. It carries everything the consumer needs to
// render and submit the mail without querying the primary database.
type NotificationEvent struct {
	Kind             string `json:"kind"` // template kind, see internal/mailer
	To               string `json:"to"`
	Subject          string `json:"subject"`
	HackathonTitle   string `json:"hackathon_title,omitempty"`
	RegistrationDate string `json:"registration_date,omitempty"`
	CreatedDate      string `json:"created_date,omitempty"`
	StartDate        string `json:"start_date,omitempty"`
	EnqueuedAt       string `json:"enqueued_at"`
}
