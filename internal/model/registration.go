package model

import "time"

// Registration represents a row in the `registrations` table: one
// student signed up for one hackathon. The (HackathonID, StudentID)
// pair is unique; Name, Email and Phone are the contact details the
// student submitted on the registration form.
type Registration struct {
	ID           uint64    `json:"id"`
	HackathonID  uint64    `json:"hackathon_id"`
	StudentID    string    `json:"student_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	RegisteredAt time.Time `json:"registered_at"`
}
