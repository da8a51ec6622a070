package model

import "time"

// Hackathon lifecycle states. Listings are created as upcoming; the
// other states exist for the dashboard filters.
const (
	HackathonStatusUpcoming  = "upcoming"
	HackathonStatusOngoing   = "ongoing"
	HackathonStatusCompleted = "completed"
)

// Hackathon represents a row in the `hackathons` table. Date stays a
// string because the original listings carry free-form dates entered by
// faculty ("2026-10-01", "Oct 1-3") and the service never computes with
// them. CurrentParticipants is maintained by the registration ledger in
// the same transaction as the ledger row, never written directly.
type Hackathon struct {
	ID                  uint64    `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Date                string    `json:"date"`
	ImageURL            *string   `json:"image_url,omitempty"`
	FacultyID           string    `json:"faculty_id"`
	MaxParticipants     *uint32   `json:"max_participants,omitempty"`
	CurrentParticipants uint32    `json:"current_participants"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}
