package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hackhub/hackhub-server/internal/model"
)

// HackathonRepo provides CRUD operations for hackathon listings. The
// participant counter on each row is derived from the registrations
// table; the registration repository updates both inside one
// transaction so the pair can never drift apart.
type HackathonRepo struct{ db *sql.DB }

func NewHackathonRepo(db *sql.DB) *HackathonRepo { return &HackathonRepo{db: db} }

// Create inserts a new listing owned by facultyID and returns its id.
// The caller is responsible for verifying the faculty role first; the
// repository only writes the row with counter zero and status
// "upcoming".
func (r *HackathonRepo) Create(ctx context.Context, title, description, date string, imageURL *string, facultyID string, maxParticipants *uint32) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO hackathons (title, description, date, image_url, faculty_id, max_participants, current_participants, status)
		 VALUES (?,?,?,?,?,?,0,?)`,
		title, description, date, imageURL, facultyID, maxParticipants, model.HackathonStatusUpcoming)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

const hackathonColumns = `id, title, description, date, image_url, faculty_id, max_participants, current_participants, status, created_at`

func scanHackathon(row interface{ Scan(...any) error }) (model.Hackathon, error) {
	var h model.Hackathon
	var imageURL sql.NullString
	var maxPart sql.NullInt64
	err := row.Scan(&h.ID, &h.Title, &h.Description, &h.Date, &imageURL,
		&h.FacultyID, &maxPart, &h.CurrentParticipants, &h.Status, &h.CreatedAt)
	if err != nil {
		return model.Hackathon{}, err
	}
	if imageURL.Valid {
		u := imageURL.String
		h.ImageURL = &u
	}
	if maxPart.Valid {
		m := uint32(maxPart.Int64)
		h.MaxParticipants = &m
	}
	return h, nil
}

// GetByID fetches a single listing, returning ErrNotFound when absent.
func (r *HackathonRepo) GetByID(ctx context.Context, id uint64) (model.Hackathon, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+hackathonColumns+" FROM hackathons WHERE id=? LIMIT 1", id)
	h, err := scanHackathon(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Hackathon{}, ErrNotFound
	}
	return h, err
}

// List returns all listings ordered newest first.
func (r *HackathonRepo) List(ctx context.Context) ([]model.Hackathon, error) {
	return r.list(ctx, "SELECT "+hackathonColumns+" FROM hackathons ORDER BY created_at DESC, id DESC")
}

// ListByFaculty returns the listings owned by the given faculty uid,
// newest first.
func (r *HackathonRepo) ListByFaculty(ctx context.Context, facultyID string) ([]model.Hackathon, error) {
	return r.list(ctx,
		"SELECT "+hackathonColumns+" FROM hackathons WHERE faculty_id=? ORDER BY created_at DESC, id DESC",
		facultyID)
}

func (r *HackathonRepo) list(ctx context.Context, query string, args ...any) ([]model.Hackathon, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Hackathon, 0)
	for rows.Next() {
		h, err := scanHackathon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Delete removes the listing and every registration referencing it in a
// single transaction. It returns ErrNotFound when the listing does not
// exist and ErrForbidden when requesterID is not the owning faculty.
func (r *HackathonRepo) Delete(ctx context.Context, id uint64, requesterID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var ownerID string
	err = tx.QueryRowContext(ctx,
		"SELECT faculty_id FROM hackathons WHERE id=? FOR UPDATE", id).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if ownerID != requesterID {
		return ErrForbidden
	}

	// Cascade: registrations first to satisfy the FK, then the listing.
	if _, err := tx.ExecContext(ctx, "DELETE FROM registrations WHERE hackathon_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM hackathons WHERE id=?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ReserveSpotTx increments the participant counter within tx, guarded by
// the capacity limit. It returns ErrCapacityFull when max_participants
// is set and already reached, and ErrNotFound when the listing vanished
// between the handler's existence check and the update.
func (r *HackathonRepo) ReserveSpotTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE hackathons SET current_participants = current_participants + 1
		 WHERE id=? AND (max_participants IS NULL OR current_participants < max_participants)`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists int
		if err := tx.QueryRowContext(ctx, "SELECT 1 FROM hackathons WHERE id=?", id).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		return ErrCapacityFull
	}
	return nil
}

// ReleaseSpotTx decrements the participant counter within tx, clamped at
// zero so a stray unregister can never drive it negative.
func (r *HackathonRepo) ReleaseSpotTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE hackathons SET current_participants = current_participants - 1
		 WHERE id=? AND current_participants > 0`, id)
	return err
}
