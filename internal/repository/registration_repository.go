package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hackhub/hackhub-server/internal/model"
)

// RegistrationRepo manages the registration ledger. Register and the
// unregister variants pair the ledger write with the hackathon counter
// update inside one transaction, so the counter and the ledger cannot
// drift apart even under concurrent requests or a mid-sequence crash.
type RegistrationRepo struct {
	db         *sql.DB
	hackathons *HackathonRepo
}

func NewRegistrationRepo(db *sql.DB, hackathons *HackathonRepo) *RegistrationRepo {
	return &RegistrationRepo{db: db, hackathons: hackathons}
}

// Register records a student's sign-up for a hackathon and increments
// the participant counter. Failure modes, in check order:
// ErrNotFound (hackathon absent), ErrConflict (duplicate pair) and
// ErrCapacityFull (no remaining spots). A student already registered
// for a full hackathon gets ErrConflict, not ErrCapacityFull, which is
// why the duplicate-detecting insert runs before the counter guard.
// Role validation belongs to the caller. On success the new
// registration id is returned.
func (r *RegistrationRepo) Register(ctx context.Context, hackathonID uint64, studentID, name, email, phone string) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO registrations (hackathon_id, student_id, name, email, phone) VALUES (?,?,?,?,?)",
		hackathonID, studentID, name, email, phone)
	if err != nil {
		// Unique key on (hackathon_id, student_id) rejects duplicates;
		// the FK on hackathon_id rejects rows for a vanished listing.
		if isDuplicateKey(err) {
			return 0, ErrConflict
		}
		if isForeignKeyViolation(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	// Rolls the insert back when the hackathon is at capacity.
	if err := r.hackathons.ReserveSpotTx(ctx, tx, hackathonID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return uint64(id), nil
}

// UnregisterByID deletes the registration with the given id after
// verifying it belongs to studentID, then decrements the counter.
// Returns ErrNotFound when the registration does not exist and
// ErrForbidden on an owner mismatch.
func (r *RegistrationRepo) UnregisterByID(ctx context.Context, id uint64, studentID string) error {
	return r.unregister(ctx,
		"SELECT id, hackathon_id, student_id FROM registrations WHERE id=? FOR UPDATE",
		studentID, true, id)
}

// UnregisterByPair deletes the registration matching (hackathonID,
// studentID). The pair itself identifies the owner, so only existence
// can fail, with ErrNotFound.
func (r *RegistrationRepo) UnregisterByPair(ctx context.Context, hackathonID uint64, studentID string) error {
	return r.unregister(ctx,
		"SELECT id, hackathon_id, student_id FROM registrations WHERE hackathon_id=? AND student_id=? FOR UPDATE",
		studentID, false, hackathonID, studentID)
}

func (r *RegistrationRepo) unregister(ctx context.Context, lookup, studentID string, checkOwner bool, args ...any) error {
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

	var regID, hackathonID uint64
	var owner string
	err = tx.QueryRowContext(ctx, lookup, args...).Scan(&regID, &hackathonID, &owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if checkOwner && owner != studentID {
		return ErrForbidden
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM registrations WHERE id=?", regID); err != nil {
		return err
	}
	if err := r.hackathons.ReleaseSpotTx(ctx, tx, hackathonID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

const registrationColumns = `id, hackathon_id, student_id, name, email, phone, registered_at`

// ListByStudent returns the student's registrations, newest first.
func (r *RegistrationRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Registration, error) {
	return r.list(ctx,
		"SELECT "+registrationColumns+" FROM registrations WHERE student_id=? ORDER BY registered_at DESC, id DESC",
		studentID)
}

// ListByHackathon returns a hackathon's registrations, newest first.
func (r *RegistrationRepo) ListByHackathon(ctx context.Context, hackathonID uint64) ([]model.Registration, error) {
	return r.list(ctx,
		"SELECT "+registrationColumns+" FROM registrations WHERE hackathon_id=? ORDER BY registered_at DESC, id DESC",
		hackathonID)
}

func (r *RegistrationRepo) list(ctx context.Context, query string, args ...any) ([]model.Registration, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Registration, 0)
	for rows.Next() {
		var reg model.Registration
		if err := rows.Scan(&reg.ID, &reg.HackathonID, &reg.StudentID,
			&reg.Name, &reg.Email, &reg.Phone, &reg.RegisteredAt); err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}
