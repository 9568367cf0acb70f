package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/print-shop-booking/internal/model"
)

// ReservationRepo owns the reservations table. It holds no state besides the
// connection pool; every call reads or writes through to MySQL, so two
// concurrent status updates on the same row resolve as last write wins.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `reservation_id, first_name, middle_name, last_name, service_type, schedule, description, editor, status`

// Create inserts a reservation with every field except status, which stays
// NULL until staff act on it. It returns the stored id.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) (string, error) {
	const q = `INSERT INTO reservations (reservation_id, first_name, middle_name, last_name, service_type, schedule, description, editor) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		res.ID, res.FirstName, res.MiddleName, res.LastName,
		res.ServiceType, res.Schedule.UTC(), res.Description, res.Editor,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return "", ErrDuplicateReservation
		}
		return "", fmt.Errorf("insert reservation: %w", err)
	}
	return res.ID, nil
}

// GetByID fetches one reservation. It returns ErrReservationNotFound when no
// row has the id.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE reservation_id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

// ListAll returns every reservation. Order is not significant.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations`
	return r.list(ctx, q)
}

// ListByStatus returns reservations whose status equals status exactly.
// Rows with no stored status are included when asking for Pending.
func (r *ReservationRepo) ListByStatus(ctx context.Context, status model.Status) ([]model.Reservation, error) {
	if status == model.StatusPending {
		q := `SELECT ` + reservationColumns + ` FROM reservations WHERE status = ? OR status IS NULL`
		return r.list(ctx, q, string(status))
	}
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE status = ?`
	return r.list(ctx, q, string(status))
}

// UpdateStatus overwrites the status column unconditionally. It does not
// look at the current value. ErrReservationNotFound is returned when no row
// matched.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	const q = `UPDATE reservations SET status = ? WHERE reservation_id = ?`
	result, err := r.db.ExecContext(ctx, q, string(status), id)
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	return requireAffected(result, ErrReservationNotFound)
}

// Delete removes a reservation permanently.
func (r *ReservationRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM reservations WHERE reservation_id = ?`
	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	return requireAffected(result, ErrReservationNotFound)
}

func (r *ReservationRepo) list(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservations: %w", err)
	}
	return out, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(s rowScanner) (*model.Reservation, error) {
	var (
		res    model.Reservation
		status sql.NullString
	)
	if err := s.Scan(
		&res.ID, &res.FirstName, &res.MiddleName, &res.LastName,
		&res.ServiceType, &res.Schedule, &res.Description, &res.Editor, &status,
	); err != nil {
		return nil, err
	}
	if status.Valid {
		res.Status = model.Status(status.String)
	}
	res.Schedule = res.Schedule.UTC()
	return &res, nil
}

// requireAffected turns a zero row count into notFound.
func requireAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
