package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/print-shop-booking/internal/model"
)

// EditorRepo provides access to the editors directory.
type EditorRepo struct {
	db *sql.DB
}

// NewEditorRepo constructs an EditorRepo with the provided DB handle.
func NewEditorRepo(db *sql.DB) *EditorRepo { return &EditorRepo{db: db} }

// List returns all editors ordered by id.
func (r *EditorRepo) List(ctx context.Context) ([]model.Editor, error) {
	const q = `SELECT id, full_name, contact, address FROM editors ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list editors: %w", err)
	}
	defer rows.Close()

	out := make([]model.Editor, 0)
	for rows.Next() {
		var e model.Editor
		if err := rows.Scan(&e.ID, &e.FullName, &e.Contact, &e.Address); err != nil {
			return nil, fmt.Errorf("scan editor: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Create inserts an editor and fills in the generated ID.
func (r *EditorRepo) Create(ctx context.Context, e *model.Editor) error {
	const q = `INSERT INTO editors (full_name, contact, address) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, e.FullName, e.Contact, e.Address)
	if err != nil {
		return fmt.Errorf("insert editor: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("editor id: %w", err)
	}
	e.ID = uint64(id)
	return nil
}

// Delete removes an editor. Reservations keep the editor's name as text, so
// nothing else is touched.
func (r *EditorRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM editors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete editor: %w", err)
	}
	return requireAffected(res, ErrEditorNotFound)
}
