package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/print-shop-booking/internal/model"
)

// ServiceRepo provides access to the service catalog.
type ServiceRepo struct {
	db *sql.DB
}

// NewServiceRepo constructs a ServiceRepo with the provided DB handle.
func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{db: db} }

// List returns every catalog entry ordered by id.
func (r *ServiceRepo) List(ctx context.Context) ([]model.Service, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM services ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	out := make([]model.Service, 0)
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Create inserts a catalog entry and fills in the generated ID.
func (r *ServiceRepo) Create(ctx context.Context, s *model.Service) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO services (name) VALUES (?)`, s.Name)
	if err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("service id: %w", err)
	}
	s.ID = uint64(id)
	return nil
}

// Delete removes a catalog entry by id.
func (r *ServiceRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return requireAffected(res, ErrServiceNotFound)
}
