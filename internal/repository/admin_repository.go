package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/print-shop-booking/internal/model"
	"github.com/iliyamo/print-shop-booking/internal/utils"
)

// AdminRepo reads and writes staff accounts in the 'admins' table.
type AdminRepo struct {
	db *sql.DB
}

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{db: db} }

// Create hashes the password with bcrypt and inserts the account.
func (r *AdminRepo) Create(ctx context.Context, username, password string, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO admins (username, password) VALUES (?,?)",
		username, hash)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrAdminExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches an account by exact username.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (model.Admin, error) {
	var a model.Admin
	err := r.db.QueryRowContext(ctx,
		"SELECT id,username,password,created_at FROM admins WHERE username=? LIMIT 1",
		strings.TrimSpace(username)).Scan(&a.ID, &a.Username, &a.Password, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrAdminNotFound
	}
	return a, err
}
