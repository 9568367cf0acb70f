package model

import "time"

// Admin is a staff account allowed to manage reservations. Password holds a
// bcrypt hash, or a plaintext value for accounts carried over from the
// legacy admin table.
type Admin struct {
	ID        uint64    // admins.id
	Username  string    // admins.username
	Password  string    // admins.password
	CreatedAt time.Time // admins.created_at
}
