// Package repository defines the data access layer. Every exported method
// issues a single exact-match statement against MySQL with positional
// parameters. Sentinel errors below let handlers tell the failure cases
// apart; any other error is a storage fault.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrReservationNotFound is returned when no reservation row matches the id.
// Handlers translate it into HTTP 404.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrDuplicateReservation is returned when an insert collides with an
// existing reservation id. Handlers translate it into HTTP 409.
var ErrDuplicateReservation = errors.New("reservation id already exists")

// ErrEditorNotFound is returned when deleting an editor that does not exist.
var ErrEditorNotFound = errors.New("editor not found")

// ErrServiceNotFound is returned when deleting a service that does not exist.
var ErrServiceNotFound = errors.New("service not found")

// ErrAdminNotFound is returned when no admin has the requested username.
var ErrAdminNotFound = errors.New("admin not found")

// ErrAdminExists is returned when creating an admin whose username is taken.
var ErrAdminExists = errors.New("admin already exists")

const mysqlDuplicateEntry = 1062

// isDuplicateKey reports whether err is MySQL's duplicate entry error.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
