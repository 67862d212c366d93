// Package repository holds the MySQL data access for the catalog, pricing
// and booking tables.  Sentinel errors below let handlers and services
// tell failure scenarios apart with errors.Is.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrMatchNotFound       = errors.New("match not found")
	ErrTicketPriceNotFound = errors.New("ticket price not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrTicketNotFound      = errors.New("ticket not found")

	// ErrDuplicateReference and ErrDuplicateTicketNumber signal a unique
	// key collision on a generated identifier; callers regenerate and retry.
	ErrDuplicateReference    = errors.New("duplicate booking reference")
	ErrDuplicateTicketNumber = errors.New("duplicate ticket number")

	// ErrSoldOut is returned by a guarded decrement that matched no row.
	ErrSoldOut = errors.New("not enough tickets available")
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because of
// the row's current state. Handlers translate this into 409.
var ErrConflict = errors.New("conflict")

const mysqlDuplicateEntry = 1062

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
