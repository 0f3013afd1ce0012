package database

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	apperror "stockledger/internal/errors"
)

// TranslateError turns a driver error into an AppError. Unique, foreign-key,
// check and not-null violations become ConstraintError; everything else is
// an internal DB error. AppErrors pass through unchanged.
func TranslateError(msg string, err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	if IsConstraintViolation(err) {
		return apperror.NewConstraintError(fmt.Sprintf("%s: %s", msg, err.Error()), err)
	}
	return apperror.NewDBError(msg, err)
}

// IsConstraintViolation reports whether err is an integrity violation from
// sqlite (primary result code SQLITE_CONSTRAINT) or postgres (SQLSTATE class 23).
func IsConstraintViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		return pe.Code.Class() == "23"
	}
	return false
}
