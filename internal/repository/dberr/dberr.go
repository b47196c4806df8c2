// Package dberr holds the store-level error kinds shared by every repository
// implementation, and classifies driver errors into them.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jinzhu/gorm"
)

var (
	ErrNoRows     = errors.New("no rows")
	ErrForeignKey = errors.New("row is referenced")
	ErrUnique     = errors.New("duplicate key")
)

// SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

// Classify maps gorm and pgx errors onto the store-level kinds. Errors it does not
// recognise are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if gorm.IsRecordNotFoundError(err) {
		return ErrNoRows
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %s: %w", ErrForeignKey, pgErr.ConstraintName, err)
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s: %w", ErrUnique, pgErr.ConstraintName, err)
		}
	}
	return err
}
