package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"supplychain-admin/internal/repository/dberr"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrReferentialBlock = errors.New("referenced by dependent rows")
	ErrValidation       = errors.New("validation")
	ErrStore            = errors.New("store")
	ErrTimeout          = errors.New("timeout")
)

var (
	ErrDecode           = errors.New("decode")
	ErrNestedUnitOfWork = errors.New("nested unit of work")
)

var kinds = []error{
	ErrNotFound, ErrConflict, ErrReferentialBlock, ErrValidation,
	ErrStore, ErrTimeout, ErrDecode, ErrNestedUnitOfWork,
}

func classified(err error) bool {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

// storeErr maps a store failure onto the service taxonomy. Errors that already carry
// a service kind pass through untouched.
func storeErr(ctx context.Context, err error, what string) error {
	switch {
	case err == nil:
		return nil
	case classified(err):
		return err
	case ctx.Err() != nil, errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s: %w", ErrTimeout, what, err)
	case errors.Is(err, dberr.ErrNoRows):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case errors.Is(err, dberr.ErrForeignKey):
		return fmt.Errorf("%w: %s: %w", ErrReferentialBlock, what, err)
	case errors.Is(err, dberr.ErrUnique):
		return fmt.Errorf("%w: %s: %w", ErrConflict, what, err)
	default:
		return fmt.Errorf("%w: %s: %w", ErrStore, what, err)
	}
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func humanizeValidationErrors(errs validator.ValidationErrors) string {
	var b strings.Builder
	for _, fe := range errs {
		if fe.Param() != "" {
			fmt.Fprintf(&b, "%s: %s=%s; ", fe.Namespace(), fe.Tag(), fe.Param())
		} else {
			fmt.Fprintf(&b, "%s: %s; ", fe.Namespace(), fe.Tag())
		}
	}
	s := b.String()
	if len(s) > 2 {
		s = s[:len(s)-2]
	}
	return s
}

func (s *Service) validate(cmd any) error {
	if err := s.v.Struct(cmd); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", ErrValidation, humanizeValidationErrors(verrs))
		}
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
