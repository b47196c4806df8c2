package dberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	require.NoError(t, Classify(nil))
	require.ErrorIs(t, Classify(gorm.ErrRecordNotFound), ErrNoRows)

	fk := fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23503", ConstraintName: "fk_deliveries_order"})
	err := Classify(fk)
	require.ErrorIs(t, err, ErrForeignKey)
	require.Contains(t, err.Error(), "fk_deliveries_order")

	uq := &pgconn.PgError{Code: "23505", ConstraintName: "order_products_pkey"}
	require.ErrorIs(t, Classify(uq), ErrUnique)

	other := errors.New("connection reset")
	require.Equal(t, other, Classify(other))

	syntax := &pgconn.PgError{Code: "42601"}
	require.Equal(t, error(syntax), Classify(syntax))
}
