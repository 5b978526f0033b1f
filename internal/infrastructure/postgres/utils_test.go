package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/Inventario-wms/internal/domain"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "pick_scans_request_id_key"}
	wrapped := fmt.Errorf("insert pick scan: %w", pgErr)

	assert.True(t, isUniqueViolation(wrapped))
	assert.Equal(t, "pick_scans_request_id_key", constraintName(wrapped))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
	assert.Empty(t, constraintName(errors.New("connection reset")))
}

func TestTranslateError_MalformedUUID(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}
	err := translateError(fmt.Errorf("get wave: %w", pgErr))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), `"abc"`)

	other := fmt.Errorf("get wave: %w", &pgconn.PgError{Code: "40001"})
	assert.Same(t, other, translateError(other))
	assert.False(t, isInvalidText(errors.New("connection reset")))
}

func TestMovementWhere(t *testing.T) {
	where, args := movementWhere(entity.MovementFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = movementWhere(entity.MovementFilter{ProductID: "p1", LocationID: "loc1", SourceDocID: "w1"})
	assert.Equal(t, " WHERE product_id = $1 AND location_id = $2 AND source_doc_id = $3", where)
	assert.Equal(t, []any{"p1", "loc1", "w1"}, args)
}
