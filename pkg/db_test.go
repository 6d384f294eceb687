package pkg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolationError(t *testing.T) {
	assert.False(t, IsUniqueViolationError(nil))
	assert.False(t, IsUniqueViolationError(errors.New("nope")))
	assert.False(t, IsUniqueViolationError(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolationError(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolationError(
		fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}),
	))
}

func TestIsForeignKeyViolationError(t *testing.T) {
	assert.False(t, IsForeignKeyViolationError(nil))
	assert.False(t, IsForeignKeyViolationError(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsForeignKeyViolationError(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsForeignKeyViolationError(
		fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}),
	))
}
