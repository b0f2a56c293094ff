package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPgErrorClassification(t *testing.T) {
	duplicate := &pgconn.PgError{Code: "23505"}
	foreignKey := &pgconn.PgError{Code: "23503"}
	other := &pgconn.PgError{Code: "42601"}

	t.Run("duplicate", func(t *testing.T) {
		if !isPgDuplicateError(duplicate) {
			t.Error("23505 must classify as duplicate")
		}
		if isPgDuplicateError(foreignKey) || isPgDuplicateError(other) {
			t.Error("non-23505 codes must not classify as duplicate")
		}
	})

	t.Run("foreign key", func(t *testing.T) {
		if !isPgForeignKeyError(foreignKey) {
			t.Error("23503 must classify as foreign key violation")
		}
		if isPgForeignKeyError(duplicate) || isPgForeignKeyError(other) {
			t.Error("non-23503 codes must not classify as foreign key violation")
		}
	})

	t.Run("wrapped errors unwrap", func(t *testing.T) {
		wrapped := fmt.Errorf("insert item: %w", foreignKey)
		if !isPgForeignKeyError(wrapped) {
			t.Error("classification must see through wrapping")
		}
	})

	t.Run("no rows", func(t *testing.T) {
		if !isPgNoRowsError(pgx.ErrNoRows) {
			t.Error("pgx.ErrNoRows must classify as no rows")
		}
		if isPgNoRowsError(errors.New("boom")) {
			t.Error("arbitrary errors must not classify as no rows")
		}
	})
}
