package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	if !IsUniqueViolation(fmt.Errorf("insert bill: %w", dup)) {
		t.Error("expected wrapped unique violation to match")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}) {
		t.Error("expected other codes not to match")
	}
	if IsUniqueViolation(errors.New("plain")) {
		t.Error("expected plain error not to match")
	}
}

func TestIsNoRows(t *testing.T) {
	if !IsNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)) {
		t.Error("expected wrapped ErrNoRows to match")
	}
	if IsNoRows(errors.New("plain")) {
		t.Error("expected plain error not to match")
	}
}
