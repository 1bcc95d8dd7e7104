package track_errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var testMsgs = map[string]map[string]string{
	CodeUniqueConstraint: {
		"uq_users_email": "user with that email already exist",
	},
	CodeForeignKeyConstraint: {
		"fk_solved_question": "no question exist with that key",
	},
}

func TestHandleDBErrorsNoRows(t *testing.T) {
	err := HandleDBErrors(fmt.Errorf("scan: %w", pgx.ErrNoRows), testMsgs, "fetch user")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHandleDBErrorsUnique(t *testing.T) {
	pgErr := &pgconn.PgError{Code: CodeUniqueConstraint, ConstraintName: "uq_users_email"}
	err := HandleDBErrors(pgErr, testMsgs, "insert user")
	if !errors.Is(err, ErrEntityAlreadyExist) {
		t.Fatalf("expected ErrEntityAlreadyExist, got %v", err)
	}
	if want := "entity with given key already exist, user with that email already exist"; err.Error() != want {
		t.Errorf("got message %q, want %q", err.Error(), want)
	}
}

func TestHandleDBErrorsForeignKeyFallsBackToDetail(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           CodeForeignKeyConstraint,
		ConstraintName: "fk_unknown",
		Detail:         "Key (company_id)=(9) is not present",
	}
	err := HandleDBErrors(pgErr, testMsgs, "link company")
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if want := "invalid request, Key (company_id)=(9) is not present"; err.Error() != want {
		t.Errorf("got message %q, want %q", err.Error(), want)
	}
}

func TestHandleDBErrorsUnknown(t *testing.T) {
	err := HandleDBErrors(errors.New("connection reset"), nil, "list questions")
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: CodeUniqueConstraint, ConstraintName: "uq_companies_name"}
	if !IsUniqueViolation(pgErr, "") {
		t.Errorf("expected unique violation without constraint filter")
	}
	if !IsUniqueViolation(fmt.Errorf("wrapped: %w", pgErr), "uq_companies_name") {
		t.Errorf("expected wrapped unique violation to match")
	}
	if IsUniqueViolation(pgErr, "uq_topics_name") {
		t.Errorf("constraint filter should not match a different constraint")
	}
}

func TestEnsureKnown(t *testing.T) {
	known := fmt.Errorf("%w, no question", ErrNotFound)
	if got := EnsureKnown(known, "refresh"); got != known {
		t.Errorf("expected known error to pass through, got %v", got)
	}
	got := EnsureKnown(errors.New("boom"), "refresh")
	if !errors.Is(got, ErrInternal) {
		t.Errorf("expected unknown error to become ErrInternal, got %v", got)
	}
	if EnsureKnown(nil, "refresh") != nil {
		t.Errorf("expected nil to stay nil")
	}
}
