package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestToDomainErrorPassesThroughDomainErrors(t *testing.T) {
	original := NewForbidden("insufficient role")
	mapped := ToDomainError(original)
	if mapped.HTTPStatus != http.StatusForbidden {
		t.Errorf("HTTPStatus = %d, want 403", mapped.HTTPStatus)
	}
	if mapped.Message != "insufficient role" {
		t.Errorf("Message = %q", mapped.Message)
	}
}

func TestToDomainErrorNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	if mapped.HTTPStatus != http.StatusNotFound {
		t.Errorf("HTTPStatus = %d, want 404", mapped.HTTPStatus)
	}
}

func TestToDomainErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "employees_email_key"}
	mapped := ToDomainError(pgErr)
	if mapped.HTTPStatus != http.StatusConflict {
		t.Errorf("HTTPStatus = %d, want 409", mapped.HTTPStatus)
	}
	if mapped.Details["constraint"] != "employees_email_key" {
		t.Errorf("constraint detail = %v", mapped.Details["constraint"])
	}
}

func TestToDomainErrorHidesInternals(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5:5432: connection refused")
	mapped := ToDomainError(cause)
	if mapped.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("HTTPStatus = %d, want 500", mapped.HTTPStatus)
	}
	if mapped.Message != "internal server error" {
		t.Errorf("Message = %q, must not leak the cause", mapped.Message)
	}
	if !errors.Is(mapped, cause) {
		t.Error("cause must stay reachable for logging")
	}
}

func TestToDomainErrorNil(t *testing.T) {
	if ToDomainError(nil) != nil {
		t.Error("nil must map to nil")
	}
}
