package repository

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestUpdateBuilderIgnoresUnknownColumns(t *testing.T) {
	builder := NewUpdateBuilder([]string{"name", "status"}).Apply(map[string]any{
		"name":       "North Team",
		"status":     "Active",
		"id":         99,
		"updated_by": 1,
		"role":       "ADMIN",
	})

	if builder.FieldCount() != 2 {
		t.Fatalf("FieldCount = %d, want 2", builder.FieldCount())
	}

	query, args, err := builder.Build("teams", "id", 7, 42)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	wantQuery := "UPDATE teams SET name=$1, status=$2, updated_by=$3, updated_at=NOW() WHERE id=$4"
	if query != wantQuery {
		t.Errorf("query = %q, want %q", query, wantQuery)
	}
	wantArgs := []any{"North Team", "Active", int64(42), int64(7)}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
}

func TestUpdateBuilderPreservesAllowListOrder(t *testing.T) {
	builder := NewUpdateBuilder([]string{"code", "name", "email"}).Apply(map[string]any{
		"email": "a@b.c",
		"code":  "E-1",
	})

	query, _, err := builder.Build("employees", "id", 1, 1)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := "UPDATE employees SET code=$1, email=$2, updated_by=$3, updated_at=NOW() WHERE id=$4"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
}

func TestUpdateBuilderEmptyInput(t *testing.T) {
	builder := NewUpdateBuilder([]string{"name"}).Apply(map[string]any{"nope": 1})
	if _, _, err := builder.Build("teams", "id", 1, 1); !errors.Is(err, ErrNoUpdatableFields) {
		t.Fatalf("err = %v, want ErrNoUpdatableFields", err)
	}
}

func TestUpdateBuilderSetOverwritesAppliedValue(t *testing.T) {
	builder := NewUpdateBuilder([]string{"name"}).Apply(map[string]any{
		"name": "first",
	})
	builder.Set("name", "second")

	if builder.FieldCount() != 1 {
		t.Fatalf("FieldCount = %d, want 1", builder.FieldCount())
	}
	_, args, err := builder.Build("teams", "id", 1, 1)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if args[0] != "second" {
		t.Errorf("args[0] = %v, want the rewritten value", args[0])
	}
}

func TestUpdateBuilderSetWritesOutsideAllowList(t *testing.T) {
	builder := NewUpdateBuilder([]string{"name"}).Apply(map[string]any{"name": "Dana"})
	builder.Set("password_hash", "$2a$12$serverhash")

	query, args, err := builder.Build("employees", "id", 1, 1)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := "UPDATE employees SET name=$1, password_hash=$2, updated_by=$3, updated_at=NOW() WHERE id=$4"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	if args[1] != "$2a$12$serverhash" {
		t.Errorf("args[1] = %v, want the server-computed hash", args[1])
	}
}

func TestEmployeeUpdateColumnsExcludeCredential(t *testing.T) {
	builder := NewUpdateBuilder(EmployeeUpdateColumns).Apply(map[string]any{
		"password_hash": "$2a$10$clientchosenhash",
		"name":          "Dana",
	})

	query, args, err := builder.Build("employees", "id", 7, 42)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if strings.Contains(query, "password_hash") {
		t.Errorf("query = %q, must not touch the credential column", query)
	}
	for _, arg := range args {
		if arg == "$2a$10$clientchosenhash" {
			t.Error("client-supplied hash must never reach the bound args")
		}
	}
}

func TestWhereBuilderConjunction(t *testing.T) {
	where := NewWhereBuilder()
	where.Equal("a.status", "Pending")
	where.GreaterOrEqual("a.target_date", "2026-01-01")
	where.LessOrEqual("a.target_date", "2026-12-31")

	want := "WHERE a.status=$1 AND a.target_date >= $2 AND a.target_date <= $3"
	if got := where.Clause(); got != want {
		t.Errorf("Clause() = %q, want %q", got, want)
	}
	if len(where.Args()) != 3 {
		t.Errorf("Args() has %d values, want 3", len(where.Args()))
	}
	if where.NextPlaceholder() != 4 {
		t.Errorf("NextPlaceholder() = %d, want 4", where.NextPlaceholder())
	}
}

func TestWhereBuilderSearchFoldsCase(t *testing.T) {
	where := NewWhereBuilder()
	where.Search("  ACME  ", "c.name", "c.code")

	want := "WHERE (LOWER(c.name) LIKE $1 OR LOWER(c.code) LIKE $1)"
	if got := where.Clause(); got != want {
		t.Errorf("Clause() = %q, want %q", got, want)
	}
	if got := where.Args()[0]; got != "%acme%" {
		t.Errorf("Args()[0] = %v, want %%acme%%", got)
	}
}

func TestWhereBuilderBlankSearchIgnored(t *testing.T) {
	where := NewWhereBuilder()
	where.Search("   ", "c.name")
	if !where.Empty() {
		t.Fatal("blank search should leave the builder empty")
	}
	if got := where.Clause(); got != "" {
		t.Errorf("Clause() = %q, want empty", got)
	}
}
