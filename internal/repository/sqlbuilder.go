package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoUpdatableFields is returned when a partial update matches nothing in
// the entity's allow-list. Callers translate it to a 400 before any DB call.
var ErrNoUpdatableFields = errors.New("no updatable fields in input")

// UpdateBuilder assembles a parameterized SET clause from a caller-supplied
// partial object. Column names come exclusively from the static allow-list;
// client input can only contribute values, which always travel as bound
// parameters. Keys outside the allow-list are ignored, which is what blocks
// mass assignment.
type UpdateBuilder struct {
	allowList []string
	columns   []string
	args      []any
}

// NewUpdateBuilder creates a builder over the entity's allow-listed columns.
func NewUpdateBuilder(allowList []string) *UpdateBuilder {
	return &UpdateBuilder{allowList: allowList}
}

// Apply walks the allow-list in declaration order and collects every field
// present in input. Absent fields are skipped so partial updates work.
func (b *UpdateBuilder) Apply(input map[string]any) *UpdateBuilder {
	for _, col := range b.allowList {
		val, ok := input[col]
		if !ok {
			continue
		}
		b.columns = append(b.columns, col)
		b.args = append(b.args, val)
	}
	return b
}

// Set forces a single column to a value, bypassing the allow-list. It exists
// for columns the service computes itself (a freshly hashed credential) and
// must never be fed a client-supplied column name; the allow-list only
// constrains Apply, which is the entry point for raw request maps.
func (b *UpdateBuilder) Set(col string, val any) *UpdateBuilder {
	for i, existing := range b.columns {
		if existing == col {
			b.args[i] = val
			return b
		}
	}
	b.columns = append(b.columns, col)
	b.args = append(b.args, val)
	return b
}

// FieldCount reports how many allow-listed fields matched the input.
func (b *UpdateBuilder) FieldCount() int {
	return len(b.columns)
}

// Build renders the full UPDATE statement. The audit pair updated_by /
// updated_at is appended unconditionally and is never client-settable.
// Returns ErrNoUpdatableFields when nothing matched.
func (b *UpdateBuilder) Build(table, pkColumn string, id int64, updatedBy int64) (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, ErrNoUpdatableFields
	}

	sets := make([]string, 0, len(b.columns)+2)
	args := make([]any, 0, len(b.args)+2)
	for i, col := range b.columns {
		args = append(args, b.args[i])
		sets = append(sets, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	args = append(args, updatedBy)
	sets = append(sets, fmt.Sprintf("updated_by=$%d", len(args)))
	sets = append(sets, "updated_at=NOW()")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s=$%d",
		table, strings.Join(sets, ", "), pkColumn, len(args))
	return query, args, nil
}

// WhereBuilder assembles a conjunction of parameterized predicates shared by
// a COUNT query and its paginated SELECT. Column names are supplied by the
// repositories, never by clients.
type WhereBuilder struct {
	clauses []string
	args    []any
}

// NewWhereBuilder returns an empty builder.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{}
}

// Equal appends col = value.
func (w *WhereBuilder) Equal(col string, val any) *WhereBuilder {
	w.args = append(w.args, val)
	w.clauses = append(w.clauses, fmt.Sprintf("%s=$%d", col, len(w.args)))
	return w
}

// GreaterOrEqual appends col >= value, used for range lower bounds.
func (w *WhereBuilder) GreaterOrEqual(col string, val any) *WhereBuilder {
	w.args = append(w.args, val)
	w.clauses = append(w.clauses, fmt.Sprintf("%s >= $%d", col, len(w.args)))
	return w
}

// LessOrEqual appends col <= value, used for range upper bounds.
func (w *WhereBuilder) LessOrEqual(col string, val any) *WhereBuilder {
	w.args = append(w.args, val)
	w.clauses = append(w.clauses, fmt.Sprintf("%s <= $%d", col, len(w.args)))
	return w
}

// Search appends a case-folded substring match OR'd across the given
// columns. Blank terms are ignored.
func (w *WhereBuilder) Search(term string, cols ...string) *WhereBuilder {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return w
	}
	w.args = append(w.args, "%"+strings.ToLower(term)+"%")
	placeholder := fmt.Sprintf("$%d", len(w.args))

	parts := make([]string, 0, len(cols))
	for _, col := range cols {
		parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE %s", col, placeholder))
	}
	w.clauses = append(w.clauses, "("+strings.Join(parts, " OR ")+")")
	return w
}

// Raw appends a pre-built predicate with no bound values. Only repository
// constants go through here.
func (w *WhereBuilder) Raw(clause string) *WhereBuilder {
	w.clauses = append(w.clauses, clause)
	return w
}

// Empty reports whether no predicate was added.
func (w *WhereBuilder) Empty() bool {
	return len(w.clauses) == 0
}

// Clause renders "WHERE ..." or an empty string when nothing was added.
func (w *WhereBuilder) Clause() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.clauses, " AND ")
}

// Args returns the positional parameters accumulated so far.
func (w *WhereBuilder) Args() []any {
	return w.args
}

// NextPlaceholder returns the placeholder index the next bound value would
// take, letting callers append LIMIT/OFFSET parameters after the fragment.
func (w *WhereBuilder) NextPlaceholder() int {
	return len(w.args) + 1
}
