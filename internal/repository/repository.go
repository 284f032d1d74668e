// Package repository is the persistence layer. Every repository runs its
// SQL through a database.DBTX, so the same code serves the pool, a
// transaction and pgxmock in tests.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/tourism/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// notFound tags pgx.ErrNoRows with the table name; sqlerr.HandleError
// turns that into "<Entity> not found".
func notFound(table string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("table:%s: %w", table, err)
	}
	return err
}

// IsNotFound reports whether err came from a lookup that matched no row.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// where accumulates AND-ed conditions with positional arguments.
type where struct {
	conds []string
	args  []any
}

// add appends cond with arg; every "?" in cond refers to arg.
func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

// raw appends a condition without an argument.
func (w *where) raw(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page appends LIMIT/OFFSET placeholders and returns the full argument list.
func (w *where) page(limit, offset int) (string, []any) {
	args := append(append([]any{}, w.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)+1, len(w.args)+2), args
}

// likePattern escapes LIKE wildcards in user input.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

// deleteByID removes a row by primary key. table is always a constant.
func deleteByID(ctx context.Context, db database.DBTX, table string, id uuid.UUID) error {
	tag, err := db.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(table, pgx.ErrNoRows)
	}
	return nil
}
