package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Tx is the subset of pgx.Tx used by repositories. Both pgx.Tx and
// *pgxpool.Pool satisfy it, so repositories run equally inside and outside
// explicit transactions.
type Tx interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Join glues non-empty SQL fragments with single spaces.
func Join(parts ...string) string {
	filtered := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			filtered = append(filtered, p)
		}
	}
	return strings.Join(filtered, " ")
}

// JoinWhere renders a WHERE clause from AND-ed conditions. Empty input
// produces an empty string so it can be passed straight to Join.
func JoinWhere(conds ...string) string {
	filtered := make([]string, 0, len(conds))
	for _, c := range conds {
		if strings.TrimSpace(c) != "" {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(filtered, " AND ")
}

// FormatLimitOffset renders LIMIT/OFFSET, omitting non-positive parts.
func FormatLimitOffset(limit, offset int) string {
	switch {
	case limit > 0 && offset > 0:
		return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
	case limit > 0:
		return fmt.Sprintf("LIMIT %d", limit)
	case offset > 0:
		return fmt.Sprintf("OFFSET %d", offset)
	default:
		return ""
	}
}

// Exists wraps a query in SELECT EXISTS (...).
func Exists(query string) string {
	return "SELECT EXISTS (" + query + ")"
}

// Insert renders INSERT INTO table (fields...) VALUES ($1...$n), optionally
// with a RETURNING clause.
func Insert(table string, fields []string, returning ...string) string {
	placeholders := make([]string, len(fields))
	for i := range fields {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	q := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
	)
	if len(returning) > 0 {
		q += " RETURNING " + strings.Join(returning, ", ")
	}
	return q
}

// Update renders UPDATE table SET f1 = $1, ... WHERE <where>. The where
// fragment must carry its own placeholder indices, continuing after the
// field placeholders.
func Update(table string, fields []string, where string) string {
	assignments := make([]string, len(fields))
	for i, f := range fields {
		assignments[i] = fmt.Sprintf("%s = $%d", f, i+1)
	}
	q := fmt.Sprintf("UPDATE %s SET %s", table, strings.Join(assignments, ", "))
	if strings.TrimSpace(where) != "" {
		q += " WHERE " + where
	}
	return q
}
