package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type scanner interface {
	Scan(dest ...any) error
}

// table describes how an entity maps onto its relation. columns lists every
// selected column with id first, in the order scan expects them.
type table[T any] struct {
	name    string
	columns []string
	insert  func(v T) (cols []string, args []any)
	scan    func(row scanner) (T, error)
}

func (t table[T]) selectList(alias string) string {
	if alias == "" {
		return strings.Join(t.columns, ", ")
	}

	cols := make([]string, len(t.columns))
	for i, c := range t.columns {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// Repository implements create, get-by-id and delete-by-id for any entity
// described by a table. Statements run on whatever db it is bound to: the pool
// commits each one immediately, a transaction keeps them pending until commit.
type Repository[T any] struct {
	db dbtx
	t  table[T]
}

func newRepository[T any](db dbtx, t table[T]) Repository[T] {
	return Repository[T]{db: db, t: t}
}

// Create inserts v and returns the stored row, including generated values.
func (r Repository[T]) Create(ctx context.Context, v T) (T, error) {
	cols, args := r.t.insert(v)

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.t.name,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		r.t.selectList(""))

	out, err := r.t.scan(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		var zero T
		return zero, wrapErr(err, "insert into %s", r.t.name)
	}

	return out, nil
}

// GetByID returns ErrNotFound when no row has the given id.
func (r Repository[T]) GetByID(ctx context.Context, id int64) (T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", r.t.selectList(""), r.t.name)
	return r.one(ctx, query, id)
}

// DeleteByID removes the row and returns its state before deletion, or ErrNotFound.
func (r Repository[T]) DeleteByID(ctx context.Context, id int64) (T, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 RETURNING %s", r.t.name, r.t.selectList(""))
	return r.one(ctx, query, id)
}

func (r Repository[T]) one(ctx context.Context, query string, args ...any) (T, error) {
	out, err := r.t.scan(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, ErrNotFound
		}

		return zero, wrapErr(err, "query %s", r.t.name)
	}

	return out, nil
}

func (r Repository[T]) many(ctx context.Context, query string, args ...any) ([]T, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(err, "query %s", r.t.name)
	}
	defer rows.Close()

	result := make([]T, 0)
	for rows.Next() {
		v, err := r.t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.t.name, err)
		}
		result = append(result, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", r.t.name, err)
	}

	return result, nil
}
