package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Scanner is satisfied by both *sql.Row and *sql.Rows, letting one scan
// function serve single-row and multi-row queries.
type Scanner interface {
	Scan(dest ...any) error
}

// Store implements the operations every entity repository needs: fetch by
// id, filtered listing and deletion.  It is instantiated once per entity
// with that entity's table, column list, scan function and not-found
// sentinel; entity-specific queries live on the wrapping repository.
type Store[T any] struct {
	db       *sql.DB
	table    string
	columns  string
	scan     func(Scanner) (*T, error)
	notFound error
}

// NewStore builds a Store for one entity type.
func NewStore[T any](db *sql.DB, table, columns string, scan func(Scanner) (*T, error), notFound error) *Store[T] {
	return &Store[T]{db: db, table: table, columns: columns, scan: scan, notFound: notFound}
}

// DB exposes the underlying handle for entity-specific queries.
func (s *Store[T]) DB() *sql.DB {
	return s.db
}

// GetByID fetches a single row by primary key, returning the entity's
// not-found sentinel when absent.
func (s *Store[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", s.columns, s.table)
	row := s.db.QueryRowContext(ctx, q, id.String())
	out, err := s.scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.notFound
		}
		return nil, err
	}
	return out, nil
}

// ListWhere returns all rows matching the WHERE clause in the given order.
// An empty where lists the whole table.
func (s *Store[T]) ListWhere(ctx context.Context, where, orderBy string, args ...any) ([]*T, error) {
	q := fmt.Sprintf("SELECT %s FROM %s", s.columns, s.table)
	if where != "" {
		q += " WHERE " + where
	}
	if orderBy != "" {
		q += " ORDER BY " + orderBy
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		item, err := s.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteWhere removes rows matching the WHERE clause.  Deleting nothing is a
// failure: the entity's not-found sentinel is returned so DELETE endpoints
// are not silently idempotent.
func (s *Store[T]) DeleteWhere(ctx context.Context, where string, args ...any) error {
	q := fmt.Sprintf("DELETE FROM %s WHERE %s", s.table, where)
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return s.notFound
	}
	return nil
}
