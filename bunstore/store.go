// Package bunstore implements the entityrepo.Store contract on top of the
// bun query builder, so one implementation serves any SQL engine bun speaks.
package bunstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/tarseld/go-entity-repository/entity"
	"github.com/tarseld/go-entity-repository/entityrepo"
)

// Store is a Store[T] over a bun database handle. The handle is shared and
// externally owned; the store does no pooling, retrying or transaction
// management of its own.
type Store[T entity.Entity] struct {
	db    *bun.DB
	table string
}

// New returns a Store reading and writing the given table.
func New[T entity.Entity](db *bun.DB, table string) *Store[T] {
	return &Store[T]{db: db, table: table}
}

// QueryMany implements entityrepo.Store.
func (s *Store[T]) QueryMany(ctx context.Context, q entityrepo.Query) ([]T, error) {
	dir := bun.Safe("ASC")
	if q.OrderDesc {
		dir = bun.Safe("DESC")
	}

	var records []T
	err := s.db.NewSelect().
		ColumnExpr("*").
		Table(s.table).
		OrderExpr("? ?", bun.Ident(q.OrderBy), dir).
		Limit(q.Limit).
		Offset(q.Offset).
		Scan(ctx, &records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// QueryOne implements entityrepo.Store. A lookup matching no row reports
// entityrepo.ErrNotFound.
func (s *Store[T]) QueryOne(ctx context.Context, q entityrepo.Query) (T, error) {
	record := entity.New[T]()
	err := s.db.NewSelect().
		ColumnExpr("*").
		Table(s.table).
		Where("id = ?", q.ID).
		Limit(1).
		Scan(ctx, record)
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, entityrepo.ErrNotFound
		}
		return zero, err
	}
	return record, nil
}

// Insert implements entityrepo.Store.
func (s *Store[T]) Insert(ctx context.Context, record T) error {
	_, err := s.db.NewInsert().
		Model(record).
		ModelTableExpr("?", bun.Ident(s.table)).
		Exec(ctx)
	return err
}

// Update implements entityrepo.Store. The whole row is replaced; the
// repository has already merged the record it wants stored.
func (s *Store[T]) Update(ctx context.Context, record T) error {
	_, err := s.db.NewUpdate().
		Model(record).
		ModelTableExpr("?", bun.Ident(s.table)).
		Where("id = ?", record.GetID()).
		Exec(ctx)
	return err
}

// Delete implements entityrepo.Store. Deleting an id with no matching row is
// not an error; the statement simply affects zero rows.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	_, err := s.db.NewDelete().
		Table(s.table).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
