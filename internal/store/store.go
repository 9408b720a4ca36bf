// Package store is the entity store: typed CRUD over gorm with pagination,
// cascade deletes and per-entity serialization. State transitions go through
// compare-and-swap updates so a stale writer can never silently win; cascades
// run inside a single transaction.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mestizo/crm-service/internal/domain"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

// Tx runs fn inside a transaction, handing it a Store bound to the tx.
func (s *Store) Tx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(txdb *gorm.DB) error {
		return fn(&Store{db: txdb})
	})
}

// PageRequest selects a page of a list operation.
type PageRequest struct {
	Page     int
	PageSize int
}

// Normalized clamps the request to the page and size actually served. The
// handlers reuse it so the envelope math and the query agree.
func (p PageRequest) Normalized() (page, size int) {
	page, size = p.Page, p.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func (p PageRequest) apply(q *gorm.DB) *gorm.DB {
	page, size := p.Normalized()
	return q.Limit(size).Offset((page - 1) * size)
}

// wrapErr maps gorm failures to the domain taxonomy. Domain errors pass
// through untouched so services can return them from inside Tx.
func wrapErr(err error, entity string) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFound(entity)
	}
	return domain.StoreUnavailable(err)
}

func searchPattern(q string) string {
	return "%" + q + "%"
}
