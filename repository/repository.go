// Package repository is the gorm backed persistence layer for every
// marketplace entity.
package repository

import (
	"context"
	"errors"

	e "github.com/ariebrainware/cosec-marketplace/errs"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

// New wraps an open connection pool. The pool is owned by the caller.
func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTransaction runs fn against a repository bound to a single transaction.
// The transaction is committed when fn returns nil and rolled back otherwise.
func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// translate maps driver level errors onto the shared error kinds.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return e.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return e.ErrDuplicateKey
	}
	return err
}

func paginate(q *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	return q
}
