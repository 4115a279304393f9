package database

import (
	"context"
	"database/sql"
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories are written against it so the same queries run inside or
// outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	db *sql.DB
	*UserRepo
	*ProjectRepo
	*SwimLaneRepo
	*UserRoleRepo
	*TaskRepo
	*TemplateRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db:           db,
		UserRepo:     &UserRepo{db: db},
		ProjectRepo:  &ProjectRepo{db: db},
		SwimLaneRepo: &SwimLaneRepo{db: db},
		UserRoleRepo: &UserRoleRepo{db: db},
		TaskRepo:     &TaskRepo{db: db},
		TemplateRepo: &TemplateRepo{db: db},
	}
}

// BeginTx starts a new transaction on the underlying connection.
func (r *Repository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

// WithTx returns a Repository whose entity repositories all run against the
// given transaction. The original Repository is unchanged.
func (r *Repository) WithTx(tx *sql.Tx) *Repository {
	return &Repository{
		db:           r.db,
		UserRepo:     &UserRepo{db: tx},
		ProjectRepo:  &ProjectRepo{db: tx},
		SwimLaneRepo: &SwimLaneRepo{db: tx},
		UserRoleRepo: &UserRoleRepo{db: tx},
		TaskRepo:     &TaskRepo{db: tx},
		TemplateRepo: &TemplateRepo{db: tx},
	}
}
