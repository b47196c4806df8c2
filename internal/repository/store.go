package repository

import (
	"context"
	"database/sql"

	"github.com/jinzhu/gorm"

	"supplychain-admin/internal/repository/postgres"
)

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Orders:     postgres.NewOrderPostgres(db),
		LineItems:  postgres.NewLineItemPostgres(db),
		Deliveries: postgres.NewDeliveryPostgres(db),
		References: postgres.NewReferencePostgres(db),
		Integrity:  postgres.NewIntegrityPostgres(db),
	}
}

func (s *gormStore) Repository() *Repository {
	return NewRepository(s.db)
}

// Begin opens a read-committed transaction bound to ctx: when ctx is done the
// driver aborts the transaction and every later statement on it fails.
func (s *gormStore) Begin(ctx context.Context) (Tx, error) {
	tx := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &gormTx{tx: tx, repo: NewRepository(tx)}, nil
}

type gormTx struct {
	tx   *gorm.DB
	repo *Repository
}

func (t *gormTx) Repository() *Repository { return t.repo }

func (t *gormTx) Commit() error { return t.tx.Commit().Error }

func (t *gormTx) Rollback() error { return t.tx.Rollback().Error }
