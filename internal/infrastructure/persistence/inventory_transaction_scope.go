package persistence

import (
	"context"

	"gorm.io/gorm"

	appinventory "github.com/hotelops/backend/internal/application/inventory"
	"github.com/hotelops/backend/internal/domain/inventory"
)

// GormTransactionScope executes work against the inventory repositories
// inside a single database transaction. All repositories handed to the
// callback share the transaction handle, so a failure anywhere rolls
// back every write.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a transaction, committing on nil and rolling back on error
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) BalanceRepo() inventory.StockBalanceRepository {
	return NewGormStockBalanceRepository(r.tx)
}

func (r *gormTransactionalRepositories) IssuanceRepo() inventory.IssuanceRecordRepository {
	return NewGormIssuanceRecordRepository(r.tx)
}

func (r *gormTransactionalRepositories) RequestRepo() inventory.StockRequestRepository {
	return NewGormStockRequestRepository(r.tx)
}

var _ appinventory.TransactionScope = (*GormTransactionScope)(nil)
var _ appinventory.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
