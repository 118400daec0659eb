package persistence

import (
	"context"

	"gorm.io/gorm"

	appprocurement "github.com/hotelops/backend/internal/application/procurement"
	"github.com/hotelops/backend/internal/domain/inventory"
	"github.com/hotelops/backend/internal/domain/procurement"
)

// GormReceiptScope executes a bill receipt against the order, bill and
// stock balance repositories inside a single database transaction. All
// repositories handed to the callback share the transaction handle, so a
// failure anywhere rolls back every write.
type GormReceiptScope struct {
	db *gorm.DB
}

// NewGormReceiptScope creates a new GormReceiptScope
func NewGormReceiptScope(db *gorm.DB) *GormReceiptScope {
	return &GormReceiptScope{db: db}
}

// Execute runs fn within a transaction, committing on nil and rolling back on error
func (s *GormReceiptScope) Execute(ctx context.Context, fn func(repos appprocurement.ReceiptRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormReceiptRepositories{tx: tx})
	})
}

type gormReceiptRepositories struct {
	tx *gorm.DB
}

func (r *gormReceiptRepositories) OrderRepo() procurement.ProcurementOrderRepository {
	return NewGormProcurementOrderRepository(r.tx)
}

func (r *gormReceiptRepositories) BillRepo() procurement.ProcurementBillRepository {
	return NewGormProcurementBillRepository(r.tx)
}

func (r *gormReceiptRepositories) BalanceRepo() inventory.StockBalanceRepository {
	return NewGormStockBalanceRepository(r.tx)
}

var _ appprocurement.ReceiptScope = (*GormReceiptScope)(nil)
var _ appprocurement.ReceiptRepositories = (*gormReceiptRepositories)(nil)
