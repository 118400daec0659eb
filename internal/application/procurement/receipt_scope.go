package procurement

import (
	"context"

	"github.com/hotelops/backend/internal/domain/inventory"
	"github.com/hotelops/backend/internal/domain/procurement"
)

// ReceiptScope provides transactional access to the repositories touched
// when a vendor bill is received. The order's receipt, the bill row and
// the stock credits commit or roll back as one unit, so a failure on any
// credit line leaves no partial receipt behind.
type ReceiptScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos ReceiptRepositories) error) error
}

// ReceiptRepositories provides access to the repositories a bill receipt
// writes, all scoped to the same underlying database transaction.
type ReceiptRepositories interface {
	// OrderRepo returns the procurement order repository scoped to the current transaction
	OrderRepo() procurement.ProcurementOrderRepository
	// BillRepo returns the procurement bill repository scoped to the current transaction
	BillRepo() procurement.ProcurementBillRepository
	// BalanceRepo returns the stock balance repository scoped to the current transaction
	BalanceRepo() inventory.StockBalanceRepository
}

// NoOpReceiptScope is a receipt scope that doesn't actually use
// transactions. Useful for tests.
type NoOpReceiptScope struct {
	orderRepo   procurement.ProcurementOrderRepository
	billRepo    procurement.ProcurementBillRepository
	balanceRepo inventory.StockBalanceRepository
}

// NewNoOpReceiptScope creates a NoOpReceiptScope with the given repositories.
func NewNoOpReceiptScope(
	orderRepo procurement.ProcurementOrderRepository,
	billRepo procurement.ProcurementBillRepository,
	balanceRepo inventory.StockBalanceRepository,
) *NoOpReceiptScope {
	return &NoOpReceiptScope{
		orderRepo:   orderRepo,
		billRepo:    billRepo,
		balanceRepo: balanceRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpReceiptScope) Execute(_ context.Context, fn func(repos ReceiptRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the procurement order repository.
func (s *NoOpReceiptScope) OrderRepo() procurement.ProcurementOrderRepository {
	return s.orderRepo
}

// BillRepo returns the procurement bill repository.
func (s *NoOpReceiptScope) BillRepo() procurement.ProcurementBillRepository {
	return s.billRepo
}

// BalanceRepo returns the stock balance repository.
func (s *NoOpReceiptScope) BalanceRepo() inventory.StockBalanceRepository {
	return s.balanceRepo
}

var _ ReceiptScope = (*NoOpReceiptScope)(nil)
var _ ReceiptRepositories = (*NoOpReceiptScope)(nil)
