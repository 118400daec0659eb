package inventory

import (
	"context"

	"github.com/hotelops/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to inventory repositories.
// A function executed within a scope sees all repository operations as one
// database transaction, committed or rolled back atomically. The issuance
// engine relies on this for its all-or-nothing multi-item guarantee.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the inventory repositories
// within a transaction. All repositories share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// BalanceRepo returns the stock balance repository scoped to the current transaction
	BalanceRepo() inventory.StockBalanceRepository
	// IssuanceRepo returns the issuance record repository scoped to the current transaction
	IssuanceRepo() inventory.IssuanceRecordRepository
	// RequestRepo returns the stock request repository scoped to the current transaction
	RequestRepo() inventory.StockRequestRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests.
type NoOpTransactionScope struct {
	balanceRepo  inventory.StockBalanceRepository
	issuanceRepo inventory.IssuanceRecordRepository
	requestRepo  inventory.StockRequestRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	balanceRepo inventory.StockBalanceRepository,
	issuanceRepo inventory.IssuanceRecordRepository,
	requestRepo inventory.StockRequestRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		balanceRepo:  balanceRepo,
		issuanceRepo: issuanceRepo,
		requestRepo:  requestRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BalanceRepo returns the stock balance repository.
func (s *NoOpTransactionScope) BalanceRepo() inventory.StockBalanceRepository {
	return s.balanceRepo
}

// IssuanceRepo returns the issuance record repository.
func (s *NoOpTransactionScope) IssuanceRepo() inventory.IssuanceRecordRepository {
	return s.issuanceRepo
}

// RequestRepo returns the stock request repository.
func (s *NoOpTransactionScope) RequestRepo() inventory.StockRequestRepository {
	return s.requestRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
