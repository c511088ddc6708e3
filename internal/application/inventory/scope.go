package inventory

import (
	"context"

	"github.com/stockbook/backend/internal/domain/catalog"
	"github.com/stockbook/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the stores a manual
// stock mutation touches: the product row and the append-only ledger.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the stores bound to the current
// transaction.
type TransactionalRepositories interface {
	Products() catalog.ProductRepository
	Stock() inventory.StockStore
	LedgerEntries() inventory.TransactionRepository
}

// NoOpTransactionScope runs functions without a real transaction.
type NoOpTransactionScope struct {
	ProductRepo catalog.ProductRepository
	StockStore  inventory.StockStore
	LedgerRepo  inventory.TransactionRepository
}

// Execute runs fn directly against the configured repositories.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Products() catalog.ProductRepository { return s.ProductRepo }
func (s *NoOpTransactionScope) Stock() inventory.StockStore         { return s.StockStore }
func (s *NoOpTransactionScope) LedgerEntries() inventory.TransactionRepository {
	return s.LedgerRepo
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
