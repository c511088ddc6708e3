package trade

import (
	"context"

	"github.com/stockbook/backend/internal/domain/catalog"
	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/partner"
	"github.com/stockbook/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories the
// order and return engines mutate together. When a function is executed
// within a scope, all repository operations share one database transaction
// and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs fn inside a database transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the stores bound to the current
// transaction. Every order or return mutation touches three of them at
// once: the document store, the product stock row, and the append-only
// ledger.
type TransactionalRepositories interface {
	Products() catalog.ProductRepository
	Stock() inventory.StockStore
	LedgerEntries() inventory.TransactionRepository
	SalesOrders() trade.SalesOrderRepository
	PurchaseOrders() trade.PurchaseOrderRepository
	SalesReturns() trade.SalesReturnRepository
	PurchaseReturns() trade.PurchaseReturnRepository
	Customers() partner.CustomerRepository
	Suppliers() partner.SupplierRepository
}

// NoOpTransactionScope runs functions without a real transaction. Used in
// tests with in-memory repositories.
type NoOpTransactionScope struct {
	ProductRepo        catalog.ProductRepository
	StockStore         inventory.StockStore
	LedgerRepo         inventory.TransactionRepository
	SalesOrderRepo     trade.SalesOrderRepository
	PurchaseOrderRepo  trade.PurchaseOrderRepository
	SalesReturnRepo    trade.SalesReturnRepository
	PurchaseReturnRepo trade.PurchaseReturnRepository
	CustomerRepo       partner.CustomerRepository
	SupplierRepo       partner.SupplierRepository
}

// Execute runs fn directly against the configured repositories.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Products() catalog.ProductRepository         { return s.ProductRepo }
func (s *NoOpTransactionScope) Stock() inventory.StockStore                 { return s.StockStore }
func (s *NoOpTransactionScope) LedgerEntries() inventory.TransactionRepository {
	return s.LedgerRepo
}
func (s *NoOpTransactionScope) SalesOrders() trade.SalesOrderRepository     { return s.SalesOrderRepo }
func (s *NoOpTransactionScope) PurchaseOrders() trade.PurchaseOrderRepository {
	return s.PurchaseOrderRepo
}
func (s *NoOpTransactionScope) SalesReturns() trade.SalesReturnRepository   { return s.SalesReturnRepo }
func (s *NoOpTransactionScope) PurchaseReturns() trade.PurchaseReturnRepository {
	return s.PurchaseReturnRepo
}
func (s *NoOpTransactionScope) Customers() partner.CustomerRepository       { return s.CustomerRepo }
func (s *NoOpTransactionScope) Suppliers() partner.SupplierRepository       { return s.SupplierRepo }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
