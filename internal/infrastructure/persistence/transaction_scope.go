package persistence

import (
	"context"

	"gorm.io/gorm"

	appinventory "github.com/stockbook/backend/internal/application/inventory"
	apptrade "github.com/stockbook/backend/internal/application/trade"
	"github.com/stockbook/backend/internal/domain/catalog"
	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/partner"
	"github.com/stockbook/backend/internal/domain/trade"
)

// GormTransactionScope runs application unit-of-work functions inside a
// single database transaction. The repositories handed to the function are
// all bound to the same *gorm.DB transaction handle, so a failing ledger
// write rolls back the document and stock writes with it.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a transaction scope on top of a database
func NewGormTransactionScope(db *Database) *GormTransactionScope {
	return &GormTransactionScope{db: db.DB}
}

// Execute runs fn inside a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// InventoryScope adapts the scope to the narrower contract the manual
// inventory operations use.
func (s *GormTransactionScope) InventoryScope() appinventory.TransactionScope {
	return &gormInventoryScope{db: s.db}
}

type gormInventoryScope struct {
	db *gorm.DB
}

func (s *gormInventoryScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories constructs repositories bound to the
// current transaction on demand.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) Stock() inventory.StockStore {
	return NewGormStockStore(r.tx)
}

func (r *gormTransactionalRepositories) LedgerEntries() inventory.TransactionRepository {
	return NewGormInventoryTransactionRepository(r.tx)
}

func (r *gormTransactionalRepositories) SalesOrders() trade.SalesOrderRepository {
	return NewGormSalesOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) PurchaseOrders() trade.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) SalesReturns() trade.SalesReturnRepository {
	return NewGormSalesReturnRepository(r.tx)
}

func (r *gormTransactionalRepositories) PurchaseReturns() trade.PurchaseReturnRepository {
	return NewGormPurchaseReturnRepository(r.tx)
}

func (r *gormTransactionalRepositories) Customers() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

func (r *gormTransactionalRepositories) Suppliers() partner.SupplierRepository {
	return NewGormSupplierRepository(r.tx)
}

var (
	_ apptrade.TransactionScope              = (*GormTransactionScope)(nil)
	_ appinventory.TransactionScope          = (*gormInventoryScope)(nil)
	_ apptrade.TransactionalRepositories     = (*gormTransactionalRepositories)(nil)
	_ appinventory.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
