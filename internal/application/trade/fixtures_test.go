package trade

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/catalog"
	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/partner"
	"github.com/stockbook/backend/internal/domain/shared"
	"github.com/stockbook/backend/internal/domain/trade"
)

// memStore is an in-memory backing store for the trade service tests. It
// implements every repository the transaction scope exposes, with product
// rows doubling as the stock store the way the real database does.
type memStore struct {
	products        map[uuid.UUID]*catalog.Product
	ledger          []inventory.InventoryTransaction
	salesOrders     map[uuid.UUID]*trade.SalesOrder
	purchaseOrders  map[uuid.UUID]*trade.PurchaseOrder
	salesReturns    map[uuid.UUID]*trade.SalesReturn
	purchaseReturns map[uuid.UUID]*trade.PurchaseReturn
	customers       map[uuid.UUID]*partner.Customer
	suppliers       map[uuid.UUID]*partner.Supplier
}

func newMemStore() *memStore {
	return &memStore{
		products:        make(map[uuid.UUID]*catalog.Product),
		salesOrders:     make(map[uuid.UUID]*trade.SalesOrder),
		purchaseOrders:  make(map[uuid.UUID]*trade.PurchaseOrder),
		salesReturns:    make(map[uuid.UUID]*trade.SalesReturn),
		purchaseReturns: make(map[uuid.UUID]*trade.PurchaseReturn),
		customers:       make(map[uuid.UUID]*partner.Customer),
		suppliers:       make(map[uuid.UUID]*partner.Supplier),
	}
}

func (m *memStore) scope() *NoOpTransactionScope {
	return &NoOpTransactionScope{
		ProductRepo:        (*memProductRepo)(m),
		StockStore:         (*memStockStore)(m),
		LedgerRepo:         (*memLedgerRepo)(m),
		SalesOrderRepo:     (*memSalesOrderRepo)(m),
		PurchaseOrderRepo:  (*memPurchaseOrderRepo)(m),
		SalesReturnRepo:    (*memSalesReturnRepo)(m),
		PurchaseReturnRepo: (*memPurchaseReturnRepo)(m),
		CustomerRepo:       (*memCustomerRepo)(m),
		SupplierRepo:       (*memSupplierRepo)(m),
	}
}

// addProduct seeds a product with the given stock level and returns its ID.
func (m *memStore) addProduct(userID uuid.UUID, code string, quantity int64) uuid.UUID {
	product, err := catalog.NewProduct(userID, code, "Product "+code, "pcs")
	if err != nil {
		panic(err)
	}
	product.Quantity = decimal.NewFromInt(quantity)
	m.products[product.ID] = product
	return product.ID
}

func (m *memStore) addCustomer(userID uuid.UUID) uuid.UUID {
	customer, err := partner.NewCustomer(userID, "Acme Retail")
	if err != nil {
		panic(err)
	}
	m.customers[customer.ID] = customer
	return customer.ID
}

func (m *memStore) addSupplier(userID uuid.UUID) uuid.UUID {
	supplier, err := partner.NewSupplier(userID, "Bolt Works Ltd")
	if err != nil {
		panic(err)
	}
	m.suppliers[supplier.ID] = supplier
	return supplier.ID
}

func (m *memStore) stockOf(productID uuid.UUID) decimal.Decimal {
	return m.products[productID].Quantity
}

func (m *memStore) ledgerTypes() []inventory.TransactionType {
	types := make([]inventory.TransactionType, 0, len(m.ledger))
	for _, tx := range m.ledger {
		types = append(types, tx.TransactionType)
	}
	return types
}

// ---- product repository + stock store ----

type memProductRepo memStore

func (r *memProductRepo) find(userID, id uuid.UUID) (*catalog.Product, error) {
	product, ok := r.products[id]
	if !ok || product.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

func (r *memProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *memProductRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*catalog.Product, error) {
	return r.find(userID, id)
}

func (r *memProductRepo) FindByCodeForUser(_ context.Context, userID uuid.UUID, code string) (*catalog.Product, error) {
	for _, product := range r.products {
		if product.UserID == userID && product.Code == code {
			return product, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindAllForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, product := range r.products {
		if product.UserID == userID {
			out = append(out, *product)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *memProductRepo) CountForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, product := range r.products {
		if product.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memProductRepo) ExistsForUser(_ context.Context, userID, id uuid.UUID) (bool, error) {
	product, ok := r.products[id]
	return ok && product.UserID == userID, nil
}

func (r *memProductRepo) DeleteForUser(_ context.Context, userID, id uuid.UUID) error {
	if _, err := r.find(userID, id); err != nil {
		return err
	}
	delete(r.products, id)
	return nil
}

type memStockStore memStore

func (s *memStockStore) AdjustStock(_ context.Context, userID, productID uuid.UUID, delta decimal.Decimal) (inventory.StockAdjustment, error) {
	product, err := (*memProductRepo)(s).find(userID, productID)
	if err != nil {
		return inventory.StockAdjustment{}, err
	}
	prev := product.Quantity
	product.Quantity = prev.Add(delta)
	return inventory.StockAdjustment{PreviousStock: prev, NewStock: product.Quantity}, nil
}

func (s *memStockStore) HasSufficientStock(_ context.Context, userID, productID uuid.UUID, required decimal.Decimal) (bool, error) {
	product, err := (*memProductRepo)(s).find(userID, productID)
	if err != nil {
		return false, err
	}
	return product.Quantity.GreaterThanOrEqual(required), nil
}

func (s *memStockStore) GetStock(_ context.Context, userID, productID uuid.UUID) (decimal.Decimal, error) {
	product, err := (*memProductRepo)(s).find(userID, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return product.Quantity, nil
}

func (s *memStockStore) RaiseUnitCost(_ context.Context, userID, productID uuid.UUID, cost decimal.Decimal) error {
	product, err := (*memProductRepo)(s).find(userID, productID)
	if err != nil {
		return err
	}
	if cost.GreaterThan(product.UnitCost) {
		product.UnitCost = cost
	}
	return nil
}

// ---- ledger repository ----

type memLedgerRepo memStore

func (r *memLedgerRepo) Create(_ context.Context, tx *inventory.InventoryTransaction) error {
	r.ledger = append(r.ledger, *tx)
	return nil
}

func (r *memLedgerRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*inventory.InventoryTransaction, error) {
	for i := range r.ledger {
		if r.ledger[i].ID == id && r.ledger[i].UserID == userID {
			return &r.ledger[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memLedgerRepo) FindAllForUser(_ context.Context, userID uuid.UUID, _ inventory.TransactionFilter, _ shared.Filter) ([]inventory.InventoryTransaction, error) {
	var out []inventory.InventoryTransaction
	for _, tx := range r.ledger {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) CountForUser(_ context.Context, userID uuid.UUID, _ inventory.TransactionFilter) (int64, error) {
	var n int64
	for _, tx := range r.ledger {
		if tx.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memLedgerRepo) FindByProduct(_ context.Context, userID, productID uuid.UUID, _ shared.Filter) ([]inventory.InventoryTransaction, error) {
	var out []inventory.InventoryTransaction
	for _, tx := range r.ledger {
		if tx.UserID == userID && tx.ProductID == productID {
			out = append(out, tx)
		}
	}
	return out, nil
}

// ---- document repositories ----

type memSalesOrderRepo memStore

func (r *memSalesOrderRepo) Save(_ context.Context, order *trade.SalesOrder) error {
	r.salesOrders[order.ID] = order
	return nil
}

func (r *memSalesOrderRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*trade.SalesOrder, error) {
	order, ok := r.salesOrders[id]
	if !ok || order.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

func (r *memSalesOrderRepo) FindAllForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]trade.SalesOrder, error) {
	var out []trade.SalesOrder
	for _, order := range r.salesOrders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *memSalesOrderRepo) CountForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, order := range r.salesOrders {
		if order.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memSalesOrderRepo) ExistsForUser(_ context.Context, userID, id uuid.UUID) (bool, error) {
	order, ok := r.salesOrders[id]
	return ok && order.UserID == userID, nil
}

func (r *memSalesOrderRepo) DeleteForUser(_ context.Context, userID, id uuid.UUID) error {
	order, ok := r.salesOrders[id]
	if !ok || order.UserID != userID {
		return shared.ErrNotFound
	}
	delete(r.salesOrders, id)
	return nil
}

type memPurchaseOrderRepo memStore

func (r *memPurchaseOrderRepo) Save(_ context.Context, order *trade.PurchaseOrder) error {
	r.purchaseOrders[order.ID] = order
	return nil
}

func (r *memPurchaseOrderRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*trade.PurchaseOrder, error) {
	order, ok := r.purchaseOrders[id]
	if !ok || order.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

func (r *memPurchaseOrderRepo) FindAllForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]trade.PurchaseOrder, error) {
	var out []trade.PurchaseOrder
	for _, order := range r.purchaseOrders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *memPurchaseOrderRepo) CountForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, order := range r.purchaseOrders {
		if order.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memPurchaseOrderRepo) ExistsForUser(_ context.Context, userID, id uuid.UUID) (bool, error) {
	order, ok := r.purchaseOrders[id]
	return ok && order.UserID == userID, nil
}

func (r *memPurchaseOrderRepo) DeleteForUser(_ context.Context, userID, id uuid.UUID) error {
	order, ok := r.purchaseOrders[id]
	if !ok || order.UserID != userID {
		return shared.ErrNotFound
	}
	delete(r.purchaseOrders, id)
	return nil
}

type memSalesReturnRepo memStore

func (r *memSalesReturnRepo) Save(_ context.Context, ret *trade.SalesReturn) error {
	r.salesReturns[ret.ID] = ret
	return nil
}

func (r *memSalesReturnRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*trade.SalesReturn, error) {
	ret, ok := r.salesReturns[id]
	if !ok || ret.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return ret, nil
}

func (r *memSalesReturnRepo) FindAllForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]trade.SalesReturn, error) {
	var out []trade.SalesReturn
	for _, ret := range r.salesReturns {
		if ret.UserID == userID {
			out = append(out, *ret)
		}
	}
	return out, nil
}

func (r *memSalesReturnRepo) CountForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, ret := range r.salesReturns {
		if ret.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memSalesReturnRepo) FindByOrderForUser(_ context.Context, userID, salesOrderID uuid.UUID) ([]trade.SalesReturn, error) {
	var out []trade.SalesReturn
	for _, ret := range r.salesReturns {
		if ret.UserID == userID && ret.SalesOrderID == salesOrderID {
			out = append(out, *ret)
		}
	}
	return out, nil
}

func (r *memSalesReturnRepo) DeleteForUser(_ context.Context, userID, id uuid.UUID) error {
	ret, ok := r.salesReturns[id]
	if !ok || ret.UserID != userID {
		return shared.ErrNotFound
	}
	delete(r.salesReturns, id)
	return nil
}

type memPurchaseReturnRepo memStore

func (r *memPurchaseReturnRepo) Save(_ context.Context, ret *trade.PurchaseReturn) error {
	r.purchaseReturns[ret.ID] = ret
	return nil
}

func (r *memPurchaseReturnRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*trade.PurchaseReturn, error) {
	ret, ok := r.purchaseReturns[id]
	if !ok || ret.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return ret, nil
}

func (r *memPurchaseReturnRepo) FindAllForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]trade.PurchaseReturn, error) {
	var out []trade.PurchaseReturn
	for _, ret := range r.purchaseReturns {
		if ret.UserID == userID {
			out = append(out, *ret)
		}
	}
	return out, nil
}

func (r *memPurchaseReturnRepo) CountForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, ret := range r.purchaseReturns {
		if ret.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memPurchaseReturnRepo) FindByOrderForUser(_ context.Context, userID, purchaseOrderID uuid.UUID) ([]trade.PurchaseReturn, error) {
	var out []trade.PurchaseReturn
	for _, ret := range r.purchaseReturns {
		if ret.UserID == userID && ret.PurchaseOrderID == purchaseOrderID {
			out = append(out, *ret)
		}
	}
	return out, nil
}

func (r *memPurchaseReturnRepo) DeleteForUser(_ context.Context, userID, id uuid.UUID) error {
	ret, ok := r.purchaseReturns[id]
	if !ok || ret.UserID != userID {
		return shared.ErrNotFound
	}
	delete(r.purchaseReturns, id)
	return nil
}

// ---- partner repositories ----

type memCustomerRepo memStore

func (r *memCustomerRepo) Save(_ context.Context, customer *partner.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *memCustomerRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*partner.Customer, error) {
	customer, ok := r.customers[id]
	if !ok || customer.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return customer, nil
}

func (r *memCustomerRepo) FindAllForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]partner.Customer, error) {
	var out []partner.Customer
	for _, customer := range r.customers {
		if customer.UserID == userID {
			out = append(out, *customer)
		}
	}
	return out, nil
}

func (r *memCustomerRepo) CountForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, customer := range r.customers {
		if customer.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memCustomerRepo) ExistsForUser(_ context.Context, userID, id uuid.UUID) (bool, error) {
	customer, ok := r.customers[id]
	return ok && customer.UserID == userID, nil
}

func (r *memCustomerRepo) DeleteForUser(_ context.Context, userID, id uuid.UUID) error {
	customer, ok := r.customers[id]
	if !ok || customer.UserID != userID {
		return shared.ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

type memSupplierRepo memStore

func (r *memSupplierRepo) Save(_ context.Context, supplier *partner.Supplier) error {
	r.suppliers[supplier.ID] = supplier
	return nil
}

func (r *memSupplierRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*partner.Supplier, error) {
	supplier, ok := r.suppliers[id]
	if !ok || supplier.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return supplier, nil
}

func (r *memSupplierRepo) FindAllForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]partner.Supplier, error) {
	var out []partner.Supplier
	for _, supplier := range r.suppliers {
		if supplier.UserID == userID {
			out = append(out, *supplier)
		}
	}
	return out, nil
}

func (r *memSupplierRepo) CountForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, supplier := range r.suppliers {
		if supplier.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memSupplierRepo) ExistsForUser(_ context.Context, userID, id uuid.UUID) (bool, error) {
	supplier, ok := r.suppliers[id]
	return ok && supplier.UserID == userID, nil
}

func (r *memSupplierRepo) DeleteForUser(_ context.Context, userID, id uuid.UUID) error {
	supplier, ok := r.suppliers[id]
	if !ok || supplier.UserID != userID {
		return shared.ErrNotFound
	}
	delete(r.suppliers, id)
	return nil
}
