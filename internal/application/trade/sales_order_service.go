package trade

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/shared"
	"github.com/stockbook/backend/internal/domain/trade"
)

// SalesOrderService handles sales order business operations. Every mutation
// that touches stock runs inside a transaction scope: the order write, the
// stock adjustments, and the ledger rows commit or roll back together.
type SalesOrderService struct {
	scope   TransactionScope
	policy  trade.StockPolicy
	alerter StockAlerter
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(scope TransactionScope) *SalesOrderService {
	return &SalesOrderService{scope: scope, policy: trade.SalesOrderPolicy}
}

// SetStockAlerter installs the low-stock alerter invoked after committed
// stock-decreasing mutations.
func (s *SalesOrderService) SetStockAlerter(alerter StockAlerter) {
	s.alerter = alerter
}

// Create creates a sales order. A confirmed order immediately removes stock
// for every line and writes one ledger row per line; if any line lacks
// sufficient stock the whole creation is rolled back.
func (s *SalesOrderService) Create(ctx context.Context, userID uuid.UUID, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	orderDate := time.Now()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	order, err := trade.NewSalesOrder(userID, req.CustomerID, req.Status, orderDate)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		order.SetNotes(req.Notes)
	}
	for _, item := range req.Items {
		if _, err := order.AddItem(item.ProductID, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}

	movements := s.policy.PlanCreate(order.PlanLines())
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := requireCustomer(ctx, repos, userID, req.CustomerID); err != nil {
			return err
		}
		if err := requireProducts(ctx, repos, userID, productIDsOfSalesOrder(order)); err != nil {
			return err
		}

		ledger := inventory.NewLedger(repos.Stock(), repos.LedgerEntries())
		if _, err := ledger.ApplyAll(ctx, userID, movements); err != nil {
			return err
		}
		return repos.SalesOrders().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	notifyDecreases(ctx, s.alerter, userID, movements)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Update replaces a pending order's lines and status. A confirmed sales
// order is immutable: any update attempt fails, including a no-op one.
func (s *SalesOrderService) Update(ctx context.Context, userID, orderID uuid.UUID, req UpdateSalesOrderRequest) (*SalesOrderResponse, error) {
	var response SalesOrderResponse
	var movements []inventory.Movement
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.SalesOrders().FindByIDForUser(ctx, userID, orderID)
		if err != nil {
			return err
		}
		if order.IsConfirmed() {
			return shared.ErrInvalidState
		}

		oldLines := order.PlanLines()

		newItems := make([]trade.SalesOrderItem, 0, len(req.Items))
		seen := make(map[uuid.UUID]struct{}, len(req.Items))
		for _, input := range req.Items {
			if _, dup := seen[input.ProductID]; dup {
				return shared.ErrDuplicateLineItem
			}
			seen[input.ProductID] = struct{}{}

			item, err := trade.NewSalesOrderItem(order.ID, input.ProductID, input.Quantity, input.UnitPrice)
			if err != nil {
				return err
			}
			newItems = append(newItems, *item)
		}
		if err := requireProducts(ctx, repos, userID, productIDsOfSalesInputs(req.Items)); err != nil {
			return err
		}

		if err := order.SetStatus(req.Status); err != nil {
			return err
		}
		order.ReplaceItems(newItems)
		if req.OrderDate != nil {
			order.OrderDate = *req.OrderDate
		}
		if req.Notes != nil {
			order.SetNotes(*req.Notes)
		}

		ledger := inventory.NewLedger(repos.Stock(), repos.LedgerEntries())
		movements = s.policy.PlanUpdate(oldLines, order.PlanLines(), false, order.IsConfirmed())
		if _, err := ledger.ApplyAll(ctx, userID, movements); err != nil {
			return err
		}

		if err := repos.SalesOrders().Save(ctx, order); err != nil {
			return err
		}
		response = ToSalesOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	notifyDecreases(ctx, s.alerter, userID, movements)
	return &response, nil
}

// Delete removes a sales order. Deleting a confirmed order restores the
// stock its lines removed, one cancellation ledger row per line.
func (s *SalesOrderService) Delete(ctx context.Context, userID, orderID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.SalesOrders().FindByIDForUser(ctx, userID, orderID)
		if err != nil {
			return err
		}

		ledger := inventory.NewLedger(repos.Stock(), repos.LedgerEntries())
		if _, err := ledger.ApplyAll(ctx, userID, s.policy.PlanDelete(order.PlanLines())); err != nil {
			return err
		}
		return repos.SalesOrders().DeleteForUser(ctx, userID, orderID)
	})
}

// GetByID retrieves a sales order by ID
func (s *SalesOrderService) GetByID(ctx context.Context, userID, orderID uuid.UUID) (*SalesOrderResponse, error) {
	var response SalesOrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.SalesOrders().FindByIDForUser(ctx, userID, orderID)
		if err != nil {
			return err
		}
		response = ToSalesOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves sales orders with pagination
func (s *SalesOrderService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[SalesOrderResponse], error) {
	filter = normalizeFilter(filter)
	var page shared.Paginated[SalesOrderResponse]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		orders, err := repos.SalesOrders().FindAllForUser(ctx, userID, filter)
		if err != nil {
			return err
		}
		total, err := repos.SalesOrders().CountForUser(ctx, userID, filter)
		if err != nil {
			return err
		}

		responses := make([]SalesOrderResponse, 0, len(orders))
		for i := range orders {
			responses = append(responses, ToSalesOrderResponse(&orders[i]))
		}
		page = shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func normalizeFilter(filter shared.Filter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return filter
}

func requireCustomer(ctx context.Context, repos TransactionalRepositories, userID, customerID uuid.UUID) error {
	ok, err := repos.Customers().ExistsForUser(ctx, userID, customerID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer does not exist")
	}
	return nil
}

func requireSupplier(ctx context.Context, repos TransactionalRepositories, userID, supplierID uuid.UUID) error {
	ok, err := repos.Suppliers().ExistsForUser(ctx, userID, supplierID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewDomainError("SUPPLIER_NOT_FOUND", "Supplier does not exist")
	}
	return nil
}

// requireProducts verifies every referenced product belongs to the user.
func requireProducts(ctx context.Context, repos TransactionalRepositories, userID uuid.UUID, productIDs []uuid.UUID) error {
	for _, id := range productIDs {
		ok, err := repos.Products().ExistsForUser(ctx, userID, id)
		if err != nil {
			return err
		}
		if !ok {
			return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
		}
	}
	return nil
}

func productIDsOfSalesOrder(order *trade.SalesOrder) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

func productIDsOfSalesInputs(items []SalesOrderItemInput) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids
}
