package trade

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/shared"
	"github.com/stockbook/backend/internal/domain/trade"
)

// PurchaseOrderService handles purchase order business operations. Confirmed
// purchase orders add stock; unlike sales orders they stay editable while
// confirmed, with stock following the line deltas.
type PurchaseOrderService struct {
	scope   TransactionScope
	policy  trade.StockPolicy
	alerter StockAlerter
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(scope TransactionScope) *PurchaseOrderService {
	return &PurchaseOrderService{scope: scope, policy: trade.PurchaseOrderPolicy}
}

// SetStockAlerter installs the low-stock alerter invoked after committed
// stock-decreasing mutations.
func (s *PurchaseOrderService) SetStockAlerter(alerter StockAlerter) {
	s.alerter = alerter
}

// Create creates a purchase order. A confirmed order immediately adds stock
// for every line, writes one ledger row per line, and ratchets each
// product's recorded unit cost up to the line cost.
func (s *PurchaseOrderService) Create(ctx context.Context, userID uuid.UUID, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	orderDate := time.Now()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	order, err := trade.NewPurchaseOrder(userID, req.SupplierID, req.Status, orderDate)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		order.SetNotes(req.Notes)
	}
	for _, item := range req.Items {
		if _, err := order.AddItem(item.ProductID, item.Quantity, item.UnitCost); err != nil {
			return nil, err
		}
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := requireSupplier(ctx, repos, userID, req.SupplierID); err != nil {
			return err
		}
		if err := requireProducts(ctx, repos, userID, productIDsOfPurchaseInputs(req.Items)); err != nil {
			return err
		}

		ledger := inventory.NewLedger(repos.Stock(), repos.LedgerEntries())
		if _, err := ledger.ApplyAll(ctx, userID, s.policy.PlanCreate(order.PlanLines())); err != nil {
			return err
		}
		return repos.PurchaseOrders().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Update replaces the order's lines and status. Moving a confirmed order
// back to pending is rejected. While the order stays confirmed, stock moves
// by the per-product delta: new lines enter in full, vanished lines are
// reversed in full, shared lines move by the quantity difference.
func (s *PurchaseOrderService) Update(ctx context.Context, userID, orderID uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	var response PurchaseOrderResponse
	var movements []inventory.Movement
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.PurchaseOrders().FindByIDForUser(ctx, userID, orderID)
		if err != nil {
			return err
		}

		wasConfirmed := order.IsConfirmed()
		oldLines := order.PlanLines()

		newItems := make([]trade.PurchaseOrderItem, 0, len(req.Items))
		seen := make(map[uuid.UUID]struct{}, len(req.Items))
		for _, input := range req.Items {
			if _, dup := seen[input.ProductID]; dup {
				return shared.ErrDuplicateLineItem
			}
			seen[input.ProductID] = struct{}{}

			item, err := trade.NewPurchaseOrderItem(order.ID, input.ProductID, input.Quantity, input.UnitCost)
			if err != nil {
				return err
			}
			newItems = append(newItems, *item)
		}
		if err := requireProducts(ctx, repos, userID, productIDsOfPurchaseInputs(req.Items)); err != nil {
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
		movements = s.policy.PlanUpdate(oldLines, order.PlanLines(), wasConfirmed, order.IsConfirmed())
		if _, err := ledger.ApplyAll(ctx, userID, movements); err != nil {
			return err
		}

		if err := repos.PurchaseOrders().Save(ctx, order); err != nil {
			return err
		}
		response = ToPurchaseOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	notifyDecreases(ctx, s.alerter, userID, movements)
	return &response, nil
}

// Delete removes a purchase order. Deleting a confirmed order removes the
// stock its lines added, one cancellation ledger row per line. Stock may go
// negative here: goods already received can have been sold on.
func (s *PurchaseOrderService) Delete(ctx context.Context, userID, orderID uuid.UUID) error {
	var movements []inventory.Movement
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.PurchaseOrders().FindByIDForUser(ctx, userID, orderID)
		if err != nil {
			return err
		}

		ledger := inventory.NewLedger(repos.Stock(), repos.LedgerEntries())
		movements = s.policy.PlanDelete(order.PlanLines())
		if _, err := ledger.ApplyAll(ctx, userID, movements); err != nil {
			return err
		}
		return repos.PurchaseOrders().DeleteForUser(ctx, userID, orderID)
	})
	if err != nil {
		return err
	}
	notifyDecreases(ctx, s.alerter, userID, movements)
	return nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, userID, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	var response PurchaseOrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.PurchaseOrders().FindByIDForUser(ctx, userID, orderID)
		if err != nil {
			return err
		}
		response = ToPurchaseOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves purchase orders with pagination
func (s *PurchaseOrderService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[PurchaseOrderResponse], error) {
	filter = normalizeFilter(filter)
	var page shared.Paginated[PurchaseOrderResponse]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		orders, err := repos.PurchaseOrders().FindAllForUser(ctx, userID, filter)
		if err != nil {
			return err
		}
		total, err := repos.PurchaseOrders().CountForUser(ctx, userID, filter)
		if err != nil {
			return err
		}

		responses := make([]PurchaseOrderResponse, 0, len(orders))
		for i := range orders {
			responses = append(responses, ToPurchaseOrderResponse(&orders[i]))
		}
		page = shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func productIDsOfPurchaseInputs(items []PurchaseOrderItemInput) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids
}
