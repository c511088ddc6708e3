package trade

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/shared"
	"github.com/stockbook/backend/internal/domain/trade"
)

// PurchaseReturnService handles purchase return business operations. An
// effective purchase return sends goods back to the supplier: each effective
// line removes stock, guarded against going negative, and writes a
// PURCHASE_RETURN ledger row.
type PurchaseReturnService struct {
	scope   TransactionScope
	policy  trade.StockPolicy
	alerter StockAlerter
}

// NewPurchaseReturnService creates a new PurchaseReturnService
func NewPurchaseReturnService(scope TransactionScope) *PurchaseReturnService {
	return &PurchaseReturnService{scope: scope, policy: trade.PurchaseReturnPolicy}
}

// SetStockAlerter installs the low-stock alerter invoked after committed
// stock-decreasing mutations.
func (s *PurchaseReturnService) SetStockAlerter(alerter StockAlerter) {
	s.alerter = alerter
}

// Create creates a purchase return against an existing purchase order.
func (s *PurchaseReturnService) Create(ctx context.Context, userID uuid.UUID, req CreatePurchaseReturnRequest) (*PurchaseReturnResponse, error) {
	returnDate := time.Now()
	if req.ReturnDate != nil {
		returnDate = *req.ReturnDate
	}

	ret, err := trade.NewPurchaseReturn(userID, req.PurchaseOrderID, req.Status, returnDate)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		ret.SetNotes(req.Notes)
	}
	for _, item := range req.Items {
		if _, err := ret.AddItem(item.ProductID, item.Quantity, item.Status); err != nil {
			return nil, err
		}
	}

	movements := s.policy.PlanCreate(ret.PlanLines())
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := requirePurchaseOrder(ctx, repos, userID, req.PurchaseOrderID); err != nil {
			return err
		}
		if err := requireProducts(ctx, repos, userID, productIDsOfPurchaseReturnInputs(req.Items)); err != nil {
			return err
		}

		ledger := inventory.NewLedger(repos.Stock(), repos.LedgerEntries())
		if _, err := ledger.ApplyAll(ctx, userID, movements); err != nil {
			return err
		}
		return repos.PurchaseReturns().Save(ctx, ret)
	})
	if err != nil {
		return nil, err
	}
	notifyDecreases(ctx, s.alerter, userID, movements)

	response := ToPurchaseReturnResponse(ret)
	return &response, nil
}

// Update replaces the return's lines and status, moving stock by the same
// leave/enter/delta rules as sales returns, in the opposite direction.
func (s *PurchaseReturnService) Update(ctx context.Context, userID, returnID uuid.UUID, req UpdatePurchaseReturnRequest) (*PurchaseReturnResponse, error) {
	var response PurchaseReturnResponse
	var movements []inventory.Movement
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ret, err := repos.PurchaseReturns().FindByIDForUser(ctx, userID, returnID)
		if err != nil {
			return err
		}

		oldLines := ret.PlanLines()

		newItems := make([]trade.PurchaseReturnItem, 0, len(req.Items))
		seen := make(map[uuid.UUID]struct{}, len(req.Items))
		for _, input := range req.Items {
			if _, dup := seen[input.ProductID]; dup {
				return shared.ErrDuplicateLineItem
			}
			seen[input.ProductID] = struct{}{}

			item, err := trade.NewPurchaseReturnItem(ret.ID, input.ProductID, input.Quantity, input.Status)
			if err != nil {
				return err
			}
			newItems = append(newItems, *item)
		}
		if err := requireProducts(ctx, repos, userID, productIDsOfPurchaseReturnInputs(req.Items)); err != nil {
			return err
		}

		if err := ret.SetStatus(req.Status); err != nil {
			return err
		}
		ret.ReplaceItems(newItems)
		if req.ReturnDate != nil {
			ret.ReturnDate = *req.ReturnDate
		}
		if req.Notes != nil {
			ret.SetNotes(*req.Notes)
		}

		newLines := ret.PlanLines()
		ledger := inventory.NewLedger(repos.Stock(), repos.LedgerEntries())
		movements = s.policy.PlanUpdate(oldLines, newLines, anyEffective(oldLines), anyEffective(newLines))
		if _, err := ledger.ApplyAll(ctx, userID, movements); err != nil {
			return err
		}

		if err := repos.PurchaseReturns().Save(ctx, ret); err != nil {
			return err
		}
		response = ToPurchaseReturnResponse(ret)
		return nil
	})
	if err != nil {
		return nil, err
	}
	notifyDecreases(ctx, s.alerter, userID, movements)
	return &response, nil
}

// Delete removes a purchase return, adding back the stock its effective
// lines removed as adjustments.
func (s *PurchaseReturnService) Delete(ctx context.Context, userID, returnID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ret, err := repos.PurchaseReturns().FindByIDForUser(ctx, userID, returnID)
		if err != nil {
			return err
		}

		ledger := inventory.NewLedger(repos.Stock(), repos.LedgerEntries())
		if _, err := ledger.ApplyAll(ctx, userID, s.policy.PlanDelete(ret.PlanLines())); err != nil {
			return err
		}
		return repos.PurchaseReturns().DeleteForUser(ctx, userID, returnID)
	})
}

// GetByID retrieves a purchase return by ID
func (s *PurchaseReturnService) GetByID(ctx context.Context, userID, returnID uuid.UUID) (*PurchaseReturnResponse, error) {
	var response PurchaseReturnResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ret, err := repos.PurchaseReturns().FindByIDForUser(ctx, userID, returnID)
		if err != nil {
			return err
		}
		response = ToPurchaseReturnResponse(ret)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves purchase returns with pagination
func (s *PurchaseReturnService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[PurchaseReturnResponse], error) {
	filter = normalizeFilter(filter)
	var page shared.Paginated[PurchaseReturnResponse]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		returns, err := repos.PurchaseReturns().FindAllForUser(ctx, userID, filter)
		if err != nil {
			return err
		}
		total, err := repos.PurchaseReturns().CountForUser(ctx, userID, filter)
		if err != nil {
			return err
		}

		responses := make([]PurchaseReturnResponse, 0, len(returns))
		for i := range returns {
			responses = append(responses, ToPurchaseReturnResponse(&returns[i]))
		}
		page = shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func requirePurchaseOrder(ctx context.Context, repos TransactionalRepositories, userID, orderID uuid.UUID) error {
	ok, err := repos.PurchaseOrders().ExistsForUser(ctx, userID, orderID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewDomainError("ORDER_NOT_FOUND", "Purchase order does not exist")
	}
	return nil
}

func productIDsOfPurchaseReturnInputs(items []PurchaseReturnItemInput) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids
}
