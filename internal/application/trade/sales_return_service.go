package trade

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/shared"
	"github.com/stockbook/backend/internal/domain/trade"
)

// SalesReturnService handles sales return business operations. A confirmed
// sales return puts goods back on the shelf: each effective line adds stock
// and writes a SALE_RETURN ledger row. Lines may carry their own status,
// falling back to the header.
type SalesReturnService struct {
	scope   TransactionScope
	policy  trade.StockPolicy
	alerter StockAlerter
}

// NewSalesReturnService creates a new SalesReturnService
func NewSalesReturnService(scope TransactionScope) *SalesReturnService {
	return &SalesReturnService{scope: scope, policy: trade.SalesReturnPolicy}
}

// SetStockAlerter installs the low-stock alerter invoked after committed
// stock-decreasing mutations.
func (s *SalesReturnService) SetStockAlerter(alerter StockAlerter) {
	s.alerter = alerter
}

// Create creates a sales return against an existing sales order.
func (s *SalesReturnService) Create(ctx context.Context, userID uuid.UUID, req CreateSalesReturnRequest) (*SalesReturnResponse, error) {
	returnDate := time.Now()
	if req.ReturnDate != nil {
		returnDate = *req.ReturnDate
	}

	ret, err := trade.NewSalesReturn(userID, req.SalesOrderID, req.Status, returnDate)
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

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := requireSalesOrder(ctx, repos, userID, req.SalesOrderID); err != nil {
			return err
		}
		if err := requireProducts(ctx, repos, userID, productIDsOfSalesReturnInputs(req.Items)); err != nil {
			return err
		}

		ledger := inventory.NewLedger(repos.Stock(), repos.LedgerEntries())
		if _, err := ledger.ApplyAll(ctx, userID, s.policy.PlanCreate(ret.PlanLines())); err != nil {
			return err
		}
		return repos.SalesReturns().Save(ctx, ret)
	})
	if err != nil {
		return nil, err
	}

	response := ToSalesReturnResponse(ret)
	return &response, nil
}

// Update replaces the return's lines and status. Leaving the effective
// state reverses every previously effective line as an adjustment; staying
// effective moves stock by the per-line quantity deltas.
func (s *SalesReturnService) Update(ctx context.Context, userID, returnID uuid.UUID, req UpdateSalesReturnRequest) (*SalesReturnResponse, error) {
	var response SalesReturnResponse
	var movements []inventory.Movement
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ret, err := repos.SalesReturns().FindByIDForUser(ctx, userID, returnID)
		if err != nil {
			return err
		}

		oldLines := ret.PlanLines()

		newItems := make([]trade.SalesReturnItem, 0, len(req.Items))
		seen := make(map[uuid.UUID]struct{}, len(req.Items))
		for _, input := range req.Items {
			if _, dup := seen[input.ProductID]; dup {
				return shared.ErrDuplicateLineItem
			}
			seen[input.ProductID] = struct{}{}

			item, err := trade.NewSalesReturnItem(ret.ID, input.ProductID, input.Quantity, input.Status)
			if err != nil {
				return err
			}
			newItems = append(newItems, *item)
		}
		if err := requireProducts(ctx, repos, userID, productIDsOfSalesReturnInputs(req.Items)); err != nil {
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

		if err := repos.SalesReturns().Save(ctx, ret); err != nil {
			return err
		}
		response = ToSalesReturnResponse(ret)
		return nil
	})
	if err != nil {
		return nil, err
	}
	notifyDecreases(ctx, s.alerter, userID, movements)
	return &response, nil
}

// Delete removes a sales return, reversing the stock its effective lines
// added as adjustments.
func (s *SalesReturnService) Delete(ctx context.Context, userID, returnID uuid.UUID) error {
	var movements []inventory.Movement
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ret, err := repos.SalesReturns().FindByIDForUser(ctx, userID, returnID)
		if err != nil {
			return err
		}

		ledger := inventory.NewLedger(repos.Stock(), repos.LedgerEntries())
		movements = s.policy.PlanDelete(ret.PlanLines())
		if _, err := ledger.ApplyAll(ctx, userID, movements); err != nil {
			return err
		}
		return repos.SalesReturns().DeleteForUser(ctx, userID, returnID)
	})
	if err != nil {
		return err
	}
	notifyDecreases(ctx, s.alerter, userID, movements)
	return nil
}

// GetByID retrieves a sales return by ID
func (s *SalesReturnService) GetByID(ctx context.Context, userID, returnID uuid.UUID) (*SalesReturnResponse, error) {
	var response SalesReturnResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ret, err := repos.SalesReturns().FindByIDForUser(ctx, userID, returnID)
		if err != nil {
			return err
		}
		response = ToSalesReturnResponse(ret)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves sales returns with pagination
func (s *SalesReturnService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[SalesReturnResponse], error) {
	filter = normalizeFilter(filter)
	var page shared.Paginated[SalesReturnResponse]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		returns, err := repos.SalesReturns().FindAllForUser(ctx, userID, filter)
		if err != nil {
			return err
		}
		total, err := repos.SalesReturns().CountForUser(ctx, userID, filter)
		if err != nil {
			return err
		}

		responses := make([]SalesReturnResponse, 0, len(returns))
		for i := range returns {
			responses = append(responses, ToSalesReturnResponse(&returns[i]))
		}
		page = shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func requireSalesOrder(ctx context.Context, repos TransactionalRepositories, userID, orderID uuid.UUID) error {
	ok, err := repos.SalesOrders().ExistsForUser(ctx, userID, orderID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewDomainError("ORDER_NOT_FOUND", "Sales order does not exist")
	}
	return nil
}

// anyEffective reports whether at least one line triggers stock. For orders
// this mirrors the header status; for returns it also covers per-line
// status overrides.
func anyEffective(lines []trade.PlanLine) bool {
	for _, line := range lines {
		if line.Effective {
			return true
		}
	}
	return false
}

func productIDsOfSalesReturnInputs(items []SalesReturnItemInput) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids
}
