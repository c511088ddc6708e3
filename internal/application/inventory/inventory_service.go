package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/shared"
)

// InventoryService handles manual stock mutations and ledger queries. Order
// and return driven stock changes go through the trade services; this
// service covers the corrections a stocktake surfaces and the audit trail
// reads.
type InventoryService struct {
	scope   TransactionScope
	alerter *StockAlerter
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(scope TransactionScope) *InventoryService {
	return &InventoryService{scope: scope}
}

// SetStockAlerter sets the optional low-stock alerter, invoked after
// stock-decreasing mutations.
func (s *InventoryService) SetStockAlerter(alerter *StockAlerter) {
	s.alerter = alerter
}

// AdjustStock applies a manual signed correction to a product's stock and
// writes an ADJUSTMENT ledger row. Corrections are unguarded: a stocktake
// may legitimately drive the recorded quantity negative before the next
// recount fixes it.
func (s *InventoryService) AdjustStock(ctx context.Context, userID uuid.UUID, req AdjustStockRequest) (*TransactionResponse, error) {
	if req.Quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Adjustment quantity cannot be zero")
	}

	var response TransactionResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ok, err := repos.Products().ExistsForUser(ctx, userID, req.ProductID)
		if err != nil {
			return err
		}
		if !ok {
			return shared.ErrNotFound
		}

		ledger := inventory.NewLedger(repos.Stock(), repos.LedgerEntries())
		tx, err := ledger.Apply(ctx, userID, inventory.Movement{
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			Type:      inventory.TransactionTypeAdjustment,
			Note:      req.Note,
		})
		if err != nil {
			return err
		}
		response = ToTransactionResponse(tx)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.Quantity.IsNegative() {
		s.alerter.ProductBelowMinimum(ctx, userID, req.ProductID)
	}
	return &response, nil
}

// RecordLoss writes off lost or damaged goods: stock decreases by the given
// positive quantity and a LOSS ledger row records it.
func (s *InventoryService) RecordLoss(ctx context.Context, userID uuid.UUID, req RecordLossRequest) (*TransactionResponse, error) {
	if !req.Quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Loss quantity must be positive")
	}

	var response TransactionResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ok, err := repos.Products().ExistsForUser(ctx, userID, req.ProductID)
		if err != nil {
			return err
		}
		if !ok {
			return shared.ErrNotFound
		}

		ledger := inventory.NewLedger(repos.Stock(), repos.LedgerEntries())
		tx, err := ledger.Apply(ctx, userID, inventory.Movement{
			ProductID: req.ProductID,
			Quantity:  req.Quantity.Neg(),
			Type:      inventory.TransactionTypeLoss,
			Note:      req.Note,
		})
		if err != nil {
			return err
		}
		response = ToTransactionResponse(tx)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.alerter.ProductBelowMinimum(ctx, userID, req.ProductID)
	return &response, nil
}

// GetTransaction retrieves a single ledger row by ID
func (s *InventoryService) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*TransactionResponse, error) {
	var response TransactionResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		tx, err := repos.LedgerEntries().FindByIDForUser(ctx, userID, id)
		if err != nil {
			return err
		}
		response = ToTransactionResponse(tx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ListTransactions retrieves ledger rows with filtering and pagination
func (s *InventoryService) ListTransactions(ctx context.Context, userID uuid.UUID, filter TransactionListFilter, page shared.Filter) (*shared.Paginated[TransactionResponse], error) {
	if page.Page <= 0 {
		page.Page = 1
	}
	if page.PageSize <= 0 {
		page.PageSize = 20
	}

	domainFilter := inventory.TransactionFilter{
		ProductID: filter.ProductID,
		Type:      filter.Type,
		From:      filter.From,
		To:        filter.To,
	}

	var result shared.Paginated[TransactionResponse]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		rows, err := repos.LedgerEntries().FindAllForUser(ctx, userID, domainFilter, page)
		if err != nil {
			return err
		}
		total, err := repos.LedgerEntries().CountForUser(ctx, userID, domainFilter)
		if err != nil {
			return err
		}

		responses := make([]TransactionResponse, 0, len(rows))
		for i := range rows {
			responses = append(responses, ToTransactionResponse(&rows[i]))
		}
		result = shared.NewPaginated(responses, total, page.Page, page.PageSize)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// StockSummary reports a product's current stock position together with its
// latest ledger movement.
func (s *InventoryService) StockSummary(ctx context.Context, userID, productID uuid.UUID) (*StockSummaryResponse, error) {
	var response StockSummaryResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByIDForUser(ctx, userID, productID)
		if err != nil {
			return err
		}

		response = StockSummaryResponse{
			ProductID:    product.ID,
			ProductCode:  product.Code,
			ProductName:  product.Name,
			Unit:         product.Unit,
			Quantity:     product.Quantity,
			MinStock:     product.MinStock,
			BelowMinimum: product.IsBelowMinimum(),
		}

		rows, err := repos.LedgerEntries().FindByProduct(ctx, userID, productID, shared.Filter{Page: 1, PageSize: 1})
		if err != nil {
			return err
		}
		if len(rows) > 0 {
			last := ToTransactionResponse(&rows[0])
			response.LastMovement = &last
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ProductHistory retrieves the ledger rows for one product, newest first.
func (s *InventoryService) ProductHistory(ctx context.Context, userID, productID uuid.UUID, page shared.Filter) ([]TransactionResponse, error) {
	if page.Page <= 0 {
		page.Page = 1
	}
	if page.PageSize <= 0 {
		page.PageSize = 20
	}

	var responses []TransactionResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ok, err := repos.Products().ExistsForUser(ctx, userID, productID)
		if err != nil {
			return err
		}
		if !ok {
			return shared.ErrNotFound
		}

		rows, err := repos.LedgerEntries().FindByProduct(ctx, userID, productID, page)
		if err != nil {
			return err
		}
		responses = make([]TransactionResponse, 0, len(rows))
		for i := range rows {
			responses = append(responses, ToTransactionResponse(&rows[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}
