package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/partner"
	"github.com/stockbook/backend/internal/domain/shared"
)

// SupplierService handles supplier operations
type SupplierService struct {
	suppliers partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(suppliers partner.SupplierRepository) *SupplierService {
	return &SupplierService{suppliers: suppliers}
}

// Create creates a supplier
func (s *SupplierService) Create(ctx context.Context, userID uuid.UUID, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(userID, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Email != "" || req.Phone != "" || req.Address != "" {
		if err := supplier.Update(req.Name, req.Email, req.Phone, req.Address); err != nil {
			return nil, err
		}
	}
	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Update updates a supplier's contact information
func (s *SupplierService) Update(ctx context.Context, userID, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByIDForUser(ctx, userID, supplierID)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(req.Name, req.Email, req.Phone, req.Address); err != nil {
		return nil, err
	}
	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, userID, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByIDForUser(ctx, userID, supplierID)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers for a user, paginated
func (s *SupplierService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[SupplierResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	suppliers, err := s.suppliers.FindAllForUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.suppliers.CountForUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		responses = append(responses, ToSupplierResponse(&suppliers[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes a supplier. Purchase orders already recorded keep their
// supplier reference and remain readable.
func (s *SupplierService) Delete(ctx context.Context, userID, supplierID uuid.UUID) error {
	return s.suppliers.DeleteForUser(ctx, userID, supplierID)
}
