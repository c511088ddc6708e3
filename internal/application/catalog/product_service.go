package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/catalog"
	"github.com/stockbook/backend/internal/domain/shared"
)

// ProductService handles product catalog operations. Stock never changes
// here; the quantity column belongs to the inventory and trade flows.
type ProductService struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository, categories catalog.CategoryRepository) *ProductService {
	return &ProductService{products: products, categories: categories}
}

// Create creates a product. Codes are unique per user.
func (s *ProductService) Create(ctx context.Context, userID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	existing, err := s.products.FindByCodeForUser(ctx, userID, req.Code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_CODE", "A product with this code already exists")
	}

	product, err := catalog.NewProduct(userID, req.Code, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if err := s.applyOptionalFields(ctx, userID, product, req.CategoryID, req.UnitCost, req.UnitPrice, req.MinStock); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Update updates a product's descriptive fields, prices, and thresholds.
func (s *ProductService) Update(ctx context.Context, userID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByIDForUser(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.applyOptionalFields(ctx, userID, product, req.CategoryID, req.UnitCost, req.UnitPrice, req.MinStock); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, userID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByIDForUser(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with pagination
func (s *ProductService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	products, err := s.products.FindAllForUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.CountForUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes a product. Its ledger history stays behind as the audit
// trail.
func (s *ProductService) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	return s.products.DeleteForUser(ctx, userID, productID)
}

func (s *ProductService) applyOptionalFields(ctx context.Context, userID uuid.UUID, product *catalog.Product, categoryID *uuid.UUID, unitCost, unitPrice, minStock *decimal.Decimal) error {
	if categoryID != nil {
		if _, err := s.categories.FindByIDForUser(ctx, userID, *categoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("CATEGORY_NOT_FOUND", "Category does not exist")
			}
			return err
		}
		product.SetCategory(*categoryID)
	}
	if unitCost != nil || unitPrice != nil {
		cost := product.UnitCost
		price := product.UnitPrice
		if unitCost != nil {
			cost = *unitCost
		}
		if unitPrice != nil {
			price = *unitPrice
		}
		if err := product.SetPrices(cost, price); err != nil {
			return err
		}
	}
	if minStock != nil {
		if err := product.SetMinStock(*minStock); err != nil {
			return err
		}
	}
	return nil
}
