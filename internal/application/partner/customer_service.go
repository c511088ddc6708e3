package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/partner"
	"github.com/stockbook/backend/internal/domain/shared"
)

// CustomerService handles customer operations
type CustomerService struct {
	customers partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customers partner.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// Create creates a customer
func (s *CustomerService) Create(ctx context.Context, userID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(userID, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Email != "" || req.Phone != "" || req.Address != "" {
		if err := customer.Update(req.Name, req.Email, req.Phone, req.Address); err != nil {
			return nil, err
		}
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// Update updates a customer's contact information
func (s *CustomerService) Update(ctx context.Context, userID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customers.FindByIDForUser(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}
	if err := customer.Update(req.Name, req.Email, req.Phone, req.Address); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, userID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customers.FindByIDForUser(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers for a user, paginated
func (s *CustomerService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[CustomerResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	customers, err := s.customers.FindAllForUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customers.CountForUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, ToCustomerResponse(&customers[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes a customer. Orders already placed keep their customer
// reference and remain readable.
func (s *CustomerService) Delete(ctx context.Context, userID, customerID uuid.UUID) error {
	return s.customers.DeleteForUser(ctx, userID, customerID)
}
