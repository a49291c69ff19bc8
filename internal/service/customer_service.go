package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"bizpos/internal/dto"
	"bizpos/internal/model"
	"bizpos/internal/repository"
)

// CustomerService keeps the contact book attached to sales.
type CustomerService struct {
	customers repository.CustomerRepository
	sales     repository.SaleRepository
	log       zerolog.Logger
}

func NewCustomerService(
	customers repository.CustomerRepository,
	sales repository.SaleRepository,
	log zerolog.Logger,
) *CustomerService {
	return &CustomerService{customers: customers, sales: sales, log: log}
}

func (s *CustomerService) Create(ctx context.Context, req dto.CustomerRequest) (*dto.CustomerResponse, error) {
	c := &model.Customer{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Notes:       req.Notes,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

// Get returns the contact card together with the purchase history.
func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*dto.CustomerDetailResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	sales, err := s.sales.ListByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &dto.CustomerDetailResponse{CustomerResponse: toCustomerResponse(c)}
	detail.Sales = make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		detail.Sales = append(detail.Sales, toSaleResponse(&sales[i]))
	}
	return detail, nil
}

func (s *CustomerService) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, toCustomerResponse(&customers[i]))
	}
	return out, nil
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req dto.CustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	c.FirstName = req.FirstName
	c.LastName = req.LastName
	c.Email = req.Email
	c.PhoneNumber = req.PhoneNumber
	c.Address = req.Address
	c.Notes = req.Notes
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

func toCustomerResponse(c *model.Customer) dto.CustomerResponse {
	resp := dto.CustomerResponse{
		ID:          c.ID.String(),
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		FullName:    c.FullName(),
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
		Notes:       c.Notes,
	}
	if c.LastPurchase != nil {
		t := c.LastPurchase.Format(time.RFC3339)
		resp.LastPurchase = &t
	}
	return resp
}
