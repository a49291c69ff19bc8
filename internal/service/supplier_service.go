package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"bizpos/internal/dto"
	"bizpos/internal/model"
	"bizpos/internal/repository"
)

type SupplierService struct {
	suppliers repository.SupplierRepository
	log       zerolog.Logger
}

func NewSupplierService(suppliers repository.SupplierRepository, log zerolog.Logger) *SupplierService {
	return &SupplierService{suppliers: suppliers, log: log}
}

func (s *SupplierService) Create(ctx context.Context, req dto.SupplierRequest) (*dto.SupplierResponse, error) {
	sup := &model.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		Address:       req.Address,
		Notes:         req.Notes,
	}
	if err := s.suppliers.Create(ctx, sup); err != nil {
		return nil, err
	}
	resp := toSupplierResponse(sup)
	return &resp, nil
}

func (s *SupplierService) Get(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error) {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	resp := toSupplierResponse(sup)
	return &resp, nil
}

func (s *SupplierService) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	suppliers, err := s.suppliers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		out = append(out, toSupplierResponse(&suppliers[i]))
	}
	return out, nil
}

func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req dto.SupplierRequest) (*dto.SupplierResponse, error) {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	sup.Name = req.Name
	sup.ContactPerson = req.ContactPerson
	sup.PhoneNumber = req.PhoneNumber
	sup.Email = req.Email
	sup.Address = req.Address
	sup.Notes = req.Notes
	if err := s.suppliers.Update(ctx, sup); err != nil {
		return nil, err
	}
	resp := toSupplierResponse(sup)
	return &resp, nil
}

// Delete removes a supplier; orders referencing it block the delete
// (RESTRICT), surfaced to the caller as a conflict.
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.suppliers.FindByID(ctx, id); err != nil {
		return notFound(err)
	}
	if err := s.suppliers.Delete(ctx, id); err != nil {
		return ErrConflict
	}
	return nil
}

func toSupplierResponse(s *model.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:            s.ID.String(),
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		PhoneNumber:   s.PhoneNumber,
		Email:         s.Email,
		Address:       s.Address,
		Notes:         s.Notes,
	}
}
