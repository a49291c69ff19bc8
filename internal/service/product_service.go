package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"bizpos/internal/dto"
	"bizpos/internal/model"
	"bizpos/internal/repository"
)

// ProductService covers the catalog: products and their categories.
type ProductService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	log        zerolog.Logger
}

func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	log zerolog.Logger,
) *ProductService {
	return &ProductService{products: products, categories: categories, log: log}
}

func (s *ProductService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalid)
	}
	var categoryID *uuid.UUID
	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("%w: category_id", ErrInvalid)
		}
		if _, err := s.categories.FindByID(ctx, id); err != nil {
			return nil, notFound(err)
		}
		categoryID = &id
	}
	reorder := req.ReorderLevel
	if reorder == 0 {
		reorder = 10
	}
	p := &model.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		CategoryID:    categoryID,
		StockQuantity: req.StockQuantity,
		ReorderLevel:  reorder,
		Barcode:       req.Barcode,
		IsActive:      true,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info().Str("product_id", p.ID.String()).Str("name", p.Name).Msg("product created")
	resp := toProductResponse(p)
	return &resp, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	resp := toProductResponse(p)
	return &resp, nil
}

func (s *ProductService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: out, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Update applies only the fields present in the request. Stock is not
// editable here: stock moves through sales, receiving and adjustments.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must not be negative", ErrInvalid)
		}
		p.Price = *req.Price
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("%w: category_id", ErrInvalid)
		}
		if _, err := s.categories.FindByID(ctx, cid); err != nil {
			return nil, notFound(err)
		}
		p.CategoryID = &cid
	}
	if req.ReorderLevel != nil {
		p.ReorderLevel = *req.ReorderLevel
	}
	if req.Barcode != nil {
		p.Barcode = req.Barcode
	}
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// Deactivate soft-deletes: the product disappears from the POS but its
// sale history stays intact.
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return notFound(err)
	}
	return s.products.SoftDelete(ctx, id)
}

func (s *ProductService) Reactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return notFound(err)
	}
	return s.products.Reactivate(ctx, id)
}

// LookupByBarcode serves the POS scanner: only active products with
// stock on hand resolve.
func (s *ProductService) LookupByBarcode(ctx context.Context, code string) (*dto.BarcodeLookupResponse, error) {
	p, err := s.products.FindByBarcode(ctx, code)
	if err != nil {
		return nil, notFound(err)
	}
	return &dto.BarcodeLookupResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Barcode:       code,
	}, nil
}

// ─── Categories ──────────────────────────────────────────────────────────────

func (s *ProductService) CreateCategory(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c := &model.Category{Name: req.Name, Description: req.Description}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID.String(), Name: c.Name, Description: c.Description}, nil
}

func (s *ProductService) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.CategoryResponse{ID: c.ID.String(), Name: c.Name, Description: c.Description})
	}
	return out, nil
}

func (s *ProductService) UpdateCategory(ctx context.Context, id uuid.UUID, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	c.Name = req.Name
	c.Description = req.Description
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID.String(), Name: c.Name, Description: c.Description}, nil
}

// DeleteCategory removes the category; products referencing it fall
// back to uncategorized (SET NULL).
func (s *ProductService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return notFound(err)
	}
	return s.categories.Delete(ctx, id)
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		ReorderLevel:  p.ReorderLevel,
		StockStatus:   p.StockStatus(),
		Barcode:       p.Barcode,
		IsActive:      p.IsActive,
	}
	if p.CategoryID != nil {
		id := p.CategoryID.String()
		resp.CategoryID = &id
	}
	if p.Category != nil {
		resp.CategoryName = &p.Category.Name
	}
	return resp
}
