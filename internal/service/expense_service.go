package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"bizpos/internal/dto"
	"bizpos/internal/model"
	"bizpos/internal/repository"
)

// ExpenseService records outgoing costs and their categories.
type ExpenseService struct {
	expenses repository.ExpenseRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewExpenseService(expenses repository.ExpenseRepository, log zerolog.Logger) *ExpenseService {
	return &ExpenseService{expenses: expenses, log: log, now: time.Now}
}

func (s *ExpenseService) CreateCategory(ctx context.Context, req dto.ExpenseCategoryRequest) (*dto.ExpenseCategoryResponse, error) {
	c := &model.ExpenseCategory{Name: req.Name, Description: req.Description}
	if err := s.expenses.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return &dto.ExpenseCategoryResponse{ID: c.ID.String(), Name: c.Name, Description: c.Description}, nil
}

func (s *ExpenseService) ListCategories(ctx context.Context) ([]dto.ExpenseCategoryResponse, error) {
	categories, err := s.expenses.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseCategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.ExpenseCategoryResponse{ID: c.ID.String(), Name: c.Name, Description: c.Description})
	}
	return out, nil
}

// DeleteCategory fails with a conflict while expenses still reference
// the category.
func (s *ExpenseService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.expenses.DeleteCategory(ctx, id); err != nil {
		return ErrConflict
	}
	return nil
}

func (s *ExpenseService) Create(ctx context.Context, recordedBy uuid.UUID, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: category_id", ErrInvalid)
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalid)
	}
	date := s.now()
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date", ErrInvalid)
		}
	}
	e := &model.Expense{
		CategoryID:   categoryID,
		Amount:       req.Amount,
		Date:         date,
		Description:  req.Description,
		RecordedByID: &recordedBy,
	}
	if err := s.expenses.Create(ctx, e); err != nil {
		return nil, err
	}
	s.log.Info().Str("expense_id", e.ID.String()).Str("amount", e.Amount.String()).Msg("expense recorded")
	resp := toExpenseResponse(e)
	return &resp, nil
}

// List applies the category and date filters. A malformed date bound is
// not fatal: the bound is skipped and a warning rides along in the
// response.
func (s *ExpenseService) List(ctx context.Context, filter dto.ExpenseFilter) (*dto.ExpenseListResponse, error) {
	var warnings []string
	var start, end *time.Time
	if filter.StartDate != "" {
		t, err := time.Parse("2006-01-02", filter.StartDate)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid start_date %q ignored", filter.StartDate))
		} else {
			start = &t
		}
	}
	if filter.EndDate != "" {
		t, err := time.Parse("2006-01-02", filter.EndDate)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid end_date %q ignored", filter.EndDate))
		} else {
			end = &t
		}
	}

	expenses, total, err := s.expenses.List(ctx, filter.CategoryID, start, end, filter.Page, filter.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, toExpenseResponse(&expenses[i]))
	}
	return &dto.ExpenseListResponse{
		Data:     out,
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.Limit,
		Warnings: warnings,
	}, nil
}

func toExpenseResponse(e *model.Expense) dto.ExpenseResponse {
	resp := dto.ExpenseResponse{
		ID:          e.ID.String(),
		CategoryID:  e.CategoryID.String(),
		Amount:      e.Amount,
		Date:        e.Date.Format("2006-01-02"),
		Description: e.Description,
	}
	if e.Category != nil {
		resp.Category = e.Category.Name
	}
	if e.RecordedBy != nil {
		resp.RecordedBy = e.RecordedBy.Name
	}
	return resp
}
