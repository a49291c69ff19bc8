package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bizpos/internal/dto"
	"bizpos/internal/middleware"
	"bizpos/internal/service"
)

type ExpenseHandler struct {
	expenses *service.ExpenseService
	log      zerolog.Logger
}

func NewExpenseHandler(expenses *service.ExpenseService, log zerolog.Logger) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, log: log}
}

func (h *ExpenseHandler) CreateCategory(c *gin.Context) {
	var req dto.ExpenseCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.expenses.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ExpenseHandler) ListCategories(c *gin.Context) {
	resp, err := h.expenses.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteCategory returns 409 while expenses still reference it.
func (h *ExpenseHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.expenses.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.expenses.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ExpenseHandler) List(c *gin.Context) {
	var filter dto.ExpenseFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.expenses.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
