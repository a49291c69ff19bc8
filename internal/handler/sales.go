package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bizpos/internal/dto"
	"bizpos/internal/infra"
	"bizpos/internal/middleware"
	"bizpos/internal/repository"
	"bizpos/internal/service"
)

type SaleHandler struct {
	sales   *service.SaleService
	repo    repository.SaleRepository
	receipt *infra.ReceiptPDF
	log     zerolog.Logger
}

func NewSaleHandler(
	sales *service.SaleService,
	repo repository.SaleRepository,
	receipt *infra.ReceiptPDF,
	log zerolog.Logger,
) *SaleHandler {
	return &SaleHandler{sales: sales, repo: repo, receipt: receipt, log: log}
}

// Record godoc
// @Summary Record a sale
// @Description Creates the sale, decrements stock and stamps the customer, atomically.
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body dto.RecordSaleRequest true "Cart"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} apierror.LineError
// @Router /v1/sales [post]
func (h *SaleHandler) Record(c *gin.Context) {
	var req dto.RecordSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.sales.Record(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.sales.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SaleHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.sales.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMine returns the caller's own sales.
func (h *SaleHandler) ListMine(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.sales.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Void reverses a sale and restores its stock.
func (h *SaleHandler) Void(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.sales.Void(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Receipt returns the JSON receipt for a sale.
func (h *SaleHandler) Receipt(c *gin.Context) {
	h.Get(c)
}

// ReceiptPDF streams the printable ticket.
func (h *SaleHandler) ReceiptPDF(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	sale, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, service.ErrNotFound)
		return
	}
	pdf, err := h.receipt.Render(sale)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=receipt-%s.pdf", id.String()[:8]))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
