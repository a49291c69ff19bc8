package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bizpos/internal/dto"
	"bizpos/internal/middleware"
	"bizpos/internal/service"
)

type PurchaseOrderHandler struct {
	purchases *service.PurchaseService
	log       zerolog.Logger
}

func NewPurchaseOrderHandler(purchases *service.PurchaseService, log zerolog.Logger) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{purchases: purchases, log: log}
}

func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.purchases.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.purchases.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PurchaseOrderHandler) List(c *gin.Context) {
	resp, err := h.purchases.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PurchaseOrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePurchaseOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.purchases.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Receive godoc
// @Summary Receive a purchase order into stock
// @Description Idempotent: a repeat call reports already_received and leaves stock untouched.
// @Tags purchase-orders
// @Produce json
// @Success 200 {object} dto.ReceiveResponse
// @Router /v1/purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.purchases.Receive(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
