package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bizpos/internal/dto"
	"bizpos/internal/service"
)

type SupplierHandler struct {
	suppliers *service.SupplierService
	log       zerolog.Logger
}

func NewSupplierHandler(suppliers *service.SupplierService, log zerolog.Logger) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers, log: log}
}

func (h *SupplierHandler) Create(c *gin.Context) {
	var req dto.SupplierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.suppliers.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.suppliers.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SupplierHandler) List(c *gin.Context) {
	resp, err := h.suppliers.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.SupplierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.suppliers.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.suppliers.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
