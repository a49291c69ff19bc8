package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bizpos/internal/dto"
	"bizpos/internal/service"
)

type CustomerHandler struct {
	customers *service.CustomerService
	log       zerolog.Logger
}

func NewCustomerHandler(customers *service.CustomerService, log zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{customers: customers, log: log}
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.customers.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get includes the customer's purchase history.
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.customers.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CustomerHandler) List(c *gin.Context) {
	resp, err := h.customers.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.CustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.customers.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
