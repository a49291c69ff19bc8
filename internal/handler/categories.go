package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bizpos/internal/dto"
	"bizpos/internal/service"
)

type CategoryHandler struct {
	products *service.ProductService
	log      zerolog.Logger
}

func NewCategoryHandler(products *service.ProductService, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{products: products, log: log}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.products.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CategoryHandler) List(c *gin.Context) {
	resp, err := h.products.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.products.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.products.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
