package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"bizpos/internal/dto"
	"bizpos/internal/middleware"
	"bizpos/internal/service"
)

// barcodeCacheTTL keeps scan lookups hot without serving stale stock
// for long.
const barcodeCacheTTL = 30 * time.Second

type ProductHandler struct {
	products    *service.ProductService
	adjustments *service.AdjustmentService
	rdb         *redis.Client
	log         zerolog.Logger
}

func NewProductHandler(
	products *service.ProductService,
	adjustments *service.AdjustmentService,
	rdb *redis.Client,
	log zerolog.Logger,
) *ProductHandler {
	return &ProductHandler{products: products, adjustments: adjustments, rdb: rdb, log: log}
}

// Create godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Product"
// @Success 201 {object} dto.ProductResponse
// @Router /v1/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deactivate soft-deletes the product.
func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.products.Deactivate(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) Reactivate(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.products.Reactivate(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddStock is the restock shortcut used from the product page.
func (h *ProductHandler) AddStock(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.AddStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.adjustments.AddStock(c.Request.Context(), claims.UserID, id, req.Quantity, req.Notes)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LookupBarcode serves the POS scanner. Hits are cached in Redis for a
// short TTL; the cache is best effort and never fails a lookup.
func (h *ProductHandler) LookupBarcode(c *gin.Context) {
	code := c.Param("code")
	ctx := c.Request.Context()
	cacheKey := "bizpos:barcode:" + code

	if cached, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
		var resp dto.BarcodeLookupResponse
		if json.Unmarshal([]byte(cached), &resp) == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	resp, err := h.products.LookupByBarcode(ctx, code)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if payload, err := json.Marshal(resp); err == nil {
		if err := h.rdb.Set(ctx, cacheKey, payload, barcodeCacheTTL).Err(); err != nil {
			h.log.Debug().Err(err).Msg("barcode cache write failed")
		}
	}
	c.JSON(http.StatusOK, resp)
}
