package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bizpos/internal/dto"
	"bizpos/internal/middleware"
	"bizpos/internal/service"
)

type AdjustmentHandler struct {
	adjustments *service.AdjustmentService
	log         zerolog.Logger
}

func NewAdjustmentHandler(adjustments *service.AdjustmentService, log zerolog.Logger) *AdjustmentHandler {
	return &AdjustmentHandler{adjustments: adjustments, log: log}
}

func (h *AdjustmentHandler) Create(c *gin.Context) {
	var req dto.CreateAdjustmentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.adjustments.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AdjustmentHandler) List(c *gin.Context) {
	resp, err := h.adjustments.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
