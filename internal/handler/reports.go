package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bizpos/internal/dto"
	"bizpos/internal/service"
)

type ReportHandler struct {
	reports *service.ReportService
	log     zerolog.Logger
}

func NewReportHandler(reports *service.ReportService, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, log: log}
}

// Sales godoc
// @Summary Sales report for a named period
// @Tags reports
// @Produce json
// @Param period query string false "today|last_7_days|last_30_days|this_month|last_month|this_year|all_time|custom"
// @Param start query string false "YYYY-MM-DD (custom)"
// @Param end query string false "YYYY-MM-DD (custom)"
// @Success 200 {object} dto.SalesReportResponse
// @Router /v1/reports/sales [get]
func (h *ReportHandler) Sales(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.reports.SalesReport(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportHandler) Expenses(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.reports.ExpenseReport(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportHandler) Performance(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	resp, err := h.reports.PerformanceReport(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportSales streams the period's sales as a CSV download.
func (h *ReportHandler) ExportSales(c *gin.Context) {
	period := c.DefaultQuery("period", "all")
	filename := fmt.Sprintf("sales_%s_%s.csv", period, time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "text/csv")
	if err := h.reports.ExportSalesCSV(c.Request.Context(), period, c.Writer); err != nil {
		h.log.Error().Err(err).Msg("csv export failed")
		// Headers may already be out; nothing useful left to send.
		c.Abort()
	}
}

// LowStock lists products at or below reorder level and queues the
// alert email when any exist.
func (h *ReportHandler) LowStock(c *gin.Context) {
	resp, err := h.reports.LowStockReport(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
