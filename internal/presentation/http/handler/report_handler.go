package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quickbill/billing-api/internal/application/service"
	"github.com/quickbill/billing-api/internal/presentation/http/dto/response"
)

// ReportHandler handles report and summary HTTP requests
type ReportHandler struct {
	reportService  *service.ReportService
	summaryService *service.SummaryService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, summaryService *service.SummaryService) *ReportHandler {
	return &ReportHandler{
		reportService:  reportService,
		summaryService: summaryService,
	}
}

// Summary returns billing totals and top products/customers
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.summaryService.GetSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Summary retrieved", summary)
}

// InvoicesCSV streams the invoice history as a CSV download
func (h *ReportHandler) InvoicesCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="invoices.csv"`)
	c.Status(http.StatusOK)

	if err := h.reportService.WriteInvoicesCSV(c.Request.Context(), c.Writer); err != nil {
		// Headers are already sent; record the error for the request log
		_ = c.Error(err)
	}
}
