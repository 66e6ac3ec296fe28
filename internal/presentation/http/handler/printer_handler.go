package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quickbill/billing-api/internal/application/service"
	"github.com/quickbill/billing-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles thermal printing HTTP requests
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// Status returns printer configuration and connectivity
func (h *PrinterHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status", h.printerService.GetStatus())
}

// TestPrint sends a test page to the printer
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	receipt, err := h.printerService.TestPrint()
	if err != nil {
		response.SuccessWithWarning(c, 200, "Test receipt rendered", err.Error(), receipt)
		return
	}
	response.OK(c, "Test page printed", receipt)
}

// PrintInvoice prints a stored invoice as a thermal receipt. The rendered
// receipt is returned so clients can fall back to browser printing.
func (h *PrinterHandler) PrintInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	receipt, err := h.printerService.PrintInvoice(c.Request.Context(), id)
	if err != nil {
		if receipt != nil {
			response.SuccessWithWarning(c, 200, "Receipt rendered", err.Error(), receipt)
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice printed", receipt)
}
