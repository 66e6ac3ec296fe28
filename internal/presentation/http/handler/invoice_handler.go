package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quickbill/billing-api/internal/application/service"
	"github.com/quickbill/billing-api/internal/presentation/http/dto/request"
	"github.com/quickbill/billing-api/internal/presentation/http/dto/response"
	"github.com/quickbill/billing-api/pkg/format"
	"github.com/quickbill/billing-api/pkg/pagination"
)

// InvoiceHandler handles invoice lifecycle HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	profileService *service.ProfileService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, profileService *service.ProfileService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		profileService: profileService,
	}
}

// Save commits a draft invoice. Totals are recomputed server-side; the
// response carries a warning when catalog sync failed after the commit.
func (h *InvoiceHandler) Save(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.SaveInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	draft, err := h.draftFromRequest(c, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.invoiceService.Save(c.Request.Context(), *accountID, draft)
	if err != nil {
		response.Error(c, err)
		return
	}

	if out.SyncWarning != "" {
		response.SuccessWithWarning(c, 201, "Invoice saved successfully", out.SyncWarning, out.Invoice)
		return
	}
	response.Created(c, "Invoice saved successfully", out.Invoice)
}

// List handles the invoice history, newest first
func (h *InvoiceHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	result, err := h.invoiceService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// GetLast returns the most recently committed invoice for draft prefill
func (h *InvoiceHandler) GetLast(c *gin.Context) {
	invoice, err := h.invoiceService.GetLast(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if invoice == nil {
		response.NotFound(c, "No invoices yet")
		return
	}
	response.OK(c, "Last invoice retrieved", invoice)
}

// Get returns the printable payload for a committed invoice: the stored
// snapshot as saved, the current profile for the letterhead, and the grand
// total spelled out in words. Nothing is recomputed on reprint.
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	profile, err := h.profileService.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved", gin.H{
		"invoice":         invoice,
		"profile":         profile,
		"amount_in_words": format.AmountInWords(invoice.GrandTotal),
	})
}

// Reset deletes the whole invoice history and restarts numbering at 1
func (h *InvoiceHandler) Reset(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.invoiceService.ResetHistory(c.Request.Context(), *accountID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// draftFromRequest converts the wire form of a draft into the domain draft,
// falling back to the profile's tax mode when the request omits the flags
func (h *InvoiceHandler) draftFromRequest(c *gin.Context, req *request.SaveInvoiceRequest) (*service.InvoiceDraft, error) {
	profile, err := h.profileService.Get(c.Request.Context())
	if err != nil {
		return nil, err
	}

	draft := &service.InvoiceDraft{
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		CustomerGSTIN:   req.CustomerGSTIN,
		CustomerPhone:   req.CustomerPhone,
		TaxEnabled:      profile.TaxEnabled,
		IsTaxInclusive:  profile.IsTaxInclusive,
		CurrencySymbol:  profile.CurrencySymbol,
	}
	if req.TaxEnabled != nil {
		draft.TaxEnabled = *req.TaxEnabled
	}
	if req.IsTaxInclusive != nil {
		draft.IsTaxInclusive = *req.IsTaxInclusive
	}
	if req.Date != "" {
		if date, err := time.Parse("2006-01-02", req.Date); err == nil {
			draft.IssueDate = date
		}
	}

	for _, item := range req.Items {
		productID := item.ProductID
		unit := item.Unit
		if unit == "" {
			unit = "unit"
		}
		if productID == "" {
			draft.AddCustomItem(item.Name, unit, toPaise(item.Price), item.Quantity, item.TaxRate)
			continue
		}
		draft.Items = append(draft.Items, service.DraftItem{
			ID:        uuid.New().String(),
			ProductID: productID,
			Name:      item.Name,
			Unit:      unit,
			Quantity:  item.Quantity,
			Price:     toPaise(item.Price),
			TaxRate:   item.TaxRate,
		})
	}

	return draft, nil
}
