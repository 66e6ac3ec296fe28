package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/quickbill/billing-api/internal/application/service"
	"github.com/quickbill/billing-api/internal/presentation/http/dto/request"
	"github.com/quickbill/billing-api/internal/presentation/http/dto/response"
)

// ProfileHandler handles business profile HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get returns the account's business profile
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Profile retrieved", profile)
}

// Update replaces the editable profile fields
func (h *ProfileHandler) Update(c *gin.Context) {
	var req request.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), &service.ProfileInput{
		BusinessName:       req.BusinessName,
		Address:            req.Address,
		GSTIN:              req.GSTIN,
		Phone:              req.Phone,
		Email:              req.Email,
		State:              req.State,
		Currency:           req.Currency,
		CurrencySymbol:     req.CurrencySymbol,
		TaxEnabled:         req.TaxEnabled,
		DefaultTaxRate:     req.DefaultTaxRate,
		IsTaxInclusive:     req.IsTaxInclusive,
		InvoicePrefix:      req.InvoicePrefix,
		AvailableUnits:     req.AvailableUnits,
		SignatureTitle:     req.SignatureTitle,
		TermsAndConditions: req.TermsAndConditions,
		BankName:           req.BankName,
		BankAccountNumber:  req.BankAccountNumber,
		BankIFSC:           req.BankIFSC,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile updated", profile)
}
