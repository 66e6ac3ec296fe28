package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quickbill/billing-api/internal/application/service"
	"github.com/quickbill/billing-api/internal/presentation/http/dto/request"
	"github.com/quickbill/billing-api/internal/presentation/http/dto/response"
	"github.com/quickbill/billing-api/pkg/pagination"
)

// CustomerHandler handles customer catalog HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers with page-based pagination
func (h *CustomerHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	result, err := h.customerService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Search returns customer suggestions for the invoice form
func (h *CustomerHandler) Search(c *gin.Context) {
	results, err := h.customerService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customers retrieved successfully", results)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), &service.CustomerInput{
		Name:    req.Name,
		Address: req.Address,
		GSTIN:   req.GSTIN,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), id, &service.CustomerInput{
		Name:    req.Name,
		Address: req.Address,
		GSTIN:   req.GSTIN,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
