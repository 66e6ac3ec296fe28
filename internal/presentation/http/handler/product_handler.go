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

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products with page-based pagination
func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	result, err := h.productService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Search returns ranked product suggestions for the invoice form
func (h *ProductHandler) Search(c *gin.Context) {
	results, err := h.productService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Products retrieved successfully", results)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &service.ProductInput{
		Name:    req.Name,
		Unit:    req.Unit,
		Price:   toPaise(req.Price),
		TaxRate: req.TaxRate,
		HSNCode: req.HSNCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, &service.ProductInput{
		Name:    req.Name,
		Unit:    req.Unit,
		Price:   toPaise(req.Price),
		TaxRate: req.TaxRate,
		HSNCode: req.HSNCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
