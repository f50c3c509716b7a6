package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medistore/backend/internal/application/catalog"
	"github.com/medistore/backend/internal/interfaces/http/dto"
)

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required,max=200"`
	Description   string   `json:"description" binding:"max=2000"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	OriginalPrice *float64 `json:"original_price" binding:"omitempty,gt=0"`
	ImageURL      string   `json:"image_url" binding:"omitempty,url"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name          string   `json:"name" binding:"required,max=200"`
	Description   string   `json:"description" binding:"max=2000"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	OriginalPrice *float64 `json:"original_price" binding:"omitempty,gt=0"`
	ImageURL      string   `json:"image_url" binding:"omitempty,url"`
	InStock       bool     `json:"in_stock"`
}

// ListProductsQuery represents the query parameters for listing products
type ListProductsQuery struct {
	Search      string `form:"search"`
	InStockOnly bool   `form:"in_stock"`
}

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	BaseHandler
	productService *catalog.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *catalog.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// List returns the product catalog, optionally filtered by search term or stock
func (h *ProductHandler) List(c *gin.Context) {
	var query ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	products, err := h.productService.List(c.Request.Context(), catalog.ListInput{
		Search:      query.Search,
		InStockOnly: query.InStockOnly,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// Get returns a single product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.Get(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Create adds a new product to the catalog
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.Create(c.Request.Context(), catalog.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         toDecimal(req.Price),
		OriginalPrice: toDecimalPtr(req.OriginalPrice),
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Update replaces a product's catalog fields
func (h *ProductHandler) Update(c *gin.Context) {
	var uriReq dto.IDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.Update(c.Request.Context(), catalog.UpdateProductInput{
		ProductID:     uuid.MustParse(uriReq.ID),
		Name:          req.Name,
		Description:   req.Description,
		Price:         toDecimal(req.Price),
		OriginalPrice: toDecimalPtr(req.OriginalPrice),
		ImageURL:      req.ImageURL,
		InStock:       req.InStock,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete removes a product from the catalog
func (h *ProductHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), uuid.MustParse(req.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
