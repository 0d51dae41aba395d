package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"wardrobe.backend/internal/domain/entities"
	"wardrobe.backend/internal/interfaces/http/response"
	"wardrobe.backend/internal/usecases"
	"wardrobe.backend/pkg/utils"
)

// ProductHandler serves the public catalog and admin product management
type ProductHandler struct {
	productUsecase *usecases.ProductUsecase
}

func NewProductHandler(productUsecase *usecases.ProductUsecase) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase}
}

// ListProducts lists the catalog
// GET /api/products?page=&limit=
func (h *ProductHandler) ListProducts(c *gin.Context) {
	pagination := utils.ParsePaginationQuery(c.Query("page"), c.Query("limit"))

	products, meta, err := h.productUsecase.List(c.Request.Context(), pagination)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"products":   products,
		"pagination": meta,
	})
}

// GET /api/products/featured
func (h *ProductHandler) ListFeatured(c *gin.Context) {
	products, err := h.productUsecase.Featured(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": products})
}

// GET /api/products/category/:category
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	products, err := h.productUsecase.ByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": products})
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.productUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": product})
}

// CreateProduct adds a product
// POST /api/admin/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var input entities.CreateProductInput
	if !bindJSON(c, &input) {
		return
	}

	product, err := h.productUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct changes product details
// PUT /api/admin/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input entities.ProductUpdate
	if !bindJSON(c, &input) {
		return
	}

	product, err := h.productUsecase.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": product})
}

// DELETE /api/admin/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.productUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Product deleted"})
}
