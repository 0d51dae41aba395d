package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"wardrobe.backend/internal/domain/entities"
	domainerrors "wardrobe.backend/internal/domain/errors"
	"wardrobe.backend/internal/interfaces/http/response"
	"wardrobe.backend/internal/usecases"
	"wardrobe.backend/pkg/utils"
)

// InventoryHandler handles stock adjustments and the stock ledger
type InventoryHandler struct {
	inventoryUsecase *usecases.InventoryUsecase
}

func NewInventoryHandler(inventoryUsecase *usecases.InventoryUsecase) *InventoryHandler {
	return &InventoryHandler{inventoryUsecase: inventoryUsecase}
}

// AdjustStock applies a signed quantity to a product
// PUT /api/inventory/stock/:productId
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	var input entities.AdjustStockInput
	if !bindJSON(c, &input) {
		return
	}

	product, err := h.inventoryUsecase.AdjustStock(c.Request.Context(), productID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, product)
}

// GetLowStock lists products at or below their threshold
// GET /api/inventory/low-stock?threshold=
func (h *InventoryHandler) GetLowStock(c *gin.Context) {
	var threshold *int
	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			response.Error(c, domainerrors.BadRequest("threshold must be a non-negative integer"))
			return
		}
		threshold = &v
	}

	products, err := h.inventoryUsecase.GetLowStockProducts(c.Request.Context(), threshold)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": products})
}

// GetLogs lists ledger entries newest first
// GET /api/inventory/logs?productId=
func (h *InventoryHandler) GetLogs(c *gin.Context) {
	var productID *uuid.UUID
	if raw := c.Query("productId"); raw != "" {
		id, ok := utils.ParseID(raw)
		if !ok {
			response.Error(c, domainerrors.BadRequest("Invalid productId"))
			return
		}
		productID = &id
	}

	logs, err := h.inventoryUsecase.GetLogs(c.Request.Context(), productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"logs": logs})
}
