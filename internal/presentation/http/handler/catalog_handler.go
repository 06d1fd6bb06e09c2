package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbuddy-api/internal/application/service"
	"github.com/sangkips/billbuddy-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billbuddy-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles the table and menu catalog
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Tables lists the dining tables
func (h *CatalogHandler) Tables(c *gin.Context) {
	response.OK(c, "Tables retrieved successfully", h.catalogService.Tables())
}

// Items lists the menu
func (h *CatalogHandler) Items(c *gin.Context) {
	response.OK(c, "Items retrieved successfully", h.catalogService.Items())
}

// SaveItem adds or replaces the item with the id in the path
func (h *CatalogHandler) SaveItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.SaveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.catalogService.SaveItem(c.Request.Context(), service.MenuItem{
		ID:        id,
		Name:      req.Name,
		Price:     req.Price,
		HalfPrice: req.HalfPrice,
		Category:  req.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item saved successfully", item)
}

// SaveTable adds or renames the table with the id in the path
func (h *CatalogHandler) SaveTable(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.SaveTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	table, err := h.catalogService.SaveTable(c.Request.Context(), service.TableInfo{ID: id, Name: req.Name})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table saved successfully", table)
}
