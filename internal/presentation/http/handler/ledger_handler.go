package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbuddy-api/internal/application/service"
	"github.com/sangkips/billbuddy-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billbuddy-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// LedgerHandler exposes the in-memory table orders
type LedgerHandler struct {
	ledger  *service.Ledger
	catalog *service.CatalogService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledger *service.Ledger, catalog *service.CatalogService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, catalog: catalog}
}

// Get returns a table's lines and totals
func (h *LedgerHandler) Get(c *gin.Context) {
	tableID, ok := pathID(c, "table_id")
	if !ok {
		return
	}
	response.OK(c, "Order retrieved successfully", h.ledger.Snapshot(tableID))
}

// ListOpen returns every table that currently has lines
func (h *LedgerHandler) ListOpen(c *gin.Context) {
	response.OK(c, "Open tables retrieved successfully", h.ledger.OpenTables())
}

// AddLine adds delta units of a catalog item, one unit when delta is omitted
func (h *LedgerHandler) AddLine(c *gin.Context) {
	tableID, ok := pathID(c, "table_id")
	if !ok {
		return
	}

	var req request.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.catalog.Item(req.ItemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	delta := decimal.NewFromInt(1)
	if req.Delta != nil {
		delta = *req.Delta
	}
	h.ledger.AddQuantity(tableID, item, delta)

	response.OK(c, "Order updated", h.ledger.Snapshot(tableID))
}

// RemoveLine deletes an item's line
func (h *LedgerHandler) RemoveLine(c *gin.Context) {
	tableID, ok := pathID(c, "table_id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "item_id")
	if !ok {
		return
	}

	h.ledger.RemoveItem(tableID, itemID)
	response.OK(c, "Order updated", h.ledger.Snapshot(tableID))
}

// SetQuantity overwrites an existing line's quantity
func (h *LedgerHandler) SetQuantity(c *gin.Context) {
	tableID, ok := pathID(c, "table_id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "item_id")
	if !ok {
		return
	}

	var req request.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	h.ledger.SetQuantity(tableID, itemID, req.Quantity)
	response.OK(c, "Order updated", h.ledger.Snapshot(tableID))
}

// SetAdjustments overwrites the tax and discount percentages
func (h *LedgerHandler) SetAdjustments(c *gin.Context) {
	tableID, ok := pathID(c, "table_id")
	if !ok {
		return
	}

	var req request.AdjustmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	h.ledger.SetBillAdjustments(tableID, req.TaxPct, req.DiscountPct)
	response.OK(c, "Order updated", h.ledger.Snapshot(tableID))
}

// Clear discards a table's order without billing it
func (h *LedgerHandler) Clear(c *gin.Context) {
	tableID, ok := pathID(c, "table_id")
	if !ok {
		return
	}

	h.ledger.ClearTable(tableID)
	response.OK(c, "Order cleared", h.ledger.Snapshot(tableID))
}
