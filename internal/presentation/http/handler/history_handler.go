package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbuddy-api/internal/application/service"
	"github.com/sangkips/billbuddy-api/internal/domain/repository"
	"github.com/sangkips/billbuddy-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billbuddy-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billbuddy-api/pkg/pagination"
)

// HistoryHandler serves the read-only history, dues and analytics screens
type HistoryHandler struct {
	historyService *service.HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// History lists recent bills, newest first
func (h *HistoryHandler) History(c *gin.Context) {
	var req request.HistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid limit")
		return
	}

	limit := req.Limit
	if limit == 0 {
		limit = service.DefaultHistoryLimit
	}

	entries, err := h.historyService.LoadHistory(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "History retrieved successfully", entries)
}

// OrderItems lists the frozen lines of an order
func (h *HistoryHandler) OrderItems(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.historyService.LoadOrderItems(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order items retrieved successfully", items)
}

// Bill returns a bill with its order and items
func (h *HistoryHandler) Bill(c *gin.Context) {
	billID, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.historyService.GetBill(c.Request.Context(), billID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", detail)
}

// Dues lists dues, optionally only the unsettled ones
func (h *HistoryHandler) Dues(c *gin.Context) {
	var req request.ListDuesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.DueFilterParams{
		Pagination:      &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage},
		OutstandingOnly: req.Outstanding,
	}
	params.Pagination.Validate()

	result, err := h.historyService.ListDues(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Dues retrieved successfully", result)
}

// Analytics returns today's and this week's figures
func (h *HistoryHandler) Analytics(c *gin.Context) {
	analytics, err := h.historyService.LoadAnalytics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Analytics retrieved successfully", analytics)
}
