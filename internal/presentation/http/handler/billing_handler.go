package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbuddy-api/internal/application/service"
	"github.com/sangkips/billbuddy-api/internal/domain/enum"
	"github.com/sangkips/billbuddy-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billbuddy-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billbuddy-api/internal/presentation/http/middleware"
)

// BillingHandler turns table orders into durable bills
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// FinalizePaid bills the table's current order as paid
func (h *BillingHandler) FinalizePaid(c *gin.Context) {
	tableID, ok := pathID(c, "table_id")
	if !ok {
		return
	}

	result, err := h.billingService.FinalizeTable(c.Request.Context(), tableID, middleware.GetWaiterID(c), enum.BillStatusPaid, nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill paid", result)
}

// FinalizeDue bills the table's current order as due, recording the customer
func (h *BillingHandler) FinalizeDue(c *gin.Context) {
	tableID, ok := pathID(c, "table_id")
	if !ok {
		return
	}

	var req request.FinalizeDueRequest
	// the customer details are optional, so is the body
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer := &service.DueCustomer{Name: req.Name, Phone: req.Phone, PhotoURI: req.PhotoURI}
	result, err := h.billingService.FinalizeTable(c.Request.Context(), tableID, middleware.GetWaiterID(c), enum.BillStatusDue, customer)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill saved as due", result)
}

// SettleDue marks a due, its bill and its order as paid
func (h *BillingHandler) SettleDue(c *gin.Context) {
	dueID, ok := pathID(c, "id")
	if !ok {
		return
	}

	due, err := h.billingService.SettleDue(c.Request.Context(), dueID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Due settled", due)
}
