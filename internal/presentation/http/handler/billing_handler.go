package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/hotelpos-api/internal/application/service"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/hotelpos-api/pkg/billing"
)

// BillingHandler serves the line-item and totals calculator used while a
// bill is being edited
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// RecalculateLine applies one edit to a line
func (h *BillingHandler) RecalculateLine(c *gin.Context) {
	var req request.LineItemRequest
	if !bindJSON(c, &req) {
		return
	}

	line, err := h.billingService.RecalculateLine(&service.LineItemInput{
		Item:   req.Item,
		HSN:    req.HSN,
		Rate:   req.Rate.Float(),
		Qty:    req.Qty.Ptr(),
		GST:    req.GST.Float(),
		Amount: req.Amount.Float(),
		Days:   req.Days,
		Edited: req.Edited,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line recalculated successfully", line)
}

// Totals aggregates a draft bill
func (h *BillingHandler) Totals(c *gin.Context) {
	var req request.TotalsRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]billing.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, billing.LineItem{
			Item:   it.Item,
			HSN:    it.HSN,
			Rate:   it.Rate.Float(),
			Qty:    billing.DefaultQty(it.Qty.Ptr()),
			GST:    it.GST.Float(),
			Amount: it.Amount.Float(),
		})
	}

	totals, err := h.billingService.Totals(&service.TotalsInput{
		Items:    items,
		Payments: paymentInputs(req.Payments),
		Advance:  req.Advance.Float(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Totals calculated successfully", totals)
}
