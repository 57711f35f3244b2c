package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/application/service"
	"github.com/sangkips/hotelpos-api/internal/domain/enum"
	"github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/hotelpos-api/pkg/export"
)

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func invoiceFilter(q *request.InvoiceListQuery) repository.InvoiceFilter {
	filter := repository.InvoiceFilter{
		From:    datePtr(q.From),
		To:      datePtr(q.To),
		OnlyDue: q.OnlyDue,
		Search:  q.Search,
	}
	if q.Kind != "" {
		kind := enum.InvoiceKind(q.Kind)
		filter.Kind = &kind
	}
	if q.BookingID != "" {
		id := uuid.MustParse(q.BookingID)
		filter.BookingID = &id
	}
	return filter
}

// List handles listing invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	var query request.InvoiceListQuery
	if !bindQuery(c, &query) {
		return
	}
	params := pageParams(c)

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), invoiceFilter(&query), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "Invoices retrieved successfully", invoices, params, total)
}

// Get handles getting an invoice with its lines and payments
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// AddPayment handles recording a payment against an invoice
func (h *InvoiceHandler) AddPayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment := paymentInput(&req)
	invoice, err := h.invoiceService.AddPayment(c.Request.Context(), id, &payment)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", invoice)
}

// Export downloads the invoice register as an Excel workbook
func (h *InvoiceHandler) Export(c *gin.Context) {
	var query request.InvoiceListQuery
	if !bindQuery(c, &query) {
		return
	}

	var buf bytes.Buffer
	if err := h.invoiceService.ExportRegister(c.Request.Context(), invoiceFilter(&query), &buf); err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("invoices-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}
