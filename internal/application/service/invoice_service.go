package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/config"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	"github.com/sangkips/hotelpos-api/internal/domain/enum"
	"github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/pkg/apperror"
	"github.com/sangkips/hotelpos-api/pkg/billing"
	"github.com/sangkips/hotelpos-api/pkg/export"
	"github.com/sangkips/hotelpos-api/pkg/lock"
	"github.com/sangkips/hotelpos-api/pkg/pagination"
	"github.com/sirupsen/logrus"
)

var invoiceNumbers = repository.NumberSource{Table: "invoices", Column: "invoice_no"}

// InvoiceService raises invoices from booking charges and settles them
type InvoiceService struct {
	tx          repository.Transactor
	invoiceRepo repository.InvoiceRepository
	bookingRepo repository.BookingRepository
	tokenRepo   repository.TokenRepository
	paymentRepo repository.PaymentRepository
	counterRepo repository.CounterRepository
	settings    settingsLoader
	locker      lock.Locker
	logger      *logrus.Logger
	now         func() time.Time
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	tx repository.Transactor,
	invoiceRepo repository.InvoiceRepository,
	bookingRepo repository.BookingRepository,
	tokenRepo repository.TokenRepository,
	paymentRepo repository.PaymentRepository,
	counterRepo repository.CounterRepository,
	hotelRepo repository.HotelRepository,
	locker lock.Locker,
	billingCfg config.BillingConfig,
	logger *logrus.Logger,
) *InvoiceService {
	return &InvoiceService{
		tx:          tx,
		invoiceRepo: invoiceRepo,
		bookingRepo: bookingRepo,
		tokenRepo:   tokenRepo,
		paymentRepo: paymentRepo,
		counterRepo: counterRepo,
		settings:    settingsLoader{hotels: hotelRepo, defaults: DefaultHotelSettings(billingCfg)},
		locker:      locker,
		logger:      logger,
		now:         time.Now,
	}
}

// InvoiceDetail is an invoice with its read-only overpayment figure
type InvoiceDetail struct {
	Invoice *entity.Invoice `json:"invoice"`
	Excess  float64         `json:"excess"`
}

func invoiceDetail(inv *entity.Invoice) *InvoiceDetail {
	return &InvoiceDetail{
		Invoice: inv,
		Excess:  billing.Excess(inv.PayableAmount, inv.PaymentAmounts(), inv.AdvanceApplied),
	}
}

// stamp sets the invoice date and time in the hotel's timezone.
func stamp(inv *entity.Invoice, now time.Time, loc *time.Location) {
	local := now.In(loc)
	y, m, d := local.Date()
	inv.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	inv.Time = local.Format("15:04:05")
}

// GenerateInvoiceInput selects what goes on a booking invoice
type GenerateInvoiceInput struct {
	// TokenIDs limits the invoice to these charges. Empty means every unbilled charge.
	TokenIDs      []uuid.UUID
	ApplyAdvance  bool
	Payments      []PaymentInput
	CustomerName  *string
	CustomerPhone *string
	CustomerGSTIN *string
	Remarks       *string
}

// GenerateForBooking bills a booking's unbilled charges. Creating the invoice
// and marking its charges billed commit together, so a charge lands on at
// most one invoice.
func (s *InvoiceService) GenerateForBooking(ctx context.Context, bookingID uuid.UUID, input *GenerateInvoiceInput) (*InvoiceDetail, error) {
	settings, err := s.settings.load(ctx)
	if err != nil {
		return nil, err
	}

	var invoice *entity.Invoice
	err = s.locker.WithLock(ctx, bookingLockKey(bookingID), func(ctx context.Context) error {
		return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			booking, err := s.bookingRepo.GetByIDForUpdate(ctx, bookingID)
			if err != nil {
				return err
			}
			if booking == nil {
				return apperror.NewNotFoundError("Booking")
			}
			if booking.BookingStatus == enum.BookingStatusCancelled {
				return apperror.NewConflictError("Cancelled bookings cannot be invoiced")
			}

			tokens, err := s.tokenRepo.LockUnbilled(ctx, bookingID, input.TokenIDs)
			if err != nil {
				return err
			}
			if len(tokens) == 0 {
				return apperror.NewValidationError("token_ids", "There are no unbilled charges to invoice")
			}

			lines := make([]entity.InvoiceLine, 0, len(tokens))
			items := make([]billing.LineItem, 0, len(tokens))
			ids := make([]uuid.UUID, 0, len(tokens))
			for _, t := range tokens {
				line := entity.InvoiceLineFromToken(t)
				lines = append(lines, line)
				items = append(items, line.LineItem())
				ids = append(ids, t.ID)
			}
			totals := billing.Aggregate(items)

			if err := billing.ValidatePayments(totals.Payable, paymentEntries(nil, input.Payments...)); err != nil {
				return validationFailure(err)
			}
			booked := billing.Sum(append(booking.PaymentAmounts(), paymentEntriesTotal(input.Payments))...)
			if booked > billing.Aggregate(booking.LineItems()).Payable {
				return apperror.NewValidationError("payments", "Total payments exceed the booking's payable amount")
			}

			invoice = &entity.Invoice{
				Kind:          enum.InvoiceKindRoom,
				BookingID:     &booking.ID,
				CustomerName:  booking.GuestName,
				CustomerPhone: booking.GuestPhone,
				CustomerGSTIN: booking.GuestGSTIN,
				Remarks:       input.Remarks,
				Lines:         lines,
			}
			if input.CustomerName != nil {
				invoice.CustomerName = strings.TrimSpace(*input.CustomerName)
			}
			if input.CustomerPhone != nil {
				invoice.CustomerPhone = strings.TrimSpace(*input.CustomerPhone)
			}
			if input.CustomerGSTIN != nil {
				invoice.CustomerGSTIN = strPtr(strings.TrimSpace(*input.CustomerGSTIN))
			}
			stamp(invoice, s.now(), settings.Location())
			invoice.ApplyTotals(totals)

			// A booking without an advance has nothing to apply, and stays
			// open for one recorded later.
			if input.ApplyAdvance && booking.AdvancePayment.Amount > 0 {
				if booking.AdvanceApplied {
					return apperror.NewConflictError("Advance is already applied to an invoice")
				}
				invoice.AdvanceApplied = billing.Round2(booking.AdvancePayment.Amount)
				booking.AdvanceApplied = true
				if err := s.bookingRepo.UpdateHeader(ctx, booking, booking.Version); err != nil {
					return err
				}
			}

			now := s.now()
			for _, p := range input.Payments {
				payment := p.toPayment(now)
				payment.BookingID = &booking.ID
				invoice.Payments = append(invoice.Payments, payment)
			}
			invoice.Settle()

			number, err := s.counterRepo.Next(ctx, settings.InvoicePrefix, invoiceNumbers)
			if err != nil {
				return err
			}
			invoice.InvoiceNo = number
			if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
				return err
			}
			return s.tokenRepo.MarkInvoiced(ctx, ids, invoice.ID)
		})
	})
	if err != nil {
		err = repoError(err, "Invoice")
		if !apperror.IsAppError(err) {
			config.LogError(s.logger, "invoice", "GenerateForBooking", "create invoice", bookingID, err)
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"invoice_no": invoice.InvoiceNo,
		"booking_id": bookingID,
		"lines":      len(invoice.Lines),
		"payable":    invoice.PayableAmount,
	}).Info("Invoice generated")
	return invoiceDetail(invoice), nil
}

func paymentEntriesTotal(payments []PaymentInput) float64 {
	amounts := make([]float64, len(payments))
	for i, p := range payments {
		amounts[i] = p.Amount
	}
	return billing.Sum(amounts...)
}

// AddPayment records a payment against an invoice and recomputes its due.
// Payments on a booking invoice also count towards the booking.
func (s *InvoiceService) AddPayment(ctx context.Context, invoiceID uuid.UUID, input *PaymentInput) (*InvoiceDetail, error) {
	current, err := s.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	key := "invoice:" + invoiceID.String()
	if current.Invoice.BookingID != nil {
		key = bookingLockKey(*current.Invoice.BookingID)
	}

	var invoice *entity.Invoice
	err = s.locker.WithLock(ctx, key, func(ctx context.Context) error {
		return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			inv, err := s.invoiceRepo.GetByIDForUpdate(ctx, invoiceID)
			if err != nil {
				return err
			}
			if inv == nil {
				return apperror.NewNotFoundError("Invoice")
			}
			if err := billing.ValidatePayments(inv.PayableAmount, paymentEntries(inv.Payments, *input)); err != nil {
				return validationFailure(err)
			}

			payment := input.toPayment(s.now())
			payment.InvoiceID = &inv.ID
			if inv.BookingID != nil {
				booking, err := s.bookingRepo.GetByID(ctx, *inv.BookingID)
				if err != nil {
					return err
				}
				if booking != nil {
					payable := billing.Aggregate(booking.LineItems()).Payable
					if err := billing.ValidatePayments(payable, paymentEntries(booking.Payments, *input)); err != nil {
						return validationFailure(err)
					}
					payment.BookingID = &booking.ID
				}
			}
			if err := s.paymentRepo.Create(ctx, &payment); err != nil {
				return err
			}

			inv.Payments = append(inv.Payments, payment)
			inv.Settle()
			if err := s.invoiceRepo.UpdateSettlement(ctx, inv); err != nil {
				return err
			}
			invoice = inv
			return nil
		})
	})
	if err != nil {
		return nil, repoError(err, "Invoice")
	}
	return invoiceDetail(invoice), nil
}

// GetInvoice retrieves an invoice with its lines and payments
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceDetail, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoiceDetail(invoice), nil
}

// ListInvoices lists invoices matching filter
func (s *InvoiceService) ListInvoices(ctx context.Context, filter repository.InvoiceFilter, params pagination.Params) ([]entity.Invoice, int64, error) {
	return s.invoiceRepo.List(ctx, filter, params)
}

// ExportRegister writes every invoice matching filter to w as an .xlsx register.
func (s *InvoiceService) ExportRegister(ctx context.Context, filter repository.InvoiceFilter, w io.Writer) error {
	invoices, err := s.invoiceRepo.ListAll(ctx, filter)
	if err != nil {
		return err
	}
	rows := make([]export.InvoiceRow, 0, len(invoices))
	for _, inv := range invoices {
		row := export.InvoiceRow{
			InvoiceNo: inv.InvoiceNo,
			Date:      inv.Date,
			Kind:      inv.Kind.String(),
			Customer:  inv.CustomerName,
			Base:      inv.TotalAmount,
			SGST:      inv.SGST,
			CGST:      inv.CGST,
			Payable:   inv.PayableAmount,
			Paid:      inv.Paid,
			Due:       inv.Due,
		}
		if inv.CustomerGSTIN != nil {
			row.GSTIN = *inv.CustomerGSTIN
		}
		rows = append(rows, row)
	}
	return export.WriteInvoiceRegister(w, rows)
}
