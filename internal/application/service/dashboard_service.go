package service

import (
	"context"
	"time"

	"github.com/sangkips/hotelpos-api/internal/config"
	"github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/pkg/billing"
	"github.com/sangkips/hotelpos-api/pkg/occupancy"
)

// DashboardService provides the front desk overview
type DashboardService struct {
	bookingRepo repository.BookingRepository
	roomRepo    repository.RoomRepository
	invoiceRepo repository.InvoiceRepository
	orderRepo   repository.TableOrderRepository
	settings    settingsLoader
	now         func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	bookingRepo repository.BookingRepository,
	roomRepo repository.RoomRepository,
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.TableOrderRepository,
	hotelRepo repository.HotelRepository,
	billingCfg config.BillingConfig,
) *DashboardService {
	return &DashboardService{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		settings:    settingsLoader{hotels: hotelRepo, defaults: DefaultHotelSettings(billingCfg)},
		now:         time.Now,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	Date             string              `json:"date"`
	TotalRooms       int                 `json:"total_rooms"`
	OccupiedRooms    int                 `json:"occupied_rooms"`
	AvailableRooms   int                 `json:"available_rooms"`
	Arrivals         int                 `json:"arrivals"`
	Departures       int                 `json:"departures"`
	InHouse          int                 `json:"in_house"`
	OutstandingDue   float64             `json:"outstanding_due"`
	OpenTableOrders  int64               `json:"open_table_orders"`
	DailyRevenueData []DailyRevenuePoint `json:"daily_revenue_data"`
}

// DailyRevenuePoint is the invoiced amount of one day
type DailyRevenuePoint struct {
	Date     string  `json:"date"`
	Rooms    float64 `json:"rooms"`
	Dining   float64 `json:"dining"`
	Payable  float64 `json:"payable"`
	Invoices int     `json:"invoices"`
}

// GetDashboardStats returns today's occupancy, movements and money figures
// in the hotel's timezone.
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	settings, err := s.settings.load(ctx)
	if err != nil {
		return nil, err
	}
	local := s.now().In(settings.Location())
	today := occupancy.Day(local)
	stats := &DashboardStats{Date: today.Format("2006-01-02")}

	rooms, err := s.roomRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	stats.TotalRooms = len(rooms)

	idx, err := loadIndex(ctx, s.bookingRepo, today, today)
	if err != nil {
		return nil, err
	}
	for _, r := range rooms {
		if idx.Occupied(r.ID.String(), today) {
			stats.OccupiedRooms++
		}
	}
	stats.AvailableRooms = stats.TotalRooms - stats.OccupiedRooms

	bookings, err := s.bookingRepo.ListOverlapping(ctx, today, today)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		b := &bookings[i]
		if !b.Occupancy().Holds() {
			continue
		}
		switch {
		case !b.CheckedIn && occupancy.Day(b.CheckInDate).Equal(today):
			stats.Arrivals++
		case b.CheckedIn && !b.CheckedOut && occupancy.Day(b.CheckOutDate).Equal(today):
			stats.Departures++
		}
		if b.CheckedIn && !b.CheckedOut {
			stats.InHouse++
		}
	}

	if stats.OutstandingDue, err = s.invoiceRepo.OutstandingDue(ctx); err != nil {
		return nil, err
	}
	if stats.OpenTableOrders, err = s.orderRepo.CountOpen(ctx); err != nil {
		return nil, err
	}

	// Revenue for the last 7 days
	from := today.AddDate(0, 0, -6)
	invoices, err := s.invoiceRepo.ListAll(ctx, repository.InvoiceFilter{From: &from, To: &today})
	if err != nil {
		return nil, err
	}
	stats.DailyRevenueData = make([]DailyRevenuePoint, 0, 7)
	for d := from; !d.After(today); d = d.AddDate(0, 0, 1) {
		point := DailyRevenuePoint{Date: d.Format("Jan 02")}
		var rooms, dining []float64
		for _, inv := range invoices {
			if !occupancy.Day(inv.Date).Equal(d) {
				continue
			}
			point.Invoices++
			if inv.TableOrderID != nil {
				dining = append(dining, inv.PayableAmount)
			} else {
				rooms = append(rooms, inv.PayableAmount)
			}
		}
		point.Rooms = billing.Sum(rooms...)
		point.Dining = billing.Sum(dining...)
		point.Payable = billing.Sum(point.Rooms, point.Dining)
		stats.DailyRevenueData = append(stats.DailyRevenueData, point)
	}

	return stats, nil
}
