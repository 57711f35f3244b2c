package database

import (
	"github.com/sangkips/hotelpos-api/internal/config"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const demoSlug = "demo-hotel"

// SeedDemoData creates a demo hotel with rooms, a menu and tables. It does
// nothing when the demo hotel already exists.
func SeedDemoData(db *gorm.DB, billing config.BillingConfig, log *logrus.Logger) error {
	var count int64
	if err := db.Model(&entity.Hotel{}).Where("slug = ?", demoSlug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.WithField("slug", demoSlug).Info("Demo hotel already exists")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		hotel := entity.Hotel{
			Name: "Demo Hotel",
			Slug: demoSlug,
			Settings: entity.HotelSettings{
				InvoicePrefix:           billing.InvoicePrefix,
				BookingPrefix:           billing.BookingPrefix,
				RestaurantInvoicePrefix: billing.RestaurantInvoicePrefix,
				KOTPrefix:               billing.KOTPrefix,
				OrderPrefix:             billing.OrderPrefix,
				DefaultGST:              billing.DefaultGST,
				Currency:                billing.Currency,
				Timezone:                "Asia/Kolkata",
				CheckInTime:             "12:00",
				CheckOutTime:            "11:00",
			},
		}
		if err := tx.Create(&hotel).Error; err != nil {
			return err
		}

		categories := []entity.RoomCategory{
			{HotelID: hotel.ID, Name: "Standard", Rate: 1800, GST: 12, HSN: "996311", MaxOccupancy: 2},
			{HotelID: hotel.ID, Name: "Deluxe", Rate: 3200, GST: 12, HSN: "996311", MaxOccupancy: 3},
			{HotelID: hotel.ID, Name: "Suite", Rate: 7800, GST: 18, HSN: "996311", MaxOccupancy: 4},
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}

		rooms := []entity.Room{
			{HotelID: hotel.ID, RoomNo: "101", CategoryID: categories[0].ID, Active: true},
			{HotelID: hotel.ID, RoomNo: "102", CategoryID: categories[0].ID, Active: true},
			{HotelID: hotel.ID, RoomNo: "201", CategoryID: categories[1].ID, Active: true},
			{HotelID: hotel.ID, RoomNo: "202", CategoryID: categories[1].ID, Active: true},
			{HotelID: hotel.ID, RoomNo: "301", CategoryID: categories[2].ID, Active: true},
		}
		if err := tx.Create(&rooms).Error; err != nil {
			return err
		}

		starters, mains := "Starters", "Mains"
		menu := []entity.MenuItem{
			{HotelID: hotel.ID, Name: "Paneer Tikka", Category: &starters, HSN: "996331", Rate: 240, GST: 5, Veg: true, Available: true},
			{HotelID: hotel.ID, Name: "Chicken 65", Category: &starters, HSN: "996331", Rate: 280, GST: 5, Veg: false, Available: true},
			{HotelID: hotel.ID, Name: "Veg Biryani", Category: &mains, HSN: "996331", Rate: 220, GST: 5, Veg: true, Available: true},
			{HotelID: hotel.ID, Name: "Butter Naan", Category: &mains, HSN: "996331", Rate: 45, GST: 5, Veg: true, Available: true},
		}
		if err := tx.Create(&menu).Error; err != nil {
			return err
		}

		tables := []entity.DiningTable{
			{HotelID: hotel.ID, TableNo: "T1", Seats: 2},
			{HotelID: hotel.ID, TableNo: "T2", Seats: 4},
			{HotelID: hotel.ID, TableNo: "T3", Seats: 6},
		}
		if err := tx.Create(&tables).Error; err != nil {
			return err
		}

		log.WithField("hotel_id", hotel.ID).Info("Demo data seeded")
		return nil
	})
}
