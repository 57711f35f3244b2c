package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/hotelpos-api/internal/domain/entity"
)

func TestCreateHotel(t *testing.T) {
	store := newMemStore()
	svc := NewHotelService(fakeHotelRepo{store}, DefaultHotelSettings(testBilling))
	ctx := context.Background()

	hotel, err := svc.CreateHotel(ctx, &CreateHotelInput{
		Name:     "Lakeview Inn & Spa",
		Settings: &entity.HotelSettings{InvoicePrefix: "LV"},
	})
	if err != nil {
		t.Fatalf("CreateHotel() error = %v", err)
	}
	if hotel.Slug != "lakeview-inn-spa" {
		t.Errorf("slug = %q", hotel.Slug)
	}
	if hotel.Settings.InvoicePrefix != "LV" || hotel.Settings.BookingPrefix != "BK" || hotel.Settings.DefaultGST != 12 {
		t.Errorf("settings = %+v", hotel.Settings)
	}

	_, err = svc.CreateHotel(ctx, &CreateHotelInput{Name: "Another", Slug: "Lakeview-Inn-Spa"})
	wantStatus(t, err, http.StatusConflict)

	_, err = svc.CreateHotel(ctx, &CreateHotelInput{Name: "Bad", Settings: &entity.HotelSettings{InvoicePrefix: "INV-"}})
	appErr := wantStatus(t, err, http.StatusUnprocessableEntity)
	if appErr.Errors[0].Field != "settings.invoice_prefix" {
		t.Errorf("field = %q", appErr.Errors[0].Field)
	}
}

func TestUpdateHotelSettings(t *testing.T) {
	store := newMemStore()
	svc := NewHotelService(fakeHotelRepo{store}, DefaultHotelSettings(testBilling))
	ctx := context.Background()

	hotel, err := svc.CreateHotel(ctx, &CreateHotelInput{Name: "Lakeview", Slug: "lakeview"})
	if err != nil {
		t.Fatalf("CreateHotel() error = %v", err)
	}

	updated, err := svc.UpdateHotel(ctx, hotel.ID, &UpdateHotelInput{Settings: &entity.HotelSettings{KOTPrefix: "K"}})
	if err != nil {
		t.Fatalf("UpdateHotel() error = %v", err)
	}
	if updated.Settings.KOTPrefix != "K" || updated.Settings.InvoicePrefix != "INV" {
		t.Errorf("settings = %+v", updated.Settings)
	}

	_, err = svc.UpdateHotel(ctx, hotel.ID, &UpdateHotelInput{Settings: &entity.HotelSettings{DefaultGST: 120}})
	wantStatus(t, err, http.StatusUnprocessableEntity)
}
