package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/hotelpos-api/internal/config"
	domainRepo "github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/handler"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/middleware"
	"github.com/sangkips/hotelpos-api/pkg/lock"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Hotel        *handler.HotelHandler
	Guest        *handler.GuestHandler
	Room         *handler.RoomHandler
	Availability *handler.AvailabilityHandler
	Booking      *handler.BookingHandler
	Invoice      *handler.InvoiceHandler
	Restaurant   *handler.RestaurantHandler
	Billing      *handler.BillingHandler
	Dashboard    *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Logger          *logrus.Logger
	HotelRepo       domainRepo.HotelRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
	Locker          lock.Locker
	RateLimiter     *middleware.HotelRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		}
		if deps.RateLimiter != nil {
			body["rate_limiter"] = deps.RateLimiter.Stats()
		}
		c.JSON(http.StatusOK, body)
	})

	v1 := router.Group("/api/v1")
	{
		// Stateless calculator, no hotel context needed
		billing := v1.Group("/billing")
		{
			billing.POST("/line-item", h.Billing.RecalculateLine)
			billing.POST("/totals", h.Billing.Totals)
		}

		v1.GET("/hotels", h.Hotel.List)
		v1.POST("/hotels", h.Hotel.Create)

		hotel := v1.Group("/hotels/:" + middleware.HotelParam)
		hotel.Use(middleware.HotelMiddleware(deps.HotelRepo))
		if deps.RateLimiter != nil {
			hotel.Use(deps.RateLimiter.Middleware())
		}
		hotel.Use(middleware.Idempotency(middleware.IdempotencyConfig{
			Repo:   deps.IdempotencyRepo,
			Locker: deps.Locker,
			Logger: deps.Logger,
		}))

		registerHotelRoutes(hotel, h)
	}

	return router
}

func registerHotelRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("", h.Hotel.Get)
	rg.PUT("", h.Hotel.Update)
	rg.GET("/dashboard", h.Dashboard.GetStats)

	guests := rg.Group("/guests")
	{
		guests.GET("", h.Guest.List)
		guests.POST("", h.Guest.Create)
		guests.GET("/:id", h.Guest.Get)
		guests.PUT("/:id", h.Guest.Update)
		guests.DELETE("/:id", h.Guest.Delete)
	}

	categories := rg.Group("/room-categories")
	{
		categories.GET("", h.Room.ListCategories)
		categories.POST("", h.Room.CreateCategory)
		categories.GET("/:id", h.Room.GetCategory)
		categories.PUT("/:id", h.Room.UpdateCategory)
		categories.DELETE("/:id", h.Room.DeleteCategory)
	}

	rooms := rg.Group("/rooms")
	{
		rooms.GET("", h.Room.ListRooms)
		rooms.POST("", h.Room.CreateRoom)
		rooms.GET("/:id", h.Room.GetRoom)
		rooms.PUT("/:id", h.Room.UpdateRoom)
		rooms.DELETE("/:id", h.Room.DeleteRoom)
	}

	availability := rg.Group("/availability")
	{
		availability.GET("", h.Availability.Grid)
		availability.GET("/rooms", h.Availability.FreeRooms)
		availability.GET("/check", h.Availability.Occupied)
	}

	bookings := rg.Group("/bookings")
	{
		bookings.GET("", h.Booking.List)
		bookings.POST("", h.Booking.Create)
		bookings.GET("/:id", h.Booking.Get)
		bookings.PATCH("/:id", h.Booking.Update)
		bookings.POST("/:id/check-in", h.Booking.CheckIn)
		bookings.POST("/:id/check-out", h.Booking.CheckOut)
		bookings.POST("/:id/cancel", h.Booking.Cancel)
		bookings.GET("/:id/tokens/unbilled", h.Booking.Unbilled)
		bookings.POST("/:id/tokens", h.Booking.AddToken)
		bookings.PATCH("/:id/tokens/:token_id", h.Booking.UpdateToken)
		bookings.DELETE("/:id/tokens/:token_id", h.Booking.RemoveToken)
		bookings.POST("/:id/payments", h.Booking.AddPayment)
		bookings.POST("/:id/invoices", h.Booking.GenerateInvoice)
	}

	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/export", h.Invoice.Export)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("/:id/payments", h.Invoice.AddPayment)
	}

	menu := rg.Group("/menu-items")
	{
		menu.GET("", h.Restaurant.ListMenu)
		menu.POST("", h.Restaurant.CreateMenuItem)
		menu.GET("/:id", h.Restaurant.GetMenuItem)
		menu.PUT("/:id", h.Restaurant.UpdateMenuItem)
		menu.DELETE("/:id", h.Restaurant.DeleteMenuItem)
	}

	tables := rg.Group("/tables")
	{
		tables.GET("", h.Restaurant.ListTables)
		tables.POST("", h.Restaurant.CreateTable)
		tables.GET("/:id", h.Restaurant.GetTable)
		tables.PUT("/:id", h.Restaurant.UpdateTable)
		tables.DELETE("/:id", h.Restaurant.DeleteTable)
	}

	orders := rg.Group("/orders")
	{
		orders.GET("", h.Restaurant.ListOrders)
		orders.POST("", h.Restaurant.OpenOrder)
		orders.GET("/:id", h.Restaurant.GetOrder)
		orders.POST("/:id/items", h.Restaurant.AddItems)
		orders.PATCH("/:id/items/:line_id", h.Restaurant.UpdateLine)
		orders.DELETE("/:id/items/:line_id", h.Restaurant.RemoveLine)
		orders.POST("/:id/cancel", h.Restaurant.CancelOrder)
		orders.POST("/:id/bill", h.Restaurant.Bill)
	}

	kots := rg.Group("/kots")
	{
		kots.GET("", h.Restaurant.ListKOTs)
		kots.PATCH("/:id/status", h.Restaurant.UpdateKOTStatus)
	}
}
