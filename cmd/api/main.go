package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/hotelpos-api/internal/application/service"
	"github.com/sangkips/hotelpos-api/internal/config"
	"github.com/sangkips/hotelpos-api/internal/infrastructure/database"
	"github.com/sangkips/hotelpos-api/internal/infrastructure/repository"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/handler"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/middleware"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/routes"
	"github.com/sangkips/hotelpos-api/pkg/lock"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg.Log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}

	if err := database.AutoMigrate(db, logger); err != nil {
		logger.WithError(err).Fatal("failed to run migrations")
	}

	if cfg.Database.Seed {
		if err := database.SeedDemoData(db, cfg.Billing, logger); err != nil {
			logger.WithError(err).Warn("failed to seed demo data")
		}
	}

	locker, closeLocker := newLocker(cfg.Redis, logger)
	defer closeLocker()

	if err := handler.RegisterValidators(); err != nil {
		logger.WithError(err).Fatal("failed to register validators")
	}

	// Repositories
	tx := repository.NewTransactor(db)
	hotelRepo := repository.NewHotelRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	counterRepo := repository.NewCounterRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	tableRepo := repository.NewDiningTableRepository(db)
	orderRepo := repository.NewTableOrderRepository(db)
	kotRepo := repository.NewKOTRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Services
	hotelService := service.NewHotelService(hotelRepo, service.DefaultHotelSettings(cfg.Billing))
	guestService := service.NewGuestService(guestRepo)
	roomService := service.NewRoomService(roomRepo)
	availabilityService := service.NewAvailabilityService(bookingRepo, roomRepo, cfg.Billing.MaxStayNights)
	bookingService := service.NewBookingService(tx, bookingRepo, tokenRepo, paymentRepo, roomRepo, guestRepo, counterRepo, hotelRepo, locker, cfg.Billing, logger)
	invoiceService := service.NewInvoiceService(tx, invoiceRepo, bookingRepo, tokenRepo, paymentRepo, counterRepo, hotelRepo, locker, cfg.Billing, logger)
	restaurantService := service.NewRestaurantService(tx, menuRepo, tableRepo, orderRepo, kotRepo, invoiceRepo, bookingRepo, tokenRepo, counterRepo, hotelRepo, locker, cfg.Billing, logger)
	billingService := service.NewBillingService()
	dashboardService := service.NewDashboardService(bookingRepo, roomRepo, invoiceRepo, orderRepo, hotelRepo, cfg.Billing)

	handlers := &routes.Handlers{
		Hotel:        handler.NewHotelHandler(hotelService),
		Guest:        handler.NewGuestHandler(guestService),
		Room:         handler.NewRoomHandler(roomService),
		Availability: handler.NewAvailabilityHandler(availabilityService),
		Booking:      handler.NewBookingHandler(bookingService, invoiceService),
		Invoice:      handler.NewInvoiceHandler(invoiceService),
		Restaurant:   handler.NewRestaurantHandler(restaurantService),
		Billing:      handler.NewBillingHandler(billingService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rateLimiter := middleware.NewHotelRateLimiter(middleware.RateLimiterConfigFrom(cfg.RateLimit))
	go rateLimiter.Run(ctx.Done())
	go middleware.CleanupIdempotencyKeys(ctx, idempotencyRepo, time.Hour, logger)

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Logger:          logger,
		HotelRepo:       hotelRepo,
		IdempotencyRepo: idempotencyRepo,
		Locker:          locker,
		RateLimiter:     rateLimiter,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{"port": port, "env": cfg.App.Env}).Infof("starting %s", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
		os.Exit(1)
	}
}

// newLocker returns a Redis backed locker when a Redis address is
// configured, otherwise an in-process one.
func newLocker(cfg config.RedisConfig, logger *logrus.Logger) (lock.Locker, func()) {
	if cfg.Address == "" {
		logger.Info("no redis configured, using in-process locks")
		return lock.NewLocalLocker(), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.WithError(err).Fatal("failed to connect to redis")
	}
	logger.WithField("address", cfg.Address).Info("using redis locks")

	return lock.NewRedisLocker(rdb, "hotelpos", cfg.LockTTL, cfg.LockWait), func() {
		if err := rdb.Close(); err != nil {
			logger.WithError(err).Warn("failed to close redis client")
		}
	}
}
