package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/tournament-tickets/internal/clock"
	"github.com/iliyamo/tournament-tickets/internal/config"
	"github.com/iliyamo/tournament-tickets/internal/database"
	"github.com/iliyamo/tournament-tickets/internal/handler"
	"github.com/iliyamo/tournament-tickets/internal/middleware"
	"github.com/iliyamo/tournament-tickets/internal/queue"
	"github.com/iliyamo/tournament-tickets/internal/repository"
	"github.com/iliyamo/tournament-tickets/internal/router"
	"github.com/iliyamo/tournament-tickets/internal/service"
)

func main() {
	config.LoadDotEnv()
	config.SetupLogging(config.LoadLogConfig())
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DBAutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	clk := clock.NewSystem()
	qcfg := config.LoadQueueConfig()

	var pub service.Publisher
	if qcfg.PublishEnabled {
		pub = service.NewAMQPPublisher(qcfg.URL)
	}
	if qcfg.ConsumerEnabled {
		out := queue.NewBookingLog(qcfg.BookingLogPath)
		defer out.Close()
		go func() {
			if err := queue.StartBookingConsumer(ctx, qcfg.URL, out); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("booking-consumer: stopped: %v", err)
			}
		}()
	}

	listingCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	store := repository.NewStore(db)
	matches := store.Matches
	prices := store.Prices
	bookings := store.Booking

	h := router.Handlers{
		Health: handler.Health(db),
		Public: &handler.PublicHandler{
			Matches: matches,
			Prices:  prices,
			Teams:   repository.NewTeamRepo(db),
			Venues:  repository.NewVenueRepo(db),
			Clock:   clk,
		},
		Pricing: &handler.PricingHandler{Matches: matches, Prices: prices},
		Booking: &handler.BookingHandler{
			Matches:  matches,
			Prices:   prices,
			Bookings: bookings,
			Tickets:  store.Tickets,
			Service:  service.NewBookingService(store, clk, pub),
		},
		Auth:  handler.NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db), clk),
		Admin: &handler.AdminHandler{Bookings: bookings, Admin: service.NewAdminService(store).WithListingCache(listingCache)},
	}
	mw := router.Middlewares{
		Cache:     listingCache.Middleware(),
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Printf("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	router.RegisterRoutes(e, h, mw, cfg.JWTSecret)
	router.RegisterAuth(e, h, cfg.JWTSecret)
	router.RegisterAdmin(e, h, cfg.JWTSecret)

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
