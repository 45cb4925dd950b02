package main

import (
	"context"   // Context for Redis operations and jobs
	"errors"    // Error inspection
	"net/http"  // HTTP server
	"os/signal" // Shutdown signals
	"syscall"   // Signal numbers
	"time"      // Shutdown timeout

	"travel_booking/internal/api"        // HTTP handlers and routes
	"travel_booking/internal/config"     // Configuration
	"travel_booking/internal/db"         // Database connection
	"travel_booking/internal/jobs"       // Periodic housekeeping
	"travel_booking/internal/middleware" // Request id and logging middleware
	"travel_booking/internal/notify"     // Booking confirmation delivery
	"travel_booking/internal/service"    // Domain services
	"travel_booking/internal/utils"      // Redis cache

	"github.com/gin-contrib/cors"  // CORS for the JSON endpoints
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client when configured; the catalog runs uncached otherwise
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
	}

	// Booking confirmations go by mail when SMTP is configured
	var notifier service.BookingNotifier = notify.LogNotifier{}
	if cfg.SMTPHost != "" {
		notifier = notify.NewMailer(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.MailFrom,
		})
	}

	catalog := service.NewCatalogService(gdb, utils.NewCache(redisClient))
	cart := service.NewCartService(gdb)
	identity := service.NewIdentityService(gdb)

	sched, err := jobs.NewScheduler(ctx, cart, cfg.CartPurgeInterval)
	if err != nil {
		logrus.Fatalf("failed to schedule jobs: %v", err)
	}
	sched.Start()
	defer func() { _ = sched.Shutdown() }()

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}
	if len(cfg.AllowedOrigins) > 0 {
		cc := cors.DefaultConfig()
		cc.AllowOrigins = cfg.AllowedOrigins
		cc.AllowHeaders = append(cc.AllowHeaders, "Authorization", middleware.RequestIDHeader)
		cc.AllowCredentials = true
		r.Use(cors.New(cc))
	}
	if cfg.TemplatesDir != "" {
		r.LoadHTMLGlob(cfg.TemplatesDir + "/*.html")
	}

	api.Routes(r, api.Deps{
		Catalog:       catalog,
		Cart:          cart,
		Bookings:      service.NewBookingService(gdb, notifier),
		Identity:      identity,
		Inventory:     service.NewInventoryService(gdb, catalog),
		Sessions:      identity,
		JWTSecret:     cfg.JWTSecret,
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: cfg.IsProd,
		HTML:          cfg.TemplatesDir != "",
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("Shutdown failed")
		}
	}()

	logrus.WithField("port", cfg.AppPort).Info("Server running") // Log server start
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatalf("server failed: %v", err)
	}
	logrus.Info("Server stopped")
}
