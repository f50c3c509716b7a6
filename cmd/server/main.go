package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/medistore/backend/internal/application/cart"
	catalogapp "github.com/medistore/backend/internal/application/catalog"
	identityapp "github.com/medistore/backend/internal/application/identity"
	"github.com/medistore/backend/internal/application/notification"
	orderapp "github.com/medistore/backend/internal/application/order"
	prescriptionapp "github.com/medistore/backend/internal/application/prescription"
	cartdomain "github.com/medistore/backend/internal/domain/cart"
	"github.com/medistore/backend/internal/infrastructure/auth"
	"github.com/medistore/backend/internal/infrastructure/config"
	"github.com/medistore/backend/internal/infrastructure/email"
	"github.com/medistore/backend/internal/infrastructure/event"
	"github.com/medistore/backend/internal/infrastructure/logger"
	"github.com/medistore/backend/internal/infrastructure/persistence"
	"github.com/medistore/backend/internal/infrastructure/storage"
	"github.com/medistore/backend/internal/interfaces/http/handler"
	"github.com/medistore/backend/internal/interfaces/http/middleware"
	"github.com/medistore/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()

	// Token blacklist backed by Redis. When Redis is unreachable the
	// server still starts with an in-process blacklist so that logout
	// works within a single instance.
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		defer redisBlacklist.Close()
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	var objectStorage prescriptionapp.ObjectStorageService
	s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
	)
	if err != nil {
		log.Warn("object storage unavailable, falling back to in-memory storage", zap.Error(err))
		objectStorage = storage.NewInMemoryObjectStorage()
	} else {
		objectStorage = s3Storage
	}

	var emailSender email.Sender
	if cfg.Email.Enabled {
		smtpSender, err := email.NewSMTPSender(cfg.Email, log)
		if err != nil {
			log.Warn("email disabled, invalid SMTP configuration", zap.Error(err))
			emailSender = email.NewNoopSender(log)
		} else {
			emailSender = smtpSender
		}
	} else {
		emailSender = email.NewNoopSender(log)
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	prescriptionRepo := persistence.NewGormPrescriptionRepository(db.DB)

	// Event bus with the admin notifier subscribed before start
	eventBus := event.NewInMemoryEventBus(log)
	adminTo := splitAddresses(cfg.Email.AdminTo)
	eventBus.Subscribe(notification.NewAdminNotifier(emailSender, userRepo, adminTo, log))

	busCtx, busCancel := context.WithCancel(context.Background())
	defer busCancel()
	if err := eventBus.Start(busCtx); err != nil {
		log.Fatal("failed to start event bus", zap.Error(err))
	}

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, eventBus, log)
	productService := catalogapp.NewProductService(productRepo, eventBus, log)
	cartService := cartapp.NewService(cartdomain.NewStore(), productRepo, orderRepo, eventBus, log)
	orderService := orderapp.NewService(orderRepo, eventBus, log)
	prescriptionService := prescriptionapp.NewService(prescriptionRepo, userRepo, objectStorage, eventBus, log)

	// HTTP layer
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	router.Setup(engine, router.Config{
		AuthHandler:         handler.NewAuthHandler(authService),
		ProductHandler:      handler.NewProductHandler(productService),
		CartHandler:         handler.NewCartHandler(cartService, log),
		OrderHandler:        handler.NewOrderHandler(orderService),
		PrescriptionHandler: handler.NewPrescriptionHandler(prescriptionService),
		JWTService:          jwtService,
		TokenBlacklist:      blacklist,
		Logger:              log,
		CORS:                corsConfig,
		MaxBodyBytes:        cfg.HTTP.MaxBodySize,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("event bus shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
}

// splitAddresses turns a comma-separated address list into a slice,
// dropping empty entries.
func splitAddresses(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
