// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariebrainware/cosec-marketplace/config"
	"github.com/ariebrainware/cosec-marketplace/endpoint"
	"github.com/ariebrainware/cosec-marketplace/events"
	"github.com/ariebrainware/cosec-marketplace/middleware"
	"github.com/ariebrainware/cosec-marketplace/model"
	"github.com/ariebrainware/cosec-marketplace/repository"
	"github.com/ariebrainware/cosec-marketplace/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	logger := util.NewLogger(util.LoggerOptions{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		Production: cfg.GinMode == gin.ReleaseMode,
	})
	defer func() { _ = logger.Sync() }()

	db, err := config.ConnectDatabase()
	if err != nil {
		logger.Fatal("Error connecting to database", zap.Error(err))
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			logger.Warn("Error closing database", zap.Error(err))
		}
	}()

	if err := model.AutoMigrate(db); err != nil {
		logger.Fatal("Error migrating database", zap.Error(err))
	}
	if err := model.Seed(db); err != nil {
		logger.Fatal("Error seeding catalog", zap.Error(err))
	}

	if _, err := config.ConnectRedis(); err != nil {
		logger.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
	}
	defer func() { _ = config.CloseRedis() }()

	if err := util.InitGeoIP(cfg.GeoIPDBPath); err != nil {
		logger.Warn("GeoIP database unavailable", zap.Error(err))
	}
	defer util.CloseGeoIP()

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := events.NewProducer(cfg.KafkaBrokers, logger, cfg.KafkaTopic)
		if err != nil {
			logger.Fatal("Error connecting to Kafka", zap.Error(err))
		}
		defer producer.Close()
		publisher = producer
	} else {
		logger.Info("No Kafka brokers configured, domain events are discarded")
	}

	if cfg.JWTSecret == "" {
		logger.Warn("JWTSECRET is empty, every authenticated route will reject requests")
	}

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.CORSMiddleware(cfg.CORSOrigins), middleware.EndpointCallLogger(logger))

	audit := util.NewAuditLogger(db, logger)
	handler := endpoint.NewHandler(repository.New(db), publisher, logger)
	endpoint.RegisterRoutes(router, handler, endpoint.RouterOptions{
		AppName:   cfg.AppName,
		JWTSecret: cfg.JWTSecret,
		Audit:     audit,
		RateLimit: middleware.RateLimitConfig{Logger: logger},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("error starting server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	hits, misses, size := util.GetGeoIPCacheMetrics()
	logger.Info("GeoIP cache stats", zap.Int64("hits", hits), zap.Int64("misses", misses), zap.Int("size", size))
}
