package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/installo/bnpl-planner/internal/cache"
	"github.com/installo/bnpl-planner/internal/config"
	"github.com/installo/bnpl-planner/internal/delivery/email"
	"github.com/installo/bnpl-planner/internal/handler"
	"github.com/installo/bnpl-planner/internal/middleware"
	"github.com/installo/bnpl-planner/internal/service"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize layers
	idemCache := cache.New(cfg.IdempotencyTTL)
	var mailer service.Mailer
	if cfg.EmailEnabled() {
		mailer = email.NewSender(cfg, logger)
	}
	svc := service.NewService(idemCache, mailer, logger)
	h := handler.NewHandler(svc, logger)

	// Periodic eviction of expired idempotency entries
	c := cron.New()
	if _, err := c.AddFunc("@every 1m", func() {
		if n := idemCache.Evict(time.Now()); n > 0 {
			logger.Debugf("evicted %d expired idempotency entries", n)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule cache eviction: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.HandleFunc("/healthz", h.Healthz).Methods("GET")

	planRouter := r.PathPrefix("/v1").Subrouter()
	planRouter.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	planRouter.Use(middleware.Auth(cfg))
	planRouter.HandleFunc("/plan", h.GeneratePlan).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
