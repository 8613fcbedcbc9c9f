package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/cesarcasstella/fintrack-pro/internal/config"
	"github.com/cesarcasstella/fintrack-pro/internal/handler"
	"github.com/cesarcasstella/fintrack-pro/internal/integrations/twilio"
	"github.com/cesarcasstella/fintrack-pro/internal/repository"
	"github.com/cesarcasstella/fintrack-pro/internal/service"
	"github.com/cesarcasstella/fintrack-pro/internal/utils/email"
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

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	mailer := email.NewSender(cfg, logger)
	waClient := twilio.NewClient(cfg, logger)
	svc := service.NewService(repo, logger, cfg, mailer, waClient)
	h := handler.NewHandler(svc, cfg, logger)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/webhooks/whatsapp", h.WhatsAppWebhook).Methods("POST")
	r.HandleFunc("/webhooks/whatsapp", h.WhatsAppWebhookStatus).Methods("GET")
	// Protected routes
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(handler.AuthMiddleware(cfg))
	h.RegisterRoutes(apiRouter)

	// Scheduler: materialize due recurring rules and scan projected balances
	c := cron.New()
	if _, err := c.AddFunc("15 0 * * *", func() {
		if err := svc.MaterializeDueRules(time.Now()); err != nil {
			logger.WithError(err).Error("Recurring rule materialization failed")
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule materialization job: %v", err)
	}
	if _, err := c.AddFunc("0 7 * * *", func() {
		if err := svc.ScanLowBalances(); err != nil {
			logger.WithError(err).Error("Low balance scan failed")
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule low balance scan: %v", err)
	}
	c.Start()
	defer c.Stop()

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
