package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wanderfare/internal/config"
	"wanderfare/internal/database"
	"wanderfare/internal/logger"
	"wanderfare/internal/messaging"
	"wanderfare/internal/services/account"
	"wanderfare/internal/services/analytics"
	"wanderfare/internal/services/notification"
	"wanderfare/internal/services/order"
)

func main() {
	var (
		mode          = flag.String("mode", "", "Service mode (api, notification-subscriber)")
		port          = flag.Int("port", 0, "HTTP port (overrides server.port from config)")
		maxConcurrent = flag.Int("max-concurrent", 50, "Maximum concurrent order creations")
		prefetch      = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *port == 0 {
		*port = cfg.Server.Port
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode":           *mode,
		"port":           *port,
		"max_concurrent": *maxConcurrent,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "api":
		if err := runAPIService(ctx, cfg, log, *port, *maxConcurrent); err != nil {
			log.Error("service_failed", "API service failed", requestID, err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		if err := runNotificationSubscriber(ctx, cfg, log, *prefetch); err != nil {
			log.Error("service_failed", "Notification subscriber failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runAPIService runs the order, analytics and registration HTTP service
func runAPIService(ctx context.Context, cfg *config.Config, log *logger.Logger, port, maxConcurrent int) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)

	pricing := order.Params{
		TaxRate:     cfg.Pricing.TaxRate,
		DeliveryETA: cfg.Pricing.DeliveryETA(),
	}
	orderService := order.NewService(order.NewRepository(db), publisher, log, maxConcurrent, pricing)
	orderHandler := order.NewHandler(orderService, log)

	analyticsService := analytics.NewService(analytics.NewRepository(db), log, cfg.Pricing.CostRatio)
	analyticsHandler := analytics.NewHandler(analyticsService, log)

	accountService := account.NewService(account.NewRepository(db), log)
	accountHandler := account.NewHandler(accountService, log)

	mux := http.NewServeMux()
	orderHandler.Register(mux)
	analyticsHandler.Register(mux)
	accountHandler.Register(mux)
	mux.HandleFunc("GET /health", healthHandler(db))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		log.Info("service_started", fmt.Sprintf("API service started on port %d", port), requestID, map[string]interface{}{
			"port":           port,
			"max_concurrent": maxConcurrent,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// runNotificationSubscriber runs the status update subscriber
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	hostname, _ := os.Hostname()
	consumer := messaging.NewConsumer(conn, log, messaging.NotificationsQueue,
		fmt.Sprintf("notification-subscriber-%s", hostname), prefetch)

	subscriber := notification.NewSubscriber(consumer, log)
	return subscriber.Start(ctx)
}

// healthHandler reports service and database health
func healthHandler(db *database.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		healthy := db.Ping(ctx) == nil

		response := map[string]interface{}{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "api",
		}

		w.Header().Set("Content-Type", "application/json")
		if healthy {
			w.WriteHeader(http.StatusOK)
		} else {
			response["status"] = "unhealthy"
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(response)
	}
}
