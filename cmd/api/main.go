package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleet-toll-gateway/config"
	"fleet-toll-gateway/internal/adapter/gateway/coinpayments"
	"fleet-toll-gateway/internal/adapter/gateway/stripe"
	httpHandler "fleet-toll-gateway/internal/adapter/http/handler"
	"fleet-toll-gateway/internal/adapter/notify"
	pgStorage "fleet-toll-gateway/internal/adapter/storage/postgres"
	redisStorage "fleet-toll-gateway/internal/adapter/storage/redis"
	"fleet-toll-gateway/internal/core/domain"
	"fleet-toll-gateway/internal/core/ports"
	"fleet-toll-gateway/internal/service"
	"fleet-toll-gateway/pkg/logger"

	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Fleet Toll Gateway")

	cryptoTollAmount, err := decimal.NewFromString(cfg.CoinPayments.TollAmount)
	if err != nil {
		log.Fatal().Err(err).Str("toll_amount", cfg.CoinPayments.TollAmount).Msg("Invalid crypto toll amount")
	}

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	vehicleRepo := pgStorage.NewVehicleRepo(pool)
	stationRepo := pgStorage.NewStationRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	replayStore := redisStorage.NewIPNReplayStore(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize payment gateways
	cryptoGW := coinpayments.NewClient(cfg.CoinPayments, nil, log)
	cardGW := stripe.NewClient(cfg.Stripe, nil, log)

	// Initialize notifier
	mailer := notify.NewMailer(cfg.SMTP, nil, log)

	// Initialize services
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	settlementSvc := service.NewSettlementService(
		vehicleRepo,
		stationRepo,
		txRepo,
		transactor,
		cryptoGW,
		cardGW,
		mailer,
		service.SettlementConfig{
			CryptoTollAmount: cryptoTollAmount,
			CryptoCurrency:   domain.Currency(cfg.CoinPayments.Currency),
			CardCurrency:     domain.Currency(cfg.Stripe.Currency),
		},
		log,
	)
	reconcilerSvc := service.NewReconcilerService(
		txRepo,
		vehicleRepo,
		transactor,
		cryptoGW,
		replayStore,
		mailer,
		log,
	)
	fleetSvc := service.NewFleetService(vehicleRepo, stationRepo, txRepo, transactor, log)

	// Periodic insurance/technical-control reminder job
	reminderCtx, stopReminder := context.WithCancel(ctx)
	defer stopReminder()
	if cfg.Reminder.Enabled {
		reminderSvc := service.NewReminderService(vehicleRepo, mailer, cfg.Reminder.Interval, cfg.Reminder.Window, log)
		go reminderSvc.Run(reminderCtx)
		log.Info().
			Dur("interval", cfg.Reminder.Interval).
			Dur("window", cfg.Reminder.Window).
			Msg("Maintenance reminder job started")
	}

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		SettlementSvc:  settlementSvc,
		ReconcilerSvc:  reconcilerSvc,
		FleetSvc:       fleetSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	stopReminder()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
