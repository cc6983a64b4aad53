package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arkanharyo/laundry-ledger/internal/config"
	"github.com/arkanharyo/laundry-ledger/internal/handler"
	"github.com/arkanharyo/laundry-ledger/internal/logging"
	"github.com/arkanharyo/laundry-ledger/internal/middleware"
	"github.com/arkanharyo/laundry-ledger/internal/pricing"
	"github.com/arkanharyo/laundry-ledger/internal/repository"
	"github.com/arkanharyo/laundry-ledger/internal/service"
	"github.com/arkanharyo/laundry-ledger/internal/service/transaction"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("laundry-ledger", cfg.LogLevel, cfg.AppEnv)

	db, err := connectDB(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	customerRepo := repository.NewCustomerRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	laundryRepo := repository.NewLaundryRepository(db)

	// The shop revenue account exists from first boot onward and
	// survives restarts with its balance intact.
	if err := laundryRepo.Init(context.Background(), cfg.LaundryName, cfg.LaundryLocation); err != nil {
		slog.Error("failed to initialize laundry account", "error", err)
		os.Exit(1)
	}

	priceEngine := pricing.NewEngine(cfg.RateFullService, cfg.RateStandard, cfg.ExpressMultiplier)
	customerSvc := service.NewCustomerService(customerRepo, db)
	transactionSvc := transaction.NewService(transactionRepo, customerRepo, laundryRepo, priceEngine, db)

	customerH := handler.NewCustomerHandler(customerSvc)
	transactionH := handler.NewTransactionHandler(transactionSvc)
	laundryH := handler.NewLaundryHandler(transactionSvc)
	authH := handler.NewAuthHandler(
		cfg.OperatorName, cfg.OperatorPasswordHash,
		cfg.JWTSecret, time.Duration(cfg.TokenTTLMins)*time.Minute,
	)
	healthH := handler.NewHealthHandler(db)

	authed := middleware.Auth(cfg.JWTSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthH.Check)
	mux.HandleFunc("POST /api/v1/auth/login", authH.Login)

	mux.Handle("POST /api/v1/customers", authed(http.HandlerFunc(customerH.Create)))
	mux.HandleFunc("GET /api/v1/customers/{name}/balance", customerH.Balance)
	mux.Handle("POST /api/v1/customers/{name}/balance", authed(http.HandlerFunc(customerH.AdjustBalance)))

	mux.Handle("POST /api/v1/transactions", authed(http.HandlerFunc(transactionH.Create)))
	mux.Handle("PUT /api/v1/transactions/{id}", authed(http.HandlerFunc(transactionH.Update)))
	mux.Handle("POST /api/v1/transactions/{id}/carry-on", authed(http.HandlerFunc(transactionH.CarryOn)))
	mux.Handle("POST /api/v1/transactions/{id}/finish-working", authed(http.HandlerFunc(transactionH.FinishWorking)))
	mux.Handle("POST /api/v1/transactions/{id}/finish", authed(http.HandlerFunc(transactionH.Finish)))
	mux.Handle("POST /api/v1/transactions/{id}/cancel", authed(http.HandlerFunc(transactionH.Cancel)))
	mux.HandleFunc("GET /api/v1/transactions", transactionH.List)
	mux.HandleFunc("GET /api/v1/transactions/{id}", transactionH.Get)

	mux.HandleFunc("GET /api/v1/laundry/balance", laundryH.Balance)

	root := middleware.Tracing(middleware.Logging(middleware.Recovery(mux)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func connectDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	pool := repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	}

	var db *sql.DB
	var err error
	for i := range 30 {
		db, err = repository.NewPostgresDB(ctx, cfg.DatabaseURL, pool)
		if err == nil {
			return db, nil
		}
		slog.Info("waiting for database", "attempt", i+1)
		time.Sleep(time.Second)
	}

	return nil, fmt.Errorf("connectDB: gave up after 30 attempts: %w", err)
}
