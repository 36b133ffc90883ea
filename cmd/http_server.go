package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/payment-service/internal"
	"github.com/frahmantamala/payment-service/internal/cache"
	"github.com/frahmantamala/payment-service/internal/customer"
	customerstore "github.com/frahmantamala/payment-service/internal/customer/postgres"
	"github.com/frahmantamala/payment-service/internal/payment"
	paymentstore "github.com/frahmantamala/payment-service/internal/payment/postgres"
	"github.com/frahmantamala/payment-service/internal/paymentmethod"
	pmstore "github.com/frahmantamala/payment-service/internal/paymentmethod/postgres"
	"github.com/frahmantamala/payment-service/internal/transport/rest"
	"github.com/frahmantamala/payment-service/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Cache  *cache.Store
	Router *chi.Mux
	Logger *slog.Logger

	PaymentHandler       *payment.Handler
	PaymentMethodHandler *paymentmethod.Handler
	CustomerHandler      *customer.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Cache,
		deps.PaymentHandler, deps.PaymentMethodHandler, deps.CustomerHandler, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm shares the pgx pool the readiness probe pings.
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	redisClient := cache.NewClient(config.Redis)
	cacheStore := cache.NewStore(redisClient)

	paymentRepo := paymentstore.NewPaymentRepository(gormDB)
	paymentSvc := payment.NewService(paymentRepo, config.Payment, log)
	cachedPaymentSvc := payment.NewCachedService(paymentSvc, cacheStore, config.Redis.CacheTTL, log)

	paymentMethodRepo := pmstore.NewPaymentMethodRepository(gormDB)
	paymentMethodSvc := paymentmethod.NewService(paymentMethodRepo, log)

	customerRepo := customerstore.NewCustomerRepository(gormDB)
	customerSvc := customer.NewService(customerRepo, log)

	return &Dependencies{
		Config:               config,
		Logger:               log,
		DB:                   db,
		Gorm:                 gormDB,
		Cache:                cacheStore,
		Router:               chi.NewRouter(),
		PaymentHandler:       payment.NewHandler(cachedPaymentSvc),
		PaymentMethodHandler: paymentmethod.NewHandler(paymentMethodSvc),
		CustomerHandler:      customer.NewHandler(customerSvc),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
