package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	paymentstore "github.com/frahmantamala/payment-service/internal/payment/postgres"
	"github.com/frahmantamala/payment-service/internal/scheduler"
	"github.com/frahmantamala/payment-service/pkg/lockclient"
	"github.com/frahmantamala/payment-service/pkg/logger"
	"github.com/spf13/cobra"

	_ "github.com/jackc/pgx/v5/stdlib"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// schedulerCmd runs the pending-payment reconciler as its own process. Every
// replica runs the same command; the shedlock lease decides which one sweeps
// on each tick.
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Start the pending payment scheduler",
	Long:  `Start the scheduled reconciler that moves PENDING payments to PROCESSED. Safe to run on every replica; a shared database lease keeps a single worker per tick.`,
	Run: func(cmd *cobra.Command, args []string) {
		startScheduler()
	},
}

func startScheduler() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize gorm: %v\n", err)
		os.Exit(1)
	}

	repo := paymentstore.NewPaymentRepository(gormDB)
	locker := lockclient.NewDBLocker(gormDB)
	reconciler := scheduler.NewReconciler(repo, locker, config.Scheduler, log)

	if err := reconciler.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start scheduler: %v\n", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Info("received signal, shutting down scheduler", "signal", sig)
	reconciler.Stop()
}
