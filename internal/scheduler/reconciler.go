// Package scheduler runs the periodic jobs of the payment service. Today
// that is a single job: sweeping PENDING payments to PROCESSED.
package scheduler

import (
	"log/slog"

	internal "github.com/frahmantamala/payment-service/internal"
	paymentmodel "github.com/frahmantamala/payment-service/internal/core/datamodel/payment"
	"github.com/frahmantamala/payment-service/pkg/lockclient"
	"github.com/robfig/cron/v3"
)

// LockName identifies the reconciler's cluster-wide lease. All instances
// compete for this one name; the winner does the work for everyone.
const LockName = "pendingPaymentScheduler"

// PaymentStore is the slice of the payment repository the reconciler needs.
type PaymentStore interface {
	BulkTransition(fromStatus, toStatus string) (int64, error)
}

// Reconciler advances all PENDING payments to PROCESSED on a cron schedule,
// serialized across the fleet by a named lease. It deliberately bypasses the
// per-record validation chain: the sweep is a blanket status transition, not
// a per-record business decision.
type Reconciler struct {
	store  PaymentStore
	locker lockclient.Locker
	cfg    internal.SchedulerConfig
	logger *slog.Logger
	cron   *cron.Cron
}

func NewReconciler(store PaymentStore, locker lockclient.Locker, cfg internal.SchedulerConfig, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		store:  store,
		locker: locker,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the cron entry and begins ticking. The expression uses
// six fields (with seconds), matching the schedule format the deployment
// configs already carry.
func (r *Reconciler) Start() error {
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(r.cfg.PendingPaymentCron, r.RunOnce); err != nil {
		return err
	}
	c.Start()
	r.cron = c

	r.logger.Info("pending payment reconciler started",
		"cron", r.cfg.PendingPaymentCron,
		"lock_at_least_for", r.cfg.LockAtLeastFor,
		"lock_at_most_for", r.cfg.LockAtMostFor)
	return nil
}

// Stop halts the schedule and waits for a running tick to finish.
func (r *Reconciler) Stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
	r.logger.Info("pending payment reconciler stopped")
}

// RunOnce is a single tick: acquire the lease or skip silently, sweep, and
// swallow any failure. The fix-point for an error is the next tick; there is
// no retry inside a tick and no partial-completion bookkeeping.
func (r *Reconciler) RunOnce() {
	lock, acquired, err := r.locker.TryAcquire(LockName, r.cfg.LockAtLeastFor, r.cfg.LockAtMostFor)
	if err != nil {
		r.logger.Error("error acquiring reconciler lock", "error", err, "lock", LockName)
		return
	}
	if !acquired {
		r.logger.Debug("reconciler lock held elsewhere, skipping tick", "lock", LockName)
		return
	}
	defer func() {
		if err := lock.Release(); err != nil {
			r.logger.Error("error releasing reconciler lock", "error", err, "lock", LockName)
		}
	}()

	// Settlement is a stub: a production sweep would fetch with a bounded
	// page size and push each payment through an event-driven pipeline
	// instead of one unbounded update.
	count, err := r.store.BulkTransition(paymentmodel.StatusPending, paymentmodel.StatusProcessed)
	if err != nil {
		r.logger.Error("error occurred processing pending payments", "error", err)
		return
	}

	r.logger.Info("pending payments processed", "count", count)
}
