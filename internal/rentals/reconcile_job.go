package rentals

import (
	"context"
	"time"

	"go.uber.org/multierr"

	"github.com/dukkanhq/dukkan-backend/pkg/logger"
)

// defaultGrace keeps the job away from payments that are still in flight.
const defaultGrace = 10 * time.Minute

// ReconcileJob finishes rent payments that crashed between their dependent
// writes. It lists pending history rows older than the grace window and
// resumes each one from its checkpointed phase.
type ReconcileJob struct {
	svc   Service
	repo  Repository
	logg  *logger.Logger
	grace time.Duration
}

// NewReconcileJob builds the reconciliation job.
func NewReconcileJob(svc Service, repo Repository, logg *logger.Logger, grace time.Duration) *ReconcileJob {
	if grace <= 0 {
		grace = defaultGrace
	}
	return &ReconcileJob{svc: svc, repo: repo, logg: logg, grace: grace}
}

// Name implements jobs.Job.
func (j *ReconcileJob) Name() string { return "rental-payment-reconcile" }

// Run resumes every stuck payment. One row's failure does not stop the
// sweep; all failures are reported together.
func (j *ReconcileJob) Run(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-j.grace)
	stuck, err := j.repo.ListStuckHistories(ctx, cutoff)
	if err != nil {
		return err
	}

	var errs error
	for i := range stuck {
		history := &stuck[i]
		if resumeErr := j.svc.Resume(ctx, history); resumeErr != nil {
			if j.logg != nil {
				j.logg.Error(ctx, "resuming rent payment failed", resumeErr)
			}
			errs = multierr.Append(errs, resumeErr)
		}
	}
	return errs
}
