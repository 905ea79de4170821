package jobs

import (
	"context"

	"garbage-billing-backend/internal/logger"
)

// ReconcileReportHistories refreshes every report history that still shows
// entries appended after submission but not yet seen in a fetch.
func (jr *JobRunner) ReconcileReportHistories() {
	jr.runWithRecovery("ReconcileReportHistories", func() {
		ctx := context.Background()

		n, err := jr.services.Reports.ReconcileAll(ctx)
		if err != nil {
			logger.Error("Failed to reconcile some report histories", "reconciled", n, "error", err)
			return
		}
		logger.Info("Reconciled report histories", "reconciled", n)
	})
}
