package workers

import (
	"context"
	"time"

	"designmatch_backend/internal/logger"
	"designmatch_backend/internal/repositories"
	"designmatch_backend/internal/services"
)

const (
	reconcileInterval  = 10 * time.Minute
	reconcileMinAge    = 15 * time.Minute
	reconcileBatchSize = 50
)

// PaymentWorker reconciles pending payments against Stripe, settling
// intents whose webhooks were missed.
type PaymentWorker struct {
	paymentRepo    repositories.PaymentRepository
	paymentService services.PaymentService
}

func NewPaymentWorker(paymentRepo repositories.PaymentRepository, paymentService services.PaymentService) *PaymentWorker {
	return &PaymentWorker{
		paymentRepo:    paymentRepo,
		paymentService: paymentService,
	}
}

// Start launches the reconciliation loop.
func (w *PaymentWorker) Start(ctx context.Context) {
	go w.reconcileLoop(ctx)
}

func (w *PaymentWorker) reconcileLoop(ctx context.Context) {
	ticker := time.NewTicker(reconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("payment", "Payment worker stopped")
			return
		case <-ticker.C:
			w.reconcileStale(ctx)
		}
	}
}

func (w *PaymentWorker) reconcileStale(ctx context.Context) {
	payments, err := w.paymentRepo.FindStalePending(reconcileMinAge, reconcileBatchSize)
	if err != nil {
		logger.WorkerLog("payment", "Failed to load stale payments", "error", err)
		return
	}
	if len(payments) == 0 {
		return
	}

	logger.WorkerLog("payment", "Reconciling stale payments", "count", len(payments))

	for i := range payments {
		if ctx.Err() != nil {
			return
		}
		if err := w.paymentService.Reconcile(ctx, &payments[i]); err != nil {
			logger.WorkerLog("payment", "Reconciliation failed",
				"payment_id", payments[i].ID, "error", err)
		}
	}
}
