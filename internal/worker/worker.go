package worker

import (
	"context"
	"time"

	"github.com/ngandu/cimentmart/internal/logger"
)

// resweep cadence for payments whose polling was abandoned
const resolveInterval = time.Minute

type PaymentService interface {
	ResolveAbandoned(ctx context.Context) error
}

// PaymentProcessor is worker that resolves abandoned payments. A user who
// navigates away mid-poll leaves a submitted payment without a terminal
// verdict; the processor periodically asks the gateway again.
type PaymentProcessor struct {
	svc PaymentService
}

// NewPaymentProcessor creates new payment processor
func NewPaymentProcessor(svc PaymentService) *PaymentProcessor {
	return &PaymentProcessor{svc: svc}
}

// ProcessPayments runs the resweep loop until ctx is done
func (pp *PaymentProcessor) ProcessPayments(ctx context.Context) {
	ticker := time.NewTicker(resolveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Debug("payment processor is done")
			return
		case <-ticker.C:
			if err := pp.svc.ResolveAbandoned(ctx); err != nil {
				logger.Log.Error("error resolving abandoned payments")
			}
		}
	}
}
