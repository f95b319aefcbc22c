package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/ngandu/cimentmart/internal/events"
	"github.com/ngandu/cimentmart/internal/gateway"
	"github.com/ngandu/cimentmart/internal/logger"
	"github.com/ngandu/cimentmart/internal/models"
	"go.uber.org/zap"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultMaxAttempts  = 20

	paymentCurrency = "CDF"
)

// payer numbers are country-code-prefixed, no separators
var phonePattern = regexp.MustCompile(`^243[0-9]{9}$`)

// Gateway is interface to the payment gateway
type Gateway interface {
	// SubmitCharge sends charge request and returns the gateway order number
	SubmitCharge(ctx context.Context, charge gateway.ChargeRequest) (string, error)
	// CheckPayment returns current verdict for the gateway order number
	CheckPayment(ctx context.Context, orderNumber string) (*gateway.CheckResult, error)
}

// PaymentRepository is interface for interacting with payment-related data
type PaymentRepository interface {
	// UpsertPayment inserts payment or updates it in place, keyed by order id
	UpsertPayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	// Reconcile records the gateway verdict for payment and order in one transaction
	Reconcile(ctx context.Context, payment *models.Payment) error
	// GetPaymentByOrderID returns payment by order id
	GetPaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	// GetUnresolvedPayments returns submitted payments without a terminal verdict
	GetUnresolvedPayments(ctx context.Context) ([]models.Payment, error)
}

// PaymentRequest is a payment attempt for a pending order
type PaymentRequest struct {
	OrderID        string
	UserID         string
	Method         string
	AccountDetails models.AccountDetails
}

// PaymentService drives a pending order through gateway submission, status
// polling and reconciliation
type PaymentService struct {
	repo PaymentRepository
	gw   Gateway
	pend PendingStore
	pub  events.Publisher

	pollInterval time.Duration
	maxAttempts  int
	sleep        func(ctx context.Context, d time.Duration) error
}

// NewPaymentService creates new PaymentService instance
func NewPaymentService(repo PaymentRepository, gw Gateway, pend PendingStore, pub events.Publisher) *PaymentService {
	return &PaymentService{
		repo:         repo,
		gw:           gw,
		pend:         pend,
		pub:          pub,
		pollInterval: defaultPollInterval,
		maxAttempts:  defaultMaxAttempts,
		sleep:        sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Confirm obtains a gateway verdict for the user's pending order and
// persists the final state. It returns the payment with its terminal
// status, models.ErrConfirmationTimeout when the poll budget runs out, or
// a validation/submission error. Input validation happens before any
// network call.
func (ps *PaymentService) Confirm(ctx context.Context, req PaymentRequest) (*models.Payment, error) {
	pord, err := ps.pend.Get(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if pord.ID != req.OrderID {
		return nil, models.ErrNoPendingOrder
	}

	var numero string
	switch req.Method {
	case models.PaymentMethodMobile:
		numero = req.AccountDetails.PhoneNumber
		if !phonePattern.MatchString(numero) {
			return nil, models.ErrInvalidPhoneNumber
		}
	case models.PaymentMethodBank:
		if req.AccountDetails.AccountNumber == "" || req.AccountDetails.BankName == "" {
			return nil, models.ErrInvalidAccountInfo
		}
	default:
		return nil, models.ErrInvalidAccountInfo
	}

	payment := &models.Payment{
		ID:             req.OrderID,
		OrderID:        req.OrderID,
		UserID:         req.UserID,
		Amount:         pord.Amount,
		PaymentMethod:  req.Method,
		AccountDetails: req.AccountDetails,
		Status:         models.PaymentStatusPending,
	}

	// record the attempt before going to the network
	if _, err := ps.repo.UpsertPayment(ctx, payment); err != nil {
		return nil, err
	}

	orderNumber, err := ps.gw.SubmitCharge(ctx, gateway.ChargeRequest{
		Numero:      numero,
		Montant:     pord.Amount,
		Currency:    paymentCurrency,
		Description: fmt.Sprintf("Commande ciment %s", pord.ID),
	})
	if err != nil {
		// no retry of the submit step
		return nil, err
	}

	reference, _ := gateway.ExtractReferenceNumber(orderNumber)
	payment.Reference = reference
	payment.OrderNumber = orderNumber

	// persist the order number so an abandoned poll can be picked up later
	if _, err := ps.repo.UpsertPayment(ctx, payment); err != nil {
		return nil, err
	}

	return ps.poll(ctx, payment)
}

// poll checks the gateway verdict at a fixed interval within a bounded
// attempt budget. Transient check errors and unexpected verification codes
// consume an attempt like a pending verdict does.
func (ps *PaymentService) poll(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	for attempt := 1; attempt <= ps.maxAttempts; attempt++ {
		res, err := ps.gw.CheckPayment(ctx, payment.OrderNumber)
		switch {
		case err != nil:
			logger.Log.Debug("check payment",
				zap.String("order", payment.OrderID),
				zap.Int("attempt", attempt),
				zap.Error(err))
		case res.Verification == gateway.VerificationSuccess:
			return ps.resolve(ctx, payment, models.PaymentStatusPaid)
		case res.Verification == gateway.VerificationFailure:
			return ps.resolve(ctx, payment, models.PaymentStatusFailed)
		case res.Verification == gateway.VerificationPending:
		default:
			// out-of-contract code, treated like a pending verdict
			logger.Log.Warn("unexpected verification code",
				zap.String("order", payment.OrderID),
				zap.Int("attempt", attempt),
				zap.Error(models.ProtocolError{Verification: res.Verification}))
		}

		if attempt < ps.maxAttempts {
			if err := ps.sleep(ctx, ps.pollInterval); err != nil {
				return nil, err
			}
		}
	}

	// budget exhausted, the payment stays in its last persisted state
	return nil, models.ErrConfirmationTimeout
}

// resolve writes the terminal verdict and publishes it. The pending order
// is cleared only on success, a declined payment keeps it around for
// another attempt.
func (ps *PaymentService) resolve(ctx context.Context, payment *models.Payment, status string) (*models.Payment, error) {
	payment.Status = status

	if err := ps.repo.Reconcile(ctx, payment); err != nil {
		return nil, err
	}

	if status == models.PaymentStatusPaid {
		if err := ps.pend.Clear(ctx, payment.UserID); err != nil {
			logger.Log.Error("clear pending order",
				zap.String("user", payment.UserID),
				zap.Error(err))
		}
	}

	ps.pub.PublishPaymentStatus(events.PaymentEvent{
		OrderID:   payment.OrderID,
		UserID:    payment.UserID,
		Status:    status,
		Reference: payment.Reference,
		Amount:    payment.Amount,
		At:        time.Now(),
	})

	return payment, nil
}

// GetPayment returns the user's payment for order
func (ps *PaymentService) GetPayment(ctx context.Context, userID, orderID string) (*models.Payment, error) {
	payment, err := ps.repo.GetPaymentByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != userID {
		return nil, models.ErrDataNotFound
	}
	return payment, nil
}

// ResolveAbandoned re-checks payments whose polling was abandoned before a
// terminal verdict, one check per payment per call
func (ps *PaymentService) ResolveAbandoned(ctx context.Context) error {
	payments, err := ps.repo.GetUnresolvedPayments(ctx)
	if err != nil {
		return err
	}

	for _, payment := range payments {
		var errTooManyReq models.TooManyRequestsError

		res, err := ps.gw.CheckPayment(ctx, payment.OrderNumber)
		if err != nil {
			if errors.As(err, &errTooManyReq) {
				logger.Log.Debug("gateway throttled",
					zap.Duration("retry-after", errTooManyReq.RetryAfter))
				return nil
			}
			logger.Log.Error("check abandoned payment",
				zap.String("order", payment.OrderID),
				zap.Error(err))
			continue
		}

		p := payment
		switch res.Verification {
		case gateway.VerificationSuccess:
			if _, err := ps.resolve(ctx, &p, models.PaymentStatusPaid); err != nil {
				logger.Log.Error("resolve abandoned payment", zap.String("order", p.OrderID), zap.Error(err))
			}
		case gateway.VerificationFailure:
			if _, err := ps.resolve(ctx, &p, models.PaymentStatusFailed); err != nil {
				logger.Log.Error("resolve abandoned payment", zap.String("order", p.OrderID), zap.Error(err))
			}
		}
	}

	return nil
}
