package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/ngandu/cimentmart/internal/models"
	"github.com/ngandu/cimentmart/internal/repository/postgres"
)

const (
	upsertPaymentQuery = `
						INSERT INTO payments (id, order_id, user_id, amount, payment_method, account_details, status, reference, order_number)
						VALUES ($1, $1, $2, $3, $4, $5, $6, $7, $8)
						ON CONFLICT (order_id) DO UPDATE
						SET amount = EXCLUDED.amount,
							payment_method = EXCLUDED.payment_method,
							account_details = EXCLUDED.account_details,
							status = EXCLUDED.status,
							reference = EXCLUDED.reference,
							order_number = EXCLUDED.order_number,
							updated_at = now()
						RETURNING created_at, updated_at
`
	selectPaymentByOrderIDQuery = `
						SELECT id, order_id, user_id, amount, payment_method, account_details, status, reference, order_number, created_at, updated_at FROM payments
						WHERE order_id = $1
`
	selectUnresolvedPaymentsQuery = `
						SELECT id, order_id, user_id, amount, payment_method, account_details, status, reference, order_number, created_at, updated_at FROM payments
						WHERE status = 'pending' AND order_number <> ''
`
)

// PaymentRepository implements PaymentRepository interface
type PaymentRepository struct {
	db *postgres.DB
}

// NewPaymentRepository creates new PaymentRepository instance
func NewPaymentRepository(db *postgres.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// UpsertPayment inserts payment or updates it in place, keyed by order id
func (pr *PaymentRepository) UpsertPayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	details, err := json.Marshal(payment.AccountDetails)
	if err != nil {
		return nil, err
	}

	err = pr.db.QueryRow(ctx, upsertPaymentQuery,
		payment.OrderID, payment.UserID, payment.Amount, payment.PaymentMethod,
		details, payment.Status, payment.Reference, payment.OrderNumber).
		Scan(&payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return nil, err
	}

	payment.ID = payment.OrderID
	return payment, nil
}

// Reconcile records the gateway verdict: it upserts the payment and, when
// the verdict is a success, moves the order to processing. Both writes run
// in a single transaction.
func (pr *PaymentRepository) Reconcile(ctx context.Context, payment *models.Payment) error {
	details, err := json.Marshal(payment.AccountDetails)
	if err != nil {
		return err
	}

	tx, err := pr.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, upsertPaymentQuery,
		payment.OrderID, payment.UserID, payment.Amount, payment.PaymentMethod,
		details, payment.Status, payment.Reference, payment.OrderNumber).
		Scan(&payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return err
	}
	payment.ID = payment.OrderID

	if payment.Status == models.PaymentStatusPaid {
		cmd, err := tx.Exec(ctx, updateOrderStatusQuery, models.OrderStatusProcessing, payment.OrderID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return models.ErrDataNotFound
		}
	}

	return tx.Commit(ctx)
}

// GetPaymentByOrderID returns payment by order id
func (pr *PaymentRepository) GetPaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	payment := models.Payment{}
	var details []byte
	err := pr.db.QueryRow(ctx, selectPaymentByOrderIDQuery, orderID).
		Scan(&payment.ID, &payment.OrderID, &payment.UserID, &payment.Amount, &payment.PaymentMethod,
			&details, &payment.Status, &payment.Reference, &payment.OrderNumber, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(details, &payment.AccountDetails); err != nil {
		return nil, err
	}

	return &payment, nil
}

// GetUnresolvedPayments returns payments that were submitted to the gateway
// but never reached a terminal verdict
func (pr *PaymentRepository) GetUnresolvedPayments(ctx context.Context) ([]models.Payment, error) {
	rows, err := pr.db.Query(ctx, selectUnresolvedPaymentsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.Payment{}

	for rows.Next() {
		payment := models.Payment{}
		var details []byte
		err = rows.Scan(&payment.ID, &payment.OrderID, &payment.UserID, &payment.Amount, &payment.PaymentMethod,
			&details, &payment.Status, &payment.Reference, &payment.OrderNumber, &payment.CreatedAt, &payment.UpdatedAt)
		if err != nil {
			continue
		}
		if err := json.Unmarshal(details, &payment.AccountDetails); err != nil {
			continue
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}
