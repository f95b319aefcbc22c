package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ngandu/cimentmart/internal/models"
	"github.com/ngandu/cimentmart/internal/service"
)

// PaymentService is interface for payment confirmation
type PaymentService interface {
	// Confirm obtains a gateway verdict for the user's pending order and persists the final state
	Confirm(ctx context.Context, req service.PaymentRequest) (*models.Payment, error)
	// GetPayment returns the user's payment for order
	GetPayment(ctx context.Context, userID, orderID string) (*models.Payment, error)
}

// PaymentHandler represents HTTP handler for payment-related requests
type PaymentHandler struct {
	svc PaymentService
}

// NewPaymentHandler creates new PaymentHandler instance
func NewPaymentHandler(svc PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

type confirmPaymentRequest struct {
	PaymentMethod  string                `json:"paymentMethod"`
	AccountDetails models.AccountDetails `json:"accountDetails"`
}

// PaymentResp is payment representation in responses
type PaymentResp struct {
	ID             string                `json:"id"`
	OrderID        string                `json:"orderId"`
	Amount         float64               `json:"amount"`
	PaymentMethod  string                `json:"paymentMethod"`
	AccountDetails models.AccountDetails `json:"accountDetails"`
	Status         string                `json:"status"`
	Reference      string                `json:"reference"`
	OrderNumber    string                `json:"orderNumber"`
	CreatedAt      string                `json:"createdAt"`
	UpdatedAt      string                `json:"updatedAt"`
}

func newPaymentResp(payment *models.Payment) PaymentResp {
	return PaymentResp{
		ID:             payment.ID,
		OrderID:        payment.OrderID,
		Amount:         payment.Amount,
		PaymentMethod:  payment.PaymentMethod,
		AccountDetails: payment.AccountDetails,
		Status:         payment.Status,
		Reference:      payment.Reference,
		OrderNumber:    payment.OrderNumber,
		CreatedAt:      payment.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      payment.UpdatedAt.Format(time.RFC3339),
	}
}

// ConfirmUserPayment runs the payment confirmation for the user's pending order
// 200 — платёж подтверждён;
// 400 — неверный формат запроса;
// 401 — пользователь не аутентифицирован;
// 402 — шлюз отклонил платёж;
// 404 — нет ожидающего заказа;
// 422 — неверный номер телефона или данные счёта;
// 502 — ошибка отправки запроса шлюзу;
// 504 — истёк бюджет опроса статуса;
// 500 — внутренняя ошибка сервера.
func (ph *PaymentHandler) ConfirmUserPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		req := confirmPaymentRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		payment, err := ph.svc.Confirm(r.Context(), service.PaymentRequest{
			OrderID:        chi.URLParam(r, "orderID"),
			UserID:         payload.UserID,
			Method:         req.PaymentMethod,
			AccountDetails: req.AccountDetails,
		})
		if err != nil {
			switch {
			case errors.Is(err, models.ErrNoPendingOrder):
				http.Error(w, "no pending order", http.StatusNotFound)
			case errors.Is(err, models.ErrInvalidPhoneNumber), errors.Is(err, models.ErrInvalidAccountInfo):
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			case errors.Is(err, models.ErrGatewaySubmit):
				http.Error(w, "le paiement a échoué", http.StatusBadGateway)
			case errors.Is(err, models.ErrConfirmationTimeout):
				http.Error(w, "la confirmation du paiement a expiré", http.StatusGatewayTimeout)
			default:
				http.Error(w, "le paiement a échoué", http.StatusInternalServerError)
			}
			return
		}

		status := http.StatusOK
		if payment.Status == models.PaymentStatusFailed {
			status = http.StatusPaymentRequired
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(newPaymentResp(payment)); err != nil {
			return
		}
	}
}

// GetUserPayment returns the user's payment for order
// 200 — успешная обработка запроса;
// 401 — пользователь не аутентифицирован;
// 404 — платёж не найден;
// 500 — внутренняя ошибка сервера.
func (ph *PaymentHandler) GetUserPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		payment, err := ph.svc.GetPayment(r.Context(), payload.UserID, chi.URLParam(r, "orderID"))
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				http.Error(w, "payment not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(newPaymentResp(payment)); err != nil {
			return
		}
	}
}
