package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ngandu/cimentmart/internal/models"
)

// OrderService is interface for order placement and listing
type OrderService interface {
	// Create places a new order and stashes it as the user's pending order
	Create(ctx context.Context, userID, productID string, quantity int) (*models.Order, error)
	// ListUserOrders returns list of user orders
	ListUserOrders(ctx context.Context, userID string) ([]models.Order, error)
}

// OrderHandler represents HTTP handler for order-related requests
type OrderHandler struct {
	svc OrderService
}

// NewOrderHandler creates new OrderHandler instance
func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type createOrderRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// OrderResp is order representation in responses
type OrderResp struct {
	ID        string  `json:"id"`
	Product   string  `json:"product"`
	Quantity  int     `json:"quantity"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	Date      string  `json:"date"`
	CreatedAt string  `json:"createdAt"`
}

func newOrderResp(order models.Order) OrderResp {
	return OrderResp{
		ID:        order.ID,
		Product:   order.Product,
		Quantity:  order.Quantity,
		Amount:    order.Amount,
		Status:    order.Status,
		Date:      order.OrderDate.Format("2006-01-02"),
		CreatedAt: order.CreatedAt.Format(time.RFC3339),
	}
}

// CreateUserOrder places new user order
// 201 — заказ создан;
// 400 — неверный формат запроса;
// 401 — пользователь не аутентифицирован;
// 422 — неизвестный товар или неверное количество;
// 500 — внутренняя ошибка сервера.
func (oh *OrderHandler) CreateUserOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		req := createOrderRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		order, err := oh.svc.Create(r.Context(), payload.UserID, req.Product, req.Quantity)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrUnknownProduct), errors.Is(err, models.ErrInvalidQuantity):
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(newOrderResp(*order)); err != nil {
			return
		}
	}
}

// ListUserOrders returns list of user orders
// 200 — успешная обработка запроса;
// 204 — нет данных для ответа;
// 401 — пользователь не аутентифицирован;
// 500 — внутренняя ошибка сервера.
func (oh *OrderHandler) ListUserOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		orders, err := oh.svc.ListUserOrders(r.Context(), payload.UserID)
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(orders) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		resp := make([]OrderResp, 0, len(orders))
		for _, order := range orders {
			resp = append(resp, newOrderResp(order))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}
