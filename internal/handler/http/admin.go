package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ngandu/cimentmart/internal/models"
	"github.com/ngandu/cimentmart/internal/service"
)

// AdminOrderService is interface for order administration
type AdminOrderService interface {
	// ListOrders returns all orders
	ListOrders(ctx context.Context) ([]models.Order, error)
	// UpdateStatus moves an order along pending -> processing -> delivered
	UpdateStatus(ctx context.Context, id string, status string) error
}

// AdminUserService is interface for user administration
type AdminUserService interface {
	// Register creates new user with hashed password
	Register(ctx context.Context, user *models.User, password string) (*models.User, error)
	// ListUsers returns all users
	ListUsers(ctx context.Context) ([]models.User, error)
}

// StatsService is interface for dashboard statistics
type StatsService interface {
	// Collect returns current dashboard stats
	Collect(ctx context.Context) (*service.Stats, error)
}

// AdminHandler represents HTTP handler for administrative requests
type AdminHandler struct {
	orders AdminOrderService
	users  AdminUserService
	stats  StatsService
}

// NewAdminHandler creates new AdminHandler instance
func NewAdminHandler(orders AdminOrderService, users AdminUserService, stats StatsService) *AdminHandler {
	return &AdminHandler{orders: orders, users: users, stats: stats}
}

type adminOrderResp struct {
	OrderResp
	UserID string `json:"userId"`
}

// ListOrders returns all orders
// 200 — успешная обработка запроса;
// 500 — внутренняя ошибка сервера.
func (ah *AdminHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := ah.orders.ListOrders(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := make([]adminOrderResp, 0, len(orders))
		for _, order := range orders {
			resp = append(resp, adminOrderResp{
				OrderResp: newOrderResp(order),
				UserID:    order.UserID,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

// ListUsers returns all users
// 200 — успешная обработка запроса;
// 500 — внутренняя ошибка сервера.
func (ah *AdminHandler) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := ah.users.ListUsers(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := make([]userResponse, 0, len(users))
		for _, user := range users {
			u := user
			resp = append(resp, newUserResponse(&u))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

type statsResponse struct {
	TotalOrders       int     `json:"totalOrders"`
	ActiveDeliveries  int     `json:"activeDeliveries"`
	TotalCustomers    int     `json:"totalCustomers"`
	TotalRevenue      float64 `json:"totalRevenue"`
	PendingOrders     int     `json:"pendingOrders"`
	DeliveredOrders   int     `json:"deliveredOrders"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	RecentOrders      int     `json:"recentOrders"`
}

// GetStats returns dashboard statistics
// 200 — успешная обработка запроса;
// 500 — внутренняя ошибка сервера.
func (ah *AdminHandler) GetStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := ah.stats.Collect(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := statsResponse{
			TotalOrders:       stats.TotalOrders,
			ActiveDeliveries:  stats.ActiveDeliveries,
			TotalCustomers:    stats.TotalCustomers,
			TotalRevenue:      stats.TotalRevenue,
			PendingOrders:     stats.PendingOrders,
			DeliveredOrders:   stats.DeliveredOrders,
			AverageOrderValue: stats.AverageOrderValue,
			RecentOrders:      stats.RecentOrders,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

type updateOrderRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus updates order status, typically to delivered
// 200 — статус обновлён;
// 400 — неверный формат запроса;
// 404 — заказ не найден;
// 409 — недопустимый переход статуса;
// 500 — внутренняя ошибка сервера.
func (ah *AdminHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := updateOrderRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		err := ah.orders.UpdateStatus(r.Context(), chi.URLParam(r, "orderID"), req.Status)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			case errors.Is(err, models.ErrConflictData):
				http.Error(w, "invalid status transition", http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

type addUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Address  string `json:"address"`
	City     string `json:"city"`
}

// AddUser creates user with a chosen role
// 201 — пользователь создан;
// 400 — неверный формат запроса;
// 409 — адрес электронной почты уже занят;
// 500 — внутренняя ошибка сервера.
func (ah *AdminHandler) AddUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := addUserRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if req.Name == "" || req.Email == "" || req.Password == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if req.Role != "" && req.Role != models.RoleUser && req.Role != models.RoleAdmin {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		user, err := ah.users.Register(r.Context(), &models.User{
			Name:    req.Name,
			Email:   req.Email,
			Role:    req.Role,
			Address: req.Address,
			City:    req.City,
		}, req.Password)
		if err != nil {
			if errors.Is(err, models.ErrConflictData) {
				http.Error(w, "email already in use", http.StatusConflict)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(newUserResponse(user)); err != nil {
			return
		}
	}
}
