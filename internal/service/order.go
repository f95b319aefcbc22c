package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ngandu/cimentmart/internal/models"
	"github.com/ngandu/cimentmart/internal/pending"
)

// OrderRepository is interface for interacting with order-related data
type OrderRepository interface {
	// CreateOrder inserts new order to database
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// GetOrderByID returns order by id
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	// GetOrdersByUserID gets user orders
	GetOrdersByUserID(ctx context.Context, userID string) ([]models.Order, error)
	// GetOrders returns all orders
	GetOrders(ctx context.Context) ([]models.Order, error)
	// UpdateOrderStatus updates order status
	UpdateOrderStatus(ctx context.Context, id string, status string) error
}

// PendingStore holds the per-user pending order between submission and
// payment confirmation
type PendingStore interface {
	Put(ctx context.Context, userID string, order pending.Order) error
	Get(ctx context.Context, userID string) (*pending.Order, error)
	Clear(ctx context.Context, userID string) error
}

// OrderService implements OrderService interface
type OrderService struct {
	repo OrderRepository
	pend PendingStore
}

// NewOrderService creates new OrderService instance
func NewOrderService(repo OrderRepository, pend PendingStore) *OrderService {
	return &OrderService{repo: repo, pend: pend}
}

// Create places a new order. The amount is the catalog unit price times the
// quantity. The order is persisted as pending and stashed as the user's
// pending order until its payment is confirmed.
func (os *OrderService) Create(ctx context.Context, userID, productID string, quantity int) (*models.Order, error) {
	product, err := models.ProductByID(productID)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, models.ErrInvalidQuantity
	}

	now := time.Now()
	order := &models.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		Product:   product.ID,
		Quantity:  quantity,
		Amount:    product.UnitPrice * float64(quantity),
		Status:    models.OrderStatusPending,
		OrderDate: now,
		CreatedAt: now,
	}

	order, err = os.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	err = os.pend.Put(ctx, userID, pending.Order{
		ID:       order.ID,
		Product:  order.Product,
		Quantity: order.Quantity,
		Amount:   order.Amount,
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// ListUserOrders returns list of user orders
func (os *OrderService) ListUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return os.repo.GetOrdersByUserID(ctx, userID)
}

// ListOrders returns all orders
func (os *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return os.repo.GetOrders(ctx)
}

// UpdateStatus moves an order along pending -> processing -> delivered
func (os *OrderService) UpdateStatus(ctx context.Context, id string, status string) error {
	order, err := os.repo.GetOrderByID(ctx, id)
	if err != nil {
		return err
	}

	if !canTransition(order.Status, status) {
		return models.ErrConflictData
	}

	return os.repo.UpdateOrderStatus(ctx, id, status)
}

var validNext = map[string]map[string]bool{
	models.OrderStatusPending:    {models.OrderStatusProcessing: true},
	models.OrderStatusProcessing: {models.OrderStatusDelivered: true},
	models.OrderStatusDelivered:  {},
}

func canTransition(from, to string) bool {
	return validNext[from][to]
}
