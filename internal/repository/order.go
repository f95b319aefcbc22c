package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/ngandu/cimentmart/internal/models"
	"github.com/ngandu/cimentmart/internal/repository/postgres"
)

const (
	insertOrderQuery = `
						INSERT INTO orders (id, user_id, product, quantity, amount, status, order_date)
						VALUES ($1, $2, $3, $4, $5, $6, $7)
						RETURNING id, user_id, product, quantity, amount, status, order_date, created_at
`
	selectOrderByIDQuery = `
						SELECT id, user_id, product, quantity, amount, status, order_date, created_at FROM orders
						WHERE id = $1
`
	selectOrdersByUserIDQuery = `
						SELECT id, user_id, product, quantity, amount, status, order_date, created_at FROM orders
						WHERE user_id = $1
						ORDER BY created_at DESC
`
	selectOrdersQuery = `
						SELECT id, user_id, product, quantity, amount, status, order_date, created_at FROM orders
						ORDER BY created_at DESC
`
	updateOrderStatusQuery = `
						UPDATE orders
						SET status = $1
						WHERE id = $2
`
)

// OrderRepository implements OrderRepository interface
type OrderRepository struct {
	db *postgres.DB
}

// NewOrderRepository creates new OrderRepository instance
func NewOrderRepository(db *postgres.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder inserts new order to database
func (or *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	err := or.db.QueryRow(ctx, insertOrderQuery, order.ID, order.UserID, order.Product, order.Quantity, order.Amount, order.Status, order.OrderDate).
		Scan(&order.ID, &order.UserID, &order.Product, &order.Quantity, &order.Amount, &order.Status, &order.OrderDate, &order.CreatedAt)
	if err != nil {
		if errCode := or.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return order, nil
}

// GetOrderByID returns order by id
func (or *OrderRepository) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	order := models.Order{}
	err := or.db.QueryRow(ctx, selectOrderByIDQuery, id).
		Scan(&order.ID, &order.UserID, &order.Product, &order.Quantity, &order.Amount, &order.Status, &order.OrderDate, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &order, nil
}

// GetOrdersByUserID gets user orders
func (or *OrderRepository) GetOrdersByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	return or.queryOrders(ctx, selectOrdersByUserIDQuery, userID)
}

// GetOrders returns all orders
func (or *OrderRepository) GetOrders(ctx context.Context) ([]models.Order, error) {
	return or.queryOrders(ctx, selectOrdersQuery)
}

// UpdateOrderStatus updates order status
func (or *OrderRepository) UpdateOrderStatus(ctx context.Context, id string, status string) error {
	cmd, err := or.db.Exec(ctx, updateOrderStatusQuery, status, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

func (or *OrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := or.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}

	for rows.Next() {
		order := models.Order{}
		err = rows.Scan(&order.ID, &order.UserID, &order.Product, &order.Quantity, &order.Amount, &order.Status, &order.OrderDate, &order.CreatedAt)
		if err != nil {
			continue
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
