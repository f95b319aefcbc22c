package service

import (
	"context"
	"time"

	"github.com/ngandu/cimentmart/internal/models"
)

// Stats is the admin dashboard summary
type Stats struct {
	TotalOrders       int
	ActiveDeliveries  int
	TotalCustomers    int
	TotalRevenue      float64
	PendingOrders     int
	DeliveredOrders   int
	AverageOrderValue float64
	RecentOrders      int
}

// StatsService computes dashboard statistics over full collections
type StatsService struct {
	orders OrderRepository
	users  UserRepository
}

// NewStatsService creates new StatsService instance
func NewStatsService(orders OrderRepository, users UserRepository) *StatsService {
	return &StatsService{orders: orders, users: users}
}

// Collect returns current dashboard stats
func (ss *StatsService) Collect(ctx context.Context) (*Stats, error) {
	orders, err := ss.orders.GetOrders(ctx)
	if err != nil {
		return nil, err
	}

	users, err := ss.users.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	stats := Stats{TotalOrders: len(orders)}

	weekAgo := time.Now().AddDate(0, 0, -7)

	for _, order := range orders {
		stats.TotalRevenue += order.Amount
		switch order.Status {
		case models.OrderStatusPending:
			stats.PendingOrders++
		case models.OrderStatusProcessing:
			stats.ActiveDeliveries++
		case models.OrderStatusDelivered:
			stats.DeliveredOrders++
		}
		if order.OrderDate.After(weekAgo) {
			stats.RecentOrders++
		}
	}

	if len(orders) > 0 {
		stats.AverageOrderValue = stats.TotalRevenue / float64(len(orders))
	}

	for _, user := range users {
		if user.Role == models.RoleUser {
			stats.TotalCustomers++
		}
	}

	return &stats, nil
}
