package service

import (
	"context"
	"testing"

	"github.com/ngandu/cimentmart/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	orders  []models.Order
	updates map[string]string
}

func (r *fakeOrderRepo) CreateOrder(_ context.Context, order *models.Order) (*models.Order, error) {
	r.orders = append(r.orders, *order)
	return order, nil
}

func (r *fakeOrderRepo) GetOrderByID(_ context.Context, id string) (*models.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, models.ErrDataNotFound
}

func (r *fakeOrderRepo) GetOrdersByUserID(_ context.Context, userID string) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) GetOrders(_ context.Context) ([]models.Order, error) {
	return r.orders, nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(_ context.Context, id string, status string) error {
	if r.updates == nil {
		r.updates = map[string]string{}
	}
	for i, o := range r.orders {
		if o.ID == id {
			r.orders[i].Status = status
			r.updates[id] = status
			return nil
		}
	}
	return models.ErrDataNotFound
}

func TestOrderService_Create(t *testing.T) {
	repo := &fakeOrderRepo{}
	pend := &fakePendingStore{}
	os := NewOrderService(repo, pend)

	order, err := os.Create(context.Background(), "u1", "cem-42-5", 10)
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, float64(280000), order.Amount, "amount is unit price times quantity")

	require.NotNil(t, pend.order, "order stashed as the user's pending order")
	assert.Equal(t, order.ID, pend.order.ID)
	assert.Equal(t, order.Amount, pend.order.Amount)
}

func TestOrderService_Create_UnknownProduct(t *testing.T) {
	os := NewOrderService(&fakeOrderRepo{}, &fakePendingStore{})

	_, err := os.Create(context.Background(), "u1", "cem-52-5", 10)
	assert.ErrorIs(t, err, models.ErrUnknownProduct)
}

func TestOrderService_Create_InvalidQuantity(t *testing.T) {
	os := NewOrderService(&fakeOrderRepo{}, &fakePendingStore{})

	for _, q := range []int{0, -3} {
		_, err := os.Create(context.Background(), "u1", "cem-42-5", q)
		assert.ErrorIs(t, err, models.ErrInvalidQuantity)
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{name: "pending_to_processing", from: models.OrderStatusPending, to: models.OrderStatusProcessing},
		{name: "processing_to_delivered", from: models.OrderStatusProcessing, to: models.OrderStatusDelivered},
		{name: "pending_to_delivered_rejected", from: models.OrderStatusPending, to: models.OrderStatusDelivered, wantErr: models.ErrConflictData},
		{name: "delivered_is_terminal", from: models.OrderStatusDelivered, to: models.OrderStatusProcessing, wantErr: models.ErrConflictData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeOrderRepo{orders: []models.Order{{ID: "o1", UserID: "u1", Status: tt.from}}}
			os := NewOrderService(repo, &fakePendingStore{})

			err := os.UpdateStatus(context.Background(), "o1", tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, repo.updates["o1"])
		})
	}
}
