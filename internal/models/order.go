package models

import "time"

//pending — commande enregistrée, paiement non confirmé;
//processing — paiement confirmé, commande en préparation;
//delivered — commande livrée (action administrateur).

// order status
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusDelivered  = "delivered"
)

// Order is order entity
type Order struct {
	ID        string
	UserID    string
	Product   string
	Quantity  int
	Amount    float64
	Status    string
	OrderDate time.Time
	CreatedAt time.Time
}
