package models

import "time"

//pending — paiement soumis à la passerelle, verdict non reçu;
//payé — la passerelle a confirmé le paiement;
//échec — la passerelle a refusé le paiement.

// payment status
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "payé"
	PaymentStatusFailed  = "échec"
)

// payment method
const (
	PaymentMethodBank   = "bank"
	PaymentMethodMobile = "mobile"
)

// AccountDetails holds method-specific payment details. For bank payments
// AccountNumber and BankName are set, for mobile money PhoneNumber and
// Operator.
type AccountDetails struct {
	AccountNumber string `json:"accountNumber,omitempty"`
	BankName      string `json:"bankName,omitempty"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	Operator      string `json:"operator,omitempty"`
}

// Payment is payment entity. There is at most one payment per order,
// ID equals OrderID.
type Payment struct {
	ID             string
	OrderID        string
	UserID         string
	Amount         float64
	PaymentMethod  string
	AccountDetails AccountDetails
	Status         string
	Reference      string
	OrderNumber    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
