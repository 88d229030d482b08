package models

import "time"

// PaymentRequest is the input to the payment handler.
type PaymentRequest struct {
	UserID      string
	Amount      float64
	Currency    string
	Method      string // Stripe payment method id, e.g. "pm_card_visa"
	Description string
	Metadata    map[string]string
}

// Invoice records the outcome of a processed payment.
type Invoice struct {
	InvoiceID string    `bson:"invoice_id" json:"invoice_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Amount    float64   `bson:"amount" json:"amount"`
	Currency  string    `bson:"currency" json:"currency"`
	Status    string    `bson:"status" json:"status"` // e.g. "paid", "failed"
	PaymentID string    `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	Error     string    `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
