package booking

import (
	"context"
	"fmt"
	"math"
	"time"

	"bookmyspot/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// PaymentHandler charges the renter before a booking is promoted to active.
type PaymentHandler interface {
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error)
}

// StripePaymentHandler charges via Stripe PaymentIntents. The API key is
// set globally at startup.
type StripePaymentHandler struct {
	logger *zap.Logger
}

// NewStripePaymentHandler creates the production payment handler.
func NewStripePaymentHandler(logger *zap.Logger) *StripePaymentHandler {
	return &StripePaymentHandler{logger: logger}
}

// ProcessPayment creates and confirms a PaymentIntent for the booking amount.
func (h *StripePaymentHandler) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("invalid payment request: amount must be positive")
	}
	if req.Method == "" {
		return nil, fmt.Errorf("invalid payment request: missing payment method")
	}

	now := time.Now()
	inv := &models.Invoice{
		InvoiceID: uuid.New().String(),
		UserID:    req.UserID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Status:    "pending",
		CreatedAt: now,
		UpdatedAt: now,
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(int64(math.Round(req.Amount * 100))),
		Currency:      stripe.String(req.Currency),
		PaymentMethod: stripe.String(req.Method),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String(req.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		inv.Status = "failed"
		inv.Error = err.Error()
		h.logger.Warn("stripe payment failed",
			zap.String("userID", req.UserID), zap.Error(err))
		return inv, fmt.Errorf("payment failed: %w", err)
	}

	inv.PaymentID = pi.ID
	inv.UpdatedAt = time.Now()
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		inv.Status = "failed"
		inv.Error = fmt.Sprintf("payment intent status %s", pi.Status)
		return inv, fmt.Errorf("payment not completed: intent status %s", pi.Status)
	}

	inv.Status = "paid"
	h.logger.Info("payment successful",
		zap.String("invoice", inv.InvoiceID), zap.String("paymentIntent", pi.ID))
	return inv, nil
}
