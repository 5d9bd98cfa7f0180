// internal/services/checkout_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/models"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrPaymentsDisabled = errors.New("payments are not configured")
)

// CheckoutService starts a Stripe payment for the priced cart.
type CheckoutService struct {
	cart         *CartService
	config       *config.Config
	createIntent func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type PaymentIntentResponse struct {
	ClientSecret string              `json:"client_secret"`
	PaymentID    string              `json:"payment_id"`
	Status       string              `json:"status"`
	Amount       float64             `json:"amount"`
	Currency     string              `json:"currency"`
	Cart         *models.CartSummary `json:"cart"`
}

func NewCheckoutService(cart *CartService, config *config.Config) *CheckoutService {
	// Initialize Stripe
	stripe.Key = config.Payment.StripeSecretKey

	return &CheckoutService{
		cart:         cart,
		config:       config,
		createIntent: paymentintent.New,
	}
}

func (s *CheckoutService) Enabled() bool {
	return s.config.Payment.StripeSecretKey != ""
}

// CreatePaymentIntent charges the cart subtotal. Lines for products that left
// the catalog are not charged.
func (s *CheckoutService) CreatePaymentIntent(ctx context.Context, sessionID string) (*PaymentIntentResponse, error) {
	if !s.Enabled() {
		return nil, ErrPaymentsDisabled
	}

	summary, err := s.cart.Summary(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(summary.Items) == 0 || summary.Subtotal <= 0 {
		return nil, ErrEmptyCart
	}

	currency := s.config.Payment.Currency
	if currency == "" {
		currency = "rub"
	}

	// Convert amount to minor units for Stripe
	amountInMinor := int64(math.Round(summary.Subtotal * 100))

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInMinor),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	params.AddMetadata("session_id", sessionID)
	params.AddMetadata("total_items", strconv.Itoa(summary.TotalItems))

	pi, err := s.createIntent(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &PaymentIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
		Amount:       summary.Subtotal,
		Currency:     currency,
		Cart:         summary,
	}, nil
}
