package domain

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
)

// AdapterConfig carries the provider credentials from configuration.
type AdapterConfig struct {
	APIKey        string
	WebhookSecret string
}

// CheckoutInput is the provider-agnostic checkout request.
type CheckoutInput struct {
	AccountID   snowflake.ID
	PlanCode    string
	PlanName    string
	AmountCents int64
	Currency    string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// ProviderCheckoutSession is returned by the adapter.
type ProviderCheckoutSession struct {
	ID        string
	Provider  string
	URL       string
	Status    CheckoutSessionStatus
	ExpiresAt time.Time
}

// Adapter is one payment provider integration. Verify authenticates a
// webhook payload, Parse maps it to the canonical PaymentEvent.
type Adapter interface {
	Provider() string
	CreateCheckoutSession(ctx context.Context, input CheckoutInput) (*ProviderCheckoutSession, error)
	Verify(ctx context.Context, payload []byte, headers http.Header) error
	Parse(ctx context.Context, payload []byte) (*PaymentEvent, error)
}

// Factory builds an adapter from credentials. Registered per provider.
type Factory interface {
	Provider() string
	NewAdapter(cfg AdapterConfig) (Adapter, error)
}
