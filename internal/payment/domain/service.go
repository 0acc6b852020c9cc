package domain

import (
	"context"
	"net/http"
	"time"
)

// WebhookService ingests provider callbacks.
type WebhookService interface {
	IngestWebhook(ctx context.Context, provider string, payload []byte, headers http.Header) error
}

type CheckoutService interface {
	// CreateSession opens a hosted checkout for a plan upgrade and
	// returns the session with its redirect URL.
	CreateSession(ctx context.Context, req CreateSessionRequest) (*CheckoutSession, error)
	GetSession(ctx context.Context, id string) (*CheckoutSession, error)

	// CompleteSession marks the session paid and activates the plan.
	// Invoked from webhook processing.
	CompleteSession(ctx context.Context, provider, providerSessionID string) (*CheckoutSession, error)

	// ExpireOpenSessions closes open sessions older than the TTL.
	ExpireOpenSessions(ctx context.Context, olderThan time.Time) (int64, error)
}

type CreateSessionRequest struct {
	PlanCode   string `json:"plan_code" binding:"required"`
	SuccessURL string `json:"success_url,omitempty"`
	CancelURL  string `json:"cancel_url,omitempty"`
}
