package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type CheckoutSessionStatus string
type PaymentStatus string

const (
	CheckoutSessionStatusOpen     CheckoutSessionStatus = "open"
	CheckoutSessionStatusComplete CheckoutSessionStatus = "complete"
	CheckoutSessionStatusExpired  CheckoutSessionStatus = "expired"

	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// CheckoutSession tracks one hosted plan-upgrade checkout at the
// provider. ProviderSessionID links webhook events back to the row.
type CheckoutSession struct {
	ID                snowflake.ID          `json:"id" gorm:"primaryKey;autoIncrement:false"`
	AccountID         snowflake.ID          `json:"account_id" gorm:"not null;index"`
	Provider          string                `json:"provider" gorm:"type:varchar(50);not null"`
	PlanCode          string                `json:"plan_code" gorm:"type:varchar(50);not null"`
	Status            CheckoutSessionStatus `json:"status" gorm:"type:varchar(20);not null"`
	PaymentStatus     PaymentStatus         `json:"payment_status" gorm:"type:varchar(20);not null"`
	AmountCents       int64                 `json:"amount_cents" gorm:"not null"`
	Currency          string                `json:"currency" gorm:"type:varchar(3);not null"`
	SuccessURL        string                `json:"success_url" gorm:"type:text"`
	CancelURL         string                `json:"cancel_url" gorm:"type:text"`
	ProviderSessionID string                `json:"provider_session_id" gorm:"type:varchar(255);index"`
	Metadata          datatypes.JSONMap     `json:"metadata" gorm:"type:jsonb;default:'{}'"`
	ExpiresAt         *time.Time            `json:"expires_at"`
	CompletedAt       *time.Time            `json:"completed_at"`
	CreatedAt         time.Time             `json:"created_at" gorm:"not null"`
	UpdatedAt         time.Time             `json:"updated_at" gorm:"not null"`

	// Hosted checkout URL, returned once on create, never stored.
	URL string `json:"url,omitempty" gorm:"-"`
}

func (CheckoutSession) TableName() string { return "checkout_sessions" }

// EventRecord is the processed-webhook ledger used for idempotency: a
// provider event id that already has a row is dropped silently.
type EventRecord struct {
	ID              snowflake.ID   `json:"id" gorm:"primaryKey;autoIncrement:false"`
	AccountID       snowflake.ID   `json:"account_id" gorm:"not null;index"`
	Provider        string         `json:"provider" gorm:"type:text;not null;uniqueIndex:idx_payment_events_provider_event"`
	ProviderEventID string         `json:"provider_event_id" gorm:"type:text;not null;uniqueIndex:idx_payment_events_provider_event"`
	EventType       string         `json:"event_type" gorm:"type:text;not null"`
	Payload         datatypes.JSON `json:"payload" gorm:"type:jsonb;not null"`
	ReceivedAt      time.Time      `json:"received_at" gorm:"not null"`
	ProcessedAt     *time.Time     `json:"processed_at"`
}

func (EventRecord) TableName() string { return "payment_events" }

const (
	EventTypeCheckoutSessionCompleted = "checkout_session_completed"
	EventTypePaymentSucceeded         = "payment_succeeded"
	EventTypePaymentFailed            = "payment_failed"
)

// PaymentEvent is the canonical event parsed by adapters.
type PaymentEvent struct {
	Provider          string
	ProviderEventID   string
	ProviderSessionID string
	Type              string
	AccountID         snowflake.ID
	Amount            int64
	Currency          string
	OccurredAt        time.Time
	RawPayload        []byte
}

var (
	ErrInvalidProvider         = errors.New("invalid_provider")
	ErrProviderNotFound        = errors.New("provider_not_found")
	ErrInvalidConfig           = errors.New("invalid_config")
	ErrInvalidSignature        = errors.New("invalid_signature")
	ErrInvalidPayload          = errors.New("invalid_payload")
	ErrInvalidEvent            = errors.New("invalid_event")
	ErrEventIgnored            = errors.New("event_ignored")
	ErrInvalidAccount          = errors.New("invalid_account")
	ErrUnknownPlan             = errors.New("unknown_plan")
	ErrCheckoutSessionNotFound = errors.New("checkout_session_not_found")
)
