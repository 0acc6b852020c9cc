// Package stripe integrates the hosted Stripe checkout and its webhook
// callbacks without the vendored SDK: the two endpoints in use are
// plain form-encoded HTTP calls.
package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	paymentdomain "github.com/mietwerklabs/mietwerk/internal/payment/domain"
)

const apiBase = "https://api.stripe.com/v1"

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Provider() string {
	return "stripe"
}

func (f *Factory) NewAdapter(cfg paymentdomain.AdapterConfig) (paymentdomain.Adapter, error) {
	secret := strings.TrimSpace(cfg.WebhookSecret)
	if secret == "" {
		return nil, paymentdomain.ErrInvalidConfig
	}
	return &Adapter{
		webhookSecret: secret,
		apiKey:        strings.TrimSpace(cfg.APIKey),
		client:        &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type Adapter struct {
	webhookSecret string
	apiKey        string
	client        *http.Client
}

func (a *Adapter) Provider() string { return "stripe" }

func (a *Adapter) Verify(ctx context.Context, payload []byte, headers http.Header) error {
	sigHeader := strings.TrimSpace(headers.Get("Stripe-Signature"))
	if sigHeader == "" {
		return paymentdomain.ErrInvalidSignature
	}

	timestamp, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return paymentdomain.ErrInvalidSignature
	}

	signedPayload := fmt.Sprintf("%s.%s", timestamp, string(payload))
	mac := hmac.New(sha256.New, []byte(a.webhookSecret))
	_, _ = mac.Write([]byte(signedPayload))
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, signature := range signatures {
		if hmac.Equal([]byte(signature), []byte(expected)) {
			return nil
		}
	}
	return paymentdomain.ErrInvalidSignature
}

func (a *Adapter) Parse(ctx context.Context, payload []byte) (*paymentdomain.PaymentEvent, error) {
	var event stripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, paymentdomain.ErrInvalidPayload
	}
	if strings.TrimSpace(event.ID) == "" {
		return nil, paymentdomain.ErrInvalidEvent
	}

	switch strings.TrimSpace(event.Type) {
	case "checkout.session.completed":
		return a.parseCheckoutSession(event, payload, paymentdomain.EventTypeCheckoutSessionCompleted)
	case "checkout.session.async_payment_succeeded":
		return a.parseCheckoutSession(event, payload, paymentdomain.EventTypePaymentSucceeded)
	case "checkout.session.async_payment_failed":
		return a.parseCheckoutSession(event, payload, paymentdomain.EventTypePaymentFailed)
	case "invoice.payment_failed":
		return a.parseInvoice(event, payload, paymentdomain.EventTypePaymentFailed)
	default:
		return nil, paymentdomain.ErrEventIgnored
	}
}

func (a *Adapter) CreateCheckoutSession(ctx context.Context, input paymentdomain.CheckoutInput) (*paymentdomain.ProviderCheckoutSession, error) {
	if a.apiKey == "" {
		return nil, paymentdomain.ErrInvalidConfig
	}

	data := url.Values{}
	data.Set("mode", "payment")
	data.Set("success_url", input.SuccessURL)
	data.Set("cancel_url", input.CancelURL)
	data.Set("line_items[0][price_data][currency]", strings.ToLower(input.Currency))
	data.Set("line_items[0][price_data][product_data][name]", input.PlanName)
	data.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(input.AmountCents, 10))
	data.Set("line_items[0][quantity]", "1")
	data.Set("client_reference_id", input.AccountID.String())
	data.Set("metadata[account_id]", input.AccountID.String())
	data.Set("metadata[plan_code]", input.PlanCode)
	for k, v := range input.Metadata {
		data.Set("metadata["+k+"]", v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		apiBase+"/checkout/sessions", strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("stripe api error: %d body: %s", resp.StatusCode, string(body))
	}

	var session struct {
		ID        string `json:"id"`
		URL       string `json:"url"`
		Status    string `json:"status"`
		ExpiresAt int64  `json:"expires_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}

	return &paymentdomain.ProviderCheckoutSession{
		ID:        session.ID,
		Provider:  "stripe",
		URL:       session.URL,
		Status:    mapStatus(session.Status),
		ExpiresAt: time.Unix(session.ExpiresAt, 0).UTC(),
	}, nil
}

type stripeEvent struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Created int64           `json:"created"`
	Data    stripeEventData `json:"data"`
}

type stripeEventData struct {
	Object json.RawMessage `json:"object"`
}

type stripeCheckoutSession struct {
	ID                string         `json:"id"`
	ClientReferenceID string         `json:"client_reference_id"`
	Status            string         `json:"status"`
	PaymentStatus     string         `json:"payment_status"`
	AmountTotal       int64          `json:"amount_total"`
	Currency          string         `json:"currency"`
	Created           int64          `json:"created"`
	Metadata          map[string]any `json:"metadata"`
}

type stripeInvoice struct {
	ID        string         `json:"id"`
	AmountDue int64          `json:"amount_due"`
	Currency  string         `json:"currency"`
	Created   int64          `json:"created"`
	Metadata  map[string]any `json:"metadata"`
}

func (a *Adapter) parseCheckoutSession(event stripeEvent, payload []byte, eventType string) (*paymentdomain.PaymentEvent, error) {
	var session stripeCheckoutSession
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		return nil, paymentdomain.ErrInvalidPayload
	}

	accountRaw := strings.TrimSpace(session.ClientReferenceID)
	if accountRaw == "" {
		accountRaw = readMetadataValue(session.Metadata, "account_id")
	}
	if accountRaw == "" {
		return nil, paymentdomain.ErrInvalidAccount
	}
	accountID, err := snowflake.ParseString(accountRaw)
	if err != nil {
		return nil, paymentdomain.ErrInvalidAccount
	}

	return &paymentdomain.PaymentEvent{
		Provider:          "stripe",
		ProviderEventID:   event.ID,
		ProviderSessionID: session.ID,
		Type:              eventType,
		AccountID:         accountID,
		Amount:            session.AmountTotal,
		Currency:          strings.ToUpper(strings.TrimSpace(session.Currency)),
		OccurredAt:        timestamp(session.Created, event.Created),
		RawPayload:        payload,
	}, nil
}

func (a *Adapter) parseInvoice(event stripeEvent, payload []byte, eventType string) (*paymentdomain.PaymentEvent, error) {
	var invoice stripeInvoice
	if err := json.Unmarshal(event.Data.Object, &invoice); err != nil {
		return nil, paymentdomain.ErrInvalidPayload
	}

	accountRaw := readMetadataValue(invoice.Metadata, "account_id")
	if accountRaw == "" {
		return nil, paymentdomain.ErrInvalidAccount
	}
	accountID, err := snowflake.ParseString(accountRaw)
	if err != nil {
		return nil, paymentdomain.ErrInvalidAccount
	}

	return &paymentdomain.PaymentEvent{
		Provider:        "stripe",
		ProviderEventID: event.ID,
		Type:            eventType,
		AccountID:       accountID,
		Amount:          invoice.AmountDue,
		Currency:        strings.ToUpper(strings.TrimSpace(invoice.Currency)),
		OccurredAt:      timestamp(invoice.Created, event.Created),
		RawPayload:      payload,
	}, nil
}

func parseSignatureHeader(header string) (string, []string, error) {
	parts := strings.Split(header, ",")
	var timestamp string
	signatures := []string{}
	for _, part := range parts {
		piece := strings.TrimSpace(part)
		if piece == "" {
			continue
		}
		keyValue := strings.SplitN(piece, "=", 2)
		if len(keyValue) != 2 {
			continue
		}
		key := strings.TrimSpace(keyValue[0])
		value := strings.TrimSpace(keyValue[1])
		if key == "t" {
			timestamp = value
		}
		if key == "v1" {
			signatures = append(signatures, value)
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return "", nil, errors.New("invalid_signature")
	}
	return timestamp, signatures, nil
}

func mapStatus(status string) paymentdomain.CheckoutSessionStatus {
	switch status {
	case "complete":
		return paymentdomain.CheckoutSessionStatusComplete
	case "expired":
		return paymentdomain.CheckoutSessionStatusExpired
	default:
		return paymentdomain.CheckoutSessionStatusOpen
	}
}

func timestamp(primary, fallback int64) time.Time {
	value := primary
	if value == 0 {
		value = fallback
	}
	if value == 0 {
		return time.Now().UTC()
	}
	return time.Unix(value, 0).UTC()
}

func readMetadataValue(metadata map[string]any, key string) string {
	if metadata == nil {
		return ""
	}
	value, ok := metadata[key]
	if !ok {
		return ""
	}
	switch cast := value.(type) {
	case string:
		return strings.TrimSpace(cast)
	case float64:
		if cast == 0 {
			return ""
		}
		return strconv.FormatInt(int64(cast), 10)
	case json.Number:
		return cast.String()
	}
	return ""
}
