package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"testing"

	paymentdomain "github.com/mietwerklabs/mietwerk/internal/payment/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test"

func signedHeader(secret string, payload []byte) string {
	ts := "1700000000"
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts + "." + string(payload)))
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func newAdapter(t *testing.T) paymentdomain.Adapter {
	t.Helper()
	adapter, err := NewFactory().NewAdapter(paymentdomain.AdapterConfig{
		APIKey:        "sk_test",
		WebhookSecret: testSecret,
	})
	require.NoError(t, err)
	return adapter
}

func TestVerifyAcceptsValidSignature(t *testing.T) {
	adapter := newAdapter(t)
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)

	headers := http.Header{}
	headers.Set("Stripe-Signature", signedHeader(testSecret, payload))
	assert.NoError(t, adapter.Verify(context.Background(), payload, headers))
}

func TestVerifyRejectsBadSignature(t *testing.T) {
	adapter := newAdapter(t)
	payload := []byte(`{"id":"evt_1"}`)

	headers := http.Header{}
	headers.Set("Stripe-Signature", signedHeader("whsec_wrong", payload))
	assert.ErrorIs(t, adapter.Verify(context.Background(), payload, headers), paymentdomain.ErrInvalidSignature)

	headers.Set("Stripe-Signature", "garbage")
	assert.ErrorIs(t, adapter.Verify(context.Background(), payload, headers), paymentdomain.ErrInvalidSignature)

	headers.Del("Stripe-Signature")
	assert.ErrorIs(t, adapter.Verify(context.Background(), payload, headers), paymentdomain.ErrInvalidSignature)
}

func TestParseCheckoutSessionCompleted(t *testing.T) {
	adapter := newAdapter(t)
	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"created": 1700000000,
		"data": {"object": {
			"id": "cs_test_123",
			"client_reference_id": "1234567890",
			"status": "complete",
			"payment_status": "paid",
			"amount_total": 1900,
			"currency": "eur",
			"metadata": {"plan_code": "starter"}
		}}
	}`)

	event, err := adapter.Parse(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, paymentdomain.EventTypeCheckoutSessionCompleted, event.Type)
	assert.Equal(t, "evt_1", event.ProviderEventID)
	assert.Equal(t, "cs_test_123", event.ProviderSessionID)
	assert.Equal(t, "1234567890", event.AccountID.String())
	assert.Equal(t, int64(1900), event.Amount)
	assert.Equal(t, "EUR", event.Currency)
}

func TestParseFallsBackToMetadataAccount(t *testing.T) {
	adapter := newAdapter(t)
	payload := []byte(`{
		"id": "evt_2",
		"type": "checkout.session.async_payment_failed",
		"data": {"object": {
			"id": "cs_test_456",
			"metadata": {"account_id": "42"}
		}}
	}`)

	event, err := adapter.Parse(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, paymentdomain.EventTypePaymentFailed, event.Type)
	assert.Equal(t, "42", event.AccountID.String())
}

func TestParseIgnoresUnknownEventTypes(t *testing.T) {
	adapter := newAdapter(t)
	payload := []byte(`{"id":"evt_3","type":"customer.created","data":{"object":{}}}`)

	_, err := adapter.Parse(context.Background(), payload)
	assert.ErrorIs(t, err, paymentdomain.ErrEventIgnored)
}

func TestParseRejectsMissingAccount(t *testing.T) {
	adapter := newAdapter(t)
	payload := []byte(`{
		"id": "evt_4",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test_789"}}
	}`)

	_, err := adapter.Parse(context.Background(), payload)
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidAccount)
}
