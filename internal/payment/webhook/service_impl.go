package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/config"
	"github.com/mietwerklabs/mietwerk/internal/payment/adapters"
	paymentdomain "github.com/mietwerklabs/mietwerk/internal/payment/domain"
	subscriptiondomain "github.com/mietwerklabs/mietwerk/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB              *gorm.DB
	Log             *zap.Logger
	GenID           *snowflake.Node
	Cfg             *config.Config
	Adapters        *adapters.Registry
	CheckoutSvc     paymentdomain.CheckoutService
	EventRepo       paymentdomain.EventRepository
	SubscriptionSvc subscriptiondomain.Service
}

type Service struct {
	db              *gorm.DB
	log             *zap.Logger
	genID           *snowflake.Node
	cfg             *config.Config
	adapters        *adapters.Registry
	checkoutSvc     paymentdomain.CheckoutService
	eventRepo       paymentdomain.EventRepository
	subscriptionSvc subscriptiondomain.Service
}

func NewService(p Params) paymentdomain.WebhookService {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("payment.webhook"),
		genID:           p.GenID,
		cfg:             p.Cfg,
		adapters:        p.Adapters,
		checkoutSvc:     p.CheckoutSvc,
		eventRepo:       p.EventRepo,
		subscriptionSvc: p.SubscriptionSvc,
	}
}

func (s *Service) IngestWebhook(ctx context.Context, provider string, payload []byte, headers http.Header) error {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return paymentdomain.ErrInvalidProvider
	}
	if s.adapters == nil || !s.adapters.ProviderExists(provider) {
		return paymentdomain.ErrProviderNotFound
	}
	if !json.Valid(payload) {
		return paymentdomain.ErrInvalidPayload
	}

	adapter, err := s.adapters.NewAdapter(provider, paymentdomain.AdapterConfig{
		APIKey:        s.cfg.Payment.APIKey,
		WebhookSecret: s.cfg.Payment.WebhookSecret,
	})
	if err != nil {
		return err
	}

	if err := adapter.Verify(ctx, payload, headers); err != nil {
		return err
	}

	event, err := adapter.Parse(ctx, payload)
	if err != nil {
		if errors.Is(err, paymentdomain.ErrEventIgnored) {
			s.log.Debug("webhook event ignored", zap.String("provider", provider))
			return nil
		}
		s.log.Error("webhook parsing failed",
			zap.String("provider", provider),
			zap.Error(err))
		return err
	}

	seen, err := s.eventRepo.Exists(ctx, s.db, provider, event.ProviderEventID)
	if err != nil {
		return err
	}
	if seen {
		s.log.Debug("webhook event already processed",
			zap.String("provider", provider),
			zap.String("provider_event_id", event.ProviderEventID))
		return nil
	}

	record := &paymentdomain.EventRecord{
		ID:              s.genID.Generate(),
		AccountID:       event.AccountID,
		Provider:        provider,
		ProviderEventID: event.ProviderEventID,
		EventType:       event.Type,
		Payload:         maskPayload(payload),
		ReceivedAt:      time.Now().UTC(),
	}
	if err := s.eventRepo.Insert(ctx, s.db, record); err != nil {
		return err
	}

	if err := s.dispatch(ctx, provider, event); err != nil {
		return err
	}

	return s.eventRepo.MarkProcessed(ctx, s.db, record.ID, time.Now().UTC())
}

func (s *Service) dispatch(ctx context.Context, provider string, event *paymentdomain.PaymentEvent) error {
	switch event.Type {
	case paymentdomain.EventTypeCheckoutSessionCompleted, paymentdomain.EventTypePaymentSucceeded:
		if event.ProviderSessionID == "" {
			return nil
		}
		_, err := s.checkoutSvc.CompleteSession(ctx, provider, event.ProviderSessionID)
		if errors.Is(err, paymentdomain.ErrCheckoutSessionNotFound) {
			s.log.Warn("webhook references unknown checkout session",
				zap.String("provider", provider),
				zap.String("provider_session_id", event.ProviderSessionID))
			return nil
		}
		return err
	case paymentdomain.EventTypePaymentFailed:
		return s.subscriptionSvc.MarkPastDue(ctx, event.AccountID)
	default:
		return nil
	}
}

// maskPayload blanks card and address details before the raw event is
// persisted.
func maskPayload(raw []byte) []byte {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return raw
	}
	maskMap(obj)
	masked, err := json.Marshal(obj)
	if err != nil {
		return raw
	}
	return masked
}

func maskMap(m map[string]any) {
	for k, v := range m {
		switch strings.ToLower(k) {
		case "card", "billing_details", "shipping_details", "payment_method_details", "customer_details":
			m[k] = "***"
		default:
			if nested, ok := v.(map[string]any); ok {
				maskMap(nested)
			} else if arr, ok := v.([]any); ok {
				for _, item := range arr {
					if itemMap, ok := item.(map[string]any); ok {
						maskMap(itemMap)
					}
				}
			}
		}
	}
}
