package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/clock"
	"github.com/mietwerklabs/mietwerk/internal/config"
	"github.com/mietwerklabs/mietwerk/internal/orgcontext"
	"github.com/mietwerklabs/mietwerk/internal/payment/adapters"
	"github.com/mietwerklabs/mietwerk/internal/payment/domain"
	subscriptiondomain "github.com/mietwerklabs/mietwerk/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// paidPeriod is the length of the period one checkout pays for.
const paidPeriod = 30 * 24 * time.Hour

type CheckoutParams struct {
	fx.In

	DB              *gorm.DB
	Log             *zap.Logger
	GenID           *snowflake.Node
	Clock           clock.Clock
	Cfg             *config.Config
	Repo            domain.CheckoutSessionRepository
	Registry        *adapters.Registry
	SubscriptionSvc subscriptiondomain.Service
}

type CheckoutService struct {
	db              *gorm.DB
	log             *zap.Logger
	genID           *snowflake.Node
	clock           clock.Clock
	cfg             *config.Config
	repo            domain.CheckoutSessionRepository
	registry        *adapters.Registry
	subscriptionSvc subscriptiondomain.Service
}

func NewCheckoutService(p CheckoutParams) domain.CheckoutService {
	return &CheckoutService{
		db:              p.DB,
		log:             p.Log.Named("payment.checkout"),
		genID:           p.GenID,
		clock:           p.Clock,
		cfg:             p.Cfg,
		repo:            p.Repo,
		registry:        p.Registry,
		subscriptionSvc: p.SubscriptionSvc,
	}
}

func (s *CheckoutService) CreateSession(ctx context.Context, req domain.CreateSessionRequest) (*domain.CheckoutSession, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	plan, ok := subscriptiondomain.Plans[strings.TrimSpace(req.PlanCode)]
	if !ok || plan.MonthlyPriceCents <= 0 {
		return nil, domain.ErrUnknownPlan
	}

	provider := strings.ToLower(strings.TrimSpace(s.cfg.Payment.Provider))
	adapter, err := s.registry.NewAdapter(provider, domain.AdapterConfig{
		APIKey:        s.cfg.Payment.APIKey,
		WebhookSecret: s.cfg.Payment.WebhookSecret,
	})
	if err != nil {
		return nil, err
	}

	successURL := strings.TrimSpace(req.SuccessURL)
	if successURL == "" {
		successURL = s.cfg.Payment.SuccessURL
	}
	cancelURL := strings.TrimSpace(req.CancelURL)
	if cancelURL == "" {
		cancelURL = s.cfg.Payment.CancelURL
	}

	providerSession, err := adapter.CreateCheckoutSession(ctx, domain.CheckoutInput{
		AccountID:   accountID,
		PlanCode:    plan.Code,
		PlanName:    "Mietwerk " + plan.Name,
		AmountCents: plan.MonthlyPriceCents,
		Currency:    "EUR",
		SuccessURL:  successURL,
		CancelURL:   cancelURL,
	})
	if err != nil {
		return nil, err
	}

	now := s.clock.Now(ctx)
	expiresAt := providerSession.ExpiresAt
	session := &domain.CheckoutSession{
		ID:                s.genID.Generate(),
		AccountID:         accountID,
		Provider:          provider,
		PlanCode:          plan.Code,
		Status:            domain.CheckoutSessionStatusOpen,
		PaymentStatus:     domain.PaymentStatusUnpaid,
		AmountCents:       plan.MonthlyPriceCents,
		Currency:          "EUR",
		SuccessURL:        successURL,
		CancelURL:         cancelURL,
		ProviderSessionID: providerSession.ID,
		ExpiresAt:         &expiresAt,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Insert(ctx, s.db, session); err != nil {
		return nil, err
	}

	session.URL = providerSession.URL
	return session, nil
}

func (s *CheckoutService) GetSession(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	sessionID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrCheckoutSessionNotFound
	}
	session, err := s.repo.FindByID(ctx, s.db, accountID, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrCheckoutSessionNotFound
	}
	return session, nil
}

func (s *CheckoutService) CompleteSession(ctx context.Context, provider, providerSessionID string) (*domain.CheckoutSession, error) {
	session, err := s.repo.FindByProviderSessionID(ctx, s.db, provider, providerSessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrCheckoutSessionNotFound
	}
	if session.Status == domain.CheckoutSessionStatusComplete {
		return session, nil
	}

	now := s.clock.Now(ctx)
	session.Status = domain.CheckoutSessionStatusComplete
	session.PaymentStatus = domain.PaymentStatusPaid
	session.CompletedAt = &now
	session.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, session); err != nil {
		return nil, err
	}

	periodEnd := now.Add(paidPeriod)
	if err := s.subscriptionSvc.Activate(ctx, session.AccountID, session.PlanCode, periodEnd); err != nil {
		return nil, err
	}

	s.log.Info("checkout session completed",
		zap.String("account_id", session.AccountID.String()),
		zap.String("plan", session.PlanCode))
	return session, nil
}

func (s *CheckoutService) ExpireOpenSessions(ctx context.Context, olderThan time.Time) (int64, error) {
	return s.repo.ExpireOpen(ctx, s.db, olderThan)
}
