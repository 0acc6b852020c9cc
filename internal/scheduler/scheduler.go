// Package scheduler runs the periodic maintenance jobs: checkout session
// expiry, subscription lapse, audit and webhook retention, settlement
// version pruning.
package scheduler

import (
	"context"
	"time"

	auditdomain "github.com/mietwerklabs/mietwerk/internal/audit/domain"
	"github.com/mietwerklabs/mietwerk/internal/clock"
	"github.com/mietwerklabs/mietwerk/internal/config"
	paymentdomain "github.com/mietwerklabs/mietwerk/internal/payment/domain"
	settlementdomain "github.com/mietwerklabs/mietwerk/internal/settlement/domain"
	subscriptiondomain "github.com/mietwerklabs/mietwerk/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Cfg   *config.Config
	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock

	CheckoutSvc     paymentdomain.CheckoutService
	SubscriptionSvc subscriptiondomain.Service
	AuditSvc        auditdomain.Service
	SettlementRepo  settlementdomain.Repository
}

type Scheduler struct {
	cfg   *config.Config
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock

	checkoutSvc     paymentdomain.CheckoutService
	subscriptionSvc subscriptiondomain.Service
	auditSvc        auditdomain.Service
	settlementRepo  settlementdomain.Repository
}

func New(p Params) *Scheduler {
	return &Scheduler{
		cfg:             p.Cfg,
		db:              p.DB,
		log:             p.Log.Named("scheduler"),
		clock:           p.Clock,
		checkoutSvc:     p.CheckoutSvc,
		subscriptionSvc: p.SubscriptionSvc,
		auditSvc:        p.AuditSvc,
		settlementRepo:  p.SettlementRepo,
	}
}

var Module = fx.Module("scheduler",
	fx.Provide(New),
)

// RunForever ticks at the configured interval until ctx is canceled. Each
// job failure is logged and the loop continues; one broken job must not
// starve the others.
func (s *Scheduler) RunForever(ctx context.Context) {
	interval := s.cfg.Scheduler.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("scheduler started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	jobs := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"expire_checkout_sessions", s.ExpireCheckoutSessionsJob},
		{"expire_lapsed_subscriptions", s.ExpireLapsedSubscriptionsJob},
		{"prune_audit_logs", s.PruneAuditLogsJob},
		{"prune_webhook_events", s.PruneWebhookEventsJob},
		{"prune_settlement_versions", s.PruneSettlementVersionsJob},
	}

	for _, job := range jobs {
		if err := job.fn(ctx); err != nil {
			s.log.Error("scheduled job failed",
				zap.String("job", job.name),
				zap.Error(err))
		}
	}
}

func (s *Scheduler) ExpireCheckoutSessionsJob(ctx context.Context) error {
	ttl := s.cfg.Scheduler.CheckoutSessionTTL
	if ttl <= 0 {
		return nil
	}

	cutoff := s.clock.Now(ctx).Add(-ttl)
	expired, err := s.checkoutSvc.ExpireOpenSessions(ctx, cutoff)
	if err != nil {
		return err
	}
	if expired > 0 {
		s.log.Info("checkout sessions expired", zap.Int64("count", expired))
	}
	return nil
}

func (s *Scheduler) ExpireLapsedSubscriptionsJob(ctx context.Context) error {
	lapsed, err := s.subscriptionSvc.ExpireLapsed(ctx, s.clock.Now(ctx))
	if err != nil {
		return err
	}
	if lapsed > 0 {
		s.log.Info("subscriptions lapsed", zap.Int64("count", lapsed))
	}
	return nil
}

func (s *Scheduler) PruneAuditLogsJob(ctx context.Context) error {
	retentionDays := s.cfg.Scheduler.AuditRetentionDays
	if retentionDays <= 0 {
		return nil
	}

	cutoff := s.clock.Now(ctx).AddDate(0, 0, -retentionDays)
	deleted, err := s.auditSvc.PruneBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.log.Info("audit logs pruned",
			zap.Time("cutoff", cutoff),
			zap.Int64("deleted", deleted))
	}
	return nil
}

func (s *Scheduler) PruneWebhookEventsJob(ctx context.Context) error {
	retentionDays := s.cfg.Scheduler.WebhookRetentionDays
	if retentionDays <= 0 {
		return nil
	}

	cutoff := s.clock.Now(ctx).AddDate(0, 0, -retentionDays)
	result := s.db.WithContext(ctx).Delete(&paymentdomain.EventRecord{}, "received_at < ?", cutoff)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		s.log.Info("webhook events pruned",
			zap.Time("cutoff", cutoff),
			zap.Int64("deleted", result.RowsAffected))
	}
	return nil
}

// PruneSettlementVersionsJob drops superseded result versions older than
// the retention window. The latest version of every period always
// survives.
func (s *Scheduler) PruneSettlementVersionsJob(ctx context.Context) error {
	retentionDays := s.cfg.Scheduler.VersionRetentionDays
	if retentionDays <= 0 {
		return nil
	}

	cutoff := s.clock.Now(ctx).AddDate(0, 0, -retentionDays)
	deleted, err := s.settlementRepo.PruneVersionsBefore(ctx, s.db, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.log.Info("settlement versions pruned",
			zap.Time("cutoff", cutoff),
			zap.Int64("deleted", deleted))
	}
	return nil
}
