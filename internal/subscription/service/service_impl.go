package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/clock"
	"github.com/mietwerklabs/mietwerk/internal/orgcontext"
	"github.com/mietwerklabs/mietwerk/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("subscription.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Current(ctx context.Context) (*domain.Response, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	sub, err := s.currentOrFree(ctx, accountID)
	if err != nil {
		return nil, err
	}

	resp := toResponse(sub)
	return &resp, nil
}

func (s *Service) EnsureActive(ctx context.Context) error {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return domain.ErrInvalidAccount
	}

	sub, err := s.currentOrFree(ctx, accountID)
	if err != nil {
		return err
	}
	switch sub.Status {
	case domain.StatusActive, domain.StatusPastDue:
		return nil
	default:
		return domain.ErrSubscriptionLapsed
	}
}

func (s *Service) BuildingQuota(ctx context.Context) (int, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return 0, domain.ErrInvalidAccount
	}

	sub, err := s.currentOrFree(ctx, accountID)
	if err != nil {
		return 0, err
	}
	plan, ok := domain.Plans[sub.PlanCode]
	if !ok {
		return 0, domain.ErrUnknownPlan
	}
	if sub.Status == domain.StatusExpired || sub.Status == domain.StatusCanceled {
		// Lapsed accounts fall back to the free quota.
		return domain.Plans[domain.PlanFree].MaxBuildings, nil
	}
	return plan.MaxBuildings, nil
}

func (s *Service) Activate(ctx context.Context, accountID snowflake.ID, planCode string, periodEnd time.Time) error {
	if _, ok := domain.Plans[planCode]; !ok {
		return domain.ErrUnknownPlan
	}

	now := s.clock.Now(ctx)
	sub, err := s.repo.FindByAccount(ctx, s.db, accountID)
	if err != nil {
		return err
	}
	if sub == nil {
		sub = &domain.Subscription{
			ID:        s.genID.Generate(),
			AccountID: accountID,
			CreatedAt: now,
		}
		sub.PlanCode = planCode
		sub.Status = domain.StatusActive
		sub.CurrentPeriodStart = now
		sub.CurrentPeriodEnd = &periodEnd
		sub.UpdatedAt = now
		return s.repo.Insert(ctx, s.db, sub)
	}

	sub.PlanCode = planCode
	sub.Status = domain.StatusActive
	sub.CurrentPeriodStart = now
	sub.CurrentPeriodEnd = &periodEnd
	sub.UpdatedAt = now

	s.log.Info("subscription activated",
		zap.String("account_id", accountID.String()),
		zap.String("plan", planCode),
		zap.Time("period_end", periodEnd))
	return s.repo.Update(ctx, s.db, sub)
}

func (s *Service) MarkPastDue(ctx context.Context, accountID snowflake.ID) error {
	sub, err := s.repo.FindByAccount(ctx, s.db, accountID)
	if err != nil {
		return err
	}
	if sub == nil || sub.Status != domain.StatusActive {
		return nil
	}

	sub.Status = domain.StatusPastDue
	sub.UpdatedAt = s.clock.Now(ctx)
	return s.repo.Update(ctx, s.db, sub)
}

func (s *Service) ExpireLapsed(ctx context.Context, now time.Time) (int64, error) {
	return s.repo.ExpireLapsed(ctx, s.db, now)
}

// currentOrFree lazily creates the free-plan row for accounts seen for
// the first time.
func (s *Service) currentOrFree(ctx context.Context, accountID snowflake.ID) (*domain.Subscription, error) {
	sub, err := s.repo.FindByAccount(ctx, s.db, accountID)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		return sub, nil
	}

	now := s.clock.Now(ctx)
	sub = &domain.Subscription{
		ID:                 s.genID.Generate(),
		AccountID:          accountID,
		PlanCode:           domain.PlanFree,
		Status:             domain.StatusActive,
		CurrentPeriodStart: now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Insert(ctx, s.db, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func toResponse(sub *domain.Subscription) domain.Response {
	plan := domain.Plans[sub.PlanCode]
	return domain.Response{
		PlanCode:           sub.PlanCode,
		PlanName:           plan.Name,
		Status:             sub.Status,
		MonthlyPriceCents:  plan.MonthlyPriceCents,
		MaxBuildings:       plan.MaxBuildings,
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
	}
}
