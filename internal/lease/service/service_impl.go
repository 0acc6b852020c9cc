package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/lease/domain"
	"github.com/mietwerklabs/mietwerk/internal/orgcontext"
	tenantdomain "github.com/mietwerklabs/mietwerk/internal/tenant/domain"
	unitdomain "github.com/mietwerklabs/mietwerk/internal/unit/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       domain.Repository
	UnitRepo   unitdomain.Repository
	TenantRepo tenantdomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	repo       domain.Repository
	unitRepo   unitdomain.Repository
	tenantRepo tenantdomain.Repository
	genID      *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("lease.service"),
		repo:       p.Repo,
		unitRepo:   p.UnitRepo,
		tenantRepo: p.TenantRepo,
		genID:      p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	unitID, err := snowflake.ParseString(strings.TrimSpace(req.UnitID))
	if err != nil {
		return nil, domain.ErrInvalidUnit
	}
	tenantID, err := snowflake.ParseString(strings.TrimSpace(req.TenantID))
	if err != nil {
		return nil, domain.ErrInvalidTenant
	}
	if err := validateTerms(req.StartDate, req.EndDate, req.MonthlyPrepaymentCents, req.PersonsCount); err != nil {
		return nil, err
	}

	unit, err := s.unitRepo.FindByID(ctx, s.db, accountID, unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrInvalidUnit
	}
	tenant, err := s.tenantRepo.FindByID(ctx, s.db, accountID, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrInvalidTenant
	}

	now := time.Now().UTC()
	lease := &domain.Lease{
		ID:                     s.genID.Generate(),
		AccountID:              accountID,
		UnitID:                 unitID,
		TenantID:               tenantID,
		StartDate:              req.StartDate.UTC(),
		EndDate:                normalizeEnd(req.EndDate),
		MonthlyPrepaymentCents: req.MonthlyPrepaymentCents,
		PersonsCount:           req.PersonsCount,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := s.repo.Insert(ctx, s.db, lease); err != nil {
		return nil, err
	}

	resp := toResponse(lease)
	return &resp, nil
}

func (s *Service) ListByBuilding(ctx context.Context, buildingID string) ([]domain.Response, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	id, err := snowflake.ParseString(strings.TrimSpace(buildingID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	items, err := s.repo.FindByBuilding(ctx, s.db, accountID, id)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	leaseID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, accountID, leaseID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	leaseID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, accountID, leaseID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if req.StartDate != nil {
		item.StartDate = req.StartDate.UTC()
	}
	if req.ClearEndDate {
		item.EndDate = nil
	} else if req.EndDate != nil {
		item.EndDate = normalizeEnd(req.EndDate)
	}
	if req.MonthlyPrepaymentCents != nil {
		item.MonthlyPrepaymentCents = *req.MonthlyPrepaymentCents
	}
	if req.PersonsCount != nil {
		item.PersonsCount = *req.PersonsCount
	}
	if err := validateTerms(item.StartDate, item.EndDate, item.MonthlyPrepaymentCents, item.PersonsCount); err != nil {
		return nil, err
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return domain.ErrInvalidAccount
	}

	leaseID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, accountID, leaseID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, accountID, leaseID)
}

func validateTerms(start time.Time, end *time.Time, prepaymentCents int64, persons int) error {
	if start.IsZero() {
		return domain.ErrInvalidDates
	}
	if end != nil && !end.After(start) {
		return domain.ErrInvalidDates
	}
	if prepaymentCents < 0 {
		return domain.ErrInvalidPrepayment
	}
	if persons < 1 {
		return domain.ErrInvalidPersons
	}
	return nil
}

func normalizeEnd(end *time.Time) *time.Time {
	if end == nil {
		return nil
	}
	v := end.UTC()
	return &v
}

func toResponse(l *domain.Lease) domain.Response {
	return domain.Response{
		ID:                     l.ID.String(),
		UnitID:                 l.UnitID.String(),
		TenantID:               l.TenantID.String(),
		StartDate:              l.StartDate,
		EndDate:                l.EndDate,
		MonthlyPrepaymentCents: l.MonthlyPrepaymentCents,
		PersonsCount:           l.PersonsCount,
		CreatedAt:              l.CreatedAt,
		UpdatedAt:              l.UpdatedAt,
	}
}
