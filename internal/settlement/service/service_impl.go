package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/apportionment"
	perioddomain "github.com/mietwerklabs/mietwerk/internal/billingperiod/domain"
	leasedomain "github.com/mietwerklabs/mietwerk/internal/lease/domain"
	"github.com/mietwerklabs/mietwerk/internal/observability"
	"github.com/mietwerklabs/mietwerk/internal/orgcontext"
	"github.com/mietwerklabs/mietwerk/internal/settlement/domain"
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
	Metrics    *observability.Metrics
	Repo       domain.Repository
	PeriodRepo perioddomain.Repository
	UnitRepo   unitdomain.Repository
	LeaseRepo  leasedomain.Repository
	TenantRepo tenantdomain.Repository
	Sender     domain.Sender `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	metrics    *observability.Metrics
	repo       domain.Repository
	periodRepo perioddomain.Repository
	unitRepo   unitdomain.Repository
	leaseRepo  leasedomain.Repository
	tenantRepo tenantdomain.Repository
	sender     domain.Sender
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("settlement.service"),
		genID:      p.GenID,
		metrics:    p.Metrics,
		repo:       p.Repo,
		periodRepo: p.PeriodRepo,
		unitRepo:   p.UnitRepo,
		leaseRepo:  p.LeaseRepo,
		tenantRepo: p.TenantRepo,
		sender:     p.Sender,
	}
}

func (s *Service) Run(ctx context.Context, periodID string) (*domain.RunResponse, error) {
	accountID, period, err := s.loadPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if !period.Status.Editable() {
		return nil, domain.ErrPeriodLocked
	}

	snapshot, meta, err := s.assembleSnapshot(ctx, accountID, period)
	if err != nil {
		return nil, err
	}
	if len(snapshot.Leases) == 0 {
		return nil, domain.ErrNoLeases
	}

	outcome, err := apportionment.Calculate(*snapshot)
	if err != nil {
		s.metrics.ObserveSettlementRun("error")
		return nil, err
	}

	var totalCosts, totalPrepayments int64
	for _, res := range outcome.Results {
		totalCosts += res.TotalCostShareCents
		totalPrepayments += res.PrepaymentTotalCents
	}

	now := time.Now().UTC()
	version := &domain.Version{
		ID:                    s.genID.Generate(),
		AccountID:             accountID,
		PeriodID:              period.ID,
		TotalCostsCents:       totalCosts,
		TotalPrepaymentsCents: totalPrepayments,
		Months:                outcome.Months,
		OrphanedDirectCosts:   outcome.OrphanedDirectCosts,
		CreatedAt:             now,
	}

	rows := make([]domain.Result, 0, len(outcome.Results))
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		latest, err := s.repo.LatestVersion(ctx, tx, accountID, period.ID)
		if err != nil {
			return err
		}
		version.VersionNumber = 1
		version.ChangeSummary = "initial calculation"
		if latest != nil {
			version.VersionNumber = latest.VersionNumber + 1
			version.ChangeSummary = changeSummary(latest, version)
		}
		if err := s.repo.InsertVersion(ctx, tx, version); err != nil {
			return err
		}

		for _, res := range outcome.Results {
			rows = append(rows, domain.Result{
				ID:                      s.genID.Generate(),
				AccountID:               accountID,
				PeriodID:                period.ID,
				LeaseID:                 res.LeaseID,
				VersionNumber:           version.VersionNumber,
				PrepaymentTotalCents:    res.PrepaymentTotalCents,
				OperatingCostShareCents: res.OperatingCostShareCents,
				HeatingCostShareCents:   res.HeatingCostShareCents,
				DirectCostsTotalCents:   res.DirectCostsTotalCents,
				TotalCostShareCents:     res.TotalCostShareCents,
				BalanceCents:            res.BalanceCents,
				CreatedAt:               now,
			})
		}
		if err := s.repo.InsertResults(ctx, tx, rows); err != nil {
			return err
		}

		period.Status = perioddomain.StatusCalculated
		period.UpdatedAt = now
		return s.periodRepo.Update(ctx, tx, period)
	})
	if err != nil {
		s.metrics.ObserveSettlementRun("error")
		return nil, err
	}
	s.metrics.ObserveSettlementRun("success")

	if outcome.OrphanedDirectCosts > 0 {
		s.log.Warn("direct costs skipped, lease not part of run",
			zap.String("period_id", period.ID.String()),
			zap.Int("orphaned", outcome.OrphanedDirectCosts))
	}

	resp := &domain.RunResponse{
		PeriodID:              period.ID.String(),
		VersionNumber:         version.VersionNumber,
		ChangeSummary:         version.ChangeSummary,
		Months:                version.Months,
		OrphanedDirectCosts:   version.OrphanedDirectCosts,
		TotalCostsCents:       version.TotalCostsCents,
		TotalPrepaymentsCents: version.TotalPrepaymentsCents,
		Results:               toResultRows(rows, meta),
		CreatedAt:             version.CreatedAt,
	}
	return resp, nil
}

func (s *Service) Results(ctx context.Context, periodID string) (*domain.ResultsResponse, error) {
	accountID, period, err := s.loadPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	version, rows, meta, err := s.latestRows(ctx, accountID, period)
	if err != nil {
		return nil, err
	}

	return &domain.ResultsResponse{
		PeriodID:      period.ID.String(),
		VersionNumber: version.VersionNumber,
		Results:       toResultRows(rows, meta),
	}, nil
}

func (s *Service) Versions(ctx context.Context, periodID string) ([]domain.VersionResponse, error) {
	accountID, period, err := s.loadPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	versions, err := s.repo.ListVersions(ctx, s.db, accountID, period.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.VersionResponse, 0, len(versions))
	for _, v := range versions {
		resp = append(resp, domain.VersionResponse{
			VersionNumber:         v.VersionNumber,
			ChangeSummary:         v.ChangeSummary,
			TotalCostsCents:       v.TotalCostsCents,
			TotalPrepaymentsCents: v.TotalPrepaymentsCents,
			Months:                v.Months,
			OrphanedDirectCosts:   v.OrphanedDirectCosts,
			CreatedAt:             v.CreatedAt,
		})
	}
	return resp, nil
}

func (s *Service) MarkSent(ctx context.Context, periodID string) error {
	accountID, period, err := s.loadPeriod(ctx, periodID)
	if err != nil {
		return err
	}
	if !period.Status.CanTransitionTo(perioddomain.StatusSent) {
		return domain.ErrInvalidTransition
	}

	_, rows, meta, err := s.latestRows(ctx, accountID, period)
	if err != nil {
		return err
	}

	if s.sender != nil {
		statements := make([]domain.Statement, 0, len(rows))
		for _, row := range toResultRows(rows, meta) {
			m := meta[row.LeaseID]
			statements = append(statements, domain.Statement{
				TenantName:  m.tenantName,
				TenantEmail: m.tenantEmail,
				UnitName:    m.unitName,
				BuildingID:  period.BuildingID.String(),
				PeriodStart: period.PeriodStart,
				PeriodEnd:   period.PeriodEnd,
				Result:      row,
			})
		}
		if err := s.sender.SendStatements(ctx, statements); err != nil {
			return err
		}
	}

	period.Status = perioddomain.StatusSent
	period.UpdatedAt = time.Now().UTC()
	return s.periodRepo.Update(ctx, s.db, period)
}

func (s *Service) MarkCompleted(ctx context.Context, periodID string) error {
	_, period, err := s.loadPeriod(ctx, periodID)
	if err != nil {
		return err
	}
	if !period.Status.CanTransitionTo(perioddomain.StatusCompleted) {
		return domain.ErrInvalidTransition
	}

	period.Status = perioddomain.StatusCompleted
	period.UpdatedAt = time.Now().UTC()
	return s.periodRepo.Update(ctx, s.db, period)
}

var exportHeader = []string{
	"lease_id", "tenant", "unit",
	"prepayments_eur", "operating_costs_eur", "heating_costs_eur",
	"direct_costs_eur", "total_costs_eur", "balance_eur",
}

func (s *Service) ExportCSV(ctx context.Context, periodID string) ([]byte, error) {
	rows, err := s.exportRows(ctx, periodID)
	if err != nil {
		return nil, err
	}
	return writeCSV(exportHeader, rows)
}

func (s *Service) ExportXLSX(ctx context.Context, periodID string) ([]byte, error) {
	rows, err := s.exportRows(ctx, periodID)
	if err != nil {
		return nil, err
	}
	return writeXLSX(exportHeader, rows)
}

func (s *Service) exportRows(ctx context.Context, periodID string) ([][]string, error) {
	accountID, period, err := s.loadPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	_, results, meta, err := s.latestRows(ctx, accountID, period)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(results))
	for _, row := range toResultRows(results, meta) {
		rows = append(rows, []string{
			row.LeaseID,
			row.TenantName,
			row.UnitName,
			formatEuros(row.PrepaymentTotalCents),
			formatEuros(row.OperatingCostShareCents),
			formatEuros(row.HeatingCostShareCents),
			formatEuros(row.DirectCostsTotalCents),
			formatEuros(row.TotalCostShareCents),
			formatEuros(row.BalanceCents),
		})
	}
	return rows, nil
}

func (s *Service) loadPeriod(ctx context.Context, id string) (snowflake.ID, *perioddomain.BillingPeriod, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return 0, nil, domain.ErrInvalidAccount
	}

	periodID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return 0, nil, domain.ErrInvalidID
	}

	period, err := s.periodRepo.FindByID(ctx, s.db, accountID, periodID)
	if err != nil {
		return 0, nil, err
	}
	if period == nil {
		return 0, nil, domain.ErrNotFound
	}
	return accountID, period, nil
}

type leaseMeta struct {
	tenantName  string
	tenantEmail string
	unitName    string
}

func (s *Service) assembleSnapshot(ctx context.Context, accountID snowflake.ID, period *perioddomain.BillingPeriod) (*apportionment.Snapshot, map[string]leaseMeta, error) {
	units, err := s.unitRepo.FindByBuilding(ctx, s.db, accountID, period.BuildingID)
	if err != nil {
		return nil, nil, err
	}
	leases, err := s.leaseRepo.FindByBuilding(ctx, s.db, accountID, period.BuildingID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.periodRepo.ListCostItems(ctx, s.db, accountID, period.ID)
	if err != nil {
		return nil, nil, err
	}
	directCosts, err := s.periodRepo.ListDirectCosts(ctx, s.db, accountID, period.ID)
	if err != nil {
		return nil, nil, err
	}
	readings, err := s.periodRepo.ListMeterReadings(ctx, s.db, accountID, period.ID)
	if err != nil {
		return nil, nil, err
	}

	snapshot := &apportionment.Snapshot{
		Period: apportionment.Period{Start: period.PeriodStart, End: period.PeriodEnd},
	}
	for _, u := range units {
		snapshot.Units = append(snapshot.Units, apportionment.Unit{ID: u.ID, Area: u.Area})
	}

	tenantIDs := make([]snowflake.ID, 0, len(leases))
	for _, l := range leases {
		if !l.OverlapsPeriod(period.PeriodStart, period.PeriodEnd) {
			continue
		}
		snapshot.Leases = append(snapshot.Leases, apportionment.Lease{
			ID:                     l.ID,
			UnitID:                 l.UnitID,
			PersonsCount:           l.PersonsCount,
			MonthlyPrepaymentCents: l.MonthlyPrepaymentCents,
		})
		tenantIDs = append(tenantIDs, l.TenantID)
	}

	for _, item := range items {
		snapshot.CostItems = append(snapshot.CostItems, apportionment.CostItem{
			Type:        item.CostType,
			Label:       item.Label,
			AmountCents: item.AmountCents,
			Key:         apportionment.AllocationKey(item.AllocationKey),
		})
	}
	for _, dc := range directCosts {
		snapshot.DirectCosts = append(snapshot.DirectCosts, apportionment.DirectCost{
			LeaseID:     dc.LeaseID,
			Description: dc.Label,
			AmountCents: dc.AmountCents,
		})
	}
	for _, r := range readings {
		snapshot.MeterReadings = append(snapshot.MeterReadings, apportionment.MeterReading{
			UnitID:       r.UnitID,
			ReadingStart: r.ReadingStart,
			ReadingEnd:   r.ReadingEnd,
		})
	}
	if period.HeatingTotalCents != nil && period.HeatingAreaPercentage != nil {
		snapshot.Heating = apportionment.HeatingConfig{
			TotalCents:     *period.HeatingTotalCents,
			AreaPercentage: *period.HeatingAreaPercentage,
		}
	}

	tenants, err := s.tenantRepo.FindByIDs(ctx, s.db, accountID, tenantIDs)
	if err != nil {
		return nil, nil, err
	}
	tenantByID := make(map[snowflake.ID]*tenantdomain.Tenant, len(tenants))
	for i := range tenants {
		tenantByID[tenants[i].ID] = &tenants[i]
	}
	unitByID := make(map[snowflake.ID]*unitdomain.Unit, len(units))
	for i := range units {
		unitByID[units[i].ID] = &units[i]
	}

	meta := make(map[string]leaseMeta, len(leases))
	for _, l := range leases {
		m := leaseMeta{}
		if t := tenantByID[l.TenantID]; t != nil {
			m.tenantName = t.FirstName + " " + t.LastName
			if t.Email != nil {
				m.tenantEmail = *t.Email
			}
		}
		if u := unitByID[l.UnitID]; u != nil {
			m.unitName = u.Name
		}
		meta[l.ID.String()] = m
	}
	return snapshot, meta, nil
}

func (s *Service) latestRows(ctx context.Context, accountID snowflake.ID, period *perioddomain.BillingPeriod) (*domain.Version, []domain.Result, map[string]leaseMeta, error) {
	version, err := s.repo.LatestVersion(ctx, s.db, accountID, period.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	if version == nil {
		return nil, nil, nil, domain.ErrNoResults
	}
	rows, err := s.repo.ListResults(ctx, s.db, accountID, period.ID, version.VersionNumber)
	if err != nil {
		return nil, nil, nil, err
	}

	_, meta, err := s.assembleSnapshot(ctx, accountID, period)
	if err != nil {
		return nil, nil, nil, err
	}
	return version, rows, meta, nil
}

func toResultRows(rows []domain.Result, meta map[string]leaseMeta) []domain.ResultRow {
	out := make([]domain.ResultRow, 0, len(rows))
	for _, r := range rows {
		leaseID := r.LeaseID.String()
		m := meta[leaseID]
		out = append(out, domain.ResultRow{
			LeaseID:                 leaseID,
			TenantName:              m.tenantName,
			UnitName:                m.unitName,
			PrepaymentTotalCents:    r.PrepaymentTotalCents,
			OperatingCostShareCents: r.OperatingCostShareCents,
			HeatingCostShareCents:   r.HeatingCostShareCents,
			DirectCostsTotalCents:   r.DirectCostsTotalCents,
			TotalCostShareCents:     r.TotalCostShareCents,
			BalanceCents:            r.BalanceCents,
		})
	}
	return out
}

func changeSummary(prev, next *domain.Version) string {
	parts := make([]string, 0, 2)
	if prev.TotalCostsCents != next.TotalCostsCents {
		parts = append(parts, fmt.Sprintf("total costs %s -> %s EUR",
			formatEuros(prev.TotalCostsCents), formatEuros(next.TotalCostsCents)))
	}
	if prev.TotalPrepaymentsCents != next.TotalPrepaymentsCents {
		parts = append(parts, fmt.Sprintf("prepayments %s -> %s EUR",
			formatEuros(prev.TotalPrepaymentsCents), formatEuros(next.TotalPrepaymentsCents)))
	}
	if len(parts) == 0 {
		return "recalculated, totals unchanged"
	}
	return "recalculated: " + strings.Join(parts, ", ")
}

func formatEuros(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + strconv.FormatInt(cents/100, 10) + "." + fmt.Sprintf("%02d", cents%100)
}
