package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	perioddomain "github.com/mietwerklabs/mietwerk/internal/billingperiod/domain"
	periodrepo "github.com/mietwerklabs/mietwerk/internal/billingperiod/repository"
	leasedomain "github.com/mietwerklabs/mietwerk/internal/lease/domain"
	leaserepo "github.com/mietwerklabs/mietwerk/internal/lease/repository"
	"github.com/mietwerklabs/mietwerk/internal/observability"
	"github.com/mietwerklabs/mietwerk/internal/orgcontext"
	"github.com/mietwerklabs/mietwerk/internal/settlement/domain"
	settlementrepo "github.com/mietwerklabs/mietwerk/internal/settlement/repository"
	tenantdomain "github.com/mietwerklabs/mietwerk/internal/tenant/domain"
	tenantrepo "github.com/mietwerklabs/mietwerk/internal/tenant/repository"
	unitdomain "github.com/mietwerklabs/mietwerk/internal/unit/domain"
	unitrepo "github.com/mietwerklabs/mietwerk/internal/unit/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	testAccount  snowflake.ID = 1
	testBuilding snowflake.ID = 77
)

type captureSender struct {
	statements []domain.Statement
}

func (c *captureSender) SendStatements(_ context.Context, statements []domain.Statement) error {
	c.statements = append(c.statements, statements...)
	return nil
}

type fixture struct {
	svc    domain.Service
	db     *gorm.DB
	sender *captureSender
	period *perioddomain.BillingPeriod
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&unitdomain.Unit{},
		&tenantdomain.Tenant{},
		&leasedomain.Lease{},
		&perioddomain.BillingPeriod{},
		&perioddomain.CostItem{},
		&perioddomain.DirectCost{},
		&perioddomain.MeterReading{},
		&domain.Version{},
		&domain.Result{},
	))

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	sender := &captureSender{}
	svc := New(Params{
		DB:         db,
		Log:        zap.NewNop(),
		GenID:      node,
		Metrics:    observability.NewMetrics(),
		Repo:       settlementrepo.Provide(),
		PeriodRepo: periodrepo.Provide(),
		UnitRepo:   unitrepo.Provide(),
		LeaseRepo:  leaserepo.Provide(),
		TenantRepo: tenantrepo.Provide(),
		Sender:     sender,
	})

	return &fixture{svc: svc, db: db, sender: sender}
}

func (f *fixture) seed(t *testing.T) {
	t.Helper()
	now := time.Now().UTC()
	email := "anna@example.com"

	units := []unitdomain.Unit{
		{ID: 10, AccountID: testAccount, BuildingID: testBuilding, Name: "EG links", Area: 50, CreatedAt: now, UpdatedAt: now},
		{ID: 11, AccountID: testAccount, BuildingID: testBuilding, Name: "OG rechts", Area: 50, CreatedAt: now, UpdatedAt: now},
	}
	tenants := []tenantdomain.Tenant{
		{ID: 20, AccountID: testAccount, FirstName: "Anna", LastName: "Schmidt", Email: &email, CreatedAt: now, UpdatedAt: now},
		{ID: 21, AccountID: testAccount, FirstName: "Ben", LastName: "Weber", CreatedAt: now, UpdatedAt: now},
	}
	leases := []leasedomain.Lease{
		{ID: 30, AccountID: testAccount, UnitID: 10, TenantID: 20, StartDate: date(2023, 1, 1), MonthlyPrepaymentCents: 10000, PersonsCount: 2, CreatedAt: now, UpdatedAt: now},
		{ID: 31, AccountID: testAccount, UnitID: 11, TenantID: 21, StartDate: date(2023, 6, 1), MonthlyPrepaymentCents: 5000, PersonsCount: 1, CreatedAt: now, UpdatedAt: now},
	}
	period := &perioddomain.BillingPeriod{
		ID:          40,
		AccountID:   testAccount,
		BuildingID:  testBuilding,
		PeriodStart: date(2024, 1, 1),
		PeriodEnd:   date(2024, 12, 31),
		Status:      perioddomain.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	item := &perioddomain.CostItem{
		ID:            50,
		AccountID:     testAccount,
		PeriodID:      40,
		CostType:      "insurance",
		Label:         "12. Versicherungen",
		AmountCents:   100000,
		AllocationKey: "area",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	require.NoError(t, f.db.Create(&units).Error)
	require.NoError(t, f.db.Create(&tenants).Error)
	require.NoError(t, f.db.Create(&leases).Error)
	require.NoError(t, f.db.Create(period).Error)
	require.NoError(t, f.db.Create(item).Error)
	f.period = period
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testCtx() context.Context {
	return orgcontext.WithAccountID(context.Background(), testAccount)
}

func TestRunCreatesFirstVersion(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	resp, err := f.svc.Run(testCtx(), "40")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.VersionNumber)
	assert.Equal(t, "initial calculation", resp.ChangeSummary)
	assert.Equal(t, 12, resp.Months)
	require.Len(t, resp.Results, 2)

	assert.Equal(t, int64(100000), resp.TotalCostsCents)
	assert.Equal(t, int64(180000), resp.TotalPrepaymentsCents)

	byLease := make(map[string]domain.ResultRow)
	for _, row := range resp.Results {
		byLease[row.LeaseID] = row
	}
	anna := byLease["30"]
	assert.Equal(t, "Anna Schmidt", anna.TenantName)
	assert.Equal(t, "EG links", anna.UnitName)
	assert.Equal(t, int64(120000), anna.PrepaymentTotalCents)
	assert.Equal(t, int64(50000), anna.OperatingCostShareCents)
	assert.Equal(t, int64(70000), anna.BalanceCents)

	var period perioddomain.BillingPeriod
	require.NoError(t, f.db.First(&period, "id = ?", 40).Error)
	assert.Equal(t, perioddomain.StatusCalculated, period.Status)
}

func TestRerunCreatesNewVersionWithSummary(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	_, err := f.svc.Run(testCtx(), "40")
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&perioddomain.CostItem{}).
		Where("id = ?", 50).
		Update("amount_cents", 120000).Error)

	resp, err := f.svc.Run(testCtx(), "40")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.VersionNumber)
	assert.True(t, strings.HasPrefix(resp.ChangeSummary, "recalculated"), resp.ChangeSummary)

	versions, err := f.svc.Versions(testCtx(), "40")
	require.NoError(t, err)
	require.Len(t, versions, 2)

	// Results always reflect the latest version.
	results, err := f.svc.Results(testCtx(), "40")
	require.NoError(t, err)
	assert.Equal(t, 2, results.VersionNumber)
}

func TestMarkSentDispatchesStatementsAndLocks(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	_, err := f.svc.Run(testCtx(), "40")
	require.NoError(t, err)

	require.NoError(t, f.svc.MarkSent(testCtx(), "40"))
	require.Len(t, f.sender.statements, 2)
	names := []string{f.sender.statements[0].TenantName, f.sender.statements[1].TenantName}
	assert.Contains(t, names, "Anna Schmidt")
	assert.Contains(t, names, "Ben Weber")

	// Sent periods are locked against recalculation.
	_, err = f.svc.Run(testCtx(), "40")
	assert.ErrorIs(t, err, domain.ErrPeriodLocked)

	require.NoError(t, f.svc.MarkCompleted(testCtx(), "40"))
	assert.ErrorIs(t, f.svc.MarkCompleted(testCtx(), "40"), domain.ErrInvalidTransition)
}

func TestMarkSentRequiresCalculatedPeriod(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	assert.ErrorIs(t, f.svc.MarkSent(testCtx(), "40"), domain.ErrInvalidTransition)
}

func TestRunWithoutLeases(t *testing.T) {
	f := newFixture(t)
	now := time.Now().UTC()
	period := &perioddomain.BillingPeriod{
		ID:          41,
		AccountID:   testAccount,
		BuildingID:  testBuilding,
		PeriodStart: date(2024, 1, 1),
		PeriodEnd:   date(2024, 12, 31),
		Status:      perioddomain.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, f.db.Create(period).Error)

	_, err := f.svc.Run(testCtx(), "41")
	assert.ErrorIs(t, err, domain.ErrNoLeases)
}

func TestResultsBeforeAnyRun(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	_, err := f.svc.Results(testCtx(), "40")
	assert.ErrorIs(t, err, domain.ErrNoResults)
}

func TestExportCSV(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	_, err := f.svc.Run(testCtx(), "40")
	require.NoError(t, err)

	data, err := f.svc.ExportCSV(testCtx(), "40")
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasPrefix(content, "lease_id,tenant,unit"), content)
	assert.Contains(t, content, "Anna Schmidt")
	assert.Contains(t, content, "1200.00")
}
