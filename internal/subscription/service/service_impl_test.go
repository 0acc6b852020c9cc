package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/mietwerklabs/mietwerk/internal/orgcontext"
	"github.com/mietwerklabs/mietwerk/internal/subscription/domain"
	"github.com/mietwerklabs/mietwerk/internal/subscription/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now(context.Context) time.Time { return c.now }

func newTestService(t *testing.T, now time.Time) (domain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Subscription{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fixedClock{now: now},
		Repo:  repository.Provide(),
	})
	return svc, db
}

func accountCtx(id int64) context.Context {
	return orgcontext.WithAccountID(context.Background(), snowflake.ID(id))
}

func TestCurrentCreatesFreePlanRow(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	resp, err := svc.Current(accountCtx(100))
	require.NoError(t, err)
	assert.Equal(t, domain.PlanFree, resp.PlanCode)
	assert.Equal(t, domain.StatusActive, resp.Status)
	assert.Nil(t, resp.CurrentPeriodEnd)

	var count int64
	require.NoError(t, db.Model(&domain.Subscription{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Second call reuses the row.
	_, err = svc.Current(accountCtx(100))
	require.NoError(t, err)
	require.NoError(t, db.Model(&domain.Subscription{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestActivateUpgradesPlan(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	_, err := svc.Current(accountCtx(200))
	require.NoError(t, err)

	periodEnd := now.AddDate(0, 1, 0)
	require.NoError(t, svc.Activate(context.Background(), 200, domain.PlanStarter, periodEnd))

	resp, err := svc.Current(accountCtx(200))
	require.NoError(t, err)
	assert.Equal(t, domain.PlanStarter, resp.PlanCode)
	assert.Equal(t, domain.StatusActive, resp.Status)
	require.NotNil(t, resp.CurrentPeriodEnd)
	assert.True(t, resp.CurrentPeriodEnd.Equal(periodEnd))

	assert.ErrorIs(t, svc.Activate(context.Background(), 200, "enterprise", periodEnd), domain.ErrUnknownPlan)
}

func TestBuildingQuota(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	quota, err := svc.BuildingQuota(accountCtx(300))
	require.NoError(t, err)
	assert.Equal(t, domain.Plans[domain.PlanFree].MaxBuildings, quota)

	require.NoError(t, svc.Activate(context.Background(), 300, domain.PlanPro, now.AddDate(0, 1, 0)))
	quota, err = svc.BuildingQuota(accountCtx(300))
	require.NoError(t, err)
	assert.Equal(t, 0, quota, "pro plan is unlimited")
}

func TestExpireLapsedDowngrades(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	periodEnd := now.AddDate(0, 1, 0)
	require.NoError(t, svc.Activate(context.Background(), 400, domain.PlanStarter, periodEnd))

	// Before the period end nothing lapses.
	changed, err := svc.ExpireLapsed(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, changed)
	require.NoError(t, svc.EnsureActive(accountCtx(400)))

	changed, err = svc.ExpireLapsed(context.Background(), periodEnd.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), changed)

	assert.ErrorIs(t, svc.EnsureActive(accountCtx(400)), domain.ErrSubscriptionLapsed)

	quota, err := svc.BuildingQuota(accountCtx(400))
	require.NoError(t, err)
	assert.Equal(t, domain.Plans[domain.PlanFree].MaxBuildings, quota)
}

func TestMarkPastDueKeepsAccess(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	require.NoError(t, svc.Activate(context.Background(), 500, domain.PlanStarter, now.AddDate(0, 1, 0)))
	require.NoError(t, svc.MarkPastDue(context.Background(), 500))

	resp, err := svc.Current(accountCtx(500))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPastDue, resp.Status)

	// Past due still passes the gate: dunning, not lockout.
	assert.NoError(t, svc.EnsureActive(accountCtx(500)))
}
