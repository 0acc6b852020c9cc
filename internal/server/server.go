// Package server exposes the HTTP API. All tenant-facing routes sit behind
// API key authentication; webhooks and health endpoints are open.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apikeydomain "github.com/mietwerklabs/mietwerk/internal/apikey/domain"
	auditdomain "github.com/mietwerklabs/mietwerk/internal/audit/domain"
	billingperioddomain "github.com/mietwerklabs/mietwerk/internal/billingperiod/domain"
	buildingdomain "github.com/mietwerklabs/mietwerk/internal/building/domain"
	"github.com/mietwerklabs/mietwerk/internal/config"
	geocodedomain "github.com/mietwerklabs/mietwerk/internal/geocode/domain"
	leasedomain "github.com/mietwerklabs/mietwerk/internal/lease/domain"
	"github.com/mietwerklabs/mietwerk/internal/observability"
	paymentdomain "github.com/mietwerklabs/mietwerk/internal/payment/domain"
	settlementdomain "github.com/mietwerklabs/mietwerk/internal/settlement/domain"
	subscriptiondomain "github.com/mietwerklabs/mietwerk/internal/subscription/domain"
	tenantdomain "github.com/mietwerklabs/mietwerk/internal/tenant/domain"
	unitdomain "github.com/mietwerklabs/mietwerk/internal/unit/domain"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Cfg     *config.Config
	DB      *gorm.DB
	Log     *zap.Logger
	Redis   *goredis.Client
	Metrics *observability.Metrics

	BuildingSvc     buildingdomain.Service
	UnitSvc         unitdomain.Service
	TenantSvc       tenantdomain.Service
	LeaseSvc        leasedomain.Service
	PeriodSvc       billingperioddomain.Service
	SettlementSvc   settlementdomain.Service
	SubscriptionSvc subscriptiondomain.Service
	CheckoutSvc     paymentdomain.CheckoutService
	WebhookSvc      paymentdomain.WebhookService
	GeocodeSvc      geocodedomain.Service
	APIKeySvc       apikeydomain.Service
	AuditSvc        auditdomain.Service
	AuditExportSvc  auditdomain.Exporter
}

type Server struct {
	cfg     *config.Config
	db      *gorm.DB
	log     *zap.Logger
	redis   *goredis.Client
	metrics *observability.Metrics

	apiKeyLimiter *keyLimiter

	buildingSvc     buildingdomain.Service
	unitSvc         unitdomain.Service
	tenantSvc       tenantdomain.Service
	leaseSvc        leasedomain.Service
	periodSvc       billingperioddomain.Service
	settlementSvc   settlementdomain.Service
	subscriptionSvc subscriptiondomain.Service
	checkoutSvc     paymentdomain.CheckoutService
	webhookSvc      paymentdomain.WebhookService
	geocodeSvc      geocodedomain.Service
	apiKeySvc       apikeydomain.Service
	auditSvc        auditdomain.Service
	auditExportSvc  auditdomain.Exporter
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:             p.Cfg,
		db:              p.DB,
		log:             p.Log.Named("server"),
		redis:           p.Redis,
		metrics:         p.Metrics,
		apiKeyLimiter:   newKeyLimiter(p.Redis, p.Log),
		buildingSvc:     p.BuildingSvc,
		unitSvc:         p.UnitSvc,
		tenantSvc:       p.TenantSvc,
		leaseSvc:        p.LeaseSvc,
		periodSvc:       p.PeriodSvc,
		settlementSvc:   p.SettlementSvc,
		subscriptionSvc: p.SubscriptionSvc,
		checkoutSvc:     p.CheckoutSvc,
		webhookSvc:      p.WebhookSvc,
		geocodeSvc:      p.GeocodeSvc,
		apiKeySvc:       p.APIKeySvc,
		auditSvc:        p.AuditSvc,
		auditExportSvc:  p.AuditExportSvc,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.metrics.GinMiddleware())

	r.GET("/healthz", s.Healthz)
	r.GET("/readyz", s.Readyz)
	r.GET("/metrics", s.metrics.Handler())

	r.POST("/webhooks/:provider", s.IngestWebhook)

	v1 := r.Group("/api/v1")
	v1.Use(s.APIKeyRequired())
	v1.Use(s.AuditTrail())
	{
		v1.GET("/subscription", s.GetSubscription)
		v1.POST("/checkout/sessions", s.CreateCheckoutSession)
		v1.GET("/checkout/sessions/:id", s.GetCheckoutSession)

		v1.POST("/api-keys", s.CreateAPIKey)
		v1.GET("/api-keys", s.ListAPIKeys)
		v1.DELETE("/api-keys/:id", s.RevokeAPIKey)

		v1.GET("/geocode", s.ForwardGeocode)
		v1.GET("/audit/export", s.ExportAuditLogs)

		v1.POST("/buildings", s.CreateBuilding)
		v1.GET("/buildings", s.ListBuildings)
		v1.GET("/buildings/:id", s.GetBuilding)
		v1.PUT("/buildings/:id", s.UpdateBuilding)
		v1.DELETE("/buildings/:id", s.DeleteBuilding)
		v1.GET("/buildings/:id/location", s.GetBuildingLocation)
		v1.POST("/buildings/:id/units", s.CreateUnit)
		v1.GET("/buildings/:id/units", s.ListUnits)
		v1.GET("/buildings/:id/leases", s.ListLeases)
		v1.POST("/buildings/:id/billing-periods", s.CreateBillingPeriod)
		v1.GET("/buildings/:id/billing-periods", s.ListBillingPeriods)

		v1.GET("/units/:id", s.GetUnit)
		v1.PUT("/units/:id", s.UpdateUnit)
		v1.DELETE("/units/:id", s.DeleteUnit)

		v1.POST("/tenants", s.CreateTenant)
		v1.GET("/tenants", s.ListTenants)
		v1.GET("/tenants/:id", s.GetTenant)
		v1.PUT("/tenants/:id", s.UpdateTenant)
		v1.DELETE("/tenants/:id", s.DeleteTenant)

		v1.POST("/leases", s.CreateLease)
		v1.GET("/leases/:id", s.GetLease)
		v1.PUT("/leases/:id", s.UpdateLease)
		v1.DELETE("/leases/:id", s.DeleteLease)

		v1.GET("/billing-periods/:id", s.GetBillingPeriod)
		v1.DELETE("/billing-periods/:id", s.DeleteBillingPeriod)
		v1.PUT("/billing-periods/:id/heating", s.SetHeating)

		v1.POST("/billing-periods/:id/cost-items", s.AddCostItem)
		v1.PUT("/billing-periods/:id/cost-items/:itemID", s.UpdateCostItem)
		v1.DELETE("/billing-periods/:id/cost-items/:itemID", s.DeleteCostItem)
		v1.POST("/billing-periods/:id/cost-items/:itemID/receipts", s.AttachReceipt)
		v1.DELETE("/billing-periods/:id/receipts/:receiptID", s.DeleteReceipt)

		v1.POST("/billing-periods/:id/direct-costs", s.AddDirectCost)
		v1.DELETE("/billing-periods/:id/direct-costs/:directCostID", s.DeleteDirectCost)

		v1.PUT("/billing-periods/:id/meter-readings", s.UpsertMeterReading)
		v1.DELETE("/billing-periods/:id/meter-readings/:readingID", s.DeleteMeterReading)

		v1.POST("/billing-periods/:id/settlement/run", s.RunSettlement)
		v1.GET("/billing-periods/:id/settlement/results", s.GetSettlementResults)
		v1.GET("/billing-periods/:id/settlement/versions", s.ListSettlementVersions)
		v1.POST("/billing-periods/:id/settlement/send", s.SendSettlement)
		v1.POST("/billing-periods/:id/settlement/complete", s.CompleteSettlement)
		v1.GET("/billing-periods/:id/settlement/export.csv", s.ExportSettlementCSV)
		v1.GET("/billing-periods/:id/settlement/export.xlsx", s.ExportSettlementXLSX)
	}

	return r
}

var Module = fx.Module("server",
	fx.Provide(NewServer),
	fx.Invoke(RunHTTP),
)

// RunHTTP binds the server lifecycle to fx: listen on start, drain on stop.
func RunHTTP(lc fx.Lifecycle, s *Server, cfg *config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      s.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
