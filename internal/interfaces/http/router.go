// Package http wires the HTTP surface: repositories, application
// services, handlers, and the gin router.
package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appentitlement "github.com/tripdesk-hq/tripdesk/internal/application/entitlement"
	"github.com/tripdesk-hq/tripdesk/internal/application/invoicing"
	"github.com/tripdesk-hq/tripdesk/internal/domain/billing"
	"github.com/tripdesk-hq/tripdesk/internal/infrastructure/cache"
	infraconfig "github.com/tripdesk-hq/tripdesk/internal/infrastructure/config"
	"github.com/tripdesk-hq/tripdesk/internal/infrastructure/repository"
	"github.com/tripdesk-hq/tripdesk/internal/interfaces/http/handlers"
	"github.com/tripdesk-hq/tripdesk/internal/interfaces/http/middleware"
	"github.com/tripdesk-hq/tripdesk/internal/shared/logger"
)

// NewRouter builds the gin engine with all routes wired. The Redis
// client is optional: without it the limit endpoints skip caching.
func NewRouter(cfg *infraconfig.Config, db *gorm.DB, log logger.Interface) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	registerValidations()

	catalog := billing.NewCatalog()

	// Repositories
	subscriptionRepo := repository.NewSubscriptionRepository(db, log)
	organizationRepo := repository.NewOrganizationRepository(db, log)
	usageRepo := repository.NewUsageRepository(db, log)
	invoiceRepo := repository.NewInvoiceRepository(db, log)

	// Application services
	entitlementSvc := appentitlement.NewService(subscriptionRepo, organizationRepo, usageRepo, catalog, log)
	invoicingSvc := invoicing.NewService(invoiceRepo, organizationRepo, cfg.Billing.Currency, log)

	// Optional limit status cache
	var limitCache cache.FeatureLimitCache
	if redisClient := initRedis(cfg, log); redisClient != nil {
		limitCache = cache.NewRedisFeatureLimitCache(redisClient, log)
	}

	// Handlers
	planHandler := handlers.NewPlanHandler(catalog)
	limitHandler := handlers.NewLimitHandler(entitlementSvc, limitCache)
	invoiceHandler := handlers.NewInvoiceHandler(invoicingSvc)
	organizationHandler := handlers.NewOrganizationHandler(organizationRepo)

	registerRoutes(router, planHandler, limitHandler, invoiceHandler, organizationHandler)
	return router
}

// initRedis creates the Redis client, or nil when Redis is not
// configured or unreachable. Caching is an optimization here, not a
// dependency, so startup proceeds without it.
func initRedis(cfg *infraconfig.Config, log logger.Interface) *redis.Client {
	if cfg.Redis.Host == "" {
		return nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warnw("redis unreachable, limit status caching disabled", "error", err)
		return nil
	}

	log.Infow("redis connection established")
	return redisClient
}

func registerRoutes(
	router *gin.Engine,
	planHandler *handlers.PlanHandler,
	limitHandler *handlers.LimitHandler,
	invoiceHandler *handlers.InvoiceHandler,
	organizationHandler *handlers.OrganizationHandler,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		plans := v1.Group("/plans")
		{
			plans.GET("", planHandler.ListPlans)
			plans.GET("/:id", planHandler.GetPlan)
		}

		orgs := v1.Group("/organizations/:id")
		{
			orgs.GET("/limits", limitHandler.GetLimits)
			orgs.GET("/limits/:feature", limitHandler.GetFeatureLimit)
			orgs.PUT("/billing-profile", organizationHandler.UpdateBillingProfile)

			invoices := orgs.Group("/invoices")
			{
				invoices.POST("", invoiceHandler.CreateInvoice)
				invoices.GET("", invoiceHandler.ListInvoices)
				invoices.GET("/:invoice_id", invoiceHandler.GetInvoice)
				invoices.POST("/:invoice_id/issue", invoiceHandler.IssueInvoice)
				invoices.POST("/:invoice_id/payments", invoiceHandler.RecordPayment)
				invoices.POST("/:invoice_id/cancel", invoiceHandler.CancelInvoice)
			}
		}
	}
}
