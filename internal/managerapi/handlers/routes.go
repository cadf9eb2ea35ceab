package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/jnabil1974/storal.fr-sub003/internal/auth"
	"github.com/jnabil1974/storal.fr-sub003/internal/catalog"
	"github.com/jnabil1974/storal.fr-sub003/internal/pricing"
	"github.com/jnabil1974/storal.fr-sub003/internal/ratelimit"
	"github.com/jnabil1974/storal.fr-sub003/internal/zone"
)

// Dependencies are the services the API routes are built on.
type Dependencies struct {
	Calculator *pricing.Calculator
	Catalog    catalog.Store
	Zones      *zone.Checker
	// QuoteLimiter throttles quote requests per client IP; nil disables it.
	QuoteLimiter *ratelimit.Limiter
	// AdminAPIKeyHash guards the admin routes; they are not mounted when it is empty.
	AdminAPIKeyHash string
}

// SetupRoutes configures the Gin engine with all API routes.
func SetupRoutes(router gin.IRouter, deps Dependencies) {
	quoteHandler := NewQuoteHandler(deps.Calculator, deps.Catalog)
	offerHandler := NewOfferHandler(deps.Calculator)
	zoneHandler := NewZoneHandler(deps.Zones)
	ruleHandler := NewPricingRuleHandler(deps.Catalog)

	// --- Quote Routes ---
	if deps.QuoteLimiter != nil {
		router.POST("/quotes", RateLimit(deps.QuoteLimiter), quoteHandler.CreateQuote)
	} else {
		router.POST("/quotes", quoteHandler.CreateQuote)
	}
	router.GET("/products/:id/limits", quoteHandler.GetLimits)
	router.GET("/products/:id/options", offerHandler.ListOptions)
	router.GET("/products/:id/fabrics", offerHandler.ListFabrics)

	// --- Zone Routes ---
	router.GET("/zones/check", zoneHandler.CheckZone)

	// --- Admin Pricing Rule Routes ---
	if deps.AdminAPIKeyHash == "" {
		slog.Warn("ADMIN_API_KEY_HASH not set, admin routes disabled")
		return
	}
	adminGroup := router.Group("/admin", auth.RequireAPIKey(deps.AdminAPIKeyHash))
	{
		adminGroup.POST("/pricing-rules", ruleHandler.CreatePricingRule)
		adminGroup.GET("/pricing-rules", ruleHandler.ListPricingRules)
		adminGroup.GET("/pricing-rules/:id", ruleHandler.GetPricingRule)
		adminGroup.POST("/pricing-rules/:id/deactivate", ruleHandler.DeactivatePricingRule)
		adminGroup.DELETE("/pricing-rules/:id", ruleHandler.DeletePricingRule)
	}
}
