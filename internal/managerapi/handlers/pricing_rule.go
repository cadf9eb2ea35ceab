package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jnabil1974/storal.fr-sub003/internal/catalog"
	"github.com/jnabil1974/storal.fr-sub003/internal/logging"
	"github.com/jnabil1974/storal.fr-sub003/internal/managerapi/handlers/dto"
	"github.com/jnabil1974/storal.fr-sub003/internal/pricing"
	"github.com/jnabil1974/storal.fr-sub003/pkg/codes"
)

type PricingRuleHandler struct {
	rules catalog.RuleStore
	now   func() time.Time
}

func NewPricingRuleHandler(rules catalog.RuleStore) *PricingRuleHandler {
	return &PricingRuleHandler{rules: rules, now: time.Now}
}

// CreatePricingRule handles POST /admin/pricing-rules
func (h *PricingRuleHandler) CreatePricingRule(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "CreatePricingRule")
	var req dto.CreatePricingRuleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	logCtx = logging.ContextWithProductID(logCtx, req.ProductID)

	validFrom := h.now().UTC()
	if req.ValidFrom != nil {
		validFrom = req.ValidFrom.UTC()
	}
	rule, err := pricing.NewPricingRule(uuid.NewString(), strings.TrimSpace(req.ProductID), req.Coefficient, req.Reason, validFrom, req.ValidUntil)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	rule.CreatedAt = h.now().UTC()

	created, err := h.rules.CreatePricingRule(logCtx, rule)
	if err != nil {
		respondError(logCtx, c, err, "Failed to create pricing rule")
		return
	}

	slog.InfoContext(logging.ContextWithRuleID(logCtx, created.ID), "Pricing rule created successfully",
		slog.String("coefficient", created.Coefficient.String()),
	)
	c.JSON(http.StatusCreated, h.mapRuleToResponse(created))
}

// ListPricingRules handles GET /admin/pricing-rules (optionally filtered by product_id)
func (h *PricingRuleHandler) ListPricingRules(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "ListPricingRules")
	productID := strings.TrimSpace(c.Query("product_id"))
	logCtx = logging.ContextWithProductID(logCtx, productID)

	limit, offset := parsePagination(c)

	rules, total, err := h.rules.ListPricingRules(logCtx, catalog.RuleFilter{ProductID: productID, Limit: limit, Offset: offset})
	if err != nil {
		respondError(logCtx, c, err, "Failed to retrieve pricing rules")
		return
	}

	respData := make([]dto.PricingRuleResponse, len(rules))
	for i, rule := range rules {
		respData[i] = h.mapRuleToResponse(rule)
	}
	c.JSON(http.StatusOK, dto.PaginatedListResponse{
		Data:       respData,
		Pagination: dto.PaginationResponse{Total: total, Limit: limit, Offset: offset},
	})
}

// GetPricingRule handles GET /admin/pricing-rules/:id
func (h *PricingRuleHandler) GetPricingRule(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "GetPricingRule")
	id, err := parseIDParam(c)
	if err != nil {
		return
	}
	logCtx = logging.ContextWithRuleID(logCtx, id)

	rule, err := h.rules.GetPricingRule(logCtx, id)
	if err != nil {
		respondError(logCtx, c, err, "Failed to retrieve pricing rule")
		return
	}
	c.JSON(http.StatusOK, h.mapRuleToResponse(rule))
}

// DeactivatePricingRule handles POST /admin/pricing-rules/:id/deactivate
func (h *PricingRuleHandler) DeactivatePricingRule(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "DeactivatePricingRule")
	id, err := parseIDParam(c)
	if err != nil {
		return
	}
	logCtx = logging.ContextWithRuleID(logCtx, id)

	rule, err := h.rules.DeactivatePricingRule(logCtx, id)
	if err != nil {
		respondError(logCtx, c, err, "Failed to deactivate pricing rule")
		return
	}

	slog.InfoContext(logging.ContextWithProductID(logCtx, rule.ProductID), "Pricing rule deactivated")
	c.JSON(http.StatusOK, h.mapRuleToResponse(rule))
}

// DeletePricingRule handles DELETE /admin/pricing-rules/:id
func (h *PricingRuleHandler) DeletePricingRule(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "DeletePricingRule")
	id, err := parseIDParam(c)
	if err != nil {
		return
	}
	logCtx = logging.ContextWithRuleID(logCtx, id)

	rule, err := h.rules.DeletePricingRule(logCtx, id)
	if err != nil {
		respondError(logCtx, c, err, "Failed to delete pricing rule")
		return
	}

	slog.InfoContext(logging.ContextWithProductID(logCtx, rule.ProductID), "Pricing rule deleted successfully")
	c.Status(http.StatusNoContent)
}

// --- Helpers ---
func ruleStatus(r pricing.PricingRule, now time.Time) string {
	switch {
	case !r.IsActive:
		return codes.RuleStatusInactive
	case now.Before(r.ValidFrom):
		return codes.RuleStatusScheduled
	case r.ValidUntil != nil && !now.Before(*r.ValidUntil):
		return codes.RuleStatusExpired
	default:
		return codes.RuleStatusActive
	}
}

func (h *PricingRuleHandler) mapRuleToResponse(r pricing.PricingRule) dto.PricingRuleResponse {
	return dto.PricingRuleResponse{
		ID:          r.ID,
		ProductID:   r.ProductID,
		Coefficient: r.Coefficient.String(),
		Reason:      r.Reason,
		ValidFrom:   r.ValidFrom,
		ValidUntil:  r.ValidUntil,
		IsActive:    r.IsActive,
		Status:      ruleStatus(r, h.now()),
		CreatedAt:   r.CreatedAt,
	}
}
