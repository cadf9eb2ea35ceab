package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jnabil1974/storal.fr-sub003/internal/logging"
	"github.com/jnabil1974/storal.fr-sub003/internal/managerapi/handlers/dto"
	"github.com/jnabil1974/storal.fr-sub003/internal/pricing"
)

// QuoteHandler prices configurations and reports product limits.
type QuoteHandler struct {
	calculator *pricing.Calculator
	catalog    pricing.Catalog
}

func NewQuoteHandler(calc *pricing.Calculator, cat pricing.Catalog) *QuoteHandler {
	return &QuoteHandler{calculator: calc, catalog: cat}
}

// CreateQuote handles POST /quotes
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "CreateQuote")
	var req dto.CreateQuoteRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	logCtx = logging.ContextWithProductID(logCtx, req.ProductID)

	quote, err := h.calculator.Quote(logCtx, pricing.QuoteRequest{
		ProductID:                req.ProductID,
		Width:                    req.Width,
		Projection:               req.Projection,
		OptionIDs:                req.OptionIDs,
		FabricID:                 req.FabricID,
		PostalCode:               req.PostalCode,
		ProfessionalInstallation: req.ProfessionalInstallation,
	})
	if err != nil {
		respondError(logCtx, c, err, "Failed to compute quote")
		return
	}

	slog.InfoContext(logging.ContextWithQuoteID(logCtx, quote.ID), "Quote issued",
		slog.String("total_ttc", quote.TotalTTC.StringFixed(2)),
	)
	c.JSON(http.StatusOK, mapQuoteToResponse(quote))
}

// GetLimits handles GET /products/:id/limits?projection=
// Without a projection every projection of the grid is listed.
func (h *QuoteHandler) GetLimits(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "GetLimits")
	productID, err := parseIDParam(c)
	if err != nil {
		return
	}
	logCtx = logging.ContextWithProductID(logCtx, productID)

	if projectionStr := c.Query("projection"); projectionStr != "" {
		projection, err := strconv.Atoi(projectionStr)
		if err != nil {
			respondBadRequest(c, "Invalid projection format")
			return
		}
		limits, err := h.calculator.Limits(logCtx, productID, projection)
		if err != nil {
			respondError(logCtx, c, err, "Failed to retrieve product limits")
			return
		}
		c.JSON(http.StatusOK, mapLimitsToResponse(productID, limits))
		return
	}

	product, err := h.catalog.Product(logCtx, productID)
	if err != nil {
		respondError(logCtx, c, err, "Failed to retrieve product")
		return
	}
	if err := product.Validate(); err != nil {
		respondError(logCtx, c, err, "Product catalog data is invalid")
		return
	}
	resp := dto.ProductLimitsResponse{ProductID: productID, Limits: []dto.WidthLimitsResponse{}}
	for _, projection := range product.Grid.Projections() {
		limits, err := product.Grid.Limits(projection)
		if err != nil {
			respondError(logCtx, c, err, "Failed to compute product limits")
			return
		}
		resp.Limits = append(resp.Limits, mapLimitsToResponse(productID, limits))
	}
	c.JSON(http.StatusOK, resp)
}

// --- Helpers ---
func mapQuoteToResponse(q *pricing.Quote) dto.QuoteResponse {
	return dto.QuoteResponse{
		ID:                q.ID,
		ProductID:         q.ProductID,
		ProductName:       q.ProductName,
		Width:             q.Width,
		Projection:        q.Projection,
		Arms:              q.Arms,
		Coefficient:       q.Coefficient.String(),
		CoefficientSource: q.CoefficientSource,
		VATRate:           q.VATRate.String(),
		BasePriceHT:       q.BasePriceHT.StringFixed(2),
		OptionsHT:         mapLineItems(q.OptionsHT),
		SurchargesHT:      mapLineItems(q.SurchargesHT),
		TotalHT:           q.TotalHT.StringFixed(2),
		VAT:               q.VAT.StringFixed(2),
		TotalTTC:          q.TotalTTC.StringFixed(2),
		ComputedAt:        q.ComputedAt,
	}
}

func mapLineItems(items []pricing.LineItem) []dto.LineItemResponse {
	out := make([]dto.LineItemResponse, len(items))
	for i, l := range items {
		out[i] = dto.LineItemResponse{ID: l.ID, Label: l.Label, Category: l.Category, PriceHT: l.PriceHT.StringFixed(2)}
	}
	return out
}

func mapLimitsToResponse(productID string, l pricing.WidthLimits) dto.WidthLimitsResponse {
	return dto.WidthLimitsResponse{ProductID: productID, Projection: l.Projection, MinWidth: l.MinWidth, MaxWidth: l.MaxWidth}
}
