package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jnabil1974/storal.fr-sub003/internal/logging"
	"github.com/jnabil1974/storal.fr-sub003/internal/managerapi/handlers/dto"
	"github.com/jnabil1974/storal.fr-sub003/internal/pricing"
)

// OfferHandler lists the priced options and fabrics of a product.
type OfferHandler struct {
	calculator *pricing.Calculator
}

func NewOfferHandler(calc *pricing.Calculator) *OfferHandler {
	return &OfferHandler{calculator: calc}
}

// ListOptions handles GET /products/:id/options?category=&width=&projection=
func (h *OfferHandler) ListOptions(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "ListOptions")
	req, ok := parseOfferRequest(c)
	if !ok {
		return
	}
	req.Category = c.Query("category")
	logCtx = logging.ContextWithProductID(logCtx, req.ProductID)

	offer, err := h.calculator.Offer(logCtx, req)
	if err != nil {
		respondError(logCtx, c, err, "Failed to list product options")
		return
	}

	resp := dto.OptionListResponse{
		ProductID:         offer.ProductID,
		Category:          pricing.NormalizeCategory(req.Category),
		Coefficient:       offer.Coefficient.String(),
		CoefficientSource: offer.CoefficientSource,
		Options:           make([]dto.OfferedOptionResponse, len(offer.Options)),
	}
	for i, o := range offer.Options {
		resp.Options[i] = dto.OfferedOptionResponse{
			ID:       o.ID,
			Name:     o.Name,
			Category: o.Category,
			Mode:     o.Mode,
			PriceHT:  o.PriceHT.StringFixed(2),
			From:     o.From,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// ListFabrics handles GET /products/:id/fabrics?width=&projection=
func (h *OfferHandler) ListFabrics(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "ListFabrics")
	req, ok := parseOfferRequest(c)
	if !ok {
		return
	}
	req.Category = pricing.CategoryToile
	logCtx = logging.ContextWithProductID(logCtx, req.ProductID)

	offer, err := h.calculator.Offer(logCtx, req)
	if err != nil {
		respondError(logCtx, c, err, "Failed to list product fabrics")
		return
	}

	resp := dto.FabricListResponse{
		ProductID:         offer.ProductID,
		Coefficient:       offer.Coefficient.String(),
		CoefficientSource: offer.CoefficientSource,
		Fabrics:           make([]dto.OfferedFabricResponse, len(offer.Fabrics)),
	}
	for i, f := range offer.Fabrics {
		fabric := dto.OfferedFabricResponse{
			ID:        f.ID,
			Name:      f.Name,
			Range:     f.Range,
			PriceM2HT: f.PriceM2HT.StringFixed(2),
		}
		if f.PriceHT != nil {
			total := f.PriceHT.StringFixed(2)
			fabric.PriceHT = &total
		}
		resp.Fabrics[i] = fabric
	}
	c.JSON(http.StatusOK, resp)
}

// parseOfferRequest reads the product id and the optional dimensions. It answers
// 400 itself and reports false on malformed input.
func parseOfferRequest(c *gin.Context) (pricing.OfferRequest, bool) {
	productID, err := parseIDParam(c)
	if err != nil {
		return pricing.OfferRequest{}, false
	}
	req := pricing.OfferRequest{ProductID: productID}
	for _, q := range []struct {
		name string
		dst  *int
	}{{"width", &req.Width}, {"projection", &req.Projection}} {
		raw := c.Query(q.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			respondBadRequest(c, "Invalid "+q.name+" format")
			return pricing.OfferRequest{}, false
		}
		*q.dst = v
	}
	return req, true
}
