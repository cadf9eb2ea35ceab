package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jnabil1974/storal.fr-sub003/internal/logging"
	"github.com/jnabil1974/storal.fr-sub003/internal/managerapi/handlers/dto"
	"github.com/jnabil1974/storal.fr-sub003/internal/zone"
)

type ZoneHandler struct {
	checker *zone.Checker
}

func NewZoneHandler(checker *zone.Checker) *ZoneHandler {
	return &ZoneHandler{checker: checker}
}

// CheckZone handles GET /zones/check?postal_code=&width=
// An uncovered or malformed postal code is a normal answer with eligible=false.
func (h *ZoneHandler) CheckZone(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "CheckZone")
	postalCode := strings.TrimSpace(c.Query("postal_code"))
	if postalCode == "" {
		respondBadRequest(c, "Missing required query parameter: postal_code")
		return
	}

	eligibility := h.checker.Check(postalCode)
	logCtx = logging.ContextWithDepartment(logCtx, eligibility.Department)
	resp := dto.ZoneCheckResponse{
		Eligible:   eligibility.Eligible,
		PostalCode: eligibility.PostalCode,
		Department: eligibility.Department,
		Message:    eligibility.Reason,
	}
	if z := eligibility.Zone; z != nil {
		resp.Zone = &dto.ZoneResponse{
			Name:      z.Name,
			Region:    z.Region,
			LeadTime:  z.LeadTime,
			TravelFee: z.TravelFee.StringFixed(2),
		}
	}

	if widthStr := c.Query("width"); widthStr != "" && eligibility.Eligible {
		width, err := strconv.Atoi(widthStr)
		if err != nil {
			respondBadRequest(c, "Invalid width format")
			return
		}
		inst, err := h.checker.InstallationCost(width, postalCode)
		if err != nil {
			respondError(logCtx, c, err, "Failed to price installation")
			return
		}
		resp.Installation = &dto.InstallationResponse{
			WidthMM:     width,
			LabourHT:    inst.LabourHT.StringFixed(2),
			TravelFeeHT: inst.TravelFeeHT.StringFixed(2),
			TotalHT:     inst.LabourHT.Add(inst.TravelFeeHT).StringFixed(2),
		}
	}
	c.JSON(http.StatusOK, resp)
}
