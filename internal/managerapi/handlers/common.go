package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jnabil1974/storal.fr-sub003/internal/logging"
	"github.com/jnabil1974/storal.fr-sub003/internal/managerapi/handlers/dto"
	"github.com/jnabil1974/storal.fr-sub003/pkg/errormapper"
)

const (
	DefaultLimit  = 20
	MaxLimit      = 100
	DefaultOffset = 0
)

var errMissingID = errors.New("missing id path parameter")

// parsePagination extracts limit and offset from query params with validation and defaults.
func parsePagination(c *gin.Context) (limit, offset int32) {
	limitStr := c.DefaultQuery("limit", strconv.Itoa(DefaultLimit))
	offsetStr := c.DefaultQuery("offset", strconv.Itoa(DefaultOffset))

	limit64, err := strconv.ParseInt(limitStr, 10, 32)
	if err != nil || limit64 <= 0 {
		limit = DefaultLimit
	} else if limit64 > MaxLimit {
		slog.WarnContext(c.Request.Context(), "Requested limit exceeds maximum, capping.", slog.Int64("requested", limit64), slog.Int("max", MaxLimit))
		limit = MaxLimit
	} else {
		limit = int32(limit64)
	}

	offset64, err := strconv.ParseInt(offsetStr, 10, 32)
	if err != nil || offset64 < 0 {
		offset = DefaultOffset
	} else {
		offset = int32(offset64)
	}

	return limit, offset
}

// parseIDParam reads the :id path parameter and answers 400 itself when it is blank.
func parseIDParam(c *gin.Context) (string, error) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondBadRequest(c, "Missing id path parameter")
		return "", errMissingID
	}
	return id, nil
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:     message,
		Code:      errormapper.ErrorCodeValidationFailure,
		RequestID: logging.RequestID(c.Request.Context()),
	})
}

// respondError maps err to a status and stable code. Server-side failures are logged
// at error level and answered with message; client errors carry the error text.
func respondError(ctx context.Context, c *gin.Context, err error, message string) {
	code := errormapper.CodeFor(err)
	status := errormapper.HTTPStatus(code)
	resp := dto.ErrorResponse{
		Code:      code,
		Retryable: errormapper.Retryable(code),
		RequestID: logging.RequestID(ctx),
	}
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, message, slog.String("code", code), slog.Any("error", err))
		resp.Error = message
	} else {
		slog.InfoContext(ctx, "Request rejected", slog.String("code", code), slog.Any("error", err))
		resp.Error = err.Error()
	}
	c.JSON(status, resp)
}
