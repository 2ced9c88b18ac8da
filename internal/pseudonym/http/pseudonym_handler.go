// Package http provides HTTP handlers for field pseudonymization.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/allisson/pseudonymizer/internal/httputil"
	"github.com/allisson/pseudonymizer/internal/pseudonym/http/dto"
	pseudonymUseCase "github.com/allisson/pseudonymizer/internal/pseudonym/usecase"
	customValidation "github.com/allisson/pseudonymizer/internal/validation"
)

// PseudonymHandler handles HTTP requests for pseudonymization of fields and values.
type PseudonymHandler struct {
	pseudonymUseCase pseudonymUseCase.PseudonymUseCase
	maxBatchSize     int
	logger           *slog.Logger
}

// NewPseudonymHandler creates a new pseudonym handler. maxBatchSize caps the values
// accepted by PseudonymizeHandler.
func NewPseudonymHandler(
	pseudonymUseCase pseudonymUseCase.PseudonymUseCase,
	maxBatchSize int,
	logger *slog.Logger,
) *PseudonymHandler {
	return &PseudonymHandler{
		pseudonymUseCase: pseudonymUseCase,
		maxBatchSize:     maxBatchSize,
		logger:           logger,
	}
}

// ListPseudonymsHandler pseudonymizes every stored value of a field.
// GET /v1/fields/:field/pseudonyms?throwaway=bool&offset=int&limit=int
// Returns 200 OK with one page of pseudonyms, in source order.
func (h *PseudonymHandler) ListPseudonymsHandler(c *gin.Context) {
	throwaway, err := parseThrowaway(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	field := c.Param("field")
	pseudonyms, err := h.pseudonymUseCase.AnonymizeField(c.Request.Context(), field, throwaway)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ListPseudonymsResponse{
		PseudonymsResponse: dto.MapToPseudonymsResponse(field, throwaway, httputil.Page(pseudonyms, offset, limit)),
		Offset:             offset,
		Limit:              limit,
		Total:              len(pseudonyms),
	})
}

// PseudonymizeHandler pseudonymizes caller-supplied values of a field.
// POST /v1/fields/:field/pseudonymize
// Returns 200 OK with one pseudonym per value, in request order.
func (h *PseudonymHandler) PseudonymizeHandler(c *gin.Context) {
	var req dto.PseudonymizeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(h.maxBatchSize); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	field := c.Param("field")
	pseudonyms, err := h.pseudonymUseCase.AnonymizeValues(c.Request.Context(), field, req.Values, req.Throwaway)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapToPseudonymsResponse(field, req.Throwaway, pseudonyms))
}

func parseThrowaway(c *gin.Context) (bool, error) {
	raw := c.Query("throwaway")
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
