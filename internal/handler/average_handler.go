package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/beehayv/beehayv-api/internal/middleware"
	"github.com/beehayv/beehayv-api/internal/models"
	"github.com/beehayv/beehayv-api/internal/service"
	appErrors "github.com/beehayv/beehayv-api/pkg/errors"
	"github.com/beehayv/beehayv-api/pkg/response"
)

// AverageHandler exposes the aggregation endpoints.
type AverageHandler struct {
	service *service.AggregationService
}

// NewAverageHandler constructs an average handler.
func NewAverageHandler(svc *service.AggregationService) *AverageHandler {
	return &AverageHandler{service: svc}
}

// Recalculate godoc
// @Summary Rebuild all average tables from the score log
// @Tags Averages
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /averages/recalculate [post]
func (h *AverageHandler) Recalculate(c *gin.Context) {
	result, err := h.service.RecalculateAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Weekly godoc
// @Summary List weekly averages
// @Tags Averages
// @Produce json
// @Param definition_id query int false "Filter by definition"
// @Success 200 {object} response.Envelope
// @Router /averages/weekly [get]
func (h *AverageHandler) Weekly(c *gin.Context) {
	definitionID, ok := optionalDefinitionID(c)
	if !ok {
		return
	}
	rows, cacheHit, err := h.service.Weekly(c.Request.Context(), definitionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, rows, nil, middleware.ExtractMeta(c))
}

// Monthly godoc
// @Summary List monthly averages
// @Tags Averages
// @Produce json
// @Param definition_id query int false "Filter by definition"
// @Success 200 {object} response.Envelope
// @Router /averages/monthly [get]
func (h *AverageHandler) Monthly(c *gin.Context) {
	definitionID, ok := optionalDefinitionID(c)
	if !ok {
		return
	}
	rows, cacheHit, err := h.service.Monthly(c.Request.Context(), definitionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, rows, nil, middleware.ExtractMeta(c))
}

// SemiAnnual godoc
// @Summary List semi-annual averages
// @Tags Averages
// @Produce json
// @Param definition_id query int false "Filter by definition"
// @Success 200 {object} response.Envelope
// @Router /averages/semi-annual [get]
func (h *AverageHandler) SemiAnnual(c *gin.Context) {
	definitionID, ok := optionalDefinitionID(c)
	if !ok {
		return
	}
	rows, cacheHit, err := h.service.SemiAnnual(c.Request.Context(), definitionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, rows, nil, middleware.ExtractMeta(c))
}

// Series godoc
// @Summary Chart-ready progress series for one definition
// @Tags Averages
// @Produce json
// @Param period path string true "weekly, monthly or semi-annual"
// @Param definition_id query int true "Definition ID"
// @Success 200 {object} response.Envelope
// @Router /averages/{period}/series [get]
func (h *AverageHandler) Series(c *gin.Context) {
	period := models.AveragePeriod(c.Param("period"))
	definitionID, ok := optionalDefinitionID(c)
	if !ok {
		return
	}
	series, cacheHit, err := h.service.Series(c.Request.Context(), period, definitionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, series, nil, middleware.ExtractMeta(c))
}

func optionalDefinitionID(c *gin.Context) (int, bool) {
	raw := c.Query("definition_id")
	if raw == "" {
		return 0, true
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "definition_id must be an integer"))
		return 0, false
	}
	return parsed, true
}
