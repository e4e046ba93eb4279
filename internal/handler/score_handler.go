package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/beehayv/beehayv-api/internal/service"
	appErrors "github.com/beehayv/beehayv-api/pkg/errors"
	"github.com/beehayv/beehayv-api/pkg/response"
)

// ScoreHandler handles the daily score log endpoints.
type ScoreHandler struct {
	service *service.ScoreService
}

// NewScoreHandler constructs a score handler.
func NewScoreHandler(svc *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{service: svc}
}

// List godoc
// @Summary List logged scores
// @Tags Scores
// @Produce json
// @Param definition_id query int false "Filter by definition"
// @Param date_from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /scores [get]
func (h *ScoreHandler) List(c *gin.Context) {
	var req service.ListScoresRequest
	if raw := c.Query("definition_id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "definition_id must be an integer"))
			return
		}
		req.DefinitionID = parsed
	}
	req.DateFrom = c.Query("date_from")
	req.DateTo = c.Query("date_to")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		req.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		req.PageSize = limit
	}

	scores, pagination, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scores, pagination)
}

// Log godoc
// @Summary Log a daily score
// @Tags Scores
// @Accept json
// @Produce json
// @Param payload body service.LogScoreRequest true "Score payload"
// @Success 201 {object} response.Envelope
// @Router /scores [post]
func (h *ScoreHandler) Log(c *gin.Context) {
	var req service.LogScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	score, err := h.service.Log(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, score)
}
