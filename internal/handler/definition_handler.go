package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/beehayv/beehayv-api/internal/service"
	appErrors "github.com/beehayv/beehayv-api/pkg/errors"
	"github.com/beehayv/beehayv-api/pkg/response"
)

// DefinitionHandler handles behavior-definition endpoints.
type DefinitionHandler struct {
	service *service.DefinitionService
}

// NewDefinitionHandler constructs a definition handler.
func NewDefinitionHandler(svc *service.DefinitionService) *DefinitionHandler {
	return &DefinitionHandler{service: svc}
}

// List godoc
// @Summary List behavior definitions
// @Tags Definitions
// @Produce json
// @Param subject_id query int false "Filter by subject"
// @Success 200 {object} response.Envelope
// @Router /definitions [get]
func (h *DefinitionHandler) List(c *gin.Context) {
	subjectID := 0
	if raw := c.Query("subject_id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "subject_id must be an integer"))
			return
		}
		subjectID = parsed
	}
	defs, err := h.service.List(c.Request.Context(), subjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, defs, nil)
}

// Get godoc
// @Summary Get behavior definition by id
// @Tags Definitions
// @Produce json
// @Param id path int true "Definition ID"
// @Success 200 {object} response.Envelope
// @Router /definitions/{id} [get]
func (h *DefinitionHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "definition id must be an integer"))
		return
	}
	def, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, def, nil)
}

// Create godoc
// @Summary Define a tracked behavior
// @Tags Definitions
// @Accept json
// @Produce json
// @Param payload body service.CreateDefinitionRequest true "Definition payload"
// @Success 201 {object} response.Envelope
// @Router /definitions [post]
func (h *DefinitionHandler) Create(c *gin.Context) {
	var req service.CreateDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	def, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, def)
}
