package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beehayv/beehayv-api/internal/service"
	"github.com/beehayv/beehayv-api/pkg/response"
)

// TableHandler exposes raw table projections.
type TableHandler struct {
	service *service.TableService
}

// NewTableHandler constructs a table handler.
func NewTableHandler(svc *service.TableService) *TableHandler {
	return &TableHandler{service: svc}
}

// List godoc
// @Summary List viewable table names
// @Tags Tables
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tables [get]
func (h *TableHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Names(), nil)
}

// View godoc
// @Summary View one table exactly as persisted
// @Tags Tables
// @Produce json
// @Param name path string true "Table name"
// @Success 200 {object} response.Envelope
// @Router /tables/{name} [get]
func (h *TableHandler) View(c *gin.Context) {
	view, err := h.service.View(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}
