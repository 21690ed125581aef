package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"avenstudio/internal/contract"
	"avenstudio/internal/modules/shared"
	"avenstudio/internal/pkg/response"
)

type Handler struct {
	d contract.Dispatcher
}

func NewHandler(d contract.Dispatcher) *Handler {
	return &Handler{d: d}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/stats", h.Dashboard)
}

func (h *Handler) Dashboard(c *gin.Context) {
	req := DashboardRequest{ProjectID: shared.Query(c, "project_id")}
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), req))
}
