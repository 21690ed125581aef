package reference

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"avenstudio/internal/contract"
	"avenstudio/internal/pkg/response"
)

type Handler struct {
	d contract.Dispatcher
}

func NewHandler(d contract.Dispatcher) *Handler {
	return &Handler{d: d}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/reference")
	g.GET("/phases/:id", h.Phase)
	for action := range tables {
		g.GET("/"+strings.ReplaceAll(action, "_", "-"), h.table(action))
	}
}

func (h *Handler) table(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), Request{Action: action}))
	}
}

func (h *Handler) Phase(c *gin.Context) {
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), PhaseRequest{ID: c.Param("id")}))
}
