package automation

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
	g := api.Group("/automation")
	g.POST("/execute", h.Execute)

	rules := g.Group("/rules")
	rules.GET("", h.ListRules)
	rules.POST("", h.CreateRule)
	rules.GET("/:id", h.GetRule)
	rules.PUT("/:id", h.UpdateRule)
	rules.DELETE("/:id", h.DeleteRule)
}

func (h *Handler) ListRules(c *gin.Context) {
	req := ListRulesRequest{Trigger: shared.Query(c, "trigger")}
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), req))
}

func (h *Handler) GetRule(c *gin.Context) {
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), GetRuleRequest{ID: c.Param("id")}))
}

func (h *Handler) CreateRule(c *gin.Context) {
	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidRequest(c, "Invalid request body")
		return
	}
	response.Envelope(c, http.StatusCreated, h.d.Dispatch(c.Request.Context(), req))
}

func (h *Handler) UpdateRule(c *gin.Context) {
	var req UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidRequest(c, "Invalid request body")
		return
	}
	req.ID = c.Param("id")
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), req))
}

func (h *Handler) DeleteRule(c *gin.Context) {
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), DeleteRuleRequest{ID: c.Param("id")}))
}

func (h *Handler) Execute(c *gin.Context) {
	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidRequest(c, "Invalid request body")
		return
	}
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), req))
}
