package milestones

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
	g := api.Group("/milestones")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/timeline/:project_id", h.Timeline)
	g.GET("/by-phase/:project_id/:phase", h.ByPhase)
	g.GET("/by-status/:project_id/:status", h.ByStatus)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/complete", h.MarkComplete)
}

func (h *Handler) List(c *gin.Context) {
	req := ListRequest{
		ProjectID: shared.Query(c, "project_id"),
		Phase:     shared.Query(c, "phase"),
		Status:    shared.Query(c, "status"),
	}
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), req))
}

func (h *Handler) Get(c *gin.Context) {
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), GetRequest{ID: c.Param("id")}))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidRequest(c, "Invalid request body")
		return
	}
	response.Envelope(c, http.StatusCreated, h.d.Dispatch(c.Request.Context(), req))
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidRequest(c, "Invalid request body")
		return
	}
	req.ID = c.Param("id")
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), req))
}

func (h *Handler) Delete(c *gin.Context) {
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), DeleteRequest{ID: c.Param("id")}))
}

func (h *Handler) ByPhase(c *gin.Context) {
	req := ByPhaseRequest{ProjectID: c.Param("project_id"), Phase: c.Param("phase")}
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), req))
}

func (h *Handler) ByStatus(c *gin.Context) {
	req := ByStatusRequest{ProjectID: c.Param("project_id"), Status: c.Param("status")}
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), req))
}

func (h *Handler) MarkComplete(c *gin.Context) {
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), MarkCompleteRequest{ID: c.Param("id")}))
}

func (h *Handler) Timeline(c *gin.Context) {
	req := TimelineRequest{ProjectID: c.Param("project_id")}
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), req))
}
