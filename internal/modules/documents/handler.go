package documents

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
	g := api.Group("/documents")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/by-type/:project_id/:type", h.ByType)
	g.GET("/by-phase/:project_id/:phase", h.ByPhase)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/version", h.IncrementVersion)
}

func (h *Handler) List(c *gin.Context) {
	req := ListRequest{
		ProjectID:    shared.Query(c, "project_id"),
		DocumentType: shared.Query(c, "document_type"),
		LinkedTaskID: shared.Query(c, "linked_task_id"),
		LinkedPhase:  shared.Query(c, "linked_phase"),
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

func (h *Handler) ByType(c *gin.Context) {
	req := ByTypeRequest{ProjectID: c.Param("project_id"), DocumentType: c.Param("type")}
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), req))
}

func (h *Handler) ByPhase(c *gin.Context) {
	req := ByPhaseRequest{ProjectID: c.Param("project_id"), Phase: c.Param("phase")}
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), req))
}

func (h *Handler) IncrementVersion(c *gin.Context) {
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), IncrementVersionRequest{ID: c.Param("id")}))
}
