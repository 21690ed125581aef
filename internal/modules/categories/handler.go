package categories

import (
	"net/http"

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
	g := api.Group("/categories")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:name", h.Update)
	g.DELETE("/:name", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), ListRequest{}))
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
	req.Current = c.Param("name")
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), req))
}

func (h *Handler) Delete(c *gin.Context) {
	response.Envelope(c, http.StatusOK, h.d.Dispatch(c.Request.Context(), DeleteRequest{Name: c.Param("name")}))
}
