package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wikiicp/src/core/wiki"
	"wikiicp/src/log"
)

type Handler struct {
	searchService wiki.SearchService
	assistService wiki.AssistService
	cfg           wiki.Config
}

func NewHandler(searchService wiki.SearchService, assistService wiki.AssistService, cfg wiki.Config) *Handler {
	return &Handler{
		searchService: searchService,
		assistService: assistService,
		cfg:           cfg,
	}
}

// RegisterRoutes registers the knowledge-base API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/wiki-icp/v1")

	v1.POST("/search", h.Search)
	v1.POST("/assist", h.Assist)

	r.GET("/health", h.CheckHealth)
}

// CheckHealth reports service liveness
func (h *Handler) CheckHealth(c *gin.Context) {
	sendJSON(c, http.StatusOK, gin.H{"status": "ok"})
}

// Common error response structure
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func sendError(c *gin.Context, status int, err error) {
	code := "INTERNAL_ERROR"
	if status == http.StatusBadRequest {
		code = "INVALID_REQUEST"
	}

	log.Error(err, "request failed", "status", status, "request_id", c.GetString("request_id"))

	c.JSON(status, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

func sendJSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}
