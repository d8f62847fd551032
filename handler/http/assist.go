package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type assistRequest struct {
	Query  string `json:"query"`
	Portal string `json:"portal"`
}

// Assist answers a query with suggestions and an AI summary. Only an
// unparseable body is rejected here; an empty query and provider-side
// failures surface through the response status field.
func (h *Handler) Assist(c *gin.Context) {
	var req assistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}

	response := h.assistService.Assist(c.Request.Context(), req.Query, req.Portal)
	sendJSON(c, http.StatusOK, response)
}
