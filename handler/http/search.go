package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wikiicp/src/core/wiki"
)

type searchRequest struct {
	Query  string   `json:"query"`
	Portal string   `json:"portal"`
	Types  []string `json:"types"`
}

type searchResponse struct {
	Articles  []wiki.Result `json:"articles"`
	Tutorials []wiki.Result `json:"tutorials"`
	Counts    searchCounts  `json:"counts"`
}

type searchCounts struct {
	Articles  int `json:"articles"`
	Tutorials int `json:"tutorials"`
}

// Search runs the two-kind knowledge-base search. Absent or empty types
// enables both kinds.
func (h *Handler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}

	query := wiki.PlainText(req.Query)
	portalSlug := wiki.Slugify(req.Portal)
	ctx := c.Request.Context()

	types := req.Types
	if len(types) == 0 {
		types = []string{"articles", "tutorials"}
	}
	enabled := map[string]bool{}
	for _, t := range types {
		enabled[t] = true
	}

	articles := []wiki.Result{}
	if enabled["articles"] {
		portal := h.searchService.PortalTerm(ctx, wiki.TaxArticlePortal, portalSlug)
		articles = h.searchService.CollectArticles(ctx, query, portal, h.cfg.ArticleLimit)
	}

	tutorials := []wiki.Result{}
	if enabled["tutorials"] {
		portal := h.searchService.PortalTerm(ctx, wiki.TaxVideoPortal, portalSlug)
		tutorials = h.searchService.CollectTutorials(ctx, query, portal, h.cfg.TutorialLimit)
	}

	sendJSON(c, http.StatusOK, searchResponse{
		Articles:  articles,
		Tutorials: tutorials,
		Counts: searchCounts{
			Articles:  len(articles),
			Tutorials: len(tutorials),
		},
	})
}
