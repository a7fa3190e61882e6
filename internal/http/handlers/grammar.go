package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/kazlearn-backend/internal/http/response"
	"github.com/yungbote/kazlearn-backend/internal/services"
)

type GrammarHandler struct {
	catalog services.CatalogService
}

func NewGrammarHandler(catalog services.CatalogService) *GrammarHandler {
	return &GrammarHandler{catalog: catalog}
}

// GET /api/grammar?difficulty=beginner
func (h *GrammarHandler) List(c *gin.Context) {
	rules, err := h.catalog.ListGrammar(c.Request.Context(), c.Query("difficulty"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rules)
}

// GET /api/grammar/:id
func (h *GrammarHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id", "grammar rule")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	rule, err := h.catalog.GetGrammarRule(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rule)
}
