package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/kazlearn-backend/internal/http/response"
	"github.com/yungbote/kazlearn-backend/internal/services"
)

type TrophyHandler struct {
	catalog services.CatalogService
}

func NewTrophyHandler(catalog services.CatalogService) *TrophyHandler {
	return &TrophyHandler{catalog: catalog}
}

// GET /api/trophies
func (h *TrophyHandler) List(c *gin.Context) {
	trophies, err := h.catalog.ListTrophies(c.Request.Context(), viewerID(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, trophies)
}
