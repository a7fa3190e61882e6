package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/kazlearn-backend/internal/http/response"
	"github.com/yungbote/kazlearn-backend/internal/observability"
	"github.com/yungbote/kazlearn-backend/internal/services"
)

type LessonHandler struct {
	catalog  services.CatalogService
	progress services.ProgressService
	metrics  *observability.Metrics
}

func NewLessonHandler(catalog services.CatalogService, progress services.ProgressService, metrics *observability.Metrics) *LessonHandler {
	return &LessonHandler{catalog: catalog, progress: progress, metrics: metrics}
}

// GET /api/lessons/:id
func (h *LessonHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id", "lesson")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	lesson, err := h.catalog.GetLesson(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, lesson)
}

// POST /api/lessons/:id/complete
func (h *LessonHandler) Complete(c *gin.Context) {
	id, err := pathID(c, "id", "lesson")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	res, err := h.progress.CompleteLesson(c.Request.Context(), viewerID(c), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	h.metrics.IncLessonCompleted()
	recordTrophies(h.metrics, res.NewTrophies)
	response.RespondOK(c, gin.H{"message": "Lesson completed", "result": res})
}
