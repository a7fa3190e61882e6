package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/kazlearn-backend/internal/http/response"
	"github.com/yungbote/kazlearn-backend/internal/observability"
	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
	"github.com/yungbote/kazlearn-backend/internal/services"
)

type WordHandler struct {
	progress services.ProgressService
	metrics  *observability.Metrics
}

func NewWordHandler(progress services.ProgressService, metrics *observability.Metrics) *WordHandler {
	return &WordHandler{progress: progress, metrics: metrics}
}

// POST /api/words/learn
// body: { "word_id": "...", "proficiency"?: 1..5 }
func (h *WordHandler) Learn(c *gin.Context) {
	var req struct {
		WordID      string `json:"word_id"`
		Proficiency int    `json:"proficiency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondServiceError(c, apierr.Validation("invalid request body"))
		return
	}
	if req.WordID == "" {
		response.RespondServiceError(c, apierr.Validation("word_id is required"))
		return
	}
	wordID, err := uuid.Parse(req.WordID)
	if err != nil {
		response.RespondServiceError(c, apierr.NotFound("word not found"))
		return
	}
	res, err := h.progress.LearnWord(c.Request.Context(), viewerID(c), wordID, req.Proficiency)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	h.metrics.IncWordLearned()
	recordTrophies(h.metrics, res.NewTrophies)
	response.RespondOK(c, gin.H{"message": "Word marked as learned", "result": res})
}

// GET /api/words/learned
func (h *WordHandler) Learned(c *gin.Context) {
	words, err := h.progress.ListLearnedWords(c.Request.Context(), viewerID(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, words)
}
