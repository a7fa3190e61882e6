package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/kazlearn-backend/internal/http/response"
	"github.com/yungbote/kazlearn-backend/internal/observability"
	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
	"github.com/yungbote/kazlearn-backend/internal/services"
)

type CourseHandler struct {
	catalog services.CatalogService
	quiz    services.QuizService
	metrics *observability.Metrics
}

func NewCourseHandler(catalog services.CatalogService, quiz services.QuizService, metrics *observability.Metrics) *CourseHandler {
	return &CourseHandler{catalog: catalog, quiz: quiz, metrics: metrics}
}

// GET /api/courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.catalog.ListCourses(c.Request.Context(), viewerID(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, courses)
}

// GET /api/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id", "course")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	course, err := h.catalog.GetCourse(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, course)
}

// GET /api/courses/:id/test
func (h *CourseHandler) ListQuestions(c *gin.Context) {
	id, err := pathID(c, "id", "course")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	questions, err := h.quiz.ListQuestions(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, questions)
}

// POST /api/courses/:id/test/submit
// body: { "answers": { "<question id>": "<answer>" } }
func (h *CourseHandler) SubmitTest(c *gin.Context) {
	id, err := pathID(c, "id", "course")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	var req struct {
		Answers map[string]string `json:"answers"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondServiceError(c, apierr.Validation("answers must map question ids to strings"))
			return
		}
	}
	if req.Answers == nil {
		req.Answers = map[string]string{}
	}

	res, err := h.quiz.Submit(c.Request.Context(), viewerID(c), id, req.Answers)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	h.metrics.ObserveQuiz(res.Passed, res.Percentage)
	recordTrophies(h.metrics, res.NewTrophies)
	response.RespondOK(c, res)
}
