package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storyclass/storyclass-backend/internal/middleware"
	"github.com/storyclass/storyclass-backend/internal/model"
	"github.com/storyclass/storyclass-backend/internal/response"
	"github.com/storyclass/storyclass-backend/internal/service"
	"github.com/storyclass/storyclass-backend/internal/validator"
)

// EvaluationHandler handles student-answer grading.
type EvaluationHandler struct {
	evaluationService *service.EvaluationService
}

// NewEvaluationHandler creates a new EvaluationHandler.
func NewEvaluationHandler(evaluationService *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService}
}

// Evaluate godoc
// POST /evaluate-answer
// All three fields must be present; empty strings pass through unchanged.
func (h *EvaluationHandler) Evaluate(c *gin.Context) {
	var req model.EvaluationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, _, err := h.evaluationService.Evaluate(
		c.Request.Context(),
		middleware.GetToken(c),
		*req.Question, *req.StudentAnswer, *req.StoryContent,
	)
	if err != nil {
		if errors.Is(err, service.ErrProviderNotConfigured) {
			response.Fail(c, http.StatusInternalServerError, response.ErrConfiguration)
			return
		}
		response.FailWithDetails(c, http.StatusInternalServerError, response.ErrProvider, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}
