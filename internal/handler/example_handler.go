package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storyclass/storyclass-backend/internal/model"
	"github.com/storyclass/storyclass-backend/internal/response"
)

// ExampleHandler serves the fixed sample unit used to prefill the
// generator form.
type ExampleHandler struct{}

// NewExampleHandler creates a new ExampleHandler.
func NewExampleHandler() *ExampleHandler {
	return &ExampleHandler{}
}

// GetExample godoc
// GET /example
func (h *ExampleHandler) GetExample(c *gin.Context) {
	response.Success(c, http.StatusOK, model.Unit{
		TargetCommunicativeFunctions: []string{
			"능력 묻고 답하기",
			"감정 묻고 답하기",
			"소유 표현하기",
		},
		TargetGrammarForms: []string{
			"I can...",
			"Can you...?",
			"Yes, I can. / No, I can't.",
			"I have...",
			"Do you have...?",
		},
		TargetVocabulary: []string{
			"bird",
			"fish",
			"frog",
			"fly",
			"swim",
			"jump",
			"happy",
			"sad",
			"angry",
			"tired",
		},
	})
}
