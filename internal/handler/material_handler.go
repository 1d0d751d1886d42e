package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storyclass/storyclass-backend/internal/model"
	"github.com/storyclass/storyclass-backend/internal/response"
	"github.com/storyclass/storyclass-backend/internal/service"
	"github.com/storyclass/storyclass-backend/internal/validator"
)

// MaterialHandler handles lesson-material generation.
type MaterialHandler struct {
	materialService *service.MaterialService
}

// NewMaterialHandler creates a new MaterialHandler.
func NewMaterialHandler(materialService *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialService: materialService}
}

// Generate godoc
// POST /generate
// Returns a well-formed material bundle for three non-empty target lists.
// Provider failure never surfaces here: the service substitutes fallback
// material and the response stays 200 {success:true}.
func (h *MaterialHandler) Generate(c *gin.Context) {
	var req model.GenerationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	material, _ := h.materialService.Generate(c.Request.Context(), req)
	response.Success(c, http.StatusOK, material)
}
