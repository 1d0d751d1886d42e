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

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// POST /auth/login
// Accepts only the demo credential pair and returns a fresh 24h token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrMissingField, fields)
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.FailDetail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.FailDetail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Raw(c, http.StatusOK, model.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        *user,
	})
}

// Me godoc
// GET /auth/me
// Decodes the bearer token back into the profile it was minted from.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.FailDetail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
		return
	}

	response.Raw(c, http.StatusOK, h.authService.ProfileFromClaims(claims))
}

// Register godoc
// POST /auth/register
// Validates the payload and echoes a constructed profile. No account row
// is created anywhere.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrMissingField, fields)
		return
	}

	resp := model.RegisterResponse{Message: "회원가입이 완료되었습니다."}
	resp.User.Email = req.Email
	resp.User.Name = req.Name
	resp.User.School = req.School
	resp.User.Role = "teacher"

	response.Raw(c, http.StatusOK, resp)
}
