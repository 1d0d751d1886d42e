package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/storyclass/storyclass-backend/internal/response"
	"github.com/storyclass/storyclass-backend/internal/service"
)

const (
	// ContextKeyToken is the Gin context key for the raw bearer value.
	ContextKeyToken = "bearer_token"
	// ContextKeyClaims is the Gin context key for decoded claims.
	ContextKeyClaims = "claims"
)

// RequireBearer accepts any non-empty bearer value without decoding it.
// The raw value is kept as an opaque identifier and reused as the owner
// key when persisting artifacts; nothing verifies it maps to an account.
func RequireBearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" {
			response.AbortFailDetail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
			return
		}

		c.Set(ContextKeyToken, token)
		c.Next()
	}
}

// RequireSession decodes and validates the bearer token's contents. Used by
// routes that interpret the embedded profile.
func RequireSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" {
			response.AbortFailDetail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			code := response.ErrInvalidToken
			if errors.Is(err, service.ErrTokenExpired) {
				code = response.ErrTokenExpired
			}
			response.AbortFailDetail(c, http.StatusUnauthorized, code)
			return
		}

		c.Set(ContextKeyToken, token)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetToken retrieves the raw bearer value from the Gin context.
func GetToken(c *gin.Context) string {
	val, exists := c.Get(ContextKeyToken)
	if !exists {
		return ""
	}
	token, _ := val.(string)
	return token
}

// GetClaims retrieves decoded claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
