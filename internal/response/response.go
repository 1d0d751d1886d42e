package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the {success, data} wrapper used by the generation and
// media endpoints.
type Envelope struct {
	Success bool              `json:"success"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Code    ErrCode           `json:"code,omitempty"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Success sends a {success:true, data} response.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Envelope{Success: true, Data: data})
}

// Raw sends data without the envelope. The auth endpoints keep their
// historical top-level shapes ({access_token,...}, profile object).
func Raw(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Fail sends a {success:false, error} response with an error code.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, Envelope{Error: GetMessage(code), Code: code})
}

// FailWithDetails sends a failure carrying an upstream error string.
func FailWithDetails(c *gin.Context, statusCode int, code ErrCode, details string) {
	c.JSON(statusCode, Envelope{Error: GetMessage(code), Code: code, Details: details})
}

// FailWithFields sends a failure with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, Envelope{Error: GetMessage(code), Code: code, Fields: fields})
}

// Detail mirrors the auth-gate error shape: {"detail": "...", "code": "..."}.
type Detail struct {
	Detail string  `json:"detail"`
	Code   ErrCode `json:"code"`
}

// FailDetail sends an auth-gate error body.
func FailDetail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, Detail{Detail: GetMessage(code), Code: code})
}

// AbortFailDetail aborts the middleware chain with an auth-gate error body.
func AbortFailDetail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, Detail{Detail: GetMessage(code), Code: code})
}
