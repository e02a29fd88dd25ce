package http

import "github.com/gin-gonic/gin"

// Envelope es el formato uniforme de todas las respuestas del API.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respondSuccess(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondFailed(c *gin.Context, status int, code, message string) {
	c.JSON(status, Envelope{
		Success: false,
		Message: message,
		Code:    code,
	})
}

func abortFailed(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Message: message,
		Code:    code,
	})
}
