package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends a structured JSON success response
func JSONResponse(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// JSONError sends the error body clients branch on: a human-readable
// message, a stable machine code, and optional structured details.
func JSONError(c *gin.Context, status int, message, code string, details any) {
	body := gin.H{
		"error": message,
	}
	if code != "" {
		body["code"] = code
	}
	if details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}
