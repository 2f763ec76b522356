// Package response renders the envelope shared by every API endpoint.
package response

import "github.com/gin-gonic/gin"

type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Error   interface{} `json:"error"`
}

// Success writes the success envelope with the given HTTP status code.
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Envelope{Status: "success", Message: message, Data: data})
}

// Error writes the error envelope with the given HTTP status code.
func Error(c *gin.Context, code int, message string, detail interface{}) {
	c.JSON(code, Envelope{Status: "error", Message: message, Error: detail})
}
