// Package response writes the wire contract of the contact API. Every
// reply is a JSON object: either {"message": ...} or, for validation
// failures, {"errors": {field: message, ...}}.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Message sends the standard single-message body.
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

// FieldErrors sends the validation error map.
func FieldErrors(c *gin.Context, errs map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}
