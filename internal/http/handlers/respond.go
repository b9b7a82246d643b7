package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adscalemedia/adsite-backend/internal/schema"
)

// Every response uses the {"success": ...} envelope the landing pages and
// the admin console expect.

// respondOK writes a success envelope merged with payload.
func respondOK(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// respondError writes a failure envelope with a client-facing message.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondValidationError writes a failure envelope with per-field errors.
func respondValidationError(c *gin.Context, errs []schema.FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Validation error",
		"errors":  errs,
	})
}

// userPayload shapes a user for API responses. The password hash never
// leaves the server.
func userPayload(id, username string) gin.H {
	return gin.H{"id": id, "username": username}
}
