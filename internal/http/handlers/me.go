package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adscalemedia/adsite-backend/internal/models"
)

// ContextUserKey is the gin context key under which the auth middleware
// stores the resolved *models.User.
const ContextUserKey = "currentUser"

// CurrentUser returns the authenticated user stored by the auth middleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

// Me reports the currently authenticated admin.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"user": userPayload(user.ID, user.Username)})
}
