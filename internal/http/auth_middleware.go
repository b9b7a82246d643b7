package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/adscalemedia/adsite-backend/internal/config"
	"github.com/adscalemedia/adsite-backend/internal/http/handlers"
	"github.com/adscalemedia/adsite-backend/internal/security"
	"github.com/adscalemedia/adsite-backend/internal/session"
	"github.com/adscalemedia/adsite-backend/internal/storage"
)

// RequireAuth resolves the session cookie into a user record and aborts with
// 401 when anything in the chain fails: missing cookie, bad signature,
// unknown or expired session, or a user that no longer exists.
func RequireAuth(store storage.Storage, sessions session.Store, sessionCfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, errCookie := c.Cookie(sessionCfg.CookieName)
		if errCookie != nil || cookie == "" {
			abortUnauthorized(c)
			return
		}

		sid, errParse := security.ParseSessionToken(sessionCfg.Secret, cookie)
		if errParse != nil {
			abortUnauthorized(c)
			return
		}

		userID, errGet := sessions.Get(c.Request.Context(), sid)
		if errGet != nil {
			if !errors.Is(errGet, session.ErrNotFound) {
				log.WithError(errGet).Error("auth middleware: session lookup failed")
			}
			abortUnauthorized(c)
			return
		}

		user, errUser := store.GetUser(c.Request.Context(), userID)
		if errUser != nil {
			if errors.Is(errUser, storage.ErrNotFound) {
				// The user behind this session is gone; drop the session too.
				_ = sessions.Delete(c.Request.Context(), sid)
			} else {
				log.WithError(errUser).Error("auth middleware: user lookup failed")
			}
			abortUnauthorized(c)
			return
		}

		c.Set(handlers.ContextUserKey, user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
}
