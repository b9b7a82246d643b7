package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/adscalemedia/adsite-backend/internal/config"
	"github.com/adscalemedia/adsite-backend/internal/security"
	"github.com/adscalemedia/adsite-backend/internal/session"
	"github.com/adscalemedia/adsite-backend/internal/storage"
)

// genericCredentialsMessage is returned for every failed login so usernames
// cannot be enumerated.
const genericCredentialsMessage = "Incorrect username or password"

// AuthHandler handles registration, login, and session endpoints.
type AuthHandler struct {
	store      storage.Storage
	sessions   session.Store
	sessionCfg config.SessionConfig
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(store storage.Storage, sessions session.Store, sessionCfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{store: store, sessions: sessions, sessionCfg: sessionCfg}
}

// credentialsRequest defines the request body for register and login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CanRegister reports whether the one-time admin registration is still open.
func (h *AuthHandler) CanRegister(c *gin.Context) {
	users, err := h.store.GetAllUsers(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("can-register: query users failed")
		respondError(c, http.StatusInternalServerError, "Failed to check registration status")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"canRegister": len(users) == 0})
}

// Register creates the admin account. It succeeds only while zero users
// exist; afterwards it fails permanently.
func (h *AuthHandler) Register(c *gin.Context) {
	var body credentialsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	username := strings.TrimSpace(body.Username)
	password := strings.TrimSpace(body.Password)
	if username == "" || password == "" {
		respondError(c, http.StatusBadRequest, "Username and password are required")
		return
	}
	if len(password) < 8 {
		respondError(c, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	users, errUsers := h.store.GetAllUsers(c.Request.Context())
	if errUsers != nil {
		log.WithError(errUsers).Error("register: query users failed")
		respondError(c, http.StatusInternalServerError, "Failed to register")
		return
	}
	if len(users) > 0 {
		respondError(c, http.StatusForbidden, "Registration is disabled")
		return
	}

	hash, errHash := security.HashPassword(password)
	if errHash != nil {
		log.WithError(errHash).Error("register: hash password failed")
		respondError(c, http.StatusInternalServerError, "Failed to register")
		return
	}

	user, errCreate := h.store.CreateUser(c.Request.Context(), username, hash)
	if errCreate != nil {
		if errors.Is(errCreate, storage.ErrUsernameTaken) {
			respondError(c, http.StatusBadRequest, "Username already exists")
			return
		}
		log.WithError(errCreate).Error("register: create user failed")
		respondError(c, http.StatusInternalServerError, "Failed to register")
		return
	}

	if !h.establishSession(c, user.ID) {
		return
	}
	log.WithField("username", user.Username).Info("admin account registered")
	respondOK(c, http.StatusOK, gin.H{"user": userPayload(user.ID, user.Username)})
}

// Login verifies credentials and establishes a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var body credentialsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	username := strings.TrimSpace(body.Username)
	password := strings.TrimSpace(body.Password)
	if username == "" || password == "" {
		respondError(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, errFind := h.store.GetUserByUsername(c.Request.Context(), username)
	if errFind != nil {
		if errors.Is(errFind, storage.ErrNotFound) {
			respondError(c, http.StatusUnauthorized, genericCredentialsMessage)
			return
		}
		log.WithError(errFind).Error("login: query user failed")
		respondError(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	if !security.CheckPassword(user.Password, password) {
		respondError(c, http.StatusUnauthorized, genericCredentialsMessage)
		return
	}

	if !h.establishSession(c, user.ID) {
		return
	}
	log.WithField("username", user.Username).Info("admin logged in")
	respondOK(c, http.StatusOK, gin.H{"user": userPayload(user.ID, user.Username)})
}

// Logout invalidates the current session and clears the cookie. It succeeds
// whether or not a valid session was presented.
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, errCookie := c.Cookie(h.sessionCfg.CookieName); errCookie == nil {
		if sid, errParse := security.ParseSessionToken(h.sessionCfg.Secret, cookie); errParse == nil {
			if errDelete := h.sessions.Delete(c.Request.Context(), sid); errDelete != nil {
				log.WithError(errDelete).Warn("logout: delete session failed")
			}
		}
	}
	h.clearSessionCookie(c)
	respondOK(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// establishSession creates a session row and sets the signed cookie. It
// writes an error response and returns false on failure.
func (h *AuthHandler) establishSession(c *gin.Context, userID string) bool {
	ttl := time.Duration(h.sessionCfg.TTLHours) * time.Hour

	sid, errCreate := h.sessions.Create(c.Request.Context(), userID, ttl)
	if errCreate != nil {
		log.WithError(errCreate).Error("create session failed")
		respondError(c, http.StatusInternalServerError, "Failed to establish session")
		return false
	}

	token, errSign := security.SignSessionToken(h.sessionCfg.Secret, sid, ttl)
	if errSign != nil {
		log.WithError(errSign).Error("sign session token failed")
		respondError(c, http.StatusInternalServerError, "Failed to establish session")
		return false
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.sessionCfg.CookieName, token, int(ttl.Seconds()), "/", "", h.sessionCfg.CookieSecure, true)
	return true
}

// clearSessionCookie expires the session cookie in the browser.
func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.sessionCfg.CookieName, "", -1, "/", "", h.sessionCfg.CookieSecure, true)
}
