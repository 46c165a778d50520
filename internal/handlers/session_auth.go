package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/studytrack/progress-service/internal/models"
	"github.com/studytrack/progress-service/internal/repositories"
	"github.com/studytrack/progress-service/internal/utils"
)

const (
	sessionCookieName = "sid"
	sessionTTL        = 30 * 24 * time.Hour
)

// SessionAuthMiddleware resolves the signed session cookie into request-scoped
// identity. Anything that fails verification leaves the request anonymous; the
// gates below decide what anonymity means per route.
type SessionAuthMiddleware struct {
	sessions     repositories.SessionRepository
	roles        repositories.RoleRepository
	secret       []byte
	isProduction bool
	logger       utils.Logger
}

func NewSessionAuthMiddleware(
	sessions repositories.SessionRepository,
	roles repositories.RoleRepository,
	secret string,
	isProduction bool,
	logger utils.Logger,
) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{
		sessions:     sessions,
		roles:        roles,
		secret:       []byte(secret),
		isProduction: isProduction,
		logger:       logger,
	}
}

// SessionMiddleware parses the sid cookie and, when it maps to a live session,
// sets "user_id" and "user_role" on the context. It never aborts.
func (m *SessionAuthMiddleware) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(sessionCookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		sid, ok := m.verifyCookieValue(raw)
		if !ok {
			// Tampered or malformed; treat as anonymous.
			c.Next()
			return
		}

		session, err := m.sessions.Get(c.Request.Context(), sid)
		if err != nil {
			utils.LoggerFromContext(c, m.logger).Error("session lookup failed", "error", err)
			c.Next()
			return
		}
		if session == nil {
			c.Next()
			return
		}

		role, err := m.roles.Get(c.Request.Context(), session.UserID)
		if err != nil {
			utils.LoggerFromContext(c, m.logger).Error("role lookup failed", "error", err, "user_id", session.UserID)
			c.Next()
			return
		}

		c.Set("user_id", session.UserID)
		c.Set("user_role", models.ResolveRole(role))
		c.Set("session_id", sid)
		c.Next()
	}
}

// AuthMiddleware rejects anonymous requests with 401.
func (m *SessionAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUserID(c); !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRoleMiddleware rejects callers whose resolved role is not in the
// allowed set: 401 when anonymous, 403 otherwise.
func (m *SessionAuthMiddleware) RequireRoleMiddleware(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUserID(c); !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
			c.Abort()
			return
		}

		current, _ := c.Get("user_role")
		role, _ := current.(models.Role)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "Forbidden"})
		c.Abort()
	}
}

// IssueSession opens a server-side session for the user and sets the signed
// cookie on the response.
func (m *SessionAuthMiddleware) IssueSession(c *gin.Context, userID string) error {
	sid := uuid.NewString()
	expiresAt := time.Now().Add(sessionTTL)

	session := &models.Session{
		SID:       sid,
		UserID:    userID,
		Data:      datatypes.JSON([]byte(`{"userId":"` + userID + `"}`)),
		ExpiresAt: expiresAt,
	}
	if err := m.sessions.Create(c.Request.Context(), session); err != nil {
		return err
	}

	m.setCookie(c, m.signCookieValue(sid), int(sessionTTL.Seconds()))
	return nil
}

// ClearSession destroys the caller's session row and expires the cookie.
func (m *SessionAuthMiddleware) ClearSession(c *gin.Context) error {
	if sid := c.GetString("session_id"); sid != "" {
		if err := m.sessions.Delete(c.Request.Context(), sid); err != nil {
			return err
		}
	}
	m.setCookie(c, "", -1)
	return nil
}

func (m *SessionAuthMiddleware) setCookie(c *gin.Context, value string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if m.isProduction {
		// Production serves the client from another origin; cross-site cookies
		// need SameSite=None, which in turn requires Secure.
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(sessionCookieName, value, maxAge, "/", "", m.isProduction, true)
}

// signCookieValue returns "sid.signature" with an HMAC-SHA256 signature.
func (m *SessionAuthMiddleware) signCookieValue(sid string) string {
	return sid + "." + m.sign(sid)
}

// verifyCookieValue splits and checks the signature in constant time,
// returning the bare session id.
func (m *SessionAuthMiddleware) verifyCookieValue(value string) (string, bool) {
	sid, sig, found := strings.Cut(value, ".")
	if !found || sid == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(m.sign(sid))) {
		return "", false
	}
	return sid, true
}

func (m *SessionAuthMiddleware) sign(sid string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(sid))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
