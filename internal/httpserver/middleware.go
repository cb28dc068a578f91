package httpserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rickbags/internal/domain"
	"rickbags/internal/session"
)

const sessionCookie = "rickbags_session"

const (
	ctxSessionID = "sessionID"
	ctxSession   = "session"
	ctxUser      = "user"
)

// sessionStore is the slice of session.Store the middleware needs.
type sessionStore interface {
	Load(ctx context.Context, sid string) (*session.Data, error)
	Save(ctx context.Context, sid string, data *session.Data) error
	Delete(ctx context.Context, sid string) error
}

// sessionMiddleware resolves the visitor's session from the cookie,
// minting a new session ID when none is present. Handlers that mutate
// the session persist it with saveSession.
func (h *api) sessionMiddleware() gin.HandlerFunc {
	ttlSeconds := int(h.Cfg.SessionTTL.Seconds())
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(sessionCookie, sid, ttlSeconds, "/", "", false, true)
		}

		data, err := h.Sessions.Load(c.Request.Context(), sid)
		if err != nil {
			h.logger.Printf("session load sid=%s: %v", sid, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}

		c.Set(ctxSessionID, sid)
		c.Set(ctxSession, data)
		c.Next()
	}
}

// authRequired resolves the logged-in user from the session and aborts
// with 401 when nobody is logged in. A stale user ID (deleted or
// deactivated account) also counts as logged out.
func (h *api) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		data := sessionData(c)
		if data.UserID == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		u, err := h.Users.GetByID(c.Request.Context(), *data.UserID)
		if err != nil || !u.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Set(ctxUser, u)
		c.Next()
	}
}

// adminRequired must run after authRequired.
func (h *api) adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentUser(c).IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func sessionData(c *gin.Context) *session.Data {
	return c.MustGet(ctxSession).(*session.Data)
}

func currentUser(c *gin.Context) *domain.User {
	return c.MustGet(ctxUser).(*domain.User)
}

// saveSession persists the (possibly mutated) session blob.
func (h *api) saveSession(c *gin.Context) error {
	sid := c.MustGet(ctxSessionID).(string)
	return h.Sessions.Save(c.Request.Context(), sid, sessionData(c))
}

// destroySession drops the session server-side and expires the cookie.
func (h *api) destroySession(c *gin.Context) error {
	sid := c.MustGet(ctxSessionID).(string)
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	return h.Sessions.Delete(c.Request.Context(), sid)
}

func paramInt64(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
