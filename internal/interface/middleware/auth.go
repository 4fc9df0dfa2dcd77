package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	repo "github.com/smartschedule/smartschedule/internal/domain/repository"
	"github.com/smartschedule/smartschedule/pkg/helpers"
	"github.com/smartschedule/smartschedule/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxSessionIDKey = "sessionID"
	CtxUserNameKey  = "userName"
	CtxUserEmailKey = "userEmail"
)

// Auth validates the session cookie and ensures the persisted session
// record still exists. The record is the gate: a valid token whose
// session was deleted (or stored corrupt) is unauthorized.
func Auth(sessions repo.SessionRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			response.AbortError[any](c, http.StatusUnauthorized, "missing session token", nil)
			return
		}
		claims, err := jwt.ParseSessionToken(token)
		if err != nil {
			response.AbortError[any](c, http.StatusUnauthorized, "invalid session token", nil)
			return
		}
		sess, err := sessions.Get(c.Request.Context(), claims.SessionID)
		if err != nil || sess == nil {
			response.AbortError[any](c, http.StatusUnauthorized, "session not found", nil)
			return
		}

		c.Set(CtxUserIDKey, sess.UserID)
		c.Set(CtxSessionIDKey, sess.ID)
		c.Set(CtxUserNameKey, sess.Name)
		c.Set(CtxUserEmailKey, sess.Email)
		c.Next()
	}
}
