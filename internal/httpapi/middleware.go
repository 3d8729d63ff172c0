package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"antigravity-pm/internal/model"
)

const sessionCookie = "session"

// requireAuth resolves the session cookie to a user and aborts with 401 when
// the cookie is missing, invalid, or names a deleted user.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(sessionCookie)
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := s.auth.ResolveToken(c.Request.Context(), raw)
		if err != nil {
			c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// requireAdmin gates admin-only routes. Must run after requireAuth.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentUser(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *model.User {
	return c.MustGet("user").(*model.User)
}
