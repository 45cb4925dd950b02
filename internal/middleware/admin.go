package middleware

import (
	"travel_booking/internal/flash" // One-shot notices

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// AdminOnly lets through only sessions whose user carries the admin flag.
// The flag comes from the user row reloaded by Session on every request.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			denyAnonymous(c)
			return
		}
		// Check if user is admin
		if !p.IsAdmin {
			logrus.WithFields(logrus.Fields{
				"user_id": p.UserID,
				"path":    c.Request.URL.Path,
			}).Warn("Admin access denied")
			flash.Redirect(c, "/", flash.Error, "Acesso negado!")
			c.Abort()
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
