package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminPasswordHeader carries the shared admin secret.
const AdminPasswordHeader = "X-Admin-Password"

// AdminRequired gates a route group behind the shared admin password.
func AdminRequired(password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader(AdminPasswordHeader)
		if supplied == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(password)) != 1 {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
