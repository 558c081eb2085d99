package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	app "kaviospix/src/app"
)

const userContextKey = "currentUser"

// authenticate resolves the bearer token on every request and aborts
// with 401 when it cannot. No session state; the token is the whole
// credential.
func authenticate(auth *app.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"success": false, "message": "access denied, no token provided"})
			return
		}
		user, err := auth.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"success": false, "message": "invalid token"})
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *app.User {
	return c.MustGet(userContextKey).(*app.User)
}
