package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"storefront/internal/domain"
	authsvc "storefront/internal/service/auth"
)

const (
	authCookie = "authToken"

	ctxUserID = "userID"
	ctxRole   = "role"
)

// authRequired verifies the signed session cookie and attaches the caller's
// identity to the request context.
func authRequired(tokens *authsvc.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(authCookie)
		if err != nil || token == "" {
			respond(c, http.StatusUnauthorized, nil, "Unauthorized")
			c.Abort()
			return
		}
		id, err := tokens.Verify(token)
		if err != nil {
			respond(c, http.StatusForbidden, nil, "Invalid token")
			c.Abort()
			return
		}
		c.Set(ctxUserID, id.UserID)
		c.Set(ctxRole, id.Role)
		c.Next()
	}
}

// adminRequired must run after authRequired.
func adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if callerRole(c) != domain.RoleAdmin {
			respond(c, http.StatusForbidden, nil, "Admin access only")
			c.Abort()
			return
		}
		c.Next()
	}
}

func callerID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func callerRole(c *gin.Context) string {
	return c.GetString(ctxRole)
}

// requireCustomer rejects non-"user" roles with the given message. The cart
// and checkout surfaces are customer-only.
func requireCustomer(c *gin.Context, message string) bool {
	if callerRole(c) != domain.RoleUser {
		respond(c, http.StatusForbidden, nil, message)
		c.Abort()
		return false
	}
	return true
}

func setAuthCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(authCookie, token, maxAge, "/", "", secure, true)
}

func clearAuthCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(authCookie, "", -1, "/", "", secure, true)
}
