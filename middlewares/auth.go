// Package middlewares holds the gin middleware: session and role gates,
// request limiting and request ids.
package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventdesk/auth"
	"eventdesk/utils"
)

// RequireSession sends anonymous requests to the login screen.
func RequireSession(m *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.Current() == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole intercepts navigations the current role is not allowed to
// make, before any handler runs. The user lands back on the events list with
// a permission-denied notification.
func RequireRole(m *auth.Manager, role string, flash *utils.Flash) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := m.Current()
		if current == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if current.Role != role {
			flash.Notify(utils.KindError, "Access denied",
				"You do not have permission to access this function")
			c.Redirect(http.StatusFound, "/events")
			c.Abort()
			return
		}
		c.Next()
	}
}
