// Package routes wires the logical navigation paths onto gin and renders the
// views. Handlers own all user-facing notifications; the data layers below
// only return typed results.
package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"eventdesk/auth"
	"eventdesk/events"
	"eventdesk/middlewares"
	"eventdesk/models"
	"eventdesk/utils"
)

type deps struct {
	auth   *auth.Manager
	events *events.Service
	flash  *utils.Flash
}

// RegisterRoutes mounts the whole navigation surface: the auth screens, the
// events list on / and /events, the admin-only event form and the user-only
// enrollment views. Role gates run before dispatch, so a forbidden
// navigation never reaches its handler.
func RegisterRoutes(server *gin.Engine, m *auth.Manager, svc *events.Service, flash *utils.Flash, rdb *redis.Client) {
	d := &deps{auth: m, events: svc, flash: flash}

	server.Use(middlewares.RequestID())

	// Credential endpoints get a tighter budget than the rest of the app.
	authLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     1,
		Burst:   5,
		IdleTTL: 10 * time.Minute,
	})
	attemptLimit := middlewares.AttemptLimit(rdb, middlewares.AttemptRule{
		Limit:  20,
		Window: time.Minute,
		KeyFn: func(c *gin.Context) string {
			username := c.PostForm("username")
			if username == "" {
				return ""
			}
			return "attempts:login:" + username
		},
	})

	server.GET("/login", d.loginPage)
	server.POST("/login",
		authLimiter.Middleware(func(c *gin.Context) string { return "login:" + c.ClientIP() }),
		attemptLimit,
		d.login,
	)
	server.POST("/register",
		authLimiter.Middleware(func(c *gin.Context) string { return "register:" + c.ClientIP() }),
		d.register,
	)

	app := server.Group("/")
	app.Use(middlewares.RequireSession(m))

	app.GET("/", d.eventsPage)
	app.GET("/events", d.eventsPage)
	app.GET("/logout", d.logoutConfirmPage)
	app.POST("/logout", d.logout)

	admin := app.Group("/")
	admin.Use(middlewares.RequireRole(m, models.RoleAdmin, flash))
	admin.GET("/new-event", d.newEventPage)
	admin.GET("/events/:id/edit", d.editEventPage)
	admin.POST("/events", d.createEvent)
	admin.POST("/events/:id", d.updateEvent)
	admin.GET("/events/:id/delete", d.deleteConfirmPage)
	admin.POST("/events/:id/delete", d.deleteEvent)

	user := app.Group("/")
	user.Use(middlewares.RequireRole(m, models.RoleUser, flash))
	user.GET("/my-events", d.myEventsPage)
	user.POST("/events/:id/enroll", d.enroll)

	// Unknown paths render an empty content region with the navigation
	// marking cleared. They must not crash anything.
	server.NoRoute(d.blankPage)
}

// render wraps c.HTML and injects what every view needs: the signed-in user
// for the navigation affordances and the pending notification, consumed
// exactly once here.
func (d *deps) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["ActivePath"]; !ok {
		data["ActivePath"] = ""
	}
	data["CurrentUser"] = d.auth.Current()
	data["Flash"] = d.flash.Pop()
	c.HTML(status, name, data)
}
