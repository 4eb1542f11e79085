package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventdesk/auth"
	"eventdesk/utils"
)

// formConfirmer adapts the posted confirm field to the auth.Confirmer
// contract: the confirmation dialog is the confirm page the GET handler
// rendered, and the accept choice arrives as a form value.
type formConfirmer struct {
	accepted bool
}

func (f formConfirmer) Confirm(title, text string) bool {
	return f.accepted
}

// GET /login
func (d *deps) loginPage(c *gin.Context) {
	if d.auth.Current() != nil {
		c.Redirect(http.StatusFound, "/events")
		return
	}
	d.render(c, http.StatusOK, "login.html", gin.H{
		"ShowRegister": c.Query("register") == "1",
	})
}

// POST /login
func (d *deps) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := d.auth.Login(username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			d.flash.Notify(utils.KindError, "Sign in failed", "Invalid username or password")
		} else {
			d.flash.Notify(utils.KindError, "Sign in failed", "Could not reach the events service")
		}
		c.Redirect(http.StatusFound, "/login")
		return
	}

	d.flash.Notify(utils.KindSuccess, "Signed in!", "Welcome "+user.Name)
	c.Redirect(http.StatusFound, "/events")
}

// POST /register
func (d *deps) register(c *gin.Context) {
	name := c.PostForm("name")
	username := c.PostForm("username")
	password := c.PostForm("password")

	if _, err := d.auth.Register(name, username, password); err != nil {
		if errors.Is(err, auth.ErrDuplicateUsername) {
			d.flash.Notify(utils.KindError, "Registration failed", "Username already exists")
		} else {
			d.flash.Notify(utils.KindError, "Registration failed", "Could not register the user")
		}
		c.Redirect(http.StatusFound, "/login?register=1")
		return
	}

	// No auto-login after registration.
	d.flash.Notify(utils.KindSuccess, "Registration successful!", "You can now sign in")
	c.Redirect(http.StatusFound, "/login")
}

// GET /logout
func (d *deps) logoutConfirmPage(c *gin.Context) {
	d.render(c, http.StatusOK, "confirm.html", gin.H{
		"Kind":       utils.KindQuestion,
		"Title":      "Are you sure?",
		"Text":       "Do you want to sign out?",
		"Action":     "/logout",
		"AcceptText": "Yes, sign out",
		"CancelPath": "/events",
	})
}

// POST /logout
func (d *deps) logout(c *gin.Context) {
	confirmed := formConfirmer{accepted: c.PostForm("confirm") == "yes"}
	if !d.auth.Logout(confirmed) {
		c.Redirect(http.StatusFound, "/events")
		return
	}
	d.flash.Notify(utils.KindSuccess, "Signed out", "Session closed successfully")
	c.Redirect(http.StatusFound, "/login")
}
