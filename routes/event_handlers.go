package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"eventdesk/events"
	"eventdesk/models"
	"eventdesk/utils"
)

// GET / and GET /events
func (d *deps) eventsPage(c *gin.Context) {
	list, err := d.events.List()
	if err != nil {
		d.flash.Notify(utils.KindError, "Error", "Could not load events")
		list = nil
	}
	d.render(c, http.StatusOK, "events.html", gin.H{
		"ActivePath": "/events",
		"Events":     list,
	})
}

// GET /new-event
func (d *deps) newEventPage(c *gin.Context) {
	d.render(c, http.StatusOK, "event_form.html", gin.H{
		"ActivePath": "/new-event",
		"FormTitle":  "New Event",
		"Event":      models.Event{},
	})
}

// GET /events/:id/edit
func (d *deps) editEventPage(c *gin.Context) {
	event, err := d.events.Get(c.Param("id"))
	if err != nil {
		d.flash.Notify(utils.KindError, "Error", "Could not load the event data")
		c.Redirect(http.StatusFound, "/events")
		return
	}
	d.render(c, http.StatusOK, "event_form.html", gin.H{
		"ActivePath": "/new-event",
		"FormTitle":  "Edit Event",
		"Event":      event,
	})
}

// eventFromForm builds the candidate event out of the submitted fields. A
// capacity that does not parse stays zero and fails validation.
func eventFromForm(c *gin.Context) models.Event {
	capacity, _ := strconv.Atoi(c.PostForm("capacity"))
	return models.Event{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Capacity:    capacity,
		Date:        c.PostForm("date"),
	}
}

// POST /events
func (d *deps) createEvent(c *gin.Context) {
	candidate := eventFromForm(c)

	// Validation errors never reach the network layer.
	if result := events.Validate(candidate); !result.Valid {
		d.render(c, http.StatusBadRequest, "event_form.html", gin.H{
			"ActivePath": "/new-event",
			"FormTitle":  "New Event",
			"Event":      candidate,
			"Errors":     result.Errors,
		})
		return
	}

	if err := d.events.Create(&candidate); err != nil {
		d.flash.Notify(utils.KindError, "Error", "Could not create the event")
		c.Redirect(http.StatusFound, "/new-event")
		return
	}

	d.flash.Notify(utils.KindSuccess, "Success!", "Event created successfully")
	c.Redirect(http.StatusFound, "/events")
}

// POST /events/:id
func (d *deps) updateEvent(c *gin.Context) {
	candidate := eventFromForm(c)
	candidate.ID = c.Param("id")

	if result := events.Validate(candidate); !result.Valid {
		d.render(c, http.StatusBadRequest, "event_form.html", gin.H{
			"ActivePath": "/new-event",
			"FormTitle":  "Edit Event",
			"Event":      candidate,
			"Errors":     result.Errors,
		})
		return
	}

	if err := d.events.Update(&candidate); err != nil {
		d.flash.Notify(utils.KindError, "Error", "Could not update the event")
		c.Redirect(http.StatusFound, "/events")
		return
	}

	d.flash.Notify(utils.KindSuccess, "Success!", "Event updated successfully")
	c.Redirect(http.StatusFound, "/events")
}

// GET /events/:id/delete
func (d *deps) deleteConfirmPage(c *gin.Context) {
	d.render(c, http.StatusOK, "confirm.html", gin.H{
		"Kind":       utils.KindWarning,
		"Title":      "Are you sure?",
		"Text":       "This action cannot be undone!",
		"Action":     "/events/" + c.Param("id") + "/delete",
		"AcceptText": "Yes, delete it",
		"CancelPath": "/events",
	})
}

// POST /events/:id/delete
func (d *deps) deleteEvent(c *gin.Context) {
	if c.PostForm("confirm") != "yes" {
		c.Redirect(http.StatusFound, "/events")
		return
	}

	if err := d.events.Delete(c.Param("id")); err != nil {
		d.flash.Notify(utils.KindError, "Error", "Could not delete the event")
		c.Redirect(http.StatusFound, "/events")
		return
	}

	d.flash.Notify(utils.KindSuccess, "Deleted!", "The event has been deleted")
	c.Redirect(http.StatusFound, "/events")
}

// POST /events/:id/enroll
func (d *deps) enroll(c *gin.Context) {
	current := d.auth.Current()

	event, err := d.events.Enroll(current.Username, c.Param("id"))
	switch {
	case errors.Is(err, events.ErrSoldOut):
		d.flash.Notify(utils.KindWarning, "Event full", "No capacity is available for this event")
	case errors.Is(err, events.ErrAlreadyEnrolled):
		d.flash.Notify(utils.KindInfo, "Already enrolled", "You are already enrolled in this event")
	case err != nil:
		d.flash.Notify(utils.KindError, "Error", "Could not enroll in the event")
	default:
		d.flash.Notify(utils.KindSuccess, "Enrolled!", "You are enrolled in "+event.Name)
	}

	c.Redirect(http.StatusFound, "/events")
}

// GET /my-events
func (d *deps) myEventsPage(c *gin.Context) {
	current := d.auth.Current()

	mine, err := d.events.MyEvents(current.Username)
	if err != nil {
		d.flash.Notify(utils.KindError, "Error", "Could not load your enrolled events")
		mine = nil
	}
	d.render(c, http.StatusOK, "my_events.html", gin.H{
		"ActivePath": "/my-events",
		"Events":     mine,
	})
}

// NoRoute: render nothing meaningful, clear the active marking, never crash.
func (d *deps) blankPage(c *gin.Context) {
	if d.auth.Current() == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	d.render(c, http.StatusNotFound, "blank.html", nil)
}
