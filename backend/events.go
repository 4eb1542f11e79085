package backend

import (
	"net/http"

	"eventdesk/models"
)

// Events is the REST-backed models.EventRepository.
type Events struct {
	c *Client
}

func NewEvents(c *Client) *Events {
	return &Events{c: c}
}

func (r *Events) GetAll() ([]models.Event, error) {
	var out []models.Event
	if err := r.c.do(http.MethodGet, "/events", nil, &out, "list events", "events", ""); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Event{}
	}
	return out, nil
}

func (r *Events) GetByID(id string) (models.Event, error) {
	var out models.Event
	if err := r.c.do(http.MethodGet, "/events/"+id, nil, &out, "get event", "events", id); err != nil {
		return models.Event{}, err
	}
	return out, nil
}

// Create submits the event and takes back the created record, so an id
// assigned by the backend wins over whatever the caller suggested.
func (r *Events) Create(e *models.Event) error {
	return r.c.do(http.MethodPost, "/events", e, e, "create event", "events", "")
}

// Update replaces the stored record wholesale.
func (r *Events) Update(e *models.Event) error {
	return r.c.do(http.MethodPut, "/events/"+e.ID, e, e, "update event", "events", e.ID)
}

func (r *Events) Delete(id string) error {
	return r.c.do(http.MethodDelete, "/events/"+id, nil, nil, "delete event", "events", id)
}
