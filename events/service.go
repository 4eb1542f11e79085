// Package events holds the event validation rules and the enrollment and
// capacity bookkeeping built on top of the remote events resource.
package events

import (
	"encoding/json"
	"errors"
	"strconv"

	"eventdesk/logger"
	"eventdesk/models"
	"eventdesk/store"
)

var (
	// ErrSoldOut indicates the event has no remaining capacity.
	ErrSoldOut = errors.New("event is sold out")
	// ErrAlreadyEnrolled indicates the user already holds a seat in the event.
	ErrAlreadyEnrolled = errors.New("already enrolled in this event")
)

// Service coordinates the events resource with the locally persisted
// enrollment records.
type Service struct {
	repo  models.EventRepository
	store store.Store
}

func NewService(repo models.EventRepository, st store.Store) *Service {
	return &Service{repo: repo, store: st}
}

func (s *Service) List() ([]models.Event, error) {
	return s.repo.GetAll()
}

func (s *Service) Get(id string) (models.Event, error) {
	return s.repo.GetByID(id)
}

// Create validates nothing; callers run Validate first so validation errors
// never reach the network. When the caller supplies no id, a sequential one
// is suggested from the observed maximum, but an id assigned by the backend
// in the response wins.
func (s *Service) Create(e *models.Event) error {
	if e.ID == "" {
		if id, err := s.nextID(); err == nil {
			e.ID = id
		}
	}
	return s.repo.Create(e)
}

func (s *Service) Update(e *models.Event) error {
	return s.repo.Update(e)
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}

// Enroll reserves one seat: it re-fetches the event, rejects sold-out events
// and duplicate enrollments, submits the decremented event as a full replace,
// and then records the enrollment locally. There is no compensating action if
// the local write fails after the remote one succeeded; the window is logged.
func (s *Service) Enroll(username, eventID string) (models.Event, error) {
	event, err := s.repo.GetByID(eventID)
	if err != nil {
		return models.Event{}, err
	}

	if event.Capacity <= 0 {
		return models.Event{}, ErrSoldOut
	}

	enrolled, err := s.Enrollments(username)
	if err != nil {
		return models.Event{}, err
	}
	for _, id := range enrolled {
		if id == eventID {
			return models.Event{}, ErrAlreadyEnrolled
		}
	}

	event.Capacity--
	if err := s.repo.Update(&event); err != nil {
		return models.Event{}, err
	}

	if err := s.recordEnrollment(username, eventID); err != nil {
		logger.Warningf("enrollment of %q in event %s saved remotely but not locally: %v",
			username, eventID, err)
	}
	return event, nil
}

// Enrollments returns the user's locally persisted enrolled event ids.
func (s *Service) Enrollments(username string) ([]string, error) {
	raw, ok, err := s.store.Get(store.EnrollmentsKey(username))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// MyEvents lists the events the user is enrolled in, joining the local
// enrollment set against the remote events collection.
func (s *Service) MyEvents(username string) ([]models.Event, error) {
	enrolled, err := s.Enrollments(username)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(enrolled))
	for _, id := range enrolled {
		set[id] = true
	}

	mine := []models.Event{}
	for _, e := range all {
		if set[e.ID] {
			mine = append(mine, e)
		}
	}
	return mine, nil
}

func (s *Service) recordEnrollment(username, eventID string) error {
	ids, err := s.Enrollments(username)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == eventID {
			return nil
		}
	}
	ids = append(ids, eventID)

	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.store.Set(store.EnrollmentsKey(username), string(raw))
}

// nextID suggests the next sequential event id, one past the highest numeric
// id currently observed. Non-numeric ids are skipped.
func (s *Service) nextID() (string, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return "", err
	}

	max := -1
	for _, e := range all {
		if n, err := strconv.Atoi(e.ID); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1), nil
}
