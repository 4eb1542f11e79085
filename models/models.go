// Package models holds the resource types exchanged with the remote API and
// the repository contracts the rest of the application programs against.
package models

// Roles a user can hold. Admins manage events, regular users enroll in them.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account known to the backend. Username is the natural key.
// The password is an opaque string compared verbatim. EnrolledEvents is a
// legacy field submitted at registration; the authoritative enrollment set
// lives in the local store.
type User struct {
	Name           string   `json:"name"`
	Username       string   `json:"username"`
	Password       string   `json:"password"`
	Role           string   `json:"role"`
	EnrolledEvents []string `json:"enrolledEvents"`
}

// Event is a backend-managed event. Capacity counts the remaining seats and
// is decremented by enrollments, never below zero. Date is a calendar date
// in YYYY-MM-DD form.
type Event struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
	Date        string `json:"date"`
}

// EventRepository is the resource contract for the events collection.
// Update is a full replace of the stored record.
type EventRepository interface {
	GetAll() ([]Event, error)
	GetByID(id string) (Event, error)
	Create(e *Event) error
	Update(e *Event) error
	Delete(id string) error
}

// UserRepository is the resource contract for the users collection.
// GetAll returns the registered users; implementations may degrade to an
// empty slice when the collection does not exist yet.
type UserRepository interface {
	GetAll() ([]User, error)
	Create(u *User) error
}
