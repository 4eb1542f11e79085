// Package store wraps a durable key-value store for session and enrollment
// records.
package store

// Keys used by the application. Enrollment keys are per username.
const SessionKey = "currentUser"

// EnrollmentsKey returns the store key holding a user's enrolled event ids.
func EnrollmentsKey(username string) string {
	return "enrollments_" + username
}

// Store is the persistence adapter contract. Get reports whether the key was
// present; an absent key is not an error.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}
