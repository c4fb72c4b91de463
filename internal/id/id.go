package id

import "github.com/google/uuid"

// Generator returns a fresh identifier on each call.
type Generator func() string

// New returns a random UUID string. Identifiers are never reused across
// parse runs, so re-importing a file yields new candidate IDs.
func New() string {
	return uuid.NewString()
}

// Short returns the first 8 characters of an ID for display.
// "3f1c9a2e-..." -> "3f1c9a2e"
func Short(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
