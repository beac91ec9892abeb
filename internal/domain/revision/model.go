package revision

import (
	"errors"
	"time"
)

// Revision records one accepted admin save of the task catalog. The catalog
// itself is replaced wholesale on disk; this row is the only durable trace of
// who saved what, when. It is append-only.
type Revision struct {
	ID        string
	SavedBy   string // admin session email, may be empty for a code-only session
	ByteSize  int    // size of the submitted JSON
	WeekCount int
	SavedAt   time.Time
}

var ErrMissingID = errors.New("revision id is required")

// Validate checks required fields for a Revision.
// PRE: Revision struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (r *Revision) Validate() error {
	if r.ID == "" {
		return ErrMissingID
	}
	return nil
}
