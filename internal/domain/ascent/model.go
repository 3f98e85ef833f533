package ascent

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrEmptyUserID  = errors.New("user_id cannot be empty")
	ErrInvalidClimb = errors.New("climb_id must be positive")
)

// Ascent records one identity's state against one climb. At most one ascent
// per (climb_id, user_id) pair is meaningful; the store enforces this with a
// unique key and upsert semantics.
type Ascent struct {
	ID        string
	ClimbID   int64
	UserID    string
	Sent      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks if the Ascent has valid data.
// PRE: Ascent struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Ascent) Validate() error {
	if a.ClimbID <= 0 {
		return ErrInvalidClimb
	}
	if a.UserID == "" {
		return ErrEmptyUserID
	}
	return nil
}
