package wall

import (
	"errors"
	"strings"
)

// Wall is a static reference entity: a named section of the gym that climbs
// are grouped under.
type Wall struct {
	ID   int64
	Name string
}

// Validate checks if the Wall has valid data.
// PRE: Wall struct is populated
// POST: Returns nil if valid, error otherwise
func (w *Wall) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return errors.New("wall name cannot be empty")
	}
	return nil
}
