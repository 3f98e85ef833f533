package colour

import (
	"errors"
	"strings"
)

// Usage constants controlling which selection lists a colour appears in.
// An empty usage is eligible for both hold and tag selection.
const (
	UsageHold = "hold"
	UsageTag  = "tag"
	UsageBoth = "both"
)

// Domain errors
var (
	ErrEmptyName    = errors.New("colour name cannot be empty")
	ErrInvalidUsage = errors.New("usage must be empty, 'hold', 'tag', or 'both'")
)

// Colour is a static reference entity. In this gym's convention a climb's tag
// colour doubles as its grade label, so the tag-eligible list is effectively
// the grade scale.
type Colour struct {
	ID        int64
	Name      string
	HexCode   string // optional; "" when unset
	Usage     string // "", hold, tag, both
	SortOrder int64  // optional; <= 0 means unset, sorted last
}

// Validate checks if the Colour has valid data.
// PRE: Colour struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Colour) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	switch c.Usage {
	case "", UsageHold, UsageTag, UsageBoth:
		return nil
	default:
		return ErrInvalidUsage
	}
}

// EligibleForHold returns true if the colour may be offered as a hold colour.
// INVARIANT: Colour fields are not mutated
func (c *Colour) EligibleForHold() bool {
	return c.Usage == "" || c.Usage == UsageHold || c.Usage == UsageBoth
}

// EligibleForTag returns true if the colour may be offered as a tag (grade) colour.
// INVARIANT: Colour fields are not mutated
func (c *Colour) EligibleForTag() bool {
	return c.Usage == "" || c.Usage == UsageTag || c.Usage == UsageBoth
}
