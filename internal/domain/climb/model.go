package climb

import (
	"errors"
	"strconv"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxSectorTagLength = 32
	MaxNotesLength     = 2000
)

// Domain errors
var (
	ErrWallRequired       = errors.New("wall is required")
	ErrHoldColourRequired = errors.New("hold colour is required")
	ErrTagColourRequired  = errors.New("tag colour (grade) is required")
	ErrSectorTagTooLong   = errors.New("sector tag cannot exceed 32 characters")
	ErrNotesTooLong       = errors.New("notes cannot exceed 2000 characters")
)

// Climb holds state for one boulder problem. The tag colour doubles as the
// climb's grade label in this gym's convention.
type Climb struct {
	ID           int64
	WallID       int64
	HoldColourID int64
	TagColourID  int64
	SectorTagID  string // optional on-wall numbering; may be non-numeric
	Photo        string // optional public URL
	Notes        string // optional setter beta notes, markdown
	CreatedBy    string
	CreatedAt    time.Time
}

// Validate checks if the Climb has valid data.
// PRE: Climb struct is populated
// POST: Returns nil if valid, error otherwise
// INVARIANT: wall, hold colour, and tag colour are mandatory; photo and notes are not
func (c *Climb) Validate() error {
	if c.WallID <= 0 {
		return ErrWallRequired
	}
	if c.HoldColourID <= 0 {
		return ErrHoldColourRequired
	}
	if c.TagColourID <= 0 {
		return ErrTagColourRequired
	}
	if len(c.SectorTagID) > MaxSectorTagLength {
		return ErrSectorTagTooLong
	}
	if len(c.Notes) > MaxNotesLength {
		return ErrNotesTooLong
	}
	return nil
}

// SortKey returns the display sort key within a wall: the sector tag when
// present, otherwise the numeric id rendered as text. Callers compare keys
// with natural-sort semantics so mixed tags keep a stable total order.
// INVARIANT: Climb fields are not mutated
func (c *Climb) SortKey() string {
	if c.SectorTagID != "" {
		return c.SectorTagID
	}
	return strconv.FormatInt(c.ID, 10)
}
