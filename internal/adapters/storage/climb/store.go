package climb

import (
	"context"

	domainClimb "cragboard/internal/domain/climb"
	domainColour "cragboard/internal/domain/colour"
	domainWall "cragboard/internal/domain/wall"
)

// Detail is a climb joined with its wall and colour reference rows, the shape
// the board projection consumes.
type Detail struct {
	domainClimb.Climb
	Wall       domainWall.Wall
	HoldColour domainColour.Colour
	TagColour  domainColour.Colour
}

// Store persists Climb state.
type Store interface {
	GetByID(ctx context.Context, id int64) (domainClimb.Climb, error)
	GetDetailByID(ctx context.Context, id int64) (Detail, error)
	ListDetailed(ctx context.Context) ([]Detail, error)
	Insert(ctx context.Context, value domainClimb.Climb) (int64, error)
	Update(ctx context.Context, value domainClimb.Climb) error
	Delete(ctx context.Context, id int64) error
}
