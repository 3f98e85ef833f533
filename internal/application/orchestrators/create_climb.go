package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainClimb "cragboard/internal/domain/climb"
	"cragboard/internal/domain/colour"
	"cragboard/internal/domain/wall"
)

// ClimbStoreForAuthoring defines the climb store interface needed by the
// create/update/delete orchestrators.
type ClimbStoreForAuthoring interface {
	GetByID(ctx context.Context, id int64) (domainClimb.Climb, error)
	Insert(ctx context.Context, c domainClimb.Climb) (int64, error)
	Update(ctx context.Context, c domainClimb.Climb) error
	Delete(ctx context.Context, id int64) error
}

// WallStoreForAuthoring defines the wall store interface needed for reference checks.
type WallStoreForAuthoring interface {
	GetByID(ctx context.Context, id int64) (wall.Wall, error)
}

// ColourStoreForAuthoring defines the colour store interface needed for reference checks.
type ColourStoreForAuthoring interface {
	GetByID(ctx context.Context, id int64) (colour.Colour, error)
}

// ClimbInput carries the writable climb fields.
type ClimbInput struct {
	WallID       int64
	HoldColourID int64
	TagColourID  int64
	SectorTagID  string
	Notes        string
}

// AuthorClimbDeps holds dependencies for the climb authoring orchestrators.
type AuthorClimbDeps struct {
	ClimbStore  ClimbStoreForAuthoring
	WallStore   WallStoreForAuthoring
	ColourStore ColourStoreForAuthoring
}

var (
	ErrUnknownWall       = errors.New("wall does not exist")
	ErrUnknownColour     = errors.New("colour does not exist")
	ErrColourNotForHolds = errors.New("colour is not usable for holds")
	ErrColourNotForTags  = errors.New("colour is not usable for tags")
)

// ExecuteCreateClimb validates references and persists a new climb.
// PRE: createdBy is the authenticated setter's account ID
// POST: Climb row exists; returns its assigned ID
func ExecuteCreateClimb(ctx context.Context, input ClimbInput, createdBy string, deps AuthorClimbDeps) (int64, error) {
	entity := domainClimb.Climb{
		WallID:       input.WallID,
		HoldColourID: input.HoldColourID,
		TagColourID:  input.TagColourID,
		SectorTagID:  input.SectorTagID,
		Notes:        input.Notes,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now(),
	}
	if err := entity.Validate(); err != nil {
		return 0, err
	}
	if err := checkReferences(ctx, input, deps); err != nil {
		return 0, err
	}

	id, err := deps.ClimbStore.Insert(ctx, entity)
	if err != nil {
		return 0, err
	}

	slog.Info("board_event", "event", "climb_created", "climb_id", id, "wall_id", input.WallID, "created_by", createdBy)
	return id, nil
}

// ExecuteUpdateClimb validates references and persists changes to a climb.
// The photo reference is managed separately by the upload orchestrator.
// PRE: id names an existing climb
// POST: Writable fields match input; photo and creation metadata untouched
func ExecuteUpdateClimb(ctx context.Context, id int64, input ClimbInput, deps AuthorClimbDeps) error {
	existing, err := deps.ClimbStore.GetByID(ctx, id)
	if err != nil {
		return ErrClimbNotFound
	}

	existing.WallID = input.WallID
	existing.HoldColourID = input.HoldColourID
	existing.TagColourID = input.TagColourID
	existing.SectorTagID = input.SectorTagID
	existing.Notes = input.Notes

	if err := existing.Validate(); err != nil {
		return err
	}
	if err := checkReferences(ctx, input, deps); err != nil {
		return err
	}
	if err := deps.ClimbStore.Update(ctx, existing); err != nil {
		return err
	}

	slog.Info("board_event", "event", "climb_updated", "climb_id", id)
	return nil
}

// ExecuteDeleteClimb removes a climb and its logged ascents.
// PRE: id names an existing climb
// POST: Climb is gone; the stored photo object is left behind
func ExecuteDeleteClimb(ctx context.Context, id int64, deps AuthorClimbDeps) error {
	if _, err := deps.ClimbStore.GetByID(ctx, id); err != nil {
		return ErrClimbNotFound
	}
	if err := deps.ClimbStore.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("board_event", "event", "climb_deleted", "climb_id", id)
	return nil
}

// checkReferences verifies the wall and both colours exist and are eligible
// for their usage.
func checkReferences(ctx context.Context, input ClimbInput, deps AuthorClimbDeps) error {
	if _, err := deps.WallStore.GetByID(ctx, input.WallID); err != nil {
		return ErrUnknownWall
	}
	hold, err := deps.ColourStore.GetByID(ctx, input.HoldColourID)
	if err != nil {
		return ErrUnknownColour
	}
	if !hold.EligibleForHold() {
		return ErrColourNotForHolds
	}
	tag, err := deps.ColourStore.GetByID(ctx, input.TagColourID)
	if err != nil {
		return ErrUnknownColour
	}
	if !tag.EligibleForTag() {
		return ErrColourNotForTags
	}
	return nil
}
