package projections

import (
	"context"
	"sort"

	domainColour "cragboard/internal/domain/colour"
	domainWall "cragboard/internal/domain/wall"
)

// WallStore defines the wall store interface projections need.
type WallStore interface {
	List(ctx context.Context) ([]domainWall.Wall, error)
}

// ColourStore defines the colour store interface projections need.
type ColourStore interface {
	List(ctx context.Context) ([]domainColour.Colour, error)
}

// GetReferenceDataResult carries the walls and colour palettes the climb
// forms and filters are built from.
type GetReferenceDataResult struct {
	Walls []domainWall.Wall
	// HoldColours are eligible for hold selection, ordered by name.
	HoldColours []domainColour.Colour
	// TagColours are eligible for grade tags, ordered by sort order with
	// unordered colours last.
	TagColours []domainColour.Colour
}

// GetReferenceDataDeps holds dependencies for GetReferenceData.
type GetReferenceDataDeps struct {
	WallStore   WallStore
	ColourStore ColourStore
}

// QueryGetReferenceData loads walls and splits colours by usage.
// POST: Both colour lists are subsets of the colour table; a both-usage
//
//	colour appears in each
func QueryGetReferenceData(ctx context.Context, deps GetReferenceDataDeps) (GetReferenceDataResult, error) {
	walls, err := deps.WallStore.List(ctx)
	if err != nil {
		return GetReferenceDataResult{}, err
	}
	colours, err := deps.ColourStore.List(ctx)
	if err != nil {
		return GetReferenceDataResult{}, err
	}

	result := GetReferenceDataResult{Walls: walls}
	for _, c := range colours {
		if c.EligibleForHold() {
			result.HoldColours = append(result.HoldColours, c)
		}
		if c.EligibleForTag() {
			result.TagColours = append(result.TagColours, c)
		}
	}

	// Hold colours keep the store's name order. Tag colours follow the
	// configured grade order, with unordered ones after.
	sort.SliceStable(result.TagColours, func(i, j int) bool {
		a, b := result.TagColours[i], result.TagColours[j]
		if (a.SortOrder > 0) != (b.SortOrder > 0) {
			return a.SortOrder > 0
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.Name < b.Name
	})

	return result, nil
}
