package projections

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"cragboard/internal/adapters/storage/climb"
	"cragboard/internal/application/natsort"
	domainAscent "cragboard/internal/domain/ascent"

	"github.com/yuin/goldmark"
)

// SentFilter values accepted by the board query.
const (
	SentFilterAll    = "all"
	SentFilterSent   = "sent"
	SentFilterUnsent = "unsent"
)

// ClimbStore defines the climb store interface projections need.
type ClimbStore interface {
	ListDetailed(ctx context.Context) ([]climb.Detail, error)
}

// AscentStore defines the ascent store interface projections need.
type AscentStore interface {
	ListByUserID(ctx context.Context, userID string) ([]domainAscent.Ascent, error)
}

// GetClimbBoardQuery carries query parameters.
type GetClimbBoardQuery struct {
	// UserID is the viewer whose sends classify climbs. Empty means no
	// climb is classified as sent.
	UserID string
	// WallID filters to a single wall when > 0.
	WallID int64
	// HoldColourID filters to climbs with this hold colour when > 0.
	HoldColourID int64
	// TagColourID filters to climbs with this tag colour when > 0.
	TagColourID int64
	// Sent is one of SentFilterAll, SentFilterSent, SentFilterUnsent.
	// Empty means all.
	Sent string
}

// ColourRef is a colour as the board displays it.
type ColourRef struct {
	ID      int64
	Name    string
	HexCode string
}

// BoardClimb is one climb row on the board.
type BoardClimb struct {
	ID         int64
	WallID     int64
	WallName   string
	HoldColour ColourRef
	TagColour  ColourRef
	SectorTag  string
	Photo      string
	NotesHTML  string
	Sent       bool
}

// BoardGroup is the climbs of one wall in display order.
type BoardGroup struct {
	WallID   int64
	WallName string
	Climbs   []BoardClimb
}

// GetClimbBoardResult carries the query result.
type GetClimbBoardResult struct {
	Groups []BoardGroup
	Total  int
}

// GetClimbBoardDeps holds dependencies for GetClimbBoard.
type GetClimbBoardDeps struct {
	ClimbStore  ClimbStore
	AscentStore AscentStore
}

// QueryGetClimbBoard builds the wall-grouped climb list for one viewer.
// PRE: Valid query parameters
// POST: Groups are ordered by wall name; climbs within a group are in
//
//	natural sector-tag order; filtered output is a subset of the
//	unfiltered board
//
// INVARIANT: A climb appears in exactly one group
func QueryGetClimbBoard(ctx context.Context, query GetClimbBoardQuery, deps GetClimbBoardDeps) (GetClimbBoardResult, error) {
	details, err := deps.ClimbStore.ListDetailed(ctx)
	if err != nil {
		return GetClimbBoardResult{}, err
	}

	sentByClimb, err := viewerSends(ctx, query.UserID, deps.AscentStore)
	if err != nil {
		return GetClimbBoardResult{}, err
	}

	groups := make(map[int64]*BoardGroup)
	total := 0
	for _, d := range details {
		if query.WallID > 0 && d.WallID != query.WallID {
			continue
		}
		if query.HoldColourID > 0 && d.HoldColour.ID != query.HoldColourID {
			continue
		}
		if query.TagColourID > 0 && d.TagColour.ID != query.TagColourID {
			continue
		}
		sent := sentByClimb[d.ID]
		switch query.Sent {
		case SentFilterSent:
			if !sent {
				continue
			}
		case SentFilterUnsent:
			if sent {
				continue
			}
		}

		notesHTML, err := renderNotes(d.Notes)
		if err != nil {
			return GetClimbBoardResult{}, err
		}

		row := BoardClimb{
			ID:       d.ID,
			WallID:   d.WallID,
			WallName: d.Wall.Name,
			HoldColour: ColourRef{
				ID:      d.HoldColour.ID,
				Name:    d.HoldColour.Name,
				HexCode: d.HoldColour.HexCode,
			},
			TagColour: ColourRef{
				ID:      d.TagColour.ID,
				Name:    d.TagColour.Name,
				HexCode: d.TagColour.HexCode,
			},
			SectorTag: d.SectorTagID,
			Photo:     d.Photo,
			NotesHTML: notesHTML,
			Sent:      sent,
		}

		group, ok := groups[d.WallID]
		if !ok {
			group = &BoardGroup{WallID: d.WallID, WallName: d.Wall.Name}
			groups[d.WallID] = group
		}
		group.Climbs = append(group.Climbs, row)
		total++
	}

	sorted := make([]BoardGroup, 0, len(groups))
	for _, group := range groups {
		climbs := group.Climbs
		sort.SliceStable(climbs, func(i, j int) bool {
			return natsort.Less(sortKey(climbs[i]), sortKey(climbs[j]))
		})
		sorted = append(sorted, *group)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return natsort.Less(sorted[i].WallName, sorted[j].WallName)
	})

	return GetClimbBoardResult{Groups: sorted, Total: total}, nil
}

// viewerSends maps climb IDs to the viewer's sent flag. The earliest ascent
// per climb wins when the store returns more than one.
func viewerSends(ctx context.Context, userID string, store AscentStore) (map[int64]bool, error) {
	if userID == "" {
		return nil, nil
	}
	ascents, err := store.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	sent := make(map[int64]bool, len(ascents))
	for _, a := range ascents {
		if _, seen := sent[a.ClimbID]; !seen {
			sent[a.ClimbID] = a.Sent
		}
	}
	return sent, nil
}

// sortKey orders climbs by sector tag, falling back to the numeric ID for
// untagged climbs so they still sort deterministically.
func sortKey(c BoardClimb) string {
	if c.SectorTag != "" {
		return c.SectorTag
	}
	return fmt.Sprintf("%d", c.ID)
}

// renderNotes converts setter notes from Markdown to HTML.
func renderNotes(notes string) (string, error) {
	if notes == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(notes), &buf); err != nil {
		return "", fmt.Errorf("failed to render notes: %w", err)
	}
	return buf.String(), nil
}
