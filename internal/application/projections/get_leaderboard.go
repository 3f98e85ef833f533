package projections

import (
	"context"
	"sort"

	"cragboard/internal/adapters/storage/ascent"
	"cragboard/internal/domain/profile"
)

// SentAscentStore defines the ascent store interface the leaderboard needs.
type SentAscentStore interface {
	ListSentWithCohort(ctx context.Context) ([]ascent.SentRow, error)
}

// GetLeaderboardQuery carries query parameters.
type GetLeaderboardQuery struct {
	// Cohort filters to one competition cohort when non-empty.
	Cohort string
	// ViewerID marks the viewer's own row when non-empty.
	ViewerID string
}

// LeaderboardRow is one competitor's standing.
type LeaderboardRow struct {
	Rank     int
	UserID   string
	Cohort   string
	Sends    int
	IsViewer bool
}

// GetLeaderboardResult carries the query result.
type GetLeaderboardResult struct {
	Rows []LeaderboardRow
	// ViewerRank is the viewer's rank, 0 when the viewer has no sends or
	// is filtered out.
	ViewerRank int
	// ViewerSends is the viewer's send count regardless of filters.
	ViewerSends int
	// MaxSends is the highest send count on the filtered board.
	MaxSends int
}

// GetLeaderboardDeps holds dependencies for GetLeaderboard.
type GetLeaderboardDeps struct {
	AscentStore SentAscentStore
}

// QueryGetLeaderboard aggregates sent ascents into competitor standings.
// Only users with a profile appear; a blank stored cohort counts as
// inclusive. Ties share the count but rank deterministically by user ID.
// PRE: Valid query parameters
// POST: Rows are ordered by send count descending, then user ID ascending;
//
//	ranks start at 1 and increase by row
func QueryGetLeaderboard(ctx context.Context, query GetLeaderboardQuery, deps GetLeaderboardDeps) (GetLeaderboardResult, error) {
	rows, err := deps.AscentStore.ListSentWithCohort(ctx)
	if err != nil {
		return GetLeaderboardResult{}, err
	}

	type tally struct {
		cohort string
		sends  int
	}
	totals := make(map[string]*tally)
	for _, row := range rows {
		cohort := row.CompCohort
		if cohort == "" {
			cohort = profile.CohortInclusive
		}
		t, ok := totals[row.UserID]
		if !ok {
			t = &tally{cohort: cohort}
			totals[row.UserID] = t
		}
		t.sends++
	}

	result := GetLeaderboardResult{}
	board := make([]LeaderboardRow, 0, len(totals))
	for userID, t := range totals {
		if userID == query.ViewerID {
			result.ViewerSends = t.sends
		}
		if query.Cohort != "" && t.cohort != query.Cohort {
			continue
		}
		board = append(board, LeaderboardRow{
			UserID:   userID,
			Cohort:   t.cohort,
			Sends:    t.sends,
			IsViewer: userID == query.ViewerID,
		})
	}

	sort.Slice(board, func(i, j int) bool {
		if board[i].Sends != board[j].Sends {
			return board[i].Sends > board[j].Sends
		}
		return board[i].UserID < board[j].UserID
	})
	for i := range board {
		board[i].Rank = i + 1
		if board[i].IsViewer {
			result.ViewerRank = board[i].Rank
		}
	}
	if len(board) > 0 {
		result.MaxSends = board[0].Sends
	}

	result.Rows = board
	return result, nil
}
