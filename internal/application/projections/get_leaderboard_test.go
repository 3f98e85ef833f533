package projections

import (
	"context"
	"testing"

	ascentStore "cragboard/internal/adapters/storage/ascent"
)

type mockSentAscentStore struct {
	rows []ascentStore.SentRow
}

// ListSentWithCohort returns the seeded sent rows.
// POST: Returns all seeded rows
func (m *mockSentAscentStore) ListSentWithCohort(_ context.Context) ([]ascentStore.SentRow, error) {
	return m.rows, nil
}

// TestQueryGetLeaderboard_AggregatesAndOrders verifies per-user totals and
// count-descending order.
func TestQueryGetLeaderboard_AggregatesAndOrders(t *testing.T) {
	deps := GetLeaderboardDeps{AscentStore: &mockSentAscentStore{rows: []ascentStore.SentRow{
		{UserID: "u1", ClimbID: 1, CompCohort: "male"},
		{UserID: "u1", ClimbID: 2, CompCohort: "male"},
		{UserID: "u2", ClimbID: 1, CompCohort: "female"},
	}}}

	res, err := QueryGetLeaderboard(context.Background(), GetLeaderboardQuery{ViewerID: "u2"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("rows=%d want 2", len(res.Rows))
	}
	if res.Rows[0].UserID != "u1" || res.Rows[0].Sends != 2 || res.Rows[0].Rank != 1 {
		t.Errorf("top row = %+v", res.Rows[0])
	}
	if res.Rows[1].UserID != "u2" || res.Rows[1].Sends != 1 || res.Rows[1].Rank != 2 {
		t.Errorf("second row = %+v", res.Rows[1])
	}
	if !res.Rows[1].IsViewer || res.ViewerRank != 2 || res.ViewerSends != 1 {
		t.Errorf("viewer fields: rank=%d sends=%d", res.ViewerRank, res.ViewerSends)
	}
	if res.MaxSends != 2 {
		t.Errorf("max sends=%d want 2", res.MaxSends)
	}
}

// TestQueryGetLeaderboard_TiesBreakByUserID verifies equal counts order by
// user ID for a stable board.
func TestQueryGetLeaderboard_TiesBreakByUserID(t *testing.T) {
	deps := GetLeaderboardDeps{AscentStore: &mockSentAscentStore{rows: []ascentStore.SentRow{
		{UserID: "zed", ClimbID: 1, CompCohort: "inclusive"},
		{UserID: "amy", ClimbID: 2, CompCohort: "inclusive"},
	}}}

	res, err := QueryGetLeaderboard(context.Background(), GetLeaderboardQuery{}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Rows[0].UserID != "amy" || res.Rows[1].UserID != "zed" {
		t.Errorf("tie order = %s, %s; want amy, zed", res.Rows[0].UserID, res.Rows[1].UserID)
	}
}

// TestQueryGetLeaderboard_CohortFilter verifies filtering keeps only the
// requested cohort while the viewer's own count survives the filter.
func TestQueryGetLeaderboard_CohortFilter(t *testing.T) {
	deps := GetLeaderboardDeps{AscentStore: &mockSentAscentStore{rows: []ascentStore.SentRow{
		{UserID: "u1", ClimbID: 1, CompCohort: "male"},
		{UserID: "u2", ClimbID: 1, CompCohort: "female"},
		{UserID: "u2", ClimbID: 2, CompCohort: "female"},
	}}}

	res, err := QueryGetLeaderboard(context.Background(), GetLeaderboardQuery{Cohort: "female", ViewerID: "u1"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 1 || res.Rows[0].UserID != "u2" {
		t.Fatalf("rows = %+v", res.Rows)
	}
	if res.ViewerRank != 0 {
		t.Errorf("filtered-out viewer should have rank 0, got %d", res.ViewerRank)
	}
	if res.ViewerSends != 1 {
		t.Errorf("viewer sends should survive the filter, got %d", res.ViewerSends)
	}
}

// TestQueryGetLeaderboard_BlankCohortIsInclusive verifies rows with no stored
// cohort land in the inclusive cohort.
func TestQueryGetLeaderboard_BlankCohortIsInclusive(t *testing.T) {
	deps := GetLeaderboardDeps{AscentStore: &mockSentAscentStore{rows: []ascentStore.SentRow{
		{UserID: "u1", ClimbID: 1, CompCohort: ""},
	}}}

	res, err := QueryGetLeaderboard(context.Background(), GetLeaderboardQuery{Cohort: "inclusive"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 1 || res.Rows[0].Cohort != "inclusive" {
		t.Fatalf("rows = %+v", res.Rows)
	}
}

// TestQueryGetLeaderboard_Empty verifies an empty board produces no rows and
// zero maxima.
func TestQueryGetLeaderboard_Empty(t *testing.T) {
	deps := GetLeaderboardDeps{AscentStore: &mockSentAscentStore{}}

	res, err := QueryGetLeaderboard(context.Background(), GetLeaderboardQuery{ViewerID: "u1"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 0 || res.MaxSends != 0 || res.ViewerRank != 0 {
		t.Errorf("empty board: %+v", res)
	}
}
