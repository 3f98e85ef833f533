package ascent

import (
	"context"

	domain "cragboard/internal/domain/ascent"
)

// SentRow is one sent ascent joined with the competitor's cohort, the shape
// the leaderboard projection consumes.
type SentRow struct {
	UserID     string
	ClimbID    int64
	CompCohort string
}

// Store persists Ascent state.
type Store interface {
	ListByUserID(ctx context.Context, userID string) ([]domain.Ascent, error)
	UpsertSent(ctx context.Context, value domain.Ascent) error
	ListSentWithCohort(ctx context.Context) ([]SentRow, error)
	CountForClimb(ctx context.Context, climbID int64) (int, error)
}
