package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domain "cragboard/internal/domain/ascent"
	"cragboard/internal/domain/climb"

	"github.com/google/uuid"
)

// AscentStoreForLogSend defines the ascent store interface needed by LogSend.
type AscentStoreForLogSend interface {
	UpsertSent(ctx context.Context, a domain.Ascent) error
}

// ClimbStoreForLogSend defines the climb store interface needed by LogSend.
type ClimbStoreForLogSend interface {
	GetByID(ctx context.Context, id int64) (climb.Climb, error)
}

// LogSendInput carries input for the log-send orchestrator.
type LogSendInput struct {
	ClimbID int64
	UserID  string
}

// LogSendDeps holds dependencies for LogSend.
type LogSendDeps struct {
	AscentStore AscentStoreForLogSend
	ClimbStore  ClimbStoreForLogSend
}

var ErrClimbNotFound = errors.New("climb not found")

// ExecuteLogSend records that the user sent a climb and returns the recorded
// ascent so callers can reconcile a single entity instead of refetching the
// board. Logging the same send again is a no-op rather than an error.
// PRE: UserID comes from the authenticated session, never from the request body
// POST: Exactly one sent ascent exists for (ClimbID, UserID)
func ExecuteLogSend(ctx context.Context, input LogSendInput, deps LogSendDeps) (domain.Ascent, error) {
	if input.UserID == "" {
		return domain.Ascent{}, domain.ErrEmptyUserID
	}
	if input.ClimbID <= 0 {
		return domain.Ascent{}, domain.ErrInvalidClimb
	}

	if _, err := deps.ClimbStore.GetByID(ctx, input.ClimbID); err != nil {
		return domain.Ascent{}, ErrClimbNotFound
	}

	now := time.Now()
	ascent := domain.Ascent{
		ID:        uuid.New().String(),
		ClimbID:   input.ClimbID,
		UserID:    input.UserID,
		Sent:      true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ascent.Validate(); err != nil {
		return domain.Ascent{}, err
	}
	if err := deps.AscentStore.UpsertSent(ctx, ascent); err != nil {
		return domain.Ascent{}, err
	}

	slog.Info("board_event", "event", "send_logged", "climb_id", input.ClimbID, "user_id", input.UserID)
	return ascent, nil
}
