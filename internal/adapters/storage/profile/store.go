package profile

import (
	"context"
	"errors"

	domain "cragboard/internal/domain/profile"
)

// ErrNotFound is returned by GetByUserID when no profile row exists for the
// account, as opposed to the lookup itself failing.
var ErrNotFound = errors.New("profile not found")

// Store persists Profile state.
type Store interface {
	GetByUserID(ctx context.Context, userID string) (domain.Profile, error)
	Save(ctx context.Context, value domain.Profile) error
}
