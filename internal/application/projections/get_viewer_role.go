package projections

import (
	"context"
	"errors"

	profileStore "cragboard/internal/adapters/storage/profile"
	"cragboard/internal/domain/profile"
)

// ProfileStore defines the profile store interface projections need.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID string) (profile.Profile, error)
}

// GetViewerRoleResult carries the viewer's resolved role and cohort.
type GetViewerRoleResult struct {
	UserID       string
	Role         string
	CompCohort   string
	CanSetClimbs bool
}

// GetViewerRoleDeps holds dependencies for GetViewerRole.
type GetViewerRoleDeps struct {
	ProfileStore ProfileStore
}

// QueryGetViewerRole resolves the viewer's profile into permissions. A
// missing profile resolves to an ordinary competitor rather than an error;
// any other store failure propagates.
// PRE: userID comes from the authenticated session
// POST: CanSetClimbs is true only for setter or admin profiles
func QueryGetViewerRole(ctx context.Context, userID string, deps GetViewerRoleDeps) (GetViewerRoleResult, error) {
	result := GetViewerRoleResult{
		UserID:     userID,
		CompCohort: profile.CohortInclusive,
	}

	prof, err := deps.ProfileStore.GetByUserID(ctx, userID)
	if errors.Is(err, profileStore.ErrNotFound) {
		return result, nil
	}
	if err != nil {
		return GetViewerRoleResult{}, err
	}

	result.Role = prof.Role
	if prof.CompCohort != "" {
		result.CompCohort = prof.CompCohort
	}
	result.CanSetClimbs = prof.CanSetClimbs()
	return result, nil
}
