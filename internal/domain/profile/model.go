package profile

import "errors"

// Elevated role constants. An empty role is an ordinary participant.
const (
	RoleSetter = "setter"
	RoleAdmin  = "admin"
)

// Competition cohort constants.
const (
	CohortMale      = "male"
	CohortFemale    = "female"
	CohortInclusive = "inclusive"
)

// ValidCohorts contains all valid comp_cohort values.
var ValidCohorts = []string{CohortMale, CohortFemale, CohortInclusive}

// Domain errors
var (
	ErrInvalidCohort = errors.New("comp_cohort must be one of: male, female, inclusive")
	ErrInvalidRole   = errors.New("role must be empty, 'setter', or 'admin'")
	ErrEmptyUserID   = errors.New("user_id cannot be empty")
)

// Profile links an account to its permission role and competition cohort.
// One profile exists per account, created at registration and read-only
// afterwards from the participant's perspective.
type Profile struct {
	UserID     string
	Role       string // "", setter, admin
	CompCohort string // male, female, inclusive
}

// Validate checks if the Profile has valid data.
// PRE: Profile struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Profile) Validate() error {
	if p.UserID == "" {
		return ErrEmptyUserID
	}
	if p.Role != "" && p.Role != RoleSetter && p.Role != RoleAdmin {
		return ErrInvalidRole
	}
	if !IsValidCohort(p.CompCohort) {
		return ErrInvalidCohort
	}
	return nil
}

// CanSetClimbs returns true if the profile may create, edit, or delete climbs.
// INVARIANT: Profile fields are not mutated
func (p *Profile) CanSetClimbs() bool {
	return p.Role == RoleSetter || p.Role == RoleAdmin
}

// IsValidCohort reports whether cohort is a recognised competition cohort.
func IsValidCohort(cohort string) bool {
	for _, c := range ValidCohorts {
		if c == cohort {
			return true
		}
	}
	return false
}
