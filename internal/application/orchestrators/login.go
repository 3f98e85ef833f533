package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	profileStore "cragboard/internal/adapters/storage/profile"
	"cragboard/internal/domain/account"
	"cragboard/internal/domain/profile"
)

// AccountStoreForLogin defines the store interface needed by Login.
type AccountStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// ProfileStoreForLogin defines the profile store interface needed by Login.
type ProfileStoreForLogin interface {
	GetByUserID(ctx context.Context, userID string) (profile.Profile, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	AccountID  string
	Email      string
	Role       string
	CompCohort string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore AccountStoreForLogin
	ProfileStore ProfileStoreForLogin
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is locked due to too many failed attempts")
	ErrPendingVerify      = errors.New("account is pending verification, check your email for the link")
)

// ExecuteLogin validates credentials and resolves the profile role for
// session creation. A missing profile is not an error: the session simply
// carries no elevated role.
// PRE: Valid email and password provided
// POST: Returns session fields on success, records failed login on failure
// INVARIANT: Account must be verified and not locked
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	acct, err := deps.AccountStore.GetByEmail(ctx, input.Email)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}

	if acct.IsPendingVerification() {
		slog.Info("auth_event", "event", "login_blocked", "email", input.Email, "reason", "pending_verification")
		return LoginResult{}, ErrPendingVerify
	}

	if acct.IsLocked() {
		slog.Info("auth_event", "event", "login_blocked", "email", input.Email, "reason", "locked")
		return LoginResult{}, ErrAccountLocked
	}

	if err := acct.CheckPassword(input.Password); err != nil {
		acct.RecordFailedLogin()
		_ = deps.AccountStore.Save(ctx, acct)
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "wrong_password", "failed_logins", acct.FailedLogins)
		return LoginResult{}, ErrInvalidCredentials
	}

	acct.ResetFailedLogins()
	_ = deps.AccountStore.Save(ctx, acct)

	result := LoginResult{
		AccountID:  acct.ID,
		Email:      acct.Email,
		CompCohort: profile.CohortInclusive,
	}
	prof, err := deps.ProfileStore.GetByUserID(ctx, acct.ID)
	switch {
	case err == nil:
		result.Role = prof.Role
		if prof.CompCohort != "" {
			result.CompCohort = prof.CompCohort
		}
	case errors.Is(err, profileStore.ErrNotFound):
		// No profile row: an ordinary competitor.
	default:
		return LoginResult{}, err
	}

	slog.Info("auth_event", "event", "login_success", "email", input.Email, "role", result.Role)
	return result, nil
}
