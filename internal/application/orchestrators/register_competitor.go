package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cragboard/internal/adapters/email"
	"cragboard/internal/domain/account"
	"cragboard/internal/domain/profile"

	"github.com/google/uuid"
)

// TokenTTL is how long a verification link stays valid.
const TokenTTL = 24 * time.Hour

// AccountStoreForRegister defines the store interface needed by RegisterCompetitor.
type AccountStoreForRegister interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	SaveVerificationToken(ctx context.Context, t account.VerificationToken) error
}

// ProfileStoreForRegister defines the profile store interface needed by RegisterCompetitor.
type ProfileStoreForRegister interface {
	Save(ctx context.Context, p profile.Profile) error
}

// RegisterCompetitorInput carries input for the registration orchestrator.
type RegisterCompetitorInput struct {
	Email      string
	Password   string
	CompCohort string
}

// RegisterCompetitorDeps holds dependencies for RegisterCompetitor.
type RegisterCompetitorDeps struct {
	AccountStore AccountStoreForRegister
	ProfileStore ProfileStoreForRegister
	Email        email.Sender
	// BaseURL is the externally visible server address used in the
	// verification link, e.g. "https://board.cragboard.nz".
	BaseURL string
}

var ErrEmailAlreadyExists = errors.New("an account with this email already exists")
var ErrInvalidCohort = errors.New("invalid competition cohort")

// ExecuteRegisterCompetitor creates a pending account with its profile and
// emails a verification link.
// PRE: Valid email, password of at least the minimum length, valid cohort
// POST: Account exists in pending_verification status with exactly one
//
//	unused token; profile row exists with the chosen cohort
//
// INVARIANT: Email must be unique
func ExecuteRegisterCompetitor(ctx context.Context, input RegisterCompetitorInput, deps RegisterCompetitorDeps) (string, error) {
	if input.Email == "" {
		return "", account.ErrEmptyEmail
	}
	if input.Password == "" {
		return "", account.ErrEmptyPassword
	}
	cohort := input.CompCohort
	if cohort == "" {
		cohort = profile.CohortInclusive
	}
	if !profile.IsValidCohort(cohort) {
		return "", ErrInvalidCohort
	}

	if _, err := deps.AccountStore.GetByEmail(ctx, input.Email); err == nil {
		return "", ErrEmailAlreadyExists
	}

	acct := account.Account{
		ID:        uuid.New().String(),
		Email:     input.Email,
		Status:    account.StatusPendingVerification,
		CreatedAt: time.Now(),
	}
	if err := acct.Validate(); err != nil {
		return "", err
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return "", err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return "", err
	}

	prof := profile.Profile{UserID: acct.ID, CompCohort: cohort}
	if err := deps.ProfileStore.Save(ctx, prof); err != nil {
		return "", err
	}

	token, err := issueVerificationToken(ctx, acct, deps.AccountStore, deps.Email, deps.BaseURL)
	if err != nil {
		return "", err
	}

	slog.Info("auth_event", "event", "competitor_registered", "email", input.Email, "cohort", cohort, "token_id", token.ID)
	return acct.ID, nil
}

// issueVerificationToken creates a fresh token and emails the link for it.
func issueVerificationToken(ctx context.Context, acct account.Account, store AccountStoreForRegister, sender email.Sender, baseURL string) (account.VerificationToken, error) {
	token := account.VerificationToken{
		ID:        uuid.New().String(),
		AccountID: acct.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(TokenTTL),
		CreatedAt: time.Now(),
	}
	if err := store.SaveVerificationToken(ctx, token); err != nil {
		return account.VerificationToken{}, err
	}

	verifyURL := baseURL + "/verify?token=" + token.Token
	if _, err := sender.Send(ctx, email.VerificationEmail(acct.Email, verifyURL)); err != nil {
		// The account is usable once verified; a failed send is recoverable
		// through the resend flow, so log and carry on.
		slog.Error("auth_event", "event", "verification_email_failed", "email", acct.Email, "error", err)
	}
	return token, nil
}
