package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"cragboard/internal/adapters/email"
	"cragboard/internal/domain/account"
)

// AccountStoreForVerify defines the store interface needed by VerifyAccount.
type AccountStoreForVerify interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	GetVerificationToken(ctx context.Context, token string) (account.VerificationToken, error)
	SaveVerificationToken(ctx context.Context, t account.VerificationToken) error
	InvalidateTokensForAccount(ctx context.Context, accountID string) error
}

// VerifyAccountDeps holds dependencies for VerifyAccount.
type VerifyAccountDeps struct {
	AccountStore AccountStoreForVerify
}

// ExecuteVerifyAccount consumes a verification token and activates the account.
// PRE: token is the raw token value from the emailed link
// POST: Account is active and every token for it is used, or an error
//
//	explains why the token was rejected
func ExecuteVerifyAccount(ctx context.Context, token string, deps VerifyAccountDeps) error {
	if token == "" {
		return account.ErrTokenInvalid
	}

	vt, err := deps.AccountStore.GetVerificationToken(ctx, token)
	if err != nil {
		slog.Info("auth_event", "event", "verify_failed", "reason", "token_not_found")
		return account.ErrTokenInvalid
	}
	if vt.Used {
		slog.Info("auth_event", "event", "verify_failed", "reason", "token_used", "account_id", vt.AccountID)
		return account.ErrTokenInvalid
	}
	if vt.IsExpired(time.Now()) {
		slog.Info("auth_event", "event", "verify_failed", "reason", "token_expired", "account_id", vt.AccountID)
		return account.ErrTokenExpired
	}

	acct, err := deps.AccountStore.GetByID(ctx, vt.AccountID)
	if err != nil {
		return account.ErrTokenInvalid
	}
	if err := acct.Verify(); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}
	if err := deps.AccountStore.InvalidateTokensForAccount(ctx, acct.ID); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "account_verified", "account_id", acct.ID, "email", acct.Email)
	return nil
}

// ResendVerificationDeps holds dependencies for ResendVerification.
type ResendVerificationDeps struct {
	AccountStore AccountStoreForVerify
	Email        email.Sender
	BaseURL      string
}

// ExecuteResendVerification issues a fresh token for a pending account.
// Responds identically whether or not the email has an account, so the
// endpoint cannot be used to probe for registered addresses.
// PRE: emailAddr is the address the user typed
// POST: A pending account has exactly one unused token and a fresh email;
//
//	any other state is a silent no-op
func ExecuteResendVerification(ctx context.Context, emailAddr string, deps ResendVerificationDeps) error {
	if emailAddr == "" {
		return nil
	}

	acct, err := deps.AccountStore.GetByEmail(ctx, emailAddr)
	if err != nil {
		slog.Info("auth_event", "event", "resend_skipped", "reason", "not_found")
		return nil
	}
	if !acct.IsPendingVerification() {
		slog.Info("auth_event", "event", "resend_skipped", "reason", "not_pending", "account_id", acct.ID)
		return nil
	}

	if err := deps.AccountStore.InvalidateTokensForAccount(ctx, acct.ID); err != nil {
		return err
	}

	token, err := issueVerificationToken(ctx, acct, deps.AccountStore, deps.Email, deps.BaseURL)
	if err != nil {
		return err
	}

	slog.Info("auth_event", "event", "verification_resent", "account_id", acct.ID, "token_id", token.ID)
	return nil
}
