package account

import (
	"context"

	domain "cragboard/internal/domain/account"
)

// Store persists Account state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	Save(ctx context.Context, value domain.Account) error
	Count(ctx context.Context) (int, error)
	SaveVerificationToken(ctx context.Context, token domain.VerificationToken) error
	GetVerificationToken(ctx context.Context, token string) (domain.VerificationToken, error)
	InvalidateTokensForAccount(ctx context.Context, accountID string) error
}
