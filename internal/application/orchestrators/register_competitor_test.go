package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cragboard/internal/adapters/email"
	"cragboard/internal/domain/account"
	"cragboard/internal/domain/profile"
)

type mockRegisterAccountStore struct {
	accounts map[string]account.Account // keyed by email
	tokens   []account.VerificationToken
}

// GetByEmail returns a seeded account by email.
// POST: Returns the account or an error if absent
func (m *mockRegisterAccountStore) GetByEmail(_ context.Context, emailAddr string) (account.Account, error) {
	if a, ok := m.accounts[emailAddr]; ok {
		return a, nil
	}
	return account.Account{}, errors.New("account not found")
}

// Save stores the account keyed by email.
// POST: Account is retrievable by email
func (m *mockRegisterAccountStore) Save(_ context.Context, a account.Account) error {
	if m.accounts == nil {
		m.accounts = make(map[string]account.Account)
	}
	m.accounts[a.Email] = a
	return nil
}

// SaveVerificationToken appends the token.
// POST: Token is recorded
func (m *mockRegisterAccountStore) SaveVerificationToken(_ context.Context, t account.VerificationToken) error {
	m.tokens = append(m.tokens, t)
	return nil
}

type mockRegisterProfileStore struct {
	profiles map[string]profile.Profile
}

// Save stores the profile keyed by user ID.
// POST: Profile is retrievable by user ID
func (m *mockRegisterProfileStore) Save(_ context.Context, p profile.Profile) error {
	if m.profiles == nil {
		m.profiles = make(map[string]profile.Profile)
	}
	m.profiles[p.UserID] = p
	return nil
}

type mockEmailSender struct {
	sent []email.SendRequest
}

// Send records the request without delivering.
// POST: Request is captured for assertions
func (m *mockEmailSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "test"}, nil
}

func registerDeps() (RegisterCompetitorDeps, *mockRegisterAccountStore, *mockRegisterProfileStore, *mockEmailSender) {
	accounts := &mockRegisterAccountStore{}
	profiles := &mockRegisterProfileStore{}
	sender := &mockEmailSender{}
	deps := RegisterCompetitorDeps{
		AccountStore: accounts,
		ProfileStore: profiles,
		Email:        sender,
		BaseURL:      "http://board.test",
	}
	return deps, accounts, profiles, sender
}

// TestExecuteRegisterCompetitor_CreatesPendingAccount verifies the happy
// path: pending account, profile with cohort, token and emailed link.
func TestExecuteRegisterCompetitor_CreatesPendingAccount(t *testing.T) {
	deps, accounts, profiles, sender := registerDeps()

	id, err := ExecuteRegisterCompetitor(context.Background(), RegisterCompetitorInput{
		Email:      "new@test.com",
		Password:   "chalkbag",
		CompCohort: profile.CohortFemale,
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	acct := accounts.accounts["new@test.com"]
	if acct.ID != id || !acct.IsPendingVerification() {
		t.Errorf("account = %+v", acct)
	}
	if acct.CheckPassword("chalkbag") != nil {
		t.Error("stored password does not verify")
	}

	prof := profiles.profiles[id]
	if prof.CompCohort != profile.CohortFemale || prof.Role != "" {
		t.Errorf("profile = %+v", prof)
	}

	if len(accounts.tokens) != 1 || accounts.tokens[0].AccountID != id {
		t.Fatalf("tokens = %+v", accounts.tokens)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("emails sent = %d, want 1", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0].HTML, "http://board.test/verify?token="+accounts.tokens[0].Token) {
		t.Error("verification email does not carry the token link")
	}
}

// TestExecuteRegisterCompetitor_DuplicateEmail verifies re-registration is
// rejected.
func TestExecuteRegisterCompetitor_DuplicateEmail(t *testing.T) {
	deps, _, _, _ := registerDeps()

	input := RegisterCompetitorInput{Email: "dup@test.com", Password: "chalkbag"}
	if _, err := ExecuteRegisterCompetitor(context.Background(), input, deps); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := ExecuteRegisterCompetitor(context.Background(), input, deps); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("err = %v, want ErrEmailAlreadyExists", err)
	}
}

// TestExecuteRegisterCompetitor_Rejections verifies validation failures.
func TestExecuteRegisterCompetitor_Rejections(t *testing.T) {
	deps, accounts, _, sender := registerDeps()

	cases := []struct {
		name  string
		input RegisterCompetitorInput
		want  error
	}{
		{"short password", RegisterCompetitorInput{Email: "a@t.co", Password: "12345"}, account.ErrPasswordTooShort},
		{"no email", RegisterCompetitorInput{Password: "chalkbag"}, account.ErrEmptyEmail},
		{"bad cohort", RegisterCompetitorInput{Email: "a@t.co", Password: "chalkbag", CompCohort: "open"}, ErrInvalidCohort},
	}
	for _, tc := range cases {
		if _, err := ExecuteRegisterCompetitor(context.Background(), tc.input, deps); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
	if len(accounts.accounts) != 0 || len(sender.sent) != 0 {
		t.Error("rejected registration left state behind")
	}
}

// TestExecuteRegisterCompetitor_DefaultsCohort verifies an omitted cohort
// lands in inclusive.
func TestExecuteRegisterCompetitor_DefaultsCohort(t *testing.T) {
	deps, _, profiles, _ := registerDeps()

	id, err := ExecuteRegisterCompetitor(context.Background(), RegisterCompetitorInput{
		Email:    "plain@test.com",
		Password: "chalkbag",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profiles.profiles[id].CompCohort != profile.CohortInclusive {
		t.Errorf("cohort = %q, want inclusive", profiles.profiles[id].CompCohort)
	}
}
