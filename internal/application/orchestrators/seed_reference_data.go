package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"cragboard/internal/domain/account"
	"cragboard/internal/domain/colour"
	"cragboard/internal/domain/profile"
	"cragboard/internal/domain/wall"

	"github.com/google/uuid"
)

// WallStoreForSeed defines the wall store interface needed by seeding.
type WallStoreForSeed interface {
	Save(ctx context.Context, w wall.Wall) error
	Count(ctx context.Context) (int, error)
}

// ColourStoreForSeed defines the colour store interface needed by seeding.
type ColourStoreForSeed interface {
	Save(ctx context.Context, c colour.Colour) error
	Count(ctx context.Context) (int, error)
}

// SeedReferenceDataDeps holds dependencies for SeedReferenceData.
type SeedReferenceDataDeps struct {
	WallStore   WallStoreForSeed
	ColourStore ColourStoreForSeed
}

// defaultWalls covers a typical bouldering gym layout. Gyms rename or extend
// these through the admin surface.
var defaultWalls = []string{
	"Slab",
	"Vert",
	"Prow",
	"Cave",
	"Comp Wall",
	"Traverse",
}

// defaultColours carries both hold colours and grade-band tag colours. Tag
// sort order runs easiest to hardest.
var defaultColours = []colour.Colour{
	{Name: "Green", HexCode: "#10b981", Usage: colour.UsageBoth, SortOrder: 1},
	{Name: "Blue", HexCode: "#3b82f6", Usage: colour.UsageBoth, SortOrder: 2},
	{Name: "Yellow", HexCode: "#eab308", Usage: colour.UsageBoth, SortOrder: 3},
	{Name: "Orange", HexCode: "#f97316", Usage: colour.UsageBoth, SortOrder: 4},
	{Name: "Red", HexCode: "#ef4444", Usage: colour.UsageBoth, SortOrder: 5},
	{Name: "Purple", HexCode: "#a855f7", Usage: colour.UsageBoth, SortOrder: 6},
	{Name: "Black", HexCode: "#171717", Usage: colour.UsageBoth, SortOrder: 7},
	{Name: "White", HexCode: "#fafafa", Usage: colour.UsageHold},
	{Name: "Pink", HexCode: "#ec4899", Usage: colour.UsageHold},
}

// ExecuteSeedReferenceData populates walls and colours on an empty database.
// PRE: Database is migrated
// POST: Reference tables are non-empty; existing data is never touched
func ExecuteSeedReferenceData(ctx context.Context, deps SeedReferenceDataDeps) error {
	wallCount, err := deps.WallStore.Count(ctx)
	if err != nil {
		return err
	}
	if wallCount == 0 {
		for _, name := range defaultWalls {
			if err := deps.WallStore.Save(ctx, wall.Wall{Name: name}); err != nil {
				return err
			}
		}
		slog.Info("seed_event", "event", "walls_seeded", "count", len(defaultWalls))
	}

	colourCount, err := deps.ColourStore.Count(ctx)
	if err != nil {
		return err
	}
	if colourCount == 0 {
		for _, c := range defaultColours {
			if err := deps.ColourStore.Save(ctx, c); err != nil {
				return err
			}
		}
		slog.Info("seed_event", "event", "colours_seeded", "count", len(defaultColours))
	}

	return nil
}

// AccountStoreForSeedAdmin defines the account store interface needed by SeedAdmin.
type AccountStoreForSeedAdmin interface {
	AccountStoreForRegister
	Count(ctx context.Context) (int, error)
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AccountStore AccountStoreForSeedAdmin
	ProfileStore ProfileStoreForRegister
}

// ExecuteSeedAdmin creates a verified admin account if no accounts exist.
// PRE: Database is migrated
// POST: At least one account exists and it can manage climbs
func ExecuteSeedAdmin(ctx context.Context, deps SeedAdminDeps, emailAddr, password string) error {
	count, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	id, err := createVerifiedAccount(ctx, deps.AccountStore, emailAddr, password)
	if err != nil {
		return err
	}
	if err := deps.ProfileStore.Save(ctx, profile.Profile{
		UserID:     id,
		Role:       profile.RoleAdmin,
		CompCohort: profile.CohortInclusive,
	}); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "admin_seeded", "email", emailAddr)
	return nil
}

// createVerifiedAccount saves an account that skips the verification flow.
func createVerifiedAccount(ctx context.Context, store AccountStoreForSeedAdmin, emailAddr, password string) (string, error) {
	acct := account.Account{
		ID:        uuid.New().String(),
		Email:     emailAddr,
		Status:    account.StatusActive,
		CreatedAt: time.Now(),
	}
	if err := acct.Validate(); err != nil {
		return "", err
	}
	if err := acct.SetPassword(password); err != nil {
		return "", err
	}
	if err := store.Save(ctx, acct); err != nil {
		return "", err
	}
	return acct.ID, nil
}
