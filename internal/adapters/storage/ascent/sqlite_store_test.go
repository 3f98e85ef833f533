package ascent

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"cragboard/internal/adapters/storage"
	domain "cragboard/internal/domain/ascent"

	_ "modernc.org/sqlite"
)

// openAscentTestDB creates a migrated in-memory database seeded with the
// reference rows an ascent needs.
func openAscentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := storage.MigrateDB(db); err != nil {
		t.Fatalf("MigrateDB failed: %v", err)
	}

	seed := []string{
		`INSERT INTO account (id, email, status, created_at) VALUES ('u1', 'a@test.com', 'active', '2026-01-01T00:00:00Z')`,
		`INSERT INTO account (id, email, status, created_at) VALUES ('u2', 'b@test.com', 'active', '2026-01-01T00:00:00Z')`,
		`INSERT INTO profile (user_id, comp_cohort) VALUES ('u1', 'male')`,
		`INSERT INTO wall (name) VALUES ('Slab')`,
		`INSERT INTO colour (name, usage) VALUES ('Green', 'both')`,
		`INSERT INTO climb (wall_id, hold_colour_id, tag_colour_id, created_by, created_at) VALUES (1, 1, 1, 'u1', '2026-01-02T00:00:00Z')`,
	}
	for _, stmt := range seed {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
	return db
}

func testAscent(id, userID string) domain.Ascent {
	now := time.Date(2026, 1, 3, 12, 0, 0, 0, time.UTC)
	return domain.Ascent{
		ID:        id,
		ClimbID:   1,
		UserID:    userID,
		Sent:      true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TestSQLiteStore_UpsertSent_Idempotent verifies logging the same send twice
// leaves exactly one row, keeping the original id and created_at.
func TestSQLiteStore_UpsertSent_Idempotent(t *testing.T) {
	db := openAscentTestDB(t)
	store := NewSQLiteStore(storage.NewTimedDB(db, nil))
	ctx := context.Background()

	first := testAscent("a1", "u1")
	if err := store.UpsertSent(ctx, first); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	second := testAscent("a2", "u1")
	second.CreatedAt = second.CreatedAt.Add(time.Hour)
	second.UpdatedAt = second.UpdatedAt.Add(time.Hour)
	if err := store.UpsertSent(ctx, second); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	ascents, err := store.ListByUserID(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUserID failed: %v", err)
	}
	if len(ascents) != 1 {
		t.Fatalf("got %d ascents, want 1", len(ascents))
	}
	got := ascents[0]
	if got.ID != "a1" {
		t.Errorf("id = %q, want the original a1", got.ID)
	}
	if !got.Sent {
		t.Errorf("sent = false, want true")
	}
	if !got.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, first.CreatedAt)
	}
	if !got.UpdatedAt.Equal(second.UpdatedAt) {
		t.Errorf("updated_at = %v, want %v", got.UpdatedAt, second.UpdatedAt)
	}
}

// TestSQLiteStore_ListByUserID_ScopedToUser verifies one user's query never
// returns another user's rows.
func TestSQLiteStore_ListByUserID_ScopedToUser(t *testing.T) {
	db := openAscentTestDB(t)
	store := NewSQLiteStore(storage.NewTimedDB(db, nil))
	ctx := context.Background()

	if err := store.UpsertSent(ctx, testAscent("a1", "u1")); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := store.UpsertSent(ctx, testAscent("a2", "u2")); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	ascents, err := store.ListByUserID(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUserID failed: %v", err)
	}
	if len(ascents) != 1 || ascents[0].UserID != "u1" {
		t.Errorf("ascents = %+v, want only u1's row", ascents)
	}
}

// TestSQLiteStore_ListSentWithCohort_ExcludesUnprofiled verifies the profile
// join drops ascents whose user has no profile row.
func TestSQLiteStore_ListSentWithCohort_ExcludesUnprofiled(t *testing.T) {
	db := openAscentTestDB(t)
	store := NewSQLiteStore(storage.NewTimedDB(db, nil))
	ctx := context.Background()

	if err := store.UpsertSent(ctx, testAscent("a1", "u1")); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	// u2 has no profile row.
	if err := store.UpsertSent(ctx, testAscent("a2", "u2")); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	rows, err := store.ListSentWithCohort(ctx)
	if err != nil {
		t.Fatalf("ListSentWithCohort failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].UserID != "u1" || rows[0].CompCohort != "male" {
		t.Errorf("row = %+v", rows[0])
	}
}

// TestSQLiteStore_CountForClimb tests counting with and without rows.
func TestSQLiteStore_CountForClimb(t *testing.T) {
	db := openAscentTestDB(t)
	store := NewSQLiteStore(storage.NewTimedDB(db, nil))
	ctx := context.Background()

	count, err := store.CountForClimb(ctx, 1)
	if err != nil {
		t.Fatalf("CountForClimb failed: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}

	if err := store.UpsertSent(ctx, testAscent("a1", "u1")); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := store.UpsertSent(ctx, testAscent("a2", "u2")); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	count, err = store.CountForClimb(ctx, 1)
	if err != nil {
		t.Fatalf("CountForClimb failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}
