package profile

import (
	"context"
	"database/sql"
	"fmt"

	"cragboard/internal/adapters/storage"
	domain "cragboard/internal/domain/profile"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new ProfileStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByUserID retrieves a Profile by its owning account ID.
// PRE: userID is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	query := "SELECT user_id, role, comp_cohort FROM profile WHERE user_id = ?"
	row := s.db.QueryRowContext(ctx, query, userID)

	var entity domain.Profile
	err := row.Scan(&entity.UserID, &entity.Role, &entity.CompCohort)
	if err == sql.ErrNoRows {
		return domain.Profile{}, fmt.Errorf("%w: %s", ErrNotFound, userID)
	}
	return entity, err
}

// Save persists a Profile to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Profile) error {
	query := `INSERT INTO profile (user_id, role, comp_cohort) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET role=excluded.role, comp_cohort=excluded.comp_cohort`
	_, err := s.db.ExecContext(ctx, query, entity.UserID, entity.Role, entity.CompCohort)
	return err
}
