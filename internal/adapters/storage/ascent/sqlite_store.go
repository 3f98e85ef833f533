package ascent

import (
	"context"
	"database/sql"
	"time"

	"cragboard/internal/adapters/storage"
	domain "cragboard/internal/domain/ascent"
)

const timeFormat = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new AscentStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// ListByUserID returns every ascent the user has logged, oldest first.
// PRE: userID is non-empty
// POST: Returns the user's ascents, possibly empty
func (s *SQLiteStore) ListByUserID(ctx context.Context, userID string) ([]domain.Ascent, error) {
	query := `SELECT id, climb_id, user_id, sent, created_at, updated_at
		FROM ascent WHERE user_id = ? ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ascents []domain.Ascent
	for rows.Next() {
		entity, err := scanAscent(rows.Scan)
		if err != nil {
			return nil, err
		}
		ascents = append(ascents, entity)
	}
	return ascents, rows.Err()
}

// UpsertSent records an ascent, keyed per climb and user so logging the same
// send twice leaves one row.
// PRE: entity has been validated
// POST: Exactly one row exists for (climb_id, user_id); re-runs are no-ops
//
//	beyond updated_at
func (s *SQLiteStore) UpsertSent(ctx context.Context, entity domain.Ascent) error {
	query := `INSERT INTO ascent (id, climb_id, user_id, sent, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(climb_id, user_id) DO UPDATE SET
			sent = excluded.sent,
			updated_at = excluded.updated_at`
	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.ClimbID,
		entity.UserID,
		boolToInt(entity.Sent),
		entity.CreatedAt.Format(timeFormat),
		entity.UpdatedAt.Format(timeFormat),
	)
	return err
}

// ListSentWithCohort returns every sent ascent joined with the competitor's
// profile. Ascents without a profile are excluded by the join.
// POST: Returns sent ascents for profiled users only, possibly empty
func (s *SQLiteStore) ListSentWithCohort(ctx context.Context) ([]SentRow, error) {
	query := `SELECT a.user_id, a.climb_id, p.comp_cohort
		FROM ascent a
		JOIN profile p ON p.user_id = a.user_id
		WHERE a.sent = 1`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SentRow
	for rows.Next() {
		var row SentRow
		if err := rows.Scan(&row.UserID, &row.ClimbID, &row.CompCohort); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountForClimb returns the number of ascent rows logged against a climb.
// PRE: climbID > 0
// POST: Returns the row count
func (s *SQLiteStore) CountForClimb(ctx context.Context, climbID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ascent WHERE climb_id = ?", climbID).Scan(&count)
	return count, err
}

// scanAscent extracts an Ascent from a row scanner function.
func scanAscent(scan func(...any) error) (domain.Ascent, error) {
	var entity domain.Ascent
	var sent int
	var createdAt string
	var updatedAt sql.NullString
	err := scan(
		&entity.ID,
		&entity.ClimbID,
		&entity.UserID,
		&sent,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Ascent{}, err
	}
	entity.Sent = sent != 0
	entity.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	if updatedAt.Valid && updatedAt.String != "" {
		entity.UpdatedAt, _ = time.Parse(timeFormat, updatedAt.String)
	}
	return entity, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
