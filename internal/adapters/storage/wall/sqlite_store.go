package wall

import (
	"context"
	"database/sql"
	"fmt"

	"cragboard/internal/adapters/storage"
	domain "cragboard/internal/domain/wall"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new WallStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Wall by its ID.
// PRE: id > 0
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Wall, error) {
	var entity domain.Wall
	err := s.db.QueryRowContext(ctx, "SELECT id, name FROM wall WHERE id = ?", id).
		Scan(&entity.ID, &entity.Name)
	if err == sql.ErrNoRows {
		return domain.Wall{}, fmt.Errorf("wall not found: %w", err)
	}
	return entity, err
}

// List retrieves all walls ordered by name.
// POST: Returns walls in display order
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Wall, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM wall ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Wall
	for rows.Next() {
		var entity domain.Wall
		if err := rows.Scan(&entity.ID, &entity.Name); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Save persists a Wall to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update by name)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Wall) error {
	if entity.ID > 0 {
		query := `INSERT INTO wall (id, name) VALUES (?, ?)
			ON CONFLICT(id) DO UPDATE SET name=excluded.name`
		_, err := s.db.ExecContext(ctx, query, entity.ID, entity.Name)
		return err
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO wall (name) VALUES (?) ON CONFLICT(name) DO NOTHING", entity.Name)
	return err
}

// Count returns the total number of walls.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM wall").Scan(&count)
	return count, err
}
