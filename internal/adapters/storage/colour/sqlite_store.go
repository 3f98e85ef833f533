package colour

import (
	"context"
	"database/sql"
	"fmt"

	"cragboard/internal/adapters/storage"
	domain "cragboard/internal/domain/colour"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new ColourStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Colour by its ID.
// PRE: id > 0
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Colour, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, hex_code, usage, sort_order FROM colour WHERE id = ?", id)

	var entity domain.Colour
	var hexCode sql.NullString
	var sortOrder sql.NullInt64
	err := row.Scan(&entity.ID, &entity.Name, &hexCode, &entity.Usage, &sortOrder)
	if err == sql.ErrNoRows {
		return domain.Colour{}, fmt.Errorf("colour not found: %w", err)
	}
	if err != nil {
		return domain.Colour{}, err
	}
	entity.HexCode = hexCode.String
	if sortOrder.Valid {
		entity.SortOrder = sortOrder.Int64
	}
	return entity, nil
}

// List retrieves all colours ordered by name.
// POST: Returns colours; usage/sort-order based ordering is the projection's job
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Colour, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, hex_code, usage, sort_order FROM colour ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Colour
	for rows.Next() {
		var entity domain.Colour
		var hexCode sql.NullString
		var sortOrder sql.NullInt64
		if err := rows.Scan(&entity.ID, &entity.Name, &hexCode, &entity.Usage, &sortOrder); err != nil {
			return nil, err
		}
		if hexCode.Valid {
			entity.HexCode = hexCode.String
		}
		if sortOrder.Valid {
			entity.SortOrder = sortOrder.Int64
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Save persists a Colour to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Colour) error {
	var hexCode interface{}
	if entity.HexCode != "" {
		hexCode = entity.HexCode
	}
	var sortOrder interface{}
	if entity.SortOrder > 0 {
		sortOrder = entity.SortOrder
	}

	if entity.ID > 0 {
		query := `INSERT INTO colour (id, name, hex_code, usage, sort_order) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, hex_code=excluded.hex_code, usage=excluded.usage, sort_order=excluded.sort_order`
		_, err := s.db.ExecContext(ctx, query, entity.ID, entity.Name, hexCode, entity.Usage, sortOrder)
		return err
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO colour (name, hex_code, usage, sort_order) VALUES (?, ?, ?, ?) ON CONFLICT(name) DO NOTHING",
		entity.Name, hexCode, entity.Usage, sortOrder)
	return err
}

// Count returns the total number of colours.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM colour").Scan(&count)
	return count, err
}
