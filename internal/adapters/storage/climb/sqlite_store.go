package climb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cragboard/internal/adapters/storage"
	domain "cragboard/internal/domain/climb"
)

const timeFormat = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new ClimbStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const climbColumns = "id, wall_id, hold_colour_id, tag_colour_id, sector_tag_id, photo, notes, created_by, created_at"

const detailQuery = `SELECT
		c.id, c.wall_id, c.hold_colour_id, c.tag_colour_id,
		c.sector_tag_id, c.photo, c.notes, c.created_by, c.created_at,
		w.name,
		hc.name, hc.hex_code,
		tc.name, tc.hex_code
	FROM climb c
	JOIN wall w ON w.id = c.wall_id
	JOIN colour hc ON hc.id = c.hold_colour_id
	JOIN colour tc ON tc.id = c.tag_colour_id`

// GetByID retrieves a Climb by its ID.
// PRE: id > 0
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Climb, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+climbColumns+" FROM climb WHERE id = ?", id)
	entity, err := scanClimb(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Climb{}, fmt.Errorf("climb not found: %w", err)
	}
	return entity, err
}

// GetDetailByID retrieves a Climb with its joined reference rows.
// PRE: id > 0
// POST: Returns the detail or an error if not found
func (s *SQLiteStore) GetDetailByID(ctx context.Context, id int64) (Detail, error) {
	row := s.db.QueryRowContext(ctx, detailQuery+" WHERE c.id = ?", id)
	detail, err := scanDetail(row.Scan)
	if err == sql.ErrNoRows {
		return Detail{}, fmt.Errorf("climb not found: %w", err)
	}
	return detail, err
}

// ListDetailed returns every climb joined with wall and colour metadata,
// ordered by sector tag then id so downstream grouping sees a stable order.
// POST: Returns all climbs, possibly empty
func (s *SQLiteStore) ListDetailed(ctx context.Context) ([]Detail, error) {
	rows, err := s.db.QueryContext(ctx, detailQuery+" ORDER BY c.sector_tag_id, c.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []Detail
	for rows.Next() {
		detail, err := scanDetail(rows.Scan)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, rows.Err()
}

// Insert persists a new Climb and returns its assigned ID.
// PRE: entity has been validated
// POST: Entity is persisted; returned id > 0
func (s *SQLiteStore) Insert(ctx context.Context, entity domain.Climb) (int64, error) {
	query := `INSERT INTO climb (wall_id, hold_colour_id, tag_colour_id, sector_tag_id, photo, notes, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := s.db.ExecContext(ctx, query,
		entity.WallID,
		entity.HoldColourID,
		entity.TagColourID,
		nullIfEmpty(entity.SectorTagID),
		nullIfEmpty(entity.Photo),
		nullIfEmpty(entity.Notes),
		entity.CreatedBy,
		entity.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// Update persists changes to an existing Climb.
// PRE: entity has been validated and entity.ID > 0
// POST: Row is updated, or an error is returned if it does not exist
func (s *SQLiteStore) Update(ctx context.Context, entity domain.Climb) error {
	query := `UPDATE climb SET
		wall_id = ?, hold_colour_id = ?, tag_colour_id = ?,
		sector_tag_id = ?, photo = ?, notes = ?
		WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query,
		entity.WallID,
		entity.HoldColourID,
		entity.TagColourID,
		nullIfEmpty(entity.SectorTagID),
		nullIfEmpty(entity.Photo),
		nullIfEmpty(entity.Notes),
		entity.ID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("climb not found: id %d", entity.ID)
	}
	return nil
}

// Delete removes a climb and its ascents.
// PRE: id > 0
// POST: Climb and dependent ascent rows are gone; no error if already absent
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM ascent WHERE climb_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM climb WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// scanClimb extracts a Climb from a row scanner function.
func scanClimb(scan func(...any) error) (domain.Climb, error) {
	var entity domain.Climb
	var sectorTag, photo, notes sql.NullString
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.WallID,
		&entity.HoldColourID,
		&entity.TagColourID,
		&sectorTag,
		&photo,
		&notes,
		&entity.CreatedBy,
		&createdAt,
	)
	if err != nil {
		return domain.Climb{}, err
	}
	entity.SectorTagID = sectorTag.String
	entity.Photo = photo.String
	entity.Notes = notes.String
	entity.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	return entity, nil
}

// scanDetail extracts a Detail from a row scanner function.
func scanDetail(scan func(...any) error) (Detail, error) {
	var detail Detail
	var sectorTag, photo, notes sql.NullString
	var holdHex, tagHex sql.NullString
	var createdAt string
	err := scan(
		&detail.ID,
		&detail.WallID,
		&detail.HoldColourID,
		&detail.TagColourID,
		&sectorTag,
		&photo,
		&notes,
		&detail.CreatedBy,
		&createdAt,
		&detail.Wall.Name,
		&detail.HoldColour.Name,
		&holdHex,
		&detail.TagColour.Name,
		&tagHex,
	)
	if err != nil {
		return Detail{}, err
	}
	detail.SectorTagID = sectorTag.String
	detail.Photo = photo.String
	detail.Notes = notes.String
	detail.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	detail.Wall.ID = detail.WallID
	detail.HoldColour.ID = detail.HoldColourID
	detail.HoldColour.HexCode = holdHex.String
	detail.TagColour.ID = detail.TagColourID
	detail.TagColour.HexCode = tagHex.String
	return detail, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
