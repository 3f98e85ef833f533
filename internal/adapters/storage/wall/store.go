package wall

import (
	"context"

	domain "cragboard/internal/domain/wall"
)

// Store persists Wall reference data.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Wall, error)
	List(ctx context.Context) ([]domain.Wall, error)
	Save(ctx context.Context, value domain.Wall) error
	Count(ctx context.Context) (int, error)
}
