package colour

import (
	"context"

	domain "cragboard/internal/domain/colour"
)

// Store persists Colour reference data.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Colour, error)
	List(ctx context.Context) ([]domain.Colour, error)
	Save(ctx context.Context, value domain.Colour) error
	Count(ctx context.Context) (int, error)
}
