package orchestrators

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"cragboard/internal/adapters/blob"
	"cragboard/internal/adapters/imaging"

	"github.com/google/uuid"
)

// photoPrefix namespaces climb photos inside the shared bucket.
const photoPrefix = "climb-images/"

// UploadPhotoInput carries input for the photo upload orchestrator.
type UploadPhotoInput struct {
	ClimbID int64
	// Data is the raw upload body, at most imaging.MaxUploadBytes.
	Data []byte
}

// UploadPhotoDeps holds dependencies for UploadPhoto.
type UploadPhotoDeps struct {
	ClimbStore ClimbStoreForAuthoring
	Blob       blob.Store
}

// ExecuteUploadPhoto normalises the image, stores it and points the climb at
// the new object. The previous photo object, if any, is left in the bucket.
// PRE: Data has been size-capped at the transport layer
// POST: Climb references a freshly stored JPEG; returns the object key
func ExecuteUploadPhoto(ctx context.Context, input UploadPhotoInput, deps UploadPhotoDeps) (string, error) {
	entity, err := deps.ClimbStore.GetByID(ctx, input.ClimbID)
	if err != nil {
		return "", ErrClimbNotFound
	}

	normalised, err := imaging.Normalise(input.Data)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s%s_%d.jpg", photoPrefix, uuid.New().String(), time.Now().UnixMilli())
	if err := deps.Blob.Put(ctx, key, bytes.NewReader(normalised), "image/jpeg"); err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	entity.Photo = key
	if err := deps.ClimbStore.Update(ctx, entity); err != nil {
		return "", err
	}

	slog.Info("board_event", "event", "photo_uploaded", "climb_id", input.ClimbID, "key", key, "bytes", len(normalised))
	return key, nil
}

// ExecuteRemovePhoto clears a climb's photo reference. The stored object is
// kept so concurrently open viewers do not break mid-session.
// PRE: climbID names an existing climb
// POST: Climb has no photo reference
func ExecuteRemovePhoto(ctx context.Context, climbID int64, deps UploadPhotoDeps) error {
	entity, err := deps.ClimbStore.GetByID(ctx, climbID)
	if err != nil {
		return ErrClimbNotFound
	}
	if entity.Photo == "" {
		return nil
	}

	entity.Photo = ""
	if err := deps.ClimbStore.Update(ctx, entity); err != nil {
		return err
	}

	slog.Info("board_event", "event", "photo_removed", "climb_id", climbID)
	return nil
}
