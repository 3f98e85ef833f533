package orchestrators

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"io"
	"strings"
	"testing"

	"cragboard/internal/adapters/imaging"
	domainClimb "cragboard/internal/domain/climb"
)

type mockBlobStore struct {
	objects map[string][]byte
	types   map[string]string
}

func newMockBlobStore() *mockBlobStore {
	return &mockBlobStore{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (m *mockBlobStore) Put(_ context.Context, key string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[key] = data
	m.types[key] = contentType
	return nil
}

func (m *mockBlobStore) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *mockBlobStore) URL(_ context.Context, key string) (string, error) {
	return "http://blob.test/" + key, nil
}

func photoDeps() (UploadPhotoDeps, *mockAuthoringClimbStore, *mockBlobStore) {
	climbs := &mockAuthoringClimbStore{climbs: map[int64]domainClimb.Climb{
		5: {ID: 5, WallID: 1, HoldColourID: 2, TagColourID: 3},
	}}
	blobs := newMockBlobStore()
	return UploadPhotoDeps{ClimbStore: climbs, Blob: blobs}, climbs, blobs
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

// TestExecuteUploadPhoto_StoresAndReferences verifies the stored object key
// lands on the climb row.
func TestExecuteUploadPhoto_StoresAndReferences(t *testing.T) {
	deps, climbs, blobs := photoDeps()

	key, err := ExecuteUploadPhoto(context.Background(), UploadPhotoInput{ClimbID: 5, Data: testJPEG(t, 40, 30)}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(key, "climb-images/") || !strings.HasSuffix(key, ".jpg") {
		t.Errorf("key = %q", key)
	}
	if climbs.climbs[5].Photo != key {
		t.Errorf("climb photo = %q, want %q", climbs.climbs[5].Photo, key)
	}
	if _, ok := blobs.objects[key]; !ok {
		t.Errorf("object %q not stored", key)
	}
	if blobs.types[key] != "image/jpeg" {
		t.Errorf("content type = %q", blobs.types[key])
	}
}

// TestExecuteUploadPhoto_RejectsNonImage verifies garbage bytes never reach
// the blob store.
func TestExecuteUploadPhoto_RejectsNonImage(t *testing.T) {
	deps, _, blobs := photoDeps()

	_, err := ExecuteUploadPhoto(context.Background(), UploadPhotoInput{ClimbID: 5, Data: []byte("not a photo")}, deps)
	if !errors.Is(err, imaging.ErrNotAnImage) {
		t.Errorf("err = %v, want ErrNotAnImage", err)
	}
	if len(blobs.objects) != 0 {
		t.Errorf("object stored despite rejected payload")
	}
}

// TestExecuteUploadPhoto_UnknownClimb verifies the climb is checked before
// any image work happens.
func TestExecuteUploadPhoto_UnknownClimb(t *testing.T) {
	deps, _, _ := photoDeps()

	_, err := ExecuteUploadPhoto(context.Background(), UploadPhotoInput{ClimbID: 99, Data: testJPEG(t, 10, 10)}, deps)
	if !errors.Is(err, ErrClimbNotFound) {
		t.Errorf("err = %v, want ErrClimbNotFound", err)
	}
}

// TestExecuteRemovePhoto_ClearsReferenceOnly verifies removal clears the row
// but leaves the stored object behind.
func TestExecuteRemovePhoto_ClearsReferenceOnly(t *testing.T) {
	deps, climbs, blobs := photoDeps()

	key, err := ExecuteUploadPhoto(context.Background(), UploadPhotoInput{ClimbID: 5, Data: testJPEG(t, 40, 30)}, deps)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := ExecuteRemovePhoto(context.Background(), 5, deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if climbs.climbs[5].Photo != "" {
		t.Errorf("photo reference not cleared")
	}
	if _, ok := blobs.objects[key]; !ok {
		t.Errorf("stored object deleted on removal")
	}

	// Removing again is a no-op.
	if err := ExecuteRemovePhoto(context.Background(), 5, deps); err != nil {
		t.Errorf("second removal: %v", err)
	}
}
