package web

import (
	"errors"
	"io"
	"net/http"

	"cragboard/internal/adapters/http/middleware"
	"cragboard/internal/adapters/imaging"
	"cragboard/internal/application/orchestrators"
)

// handleClimbPhoto routes POST and DELETE on /api/climbs/{id}/photo.
func handleClimbPhoto(w http.ResponseWriter, r *http.Request, climbID int64) {
	if _, ok := middleware.GetSessionFromContext(r.Context()); !ok {
		errorJSON(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if !middleware.CanSetClimbs(r.Context()) {
		errorJSON(w, http.StatusForbidden, "setter role required")
		return
	}
	if photoStore == nil {
		errorJSON(w, http.StatusServiceUnavailable, "photo storage is not configured")
		return
	}

	switch r.Method {
	case "POST":
		handleUploadPhoto(w, r, climbID)
	case "DELETE":
		handleRemovePhoto(w, r, climbID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleUploadPhoto accepts a multipart "photo" field, normalises it and
// attaches it to the climb. The camera capture and gallery picker both land
// here.
func handleUploadPhoto(w http.ResponseWriter, r *http.Request, climbID int64) {
	// A little headroom over the image cap for multipart framing.
	const maxForm = imaging.MaxUploadBytes + (1 << 20)
	r.Body = http.MaxBytesReader(w, r.Body, maxForm)
	if err := r.ParseMultipartForm(maxForm); err != nil {
		errorJSON(w, http.StatusBadRequest, "request too large or malformed")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "photo field is required")
		return
	}
	defer file.Close()

	if header.Size > imaging.MaxUploadBytes {
		errorJSON(w, http.StatusBadRequest, "photo must be under 20 MB")
		return
	}
	ct := header.Header.Get("Content-Type")
	if ct != "image/jpeg" && ct != "image/png" && ct != "image/webp" && ct != "image/gif" {
		errorJSON(w, http.StatusBadRequest, "photo must be an image (jpeg, png, webp, gif)")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		internalError(w, err)
		return
	}

	key, err := orchestrators.ExecuteUploadPhoto(r.Context(), orchestrators.UploadPhotoInput{
		ClimbID: climbID,
		Data:    data,
	}, orchestrators.UploadPhotoDeps{
		ClimbStore: stores.ClimbStore,
		Blob:       photoStore,
	})
	switch {
	case err == nil:
		// resolved below
	case errors.Is(err, orchestrators.ErrClimbNotFound):
		errorJSON(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, imaging.ErrNotAnImage), errors.Is(err, imaging.ErrTooLarge):
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	default:
		internalError(w, err)
		return
	}

	url, err := photoStore.URL(r.Context(), key)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"photo_url": url})
}

// handleRemovePhoto clears the climb's photo reference.
func handleRemovePhoto(w http.ResponseWriter, r *http.Request, climbID int64) {
	err := orchestrators.ExecuteRemovePhoto(r.Context(), climbID, orchestrators.UploadPhotoDeps{
		ClimbStore: stores.ClimbStore,
		Blob:       photoStore,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
	case errors.Is(err, orchestrators.ErrClimbNotFound):
		errorJSON(w, http.StatusNotFound, err.Error())
	default:
		internalError(w, err)
	}
}
