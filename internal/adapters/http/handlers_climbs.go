package web

import (
	"errors"
	"net/http"
	"strconv"

	"cragboard/internal/adapters/http/middleware"
	"cragboard/internal/application/orchestrators"
	"cragboard/internal/application/projections"
	domainClimb "cragboard/internal/domain/climb"
)

// climbJSON is the wire shape of one climb row.
type climbJSON struct {
	ID         int64      `json:"id"`
	WallID     int64      `json:"wall_id"`
	WallName   string     `json:"wall_name"`
	HoldColour colourJSON `json:"hold_colour"`
	TagColour  colourJSON `json:"tag_colour"`
	SectorTag  string     `json:"sector_tag,omitempty"`
	PhotoURL   string     `json:"photo_url,omitempty"`
	NotesHTML  string     `json:"notes_html,omitempty"`
	Sent       bool       `json:"sent"`
}

type colourJSON struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	HexCode string `json:"hex_code,omitempty"`
}

// handleClimbs handles GET /api/climbs (the board) and POST /api/climbs
// (setter/admin creation).
func handleClimbs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		handleClimbBoard(w, r)
	case "POST":
		handleCreateClimb(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleClimbBoard returns the wall-grouped climb list. Supports ?wall_id=,
// ?hold_colour_id=, ?tag_colour_id= and ?sent=all|sent|unsent filters.
func handleClimbBoard(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	query := projections.GetClimbBoardQuery{
		UserID: sess.AccountID,
		Sent:   r.URL.Query().Get("sent"),
	}
	idFilters := []struct {
		param string
		dest  *int64
	}{
		{"wall_id", &query.WallID},
		{"hold_colour_id", &query.HoldColourID},
		{"tag_colour_id", &query.TagColourID},
	}
	for _, f := range idFilters {
		raw := r.URL.Query().Get(f.param)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			errorJSON(w, http.StatusBadRequest, f.param+" must be a positive integer")
			return
		}
		*f.dest = id
	}
	switch query.Sent {
	case "", projections.SentFilterAll, projections.SentFilterSent, projections.SentFilterUnsent:
	default:
		errorJSON(w, http.StatusBadRequest, "sent must be all, sent or unsent")
		return
	}

	result, err := projections.QueryGetClimbBoard(r.Context(), query, projections.GetClimbBoardDeps{
		ClimbStore:  stores.ClimbStore,
		AscentStore: stores.AscentStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	type groupJSON struct {
		WallID   int64       `json:"wall_id"`
		WallName string      `json:"wall_name"`
		Climbs   []climbJSON `json:"climbs"`
	}
	groups := make([]groupJSON, 0, len(result.Groups))
	for _, g := range result.Groups {
		gj := groupJSON{WallID: g.WallID, WallName: g.WallName, Climbs: make([]climbJSON, 0, len(g.Climbs))}
		for _, c := range g.Climbs {
			gj.Climbs = append(gj.Climbs, boardClimbJSON(r, c))
		}
		groups = append(groups, gj)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"groups": groups,
		"total":  result.Total,
	})
}

// boardClimbJSON converts a projection row to its wire shape, resolving the
// photo key to a fetchable URL.
func boardClimbJSON(r *http.Request, c projections.BoardClimb) climbJSON {
	out := climbJSON{
		ID:       c.ID,
		WallID:   c.WallID,
		WallName: c.WallName,
		HoldColour: colourJSON{
			ID:      c.HoldColour.ID,
			Name:    c.HoldColour.Name,
			HexCode: c.HoldColour.HexCode,
		},
		TagColour: colourJSON{
			ID:      c.TagColour.ID,
			Name:    c.TagColour.Name,
			HexCode: c.TagColour.HexCode,
		},
		SectorTag: c.SectorTag,
		NotesHTML: c.NotesHTML,
		Sent:      c.Sent,
	}
	if c.Photo != "" && photoStore != nil {
		if url, err := photoStore.URL(r.Context(), c.Photo); err == nil {
			out.PhotoURL = url
		}
	}
	return out
}

// climbInput is the writable climb payload shared by create and update.
type climbInput struct {
	WallID       int64  `json:"wall_id"`
	HoldColourID int64  `json:"hold_colour_id"`
	TagColourID  int64  `json:"tag_colour_id"`
	SectorTag    string `json:"sector_tag"`
	Notes        string `json:"notes"`
}

func authorDeps() orchestrators.AuthorClimbDeps {
	return orchestrators.AuthorClimbDeps{
		ClimbStore:  stores.ClimbStore,
		WallStore:   stores.WallStore,
		ColourStore: stores.ColourStore,
	}
}

// handleCreateClimb handles POST /api/climbs.
// PRE: caller is setter or admin
func handleCreateClimb(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if !middleware.CanSetClimbs(r.Context()) {
		errorJSON(w, http.StatusForbidden, "setter role required")
		return
	}

	var req climbInput
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "malformed request body")
		return
	}

	id, err := orchestrators.ExecuteCreateClimb(r.Context(), orchestrators.ClimbInput{
		WallID:       req.WallID,
		HoldColourID: req.HoldColourID,
		TagColourID:  req.TagColourID,
		SectorTagID:  req.SectorTag,
		Notes:        req.Notes,
	}, sess.AccountID, authorDeps())
	if err != nil {
		writeClimbError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// handleClimbByID routes /api/climbs/{id} and /api/climbs/{id}/photo.
func handleClimbByID(w http.ResponseWriter, r *http.Request) {
	segments := pathSuffix(r, "/api/climbs/")
	if len(segments) == 0 {
		http.NotFound(w, r)
		return
	}
	id, ok := parseID(segments[0])
	if !ok {
		errorJSON(w, http.StatusBadRequest, "climb id must be a positive integer")
		return
	}

	if len(segments) == 2 && segments[1] == "photo" {
		handleClimbPhoto(w, r, id)
		return
	}
	if len(segments) != 1 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case "GET":
		handleGetClimb(w, r, id)
	case "PUT":
		handleUpdateClimb(w, r, id)
	case "DELETE":
		handleDeleteClimb(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleGetClimb returns one climb for the edit form.
func handleGetClimb(w http.ResponseWriter, r *http.Request, id int64) {
	if _, ok := middleware.GetSessionFromContext(r.Context()); !ok {
		errorJSON(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	detail, err := stores.ClimbStore.GetDetailByID(r.Context(), id)
	if err != nil {
		errorJSON(w, http.StatusNotFound, "climb not found")
		return
	}

	out := map[string]any{
		"id":             detail.ID,
		"wall_id":        detail.WallID,
		"wall_name":      detail.Wall.Name,
		"hold_colour_id": detail.HoldColourID,
		"tag_colour_id":  detail.TagColourID,
		"sector_tag":     detail.SectorTagID,
		"notes":          detail.Notes,
	}
	if detail.Photo != "" && photoStore != nil {
		if url, err := photoStore.URL(r.Context(), detail.Photo); err == nil {
			out["photo_url"] = url
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleUpdateClimb handles PUT /api/climbs/{id}.
// PRE: caller is setter or admin
func handleUpdateClimb(w http.ResponseWriter, r *http.Request, id int64) {
	if _, ok := middleware.GetSessionFromContext(r.Context()); !ok {
		errorJSON(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if !middleware.CanSetClimbs(r.Context()) {
		errorJSON(w, http.StatusForbidden, "setter role required")
		return
	}

	var req climbInput
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "malformed request body")
		return
	}

	err := orchestrators.ExecuteUpdateClimb(r.Context(), id, orchestrators.ClimbInput{
		WallID:       req.WallID,
		HoldColourID: req.HoldColourID,
		TagColourID:  req.TagColourID,
		SectorTagID:  req.SectorTag,
		Notes:        req.Notes,
	}, authorDeps())
	if err != nil {
		writeClimbError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// handleDeleteClimb handles DELETE /api/climbs/{id}.
// PRE: caller is setter or admin
func handleDeleteClimb(w http.ResponseWriter, r *http.Request, id int64) {
	if _, ok := middleware.GetSessionFromContext(r.Context()); !ok {
		errorJSON(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if !middleware.CanSetClimbs(r.Context()) {
		errorJSON(w, http.StatusForbidden, "setter role required")
		return
	}

	if err := orchestrators.ExecuteDeleteClimb(r.Context(), id, authorDeps()); err != nil {
		writeClimbError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// writeClimbError maps orchestrator errors onto status codes.
func writeClimbError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orchestrators.ErrClimbNotFound):
		errorJSON(w, http.StatusNotFound, err.Error())
	case errors.Is(err, orchestrators.ErrUnknownWall),
		errors.Is(err, orchestrators.ErrUnknownColour),
		errors.Is(err, orchestrators.ErrColourNotForHolds),
		errors.Is(err, orchestrators.ErrColourNotForTags),
		errors.Is(err, domainClimb.ErrWallRequired),
		errors.Is(err, domainClimb.ErrHoldColourRequired),
		errors.Is(err, domainClimb.ErrTagColourRequired),
		errors.Is(err, domainClimb.ErrSectorTagTooLong),
		errors.Is(err, domainClimb.ErrNotesTooLong):
		errorJSON(w, http.StatusBadRequest, err.Error())
	default:
		internalError(w, err)
	}
}
