package web

import (
	"errors"
	"net/http"
	"time"

	"cragboard/internal/adapters/http/middleware"
	"cragboard/internal/application/orchestrators"
	"cragboard/internal/application/projections"
	domainAscent "cragboard/internal/domain/ascent"
	"cragboard/internal/domain/profile"
	"cragboard/internal/domain/viewer"
)

// handleLogSend handles POST /api/sends. The user always comes from the
// session, never the payload.
func handleLogSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req struct {
		ClimbID int64 `json:"climb_id"`
	}
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "malformed request body")
		return
	}

	recorded, err := orchestrators.ExecuteLogSend(r.Context(), orchestrators.LogSendInput{
		ClimbID: req.ClimbID,
		UserID:  sess.AccountID,
	}, orchestrators.LogSendDeps{
		AscentStore: stores.AscentStore,
		ClimbStore:  stores.ClimbStore,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "sent",
			"ascent": map[string]any{
				"id":       recorded.ID,
				"climb_id": recorded.ClimbID,
				"sent":     recorded.Sent,
			},
		})
	case errors.Is(err, orchestrators.ErrClimbNotFound):
		errorJSON(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domainAscent.ErrInvalidClimb):
		errorJSON(w, http.StatusBadRequest, err.Error())
	default:
		internalError(w, err)
	}
}

// handleLeaderboard handles GET /api/leaderboard?cohort=.
func handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	cohort := r.URL.Query().Get("cohort")
	if cohort != "" && !profile.IsValidCohort(cohort) {
		errorJSON(w, http.StatusBadRequest, "unknown cohort")
		return
	}

	result, err := projections.QueryGetLeaderboard(r.Context(), projections.GetLeaderboardQuery{
		Cohort:   cohort,
		ViewerID: sess.AccountID,
	}, projections.GetLeaderboardDeps{AscentStore: stores.AscentStore})
	if err != nil {
		internalError(w, err)
		return
	}

	type rowJSON struct {
		Rank     int    `json:"rank"`
		UserID   string `json:"user_id"`
		Cohort   string `json:"cohort"`
		Sends    int    `json:"sends"`
		IsViewer bool   `json:"is_viewer"`
	}
	rows := make([]rowJSON, 0, len(result.Rows))
	for _, row := range result.Rows {
		rows = append(rows, rowJSON(row))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rows":         rows,
		"viewer_rank":  result.ViewerRank,
		"viewer_sends": result.ViewerSends,
		"max_sends":    result.MaxSends,
	})
}

// handleReferenceData handles GET /api/reference, the walls and colour
// palettes that drive the filters and the climb form.
func handleReferenceData(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := middleware.GetSessionFromContext(r.Context()); !ok {
		errorJSON(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	result, err := projections.QueryGetReferenceData(r.Context(), projections.GetReferenceDataDeps{
		WallStore:   stores.WallStore,
		ColourStore: stores.ColourStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	type wallJSON struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	walls := make([]wallJSON, 0, len(result.Walls))
	for _, wl := range result.Walls {
		walls = append(walls, wallJSON{ID: wl.ID, Name: wl.Name})
	}
	holds := make([]colourJSON, 0, len(result.HoldColours))
	for _, c := range result.HoldColours {
		holds = append(holds, colourJSON{ID: c.ID, Name: c.Name, HexCode: c.HexCode})
	}
	tags := make([]colourJSON, 0, len(result.TagColours))
	for _, c := range result.TagColours {
		tags = append(tags, colourJSON{ID: c.ID, Name: c.Name, HexCode: c.HexCode})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"walls":        walls,
		"hold_colours": holds,
		"tag_colours":  tags,
		"cohorts": []string{
			profile.CohortMale,
			profile.CohortFemale,
			profile.CohortInclusive,
		},
	})
}

// handleViewerConfig handles GET /api/viewer-config, the zoom and pan limits
// the photo viewer client enforces.
func handleViewerConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{
		"min_scale":     viewer.MinScale,
		"max_scale":     viewer.MaxScale,
		"wheel_step":    viewer.WheelStep,
		"double_tap_to": viewer.DoubleTapTo,
	})
}

// handleAdminPerf handles GET /api/admin/perf.
// PRE: caller is admin
func handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !middleware.IsAdmin(r.Context()) {
		errorJSON(w, http.StatusForbidden, "admin role required")
		return
	}
	if perfCollector == nil {
		errorJSON(w, http.StatusServiceUnavailable, "perf collection is not enabled")
		return
	}

	since := timeNow().Add(-time.Hour)
	snap := perfCollector.Snapshot(since, 10)
	writeJSON(w, http.StatusOK, snap)
}
