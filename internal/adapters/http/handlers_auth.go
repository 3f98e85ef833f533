package web

import (
	"errors"
	"net/http"

	"cragboard/internal/adapters/http/middleware"
	"cragboard/internal/application/orchestrators"
	"cragboard/internal/application/projections"
	"cragboard/internal/domain/account"
)

// handleRegister handles POST /api/register.
// Creates a pending account, a profile with the chosen cohort, and emails a
// verification link.
func handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		CompCohort string `json:"comp_cohort"`
	}
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "malformed request body")
		return
	}

	_, err := orchestrators.ExecuteRegisterCompetitor(r.Context(), orchestrators.RegisterCompetitorInput{
		Email:      req.Email,
		Password:   req.Password,
		CompCohort: req.CompCohort,
	}, orchestrators.RegisterCompetitorDeps{
		AccountStore: stores.AccountStore,
		ProfileStore: stores.ProfileStore,
		Email:        emailSender,
		BaseURL:      baseURL,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, map[string]string{
			"status": "pending_verification",
		})
	case errors.Is(err, orchestrators.ErrEmailAlreadyExists):
		errorJSON(w, http.StatusConflict, err.Error())
	case errors.Is(err, account.ErrPasswordTooShort),
		errors.Is(err, account.ErrInvalidEmail),
		errors.Is(err, account.ErrEmptyEmail),
		errors.Is(err, account.ErrEmptyPassword),
		errors.Is(err, orchestrators.ErrInvalidCohort):
		errorJSON(w, http.StatusBadRequest, err.Error())
	default:
		internalError(w, err)
	}
}

// handleLogin handles POST /api/login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "malformed request body")
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
		ProfileStore: stores.ProfileStore,
	})
	switch {
	case err == nil:
		// fall through to session creation
	case errors.Is(err, orchestrators.ErrPendingVerify):
		errorJSON(w, http.StatusForbidden, err.Error())
		return
	case errors.Is(err, orchestrators.ErrAccountLocked):
		errorJSON(w, http.StatusForbidden, err.Error())
		return
	default:
		errorJSON(w, http.StatusUnauthorized, orchestrators.ErrInvalidCredentials.Error())
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Role, result.CompCohort)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":     result.AccountID,
		"email":       result.Email,
		"role":        result.Role,
		"comp_cohort": result.CompCohort,
	})
}

// handleLogout handles POST /api/logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// handleVerify handles GET /verify?token=...
// This is the target of the emailed link, so it renders a plain response
// rather than JSON.
func handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	err := orchestrators.ExecuteVerifyAccount(r.Context(), r.URL.Query().Get("token"),
		orchestrators.VerifyAccountDeps{AccountStore: stores.AccountStore})
	switch {
	case err == nil:
		http.Redirect(w, r, "/?verified=1", http.StatusSeeOther)
	case errors.Is(err, account.ErrTokenExpired):
		http.Error(w, "verification link has expired, request a new one", http.StatusGone)
	default:
		http.Error(w, "invalid verification link", http.StatusBadRequest)
	}
}

// handleResendVerification handles POST /api/resend-verification.
// Always answers 200 so the endpoint cannot confirm whether an address is
// registered.
func handleResendVerification(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := orchestrators.ExecuteResendVerification(r.Context(), req.Email,
		orchestrators.ResendVerificationDeps{
			AccountStore: stores.AccountStore,
			Email:        emailSender,
			BaseURL:      baseURL,
		}); err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent_if_pending"})
}

// handleMe handles GET /api/me, returning the viewer's identity and
// permissions resolved from the profile.
func handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	result, err := projections.QueryGetViewerRole(r.Context(), sess.AccountID,
		projections.GetViewerRoleDeps{ProfileStore: stores.ProfileStore})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":        result.UserID,
		"email":          sess.Email,
		"role":           result.Role,
		"comp_cohort":    result.CompCohort,
		"can_set_climbs": result.CanSetClimbs,
	})
}
