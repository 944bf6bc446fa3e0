package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dicoslang/backoffice/internal/middleware"
	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

type UserHandler struct {
	users   services.UserService
	stats   *services.StatsService
	actions *services.ModerationActions
}

func NewUserHandler(store *services.Store) *UserHandler {
	return &UserHandler{
		users:   store.Users,
		stats:   services.NewStatsService(store),
		actions: &services.ModerationActions{Users: store.Users},
	}
}

// ListUsers returns every user with activity counts.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	users, err := h.stats.UserSummaries(ctx)
	if err != nil {
		writeServiceError(w, "ListUsers", err, "Failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(users))
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.SaveUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validate(w, "CreateUser", req.Validate()) {
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var u models.User
	req.Apply(&u)
	created, err := h.users.Save(ctx, &u)
	if err != nil {
		writeServiceError(w, "CreateUser", err, "Failed to create user")
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(created))
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	u, err := h.users.GetByID(ctx, chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, "GetUser", err, "Failed to get user")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(u))
}

// UpdateUser replaces the profile fields. Warnings, favorites and the
// password hash are kept.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req models.SaveUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validate(w, "UpdateUser", req.Validate()) {
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	u, err := h.users.GetByID(ctx, chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, "UpdateUser", err, "Failed to update user")
		return
	}
	req.Apply(u)
	updated, err := h.users.Save(ctx, u)
	if err != nil {
		writeServiceError(w, "UpdateUser", err, "Failed to update user")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(updated))
}

func (h *UserHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	status := models.UserStatus(req.Status)
	if !status.Valid() {
		validate(w, "UpdateUserStatus", map[string]string{"status": "Unknown status"})
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.users.UpdateStatus(ctx, chi.URLParam(r, "userId"), status); err != nil {
		writeServiceError(w, "UpdateUserStatus", err, "Failed to update status")
		return
	}
	writeJSON(w, http.StatusOK, models.NewMessageResponse("Status updated"))
}

func (h *UserHandler) Ban(w http.ResponseWriter, r *http.Request) {
	var req models.ReasonRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	adminID := middleware.GetUserID(r.Context())
	if err := h.actions.Ban(ctx, chi.URLParam(r, "userId"), req.Reason, adminID); err != nil {
		writeServiceError(w, "Ban", err, "Failed to ban user")
		return
	}
	writeJSON(w, http.StatusOK, models.NewMessageResponse("User banned"))
}

func (h *UserHandler) Unban(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	adminID := middleware.GetUserID(r.Context())
	if err := h.actions.Unban(ctx, chi.URLParam(r, "userId"), adminID); err != nil {
		writeServiceError(w, "Unban", err, "Failed to unban user")
		return
	}
	writeJSON(w, http.StatusOK, models.NewMessageResponse("User unbanned"))
}

func (h *UserHandler) ResetWarnings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	adminID := middleware.GetUserID(r.Context())
	if err := h.actions.ResetWarnings(ctx, chi.URLParam(r, "userId"), adminID); err != nil {
		writeServiceError(w, "ResetWarnings", err, "Failed to reset warnings")
		return
	}
	writeJSON(w, http.StatusOK, models.NewMessageResponse("Warnings reset"))
}

// BannedCheck answers whether ?email= or ?pseudo= belongs to a banned user.
func (h *UserHandler) BannedCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	q := r.URL.Query()
	check, err := h.actions.CheckBanned(ctx, q.Get("email"), q.Get("pseudo"))
	if err != nil {
		writeServiceError(w, "BannedCheck", err, "Failed to check ban")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(check))
}
