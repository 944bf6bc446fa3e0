package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dicoslang/backoffice/internal/middleware"
	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

type SuggestionHandler struct {
	suggestions services.SuggestionService
	users       services.UserService
	review      *services.SuggestionReview
}

func NewSuggestionHandler(store *services.Store, review *services.SuggestionReview) *SuggestionHandler {
	return &SuggestionHandler{suggestions: store.Suggestions, users: store.Users, review: review}
}

// ListSuggestions filters by ?status= or ?userId=, newest first.
func (h *SuggestionHandler) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var (
		rows []*models.Suggestion
		err  error
	)
	q := r.URL.Query()
	if userID := q.Get("userId"); userID != "" {
		rows, err = h.suggestions.ListByUser(ctx, userID)
	} else {
		rows, err = h.suggestions.ListByStatus(ctx, models.SuggestionStatus(q.Get("status")))
	}
	if err != nil {
		writeServiceError(w, "ListSuggestions", err, "Failed to list suggestions")
		return
	}

	names := make(map[string]string)
	out := make([]models.SuggestionWithAuthor, 0, len(rows))
	for _, sg := range rows {
		name, ok := names[sg.UserID]
		if !ok {
			name = "Inconnu"
			if u, err := h.users.GetByID(ctx, sg.UserID); err == nil {
				name = u.Username
			}
			names[sg.UserID] = name
		}
		out = append(out, models.SuggestionWithAuthor{Suggestion: *sg, AuthorName: name})
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(out))
}

func (h *SuggestionHandler) CreateSuggestion(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSuggestionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validate(w, "CreateSuggestion", req.Validate()) {
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	sg, err := h.review.Submit(ctx, &req)
	if err != nil {
		writeServiceError(w, "CreateSuggestion", err, "Failed to create suggestion")
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(sg))
}

func (h *SuggestionHandler) GetSuggestion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	sg, err := h.suggestions.GetByID(ctx, chi.URLParam(r, "suggestionId"))
	if err != nil {
		writeServiceError(w, "GetSuggestion", err, "Failed to get suggestion")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(sg))
}

func (h *SuggestionHandler) DeleteSuggestion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.suggestions.Delete(ctx, chi.URLParam(r, "suggestionId")); err != nil {
		writeServiceError(w, "DeleteSuggestion", err, "Failed to delete suggestion")
		return
	}
	writeJSON(w, http.StatusOK, models.NewMessageResponse("Suggestion deleted"))
}

func (h *SuggestionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	reviewer := middleware.GetUserID(r.Context())
	result, err := h.review.Approve(ctx, chi.URLParam(r, "suggestionId"), reviewer, req.Note)
	if err != nil {
		writeServiceError(w, "ApproveSuggestion", err, "Failed to approve suggestion")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(result))
}

func (h *SuggestionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	reviewer := middleware.GetUserID(r.Context())
	sg, err := h.review.Reject(ctx, chi.URLParam(r, "suggestionId"), reviewer, req.Note)
	if err != nil {
		writeServiceError(w, "RejectSuggestion", err, "Failed to reject suggestion")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(sg))
}

func (h *SuggestionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	stats, err := h.review.Stats(ctx)
	if err != nil {
		writeServiceError(w, "SuggestionStats", err, "Failed to compute statistics")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(stats))
}
