package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dicoslang/backoffice/internal/middleware"
	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

type WordHandler struct {
	words    services.WordService
	users    services.UserService
	comments services.CommentService
}

func NewWordHandler(store *services.Store) *WordHandler {
	return &WordHandler{words: store.Words, users: store.Users, comments: store.Comments}
}

// ListWords returns words newest first, filtered by ?status= when given,
// with author pseudos resolved.
func (h *WordHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	status := models.WordStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		validate(w, "ListWords", map[string]string{"status": "Unknown status"})
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	words, err := h.words.ListByStatus(ctx, status)
	if err != nil {
		writeServiceError(w, "ListWords", err, "Failed to list words")
		return
	}

	names := make(map[string]string)
	out := make([]models.WordWithAuthor, 0, len(words))
	for _, word := range words {
		row := models.WordWithAuthor{Word: *word}
		if word.CreatedBy != "" {
			name, ok := names[word.CreatedBy]
			if !ok {
				if u, err := h.users.GetByID(ctx, word.CreatedBy); err == nil {
					name = u.Username
				}
				names[word.CreatedBy] = name
			}
			row.AuthorName = name
		}
		out = append(out, row)
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(out))
}

func (h *WordHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	var req models.SaveWordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validate(w, "CreateWord", req.Validate()) {
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	word := models.Word{CreatedBy: middleware.GetUserID(r.Context())}
	req.Apply(&word)
	created, err := h.words.Save(ctx, &word)
	if err != nil {
		writeServiceError(w, "CreateWord", err, "Failed to create word")
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(created))
}

func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	word, err := h.words.GetByID(ctx, chi.URLParam(r, "wordId"))
	if err != nil {
		writeServiceError(w, "GetWord", err, "Failed to get word")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(word))
}

func (h *WordHandler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	var req models.SaveWordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validate(w, "UpdateWord", req.Validate()) {
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	word, err := h.words.GetByID(ctx, chi.URLParam(r, "wordId"))
	if err != nil {
		writeServiceError(w, "UpdateWord", err, "Failed to update word")
		return
	}
	req.Apply(word)
	updated, err := h.words.Save(ctx, word)
	if err != nil {
		writeServiceError(w, "UpdateWord", err, "Failed to update word")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(updated))
}

func (h *WordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.words.Delete(ctx, chi.URLParam(r, "wordId")); err != nil {
		writeServiceError(w, "DeleteWord", err, "Failed to delete word")
		return
	}
	writeJSON(w, http.StatusOK, models.NewMessageResponse("Word deleted"))
}

func (h *WordHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	status := models.WordStatus(req.Status)
	if !status.Valid() {
		validate(w, "UpdateWordStatus", map[string]string{"status": "Unknown status"})
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.words.UpdateStatus(ctx, chi.URLParam(r, "wordId"), status); err != nil {
		writeServiceError(w, "UpdateWordStatus", err, "Failed to update status")
		return
	}
	writeJSON(w, http.StatusOK, models.NewMessageResponse("Status updated"))
}

func (h *WordHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.words.IncrementViews(ctx, chi.URLParam(r, "wordId")); err != nil {
		writeServiceError(w, "RecordView", err, "Failed to record view")
		return
	}
	writeJSON(w, http.StatusOK, models.NewMessageResponse("View recorded"))
}

// Search lists active words starting with ?q=.
func (h *WordHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeJSON(w, http.StatusOK, models.NewSuccessResponse([]*models.Word{}))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	words, err := h.words.Search(ctx, q, queryInt(r, "limit", 0))
	if err != nil {
		writeServiceError(w, "SearchWords", err, "Failed to search words")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(words))
}

func (h *WordHandler) Trending(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	words, err := h.words.Trending(ctx, queryInt(r, "limit", 0))
	if err != nil {
		writeServiceError(w, "Trending", err, "Failed to list trending words")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(words))
}

func (h *WordHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	comments, err := h.comments.ListByWord(ctx, chi.URLParam(r, "wordId"))
	if err != nil {
		writeServiceError(w, "ListWordComments", err, "Failed to list comments")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(comments))
}
