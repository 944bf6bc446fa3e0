package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dicoslang/backoffice/internal/middleware"
	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

type CommentHandler struct {
	comments   services.CommentService
	users      services.UserService
	moderation *services.ModerationService
}

func NewCommentHandler(store *services.Store, moderation *services.ModerationService) *CommentHandler {
	return &CommentHandler{comments: store.Comments, users: store.Users, moderation: moderation}
}

// ListComments returns comments newest first with author pseudos, filtered
// by ?userId= when given.
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var (
		comments []*models.Comment
		err      error
	)
	if userID := r.URL.Query().Get("userId"); userID != "" {
		comments, err = h.comments.ListByUser(ctx, userID)
	} else {
		comments, err = h.comments.List(ctx)
	}
	if err != nil {
		writeServiceError(w, "ListComments", err, "Failed to list comments")
		return
	}

	names := make(map[string]string)
	out := make([]models.CommentWithAuthor, 0, len(comments))
	for _, c := range comments {
		name, ok := names[c.UserID]
		if !ok {
			name = "Inconnu"
			if u, err := h.users.GetByID(ctx, c.UserID); err == nil {
				name = u.Username
			}
			names[c.UserID] = name
		}
		out = append(out, models.CommentWithAuthor{Comment: *c, AuthorName: name})
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(out))
}

func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validate(w, "CreateComment", req.Validate()) {
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	c, err := h.comments.Create(ctx, &models.Comment{
		WordID: req.WordID,
		UserID: req.UserID,
		Text:   strings.TrimSpace(req.Text),
	})
	if err != nil {
		writeServiceError(w, "CreateComment", err, "Failed to create comment")
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(c))
}

func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	c, err := h.comments.GetByID(ctx, chi.URLParam(r, "commentId"))
	if err != nil {
		writeServiceError(w, "GetComment", err, "Failed to get comment")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(c))
}

func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		validate(w, "UpdateComment", map[string]string{"text": "Text is required"})
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	c, err := h.comments.UpdateText(ctx, chi.URLParam(r, "commentId"), text)
	if err != nil {
		writeServiceError(w, "UpdateComment", err, "Failed to update comment")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(c))
}

func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.comments.Delete(ctx, chi.URLParam(r, "commentId")); err != nil {
		writeServiceError(w, "DeleteComment", err, "Failed to delete comment")
		return
	}
	writeJSON(w, http.StatusOK, models.NewMessageResponse("Comment deleted"))
}

func (h *CommentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	status := models.CommentStatus(req.Status)
	if !status.Valid() {
		validate(w, "UpdateCommentStatus", map[string]string{"status": "Unknown status"})
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.comments.UpdateStatus(ctx, chi.URLParam(r, "commentId"), status); err != nil {
		writeServiceError(w, "UpdateCommentStatus", err, "Failed to update status")
		return
	}
	writeJSON(w, http.StatusOK, models.NewMessageResponse("Status updated"))
}

// ReportComment files a report. The reporter defaults to the caller.
func (h *CommentHandler) ReportComment(w http.ResponseWriter, r *http.Request) {
	var req models.ReportCommentRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}
	if req.ReporterID == "" {
		req.ReporterID = middleware.GetUserID(r.Context())
	}
	if !validate(w, "ReportComment", req.Validate()) {
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	report, err := h.moderation.ReportComment(ctx, chi.URLParam(r, "commentId"), &req)
	if err != nil {
		writeServiceError(w, "ReportComment", err, "Failed to report comment")
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(report))
}
