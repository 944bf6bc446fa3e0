package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dicoslang/backoffice/internal/middleware"
	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

type ModerationHandler struct {
	moderation *services.ModerationService
}

func NewModerationHandler(moderation *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation}
}

func (h *ModerationHandler) PendingReports(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	reports, err := h.moderation.PendingReports(ctx)
	if err != nil {
		writeServiceError(w, "PendingReports", err, "Failed to list reports")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(reports))
}

func (h *ModerationHandler) Block(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	adminID := middleware.GetUserID(r.Context())
	if err := h.moderation.BlockComment(ctx, chi.URLParam(r, "reportId"), adminID); err != nil {
		writeServiceError(w, "BlockComment", err, "Failed to block comment")
		return
	}
	writeJSON(w, http.StatusOK, models.NewMessageResponse("Comment blocked"))
}

// BlockAndWarn takes an optional {"reason": "..."} body used as ban reason.
func (h *ModerationHandler) BlockAndWarn(w http.ResponseWriter, r *http.Request) {
	var req models.ReasonRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	adminID := middleware.GetUserID(r.Context())
	outcome, err := h.moderation.BlockAndWarn(ctx, chi.URLParam(r, "reportId"), adminID, req.Reason)
	if err != nil {
		writeServiceError(w, "BlockAndWarn", err, "Failed to block and warn")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(outcome))
}

func (h *ModerationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	adminID := middleware.GetUserID(r.Context())
	if err := h.moderation.Dismiss(ctx, chi.URLParam(r, "reportId"), adminID); err != nil {
		writeServiceError(w, "DismissReport", err, "Failed to dismiss report")
		return
	}
	writeJSON(w, http.StatusOK, models.NewMessageResponse("Report dismissed"))
}
