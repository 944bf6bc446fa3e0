package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dicoslang/backoffice/internal/middleware"
	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

type AccountHandler struct {
	accounts *services.AccountService
}

func NewAccountHandler(accounts *services.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// DeleteAccount deletes a user with their comments, votes, suggestions and
// reports, and returns the removed ids.
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == middleware.GetUserID(r.Context()) {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Cannot delete your own account"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), services.DefaultAccountTimeout())
	defer cancel()

	result, err := h.accounts.DeleteAccount(ctx, userID)
	if err != nil {
		writeServiceError(w, "DeleteAccount", err, "Failed to delete account")
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(result))
}
