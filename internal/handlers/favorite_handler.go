package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID := chi.URLParam(r, "userId")
	wordID := chi.URLParam(r, "wordId")
	if err := h.favoriteService.AddFavorite(ctx, userID, wordID); err != nil {
		writeServiceError(w, "AddFavorite", err, "Failed to add favorite")
		return
	}
	writeJSON(w, http.StatusCreated, models.NewMessageResponse("Favorite added"))
}

func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID := chi.URLParam(r, "userId")
	wordID := chi.URLParam(r, "wordId")
	if err := h.favoriteService.RemoveFavorite(ctx, userID, wordID); err != nil {
		writeServiceError(w, "RemoveFavorite", err, "Failed to remove favorite")
		return
	}
	writeJSON(w, http.StatusOK, models.NewMessageResponse("Favorite removed"))
}

func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	words, err := h.favoriteService.ListUserFavorites(ctx, chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, "ListFavorites", err, "Failed to list favorites")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(words))
}
