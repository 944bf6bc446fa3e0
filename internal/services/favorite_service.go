package services

import (
	"context"
	"errors"

	"github.com/dicoslang/backoffice/internal/models"
)

// FavoriteService manages a user's favoris list.
type FavoriteService struct {
	users UserService
	words WordService
}

func NewFavoriteService(store *Store) *FavoriteService {
	return &FavoriteService{users: store.Users, words: store.Words}
}

// AddFavorite adds wordID to the user's favorites. Adding twice is a no-op.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID, wordID string) error {
	if _, err := s.words.GetByID(ctx, wordID); err != nil {
		return err
	}
	return s.users.AddFavorite(ctx, userID, wordID)
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, wordID string) error {
	return s.users.RemoveFavorite(ctx, userID, wordID)
}

// ListUserFavorites resolves the user's favorite words. Words deleted since
// they were favorited are skipped.
func (s *FavoriteService) ListUserFavorites(ctx context.Context, userID string) ([]*models.Word, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	words := make([]*models.Word, 0, len(u.Favorites))
	for _, id := range u.Favorites {
		w, err := s.words.GetByID(ctx, id)
		if errors.Is(err, ErrWordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, nil
}
