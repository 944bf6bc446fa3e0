package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dicoslang/backoffice/internal/models"
)

func TestSaveUserDefaults(t *testing.T) {
	store := NewMemoryStore()
	u := mustUser(t, store, "nouveau")

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, models.UserStatusActive, u.Status)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.NotNil(t, u.Favorites)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestUpdateStatusClearsBanReason(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	u := mustUser(t, store, "banni")

	require.NoError(t, store.Users.Ban(ctx, u.ID, "spam"))
	got, err := store.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "spam", got.BanReason)

	require.NoError(t, store.Users.UpdateStatus(ctx, u.ID, models.UserStatusActive))
	got, err = store.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, got.Status)
	assert.Empty(t, got.BanReason)

	assert.ErrorIs(t, store.Users.UpdateStatus(ctx, u.ID, "suspended"), ErrInvalidStatus)
	assert.ErrorIs(t, store.Users.UpdateStatus(ctx, "missing", models.UserStatusActive), ErrUserNotFound)
}

func TestResetWarningsKeepsStatus(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	u := mustUser(t, store, "averti")

	for i := 0; i < models.WarningBanThreshold; i++ {
		_, err := store.Users.AddWarning(ctx, u.ID, "")
		require.NoError(t, err)
	}
	require.NoError(t, store.Users.ResetWarnings(ctx, u.ID))

	got, err := store.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Warnings)
	assert.Equal(t, models.UserStatusBanned, got.Status)
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("motdepasse")
	require.NoError(t, err)

	u := &models.User{PasswordHash: hash}
	assert.NoError(t, CheckPassword(u, "motdepasse"))
	assert.ErrorIs(t, CheckPassword(u, "autre"), ErrInvalidPassword)
	assert.ErrorIs(t, CheckPassword(&models.User{}, ""), ErrInvalidPassword)
}

func TestFavorites(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	favorites := NewFavoriteService(store)

	u := mustUser(t, store, "fan")
	kept := mustWord(t, store, "wesh", models.WordStatusActive)
	gone := mustWord(t, store, "disparu", models.WordStatusActive)

	require.NoError(t, favorites.AddFavorite(ctx, u.ID, kept.ID))
	require.NoError(t, favorites.AddFavorite(ctx, u.ID, kept.ID))
	require.NoError(t, favorites.AddFavorite(ctx, u.ID, gone.ID))
	assert.ErrorIs(t, favorites.AddFavorite(ctx, u.ID, "missing"), ErrWordNotFound)

	require.NoError(t, store.Words.Delete(ctx, gone.ID))

	words, err := favorites.ListUserFavorites(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, kept.ID, words[0].ID)

	require.NoError(t, favorites.RemoveFavorite(ctx, u.ID, kept.ID))
	got, err := store.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{gone.ID}, got.Favorites)
}

func TestWordSearchAndTrending(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	wesh := mustWord(t, store, "wesh", models.WordStatusActive)
	mustWord(t, store, "weshwesh", models.WordStatusActive)
	mustWord(t, store, "wesher", models.WordStatusPending)
	mustWord(t, store, "chelou", models.WordStatusActive)
	require.NoError(t, store.Words.AdjustLikes(ctx, wesh.ID, 3))

	found, err := store.Words.Search(ctx, "wesh", 0)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "wesh", found[0].Text)
	assert.Equal(t, "weshwesh", found[1].Text)

	trending, err := store.Words.Trending(ctx, 1)
	require.NoError(t, err)
	require.Len(t, trending, 1)
	assert.Equal(t, wesh.ID, trending[0].ID)
}
