package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dicoslang/backoffice/internal/models"
)

func mustUser(t *testing.T, store *Store, pseudo string) *models.User {
	t.Helper()
	u, err := store.Users.Save(context.Background(), &models.User{
		Username: pseudo,
		Email:    pseudo + "@exemple.com",
	})
	require.NoError(t, err)
	return u
}

func mustWord(t *testing.T, store *Store, text string, status models.WordStatus) *models.Word {
	t.Helper()
	w, err := store.Words.Save(context.Background(), &models.Word{
		Text:       text,
		Definition: "définition de " + text,
		Status:     status,
	})
	require.NoError(t, err)
	return w
}

func mustComment(t *testing.T, store *Store, author *models.User, word *models.Word, text string) *models.Comment {
	t.Helper()
	c, err := store.Comments.Create(context.Background(), &models.Comment{
		UserID: author.ID,
		WordID: word.ID,
		Text:   text,
	})
	require.NoError(t, err)
	return c
}
