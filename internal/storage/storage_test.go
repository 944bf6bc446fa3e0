package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

func TestDirSinkWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export")
	sink, err := NewDirSink(dir)
	require.NoError(t, err)

	require.NoError(t, sink.Write(context.Background(), "words", []string{"wesh", "chelou"}))

	var got []string
	require.NoError(t, ReadFile(sink.Location("words"), &got))
	assert.Equal(t, []string{"wesh", "chelou"}, got)

	_, err = os.Stat(sink.Location("words") + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestDirSinkCanceled(t *testing.T) {
	sink, err := NewDirSink(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sink.Write(ctx, "users", nil), context.Canceled)
}

func TestParseBucketURI(t *testing.T) {
	tests := []struct {
		uri    string
		bucket string
		prefix string
		ok     bool
	}{
		{"gs://dicoslang-backups/2026/10", "dicoslang-backups", "2026/10", true},
		{"gs://dicoslang-backups", "dicoslang-backups", "", true},
		{"gs://dicoslang-backups/", "dicoslang-backups", "", true},
		{"gs://", "", "", false},
		{"./export", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, prefix, ok := ParseBucketURI(tt.uri)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.prefix, prefix)
		})
	}
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	store := services.NewMemoryStore()

	u, err := store.Users.Save(ctx, &models.User{Username: "alice", Email: "alice@exemple.com"})
	require.NoError(t, err)
	w, err := store.Words.Save(ctx, &models.Word{Text: "wesh", Definition: "salut", Status: models.WordStatusActive})
	require.NoError(t, err)
	_, err = store.Votes.Save(ctx, &models.Vote{UserID: u.ID, WordID: w.ID, Value: models.VoteLike})
	require.NoError(t, err)

	sink, err := NewDirSink(t.TempDir())
	require.NoError(t, err)

	result, err := Export(ctx, store, sink)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Counts[services.UsersCollection])
	assert.Equal(t, 1, result.Counts[services.WordsCollection])
	assert.Equal(t, 1, result.Counts[services.VotesCollection])
	assert.Equal(t, 0, result.Counts[services.CommentsCollection])

	var users []models.User
	require.NoError(t, ReadFile(sink.Location(services.UsersCollection), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
	assert.Empty(t, users[0].PasswordHash)

	var reports []models.CommentReport
	require.NoError(t, ReadFile(sink.Location(services.ReportsCollection), &reports))
	assert.Empty(t, reports)
}
