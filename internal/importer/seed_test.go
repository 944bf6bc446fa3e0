package importer

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

const seedYAML = `
users:
  - id: admin-user-id
    pseudo: AdminSystem
    prenom: Admin
    email: admin@exemple.com
    age: 1995
    ville: Paris
    role: admin
    password: changeme123
  - id: user-standard-id
    pseudo: JeanUser
    prenom: Jean
    email: jean@exemple.com
    ville: Lyon
words:
  - id: mot-exemple-id
    text: Wesh
    definition: Expression de salutation
    status: active
    tags: [salutation]
suggestions:
  - id: suggestion-exemple-id
    userId: user-standard-id
    text: Chelou
    definition: Bizarre, louche
comments:
  - id: comment-exemple-id
    userId: user-standard-id
    wordId: mot-exemple-id
    text: Super définition, merci!
`

func TestApplySeed(t *testing.T) {
	ctx := context.Background()
	store := services.NewMemoryStore()

	seed, err := ParseSeed([]byte(seedYAML))
	require.NoError(t, err)

	result, err := ApplySeed(ctx, store, seed)
	require.NoError(t, err)
	assert.Equal(t, &SeedResult{Users: 2, Words: 1, Suggestions: 1, Comments: 1}, result)

	admin, err := store.Users.GetByID(ctx, "admin-user-id")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, 1995, admin.BirthYear)
	assert.NoError(t, services.CheckPassword(admin, "changeme123"))

	jean, err := store.Users.GetByID(ctx, "user-standard-id")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, jean.Role)
	assert.Empty(t, jean.PasswordHash)

	word, err := store.Words.GetByID(ctx, "mot-exemple-id")
	require.NoError(t, err)
	assert.Equal(t, models.WordStatusActive, word.Status)
	assert.Equal(t, []string{"salutation"}, word.Tags)

	sg, err := store.Suggestions.GetByID(ctx, "suggestion-exemple-id")
	require.NoError(t, err)
	assert.Equal(t, models.SuggestionStatusPending, sg.Status)

	again, err := ApplySeed(ctx, store, seed)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Skipped)
	assert.Equal(t, 2, again.Users)
}

func TestApplySeedRejectsInvalidUser(t *testing.T) {
	seed := &Seed{Users: []SeedUser{{Username: "sansmail"}}}

	_, err := ApplySeed(context.Background(), services.NewMemoryStore(), seed)
	assert.ErrorContains(t, err, "users[0]")
}

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o644))

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Len(t, seed.Users, 2)
	assert.Equal(t, "Paris", seed.Users[0].City)

	_, err = LoadSeed(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	_, err = ParseSeed([]byte("users: [oops"))
	assert.Error(t, err)
}
