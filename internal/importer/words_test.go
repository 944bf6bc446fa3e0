package importer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellName, &row))
	}
	path := filepath.Join(t.TempDir(), "mots.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportWords(t *testing.T) {
	ctx := context.Background()
	store := services.NewMemoryStore()

	existing, err := store.Words.Save(ctx, &models.Word{
		Text:       "Wesh",
		Definition: "ancienne définition",
		Status:     models.WordStatusActive,
		LikesCount: 4,
	})
	require.NoError(t, err)

	path := writeWorkbook(t, [][]interface{}{
		{"mot", "définition", "exemple", "origine", "tags"},
		{"wesh", "Salutation", "Wesh ça va ?", "arabe", "salut, rue"},
		{"chelou", "Bizarre", "", "verlan de louche", ""},
		{"sansdef", ""},
	})

	cfg := DefaultWordImportConfig()
	cfg.FilePath = path
	result, err := ImportWords(ctx, store.Words, cfg)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Row 4")

	updated, err := store.Words.GetByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Salutation", updated.Definition)
	assert.Equal(t, models.WordStatusActive, updated.Status)
	assert.Equal(t, 4, updated.LikesCount)
	assert.Equal(t, []string{"salut", "rue"}, updated.Tags)

	pending, err := store.Words.ListByStatus(ctx, models.WordStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "chelou", pending[0].Text)
	assert.Equal(t, "verlan de louche", pending[0].Origin)
}

func TestImportWordsMissingFile(t *testing.T) {
	cfg := DefaultWordImportConfig()
	cfg.FilePath = filepath.Join(t.TempDir(), "absent.xlsx")

	_, err := ImportWords(context.Background(), services.NewMemoryStore().Words, cfg)
	assert.Error(t, err)
}

func TestCell(t *testing.T) {
	row := []string{" a ", "b"}
	assert.Equal(t, "a", cell(row, "A"))
	assert.Equal(t, "b", cell(row, "B"))
	assert.Equal(t, "", cell(row, "C"))
	assert.Equal(t, "", cell(row, ""))
	assert.Equal(t, []string{}, splitTags(" , "))
	assert.True(t, isBlankRow([]string{"", "  "}))
	assert.False(t, isBlankRow([]string{"", "x"}))
}
