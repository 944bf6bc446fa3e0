package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

// WordImportConfig describes where each field sits in the spreadsheet.
type WordImportConfig struct {
	FilePath         string
	SheetName        string // empty means the first sheet
	StartRow         int    // 1-based, 2 skips a header row
	TextColumn       string
	DefinitionColumn string
	ExampleColumn    string
	OriginColumn     string
	TagsColumn       string // comma separated
	Status           models.WordStatus
}

func DefaultWordImportConfig() WordImportConfig {
	return WordImportConfig{
		StartRow:         2,
		TextColumn:       "A",
		DefinitionColumn: "B",
		ExampleColumn:    "C",
		OriginColumn:     "D",
		TagsColumn:       "E",
		Status:           models.WordStatusPending,
	}
}

// ImportResult holds the outcome of a spreadsheet import.
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// ImportWords reads a workbook and upserts one word per row. Rows are matched
// to existing words by text, ignoring case; a match is updated in place and
// keeps its counters.
func ImportWords(ctx context.Context, words services.WordService, cfg WordImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	return importWorkbook(ctx, words, f, cfg)
}

func importWorkbook(ctx context.Context, words services.WordService, f *excelize.File, cfg WordImportConfig) (*ImportResult, error) {
	sheet := cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	existing, err := words.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	byText := make(map[string]*models.Word, len(existing))
	for _, w := range existing {
		byText[normalizeText(w.Text)] = w
	}

	result := &ImportResult{Errors: make([]string, 0)}
	startRow := cfg.StartRow
	if startRow < 1 {
		startRow = 1
	}

	for i, row := range rows {
		if i < startRow-1 {
			continue
		}
		if isBlankRow(row) {
			result.Skipped++
			continue
		}
		result.TotalProcessed++

		if err := importRow(ctx, words, row, cfg, byText, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

func importRow(ctx context.Context, words services.WordService, row []string, cfg WordImportConfig, byText map[string]*models.Word, result *ImportResult) error {
	req := models.SaveWordRequest{
		Text:       cell(row, cfg.TextColumn),
		Definition: cell(row, cfg.DefinitionColumn),
		Example:    cell(row, cfg.ExampleColumn),
		Origin:     cell(row, cfg.OriginColumn),
		Status:     cfg.Status,
		Tags:       splitTags(cell(row, cfg.TagsColumn)),
	}
	if errs := req.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid row: %v", errs)
	}

	key := normalizeText(req.Text)
	target := &models.Word{}
	if found, ok := byText[key]; ok {
		copied := *found
		target = &copied
		// An import never demotes an active word.
		if target.Status == models.WordStatusActive {
			req.Status = models.WordStatusActive
		}
	}
	req.Apply(target)

	saved, err := words.Save(ctx, target)
	if err != nil {
		return err
	}
	if _, ok := byText[key]; ok {
		result.Updated++
	} else {
		result.Created++
	}
	byText[key] = saved
	return nil
}

// cell returns the trimmed value at column letter col, or "" if absent.
func cell(row []string, col string) string {
	if col == "" {
		return ""
	}
	idx, err := excelize.ColumnNameToNumber(col)
	if err != nil || idx > len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx-1])
}

func splitTags(raw string) []string {
	tags := make([]string, 0)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
