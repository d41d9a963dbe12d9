package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/leximind/internal/database"
	"github.com/example/leximind/pkg/models"
)

// ImportConfig defines the vocabulary import configuration. Columns are
// spreadsheet letters for Excel files and map onto the same positions for
// CSV files.
type ImportConfig struct {
	FilePath          string // Path to the Excel or CSV file
	EnglishColumn     string // Column with the English word
	TranslationColumn string // Column with the translation
	CategoryColumn    string // Column with the category
	DifficultyColumn  string // Column with the difficulty (1-3)
	SheetName         string // Name of the sheet to import
	StartRow          int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration: header row
// skipped, columns A-D.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		EnglishColumn:     "A",
		TranslationColumn: "B",
		CategoryColumn:    "C",
		DifficultyColumn:  "D",
		SheetName:         "Sheet1",
		StartRow:          2,
	}
}

// ImportResult holds the result of an import operation.
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// ImportWords imports words from an Excel or CSV file into the pool.
// Existing (english, category) entries are updated rather than duplicated.
func ImportWords(ctx context.Context, words *database.WordRepository, config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(ctx, words, config)
	}
	return importFromExcel(ctx, words, config)
}

func importFromExcel(ctx context.Context, words *database.WordRepository, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++
		if err := processRow(ctx, words, row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}
	return result, nil
}

func importFromCSV(ctx context.Context, words *database.WordRepository, config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	result := &ImportResult{Errors: make([]string, 0)}
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}

		result.TotalProcessed++
		if err := processRow(ctx, words, row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}
	return result, nil
}

// processRow upserts a single spreadsheet row as a word.
func processRow(ctx context.Context, words *database.WordRepository, row []string, config ImportConfig, result *ImportResult) error {
	cell := func(column string) string {
		if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	english := cell(config.EnglishColumn)
	translation := cell(config.TranslationColumn)
	if english == "" || translation == "" {
		result.Skipped++
		return nil
	}

	difficulty := 1
	if raw := cell(config.DifficultyColumn); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 1 || d > 3 {
			return fmt.Errorf("invalid difficulty %q", raw)
		}
		difficulty = d
	}

	word := &models.Word{
		English:     english,
		Translation: translation,
		Category:    cell(config.CategoryColumn),
		Difficulty:  difficulty,
	}

	created, err := words.Upsert(ctx, word)
	if err != nil {
		return err
	}
	if created {
		result.Created++
	} else {
		result.Updated++
	}
	return nil
}

// columnToIndex converts a spreadsheet column letter ("A", "B", ... "AA")
// to a zero-based index.
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	idx := 0
	for _, c := range column {
		if c < 'A' || c > 'Z' {
			return -1
		}
		idx = idx*26 + int(c-'A') + 1
	}
	return idx - 1
}
