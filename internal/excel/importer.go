// Package excel imports vocabulary word lists from Excel or CSV files.
package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/ydsbot/internal/database"
	"github.com/example/ydsbot/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath   string // Path to the Excel or CSV file
	WordColumn int    // Zero-based column holding the word
	SheetName  string // Name of the sheet to import
	SkipHeader bool   // Skip the first row
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:   path,
		WordColumn: 0,
		SheetName:  "Sheet1",
		SkipHeader: false,
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// ImportWords imports words from an Excel or CSV file. Words already in the
// database are skipped; new ones are created at level 0, due immediately.
func ImportWords(config ImportConfig, now time.Time) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config, now)
	}
	return importFromExcel(config, now)
}

// importFromExcel imports words from an Excel file
func importFromExcel(config ImportConfig, now time.Time) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %v", config.SheetName, err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		if config.SkipHeader && i == 0 {
			continue
		}
		if config.WordColumn >= len(row) {
			continue
		}
		importWord(row[config.WordColumn], now, result)
	}
	return result, nil
}

// importFromCSV imports words from a CSV file
func importFromCSV(config ImportConfig, now time.Time) (*ImportResult, error) {
	f, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	result := &ImportResult{Errors: make([]string, 0)}
	for i := 0; ; i++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		if config.SkipHeader && i == 0 {
			continue
		}
		if config.WordColumn >= len(row) {
			continue
		}
		importWord(row[config.WordColumn], now, result)
	}
	return result, nil
}

// importWord creates a single word unless it already exists
func importWord(text string, now time.Time, result *ImportResult) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return
	}
	result.TotalProcessed++

	repo := database.NewWordRepository()
	if _, err := repo.GetByText(text); err == nil {
		result.Skipped++
		return
	}

	word := models.NewWord(text, now)
	if err := repo.Create(word); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("word %q: %v", text, err))
		return
	}
	result.Created++
}
