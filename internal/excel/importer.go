// Package excel imports custom word-bank entries from Excel or CSV files.
package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alhaannn/wordwings-prototype/internal/database"
	"github.com/alhaannn/wordwings-prototype/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath         string // Path to the Excel or CSV file
	WordColumn       int    // Column with the word (0-based)
	DefinitionColumn int    // Column with the definition
	ExampleColumn    int    // Column with the example sentence
	DifficultyColumn int    // Column with the difficulty (easy/medium/hard)
	ImageHintColumn  int    // Column with the image hint keywords
	SheetName        string // Name of the sheet to import
	StartRow         int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:         path,
		WordColumn:       0,
		DefinitionColumn: 1,
		ExampleColumn:    2,
		DifficultyColumn: 3,
		ImageHintColumn:  4,
		SheetName:        "Sheet1",
		StartRow:         2, // Skip the header row
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// ImportWords imports word-bank entries from an Excel or CSV file
func ImportWords(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config)
	}
	return importFromExcel(config)
}

// importFromExcel imports words from an Excel file
func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	repo := database.NewCustomWordRepository()
	result := &ImportResult{Errors: make([]string, 0)}

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++
		if err := processRow(row, config, repo, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

// importFromCSV imports words from a CSV file
func importFromCSV(config ImportConfig) (*ImportResult, error) {
	f, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // Rows may have trailing empty columns

	repo := database.NewCustomWordRepository()
	result := &ImportResult{Errors: make([]string, 0)}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %v", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++
		if err := processRow(row, config, repo, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return result, nil
}

// cell returns a trimmed column value, tolerating short rows
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// processRow validates one spreadsheet row and upserts it into the word bank
func processRow(row []string, config ImportConfig, repo *database.CustomWordRepository, result *ImportResult) error {
	word := strings.ToLower(cell(row, config.WordColumn))
	definition := cell(row, config.DefinitionColumn)

	if word == "" || definition == "" {
		result.Skipped++
		return nil
	}

	difficulty := models.Difficulty(strings.ToLower(cell(row, config.DifficultyColumn)))
	if !difficulty.IsValid() {
		difficulty = models.DifficultyEasy
	}

	entry := models.NewWord{
		Word:       word,
		Definition: definition,
		Example:    cell(row, config.ExampleColumn),
		Difficulty: difficulty,
		ImageHint:  cell(row, config.ImageHintColumn),
	}

	exists, err := repo.Exists(word)
	if err != nil {
		return err
	}

	if exists {
		if err := repo.Update(entry); err != nil {
			return err
		}
		result.Updated++
		return nil
	}

	if err := repo.Create(entry); err != nil {
		return err
	}
	result.Created++
	return nil
}
