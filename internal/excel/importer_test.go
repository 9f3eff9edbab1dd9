package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultImportConfig(t *testing.T) {
	config := DefaultImportConfig("words.xlsx")

	assert.Equal(t, "words.xlsx", config.FilePath)
	assert.Equal(t, "Sheet1", config.SheetName)
	assert.Equal(t, 2, config.StartRow, "the header row is skipped")
	assert.Equal(t, 0, config.WordColumn)
	assert.Equal(t, 1, config.DefinitionColumn)
}

func TestCellToleratesShortRows(t *testing.T) {
	row := []string{" serene ", "calm"}

	assert.Equal(t, "serene", cell(row, 0))
	assert.Equal(t, "calm", cell(row, 1))
	assert.Equal(t, "", cell(row, 4), "missing trailing columns read as empty")
	assert.Equal(t, "", cell(row, -1))
}
