package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/alhaannn/wordwings-prototype/pkg/models"
)

// CustomWordRepository handles database operations for the imported word bank
type CustomWordRepository struct{}

// NewCustomWordRepository creates a new repository instance
func NewCustomWordRepository() *CustomWordRepository {
	return &CustomWordRepository{}
}

// Exists reports whether a word is already present in the bank
func (r *CustomWordRepository) Exists(word string) (bool, error) {
	var id int64
	query := rebind("SELECT id FROM custom_words WHERE word = ?")
	err := DB.Get(&id, query, word)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check for custom word: %v", err)
	}
	return true, nil
}

// Create inserts a word into the bank
func (r *CustomWordRepository) Create(w models.NewWord) error {
	query := rebind(`
		INSERT INTO custom_words (word, definition, example, difficulty, image_hint)
		VALUES (?, ?, ?, ?, ?)
	`)
	_, err := DB.Exec(query, w.Word, w.Definition, w.Example, string(w.Difficulty), w.ImageHint)
	if err != nil {
		return fmt.Errorf("failed to create custom word: %v", err)
	}
	return nil
}

// Update replaces the stored definition, example, difficulty and image hint
func (r *CustomWordRepository) Update(w models.NewWord) error {
	query := rebind(`
		UPDATE custom_words SET definition = ?, example = ?, difficulty = ?, image_hint = ?
		WHERE word = ?
	`)
	_, err := DB.Exec(query, w.Definition, w.Example, string(w.Difficulty), w.ImageHint, w.Word)
	if err != nil {
		return fmt.Errorf("failed to update custom word: %v", err)
	}
	return nil
}

// GetAll returns the whole imported word bank
func (r *CustomWordRepository) GetAll() ([]models.NewWord, error) {
	query := "SELECT word, definition, example, difficulty, image_hint FROM custom_words ORDER BY word"
	rows, err := DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom words: %v", err)
	}
	defer rows.Close()

	var words []models.NewWord
	for rows.Next() {
		var w models.NewWord
		if err := rows.Scan(&w.Word, &w.Definition, &w.Example, &w.Difficulty, &w.ImageHint); err != nil {
			return nil, fmt.Errorf("failed to scan custom word: %v", err)
		}
		words = append(words, w)
	}

	return words, rows.Err()
}
