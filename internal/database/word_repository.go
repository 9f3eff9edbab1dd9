package database

import (
	"fmt"
	"time"

	"github.com/alhaannn/wordwings-prototype/pkg/models"
)

// WordRepository handles database operations for mastered words
type WordRepository struct{}

// NewWordRepository creates a new repository instance
func NewWordRepository() *WordRepository {
	return &WordRepository{}
}

// InsertMastered records a newly mastered word for the user
func (r *WordRepository) InsertMastered(userID, word string, masteredAt time.Time) error {
	query := rebind("INSERT INTO mastered_words (user_id, word, mastered_at) VALUES (?, ?, ?)")
	if _, err := DB.Exec(query, userID, word, masteredAt); err != nil {
		return fmt.Errorf("failed to insert mastered word: %v", err)
	}
	return nil
}

// ListMastered returns all words the user has mastered, oldest first
func (r *WordRepository) ListMastered(userID string) ([]models.MasteredWord, error) {
	var words []models.MasteredWord
	query := rebind("SELECT id, user_id, word, mastered_at FROM mastered_words WHERE user_id = ? ORDER BY mastered_at")
	if err := DB.Select(&words, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list mastered words: %v", err)
	}
	return words, nil
}
