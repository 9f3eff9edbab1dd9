package database

import (
	"encoding/json"
	"fmt"

	"github.com/alhaannn/wordwings-prototype/pkg/models"
)

// QuizRepository handles database operations for the per-user quiz bank
type QuizRepository struct{}

// NewQuizRepository creates a new repository instance
func NewQuizRepository() *QuizRepository {
	return &QuizRepository{}
}

// Insert stores a quiz question in the user's bank. Options are stored as a
// JSON array in a text column.
func (r *QuizRepository) Insert(userID string, q models.QuizQuestion) error {
	optionsJSON, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("failed to marshal options: %v", err)
	}

	query := rebind(`
		INSERT INTO quiz_questions (user_id, word, question, options, correct_answer, difficulty)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	_, err = DB.Exec(query, userID, q.Word, q.Question, string(optionsJSON), q.CorrectAnswer, string(q.Difficulty))
	if err != nil {
		return fmt.Errorf("failed to insert quiz question: %v", err)
	}
	return nil
}

// List returns the user's quiz bank in insertion order
func (r *QuizRepository) List(userID string) ([]models.QuizQuestion, error) {
	query := rebind("SELECT word, question, options, correct_answer, difficulty FROM quiz_questions WHERE user_id = ? ORDER BY id")
	rows, err := DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz questions: %v", err)
	}
	defer rows.Close()

	var questions []models.QuizQuestion
	for rows.Next() {
		var q models.QuizQuestion
		var optionsJSON string
		if err := rows.Scan(&q.Word, &q.Question, &optionsJSON, &q.CorrectAnswer, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("failed to scan quiz question: %v", err)
		}
		if err := json.Unmarshal([]byte(optionsJSON), &q.Options); err != nil {
			return nil, fmt.Errorf("failed to parse options: %v", err)
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}
