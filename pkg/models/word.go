package models

import "time"

// Difficulty is the difficulty level of a word or quiz question
type Difficulty string

const (
	// DifficultyEasy marks beginner-level content
	DifficultyEasy Difficulty = "easy"
	// DifficultyMedium marks intermediate-level content
	DifficultyMedium Difficulty = "medium"
	// DifficultyHard marks advanced-level content
	DifficultyHard Difficulty = "hard"
)

// IsValid reports whether d is one of the known difficulty levels
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// MasteredWord records a word the user has answered correctly at least once.
// Rows are append-only: a word is never un-mastered or duplicated.
type MasteredWord struct {
	ID         int64     `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Word       string    `json:"word" db:"word"`
	MasteredAt time.Time `json:"mastered_at" db:"mastered_at"`
}

// NewWord is a vocabulary word offered on the learning screen
type NewWord struct {
	Word       string     `json:"word" db:"word"`
	Definition string     `json:"definition" db:"definition"`
	Example    string     `json:"example" db:"example"`
	Difficulty Difficulty `json:"difficulty" db:"difficulty"`
	ImageHint  string     `json:"image_hint" db:"image_hint"` // Keywords for finding an illustrative stock photo
}
