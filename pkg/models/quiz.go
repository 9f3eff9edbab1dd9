package models

// QuizDifficulty is a quiz selection filter: a single difficulty level or "mixed"
type QuizDifficulty string

const (
	// QuizEasy selects easy questions only
	QuizEasy QuizDifficulty = "easy"
	// QuizMedium selects medium questions only
	QuizMedium QuizDifficulty = "medium"
	// QuizHard selects hard questions only
	QuizHard QuizDifficulty = "hard"
	// QuizMixed selects questions of every difficulty
	QuizMixed QuizDifficulty = "mixed"
)

// QuizQuestion is a multiple-choice question testing one word.
// A user's quiz bank holds at most one question per word.
type QuizQuestion struct {
	Word          string     `json:"word" db:"word"`
	Question      string     `json:"question" db:"question"`
	Options       []string   `json:"options" db:"-"` // Exactly 4 options; stored as a JSON column
	CorrectAnswer string     `json:"correct_answer" db:"correct_answer"`
	Difficulty    Difficulty `json:"difficulty" db:"difficulty"`
}

// HasCorrectOption reports whether the correct answer appears among the options
func (q QuizQuestion) HasCorrectOption() bool {
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return true
		}
	}
	return false
}
