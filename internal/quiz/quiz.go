// Package quiz selects questions from a user's quiz bank
package quiz

import (
	"math/rand"
	"time"

	"github.com/alhaannn/wordwings-prototype/pkg/models"
)

// Available filters the quiz bank down to the questions the user can still be
// asked: questions whose word is already mastered are excluded, and unless
// the selection is "mixed" only the requested difficulty remains.
func Available(bank []models.QuizQuestion, mastered map[string]time.Time, difficulty models.QuizDifficulty) []models.QuizQuestion {
	var available []models.QuizQuestion
	for _, q := range bank {
		if _, ok := mastered[q.Word]; ok {
			continue
		}
		if difficulty != models.QuizMixed && string(q.Difficulty) != string(difficulty) {
			continue
		}
		available = append(available, q)
	}
	return available
}

// Shuffle returns the questions in random order, leaving the input intact
func Shuffle(questions []models.QuizQuestion) []models.QuizQuestion {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	shuffled := append([]models.QuizQuestion(nil), questions...)
	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// Performance tallies quiz answers within a session
type Performance struct {
	Correct int
	Total   int
}

// Record counts one answered question
func (p *Performance) Record(correct bool) {
	p.Total++
	if correct {
		p.Correct++
	}
}

// Percent returns the score as a 0-100 percentage. An empty tally is 0.
func (p Performance) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return p.Correct * 100 / p.Total
}
