package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alhaannn/wordwings-prototype/pkg/models"
)

func TestSampleQuizIntegrity(t *testing.T) {
	counts := make(map[models.Difficulty]int)
	for _, q := range SampleQuiz {
		assert.Len(t, q.Options, 4, "question for %q must have 4 options", q.Word)
		assert.True(t, q.HasCorrectOption(), "correct answer for %q must be among the options", q.Word)
		counts[q.Difficulty]++
	}

	assert.Equal(t, 2, counts[models.DifficultyEasy])
	assert.Equal(t, 2, counts[models.DifficultyMedium])
	assert.Equal(t, 2, counts[models.DifficultyHard])
}

func TestNewWordsBank(t *testing.T) {
	counts := make(map[models.Difficulty]int)
	seen := make(map[string]bool)
	for _, w := range NewWords {
		assert.NotEmpty(t, w.Definition, "word %q needs a definition", w.Word)
		assert.False(t, seen[w.Word], "word %q is listed twice", w.Word)
		seen[w.Word] = true
		counts[w.Difficulty]++
	}

	assert.Equal(t, 6, counts[models.DifficultyEasy])
	assert.Equal(t, 6, counts[models.DifficultyMedium])
	assert.Equal(t, 6, counts[models.DifficultyHard])
}

func TestMarketItemByID(t *testing.T) {
	item, ok := MarketItemByID("4")
	assert.True(t, ok)
	assert.Equal(t, "Compass", item.Name)
	assert.Equal(t, 50, item.Price)

	_, ok = MarketItemByID("999")
	assert.False(t, ok)
}

func TestEvalBadge(t *testing.T) {
	empty := StateSnapshot{}
	assert.False(t, EvalBadge(models.BadgeFirstWord, empty))
	assert.False(t, EvalBadge(models.BadgeTenWords, empty))
	assert.False(t, EvalBadge(models.BadgeFirstStory, empty))

	oneWord := StateSnapshot{MasteredWordCount: 1}
	assert.True(t, EvalBadge(models.BadgeFirstWord, oneWord))
	assert.False(t, EvalBadge(models.BadgeTenWords, oneWord))

	tenWords := StateSnapshot{MasteredWordCount: 10}
	assert.True(t, EvalBadge(models.BadgeTenWords, tenWords))

	oneStory := StateSnapshot{StoriesGenerated: 1}
	assert.True(t, EvalBadge(models.BadgeFirstStory, oneStory))

	assert.False(t, EvalBadge(models.BadgeKind("unknown"), tenWords), "unknown kinds never unlock")
}

func TestBadgeDefinitionsMatchKinds(t *testing.T) {
	for _, b := range AllBadges {
		assert.Equal(t, string(b.Kind), b.ID, "badge id and kind must agree for %s", b.Name)
	}
}
