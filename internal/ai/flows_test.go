package ai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alhaannn/wordwings-prototype/pkg/models"
)

// fakeServer returns an httptest server that always replies with the given
// content as the first chat choice
func fakeServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Contains(t, r.Header.Get("Authorization"), "Bearer ")

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func testClient(url string) *Client {
	return &Client{
		apiKey:      "test-key",
		apiURL:      url,
		model:       "gpt-4o-mini",
		temperature: 0.7,
		httpClient:  &http.Client{},
	}
}

func TestGenerateQuizQuestion(t *testing.T) {
	content := `{"question": "What does 'serene' mean?", "options": ["Calm", "Loud", "Fast", "Angry"], "correctAnswer": "Calm"}`
	server := fakeServer(t, content)
	defer server.Close()

	c := testClient(server.URL)
	q, err := c.GenerateQuizQuestion(QuizQuestionInput{
		Word:       "serene",
		Definition: "Calm, peaceful, and untroubled.",
		Difficulty: models.DifficultyEasy,
	})
	require.NoError(t, err)

	assert.Equal(t, "serene", q.Word)
	assert.Equal(t, models.DifficultyEasy, q.Difficulty)
	assert.Len(t, q.Options, 4)
	assert.True(t, q.HasCorrectOption())
}

func TestGenerateQuizQuestionRejectsMissingAnswer(t *testing.T) {
	// The model claims an answer that is not among the options
	content := `{"question": "?", "options": ["A", "B", "C", "D"], "correctAnswer": "E"}`
	server := fakeServer(t, content)
	defer server.Close()

	c := testClient(server.URL)
	_, err := c.GenerateQuizQuestion(QuizQuestionInput{Word: "serene", Definition: "calm"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not among the options")
}

func TestGenerateQuizQuestionRejectsWrongOptionCount(t *testing.T) {
	content := `{"question": "?", "options": ["A", "B"], "correctAnswer": "A"}`
	server := fakeServer(t, content)
	defer server.Close()

	c := testClient(server.URL)
	_, err := c.GenerateQuizQuestion(QuizQuestionInput{Word: "serene", Definition: "calm"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 4 options")
}

func TestGenerateMiniNarrative(t *testing.T) {
	content := `{"narrative": "The serene lake gleamed under a vivid sky."}`
	server := fakeServer(t, content)
	defer server.Close()

	c := testClient(server.URL)
	out, err := c.GenerateMiniNarrative(NarrativeInput{
		TargetWords: []string{"serene", "vivid", "gleam"},
		Performance: QuizPerformance{CorrectAnswers: 3, TotalQuestions: 4},
		Topic:       "nature",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Narrative)
	assert.Equal(t, "Generated a mini-narrative using the target word list.", out.Progress)
}

func TestGenerateMiniNarrativeRequiresWords(t *testing.T) {
	c := testClient("http://unused.invalid")
	_, err := c.GenerateMiniNarrative(NarrativeInput{})
	require.Error(t, err)
}

func TestGenerateTopicWords(t *testing.T) {
	content := `{"words": [
		{"word": "tide", "definition": "The rise and fall of the sea.", "example": "The tide came in.", "difficulty": "easy", "imageHint": "ocean waves"},
		{"word": "reef", "definition": "A ridge of rock or coral.", "example": "Fish live in the reef.", "difficulty": "easy", "imageHint": "coral reef"},
		{"word": "buoy", "definition": "A floating marker.", "example": "The buoy bobbed in the water.", "difficulty": "easy", "imageHint": "harbor buoy"}
	]}`
	server := fakeServer(t, content)
	defer server.Close()

	c := testClient(server.URL)
	words, err := c.GenerateTopicWords(TopicWordsInput{Topic: "the sea", Difficulty: models.DifficultyEasy})
	require.NoError(t, err)

	require.Len(t, words, 3)
	for _, w := range words {
		assert.NotEmpty(t, w.Word)
		assert.NotEmpty(t, w.Definition)
		assert.Equal(t, models.DifficultyEasy, w.Difficulty)
	}
}

func TestGenerateTopicWordsRejectsWrongCount(t *testing.T) {
	content := `{"words": [{"word": "tide", "definition": "x", "example": "", "difficulty": "easy", "imageHint": ""}]}`
	server := fakeServer(t, content)
	defer server.Close()

	c := testClient(server.URL)
	_, err := c.GenerateTopicWords(TopicWordsInput{Topic: "the sea", Difficulty: models.DifficultyEasy})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 3 words")
}

func TestAdjustNarrativeDifficulty(t *testing.T) {
	content := `{"adjustedDifficulty": "hard", "reason": "Performance above 80%."}`
	server := fakeServer(t, content)
	defer server.Close()

	c := testClient(server.URL)
	out, err := c.AdjustNarrativeDifficulty(DifficultyInput{
		QuizPerformance:   90,
		TargetWordList:    []string{"serene"},
		CurrentDifficulty: models.DifficultyMedium,
	})
	require.NoError(t, err)

	assert.Equal(t, models.DifficultyHard, out.AdjustedDifficulty)
	assert.NotEmpty(t, out.Reason)
}

func TestAdjustNarrativeDifficultyRejectsInvalidLevel(t *testing.T) {
	content := `{"adjustedDifficulty": "impossible", "reason": "?"}`
	server := fakeServer(t, content)
	defer server.Close()

	c := testClient(server.URL)
	_, err := c.AdjustNarrativeDifficulty(DifficultyInput{CurrentDifficulty: models.DifficultyEasy})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid adjusted difficulty")
}

func TestAPIErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "rate limit exceeded"},
		})
	}))
	defer server.Close()

	c := testClient(server.URL)
	_, err := c.GenerateMiniNarrative(NarrativeInput{TargetWords: []string{"serene"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestCodeFenceStripped(t *testing.T) {
	content := "```json\n{\"narrative\": \"A story.\"}\n```"
	server := fakeServer(t, content)
	defer server.Close()

	c := testClient(server.URL)
	out, err := c.GenerateMiniNarrative(NarrativeInput{TargetWords: []string{"serene"}})
	require.NoError(t, err)
	assert.Equal(t, "A story.", out.Narrative)
}

func TestQuizPerformancePercent(t *testing.T) {
	assert.Equal(t, 0, QuizPerformance{}.Percent())
	assert.Equal(t, 75, QuizPerformance{CorrectAnswers: 3, TotalQuestions: 4}.Percent())
	assert.Equal(t, 100, QuizPerformance{CorrectAnswers: 4, TotalQuestions: 4}.Percent())
}
