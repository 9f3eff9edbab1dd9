package ai

import (
	"fmt"
	"strings"

	"github.com/alhaannn/wordwings-prototype/pkg/models"
)

const systemPrompt = "You are a helpful assistant for a vocabulary-learning game. Always answer with valid JSON matching the requested fields exactly."

// QuizPerformance summarizes past quiz results
type QuizPerformance struct {
	CorrectAnswers int `json:"correctAnswers"`
	TotalQuestions int `json:"totalQuestions"`
}

// Percent returns the performance as a 0-100 percentage
func (p QuizPerformance) Percent() int {
	if p.TotalQuestions == 0 {
		return 0
	}
	return p.CorrectAnswers * 100 / p.TotalQuestions
}

// NarrativeInput is the input for mini-narrative generation
type NarrativeInput struct {
	TargetWords []string
	Performance QuizPerformance
	Topic       string // Optional
}

// NarrativeOutput is the generated mini-narrative plus a one-line summary
type NarrativeOutput struct {
	Narrative string `json:"narrative"`
	Progress  string `json:"progress"`
}

// GenerateMiniNarrative generates a short story containing the target words.
// Complexity steering by quiz performance is delegated to the model through
// the prompt, not computed locally.
func (c *Client) GenerateMiniNarrative(input NarrativeInput) (*NarrativeOutput, error) {
	if len(input.TargetWords) == 0 {
		return nil, fmt.Errorf("target word list is empty")
	}

	var sb strings.Builder
	sb.WriteString("You are a story generator that creates mini-narratives for language learners.\n\n")
	fmt.Fprintf(&sb, "The narrative should include the following target words: %s.\n\n", strings.Join(input.TargetWords, ", "))
	if input.Topic != "" {
		fmt.Fprintf(&sb, "The story should be about the following topic: %s.\n\n", input.Topic)
	}
	sb.WriteString("Consider the learner's past quiz performance when generating the story. ")
	sb.WriteString("If the learner has a high percentage of correct answers, generate a more complex narrative. Otherwise, generate a simpler narrative.\n\n")
	fmt.Fprintf(&sb, "Here is the learner's past quiz performance:\nCorrect Answers: %d\nTotal Questions: %d\n\n",
		input.Performance.CorrectAnswers, input.Performance.TotalQuestions)
	sb.WriteString("Generate a narrative that is engaging and appropriate for the learner's level.\n")
	sb.WriteString(`Reply with JSON: {"narrative": "..."}`)

	var out NarrativeOutput
	if err := c.completeInto(systemPrompt, sb.String(), 600, &out); err != nil {
		return nil, err
	}
	if out.Narrative == "" {
		return nil, fmt.Errorf("generated narrative is empty")
	}

	out.Progress = "Generated a mini-narrative using the target word list."
	return &out, nil
}

// QuizQuestionInput is the input for quiz question generation
type QuizQuestionInput struct {
	Word       string
	Definition string
	Difficulty models.Difficulty
}

// GenerateQuizQuestion generates a multiple-choice question for a word.
// The model's output is checked locally: exactly four options, with the
// correct answer among them. Schema compliance alone cannot guarantee that.
func (c *Client) GenerateQuizQuestion(input QuizQuestionInput) (*models.QuizQuestion, error) {
	if input.Word == "" {
		return nil, fmt.Errorf("word is required")
	}

	prompt := fmt.Sprintf(`You are an expert in creating educational content. Your task is to generate a multiple-choice quiz question for a language learner based on the provided word and definition.

Word: %s
Definition: %s

Instructions:
1. Create a clear and concise question that tests the learner's understanding of the word's meaning. The question could be "What does '%s' mean?" or a sentence completion.
2. Provide four distinct options.
3. One of the options must be the correct answer, which should be the definition or a close synonym.
4. The other three options must be plausible but incorrect distractors.
5. Ensure the correctAnswer field contains the exact text of the correct option.

Reply with JSON: {"question": "...", "options": ["...", "...", "...", "..."], "correctAnswer": "..."}`,
		input.Word, input.Definition, input.Word)

	var out struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correctAnswer"`
	}
	if err := c.completeInto(systemPrompt, prompt, 300, &out); err != nil {
		return nil, err
	}

	question := models.QuizQuestion{
		Word:          input.Word,
		Question:      out.Question,
		Options:       out.Options,
		CorrectAnswer: out.CorrectAnswer,
		Difficulty:    input.Difficulty,
	}

	if len(question.Options) != 4 {
		return nil, fmt.Errorf("expected 4 options, got %d", len(question.Options))
	}
	if !question.HasCorrectOption() {
		return nil, fmt.Errorf("correct answer is not among the options")
	}

	return &question, nil
}

// TopicWordsInput is the input for topic word-list generation
type TopicWordsInput struct {
	Topic      string
	Difficulty models.Difficulty
}

// GenerateTopicWords generates exactly three vocabulary words for a topic
func (c *Client) GenerateTopicWords(input TopicWordsInput) ([]models.NewWord, error) {
	if input.Topic == "" {
		return nil, fmt.Errorf("topic is required")
	}

	prompt := fmt.Sprintf(`You are an expert linguist and educator. Your task is to generate a list of exactly 3 vocabulary words based on a user-provided topic and difficulty level.

Topic: %s
Difficulty: %s

For each word, you must provide:
1. word: The vocabulary word itself, relevant to the topic and matching the difficulty.
2. definition: A simple, clear definition suitable for a language learner.
3. example: A sentence that uses the word correctly in a context related to the topic.
4. difficulty: The difficulty level ('easy', 'medium', or 'hard'), matching the request.
5. imageHint: Two or three descriptive keywords for finding a relevant stock photo.

Generate exactly 3 words.
Reply with JSON: {"words": [{"word": "...", "definition": "...", "example": "...", "difficulty": "%s", "imageHint": "..."}]}`,
		input.Topic, input.Difficulty, input.Difficulty)

	var out struct {
		Words []struct {
			Word       string `json:"word"`
			Definition string `json:"definition"`
			Example    string `json:"example"`
			Difficulty string `json:"difficulty"`
			ImageHint  string `json:"imageHint"`
		} `json:"words"`
	}
	if err := c.completeInto(systemPrompt, prompt, 500, &out); err != nil {
		return nil, err
	}

	if len(out.Words) != 3 {
		return nil, fmt.Errorf("expected 3 words, got %d", len(out.Words))
	}

	words := make([]models.NewWord, 0, len(out.Words))
	for _, w := range out.Words {
		if w.Word == "" || w.Definition == "" {
			return nil, fmt.Errorf("generated word entry is incomplete")
		}
		difficulty := models.Difficulty(w.Difficulty)
		if !difficulty.IsValid() {
			difficulty = input.Difficulty
		}
		words = append(words, models.NewWord{
			Word:       w.Word,
			Definition: w.Definition,
			Example:    w.Example,
			Difficulty: difficulty,
			ImageHint:  w.ImageHint,
		})
	}

	return words, nil
}

// DifficultyInput is the input for difficulty adjustment
type DifficultyInput struct {
	QuizPerformance   int // Percentage 0-100
	TargetWordList    []string
	CurrentDifficulty models.Difficulty
}

// DifficultyOutput is the adjusted difficulty with the model's reasoning
type DifficultyOutput struct {
	AdjustedDifficulty models.Difficulty `json:"adjustedDifficulty"`
	Reason             string            `json:"reason"`
}

// AdjustNarrativeDifficulty asks the model whether the narrative difficulty
// should change. The >80 raise / <40 lower policy is advisory prompt text,
// not a rule enforced in code.
func (c *Client) AdjustNarrativeDifficulty(input DifficultyInput) (*DifficultyOutput, error) {
	prompt := fmt.Sprintf(`You are an AI narrative difficulty adjuster. You will take in the learner's quiz performance, the list of target words, and the current difficulty, and output an adjusted difficulty level.

Here is the learner's quiz performance: %d%%
Here is the list of target words: %s
Here is the current difficulty: %s

Based on this information, should the difficulty be adjusted? Explain your reasoning, and set the adjustedDifficulty field accordingly.
If the quiz performance is above 80%%, increase the difficulty. If the quiz performance is below 40%%, decrease the difficulty. Otherwise, keep the difficulty the same.

Reply with JSON: {"adjustedDifficulty": "easy|medium|hard", "reason": "..."}`,
		input.QuizPerformance, strings.Join(input.TargetWordList, ", "), input.CurrentDifficulty)

	var out DifficultyOutput
	if err := c.completeInto(systemPrompt, prompt, 200, &out); err != nil {
		return nil, err
	}

	if !out.AdjustedDifficulty.IsValid() {
		return nil, fmt.Errorf("invalid adjusted difficulty %q", out.AdjustedDifficulty)
	}

	return &out, nil
}
