package bot

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Number of questions asked per quiz round
	QuizLength int
	// Maximum number of mastered words fed into a story
	StoryWordCount int
	// Difficulty used for topic word generation when the user has no preference
	DefaultDifficulty string
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		QuizLength:        5,
		StoryWordCount:    5,
		DefaultDifficulty: "medium",
	}
}
