// Package catalog holds the static game content: the market, the sample quiz,
// the built-in word bank and the badge definitions. Everything here is
// read-only and immutable after load.
package catalog

import "github.com/alhaannn/wordwings-prototype/pkg/models"

// MarketItems is the fixed market catalog
var MarketItems = []models.MarketItem{
	{ID: "1", Name: "Apple", Description: "A crisp, delicious apple.", Price: 5, Icon: "🍎", Category: models.CategoryFood},
	{ID: "2", Name: "Bread", Description: "A warm loaf of bread.", Price: 10, Icon: "🍞", Category: models.CategoryFood},
	{ID: "3", Name: "Hammer", Description: "A sturdy hammer.", Price: 25, Icon: "🔨", Category: models.CategoryTool},
	{ID: "4", Name: "Compass", Description: "Helps you find your way.", Price: 50, Icon: "🧭", Category: models.CategoryTool},
	{ID: "5", Name: "Shiny Stone", Description: "A beautiful, smooth stone.", Price: 15, Icon: "💎", Category: models.CategoryTrinket},
	{ID: "6", Name: "Feather", Description: "A light, colorful feather.", Price: 20, Icon: "🪶", Category: models.CategoryTrinket},
}

// MarketItemByID looks up a market item by its catalog identifier
func MarketItemByID(id string) (models.MarketItem, bool) {
	for _, item := range MarketItems {
		if item.ID == id {
			return item, true
		}
	}
	return models.MarketItem{}, false
}

// SampleQuiz is the starter quiz bank given to users who have no questions yet
var SampleQuiz = []models.QuizQuestion{
	{
		Word:          "brave",
		Question:      "What does 'brave' mean?",
		Options:       []string{"Scared", "Courageous", "Tired", "Hungry"},
		CorrectAnswer: "Courageous",
		Difficulty:    models.DifficultyEasy,
	},
	{
		Word:          "happy",
		Question:      "Which word means feeling or showing pleasure?",
		Options:       []string{"Sad", "Angry", "Happy", "Bored"},
		CorrectAnswer: "Happy",
		Difficulty:    models.DifficultyEasy,
	},
	{
		Word:          "explore",
		Question:      "What is a synonym for 'explore'?",
		Options:       []string{"Ignore", "Sleep", "Investigate", "Forget"},
		CorrectAnswer: "Investigate",
		Difficulty:    models.DifficultyMedium,
	},
	{
		Word:          "discover",
		Question:      "If you 'discover' something, you...",
		Options:       []string{"Lose it", "Find it", "Break it", "Eat it"},
		CorrectAnswer: "Find it",
		Difficulty:    models.DifficultyMedium,
	},
	{
		Word:          "journey",
		Question:      "A long 'journey' is a...",
		Options:       []string{"Nap", "Snack", "Trip", "Song"},
		CorrectAnswer: "Trip",
		Difficulty:    models.DifficultyHard,
	},
	{
		Word:          "eloquent",
		Question:      "What does it mean to be 'eloquent'?",
		Options:       []string{"Shy and quiet", "Fluent and persuasive", "Rude and abrupt", "Clumsy and awkward"},
		CorrectAnswer: "Fluent and persuasive",
		Difficulty:    models.DifficultyHard,
	},
}

// NewWords is the built-in word bank shown on the learning screen
var NewWords = []models.NewWord{
	// Easy
	{Word: "serene", Definition: "Calm, peaceful, and untroubled; tranquil.", Example: "The lake was serene and still in the early morning.", Difficulty: models.DifficultyEasy, ImageHint: "calm lake"},
	{Word: "vivid", Definition: "Producing powerful feelings or strong, clear images in the mind.", Example: "She had a vivid dream about flying over mountains.", Difficulty: models.DifficultyEasy, ImageHint: "colorful dream"},
	{Word: "cozy", Definition: "Giving a feeling of comfort, warmth, and relaxation.", Example: "We sat by the fire in the cozy cabin.", Difficulty: models.DifficultyEasy, ImageHint: "warm fireplace"},
	{Word: "gleam", Definition: "Shine brightly, especially with reflected light.", Example: "The polished floors started to gleam.", Difficulty: models.DifficultyEasy, ImageHint: "shiny floor"},
	{Word: "crisp", Definition: "Firm, dry, and brittle, fresh.", Example: "The autumn air was crisp and cool.", Difficulty: models.DifficultyEasy, ImageHint: "autumn leaves"},
	{Word: "gentle", Definition: "Having or showing a mild, kind, or tender temperament or character.", Example: "He had a gentle voice that calmed the child.", Difficulty: models.DifficultyEasy, ImageHint: "helping hand"},
	// Medium
	{Word: "ephemeral", Definition: "Lasting for a very short time.", Example: "The beauty of the cherry blossoms is ephemeral.", Difficulty: models.DifficultyMedium, ImageHint: "cherry blossoms"},
	{Word: "ubiquitous", Definition: "Present, appearing, or found everywhere.", Example: "Smartphones are now ubiquitous across the globe.", Difficulty: models.DifficultyMedium, ImageHint: "many smartphones"},
	{Word: "mellifluous", Definition: "A sound that is sweet and musical; pleasant to hear.", Example: "Her mellifluous voice enchanted the audience.", Difficulty: models.DifficultyMedium, ImageHint: "person singing"},
	{Word: "pensive", Definition: "Engaged in, involving, or reflecting deep or serious thought.", Example: "She looked pensive as she stared out the window.", Difficulty: models.DifficultyMedium, ImageHint: "thoughtful person"},
	{Word: "resilient", Definition: "Able to withstand or recover quickly from difficult conditions.", Example: "The small plant was resilient, surviving the harsh winter.", Difficulty: models.DifficultyMedium, ImageHint: "plant snow"},
	{Word: "eloquent", Definition: "Fluent or persuasive in speaking or writing.", Example: "The speaker delivered an eloquent and moving speech.", Difficulty: models.DifficultyMedium, ImageHint: "public speaker"},
	// Hard
	{Word: "pulchritudinous", Definition: "Having great physical beauty.", Example: "The pulchritudinous landscape was breathtaking.", Difficulty: models.DifficultyHard, ImageHint: "beautiful landscape"},
	{Word: "sesquipedalian", Definition: "Characterized by long words; long-winded.", Example: "His sesquipedalian speech was impressive but hard to follow.", Difficulty: models.DifficultyHard, ImageHint: "long book"},
	{Word: "anachronistic", Definition: "Belonging to a period other than that being portrayed.", Example: "A knight using a cellphone would be anachronistic.", Difficulty: models.DifficultyHard, ImageHint: "knight cellphone"},
	{Word: "perspicacious", Definition: "Having a ready insight into and understanding of things.", Example: "The perspicacious detective solved the case with a single clue.", Difficulty: models.DifficultyHard, ImageHint: "detective clue"},
	{Word: "ineffable", Definition: "Too great or extreme to be expressed or described in words.", Example: "The view from the summit was one of ineffable beauty.", Difficulty: models.DifficultyHard, ImageHint: "mountain summit"},
	{Word: "obfuscate", Definition: "Render obscure, unclear, or unintelligible.", Example: "The politician tried to obfuscate the issue with complex jargon.", Difficulty: models.DifficultyHard, ImageHint: "confused person"},
}

// AllBadges lists the badge definitions in evaluation order
var AllBadges = []models.Badge{
	{ID: "first-word", Name: "First Word Mastered", Description: "You learned your first word!", Icon: "⭐", Kind: models.BadgeFirstWord},
	{ID: "ten-words", Name: "Word Collector", Description: "Mastered 10 words.", Icon: "📚", Kind: models.BadgeTenWords},
	{ID: "first-story", Name: "Story Starter", Description: "Generated your first story.", Icon: "🪶", Kind: models.BadgeFirstStory},
}

// BadgeByID looks up a badge definition by its identifier
func BadgeByID(id string) (models.Badge, bool) {
	for _, b := range AllBadges {
		if b.ID == id {
			return b, true
		}
	}
	return models.Badge{}, false
}

// StateSnapshot is the typed view of session state that badge conditions are
// evaluated against
type StateSnapshot struct {
	MasteredWordCount int
	StoriesGenerated  int
	WordCoins         int
	InventoryCount    int
}

// EvalBadge reports whether the badge condition holds for the snapshot.
// Unknown kinds never unlock.
func EvalBadge(kind models.BadgeKind, s StateSnapshot) bool {
	switch kind {
	case models.BadgeFirstWord:
		return s.MasteredWordCount >= 1
	case models.BadgeTenWords:
		return s.MasteredWordCount >= 10
	case models.BadgeFirstStory:
		return s.StoriesGenerated >= 1
	}
	return false
}
