package database

import (
	"time"

	"github.com/alhaannn/wordwings-prototype/pkg/models"
)

// Gateway aggregates the repositories behind the single surface the session
// store writes to
type Gateway struct {
	users     *UserRepository
	words     *WordRepository
	badges    *BadgeRepository
	inventory *InventoryRepository
	quiz      *QuizRepository
}

// NewGateway creates a gateway over the shared connection
func NewGateway() *Gateway {
	return &Gateway{
		users:     NewUserRepository(),
		words:     NewWordRepository(),
		badges:    NewBadgeRepository(),
		inventory: NewInventoryRepository(),
		quiz:      NewQuizRepository(),
	}
}

// Authenticate verifies credentials and returns the user
func (g *Gateway) Authenticate(email, password string) (*models.User, error) {
	return g.users.Authenticate(email, password)
}

// CreateUser registers a new account
func (g *Gateway) CreateUser(name, email, password string) (*models.User, error) {
	return g.users.Create(name, email, password)
}

// GetUserByID returns a user by identifier
func (g *Gateway) GetUserByID(id string) (*models.User, error) {
	return g.users.GetByID(id)
}

// UpdateCoins writes a new coin balance
func (g *Gateway) UpdateCoins(userID string, coins int) error {
	return g.users.UpdateCoins(userID, coins)
}

// UpdateStoriesGenerated writes a new story counter
func (g *Gateway) UpdateStoriesGenerated(userID string, count int) error {
	return g.users.UpdateStoriesGenerated(userID, count)
}

// InsertMasteredWord records a mastered word
func (g *Gateway) InsertMasteredWord(userID, word string, masteredAt time.Time) error {
	return g.words.InsertMastered(userID, word, masteredAt)
}

// ListMasteredWords returns the user's mastered words
func (g *Gateway) ListMasteredWords(userID string) ([]models.MasteredWord, error) {
	return g.words.ListMastered(userID)
}

// InsertUnlockedBadge records an earned badge
func (g *Gateway) InsertUnlockedBadge(userID, badgeID string, earnedAt time.Time) error {
	return g.badges.InsertUnlocked(userID, badgeID, earnedAt)
}

// ListUnlockedBadges returns the user's earned badges
func (g *Gateway) ListUnlockedBadges(userID string) ([]models.UnlockedBadge, error) {
	return g.badges.ListUnlocked(userID)
}

// InsertInventoryEntry records a purchase
func (g *Gateway) InsertInventoryEntry(userID, itemID string, purchasedAt time.Time) error {
	return g.inventory.Insert(userID, itemID, purchasedAt)
}

// ListInventory returns the user's purchases
func (g *Gateway) ListInventory(userID string) ([]models.InventoryEntry, error) {
	return g.inventory.List(userID)
}

// InsertQuizQuestion stores a quiz question
func (g *Gateway) InsertQuizQuestion(userID string, q models.QuizQuestion) error {
	return g.quiz.Insert(userID, q)
}

// ListQuizQuestions returns the user's quiz bank
func (g *Gateway) ListQuizQuestions(userID string) ([]models.QuizQuestion, error) {
	return g.quiz.List(userID)
}
