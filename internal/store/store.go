// Package store holds the authenticated user's session state and mediates
// every mutation through an optimistic-update-then-confirm-or-revert protocol
// against the data gateway. The store is the sole writer to the gateway and
// the single source of truth for game state during a session.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alhaannn/wordwings-prototype/internal/catalog"
	"github.com/alhaannn/wordwings-prototype/pkg/models"
)

// MasteredWordReward is the fixed WordCoin grant for mastering a word
const MasteredWordReward = 10

var (
	// ErrNotLoggedIn is returned when an operation requires an authenticated session
	ErrNotLoggedIn = errors.New("no user is logged in")
	// ErrNegativeAmount is returned when a coin grant is negative
	ErrNegativeAmount = errors.New("coin amount must not be negative")
	// ErrInsufficientCoins is returned when the balance cannot cover a purchase
	ErrInsufficientCoins = errors.New("not enough WordCoins")
)

// Gateway is the remote surface the store writes to. It is implemented by the
// database repositories; tests substitute a mock.
type Gateway interface {
	Authenticate(email, password string) (*models.User, error)
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	UpdateCoins(userID string, coins int) error
	UpdateStoriesGenerated(userID string, count int) error
	InsertMasteredWord(userID, word string, masteredAt time.Time) error
	ListMasteredWords(userID string) ([]models.MasteredWord, error)
	InsertUnlockedBadge(userID, badgeID string, earnedAt time.Time) error
	ListUnlockedBadges(userID string) ([]models.UnlockedBadge, error)
	InsertInventoryEntry(userID, itemID string, purchasedAt time.Time) error
	ListInventory(userID string) ([]models.InventoryEntry, error)
	InsertQuizQuestion(userID string, q models.QuizQuestion) error
	ListQuizQuestions(userID string) ([]models.QuizQuestion, error)
}

// Notifier receives the single terminal notification each remote-writing
// operation produces (success or failure, never the optimistic intermediate)
type Notifier interface {
	Notify(title, message string)
}

// Store is the session state store. All operations are safe for concurrent
// use: a mutex serializes them so rapid repeated input cannot race the same
// balance snapshot.
type Store struct {
	mu       sync.Mutex
	gateway  Gateway
	notifier Notifier
	now      func() time.Time

	user             *models.User
	wordCoins        int
	masteredWords    map[string]time.Time
	unlockedBadgeIDs map[string]bool
	inventory        []models.MarketItem
	quizBank         []models.QuizQuestion
	storiesGenerated int
}

// New creates a store over the given gateway and notifier
func New(gateway Gateway, notifier Notifier) *Store {
	return &Store{
		gateway:  gateway,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *Store) notify(title, message string) {
	if s.notifier != nil {
		s.notifier.Notify(title, message)
	}
}

// Login authenticates the user and loads their game state. On invalid
// credentials no state is mutated and the gateway's error is returned.
func (s *Store) Login(email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.gateway.Authenticate(email, password)
	if err != nil {
		return err
	}
	return s.loadUserData(user)
}

// Signup creates a new account and behaves as login. The gateway rejects
// duplicate emails; the new profile starts with 100 coins and 0 stories.
func (s *Store) Signup(name, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.gateway.CreateUser(name, email, password)
	if err != nil {
		return err
	}
	return s.loadUserData(user)
}

// ResumeSession re-establishes a session from a persisted user identifier
func (s *Store) ResumeSession(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.gateway.GetUserByID(userID)
	if err != nil {
		return err
	}
	return s.loadUserData(user)
}

// loadUserData builds the in-memory mirror from the user's remote rows.
// Callers must hold the mutex.
func (s *Store) loadUserData(user *models.User) error {
	mastered, err := s.gateway.ListMasteredWords(user.ID)
	if err != nil {
		return fmt.Errorf("failed to load mastered words: %v", err)
	}
	badges, err := s.gateway.ListUnlockedBadges(user.ID)
	if err != nil {
		return fmt.Errorf("failed to load badges: %v", err)
	}
	entries, err := s.gateway.ListInventory(user.ID)
	if err != nil {
		return fmt.Errorf("failed to load inventory: %v", err)
	}
	questions, err := s.gateway.ListQuizQuestions(user.ID)
	if err != nil {
		return fmt.Errorf("failed to load quiz bank: %v", err)
	}

	s.user = user
	s.wordCoins = user.WordCoins
	s.storiesGenerated = user.StoriesGenerated

	s.masteredWords = make(map[string]time.Time, len(mastered))
	for _, w := range mastered {
		s.masteredWords[w.Word] = w.MasteredAt
	}

	s.unlockedBadgeIDs = make(map[string]bool, len(badges))
	for _, b := range badges {
		s.unlockedBadgeIDs[b.BadgeID] = true
	}

	s.inventory = nil
	for _, e := range entries {
		if item, ok := catalog.MarketItemByID(e.ItemID); ok {
			s.inventory = append(s.inventory, item)
		}
	}

	if len(questions) > 0 {
		s.quizBank = questions
	} else {
		// New accounts start from the built-in sample quiz
		s.quizBank = append([]models.QuizQuestion(nil), catalog.SampleQuiz...)
	}

	return nil
}

// Logout clears all in-memory state. It always succeeds.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.wordCoins = 0
	s.masteredWords = nil
	s.unlockedBadgeIDs = nil
	s.inventory = nil
	s.quizBank = nil
	s.storiesGenerated = 0
}

// commit runs one optimistic write cycle: apply the local mutation, attempt
// the remote write, and restore the snapshot via revert when the write fails.
// Exactly one terminal notification is produced either way.
func (s *Store) commit(op, successTitle, successMsg string, apply func(), write func() error, revert func()) error {
	apply()
	if err := write(); err != nil {
		revert()
		s.notify("Sync Error", fmt.Sprintf("Could not save your %s. The change was undone.", op))
		return fmt.Errorf("failed to sync %s: %w", op, err)
	}
	if successTitle != "" {
		s.notify(successTitle, successMsg)
	}
	return nil
}

// AddCoins adds a non-negative amount to the balance and writes the new total
func (s *Store) AddCoins(amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return ErrNotLoggedIn
	}
	if amount < 0 {
		return ErrNegativeAmount
	}

	before := s.wordCoins
	return s.commit("coin balance",
		"Coins Added", fmt.Sprintf("You earned %d WordCoins!", amount),
		func() { s.wordCoins += amount },
		func() error { return s.gateway.UpdateCoins(s.user.ID, s.wordCoins) },
		func() { s.wordCoins = before },
	)
}

// BuyItem purchases a market item. When the balance cannot cover the price
// the call is a no-op: no mutation, no remote write, no notification.
// On write failure both the balance and the inventory are restored.
func (s *Store) BuyItem(item models.MarketItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return ErrNotLoggedIn
	}
	if s.wordCoins < item.Price {
		return ErrInsufficientCoins
	}

	beforeCoins := s.wordCoins
	beforeLen := len(s.inventory)
	return s.commit("purchase",
		"Purchase Complete", fmt.Sprintf("%s %s is now in your inventory.", item.Icon, item.Name),
		func() {
			s.wordCoins -= item.Price
			s.inventory = append(s.inventory, item)
		},
		func() error {
			if err := s.gateway.UpdateCoins(s.user.ID, s.wordCoins); err != nil {
				return err
			}
			return s.gateway.InsertInventoryEntry(s.user.ID, item.ID, s.now())
		},
		func() {
			s.wordCoins = beforeCoins
			s.inventory = s.inventory[:beforeLen]
		},
	)
}

// AddMasteredWord records a newly mastered word and grants the fixed coin
// reward. Calling it again for the same word is a no-op. The word insertion
// and the coin grant are reverted together when either write fails, so the
// balance can never drift from the word set.
func (s *Store) AddMasteredWord(word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return ErrNotLoggedIn
	}
	if _, ok := s.masteredWords[word]; ok {
		return nil
	}

	masteredAt := s.now()
	beforeCoins := s.wordCoins
	err := s.commit("mastered word",
		"Word Mastered!", fmt.Sprintf("'%s' added to your collection. +%d WordCoins!", word, MasteredWordReward),
		func() {
			s.masteredWords[word] = masteredAt
			s.wordCoins += MasteredWordReward
		},
		func() error {
			if err := s.gateway.InsertMasteredWord(s.user.ID, word, masteredAt); err != nil {
				return err
			}
			return s.gateway.UpdateCoins(s.user.ID, s.wordCoins)
		},
		func() {
			delete(s.masteredWords, word)
			s.wordCoins = beforeCoins
		},
	)
	if err != nil {
		return err
	}

	s.checkAndAwardBadges()
	return nil
}

// IsMastered reports whether the word has been mastered this session
func (s *Store) IsMastered(word string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.masteredWords[word]
	return ok
}

// AddQuizQuestion appends a question to the quiz bank. A question for a word
// already in the bank is a no-op.
func (s *Store) AddQuizQuestion(q models.QuizQuestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return ErrNotLoggedIn
	}
	for _, existing := range s.quizBank {
		if existing.Word == q.Word {
			return nil
		}
	}

	beforeLen := len(s.quizBank)
	return s.commit("quiz question",
		"Quiz Updated", fmt.Sprintf("A new question for '%s' was added to your quiz.", q.Word),
		func() { s.quizBank = append(s.quizBank, q) },
		func() error { return s.gateway.InsertQuizQuestion(s.user.ID, q) },
		func() { s.quizBank = s.quizBank[:beforeLen] },
	)
}

// IncrementStoriesGenerated bumps the story counter and writes it
func (s *Store) IncrementStoriesGenerated() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return ErrNotLoggedIn
	}

	before := s.storiesGenerated
	err := s.commit("story counter",
		"", "",
		func() { s.storiesGenerated++ },
		func() error { return s.gateway.UpdateStoriesGenerated(s.user.ID, s.storiesGenerated) },
		func() { s.storiesGenerated = before },
	)
	if err != nil {
		return err
	}

	s.checkAndAwardBadges()
	return nil
}

// checkAndAwardBadges evaluates every badge definition not yet unlocked
// against the current state, in catalog order. Each award is written and
// reverted independently. Callers must hold the mutex.
func (s *Store) checkAndAwardBadges() {
	snapshot := catalog.StateSnapshot{
		MasteredWordCount: len(s.masteredWords),
		StoriesGenerated:  s.storiesGenerated,
		WordCoins:         s.wordCoins,
		InventoryCount:    len(s.inventory),
	}

	for _, badge := range catalog.AllBadges {
		if s.unlockedBadgeIDs[badge.ID] {
			continue
		}
		if !catalog.EvalBadge(badge.Kind, snapshot) {
			continue
		}

		badge := badge
		s.commit("badge",
			"Achievement Unlocked!", fmt.Sprintf("You've earned the \"%s\" badge!", badge.Name),
			func() { s.unlockedBadgeIDs[badge.ID] = true },
			func() error { return s.gateway.InsertUnlockedBadge(s.user.ID, badge.ID, s.now()) },
			func() { delete(s.unlockedBadgeIDs, badge.ID) },
		)
	}
}

// CurrentUser returns the authenticated user, or nil
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// WordCoins returns the current balance
func (s *Store) WordCoins() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wordCoins
}

// MasteredWords returns a copy of the (word, mastered-at) map
func (s *Store) MasteredWords() map[string]time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]time.Time, len(s.masteredWords))
	for w, t := range s.masteredWords {
		out[w] = t
	}
	return out
}

// MasteredWordCount returns the number of mastered words
func (s *Store) MasteredWordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.masteredWords)
}

// UnlockedBadgeIDs returns a copy of the unlocked badge id set
func (s *Store) UnlockedBadgeIDs() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.unlockedBadgeIDs))
	for id := range s.unlockedBadgeIDs {
		out[id] = true
	}
	return out
}

// Inventory returns a copy of the purchased items
func (s *Store) Inventory() []models.MarketItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.MarketItem(nil), s.inventory...)
}

// QuizBank returns a copy of the quiz bank
func (s *Store) QuizBank() []models.QuizQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.QuizQuestion(nil), s.quizBank...)
}

// StoriesGenerated returns the session's story counter
func (s *Store) StoriesGenerated() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storiesGenerated
}
