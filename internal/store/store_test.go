package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alhaannn/wordwings-prototype/internal/catalog"
	"github.com/alhaannn/wordwings-prototype/pkg/models"
)

var errRemote = errors.New("remote write failed")

// mockGateway is an in-memory gateway with per-operation failure injection
type mockGateway struct {
	users         map[string]*models.User
	usersByEmail  map[string]*models.User
	mastered      map[string][]models.MasteredWord
	badges        map[string][]models.UnlockedBadge
	inventory     map[string][]models.InventoryEntry
	quizQuestions map[string][]models.QuizQuestion
	lastID        int

	failUpdateCoins   bool
	failUpdateStories bool
	failInsertWord    bool
	failInsertBadge   bool
	failInsertItem    bool
	failInsertQuiz    bool

	writeCalls int
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		users:         make(map[string]*models.User),
		usersByEmail:  make(map[string]*models.User),
		mastered:      make(map[string][]models.MasteredWord),
		badges:        make(map[string][]models.UnlockedBadge),
		inventory:     make(map[string][]models.InventoryEntry),
		quizQuestions: make(map[string][]models.QuizQuestion),
	}
}

func (m *mockGateway) Authenticate(email, password string) (*models.User, error) {
	user, ok := m.usersByEmail[email]
	if !ok || password != "secret" {
		return nil, errors.New("invalid email or password")
	}
	return user, nil
}

func (m *mockGateway) CreateUser(name, email, password string) (*models.User, error) {
	if _, ok := m.usersByEmail[email]; ok {
		return nil, errors.New("an account with this email already exists")
	}
	m.lastID++
	user := &models.User{
		ID:        fmt.Sprintf("user-%d", m.lastID),
		Name:      name,
		Email:     email,
		WordCoins: 100,
	}
	m.users[user.ID] = user
	m.usersByEmail[email] = user
	return user, nil
}

func (m *mockGateway) GetUserByID(id string) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (m *mockGateway) UpdateCoins(userID string, coins int) error {
	m.writeCalls++
	if m.failUpdateCoins {
		return errRemote
	}
	m.users[userID].WordCoins = coins
	return nil
}

func (m *mockGateway) UpdateStoriesGenerated(userID string, count int) error {
	m.writeCalls++
	if m.failUpdateStories {
		return errRemote
	}
	m.users[userID].StoriesGenerated = count
	return nil
}

func (m *mockGateway) InsertMasteredWord(userID, word string, masteredAt time.Time) error {
	m.writeCalls++
	if m.failInsertWord {
		return errRemote
	}
	m.mastered[userID] = append(m.mastered[userID], models.MasteredWord{UserID: userID, Word: word, MasteredAt: masteredAt})
	return nil
}

func (m *mockGateway) ListMasteredWords(userID string) ([]models.MasteredWord, error) {
	return m.mastered[userID], nil
}

func (m *mockGateway) InsertUnlockedBadge(userID, badgeID string, earnedAt time.Time) error {
	m.writeCalls++
	if m.failInsertBadge {
		return errRemote
	}
	m.badges[userID] = append(m.badges[userID], models.UnlockedBadge{UserID: userID, BadgeID: badgeID, EarnedAt: earnedAt})
	return nil
}

func (m *mockGateway) ListUnlockedBadges(userID string) ([]models.UnlockedBadge, error) {
	return m.badges[userID], nil
}

func (m *mockGateway) InsertInventoryEntry(userID, itemID string, purchasedAt time.Time) error {
	m.writeCalls++
	if m.failInsertItem {
		return errRemote
	}
	m.inventory[userID] = append(m.inventory[userID], models.InventoryEntry{UserID: userID, ItemID: itemID, PurchasedAt: purchasedAt})
	return nil
}

func (m *mockGateway) ListInventory(userID string) ([]models.InventoryEntry, error) {
	return m.inventory[userID], nil
}

func (m *mockGateway) InsertQuizQuestion(userID string, q models.QuizQuestion) error {
	m.writeCalls++
	if m.failInsertQuiz {
		return errRemote
	}
	m.quizQuestions[userID] = append(m.quizQuestions[userID], q)
	return nil
}

func (m *mockGateway) ListQuizQuestions(userID string) ([]models.QuizQuestion, error) {
	return m.quizQuestions[userID], nil
}

// recordingNotifier collects every toast the store emits
type recordingNotifier struct {
	titles []string
}

func (n *recordingNotifier) Notify(title, message string) {
	n.titles = append(n.titles, title)
}

func newTestStore(t *testing.T) (*Store, *mockGateway, *recordingNotifier) {
	t.Helper()
	gw := newMockGateway()
	notifier := &recordingNotifier{}
	s := New(gw, notifier)
	require.NoError(t, s.Signup("Ada", "ada@example.com", "secret"))
	return s, gw, notifier
}

func TestSignupDefaults(t *testing.T) {
	s, _, _ := newTestStore(t)

	assert.Equal(t, 100, s.WordCoins())
	assert.Equal(t, 0, s.StoriesGenerated())
	assert.Empty(t, s.UnlockedBadgeIDs())
	// New accounts fall back to the built-in sample quiz
	assert.Len(t, s.QuizBank(), len(catalog.SampleQuiz))
}

func TestSignupDuplicateEmail(t *testing.T) {
	s, _, _ := newTestStore(t)

	other := New(s.gateway, nil)
	err := other.Signup("Eve", "ada@example.com", "secret")
	require.Error(t, err)
	assert.Nil(t, other.CurrentUser())
}

func TestLoginInvalidCredentials(t *testing.T) {
	gw := newMockGateway()
	s := New(gw, nil)

	err := s.Login("nobody@example.com", "wrong")
	require.Error(t, err)
	assert.Nil(t, s.CurrentUser())
	assert.Equal(t, 0, s.WordCoins())
}

func TestLoginLoadsPersistedState(t *testing.T) {
	s, gw, _ := newTestStore(t)
	require.NoError(t, s.AddMasteredWord("serene"))
	require.NoError(t, s.BuyItem(catalog.MarketItems[0]))
	s.Logout()

	again := New(gw, nil)
	require.NoError(t, again.Login("ada@example.com", "secret"))
	assert.Equal(t, 1, again.MasteredWordCount())
	assert.Len(t, again.Inventory(), 1)
	assert.True(t, again.UnlockedBadgeIDs()["first-word"])
}

func TestAddCoins(t *testing.T) {
	s, gw, _ := newTestStore(t)

	require.NoError(t, s.AddCoins(25))
	assert.Equal(t, 125, s.WordCoins())
	assert.Equal(t, 125, gw.users[s.CurrentUser().ID].WordCoins)
}

func TestAddCoinsNegativeAmount(t *testing.T) {
	s, gw, _ := newTestStore(t)
	before := gw.writeCalls

	err := s.AddCoins(-5)
	assert.ErrorIs(t, err, ErrNegativeAmount)
	assert.Equal(t, 100, s.WordCoins())
	assert.Equal(t, before, gw.writeCalls, "validation failures must not reach the gateway")
}

func TestAddCoinsRevertOnWriteFailure(t *testing.T) {
	s, gw, notifier := newTestStore(t)
	gw.failUpdateCoins = true

	err := s.AddCoins(25)
	require.Error(t, err)
	assert.Equal(t, 100, s.WordCoins(), "balance must be reverted to its pre-call value")
	assert.Contains(t, notifier.titles, "Sync Error")
}

func TestAddMasteredWordIdempotent(t *testing.T) {
	s, gw, _ := newTestStore(t)

	require.NoError(t, s.AddMasteredWord("serene"))
	coinsAfterFirst := s.WordCoins()
	assert.Equal(t, 110, coinsAfterFirst, "mastering grants exactly +10")

	writesAfterFirst := gw.writeCalls
	require.NoError(t, s.AddMasteredWord("serene"))
	assert.Equal(t, 1, s.MasteredWordCount())
	assert.Equal(t, coinsAfterFirst, s.WordCoins(), "the reward is granted exactly once")
	assert.Equal(t, writesAfterFirst, gw.writeCalls, "a repeated word performs no remote write")
}

func TestAddMasteredWordRevertsWordAndCoins(t *testing.T) {
	s, gw, _ := newTestStore(t)
	gw.failInsertWord = true

	err := s.AddMasteredWord("serene")
	require.Error(t, err)
	assert.Equal(t, 0, s.MasteredWordCount())
	assert.Equal(t, 100, s.WordCoins(), "the coin grant is reverted together with the word")
	assert.Empty(t, s.UnlockedBadgeIDs(), "no badge evaluation after a failed mastery")
}

func TestAddMasteredWordRevertsWhenCoinWriteFails(t *testing.T) {
	s, gw, _ := newTestStore(t)
	gw.failUpdateCoins = true

	err := s.AddMasteredWord("serene")
	require.Error(t, err)
	assert.Equal(t, 0, s.MasteredWordCount())
	assert.Equal(t, 100, s.WordCoins())
}

func TestBuyItem(t *testing.T) {
	s, gw, _ := newTestStore(t)
	item := catalog.MarketItems[3] // Compass, 50 coins

	require.NoError(t, s.BuyItem(item))
	assert.Equal(t, 50, s.WordCoins())
	require.Len(t, s.Inventory(), 1)
	assert.Equal(t, item.ID, s.Inventory()[0].ID)
	assert.Len(t, gw.inventory[s.CurrentUser().ID], 1)
}

func TestBuyItemMultisetSemantics(t *testing.T) {
	s, _, _ := newTestStore(t)
	item := catalog.MarketItems[0] // Apple, 5 coins

	require.NoError(t, s.BuyItem(item))
	require.NoError(t, s.BuyItem(item))
	assert.Len(t, s.Inventory(), 2, "the same item may be owned multiple times")
	assert.Equal(t, 90, s.WordCoins())
}

func TestBuyItemInsufficientFunds(t *testing.T) {
	s, gw, notifier := newTestStore(t)
	before := gw.writeCalls

	item := models.MarketItem{ID: "x", Name: "Golden Quill", Price: 500}
	err := s.BuyItem(item)
	assert.ErrorIs(t, err, ErrInsufficientCoins)
	assert.Equal(t, 100, s.WordCoins())
	assert.Empty(t, s.Inventory())
	assert.Equal(t, before, gw.writeCalls, "no remote write on insufficient funds")
	assert.Empty(t, notifier.titles, "the silent no-op issues no notification")
}

func TestBuyItemRevertOnWriteFailure(t *testing.T) {
	s, gw, _ := newTestStore(t)
	gw.failInsertItem = true
	item := catalog.MarketItems[3]

	err := s.BuyItem(item)
	require.Error(t, err)
	assert.Equal(t, 100, s.WordCoins(), "balance restored exactly")
	assert.Empty(t, s.Inventory(), "inventory restored exactly")
}

func TestAddQuizQuestionIdempotent(t *testing.T) {
	s, _, _ := newTestStore(t)
	q := models.QuizQuestion{
		Word:          "serene",
		Question:      "What does 'serene' mean?",
		Options:       []string{"Calm", "Loud", "Fast", "Angry"},
		CorrectAnswer: "Calm",
		Difficulty:    models.DifficultyEasy,
	}

	require.NoError(t, s.AddQuizQuestion(q))
	lenAfterFirst := len(s.QuizBank())

	require.NoError(t, s.AddQuizQuestion(q))
	assert.Equal(t, lenAfterFirst, len(s.QuizBank()), "a duplicate word leaves the bank unchanged")
}

func TestAddQuizQuestionRevertOnWriteFailure(t *testing.T) {
	s, gw, _ := newTestStore(t)
	gw.failInsertQuiz = true
	before := len(s.QuizBank())

	err := s.AddQuizQuestion(models.QuizQuestion{Word: "zephyr", Options: []string{"a", "b", "c", "d"}})
	require.Error(t, err)
	assert.Equal(t, before, len(s.QuizBank()))
}

func TestIncrementStoriesGenerated(t *testing.T) {
	s, gw, _ := newTestStore(t)

	require.NoError(t, s.IncrementStoriesGenerated())
	assert.Equal(t, 1, s.StoriesGenerated())
	assert.Equal(t, 1, gw.users[s.CurrentUser().ID].StoriesGenerated)
	assert.True(t, s.UnlockedBadgeIDs()["first-story"])
}

func TestIncrementStoriesRevertOnWriteFailure(t *testing.T) {
	s, gw, _ := newTestStore(t)
	gw.failUpdateStories = true

	err := s.IncrementStoriesGenerated()
	require.Error(t, err)
	assert.Equal(t, 0, s.StoriesGenerated())
	assert.Empty(t, s.UnlockedBadgeIDs())
}

func TestBadgeThresholds(t *testing.T) {
	s, _, _ := newTestStore(t)
	assert.Empty(t, s.UnlockedBadgeIDs(), "a fresh account has no badges")

	require.NoError(t, s.AddMasteredWord("word-1"))
	unlocked := s.UnlockedBadgeIDs()
	assert.True(t, unlocked["first-word"])
	assert.False(t, unlocked["ten-words"])

	for i := 2; i <= 10; i++ {
		require.NoError(t, s.AddMasteredWord(fmt.Sprintf("word-%d", i)))
	}
	unlocked = s.UnlockedBadgeIDs()
	assert.True(t, unlocked["ten-words"])

	require.NoError(t, s.IncrementStoriesGenerated())
	assert.True(t, s.UnlockedBadgeIDs()["first-story"])
}

func TestBadgeOrderIndependence(t *testing.T) {
	// Final unlocked set must not depend on trigger order
	runStory := func(s *Store) { _ = s.IncrementStoriesGenerated() }
	runWords := func(s *Store) {
		for i := 1; i <= 10; i++ {
			_ = s.AddMasteredWord(fmt.Sprintf("word-%d", i))
		}
	}

	orders := [][]func(*Store){
		{runStory, runWords},
		{runWords, runStory},
	}

	for _, order := range orders {
		gw := newMockGateway()
		s := New(gw, nil)
		require.NoError(t, s.Signup("Ada", "ada@example.com", "secret"))
		for _, step := range order {
			step(s)
		}
		unlocked := s.UnlockedBadgeIDs()
		assert.True(t, unlocked["first-word"])
		assert.True(t, unlocked["ten-words"])
		assert.True(t, unlocked["first-story"])
		assert.Len(t, unlocked, 3)
	}
}

func TestBadgeMonotonicity(t *testing.T) {
	s, _, _ := newTestStore(t)

	require.NoError(t, s.AddMasteredWord("serene"))
	require.NoError(t, s.IncrementStoriesGenerated())
	require.NoError(t, s.BuyItem(catalog.MarketItems[0]))
	require.NoError(t, s.AddCoins(5))

	unlocked := s.UnlockedBadgeIDs()
	assert.True(t, unlocked["first-word"])
	assert.True(t, unlocked["first-story"])
	assert.Len(t, unlocked, 2, "the badge set only grows, never shrinks")
}

func TestBadgeRevertOnWriteFailure(t *testing.T) {
	s, gw, _ := newTestStore(t)
	gw.failInsertBadge = true

	require.NoError(t, s.AddMasteredWord("serene"))
	assert.Empty(t, s.UnlockedBadgeIDs(), "a failed badge write reverts that badge's membership")
	assert.Equal(t, 1, s.MasteredWordCount(), "the mastery itself is kept")

	// Once the gateway recovers, the badge is granted on the next evaluation
	gw.failInsertBadge = false
	require.NoError(t, s.AddMasteredWord("vivid"))
	assert.True(t, s.UnlockedBadgeIDs()["first-word"])
}

func TestOneNotificationPerOperation(t *testing.T) {
	s, _, notifier := newTestStore(t)

	require.NoError(t, s.AddCoins(5))
	assert.Len(t, notifier.titles, 1, "exactly one terminal notification per remote-writing operation")
}

func TestLogoutClearsState(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.AddMasteredWord("serene"))

	s.Logout()
	assert.Nil(t, s.CurrentUser())
	assert.Equal(t, 0, s.WordCoins())
	assert.Equal(t, 0, s.MasteredWordCount())
	assert.Empty(t, s.QuizBank())
	assert.Empty(t, s.Inventory())
}

func TestOperationsRequireLogin(t *testing.T) {
	s := New(newMockGateway(), nil)

	assert.ErrorIs(t, s.AddCoins(5), ErrNotLoggedIn)
	assert.ErrorIs(t, s.BuyItem(catalog.MarketItems[0]), ErrNotLoggedIn)
	assert.ErrorIs(t, s.AddMasteredWord("serene"), ErrNotLoggedIn)
	assert.ErrorIs(t, s.AddQuizQuestion(models.QuizQuestion{Word: "w"}), ErrNotLoggedIn)
	assert.ErrorIs(t, s.IncrementStoriesGenerated(), ErrNotLoggedIn)
}
