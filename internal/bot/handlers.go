package bot

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/alhaannn/wordwings-prototype/internal/ai"
	"github.com/alhaannn/wordwings-prototype/internal/catalog"
	"github.com/alhaannn/wordwings-prototype/internal/database"
	"github.com/alhaannn/wordwings-prototype/internal/quiz"
	"github.com/alhaannn/wordwings-prototype/internal/store"
	"github.com/alhaannn/wordwings-prototype/pkg/models"
)

// mainMenuButtons returns the top-level screen menu
func mainMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{{Text: "📊 Dashboard", CallbackData: "menu:dashboard"}, {Text: "📖 Learn", CallbackData: "menu:learn"}},
		{{Text: "❓ Quiz", CallbackData: "menu:quiz"}, {Text: "🏪 Market", CallbackData: "menu:market"}},
		{{Text: "📜 Story", CallbackData: "menu:story"}, {Text: "🚪 Log out", CallbackData: "auth:logout"}},
	}
}

// authMenuButtons returns the unauthenticated menu
func authMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{{Text: "🔑 Log in", CallbackData: "auth:login"}, {Text: "✨ Sign up", CallbackData: "auth:signup"}},
	}
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	switch message.Command() {
	case "start":
		return b.handleStart(chatID)
	case "help":
		return b.handleHelp(chatID)
	case "dashboard":
		return b.showDashboard(chatID)
	case "learn":
		return b.showLearn(chatID)
	case "quiz":
		return b.showQuizMenu(chatID)
	case "market":
		return b.showMarket(chatID)
	case "story":
		return b.showStoryMenu(chatID)
	case "logout":
		return b.handleLogout(chatID)
	default:
		return b.send(chatID, "Unknown command. Try /help.")
	}
}

func (b *Bot) handleStart(chatID int64) error {
	s := b.session(chatID)

	// Resume a persisted session if this chat logged in before
	if s.store.CurrentUser() == nil {
		userID, err := b.sessionRepo.Load(chatID)
		if err != nil {
			log.Printf("Error loading session for chat %d: %v", chatID, err)
		} else if userID != "" {
			if err := s.store.ResumeSession(userID); err != nil {
				log.Printf("Error resuming session for chat %d: %v", chatID, err)
			}
		}
	}

	if user := s.store.CurrentUser(); user != nil {
		if err := b.send(chatID, fmt.Sprintf("👋 Welcome back, %s!", user.Name)); err != nil {
			return err
		}
		return b.showDashboard(chatID)
	}

	text := "🪶 Welcome to WordWings!\n\n" +
		"Learn new words, take quizzes, generate stories with your vocabulary, " +
		"earn WordCoins and unlock badges.\n\n" +
		"Log in or create an account to begin."
	return b.sendWithKeyboard(chatID, text, authMenuButtons())
}

func (b *Bot) handleHelp(chatID int64) error {
	text := "📖 WordWings commands\n\n" +
		"/start - Main menu\n" +
		"/dashboard - Your coins, words and badges\n" +
		"/learn - Study new words\n" +
		"/quiz - Take a quiz (+10 coins per mastered word)\n" +
		"/market - Spend WordCoins\n" +
		"/story - Generate a story from your words\n" +
		"/logout - End your session"
	return b.send(chatID, text)
}

func (b *Bot) handleLogout(chatID int64) error {
	s := b.session(chatID)
	s.store.Logout()
	if err := b.sessionRepo.Clear(chatID); err != nil {
		log.Printf("Error clearing session for chat %d: %v", chatID, err)
	}
	b.dropSession(chatID)
	return b.sendWithKeyboard(chatID, "You have been logged out. See you soon! 👋", authMenuButtons())
}

// requireLogin sends the auth menu when the chat has no authenticated session
func (b *Bot) requireLogin(chatID int64, s *chatSession) (bool, error) {
	if s.store.CurrentUser() != nil {
		return true, nil
	}
	return false, b.sendWithKeyboard(chatID, "Please log in first.", authMenuButtons())
}

// handleCallback routes inline keyboard presses
func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) error {
	chatID := query.Message.Chat.ID
	data := query.Data

	// Acknowledge the press so the client stops the spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Printf("Error acknowledging callback: %v", err)
	}

	switch {
	case data == "menu:dashboard":
		return b.showDashboard(chatID)
	case data == "menu:learn":
		return b.showLearn(chatID)
	case data == "menu:quiz":
		return b.showQuizMenu(chatID)
	case data == "menu:market":
		return b.showMarket(chatID)
	case data == "menu:story":
		return b.showStoryMenu(chatID)
	case data == "menu:main":
		return b.sendWithKeyboard(chatID, "What would you like to do?", mainMenuButtons())
	case data == "auth:login":
		return b.startLogin(chatID)
	case data == "auth:signup":
		return b.startSignup(chatID)
	case data == "auth:logout":
		return b.handleLogout(chatID)
	case strings.HasPrefix(data, "learn:"):
		return b.handleLearnCallback(chatID, strings.TrimPrefix(data, "learn:"))
	case strings.HasPrefix(data, "quiz:"):
		return b.handleQuizCallback(chatID, strings.TrimPrefix(data, "quiz:"))
	case strings.HasPrefix(data, "market:"):
		return b.handleMarketCallback(chatID, strings.TrimPrefix(data, "market:"))
	case strings.HasPrefix(data, "story:"):
		return b.handleStoryCallback(chatID, strings.TrimPrefix(data, "story:"))
	}
	return nil
}

// handleText feeds free-form messages into the active conversation state
func (b *Bot) handleText(message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	s := b.session(chatID)
	text := strings.TrimSpace(message.Text)

	switch s.state {
	case stateLoginEmail:
		s.loginEmail = text
		s.state = stateLoginPassword
		return b.send(chatID, "And your password?")
	case stateLoginPassword:
		s.state = stateIdle
		return b.finishLogin(chatID, s, s.loginEmail, text)
	case stateSignupName:
		s.signupName = text
		s.state = stateSignupEmail
		return b.send(chatID, "Nice to meet you! What's your email?")
	case stateSignupEmail:
		if !strings.Contains(text, "@") {
			return b.send(chatID, "That doesn't look like an email. Try again?")
		}
		s.signupEmail = text
		s.state = stateSignupPassword
		return b.send(chatID, "Choose a password:")
	case stateSignupPassword:
		s.state = stateIdle
		return b.finishSignup(chatID, s, s.signupName, s.signupEmail, text)
	case stateStoryTopic:
		s.state = stateIdle
		topic := text
		if topic == "-" {
			topic = ""
		}
		return b.generateStory(chatID, s, topic)
	case stateTopicWordsTopic:
		s.state = stateIdle
		return b.generateTopicWords(chatID, s, text)
	}

	return b.send(chatID, "I didn't catch that. Use /start for the menu.")
}

// --- Auth screen ---

func (b *Bot) startLogin(chatID int64) error {
	s := b.session(chatID)
	s.state = stateLoginEmail
	return b.send(chatID, "What's your email?")
}

func (b *Bot) startSignup(chatID int64) error {
	s := b.session(chatID)
	s.state = stateSignupName
	return b.send(chatID, "What should we call you?")
}

func (b *Bot) finishLogin(chatID int64, s *chatSession, email, password string) error {
	if err := s.store.Login(email, password); err != nil {
		if errors.Is(err, database.ErrInvalidCredentials) {
			return b.sendWithKeyboard(chatID, "Login failed: invalid email or password.", authMenuButtons())
		}
		log.Printf("Error logging in chat %d: %v", chatID, err)
		return b.sendWithKeyboard(chatID, "Login failed: something went wrong. Please try again.", authMenuButtons())
	}

	user := s.store.CurrentUser()
	if err := b.sessionRepo.Save(chatID, user.ID); err != nil {
		log.Printf("Error saving session for chat %d: %v", chatID, err)
	}
	if err := b.send(chatID, fmt.Sprintf("Welcome back, %s! 🎉", user.Name)); err != nil {
		return err
	}
	return b.showDashboard(chatID)
}

func (b *Bot) finishSignup(chatID int64, s *chatSession, name, email, password string) error {
	if err := s.store.Signup(name, email, password); err != nil {
		if errors.Is(err, database.ErrDuplicateAccount) {
			return b.sendWithKeyboard(chatID, "Signup failed: an account with this email already exists.", authMenuButtons())
		}
		log.Printf("Error signing up chat %d: %v", chatID, err)
		return b.sendWithKeyboard(chatID, "Signup failed: something went wrong. Please try again.", authMenuButtons())
	}

	user := s.store.CurrentUser()
	if err := b.sessionRepo.Save(chatID, user.ID); err != nil {
		log.Printf("Error saving session for chat %d: %v", chatID, err)
	}
	text := fmt.Sprintf("Welcome to WordWings, %s! 🎉\nYou start with %d WordCoins.", user.Name, user.WordCoins)
	if err := b.send(chatID, text); err != nil {
		return err
	}
	return b.showDashboard(chatID)
}

// --- Dashboard screen ---

func (b *Bot) showDashboard(chatID int64) error {
	s := b.session(chatID)
	ok, err := b.requireLogin(chatID, s)
	if !ok {
		return err
	}

	user := s.store.CurrentUser()
	unlocked := s.store.UnlockedBadgeIDs()

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 %s's Dashboard\n\n", user.Name)
	fmt.Fprintf(&sb, "💰 WordCoins: %d\n", s.store.WordCoins())
	fmt.Fprintf(&sb, "📚 Words mastered: %d\n", s.store.MasteredWordCount())
	fmt.Fprintf(&sb, "📜 Stories generated: %d\n", s.store.StoriesGenerated())
	fmt.Fprintf(&sb, "🎒 Items owned: %d\n\n", len(s.store.Inventory()))

	sb.WriteString("🏅 Badges:\n")
	for _, badge := range catalog.AllBadges {
		if unlocked[badge.ID] {
			fmt.Fprintf(&sb, "%s %s — %s\n", badge.Icon, badge.Name, badge.Description)
		} else {
			fmt.Fprintf(&sb, "🔒 %s — %s\n", badge.Name, badge.Description)
		}
	}

	return b.sendWithKeyboard(chatID, sb.String(), mainMenuButtons())
}

// --- Learning screen ---

// wordBank merges the built-in word list with imported custom words
func (b *Bot) wordBank() []models.NewWord {
	bank := append([]models.NewWord(nil), catalog.NewWords...)
	custom, err := b.customWords.GetAll()
	if err != nil {
		log.Printf("Error loading custom words: %v", err)
		return bank
	}
	return append(bank, custom...)
}

func (b *Bot) showLearn(chatID int64) error {
	s := b.session(chatID)
	ok, err := b.requireLogin(chatID, s)
	if !ok {
		return err
	}
	return b.showWordCard(chatID, s)
}

func (b *Bot) showWordCard(chatID int64, s *chatSession) error {
	bank := b.wordBank()
	if len(bank) == 0 {
		return b.sendWithKeyboard(chatID, "The word bank is empty.", mainMenuButtons())
	}

	if s.learnIdx < 0 {
		s.learnIdx = len(bank) - 1
	}
	if s.learnIdx >= len(bank) {
		s.learnIdx = 0
	}
	word := bank[s.learnIdx]

	mastered := ""
	if s.store.IsMastered(word.Word) {
		mastered = " ✅"
	}

	text := fmt.Sprintf("📖 Word %d of %d [%s]%s\n\n%s\n\n%s\n\n💬 %s",
		s.learnIdx+1, len(bank), word.Difficulty, mastered, strings.ToUpper(word.Word), word.Definition, word.Example)

	buttons := [][]MenuButton{
		{{Text: "◀", CallbackData: "learn:prev"}, {Text: "✅ Mastered", CallbackData: "learn:master"}, {Text: "▶", CallbackData: "learn:next"}},
	}
	aiRow := []MenuButton{}
	if b.aiEnabled {
		aiRow = append(aiRow, MenuButton{Text: "🧠 Make quiz question", CallbackData: "learn:genquiz"})
		aiRow = append(aiRow, MenuButton{Text: "✨ Topic words", CallbackData: "learn:topic"})
	}
	if len(aiRow) > 0 {
		buttons = append(buttons, aiRow)
	}
	buttons = append(buttons, []MenuButton{{Text: "🏠 Menu", CallbackData: "menu:main"}})

	return b.sendWithKeyboard(chatID, text, buttons)
}

func (b *Bot) handleLearnCallback(chatID int64, action string) error {
	s := b.session(chatID)
	ok, err := b.requireLogin(chatID, s)
	if !ok {
		return err
	}

	bank := b.wordBank()
	switch action {
	case "next":
		s.learnIdx++
		return b.showWordCard(chatID, s)
	case "prev":
		s.learnIdx--
		return b.showWordCard(chatID, s)
	case "master":
		if s.learnIdx >= 0 && s.learnIdx < len(bank) {
			if err := s.store.AddMasteredWord(bank[s.learnIdx].Word); err != nil {
				log.Printf("Error mastering word for chat %d: %v", chatID, err)
			}
		}
		s.learnIdx++
		return b.showWordCard(chatID, s)
	case "genquiz":
		if s.learnIdx >= 0 && s.learnIdx < len(bank) {
			return b.generateQuizQuestion(chatID, s, bank[s.learnIdx])
		}
		return b.showWordCard(chatID, s)
	case "topic":
		s.state = stateTopicWordsTopic
		return b.send(chatID, "What topic would you like words for?")
	}
	return nil
}

func (b *Bot) generateQuizQuestion(chatID int64, s *chatSession, word models.NewWord) error {
	if !b.aiEnabled {
		return b.send(chatID, "AI features are not configured.")
	}
	if err := b.send(chatID, "🧠 Writing a question…"); err != nil {
		return err
	}

	question, err := b.aiClient.GenerateQuizQuestion(ai.QuizQuestionInput{
		Word:       word.Word,
		Definition: word.Definition,
		Difficulty: word.Difficulty,
	})
	if err != nil {
		log.Printf("Error generating quiz question for chat %d: %v", chatID, err)
		return b.send(chatID, "Could not generate a question right now. Please try again later.")
	}

	return s.store.AddQuizQuestion(*question)
}

func (b *Bot) generateTopicWords(chatID int64, s *chatSession, topic string) error {
	if !b.aiEnabled {
		return b.send(chatID, "AI features are not configured.")
	}
	if err := b.send(chatID, fmt.Sprintf("✨ Finding %s words about \"%s\"…", s.difficulty, topic)); err != nil {
		return err
	}

	words, err := b.aiClient.GenerateTopicWords(ai.TopicWordsInput{Topic: topic, Difficulty: s.difficulty})
	if err != nil {
		log.Printf("Error generating topic words for chat %d: %v", chatID, err)
		return b.send(chatID, "Could not generate words right now. Please try again later.")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "✨ New words about \"%s\":\n\n", topic)
	for _, w := range words {
		fmt.Fprintf(&sb, "• %s — %s\n  💬 %s\n\n", strings.ToUpper(w.Word), w.Definition, w.Example)
	}
	return b.sendWithKeyboard(chatID, sb.String(), [][]MenuButton{{{Text: "🏠 Menu", CallbackData: "menu:main"}}})
}

// --- Quiz screen ---

func (b *Bot) showQuizMenu(chatID int64) error {
	s := b.session(chatID)
	ok, err := b.requireLogin(chatID, s)
	if !ok {
		return err
	}

	buttons := [][]MenuButton{
		{{Text: "🟢 Easy", CallbackData: "quiz:diff:easy"}, {Text: "🟡 Medium", CallbackData: "quiz:diff:medium"}},
		{{Text: "🔴 Hard", CallbackData: "quiz:diff:hard"}, {Text: "🎲 Mixed", CallbackData: "quiz:diff:mixed"}},
		{{Text: "🏠 Menu", CallbackData: "menu:main"}},
	}
	return b.sendWithKeyboard(chatID, "❓ Pick your quiz difficulty. Each correct answer masters the word and earns +10 WordCoins!", buttons)
}

func (b *Bot) handleQuizCallback(chatID int64, action string) error {
	s := b.session(chatID)
	ok, err := b.requireLogin(chatID, s)
	if !ok {
		return err
	}

	switch {
	case strings.HasPrefix(action, "diff:"):
		return b.startQuiz(chatID, s, models.QuizDifficulty(strings.TrimPrefix(action, "diff:")))
	case strings.HasPrefix(action, "ans:"):
		idx, err := strconv.Atoi(strings.TrimPrefix(action, "ans:"))
		if err != nil {
			return fmt.Errorf("invalid answer index: %v", err)
		}
		return b.answerQuiz(chatID, s, idx)
	}
	return nil
}

func (b *Bot) startQuiz(chatID int64, s *chatSession, difficulty models.QuizDifficulty) error {
	available := quiz.Available(s.store.QuizBank(), s.store.MasteredWords(), difficulty)
	if len(available) == 0 {
		return b.sendWithKeyboard(chatID, "No questions left at this difficulty — you've mastered them all! 🎉", mainMenuButtons())
	}

	questions := quiz.Shuffle(available)
	if len(questions) > b.config.QuizLength {
		questions = questions[:b.config.QuizLength]
	}

	s.quizQuestions = questions
	s.quizIdx = 0
	if difficulty != models.QuizMixed {
		s.difficulty = models.Difficulty(difficulty)
	}
	return b.askQuizQuestion(chatID, s)
}

func (b *Bot) askQuizQuestion(chatID int64, s *chatSession) error {
	q := s.quizQuestions[s.quizIdx]

	var buttons [][]MenuButton
	for i, opt := range q.Options {
		buttons = append(buttons, []MenuButton{{Text: opt, CallbackData: fmt.Sprintf("quiz:ans:%d", i)}})
	}

	text := fmt.Sprintf("Question %d of %d [%s]\n\n%s", s.quizIdx+1, len(s.quizQuestions), q.Difficulty, q.Question)
	return b.sendWithKeyboard(chatID, text, buttons)
}

func (b *Bot) answerQuiz(chatID int64, s *chatSession, optionIdx int) error {
	if s.quizIdx >= len(s.quizQuestions) {
		return b.showQuizMenu(chatID)
	}
	q := s.quizQuestions[s.quizIdx]
	if optionIdx < 0 || optionIdx >= len(q.Options) {
		return fmt.Errorf("option index %d out of range", optionIdx)
	}

	correct := q.Options[optionIdx] == q.CorrectAnswer
	s.performance.Record(correct)

	if correct {
		if err := b.send(chatID, "✅ Correct!"); err != nil {
			return err
		}
		// Mastering grants the coin reward and may unlock badges
		if err := s.store.AddMasteredWord(q.Word); err != nil {
			log.Printf("Error mastering word for chat %d: %v", chatID, err)
		}
	} else {
		if err := b.send(chatID, fmt.Sprintf("❌ Not quite. The answer was: %s", q.CorrectAnswer)); err != nil {
			return err
		}
	}

	s.quizIdx++
	if s.quizIdx < len(s.quizQuestions) {
		return b.askQuizQuestion(chatID, s)
	}

	s.quizQuestions = nil
	text := fmt.Sprintf("🏁 Quiz finished! Session score: %d/%d (%d%%).",
		s.performance.Correct, s.performance.Total, s.performance.Percent())
	return b.sendWithKeyboard(chatID, text, mainMenuButtons())
}

// --- Market screen ---

func (b *Bot) showMarket(chatID int64) error {
	s := b.session(chatID)
	ok, err := b.requireLogin(chatID, s)
	if !ok {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🏪 Market — you have %d WordCoins\n\n", s.store.WordCoins())

	var buttons [][]MenuButton
	for _, item := range catalog.MarketItems {
		fmt.Fprintf(&sb, "%s %s (%d 💰) — %s\n", item.Icon, item.Name, item.Price, item.Description)
		buttons = append(buttons, []MenuButton{{
			Text:         fmt.Sprintf("Buy %s %s — %d", item.Icon, item.Name, item.Price),
			CallbackData: "market:buy:" + item.ID,
		}})
	}
	buttons = append(buttons, []MenuButton{
		{Text: "🎒 Inventory", CallbackData: "market:inv"},
		{Text: "🏠 Menu", CallbackData: "menu:main"},
	})

	return b.sendWithKeyboard(chatID, sb.String(), buttons)
}

func (b *Bot) handleMarketCallback(chatID int64, action string) error {
	s := b.session(chatID)
	ok, err := b.requireLogin(chatID, s)
	if !ok {
		return err
	}

	switch {
	case strings.HasPrefix(action, "buy:"):
		itemID := strings.TrimPrefix(action, "buy:")
		item, found := catalog.MarketItemByID(itemID)
		if !found {
			return b.send(chatID, "That item is no longer for sale.")
		}
		if err := s.store.BuyItem(item); err != nil {
			if errors.Is(err, store.ErrInsufficientCoins) {
				return b.send(chatID, fmt.Sprintf("You need %d WordCoins for %s but only have %d.", item.Price, item.Name, s.store.WordCoins()))
			}
			log.Printf("Error buying item for chat %d: %v", chatID, err)
		}
		return nil
	case action == "inv":
		return b.showInventory(chatID, s)
	}
	return nil
}

func (b *Bot) showInventory(chatID int64, s *chatSession) error {
	inventory := s.store.Inventory()
	if len(inventory) == 0 {
		return b.sendWithKeyboard(chatID, "🎒 Your inventory is empty. Earn WordCoins by mastering words!", mainMenuButtons())
	}

	counts := make(map[string]int)
	var order []models.MarketItem
	for _, item := range inventory {
		if counts[item.ID] == 0 {
			order = append(order, item)
		}
		counts[item.ID]++
	}

	var sb strings.Builder
	sb.WriteString("🎒 Your inventory:\n\n")
	for _, item := range order {
		fmt.Fprintf(&sb, "%s %s × %d\n", item.Icon, item.Name, counts[item.ID])
	}
	return b.sendWithKeyboard(chatID, sb.String(), mainMenuButtons())
}

// --- Story screen ---

func (b *Bot) showStoryMenu(chatID int64) error {
	s := b.session(chatID)
	ok, err := b.requireLogin(chatID, s)
	if !ok {
		return err
	}
	if !b.aiEnabled {
		return b.sendWithKeyboard(chatID, "AI features are not configured.", mainMenuButtons())
	}

	buttons := [][]MenuButton{
		{{Text: "📜 New story", CallbackData: "story:new"}},
		{{Text: "🎚 Adjust difficulty", CallbackData: "story:adjust"}},
		{{Text: "🏠 Menu", CallbackData: "menu:main"}},
	}
	text := fmt.Sprintf("📜 Story workshop\nCurrent difficulty: %s\nStories generated so far: %d",
		s.difficulty, s.store.StoriesGenerated())
	return b.sendWithKeyboard(chatID, text, buttons)
}

func (b *Bot) handleStoryCallback(chatID int64, action string) error {
	s := b.session(chatID)
	ok, err := b.requireLogin(chatID, s)
	if !ok {
		return err
	}

	switch action {
	case "new":
		s.state = stateStoryTopic
		return b.send(chatID, "What should the story be about? Send \"-\" to let me pick.")
	case "adjust":
		return b.adjustDifficulty(chatID, s)
	}
	return nil
}

// storyWords picks the target words for narrative generation: the most
// recently mastered words first, topped up from the sample bank for brand-new
// users.
func (b *Bot) storyWords(s *chatSession) []string {
	mastered := s.store.MasteredWords()

	type wordAt struct {
		word string
		at   int64
	}
	var recent []wordAt
	for w, t := range mastered {
		recent = append(recent, wordAt{w, t.UnixNano()})
	}
	sort.Slice(recent, func(i, j int) bool { return recent[i].at > recent[j].at })

	var words []string
	for _, w := range recent {
		if len(words) == b.config.StoryWordCount {
			break
		}
		words = append(words, w.word)
	}
	for _, w := range catalog.NewWords {
		if len(words) == b.config.StoryWordCount {
			break
		}
		words = append(words, w.Word)
	}
	return words
}

func (b *Bot) generateStory(chatID int64, s *chatSession, topic string) error {
	if !b.aiEnabled {
		return b.send(chatID, "AI features are not configured.")
	}
	if err := b.send(chatID, "📜 Writing your story…"); err != nil {
		return err
	}

	out, err := b.aiClient.GenerateMiniNarrative(ai.NarrativeInput{
		TargetWords: b.storyWords(s),
		Performance: ai.QuizPerformance{
			CorrectAnswers: s.performance.Correct,
			TotalQuestions: s.performance.Total,
		},
		Topic: topic,
	})
	if err != nil {
		log.Printf("Error generating story for chat %d: %v", chatID, err)
		return b.send(chatID, "Could not generate a story right now. Please try again later.")
	}

	if err := b.send(chatID, out.Narrative+"\n\n"+out.Progress); err != nil {
		return err
	}

	// Counts toward the first-story badge
	if err := s.store.IncrementStoriesGenerated(); err != nil {
		log.Printf("Error recording story for chat %d: %v", chatID, err)
	}
	return b.showStoryMenu(chatID)
}

func (b *Bot) adjustDifficulty(chatID int64, s *chatSession) error {
	if !b.aiEnabled {
		return b.send(chatID, "AI features are not configured.")
	}

	out, err := b.aiClient.AdjustNarrativeDifficulty(ai.DifficultyInput{
		QuizPerformance:   s.performance.Percent(),
		TargetWordList:    b.storyWords(s),
		CurrentDifficulty: s.difficulty,
	})
	if err != nil {
		log.Printf("Error adjusting difficulty for chat %d: %v", chatID, err)
		return b.send(chatID, "Could not adjust the difficulty right now. Please try again later.")
	}

	s.difficulty = out.AdjustedDifficulty
	return b.send(chatID, fmt.Sprintf("🎚 Difficulty is now %s.\n%s", out.AdjustedDifficulty, out.Reason))
}
