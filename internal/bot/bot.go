// Package bot is the view layer: Telegram screens for the dashboard,
// learning, quiz, market, story and auth flows. Every mutation goes through
// the session store; the bot itself owns no game state beyond per-chat
// conversation progress.
package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/alhaannn/wordwings-prototype/internal/ai"
	"github.com/alhaannn/wordwings-prototype/internal/database"
	"github.com/alhaannn/wordwings-prototype/internal/quiz"
	"github.com/alhaannn/wordwings-prototype/internal/scheduler"
	"github.com/alhaannn/wordwings-prototype/internal/store"
	"github.com/alhaannn/wordwings-prototype/pkg/models"
)

// MenuButton represents a button in a menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates an inline keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// chatSession tracks one chat's conversation state and its session store
type chatSession struct {
	store *store.Store

	// Conversation state for multi-step input (auth, topics)
	state       string
	signupName  string
	loginEmail  string
	signupEmail string

	// Learning screen position in the merged word bank
	learnIdx int

	// Active quiz round
	quizQuestions []models.QuizQuestion
	quizIdx       int
	performance   quiz.Performance

	// Last difficulty used for generation flows
	difficulty models.Difficulty
}

// Conversation states
const (
	stateIdle            = ""
	stateLoginEmail      = "login_email"
	stateLoginPassword   = "login_password"
	stateSignupName      = "signup_name"
	stateSignupEmail     = "signup_email"
	stateSignupPassword  = "signup_password"
	stateStoryTopic      = "story_topic"
	stateTopicWordsTopic = "topic_words"
)

// Bot represents the Telegram application
type Bot struct {
	api          *tgbotapi.BotAPI
	token        string
	gateway      *database.Gateway
	sessionRepo  *database.SessionRepository
	customWords  *database.CustomWordRepository
	aiClient     *ai.Client
	aiEnabled    bool
	config       *BotConfig
	scheduler    *scheduler.Scheduler
	schedEnabled bool

	mu       sync.Mutex
	sessions map[int64]*chatSession
}

// New creates a new bot instance
func New() (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	if database.DB == nil {
		return nil, fmt.Errorf("database connection is not established")
	}

	aiEnabled := os.Getenv("OPENAI_API_KEY") != ""
	var aiClient *ai.Client
	if aiEnabled {
		var err error
		aiClient, err = ai.New()
		if err != nil {
			log.Printf("Warning: unable to initialize AI client: %v", err)
			aiEnabled = false
		}
	}

	return &Bot{
		token:        token,
		gateway:      database.NewGateway(),
		sessionRepo:  database.NewSessionRepository(),
		customWords:  database.NewCustomWordRepository(),
		aiClient:     aiClient,
		aiEnabled:    aiEnabled,
		config:       DefaultConfig(),
		schedEnabled: os.Getenv("ENABLE_SCHEDULER") != "false",
		sessions:     make(map[int64]*chatSession),
	}, nil
}

// Start connects to Telegram and processes updates until ctx is canceled
func (b *Bot) Start(ctx context.Context) error {
	api, err := tgbotapi.NewBotAPI(b.token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %v", err)
	}
	b.api = api
	log.Printf("Authorized on account %s", api.Self.UserName)

	if b.schedEnabled {
		b.scheduler = scheduler.New(b)
		b.scheduler.Start()
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(update)
		}
	}
}

// Stop gracefully stops the bot
func (b *Bot) Stop(ctx context.Context) error {
	if b.scheduler != nil {
		b.scheduler.Stop()
	}
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
	log.Println("Bot stopped")
	return nil
}

// session returns the chat's session, creating it on first contact
func (b *Bot) session(chatID int64) *chatSession {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.sessions[chatID]
	if !ok {
		s = &chatSession{
			store:      store.New(b.gateway, &chatNotifier{bot: b, chatID: chatID}),
			difficulty: models.Difficulty(b.config.DefaultDifficulty),
		}
		b.sessions[chatID] = s
	}
	return s
}

// dropSession removes a chat's session after logout
func (b *Bot) dropSession(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sessions, chatID)
}

// handleUpdate routes one incoming update
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		if err := b.handleCallback(update.CallbackQuery); err != nil {
			log.Printf("Error handling callback %q: %v", update.CallbackQuery.Data, err)
		}
		return
	}
	if update.Message != nil {
		var err error
		if update.Message.IsCommand() {
			err = b.handleCommand(update.Message)
		} else {
			err = b.handleText(update.Message)
		}
		if err != nil {
			log.Printf("Error handling message from chat %d: %v", update.Message.Chat.ID, err)
		}
	}
}

// send delivers a plain text message to the chat
func (b *Bot) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	return err
}

// sendWithKeyboard delivers a message with an inline keyboard
func (b *Bot) sendWithKeyboard(chatID int64, text string, buttons [][]MenuButton) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = createKeyboard(buttons)
	_, err := b.api.Send(msg)
	return err
}

// chatNotifier delivers store notifications as chat messages. It implements
// store.Notifier.
type chatNotifier struct {
	bot    *Bot
	chatID int64
}

// Notify sends one toast-style message to the chat
func (n *chatNotifier) Notify(title, message string) {
	if n.bot.api == nil {
		return
	}
	if err := n.bot.send(n.chatID, fmt.Sprintf("%s\n%s", title, message)); err != nil {
		log.Printf("Error sending notification to chat %d: %v", n.chatID, err)
	}
}

// SendReminders implements scheduler.Notifier: it nudges a chat about
// unanswered quiz questions.
func (b *Bot) SendReminders(chatID int64, count int) error {
	if b.api == nil {
		return fmt.Errorf("bot is not connected")
	}
	text := fmt.Sprintf("🔔 You have %d quiz questions waiting. A quick round keeps your words fresh!", count)
	return b.send(chatID, text)
}
