// Package scheduler sends daily practice reminders to chats with a persisted
// session.
package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/alhaannn/wordwings-prototype/internal/database"
)

// Default reminder window (hours of the day, UTC)
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 20
)

// Notifier interface for sending reminders to a chat
type Notifier interface {
	SendReminders(chatID int64, count int) error
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
}

// New creates a new scheduler instance
func New(notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		notifier:  notifier,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Hourly check; the window filter below keeps reminders to daytime
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// envHour reads an hour-of-day override from the environment
func envHour(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}

// checkAndSendReminders nudges every chat with a persisted session about quiz
// questions they have not mastered yet
func (s *Scheduler) checkAndSendReminders() {
	currentHour := time.Now().UTC().Hour()
	startHour := envHour("NOTIFICATION_START_HOUR", DefaultNotificationStartHour)
	endHour := envHour("NOTIFICATION_END_HOUR", DefaultNotificationEndHour)

	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminders",
			currentHour, startHour, endHour)
		return
	}

	sessionRepo := database.NewSessionRepository()
	sessions, err := sessionRepo.ListAll()
	if err != nil {
		log.Printf("Error listing sessions for reminders: %v", err)
		return
	}

	quizRepo := database.NewQuizRepository()
	wordRepo := database.NewWordRepository()

	for chatID, userID := range sessions {
		count, err := pendingQuestions(quizRepo, wordRepo, userID)
		if err != nil {
			log.Printf("Error counting pending questions for user %s: %v", userID, err)
			continue
		}
		if count == 0 {
			continue
		}
		if err := s.notifier.SendReminders(chatID, count); err != nil {
			log.Printf("Error sending reminder to chat %d: %v", chatID, err)
		}
	}
}

// pendingQuestions counts quiz-bank questions whose word the user has not
// mastered yet
func pendingQuestions(quizRepo *database.QuizRepository, wordRepo *database.WordRepository, userID string) (int, error) {
	questions, err := quizRepo.List(userID)
	if err != nil {
		return 0, err
	}
	mastered, err := wordRepo.ListMastered(userID)
	if err != nil {
		return 0, err
	}

	masteredSet := make(map[string]bool, len(mastered))
	for _, w := range mastered {
		masteredSet[w.Word] = true
	}

	count := 0
	for _, q := range questions {
		if !masteredSet[q.Word] {
			count++
		}
	}
	return count, nil
}

// RunManualCheck forces a reminder check for a specific chat
func (s *Scheduler) RunManualCheck(chatID int64) error {
	sessionRepo := database.NewSessionRepository()
	userID, err := sessionRepo.Load(chatID)
	if err != nil {
		return err
	}
	if userID == "" {
		return nil
	}

	count, err := pendingQuestions(database.NewQuizRepository(), database.NewWordRepository(), userID)
	if err != nil {
		return err
	}
	if count > 0 {
		return s.notifier.SendReminders(chatID, count)
	}
	return nil
}
