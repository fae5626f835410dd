package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/vocabtrainer/internal/database"
	"github.com/example/vocabtrainer/internal/spaced_repetition"
	"github.com/go-co-op/gocron"
)

// Default notification window
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 21
)

// Notifier interface for sending review reminders
type Notifier interface {
	SendReminder(dueCount int) error
}

// Scheduler periodically checks for learned words that are due for
// review and notifies the user. It runs outside the quiz engine core;
// the engine itself stays synchronous.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     *database.ProgressStore
	review    *spaced_repetition.Scheduler
	notifier  Notifier
}

// New creates a new scheduler instance
func New(store *database.ProgressStore, review *spaced_repetition.Scheduler, notifier Notifier) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		store:     store,
		review:    review,
		notifier:  notifier,
	}
}

// Start begins the hourly due-word check in the background
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminder)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminder sends a reminder when words are due and the
// current hour is inside the notification window.
func (s *Scheduler) checkAndSendReminder() {
	currentHour := time.Now().Hour()

	startHour := envHour("NOTIFICATION_START_HOUR", DefaultNotificationStartHour)
	endHour := envHour("NOTIFICATION_END_HOUR", DefaultNotificationEndHour)

	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminder",
			currentHour, startHour, endHour)
		return
	}

	count, err := s.DueCount()
	if err != nil {
		log.Printf("Error counting due words: %v", err)
		return
	}
	if count == 0 {
		return
	}

	if err := s.notifier.SendReminder(count); err != nil {
		log.Printf("Error sending reminder: %v", err)
	}
}

// DueCount returns how many learned words are currently due for review
func (s *Scheduler) DueCount() (int, error) {
	words, err := s.store.AllLearnedWords()
	if err != nil {
		return 0, err
	}
	return len(s.review.DueWords(words, time.Now())), nil
}

// RunManualCheck forces an immediate reminder check
func (s *Scheduler) RunManualCheck() error {
	count, err := s.DueCount()
	if err != nil {
		return err
	}
	if count > 0 {
		return s.notifier.SendReminder(count)
	}
	return nil
}

// envHour reads an hour override from the environment
func envHour(name string, fallback int) int {
	if value := os.Getenv(name); value != "" {
		if h, err := strconv.Atoi(value); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
