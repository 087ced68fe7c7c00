package scheduler

import (
	"log"
	"time"

	"github.com/example/ydsbot/internal/database"
	"github.com/go-co-op/gocron"
)

// Notifier interface for sending study reminders
type Notifier interface {
	SendDueReminder(chatID int64, dueCount int) error
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
}

// New creates a new scheduler instance
func New(notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.Local)
	return &Scheduler{
		scheduler: s,
		notifier:  notifier,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Hourly check; the reminder itself only fires in its configured hour
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminder)

	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminder pings the registered chat with the due-word count
// when the current hour matches the configured reminder hour.
func (s *Scheduler) checkAndSendReminder() {
	settings, err := database.NewSettingsRepository().LoadOrCreate()
	if err != nil {
		log.Printf("failed to load settings for reminder: %v", err)
		return
	}
	if settings.ChatID == 0 {
		// Nobody has talked to the bot yet
		return
	}

	now := time.Now()
	if now.Hour() != settings.ReminderHour {
		return
	}

	dueCount, err := database.NewWordRepository().CountDue(now)
	if err != nil {
		log.Printf("failed to count due words for reminder: %v", err)
		return
	}
	if dueCount == 0 {
		return
	}

	if err := s.notifier.SendDueReminder(settings.ChatID, dueCount); err != nil {
		log.Printf("failed to send reminder: %v", err)
	}
}
