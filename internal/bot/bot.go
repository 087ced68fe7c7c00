package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/ydsbot/internal/ai"
	"github.com/example/ydsbot/internal/content"
	"github.com/example/ydsbot/internal/database"
	"github.com/example/ydsbot/internal/session"
	"github.com/example/ydsbot/internal/streak"
	"github.com/example/ydsbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot represents the Telegram bot application
type Bot struct {
	api      *tgbotapi.BotAPI
	config   *BotConfig
	words    *database.WordRepository
	settings *database.SettingsRepository
	engine   *session.Engine
	cache    *content.Cache
	streaks  *streak.Controller

	// Set by the word-studied event when the daily goal is crossed;
	// consumed by the judgment handler. Single driver loop, no locking.
	celebrationDue bool
}

// unavailableProvider stands in when the API key is missing: every card
// shows the configuration error instead of content.
type unavailableProvider struct {
	err error
}

func (p unavailableProvider) FetchContent(ctx context.Context, word string) (models.WordContent, error) {
	return models.WordContent{}, p.err
}

// NewBot creates the bot and wires the session engine, content cache and
// streak controller together.
func NewBot(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %v", err)
	}

	words := database.NewWordRepository()

	var provider content.Provider
	if mistral, err := ai.New(); err != nil {
		log.Printf("content provider unavailable: %v", err)
		provider = unavailableProvider{err: err}
	} else {
		provider = mistral
	}

	streaks, err := streak.NewController(database.NewStreakRepository(), nil, time.Now())
	if err != nil {
		return nil, err
	}

	b := &Bot{
		api:      api,
		config:   DefaultConfig(),
		words:    words,
		settings: database.NewSettingsRepository(),
		engine:   session.NewEngine(nil),
		cache:    content.New(provider, words),
		streaks:  streaks,
	}

	b.engine.OnWordStudied(func(w *models.Word) {
		// Saved through the cache lock: a prefetch for this card may still
		// be writing its cache fields.
		if err := b.cache.SaveWord(w); err != nil {
			log.Printf("failed to save word %q: %v", w.Text, err)
		}
		if b.streaks.RecordWordStudied(time.Now()) {
			b.celebrationDue = true
		}
	})

	return b, nil
}

// Start runs the update loop until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	log.Printf("Authorized on account %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.config.UpdateTimeout
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// Stop shuts down the update channel.
func (b *Bot) Stop(ctx context.Context) error {
	b.api.StopReceivingUpdates()
	return nil
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.IsCommand():
		if err := b.HandleCommand(ctx, update.Message); err != nil {
			log.Printf("command error: %v", err)
		}
	case update.CallbackQuery != nil:
		if err := b.HandleCallback(ctx, update.CallbackQuery); err != nil {
			log.Printf("callback error: %v", err)
		}
	}
}

// SendDueReminder implements the scheduler's notifier: a daily ping with
// the number of words waiting.
func (b *Bot) SendDueReminder(chatID int64, dueCount int) error {
	text := fmt.Sprintf("📚 You have %d word%s due for review. Ready for a round? /study",
		dueCount, plural(dueCount))
	return b.send(chatID, text)
}

// rememberChat stores the chat so the reminder job knows where to ping.
func (b *Bot) rememberChat(chatID int64) {
	settings, err := b.settings.LoadOrCreate()
	if err != nil {
		log.Printf("failed to load settings: %v", err)
		return
	}
	if settings.ChatID == chatID {
		return
	}
	settings.ChatID = chatID
	if err := b.settings.Update(settings); err != nil {
		log.Printf("failed to save settings: %v", err)
	}
}

func (b *Bot) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %v", err)
	}
	return nil
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %v", err)
	}
	return nil
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
