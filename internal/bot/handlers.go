package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/ydsbot/internal/session"
	"github.com/example/ydsbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	callbackKnow     = "judge:know"
	callbackDontKnow = "judge:dontknow"
	callbackSkip     = "judge:skip"
)

var judgmentKeyboard = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✅ I know it", callbackKnow),
		tgbotapi.NewInlineKeyboardButtonData("❌ Don't know", callbackDontKnow),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⏭ Skip", callbackSkip),
	),
)

// HandleCommand routes an incoming command message
func (b *Bot) HandleCommand(ctx context.Context, message *tgbotapi.Message) error {
	b.rememberChat(message.Chat.ID)

	switch message.Command() {
	case "start":
		return b.handleStart(message)
	case "study":
		return b.handleStudy(ctx, message)
	case "stats":
		return b.handleStats(message)
	case "words":
		return b.handleWords(message)
	case "streak":
		return b.handleStreak(message)
	case "goal":
		return b.handleGoal(message)
	case "remind":
		return b.handleRemind(message)
	case "help":
		return b.handleHelp(message)
	default:
		return b.handleUnknownCommand(message)
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) error {
	total, err := b.words.Count()
	if err != nil {
		return err
	}
	text := fmt.Sprintf(
		"Welcome to YDS vocabulary training! 📖\n\n"+
			"%d words are waiting for you. I'll show one card at a time — "+
			"tell me whether you know it, and I'll schedule its next "+
			"appearance on a 7-level spaced repetition ladder.\n\n"+
			"Start a round with /study, or see /help for everything else.",
		total)
	return b.send(message.Chat.ID, text)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) error {
	text := "Commands:\n" +
		"/study — start a review round (up to 20 due words)\n" +
		"/stats — collection and streak statistics\n" +
		"/words [all|due|learned|new] — browse the word list\n" +
		"/streak — today's progress and streak\n" +
		"/goal N — set the daily goal (5–50 words)\n" +
		"/remind H — set the reminder hour (0–23)\n" +
		"/help — this message"
	return b.send(message.Chat.ID, text)
}

// handleStudy builds a fresh session from the due words and shows the
// first card. Any session in progress is discarded.
func (b *Bot) handleStudy(ctx context.Context, message *tgbotapi.Message) error {
	now := time.Now()
	all, err := b.words.GetAll()
	if err != nil {
		return err
	}
	refs := make([]*models.Word, len(all))
	for i := range all {
		refs[i] = &all[i]
	}

	b.engine.BuildQueue(refs, now)

	if b.engine.State() == session.StateNoWordsDue {
		next := earliestReview(refs, now)
		text := "Nothing due right now — your words are resting. 🎉"
		if next != nil {
			text += fmt.Sprintf("\nThe next word comes back %s.", formatUntil(next.NextReviewAt, now))
		}
		return b.send(message.Chat.ID, text)
	}

	return b.sendCurrentCard(ctx, message.Chat.ID)
}

// sendCurrentCard renders the current card with its content and the
// judgment keyboard, then warms the cache for the next card.
func (b *Bot) sendCurrentCard(ctx context.Context, chatID int64) error {
	word := b.engine.Current()
	if word == nil {
		return nil
	}
	now := time.Now()

	header := fmt.Sprintf("📖 *%s*  (%d/%d · %s)\n\n",
		word.Text, b.engine.Position(), b.engine.QueueLength(), word.LevelLabel())

	fetchCtx, cancel := context.WithTimeout(ctx, b.config.FetchTimeout)
	defer cancel()

	var body string
	if c, err := b.cache.Get(fetchCtx, word, now); err != nil {
		body = fmt.Sprintf("⚠️ Couldn't load the card content: %v\n\nYou can still judge the word, or try /study again later.", err)
	} else {
		body = fmt.Sprintf("_%s_\n\n1. %s\n2. %s", c.Definition, c.Example1, c.Example2)
	}

	// Warm up the next card while the user reads this one
	b.cache.Prefetch(b.engine.Next(), now)

	return b.sendWithKeyboard(chatID, header+body, judgmentKeyboard)
}

// HandleCallback routes an inline-keyboard press
func (b *Bot) HandleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	// Acknowledge the press so the client stops its spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		return fmt.Errorf("failed to answer callback: %v", err)
	}

	switch callback.Data {
	case callbackKnow:
		return b.handleJudgment(ctx, callback.Message.Chat.ID, session.Know, false)
	case callbackDontKnow:
		return b.handleJudgment(ctx, callback.Message.Chat.ID, session.DontKnow, false)
	case callbackSkip:
		return b.handleJudgment(ctx, callback.Message.Chat.ID, session.DontKnow, true)
	}
	return nil
}

func (b *Bot) handleJudgment(ctx context.Context, chatID int64, j session.Judgment, skip bool) error {
	now := time.Now()

	var err error
	if skip {
		err = b.engine.Skip(now)
	} else {
		err = b.engine.SubmitJudgment(j, now)
	}
	if err == session.ErrNoActiveSession {
		return b.send(chatID, "That round is over. Start a new one with /study.")
	}
	if err != nil {
		return err
	}

	if b.celebrationDue {
		b.celebrationDue = false
		if err := b.send(chatID, "🎊 "+b.streaks.MotivationalMessage()); err != nil {
			return err
		}
	}

	if b.engine.State() == session.StateSessionComplete {
		return b.sendSessionSummary(chatID)
	}
	return b.sendCurrentCard(ctx, chatID)
}

func (b *Bot) sendSessionSummary(chatID int64) error {
	s := b.streaks.Streak()
	text := fmt.Sprintf(
		"Session complete! 🏁\n\n%s\nToday: %d/%d words (%.0f%%)\n%s",
		b.streaks.StreakMessage(),
		s.WordsStudiedToday, s.DailyGoal, s.ProgressPercentage()*100,
		b.streaks.MotivationalMessage())
	return b.send(chatID, text)
}

func (b *Bot) handleStats(message *tgbotapi.Message) error {
	now := time.Now()
	total, err := b.words.Count()
	if err != nil {
		return err
	}
	due, err := b.words.CountDue(now)
	if err != nil {
		return err
	}
	learned, err := b.words.CountLearned()
	if err != nil {
		return err
	}

	s := b.streaks.Streak()
	text := fmt.Sprintf(
		"📊 *Statistics*\n\n"+
			"Words: %d total · %d due · %d learned\n\n"+
			"%s\nBest streak: %d days\n"+
			"Today: %d/%d words\nLifetime: %d words studied",
		total, due, learned,
		b.streaks.StreakMessage(), s.BestStreak,
		s.WordsStudiedToday, s.DailyGoal, s.TotalWordsStudied)
	return b.send(message.Chat.ID, text)
}

func (b *Bot) handleWords(message *tgbotapi.Message) error {
	now := time.Now()
	all, err := b.words.GetAll()
	if err != nil {
		return err
	}

	filter := strings.ToLower(strings.TrimSpace(message.CommandArguments()))
	if filter == "" {
		filter = "all"
	}

	var filtered []models.Word
	for _, w := range all {
		switch filter {
		case "all":
			filtered = append(filtered, w)
		case "due":
			if w.IsDue(now) {
				filtered = append(filtered, w)
			}
		case "learned":
			if w.IsLearned {
				filtered = append(filtered, w)
			}
		case "new":
			if w.Level == 0 {
				filtered = append(filtered, w)
			}
		default:
			return b.send(message.Chat.ID, "Unknown filter. Use /words all, due, learned or new.")
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "*%d %s words*\n\n", len(filtered), filter)
	for i, w := range filtered {
		if i >= b.config.WordListLimit {
			fmt.Fprintf(&sb, "… and %d more", len(filtered)-b.config.WordListLimit)
			break
		}
		fmt.Fprintf(&sb, "%s — %s\n", w.Text, w.LevelLabel())
	}
	return b.send(message.Chat.ID, sb.String())
}

func (b *Bot) handleStreak(message *tgbotapi.Message) error {
	s := b.streaks.Streak()
	text := fmt.Sprintf("%s\n%s\nBest streak: %d days",
		b.streaks.StreakMessage(), b.streaks.MotivationalMessage(), s.BestStreak)
	return b.send(message.Chat.ID, text)
}

func (b *Bot) handleGoal(message *tgbotapi.Message) error {
	arg := strings.TrimSpace(message.CommandArguments())
	if arg == "" {
		return b.send(message.Chat.ID,
			fmt.Sprintf("Your daily goal is %d words. Change it with /goal N (%d–%d).",
				b.streaks.Streak().DailyGoal, models.MinDailyGoal, models.MaxDailyGoal))
	}

	goal, err := strconv.Atoi(arg)
	if err != nil {
		return b.send(message.Chat.ID, "That doesn't look like a number. Try /goal 15.")
	}
	if err := b.streaks.SetDailyGoal(goal); err != nil {
		return b.send(message.Chat.ID, err.Error())
	}
	return b.send(message.Chat.ID, fmt.Sprintf("Daily goal set to %d words. 🎯", goal))
}

func (b *Bot) handleRemind(message *tgbotapi.Message) error {
	arg := strings.TrimSpace(message.CommandArguments())
	settings, err := b.settings.LoadOrCreate()
	if err != nil {
		return err
	}
	if arg == "" {
		return b.send(message.Chat.ID,
			fmt.Sprintf("Reminders go out around %02d:00. Change with /remind H.", settings.ReminderHour))
	}

	hour, err := strconv.Atoi(arg)
	if err != nil || hour < 0 || hour > 23 {
		return b.send(message.Chat.ID, "The reminder hour must be between 0 and 23.")
	}
	settings.ReminderHour = hour
	if err := b.settings.Update(settings); err != nil {
		return err
	}
	return b.send(message.Chat.ID, fmt.Sprintf("Reminders will arrive around %02d:00. ⏰", hour))
}

func (b *Bot) handleUnknownCommand(message *tgbotapi.Message) error {
	return b.send(message.Chat.ID, "I don't know that command. See /help.")
}

// earliestReview returns the word with the soonest future review, or nil.
func earliestReview(words []*models.Word, now time.Time) *models.Word {
	var next *models.Word
	for _, w := range words {
		if w.IsDue(now) {
			continue
		}
		if next == nil || w.NextReviewAt.Before(next.NextReviewAt) {
			next = w
		}
	}
	return next
}

func formatUntil(at, now time.Time) string {
	d := at.Sub(now)
	switch {
	case d < time.Hour:
		return fmt.Sprintf("in %d minutes", int(d.Minutes())+1)
	case d < 24*time.Hour:
		return fmt.Sprintf("in about %d hours", int(d.Hours())+1)
	default:
		return fmt.Sprintf("in %d days", int(d.Hours()/24)+1)
	}
}
