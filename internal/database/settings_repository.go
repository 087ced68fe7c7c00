package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// BotSettings stores the bot's single-user runtime settings.
type BotSettings struct {
	ID           int64 `db:"id"`
	ChatID       int64 `db:"chat_id"`
	ReminderHour int   `db:"reminder_hour"`
}

// SettingsRepository handles database operations for bot settings
type SettingsRepository struct{}

// NewSettingsRepository creates a new repository instance
func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

// LoadOrCreate returns the settings record, creating defaults on first use.
func (r *SettingsRepository) LoadOrCreate() (*BotSettings, error) {
	var settings BotSettings
	err := DB.Get(&settings, "SELECT * FROM bot_settings WHERE id = 1")
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to load settings: %v", err)
	}

	created := &BotSettings{ID: 1, ReminderHour: 9}
	query := DB.Rebind("INSERT INTO bot_settings (id, chat_id, reminder_hour) VALUES (?, ?, ?)")
	if _, err := DB.Exec(query, created.ID, created.ChatID, created.ReminderHour); err != nil {
		return nil, fmt.Errorf("failed to create settings: %v", err)
	}
	return created, nil
}

// Update persists the settings record
func (r *SettingsRepository) Update(settings *BotSettings) error {
	query := DB.Rebind("UPDATE bot_settings SET chat_id = ?, reminder_hour = ? WHERE id = ?")
	if _, err := DB.Exec(query, settings.ChatID, settings.ReminderHour, settings.ID); err != nil {
		return fmt.Errorf("failed to update settings: %v", err)
	}
	return nil
}
