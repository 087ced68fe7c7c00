package bot

import (
	"time"
)

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Timeout for a single content fetch while showing a card
	FetchTimeout time.Duration
	// Maximum number of entries shown by the word list command
	WordListLimit int
	// Long-polling timeout in seconds
	UpdateTimeout int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		FetchTimeout:  20 * time.Second,
		WordListLimit: 30,
		UpdateTimeout: 30,
	}
}
