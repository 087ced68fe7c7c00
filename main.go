package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/ydsbot/internal/bot"
	"github.com/example/ydsbot/internal/database"
	"github.com/example/ydsbot/internal/excel"
	"github.com/example/ydsbot/internal/scheduler"
	"github.com/example/ydsbot/pkg/vocabulary"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	importPath := flag.String("import", "", "import a word list (xlsx or csv) and exit")
	flag.Parse()

	// Connect to the database
	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if *importPath != "" {
		runImport(*importPath)
		return
	}

	// Seed the vocabulary on first run
	wordRepo := database.NewWordRepository()
	if inserted, err := wordRepo.SeedIfEmpty(vocabulary.Words, time.Now()); err != nil {
		log.Fatalf("Failed to seed vocabulary: %v", err)
	} else if inserted > 0 {
		log.Printf("Seeded %d vocabulary words", inserted)
	}

	// Create the bot
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	b, err := bot.NewBot(token)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Daily study reminders
	sched := scheduler.New(b)
	sched.Start()
	defer sched.Stop()

	// Channel for shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})

	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := b.Stop(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
		close(done)
	}()

	log.Println("Bot started. Press Ctrl+C to stop.")
	go func() {
		if err := b.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Bot error: %v", err)
		}
	}()

	<-done
	log.Println("Bot stopped successfully")
}

func runImport(path string) {
	result, err := excel.ImportWords(excel.DefaultImportConfig(path), time.Now())
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Printf("Import finished: %d processed, %d created, %d skipped",
		result.TotalProcessed, result.Created, result.Skipped)
	for _, e := range result.Errors {
		log.Printf("Import error: %s", e)
	}
}
