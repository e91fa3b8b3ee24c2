package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/muzaproject/muza-bot/internal/bot"
	"github.com/muzaproject/muza-bot/internal/llm"
	"github.com/muzaproject/muza-bot/internal/recommend"
	"github.com/muzaproject/muza-bot/internal/storage"
	"github.com/muzaproject/muza-bot/internal/taxonomy"
	"github.com/muzaproject/muza-bot/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Local .env is optional
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx := context.Background()

	// Initialize storage
	var store storage.Storage
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		logger.Info("Using PostgreSQL storage")
		dbConfig := storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		}
		store, err = storage.NewPostgresStorage(dbConfig, logger)
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Seed the interest vocabulary from the taxonomy
	if err := store.SeedInterests(ctx, taxonomy.Vocabulary()); err != nil {
		logger.Fatal("Failed to seed interests", zap.Error(err))
	}

	// Load museums from CSV once, when the table is empty
	if cfg.Seed.MuseumsCSV != "" {
		count, err := store.CountMuseums(ctx)
		if err != nil {
			logger.Fatal("Failed to count museums", zap.Error(err))
		}
		if count == 0 {
			if _, err := storage.LoadMuseumsCSV(ctx, store, cfg.Seed.MuseumsCSV, logger); err != nil {
				logger.Fatal("Failed to load museums", zap.Error(err))
			}
		} else {
			logger.Info("Museums already loaded, skipping CSV import", zap.Int("count", count))
		}
	}

	// Initialize the text-generation client
	completer := llm.NewClient(
		cfg.LLM.APIKey,
		cfg.LLM.BaseURL,
		cfg.LLM.Model,
		time.Duration(cfg.LLM.TimeoutSeconds)*time.Second,
		logger,
	)

	// Initialize the recommendation service
	recommender := recommend.NewService(store, completer, logger, recommend.Options{
		MaxResults:     cfg.Recommend.MaxResults,
		CandidateLimit: cfg.Recommend.CandidateLimit,
		TagWorkers:     cfg.Recommend.TagWorkers,
	})

	// Initialize bot
	b, err := bot.New(cfg.Telegram.Token, store, recommender, logger)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	// Start the bot
	if err := b.Start(); err != nil {
		logger.Fatal("Bot error", zap.Error(err))
	}
}
