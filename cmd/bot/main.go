package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"

	"withgames/internal/adapters/discord"
	"withgames/internal/config"
	"withgames/internal/infrastructure/docstore"
	"withgames/internal/infrastructure/i18n"
	"withgames/internal/infrastructure/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if cfg.IsDevelopment() {
		log.SetLevel(log.DebugLevel)
	}

	if err := docstore.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	ctx := context.Background()
	pool, err := docstore.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to the database")
	}
	defer pool.Close()

	store := docstore.NewPostgresStore(pool)
	eventRepo := repository.NewEventRepository(store)
	participantRepo := repository.NewParticipantRepository(store)
	translator := i18n.NewTranslator(cfg.DefaultLocale)

	bot, err := discord.NewBot(cfg, eventRepo, participantRepo, translator)
	if err != nil {
		log.WithError(err).Fatal("failed to create bot")
	}
	if err := bot.Start(ctx); err != nil {
		log.WithError(err).Error("bot stopped")
		os.Exit(1)
	}
}
