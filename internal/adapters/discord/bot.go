package discord

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"withgames/internal/application"
	"withgames/internal/config"
	"withgames/internal/ports/output"
)

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	config  *config.Config
	handler *Handler
	scanner *application.LifecycleScanner
}

// NewBot creates a Bot and wires ports: output adapters -> application (use
// cases) -> handler.
func NewBot(cfg *config.Config, eventRepo output.EventRepository, participantRepo output.ParticipantRepository, translator output.T) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	notifier := NewNotifier(s)
	ledger := application.NewParticipantLedger(participantRepo)
	events := application.NewEventService(eventRepo, participantRepo)
	reconciler := application.NewCapacityReconciler(ledger, events)
	recruitment := application.NewRecruitmentService(ledger, events, notifier, translator, cfg.DefaultLocale)

	bot := &Bot{session: s, config: cfg}
	bot.scanner = application.NewLifecycleScanner(
		events, ledger, notifier, translator, bot,
		cfg.DefaultLocale, cfg.ReminderWindow, cfg.ReminderInterval, cfg.CompletionInterval,
	)
	bot.handler = NewHandler(events, recruitment, reconciler, translator, cfg.DefaultLocale)

	s.AddHandler(bot.handleInteraction)
	return bot, nil
}

// GuildIDs implements application.GuildSource over session state.
func (b *Bot) GuildIDs() []string {
	guilds := b.session.State.Guilds
	ids := make([]string, 0, len(guilds))
	for _, g := range guilds {
		ids = append(ids, g.ID)
	}
	if len(ids) == 0 && b.config.GuildID != "" {
		ids = append(ids, b.config.GuildID)
	}
	return ids
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == "event" {
			b.handler.HandleCommand(s, i)
		}
	case discordgo.InteractionMessageComponent:
		switch i.MessageComponentData().CustomID {
		case customIDJoin:
			b.handler.HandleJoin(s, i)
		case customIDLeave:
			b.handler.HandleLeave(s, i)
		}
	}
}

// Start runs the bot until interrupted or ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer b.session.Close()

	if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, eventCommand); err != nil {
		log.WithError(err).Warn("failed to register /event command")
	}

	scanCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	b.scanner.Run(scanCtx)

	log.Info("bot is online, press CTRL+C to exit")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-stop:
	case <-ctx.Done():
	}

	return nil
}
