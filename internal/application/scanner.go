package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"withgames/internal/domain"
	"withgames/internal/domain/entities"
	"withgames/internal/ports/output"
)

// GuildSource lists the guilds to sweep. The Discord adapter implements it
// over session state.
type GuildSource interface {
	GuildIDs() []string
}

// LifecycleScanner advances event status on expiry and dispatches the
// pre-start reminder, at most once per event. The two sweeps run on
// independent timers.
type LifecycleScanner struct {
	events             *EventService
	ledger             *ParticipantLedger
	notifier           output.Notifier
	translator         output.T
	guilds             GuildSource
	locale             string
	reminderWindow     time.Duration
	reminderInterval   time.Duration
	completionInterval time.Duration
	now                nowFunc
}

// NewLifecycleScanner creates a LifecycleScanner.
func NewLifecycleScanner(
	events *EventService,
	ledger *ParticipantLedger,
	notifier output.Notifier,
	translator output.T,
	guilds GuildSource,
	locale string,
	reminderWindow, reminderInterval, completionInterval time.Duration,
) *LifecycleScanner {
	return &LifecycleScanner{
		events:             events,
		ledger:             ledger,
		notifier:           notifier,
		translator:         translator,
		guilds:             guilds,
		locale:             locale,
		reminderWindow:     reminderWindow,
		reminderInterval:   reminderInterval,
		completionInterval: completionInterval,
		now:                defaultNow,
	}
}

// Run drives both sweeps until ctx is cancelled.
func (s *LifecycleScanner) Run(ctx context.Context) {
	go s.loop(ctx, s.reminderInterval, s.CheckReminders)
	go s.loop(ctx, s.completionInterval, s.CheckCompletedEvents)
	log.WithFields(log.Fields{
		"reminder_interval":   s.reminderInterval,
		"completion_interval": s.completionInterval,
	}).Info("lifecycle scanner started")
}

func (s *LifecycleScanner) loop(ctx context.Context, interval time.Duration, sweep func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep(ctx)
		}
	}
}

// CheckReminders sends the pre-start reminder for events entering the
// [start-window, start) interval. Reminders never fire after start.
func (s *LifecycleScanner) CheckReminders(ctx context.Context) {
	now := s.now()
	for _, guildID := range s.guilds.GuildIDs() {
		events, err := s.events.GetAllEvents(ctx, guildID)
		if err != nil {
			log.WithError(err).WithField("guild_id", guildID).Error("failed to list events for reminder sweep")
			continue
		}
		for i := range events {
			event := &events[i]
			if event.ReminderSent {
				continue
			}
			switch event.Status {
			case domain.EventStatusActive, domain.EventStatusFull, domain.EventStatusClosed:
			default:
				continue
			}
			if now.Before(event.StartTime.Add(-s.reminderWindow)) || !now.Before(event.StartTime) {
				continue
			}
			s.sendReminder(ctx, event)
		}
	}
}

// CheckCompletedEvents finalizes events whose start time has passed. This is
// the only path that completes events nobody interacts with after start.
func (s *LifecycleScanner) CheckCompletedEvents(ctx context.Context) {
	now := s.now()
	for _, guildID := range s.guilds.GuildIDs() {
		events, err := s.events.GetAllEvents(ctx, guildID)
		if err != nil {
			log.WithError(err).WithField("guild_id", guildID).Error("failed to list events for completion sweep")
			continue
		}
		for i := range events {
			event := &events[i]
			if event.Status == domain.EventStatusCompleted || event.Status == domain.EventStatusCancelled {
				continue
			}
			if !event.StartTime.Before(now) {
				continue
			}
			event.Status = domain.EventStatusCompleted
			if err := s.events.UpdateEvent(ctx, event); err != nil {
				log.WithError(err).WithField("event_id", event.ID).Error("failed to mark event completed")
				continue
			}
			log.WithField("event_id", event.ID).Info("marked event as completed")
		}
	}
}

// sendReminder notifies every joined participant and the event channel, then
// marks the reminder sent. The flag is set even when no participant could be
// reached, so each event gets at most one attempt.
func (s *LifecycleScanner) sendReminder(ctx context.Context, event *entities.Event) {
	participants, err := s.ledger.ListJoined(ctx, event.ID)
	if err != nil {
		log.WithError(err).WithField("event_id", event.ID).Error("failed to list participants for reminder")
		return
	}

	minutes := int(s.reminderWindow.Minutes())
	if len(participants) == 0 {
		log.WithField("event_id", event.ID).Warn("no participants to remind")
	} else {
		dm := s.translator.T(s.locale, "reminder.dm", map[string]any{
			"Title":   event.Title,
			"Minutes": minutes,
		})
		for _, p := range participants {
			s.notifier.NotifyUser(ctx, p.UserID, dm)
		}
		s.notifier.NotifyChannel(ctx, event.ChannelID, s.channelReminder(event, participants, minutes))
	}

	event.ReminderSent = true
	if err := s.events.UpdateEvent(ctx, event); err != nil {
		log.WithError(err).WithField("event_id", event.ID).Error("failed to mark reminder sent")
		return
	}
	log.WithFields(log.Fields{"event_id": event.ID, "participants": len(participants)}).Info("sent event reminder")
}

// channelReminder mentions up to twenty participants to keep the message
// within Discord limits.
func (s *LifecycleScanner) channelReminder(event *entities.Event, participants []entities.Participant, minutes int) string {
	const maxMentions = 20
	mentions := make([]string, 0, maxMentions)
	for i, p := range participants {
		if i == maxMentions {
			break
		}
		mentions = append(mentions, fmt.Sprintf("<@%s>", p.UserID))
	}
	line := strings.Join(mentions, " ")
	if extra := len(participants) - maxMentions; extra > 0 {
		line += s.translator.T(s.locale, "reminder.more_participants", map[string]any{"Count": extra})
	}
	body := s.translator.T(s.locale, "reminder.channel", map[string]any{
		"Title":   event.Title,
		"Minutes": minutes,
		"Current": event.CurrentParticipants,
		"Max":     event.MaxParticipants,
	})
	return line + "\n" + body
}
