package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"withgames/internal/domain"
	"withgames/internal/domain/entities"
	pkgdiscord "withgames/pkg/discord"
)

func (h *Handler) HandleJoin(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	event, err := h.eventUseCase.GetEventByMessageID(ctx, i.Message.ID)
	if err != nil {
		respondEphemeral(s, i, h.errorMessage(err))
		return
	}
	userID, userName := interactionUser(i)

	result, err := h.recruitmentUseCase.JoinEvent(ctx, event.ID, userID, userName)
	if err != nil {
		if !isUserFacing(err) {
			log.WithError(err).WithField("event_id", event.ID).Error("join failed")
		}
		respondEphemeral(s, i, h.errorMessage(err))
		return
	}

	h.refreshEventMessage(ctx, s, event.ID)
	respondEphemeral(s, i, result.Message)
}

func (h *Handler) HandleLeave(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	event, err := h.eventUseCase.GetEventByMessageID(ctx, i.Message.ID)
	if err != nil {
		respondEphemeral(s, i, h.errorMessage(err))
		return
	}
	userID, _ := interactionUser(i)

	result, err := h.recruitmentUseCase.LeaveEvent(ctx, event.ID, userID)
	if err != nil {
		respondEphemeral(s, i, h.errorMessage(err))
		return
	}

	h.refreshEventMessage(ctx, s, event.ID)
	respondEphemeral(s, i, result.Message)
}

// refreshEventMessage re-renders the recruitment post after any mutation.
func (h *Handler) refreshEventMessage(ctx context.Context, s *discordgo.Session, eventID string) {
	event, err := h.eventUseCase.GetEvent(ctx, eventID)
	if err != nil {
		log.WithError(err).WithField("event_id", eventID).Error("failed to load event for embed refresh")
		return
	}
	if event.MessageID == "" {
		return
	}
	joined, _ := h.recruitmentUseCase.GetParticipants(ctx, event.ID)
	waitlist, _ := h.recruitmentUseCase.GetWaitlist(ctx, event.ID)

	embeds := []*discordgo.MessageEmbed{pkgdiscord.BuildEventEmbed(event, joined, waitlist)}
	components := recruitmentButtons()
	if event.Status != domain.EventStatusActive && event.Status != domain.EventStatusFull {
		// Recruitment is over: drop the buttons.
		components = []discordgo.MessageComponent{}
	}
	if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         event.MessageID,
		Channel:    event.ChannelID,
		Embeds:     &embeds,
		Components: &components,
	}); err != nil {
		log.WithError(err).WithField("event_id", event.ID).Warn("failed to update event message")
	}
}

func recruitmentButtons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "✅ 参加する", Style: discordgo.SuccessButton, CustomID: customIDJoin},
			discordgo.Button{Label: "❌ 参加をやめる", Style: discordgo.DangerButton, CustomID: customIDLeave},
		}},
	}
}

// isUserFacing reports whether an error already has a localized reply and
// needs no error-level log.
func isUserFacing(err error) bool {
	return errors.Is(err, domain.ErrAlreadyParticipating) ||
		errors.Is(err, domain.ErrNotParticipating) ||
		errors.Is(err, domain.ErrEventClosed) ||
		errors.Is(err, domain.ErrEventCancelled) ||
		errors.Is(err, domain.ErrEventCompleted)
}

// statusError maps a terminal or closed status to its domain error.
func statusError(event *entities.Event) error {
	switch event.Status {
	case domain.EventStatusClosed:
		return domain.ErrEventClosed
	case domain.EventStatusCancelled:
		return domain.ErrEventCancelled
	case domain.EventStatusCompleted:
		return domain.ErrEventCompleted
	default:
		return nil
	}
}
