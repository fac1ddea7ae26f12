package discord

import (
	"errors"

	"github.com/bwmarrin/discordgo"

	"withgames/internal/domain"
	"withgames/internal/ports/input"
	"withgames/internal/ports/output"
)

const (
	customIDJoin  = "btn_join"
	customIDLeave = "btn_leave"
)

// Handler handles Discord interactions using use cases.
type Handler struct {
	eventUseCase       input.EventUseCase
	recruitmentUseCase input.RecruitmentUseCase
	capacityUseCase    input.CapacityUseCase
	translator         output.T
	locale             string
}

// NewHandler creates a Handler.
func NewHandler(
	eventUseCase input.EventUseCase,
	recruitmentUseCase input.RecruitmentUseCase,
	capacityUseCase input.CapacityUseCase,
	translator output.T,
	locale string,
) *Handler {
	return &Handler{
		eventUseCase:       eventUseCase,
		recruitmentUseCase: recruitmentUseCase,
		capacityUseCase:    capacityUseCase,
		translator:         translator,
		locale:             locale,
	}
}

// errorMessage resolves a domain error to a localized user-facing reply.
func (h *Handler) errorMessage(err error) string {
	key := "error.generic"
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		key = "error.event_not_found"
	case errors.Is(err, domain.ErrEventClosed):
		key = "error.event_closed"
	case errors.Is(err, domain.ErrEventCancelled):
		key = "error.event_cancelled"
	case errors.Is(err, domain.ErrEventCompleted):
		key = "error.event_completed"
	case errors.Is(err, domain.ErrAlreadyParticipating):
		key = "error.already_participating"
	case errors.Is(err, domain.ErrNotParticipating):
		key = "error.not_participating"
	case errors.Is(err, domain.ErrNotEventManager):
		key = "error.not_manager"
	}
	return h.translator.T(h.locale, key, nil)
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func interactionUser(i *discordgo.InteractionCreate) (userID, userName string) {
	if i.Member != nil && i.Member.User != nil {
		u := i.Member.User
		name := u.GlobalName
		if name == "" {
			name = u.Username
		}
		return u.ID, name
	}
	if i.User != nil {
		name := i.User.GlobalName
		if name == "" {
			name = i.User.Username
		}
		return i.User.ID, name
	}
	return "", ""
}
