package input

import (
	"context"
	"time"

	"withgames/internal/domain/entities"
)

type CreateEventInput struct {
	Title           string
	Description     string
	GameType        string
	GameEmoji       string
	GameIconURL     string
	StartTime       time.Time
	MaxParticipants int
	CreatorID       string
	CreatorName     string
	GuildID         string
	ChannelID       string
}

type EventUseCase interface {
	CreateEvent(ctx context.Context, in CreateEventInput) (*entities.Event, error)
	GetEvent(ctx context.Context, id string) (*entities.Event, error)
	GetEventByMessageID(ctx context.Context, messageID string) (*entities.Event, error)
	GetAllEvents(ctx context.Context, guildID string) ([]entities.Event, error)
	GetActiveEvents(ctx context.Context, guildID string) ([]entities.Event, error)
	UpdateEvent(ctx context.Context, event *entities.Event) error
	ApplyEdit(ctx context.Context, event *entities.Event) error
	SetEventMessageID(ctx context.Context, eventID, messageID string) error
	CloseEvent(ctx context.Context, eventID string) error
	CancelEvent(ctx context.Context, eventID string) error
	DeleteEvent(ctx context.Context, eventID string) error
}
