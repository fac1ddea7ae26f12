package output

import (
	"context"

	"withgames/internal/domain/entities"
)

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id string) (*entities.Event, error)
	FindByMessageID(ctx context.Context, messageID string) (*entities.Event, error)
	FindByGuildID(ctx context.Context, guildID string) ([]entities.Event, error)
	FindActiveByGuildID(ctx context.Context, guildID string) ([]entities.Event, error)
	Update(ctx context.Context, event *entities.Event) error
	Delete(ctx context.Context, id string) error
}
