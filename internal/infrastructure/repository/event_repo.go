package repository

import (
	"context"
	"fmt"

	"withgames/internal/domain"
	"withgames/internal/domain/entities"
	"withgames/internal/infrastructure/docstore"
	"withgames/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

// EventRepository implements output.EventRepository over a document store.
type EventRepository struct {
	store docstore.Store
}

// NewEventRepository creates an EventRepository.
func NewEventRepository(store docstore.Store) *EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	id, err := r.store.Create(ctx, eventsCollection, eventToDoc(event), event.ID)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	event.ID = id
	return nil
}

// FindByID returns (nil, nil) when the event does not exist.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	doc, err := r.store.Get(ctx, eventsCollection, id)
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", id, err)
	}
	if doc == nil {
		return nil, nil
	}
	e := eventFromDoc(doc)
	return &e, nil
}

func (r *EventRepository) FindByMessageID(ctx context.Context, messageID string) (*entities.Event, error) {
	docs, err := r.store.Query(ctx, eventsCollection,
		[]docstore.Filter{{Field: "message_id", Op: docstore.OpEqual, Value: messageID}},
		docstore.QueryOptions{Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("get event by message id: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	e := eventFromDoc(docs[0])
	return &e, nil
}

func (r *EventRepository) FindByGuildID(ctx context.Context, guildID string) ([]entities.Event, error) {
	docs, err := r.store.Query(ctx, eventsCollection,
		[]docstore.Filter{{Field: "guild_id", Op: docstore.OpEqual, Value: guildID}},
		docstore.QueryOptions{OrderBy: "created_at"})
	if err != nil {
		return nil, fmt.Errorf("get events for guild %s: %w", guildID, err)
	}
	out := make([]entities.Event, len(docs))
	for i := range docs {
		out[i] = eventFromDoc(docs[i])
	}
	return out, nil
}

func (r *EventRepository) FindActiveByGuildID(ctx context.Context, guildID string) ([]entities.Event, error) {
	docs, err := r.store.Query(ctx, eventsCollection,
		[]docstore.Filter{
			{Field: "guild_id", Op: docstore.OpEqual, Value: guildID},
			{Field: "status", Op: docstore.OpEqual, Value: string(domain.EventStatusActive)},
		},
		docstore.QueryOptions{OrderBy: "start_time"})
	if err != nil {
		return nil, fmt.Errorf("get active events for guild %s: %w", guildID, err)
	}
	out := make([]entities.Event, len(docs))
	for i := range docs {
		out[i] = eventFromDoc(docs[i])
	}
	return out, nil
}

func (r *EventRepository) Update(ctx context.Context, event *entities.Event) error {
	if err := r.store.Update(ctx, eventsCollection, event.ID, eventToDoc(event)); err != nil {
		return fmt.Errorf("update event %s: %w", event.ID, err)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, eventsCollection, id); err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	return nil
}
