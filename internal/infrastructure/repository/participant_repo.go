package repository

import (
	"context"
	"fmt"

	"withgames/internal/domain"
	"withgames/internal/domain/entities"
	"withgames/internal/infrastructure/docstore"
	"withgames/internal/ports/output"
)

var _ output.ParticipantRepository = (*ParticipantRepository)(nil)

// ParticipantRepository implements output.ParticipantRepository over a
// document store.
type ParticipantRepository struct {
	store docstore.Store
}

// NewParticipantRepository creates a ParticipantRepository.
func NewParticipantRepository(store docstore.Store) *ParticipantRepository {
	return &ParticipantRepository{store: store}
}

func (r *ParticipantRepository) Create(ctx context.Context, participant *entities.Participant) error {
	id, err := r.store.Create(ctx, participantsCollection, participantToDoc(participant), participant.ID)
	if err != nil {
		return fmt.Errorf("create participant: %w", err)
	}
	participant.ID = id
	return nil
}

func (r *ParticipantRepository) FindByEventID(ctx context.Context, eventID string) ([]entities.Participant, error) {
	docs, err := r.store.Query(ctx, participantsCollection,
		[]docstore.Filter{{Field: "event_id", Op: docstore.OpEqual, Value: eventID}},
		docstore.QueryOptions{})
	if err != nil {
		return nil, fmt.Errorf("get participants for event %s: %w", eventID, err)
	}
	return participantsFromDocs(docs), nil
}

// FindByEventIDAndUserID returns (nil, nil) when the user has no record for
// the event.
func (r *ParticipantRepository) FindByEventIDAndUserID(ctx context.Context, eventID, userID string) (*entities.Participant, error) {
	docs, err := r.store.Query(ctx, participantsCollection,
		[]docstore.Filter{
			{Field: "event_id", Op: docstore.OpEqual, Value: eventID},
			{Field: "user_id", Op: docstore.OpEqual, Value: userID},
		},
		docstore.QueryOptions{Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("get participant for event %s, user %s: %w", eventID, userID, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	p := participantFromDoc(docs[0])
	return &p, nil
}

// FindByEventIDAndStatus returns the partition unordered; callers sort by
// join time or waitlist position so no composite index is needed.
func (r *ParticipantRepository) FindByEventIDAndStatus(ctx context.Context, eventID string, status domain.ParticipantStatus) ([]entities.Participant, error) {
	docs, err := r.store.Query(ctx, participantsCollection,
		[]docstore.Filter{
			{Field: "event_id", Op: docstore.OpEqual, Value: eventID},
			{Field: "status", Op: docstore.OpEqual, Value: string(status)},
		},
		docstore.QueryOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s participants for event %s: %w", status, eventID, err)
	}
	return participantsFromDocs(docs), nil
}

func (r *ParticipantRepository) FindByUserID(ctx context.Context, userID string) ([]entities.Participant, error) {
	docs, err := r.store.Query(ctx, participantsCollection,
		[]docstore.Filter{{Field: "user_id", Op: docstore.OpEqual, Value: userID}},
		docstore.QueryOptions{OrderBy: "joined_at"})
	if err != nil {
		return nil, fmt.Errorf("get participations for user %s: %w", userID, err)
	}
	return participantsFromDocs(docs), nil
}

func (r *ParticipantRepository) Update(ctx context.Context, participant *entities.Participant) error {
	if err := r.store.Update(ctx, participantsCollection, participant.ID, participantToDoc(participant)); err != nil {
		return fmt.Errorf("update participant %s: %w", participant.ID, err)
	}
	return nil
}

func (r *ParticipantRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, participantsCollection, id); err != nil {
		return fmt.Errorf("delete participant %s: %w", id, err)
	}
	return nil
}

func (r *ParticipantRepository) DeleteByEventID(ctx context.Context, eventID string) error {
	participants, err := r.FindByEventID(ctx, eventID)
	if err != nil {
		return err
	}
	for i := range participants {
		if err := r.store.Delete(ctx, participantsCollection, participants[i].ID); err != nil {
			return fmt.Errorf("delete participant %s: %w", participants[i].ID, err)
		}
	}
	return nil
}

func (r *ParticipantRepository) CountByEventIDAndStatus(ctx context.Context, eventID string, status domain.ParticipantStatus) (int, error) {
	participants, err := r.FindByEventIDAndStatus(ctx, eventID, status)
	if err != nil {
		return 0, err
	}
	return len(participants), nil
}

func participantsFromDocs(docs []docstore.Document) []entities.Participant {
	out := make([]entities.Participant, len(docs))
	for i := range docs {
		out[i] = participantFromDoc(docs[i])
	}
	return out
}
