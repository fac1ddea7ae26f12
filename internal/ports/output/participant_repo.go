package output

import (
	"context"

	"withgames/internal/domain"
	"withgames/internal/domain/entities"
)

type ParticipantRepository interface {
	Create(ctx context.Context, participant *entities.Participant) error
	FindByEventIDAndUserID(ctx context.Context, eventID, userID string) (*entities.Participant, error)
	FindByEventIDAndStatus(ctx context.Context, eventID string, status domain.ParticipantStatus) ([]entities.Participant, error)
	FindByUserID(ctx context.Context, userID string) ([]entities.Participant, error)
	Update(ctx context.Context, participant *entities.Participant) error
	Delete(ctx context.Context, id string) error
	DeleteByEventID(ctx context.Context, eventID string) error
	CountByEventIDAndStatus(ctx context.Context, eventID string, status domain.ParticipantStatus) (int, error)
}
