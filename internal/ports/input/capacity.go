package input

import (
	"context"

	"withgames/internal/domain/entities"
)

// CapacityUseCase restores the joined/waitlist partition after
// max_participants changes through an edit.
type CapacityUseCase interface {
	ReconcileCapacity(ctx context.Context, event *entities.Event, oldMax int) error
}
