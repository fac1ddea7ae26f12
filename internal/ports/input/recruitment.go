package input

import (
	"context"

	"withgames/internal/domain/entities"
)

// JoinResult reports how a join request was settled.
type JoinResult struct {
	Participant *entities.Participant
	// Message is the localized user-facing reply (direct join or waitlist
	// position).
	Message string
}

// LeaveResult reports the outcome of a leave request. Promoted is the
// participant pulled from the front of the waitlist, if any.
type LeaveResult struct {
	Removed  *entities.Participant
	Promoted *entities.Participant
	Message  string
}

// UserEvent pairs an event with the user's own participation record.
type UserEvent struct {
	Event       *entities.Event
	Participant *entities.Participant
}

type RecruitmentUseCase interface {
	JoinEvent(ctx context.Context, eventID, userID, userName string) (*JoinResult, error)
	LeaveEvent(ctx context.Context, eventID, userID string) (*LeaveResult, error)
	GetParticipants(ctx context.Context, eventID string) ([]entities.Participant, error)
	GetWaitlist(ctx context.Context, eventID string) ([]entities.Participant, error)
	GetUserEvents(ctx context.Context, userID string) ([]UserEvent, error)
}
