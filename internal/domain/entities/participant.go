package entities

import (
	"time"

	"withgames/internal/domain"
)

// Participant represents a user's participation in one event. Position is 0
// while joined and the 1-based waitlist rank while waitlisted.
type Participant struct {
	ID       string
	EventID  string
	UserID   string
	UserName string
	Status   domain.ParticipantStatus
	Position int
	JoinedAt time.Time
}

// IsOnWaitlist reports whether the participant is queued rather than counted
// toward capacity.
func (p *Participant) IsOnWaitlist() bool {
	return p.Status == domain.StatusWaitlist
}
