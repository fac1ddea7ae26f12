package entities

import (
	"time"

	"withgames/internal/domain"
)

// Event represents a game recruitment post with a capacity limit.
type Event struct {
	ID                  string
	Title               string
	Description         string
	GameType            string
	GameEmoji           string
	GameIconURL         string
	StartTime           time.Time
	MaxParticipants     int
	CreatorID           string
	CreatorName         string
	GuildID             string
	ChannelID           string
	MessageID           string
	CurrentParticipants int
	Status              domain.EventStatus
	ReminderSent        bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsFull reports whether the joined count has reached capacity.
func (e *Event) IsFull() bool {
	return e.CurrentParticipants >= e.MaxParticipants
}

// CanAcceptParticipants reports whether a user could still join directly.
func (e *Event) CanAcceptParticipants(now time.Time) bool {
	return e.Status == domain.EventStatusActive && !e.IsFull() && e.StartTime.After(now)
}

// UpdateStatus recomputes the derived status from occupancy and time.
// CLOSED and CANCELLED are sticky: they are only set by explicit user
// operations and never touched here.
func (e *Event) UpdateStatus(now time.Time) {
	if e.IsFull() && e.Status == domain.EventStatusActive {
		e.Status = domain.EventStatusFull
	} else if !e.IsFull() && e.Status == domain.EventStatusFull {
		e.Status = domain.EventStatusActive
	}

	if e.StartTime.Before(now) &&
		(e.Status == domain.EventStatusActive || e.Status == domain.EventStatusFull) {
		e.Status = domain.EventStatusCompleted
	}

	e.UpdatedAt = now
}
