package domain

// EventStatus is the recruitment state of an event.
type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusFull      EventStatus = "full"
	EventStatusClosed    EventStatus = "closed" // recruitment closed by the creator, event not started
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// IsTerminal reports whether the status has no outgoing transitions.
func (s EventStatus) IsTerminal() bool {
	return s == EventStatusCancelled || s == EventStatusCompleted
}

// ParticipantStatus partitions participants into the joined list and the
// ordered overflow waitlist.
type ParticipantStatus string

const (
	StatusJoined   ParticipantStatus = "joined"
	StatusWaitlist ParticipantStatus = "waitlist"
)
