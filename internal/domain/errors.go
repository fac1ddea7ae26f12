package domain

import "errors"

// Domain errors. Expected business outcomes are sentinels so callers can
// branch with errors.Is; store failures are wrapped separately.
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventClosed          = errors.New("event recruitment is closed")
	ErrEventCancelled       = errors.New("event is cancelled")
	ErrEventCompleted       = errors.New("event is completed")
	ErrAlreadyParticipating = errors.New("user is already participating in this event")
	ErrNotParticipating     = errors.New("user is not participating in this event")
	ErrNotOnWaitlist        = errors.New("participant is not on the waitlist")
	ErrNotJoined            = errors.New("participant is not joined")
	ErrNotEventManager      = errors.New("only the event creator or an administrator can do this")
)
