package application

import (
	"context"
	"fmt"
	"sort"

	"withgames/internal/domain"
	"withgames/internal/domain/entities"
	"withgames/internal/ports/output"
)

// ParticipantLedger owns the participant records of an event: the
// JOINED/WAITLIST partition and the contiguous 1..N waitlist ordering.
// Counter updates on the event and waitlist resequencing after promotions
// are the caller's responsibility.
type ParticipantLedger struct {
	participantRepo output.ParticipantRepository
	now             nowFunc
}

// NewParticipantLedger creates a ParticipantLedger.
func NewParticipantLedger(participantRepo output.ParticipantRepository) *ParticipantLedger {
	return &ParticipantLedger{participantRepo: participantRepo, now: defaultNow}
}

// Join records a user on the event: directly joined while capacity remains,
// appended to the waitlist otherwise.
func (l *ParticipantLedger) Join(ctx context.Context, event *entities.Event, userID, userName string) (*entities.Participant, error) {
	existing, err := l.participantRepo.FindByEventIDAndUserID(ctx, event.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("check existing participant: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrAlreadyParticipating
	}

	joinedCount, err := l.participantRepo.CountByEventIDAndStatus(ctx, event.ID, domain.StatusJoined)
	if err != nil {
		return nil, fmt.Errorf("count joined participants: %w", err)
	}

	participant := &entities.Participant{
		EventID:  event.ID,
		UserID:   userID,
		UserName: userName,
		Status:   domain.StatusJoined,
		Position: 0,
		JoinedAt: l.now(),
	}
	if joinedCount >= event.MaxParticipants {
		waitlist, err := l.ListWaitlist(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		participant.Status = domain.StatusWaitlist
		participant.Position = len(waitlist) + 1
	}

	if err := l.participantRepo.Create(ctx, participant); err != nil {
		return nil, fmt.Errorf("create participant: %w", err)
	}
	return participant, nil
}

// Leave deletes the user's record and returns it. The caller must follow up
// with a promotion (record was JOINED) or a resequence (record was WAITLIST).
func (l *ParticipantLedger) Leave(ctx context.Context, eventID, userID string) (*entities.Participant, error) {
	participant, err := l.participantRepo.FindByEventIDAndUserID(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("find participant: %w", err)
	}
	if participant == nil {
		return nil, domain.ErrNotParticipating
	}
	if err := l.participantRepo.Delete(ctx, participant.ID); err != nil {
		return nil, fmt.Errorf("delete participant: %w", err)
	}
	return participant, nil
}

// ListJoined returns joined participants ordered by join time ascending.
func (l *ParticipantLedger) ListJoined(ctx context.Context, eventID string) ([]entities.Participant, error) {
	participants, err := l.participantRepo.FindByEventIDAndStatus(ctx, eventID, domain.StatusJoined)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(participants, func(i, j int) bool {
		return participants[i].JoinedAt.Before(participants[j].JoinedAt)
	})
	return participants, nil
}

// ListWaitlist returns waitlisted participants ordered by position ascending.
func (l *ParticipantLedger) ListWaitlist(ctx context.Context, eventID string) ([]entities.Participant, error) {
	waitlist, err := l.participantRepo.FindByEventIDAndStatus(ctx, eventID, domain.StatusWaitlist)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(waitlist, func(i, j int) bool {
		return waitlist[i].Position < waitlist[j].Position
	})
	return waitlist, nil
}

// ListUserParticipation returns every participation record of a user across
// events, ordered by join time ascending.
func (l *ParticipantLedger) ListUserParticipation(ctx context.Context, userID string) ([]entities.Participant, error) {
	return l.participantRepo.FindByUserID(ctx, userID)
}

// ResequenceWaitlist reassigns positions 1..N in current relative order,
// writing only the records whose position actually changed.
func (l *ParticipantLedger) ResequenceWaitlist(ctx context.Context, eventID string) error {
	waitlist, err := l.ListWaitlist(ctx, eventID)
	if err != nil {
		return err
	}
	for i := range waitlist {
		want := i + 1
		if waitlist[i].Position == want {
			continue
		}
		waitlist[i].Position = want
		if err := l.participantRepo.Update(ctx, &waitlist[i]); err != nil {
			return fmt.Errorf("resequence waitlist for event %s: %w", eventID, err)
		}
	}
	return nil
}

// Promote moves a waitlisted user to joined. The caller must resequence the
// remaining waitlist and bump the event's joined counter.
func (l *ParticipantLedger) Promote(ctx context.Context, eventID, userID string) (*entities.Participant, error) {
	participant, err := l.participantRepo.FindByEventIDAndUserID(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("find participant: %w", err)
	}
	if participant == nil || participant.Status != domain.StatusWaitlist {
		return nil, domain.ErrNotOnWaitlist
	}
	participant.Status = domain.StatusJoined
	participant.Position = 0
	if err := l.participantRepo.Update(ctx, participant); err != nil {
		return nil, fmt.Errorf("promote participant: %w", err)
	}
	return participant, nil
}

// Demote moves a joined user to the back of the waitlist. The caller must
// decrement the event's joined counter.
func (l *ParticipantLedger) Demote(ctx context.Context, eventID, userID string) (*entities.Participant, error) {
	participant, err := l.participantRepo.FindByEventIDAndUserID(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("find participant: %w", err)
	}
	if participant == nil || participant.Status != domain.StatusJoined {
		return nil, domain.ErrNotJoined
	}
	waitlist, err := l.ListWaitlist(ctx, eventID)
	if err != nil {
		return nil, err
	}
	participant.Status = domain.StatusWaitlist
	participant.Position = len(waitlist) + 1
	if err := l.participantRepo.Update(ctx, participant); err != nil {
		return nil, fmt.Errorf("demote participant: %w", err)
	}
	return participant, nil
}
