package application

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"withgames/internal/domain"
	"withgames/internal/domain/entities"
	"withgames/internal/ports/input"
	"withgames/internal/ports/output"
)

var _ input.RecruitmentUseCase = (*RecruitmentService)(nil)

// RecruitmentService orchestrates join and leave end to end: ledger write,
// counter update, status recompute, waitlist follow-up, notifications. All
// writes of one call are persisted before it returns.
type RecruitmentService struct {
	ledger     *ParticipantLedger
	events     *EventService
	notifier   output.Notifier
	translator output.T
	locale     string
}

// NewRecruitmentService creates a RecruitmentService.
func NewRecruitmentService(ledger *ParticipantLedger, events *EventService, notifier output.Notifier, translator output.T, locale string) *RecruitmentService {
	return &RecruitmentService{
		ledger:     ledger,
		events:     events,
		notifier:   notifier,
		translator: translator,
		locale:     locale,
	}
}

func (s *RecruitmentService) JoinEvent(ctx context.Context, eventID, userID, userName string) (*input.JoinResult, error) {
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	// CLOSED/CANCELLED/COMPLETED block joins; FULL only redirects to the
	// waitlist.
	if err := statusGate(event); err != nil {
		return nil, err
	}

	participant, err := s.ledger.Join(ctx, event, userID, userName)
	if err != nil {
		return nil, err
	}

	var message string
	updated := event
	if participant.Status == domain.StatusJoined {
		updated, err = s.events.IncrementParticipantCount(ctx, eventID)
		if err != nil {
			return nil, err
		}
		message = s.translator.T(s.locale, "join.joined", map[string]any{"Title": event.Title})
	} else {
		message = s.translator.T(s.locale, "join.waitlisted", map[string]any{"Position": participant.Position})
	}

	if userID != event.CreatorID {
		s.notifier.NotifyUser(ctx, event.CreatorID, s.translator.T(s.locale, "notify.creator_join", map[string]any{
			"UserName": userName,
			"Title":    event.Title,
			"Current":  updated.CurrentParticipants,
			"Max":      updated.MaxParticipants,
		}))
	}

	log.WithFields(log.Fields{
		"event_id": eventID,
		"user_id":  userID,
		"status":   participant.Status,
	}).Info("user joined event")

	return &input.JoinResult{Participant: participant, Message: message}, nil
}

func (s *RecruitmentService) LeaveEvent(ctx context.Context, eventID, userID string) (*input.LeaveResult, error) {
	removed, err := s.ledger.Leave(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	var promoted *entities.Participant
	switch removed.Status {
	case domain.StatusJoined:
		if _, err := s.events.DecrementParticipantCount(ctx, eventID); err != nil {
			return nil, err
		}
		promoted = s.promoteFront(ctx, eventID)
	case domain.StatusWaitlist:
		if err := s.ledger.ResequenceWaitlist(ctx, eventID); err != nil {
			return nil, err
		}
	}

	title := ""
	if event, err := s.events.GetEvent(ctx, eventID); err == nil {
		title = event.Title
		if userID != event.CreatorID {
			s.notifier.NotifyUser(ctx, event.CreatorID, s.translator.T(s.locale, "notify.creator_leave", map[string]any{
				"UserName": removed.UserName,
				"Title":    event.Title,
				"Current":  event.CurrentParticipants,
				"Max":      event.MaxParticipants,
			}))
		}
	}

	log.WithFields(log.Fields{"event_id": eventID, "user_id": userID}).Info("user left event")

	return &input.LeaveResult{
		Removed:  removed,
		Promoted: promoted,
		Message:  s.translator.T(s.locale, "leave.left", map[string]any{"Title": title}),
	}, nil
}

// promoteFront pulls the lowest-position waitlisted user into the freed
// slot and notifies them. Best effort: failures are logged and the leave
// still succeeds.
func (s *RecruitmentService) promoteFront(ctx context.Context, eventID string) *entities.Participant {
	waitlist, err := s.ledger.ListWaitlist(ctx, eventID)
	if err != nil {
		log.WithError(err).WithField("event_id", eventID).Error("failed to read waitlist for promotion")
		return nil
	}
	if len(waitlist) == 0 {
		return nil
	}
	promoted, err := s.ledger.Promote(ctx, eventID, waitlist[0].UserID)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"event_id": eventID,
			"user_id":  waitlist[0].UserID,
		}).Error("failed to promote from waitlist")
		return nil
	}
	if _, err := s.events.IncrementParticipantCount(ctx, eventID); err != nil {
		log.WithError(err).WithField("event_id", eventID).Error("failed to bump joined counter after promotion")
	}
	if err := s.ledger.ResequenceWaitlist(ctx, eventID); err != nil {
		log.WithError(err).WithField("event_id", eventID).Error("failed to resequence waitlist after promotion")
	}
	if event, err := s.events.GetEvent(ctx, eventID); err == nil {
		s.notifier.NotifyUser(ctx, promoted.UserID,
			s.translator.T(s.locale, "notify.promoted", map[string]any{"Title": event.Title}))
	}
	return promoted
}

func (s *RecruitmentService) GetParticipants(ctx context.Context, eventID string) ([]entities.Participant, error) {
	return s.ledger.ListJoined(ctx, eventID)
}

func (s *RecruitmentService) GetWaitlist(ctx context.Context, eventID string) ([]entities.Participant, error) {
	return s.ledger.ListWaitlist(ctx, eventID)
}

// GetUserEvents resolves every participation of a user to its event.
// Records whose event no longer exists are skipped.
func (s *RecruitmentService) GetUserEvents(ctx context.Context, userID string) ([]input.UserEvent, error) {
	participants, err := s.ledger.ListUserParticipation(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]input.UserEvent, 0, len(participants))
	for i := range participants {
		event, err := s.events.GetEvent(ctx, participants[i].EventID)
		if errors.Is(err, domain.ErrEventNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, input.UserEvent{Event: event, Participant: &participants[i]})
	}
	return out, nil
}
