package application

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"withgames/internal/domain"
	"withgames/internal/domain/entities"
	"withgames/internal/ports/input"
	"withgames/internal/ports/output"
)

var _ input.EventUseCase = (*EventService)(nil)

// EventService owns the event entity and its status state machine.
type EventService struct {
	eventRepo       output.EventRepository
	participantRepo output.ParticipantRepository
	now             nowFunc
}

// NewEventService creates an EventService.
func NewEventService(eventRepo output.EventRepository, participantRepo output.ParticipantRepository) *EventService {
	return &EventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		now:             defaultNow,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, in input.CreateEventInput) (*entities.Event, error) {
	now := s.now()
	event := &entities.Event{
		Title:           in.Title,
		Description:     in.Description,
		GameType:        in.GameType,
		GameEmoji:       in.GameEmoji,
		GameIconURL:     in.GameIconURL,
		StartTime:       in.StartTime,
		MaxParticipants: in.MaxParticipants,
		CreatorID:       in.CreatorID,
		CreatorName:     in.CreatorName,
		GuildID:         in.GuildID,
		ChannelID:       in.ChannelID,
		Status:          domain.EventStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"event_id": event.ID, "guild_id": event.GuildID}).Info("created event")
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*entities.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) GetEventByMessageID(ctx context.Context, messageID string) (*entities.Event, error) {
	event, err := s.eventRepo.FindByMessageID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) GetAllEvents(ctx context.Context, guildID string) ([]entities.Event, error) {
	return s.eventRepo.FindByGuildID(ctx, guildID)
}

func (s *EventService) GetActiveEvents(ctx context.Context, guildID string) ([]entities.Event, error) {
	return s.eventRepo.FindActiveByGuildID(ctx, guildID)
}

func (s *EventService) UpdateEvent(ctx context.Context, event *entities.Event) error {
	event.UpdatedAt = s.now()
	return s.eventRepo.Update(ctx, event)
}

// ApplyEdit persists field edits and recomputes the derived status, which
// must happen after any edit touching start_time or capacity.
func (s *EventService) ApplyEdit(ctx context.Context, event *entities.Event) error {
	event.UpdateStatus(s.now())
	return s.eventRepo.Update(ctx, event)
}

func (s *EventService) SetEventMessageID(ctx context.Context, eventID, messageID string) error {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	event.MessageID = messageID
	return s.UpdateEvent(ctx, event)
}

// CloseEvent stops recruitment. Participants are locked in; the status stays
// CLOSED until the event is completed by the lifecycle sweep or deleted.
func (s *EventService) CloseEvent(ctx context.Context, eventID string) error {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if err := statusGate(event); err != nil {
		return err
	}
	event.Status = domain.EventStatusClosed
	if err := s.UpdateEvent(ctx, event); err != nil {
		return err
	}
	log.WithField("event_id", eventID).Info("closed event recruitment")
	return nil
}

// CancelEvent marks the event terminal. No further mutations are accepted.
func (s *EventService) CancelEvent(ctx context.Context, eventID string) error {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	switch event.Status {
	case domain.EventStatusCancelled:
		return domain.ErrEventCancelled
	case domain.EventStatusCompleted:
		return domain.ErrEventCompleted
	}
	event.Status = domain.EventStatusCancelled
	if err := s.UpdateEvent(ctx, event); err != nil {
		return err
	}
	log.WithField("event_id", eventID).Info("cancelled event")
	return nil
}

// DeleteEvent removes the event and cascades to its participant records.
func (s *EventService) DeleteEvent(ctx context.Context, eventID string) error {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return err
	}
	if err := s.participantRepo.DeleteByEventID(ctx, eventID); err != nil {
		return fmt.Errorf("delete participants for event %s: %w", eventID, err)
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return err
	}
	log.WithField("event_id", eventID).Info("deleted event")
	return nil
}

// IncrementParticipantCount bumps the joined counter and recomputes the
// derived status, returning the updated event.
func (s *EventService) IncrementParticipantCount(ctx context.Context, eventID string) (*entities.Event, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	event.CurrentParticipants++
	event.UpdateStatus(s.now())
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// DecrementParticipantCount lowers the joined counter (never below zero) and
// recomputes the derived status, returning the updated event.
func (s *EventService) DecrementParticipantCount(ctx context.Context, eventID string) (*entities.Event, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.CurrentParticipants > 0 {
		event.CurrentParticipants--
	}
	event.UpdateStatus(s.now())
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// statusGate rejects joins and recruitment edits on closed or terminal
// events. ACTIVE and FULL pass: FULL still allows waitlist joins.
func statusGate(event *entities.Event) error {
	switch event.Status {
	case domain.EventStatusClosed:
		return domain.ErrEventClosed
	case domain.EventStatusCancelled:
		return domain.ErrEventCancelled
	case domain.EventStatusCompleted:
		return domain.ErrEventCompleted
	}
	return nil
}
