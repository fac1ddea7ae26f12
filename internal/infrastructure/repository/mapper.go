package repository

import (
	"time"

	"withgames/internal/domain"
	"withgames/internal/domain/entities"
	"withgames/internal/infrastructure/docstore"
)

// Collection names in the document store.
const (
	eventsCollection       = "events"
	participantsCollection = "participants"
)

// Documents round-trip through JSON, so numbers come back as float64 and
// times as RFC 3339 strings. All coercion lives here; the rest of the code
// only sees typed entities.

func docString(doc docstore.Document, key string) string {
	s, _ := doc[key].(string)
	return s
}

func docInt(doc docstore.Document, key string) int {
	switch n := doc[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func docBool(doc docstore.Document, key string) bool {
	b, _ := doc[key].(bool)
	return b
}

func docTime(doc docstore.Document, key string) time.Time {
	s, ok := doc[key].(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func timeToDoc(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func eventToDoc(e *entities.Event) docstore.Document {
	return docstore.Document{
		"title":                e.Title,
		"description":          e.Description,
		"game_type":            e.GameType,
		"game_emoji":           e.GameEmoji,
		"game_icon_url":        e.GameIconURL,
		"start_time":           timeToDoc(e.StartTime),
		"max_participants":     e.MaxParticipants,
		"creator_id":           e.CreatorID,
		"creator_name":         e.CreatorName,
		"guild_id":             e.GuildID,
		"channel_id":           e.ChannelID,
		"message_id":           e.MessageID,
		"current_participants": e.CurrentParticipants,
		"status":               string(e.Status),
		"reminder_sent":        e.ReminderSent,
		"created_at":           timeToDoc(e.CreatedAt),
		"updated_at":           timeToDoc(e.UpdatedAt),
	}
}

func eventFromDoc(doc docstore.Document) entities.Event {
	return entities.Event{
		ID:                  docString(doc, "id"),
		Title:               docString(doc, "title"),
		Description:         docString(doc, "description"),
		GameType:            docString(doc, "game_type"),
		GameEmoji:           docString(doc, "game_emoji"),
		GameIconURL:         docString(doc, "game_icon_url"),
		StartTime:           docTime(doc, "start_time"),
		MaxParticipants:     docInt(doc, "max_participants"),
		CreatorID:           docString(doc, "creator_id"),
		CreatorName:         docString(doc, "creator_name"),
		GuildID:             docString(doc, "guild_id"),
		ChannelID:           docString(doc, "channel_id"),
		MessageID:           docString(doc, "message_id"),
		CurrentParticipants: docInt(doc, "current_participants"),
		Status:              domain.EventStatus(docString(doc, "status")),
		ReminderSent:        docBool(doc, "reminder_sent"),
		CreatedAt:           docTime(doc, "created_at"),
		UpdatedAt:           docTime(doc, "updated_at"),
	}
}

func participantToDoc(p *entities.Participant) docstore.Document {
	return docstore.Document{
		"event_id":  p.EventID,
		"user_id":   p.UserID,
		"user_name": p.UserName,
		"status":    string(p.Status),
		"position":  p.Position,
		"joined_at": timeToDoc(p.JoinedAt),
	}
}

func participantFromDoc(doc docstore.Document) entities.Participant {
	return entities.Participant{
		ID:       docString(doc, "id"),
		EventID:  docString(doc, "event_id"),
		UserID:   docString(doc, "user_id"),
		UserName: docString(doc, "user_name"),
		Status:   domain.ParticipantStatus(docString(doc, "status")),
		Position: docInt(doc, "position"),
		JoinedAt: docTime(doc, "joined_at"),
	}
}
