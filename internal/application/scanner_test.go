package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"withgames/internal/domain"
	"withgames/internal/domain/entities"
)

func newScanner(f *fixture, notifier *recordingNotifier) *LifecycleScanner {
	s := NewLifecycleScanner(
		f.events, f.ledger, notifier, keyTranslator{}, staticGuilds{"guild-1"}, "ja",
		30*time.Minute, 5*time.Minute, 10*time.Minute,
	)
	s.now = func() time.Time { return f.clock }
	return s
}

func TestCheckRemindersNotifiesInsideWindow(t *testing.T) {
	f := newFixture()
	notifier := newRecordingNotifier()
	s := newScanner(f, notifier)
	ctx := context.Background()

	event := f.createEvent(t, 4)
	f.join(t, event.ID, "u1")
	f.join(t, event.ID, "u2")

	// 20 minutes before start: inside the 30 minute window.
	f.clock = event.StartTime.Add(-20 * time.Minute)
	s.CheckReminders(ctx)

	assert.Len(t, notifier.userMsgs["u1"], 1)
	assert.Len(t, notifier.userMsgs["u2"], 1)
	assert.Len(t, notifier.chanMsgs["chan-1"], 1)

	got, err := f.events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.True(t, got.ReminderSent)
}

func TestCheckRemindersWindowBoundaries(t *testing.T) {
	f := newFixture()
	notifier := newRecordingNotifier()
	s := newScanner(f, notifier)
	ctx := context.Background()

	event := f.createEvent(t, 4)
	f.join(t, event.ID, "u1")

	// Too early: one second before the window opens.
	f.clock = event.StartTime.Add(-30*time.Minute - time.Second)
	s.CheckReminders(ctx)
	assert.Empty(t, notifier.userMsgs["u1"])

	// Exactly at the window edge counts as inside.
	f.clock = event.StartTime.Add(-30 * time.Minute)
	s.CheckReminders(ctx)
	assert.Len(t, notifier.userMsgs["u1"], 1)
}

func TestCheckRemindersNeverFiresAfterStart(t *testing.T) {
	f := newFixture()
	notifier := newRecordingNotifier()
	s := newScanner(f, notifier)
	ctx := context.Background()

	event := f.createEvent(t, 4)
	f.join(t, event.ID, "u1")

	f.clock = event.StartTime
	s.CheckReminders(ctx)
	assert.Empty(t, notifier.userMsgs["u1"])

	got, err := f.events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.False(t, got.ReminderSent)
}

func TestCheckRemindersAtMostOnce(t *testing.T) {
	f := newFixture()
	notifier := newRecordingNotifier()
	s := newScanner(f, notifier)
	ctx := context.Background()

	event := f.createEvent(t, 4)
	f.join(t, event.ID, "u1")

	f.clock = event.StartTime.Add(-15 * time.Minute)
	s.CheckReminders(ctx)
	s.CheckReminders(ctx)
	s.CheckReminders(ctx)

	assert.Len(t, notifier.userMsgs["u1"], 1)
	assert.Len(t, notifier.chanMsgs["chan-1"], 1)
}

func TestCheckRemindersMarksSentWithoutParticipants(t *testing.T) {
	f := newFixture()
	notifier := newRecordingNotifier()
	s := newScanner(f, notifier)
	ctx := context.Background()

	event := f.createEvent(t, 4)

	f.clock = event.StartTime.Add(-10 * time.Minute)
	s.CheckReminders(ctx)

	assert.Empty(t, notifier.chanMsgs)
	got, err := f.events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.True(t, got.ReminderSent)
}

func TestCheckRemindersSkipsCancelled(t *testing.T) {
	f := newFixture()
	notifier := newRecordingNotifier()
	s := newScanner(f, notifier)
	ctx := context.Background()

	event := f.createEvent(t, 4)
	f.join(t, event.ID, "u1")
	require.NoError(t, f.events.CancelEvent(ctx, event.ID))

	f.clock = event.StartTime.Add(-10 * time.Minute)
	s.CheckReminders(ctx)
	assert.Empty(t, notifier.userMsgs["u1"])
}

func TestCheckRemindersIncludesClosedEvents(t *testing.T) {
	f := newFixture()
	notifier := newRecordingNotifier()
	s := newScanner(f, notifier)
	ctx := context.Background()

	event := f.createEvent(t, 4)
	f.join(t, event.ID, "u1")
	require.NoError(t, f.events.CloseEvent(ctx, event.ID))

	// Recruitment is closed but the session still happens.
	f.clock = event.StartTime.Add(-10 * time.Minute)
	s.CheckReminders(ctx)
	assert.Len(t, notifier.userMsgs["u1"], 1)
}

func TestCheckCompletedEventsFinalizesPastStart(t *testing.T) {
	f := newFixture()
	notifier := newRecordingNotifier()
	s := newScanner(f, notifier)
	ctx := context.Background()

	past := f.createEvent(t, 4)
	upcoming := f.createEvent(t, 4)

	f.clock = past.StartTime.Add(time.Minute)
	upcoming.StartTime = f.clock.Add(2 * time.Hour)
	require.NoError(t, f.events.UpdateEvent(ctx, upcoming))

	s.CheckCompletedEvents(ctx)

	got, err := f.events.GetEvent(ctx, past.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EventStatusCompleted, got.Status)

	got, err = f.events.GetEvent(ctx, upcoming.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EventStatusActive, got.Status)
}

func TestCheckCompletedEventsLeavesCancelledAlone(t *testing.T) {
	f := newFixture()
	notifier := newRecordingNotifier()
	s := newScanner(f, notifier)
	ctx := context.Background()

	event := f.createEvent(t, 4)
	require.NoError(t, f.events.CancelEvent(ctx, event.ID))

	f.clock = event.StartTime.Add(time.Hour)
	s.CheckCompletedEvents(ctx)

	got, err := f.events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EventStatusCancelled, got.Status)
}

func TestCheckCompletedEventsFinalizesClosed(t *testing.T) {
	f := newFixture()
	notifier := newRecordingNotifier()
	s := newScanner(f, notifier)
	ctx := context.Background()

	event := f.createEvent(t, 4)
	require.NoError(t, f.events.CloseEvent(ctx, event.ID))

	f.clock = event.StartTime.Add(time.Hour)
	s.CheckCompletedEvents(ctx)

	got, err := f.events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EventStatusCompleted, got.Status)
}

func TestChannelReminderCapsMentions(t *testing.T) {
	f := newFixture()
	notifier := newRecordingNotifier()
	s := newScanner(f, notifier)

	participants := make([]entities.Participant, 25)
	for i := range participants {
		participants[i] = entities.Participant{UserID: string(rune('a' + i))}
	}
	event := &entities.Event{Title: "big one", CurrentParticipants: 25, MaxParticipants: 30}

	msg := s.channelReminder(event, participants, 30)
	assert.Contains(t, msg, "reminder.more_participants")
	assert.Contains(t, msg, "reminder.channel")
}
