package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"withgames/internal/domain/entities"
	"withgames/internal/infrastructure/docstore"
	"withgames/internal/infrastructure/repository"
	"withgames/internal/ports/input"
)

// keyTranslator returns the message key unchanged so tests can assert on
// stable identifiers instead of localized text.
type keyTranslator struct{}

func (keyTranslator) T(_, key string, _ map[string]any) string { return key }

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu       sync.Mutex
	userMsgs map[string][]string
	chanMsgs map[string][]string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{
		userMsgs: make(map[string][]string),
		chanMsgs: make(map[string][]string),
	}
}

func (n *recordingNotifier) NotifyUser(_ context.Context, userID, content string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.userMsgs[userID] = append(n.userMsgs[userID], content)
}

func (n *recordingNotifier) NotifyChannel(_ context.Context, channelID, content string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.chanMsgs[channelID] = append(n.chanMsgs[channelID], content)
}

type staticGuilds []string

func (g staticGuilds) GuildIDs() []string { return g }

type fixture struct {
	events      *EventService
	ledger      *ParticipantLedger
	recruitment *RecruitmentService
	reconciler  *CapacityReconciler
	notifier    *recordingNotifier
	clock       time.Time
}

func newFixture() *fixture {
	store := docstore.NewMemoryStore()
	eventRepo := repository.NewEventRepository(store)
	participantRepo := repository.NewParticipantRepository(store)

	f := &fixture{
		notifier: newRecordingNotifier(),
		clock:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	now := func() time.Time { return f.clock }

	f.events = NewEventService(eventRepo, participantRepo)
	f.events.now = now
	f.ledger = NewParticipantLedger(participantRepo)
	f.ledger.now = now
	f.recruitment = NewRecruitmentService(f.ledger, f.events, f.notifier, keyTranslator{}, "ja")
	f.reconciler = NewCapacityReconciler(f.ledger, f.events)
	return f
}

// advance moves the fixture clock forward; each participant gets a distinct
// join time this way.
func (f *fixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

func (f *fixture) createEvent(t *testing.T, max int) *entities.Event {
	t.Helper()
	event, err := f.events.CreateEvent(context.Background(), input.CreateEventInput{
		Title:           "Apex Ranked Night",
		Description:     "ランク回します",
		GameType:        "Apex Legends",
		StartTime:       f.clock.Add(24 * time.Hour),
		MaxParticipants: max,
		CreatorID:       "creator",
		CreatorName:     "Creator",
		GuildID:         "guild-1",
		ChannelID:       "chan-1",
	})
	require.NoError(t, err)
	return event
}

func (f *fixture) join(t *testing.T, eventID, userID string) *input.JoinResult {
	t.Helper()
	res, err := f.recruitment.JoinEvent(context.Background(), eventID, userID, "name-"+userID)
	require.NoError(t, err)
	f.advance(time.Second)
	return res
}
