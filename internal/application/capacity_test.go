package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"withgames/internal/domain"
)

func TestReconcileCapacityIncreasePromotesEarliestFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	event := f.createEvent(t, 2)

	for _, id := range []string{"u1", "u2", "a", "b", "c"} {
		f.join(t, event.ID, id)
	}

	// Raise capacity by two: a and b leave the waitlist, c moves to front.
	oldMax := event.MaxParticipants
	event.MaxParticipants = 4
	require.NoError(t, f.reconciler.ReconcileCapacity(ctx, event, oldMax))

	joined, err := f.ledger.ListJoined(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, joined, 4)
	ids := make([]string, len(joined))
	for i, p := range joined {
		ids[i] = p.UserID
	}
	assert.ElementsMatch(t, []string{"u1", "u2", "a", "b"}, ids)

	waitlist, err := f.ledger.ListWaitlist(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, waitlist, 1)
	assert.Equal(t, "c", waitlist[0].UserID)
	assert.Equal(t, 1, waitlist[0].Position)

	got, err := f.events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.CurrentParticipants)
	assert.Equal(t, domain.EventStatusFull, got.Status)
}

func TestReconcileCapacityIncreaseWithEmptyWaitlist(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	event := f.createEvent(t, 2)
	f.join(t, event.ID, "u1")
	f.join(t, event.ID, "u2")

	oldMax := event.MaxParticipants
	event.MaxParticipants = 5
	require.NoError(t, f.reconciler.ReconcileCapacity(ctx, event, oldMax))

	got, err := f.events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentParticipants)
	assert.Equal(t, domain.EventStatusActive, got.Status)
}

func TestReconcileCapacityDecreaseDemotesMostRecent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	event := f.createEvent(t, 3)

	// u1 joins first, u3 last.
	for _, id := range []string{"u1", "u2", "u3"} {
		f.join(t, event.ID, id)
	}

	oldMax := event.MaxParticipants
	event.MaxParticipants = 2
	require.NoError(t, f.reconciler.ReconcileCapacity(ctx, event, oldMax))

	joined, err := f.ledger.ListJoined(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, joined, 2)
	assert.Equal(t, "u1", joined[0].UserID)
	assert.Equal(t, "u2", joined[1].UserID)

	waitlist, err := f.ledger.ListWaitlist(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, waitlist, 1)
	assert.Equal(t, "u3", waitlist[0].UserID)
	assert.Equal(t, 1, waitlist[0].Position)

	got, err := f.events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentParticipants)
	assert.Equal(t, domain.EventStatusFull, got.Status)
}

func TestReconcileCapacityDecreaseDemotedGoBehindWaiters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	event := f.createEvent(t, 2)
	for _, id := range []string{"u1", "u2", "w1"} {
		f.join(t, event.ID, id)
	}

	oldMax := event.MaxParticipants
	event.MaxParticipants = 1
	require.NoError(t, f.reconciler.ReconcileCapacity(ctx, event, oldMax))

	// u2 was demoted; w1 was already waiting and keeps the better position.
	waitlist, err := f.ledger.ListWaitlist(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, waitlist, 2)
	assert.Equal(t, "w1", waitlist[0].UserID)
	assert.Equal(t, "u2", waitlist[1].UserID)
	assert.Equal(t, 2, waitlist[1].Position)
}

func TestReconcileCapacityUnchangedOnlyRecounts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	event := f.createEvent(t, 3)
	f.join(t, event.ID, "u1")

	// Drift the stored counter; a same-capacity reconcile repairs it.
	event.CurrentParticipants = 99
	require.NoError(t, f.reconciler.ReconcileCapacity(ctx, event, event.MaxParticipants))

	got, err := f.events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentParticipants)
	assert.Equal(t, domain.EventStatusActive, got.Status)
}
