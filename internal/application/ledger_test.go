package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"withgames/internal/domain"
)

func TestLedgerJoinPartitionsByCapacity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	event := f.createEvent(t, 2)

	p1, err := f.ledger.Join(ctx, event, "u1", "User One")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusJoined, p1.Status)
	assert.Equal(t, 0, p1.Position)

	f.advance(time.Second)
	p2, err := f.ledger.Join(ctx, event, "u2", "User Two")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusJoined, p2.Status)

	f.advance(time.Second)
	p3, err := f.ledger.Join(ctx, event, "u3", "User Three")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWaitlist, p3.Status)
	assert.Equal(t, 1, p3.Position)

	f.advance(time.Second)
	p4, err := f.ledger.Join(ctx, event, "u4", "User Four")
	require.NoError(t, err)
	assert.Equal(t, 2, p4.Position)
}

func TestLedgerJoinRejectsDuplicate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	event := f.createEvent(t, 2)

	_, err := f.ledger.Join(ctx, event, "u1", "User One")
	require.NoError(t, err)

	_, err = f.ledger.Join(ctx, event, "u1", "User One")
	assert.ErrorIs(t, err, domain.ErrAlreadyParticipating)

	joined, err := f.ledger.ListJoined(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, joined, 1)
}

func TestLedgerLeaveUnknownUser(t *testing.T) {
	f := newFixture()
	event := f.createEvent(t, 2)

	_, err := f.ledger.Leave(context.Background(), event.ID, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotParticipating)
}

func TestLedgerListJoinedOrdersByJoinTime(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	event := f.createEvent(t, 5)

	for _, id := range []string{"u1", "u2", "u3"} {
		_, err := f.ledger.Join(ctx, event, id, id)
		require.NoError(t, err)
		f.advance(time.Minute)
	}

	joined, err := f.ledger.ListJoined(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, joined, 3)
	assert.Equal(t, "u1", joined[0].UserID)
	assert.Equal(t, "u2", joined[1].UserID)
	assert.Equal(t, "u3", joined[2].UserID)
}

func TestLedgerResequenceClosesGaps(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	event := f.createEvent(t, 1)

	_, err := f.ledger.Join(ctx, event, "seat", "Seat Holder")
	require.NoError(t, err)
	for _, id := range []string{"w1", "w2", "w3"} {
		f.advance(time.Second)
		_, err := f.ledger.Join(ctx, event, id, id)
		require.NoError(t, err)
	}

	// Drop the middle entry and resequence: w1 keeps 1, w3 slides to 2.
	_, err = f.ledger.Leave(ctx, event.ID, "w2")
	require.NoError(t, err)
	require.NoError(t, f.ledger.ResequenceWaitlist(ctx, event.ID))

	waitlist, err := f.ledger.ListWaitlist(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, waitlist, 2)
	assert.Equal(t, "w1", waitlist[0].UserID)
	assert.Equal(t, 1, waitlist[0].Position)
	assert.Equal(t, "w3", waitlist[1].UserID)
	assert.Equal(t, 2, waitlist[1].Position)
}

func TestLedgerPromoteRequiresWaitlist(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	event := f.createEvent(t, 2)

	_, err := f.ledger.Join(ctx, event, "u1", "User One")
	require.NoError(t, err)

	_, err = f.ledger.Promote(ctx, event.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrNotOnWaitlist)
	_, err = f.ledger.Promote(ctx, event.ID, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotOnWaitlist)
}

func TestLedgerDemoteAppendsToWaitlistEnd(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	event := f.createEvent(t, 2)

	for _, id := range []string{"u1", "u2", "w1"} {
		_, err := f.ledger.Join(ctx, event, id, id)
		require.NoError(t, err)
		f.advance(time.Second)
	}

	demoted, err := f.ledger.Demote(ctx, event.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWaitlist, demoted.Status)
	assert.Equal(t, 2, demoted.Position)

	_, err = f.ledger.Demote(ctx, event.ID, "w1")
	assert.ErrorIs(t, err, domain.ErrNotJoined)
}
