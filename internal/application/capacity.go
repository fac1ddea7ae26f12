package application

import (
	"context"
	"sort"

	log "github.com/sirupsen/logrus"

	"withgames/internal/domain/entities"
	"withgames/internal/ports/input"
)

var _ input.CapacityUseCase = (*CapacityReconciler)(nil)

// CapacityReconciler restores the joined/waitlist partition after the
// capacity of an event changes.
type CapacityReconciler struct {
	ledger *ParticipantLedger
	events *EventService
}

// NewCapacityReconciler creates a CapacityReconciler.
func NewCapacityReconciler(ledger *ParticipantLedger, events *EventService) *CapacityReconciler {
	return &CapacityReconciler{ledger: ledger, events: events}
}

// ReconcileCapacity promotes or demotes participants so the joined count
// fits the new capacity, then recomputes the counter and status from the
// authoritative joined list. The per-user loops are best-effort: a single
// failed promotion or demotion is logged and the loop continues.
func (r *CapacityReconciler) ReconcileCapacity(ctx context.Context, event *entities.Event, oldMax int) error {
	newMax := event.MaxParticipants
	switch {
	case newMax > oldMax:
		if err := r.promoteIntoFreedSlots(ctx, event, newMax); err != nil {
			return err
		}
	case newMax < oldMax:
		if err := r.demoteExcess(ctx, event, newMax); err != nil {
			return err
		}
	}

	joined, err := r.ledger.ListJoined(ctx, event.ID)
	if err != nil {
		return err
	}
	event.CurrentParticipants = len(joined)
	event.UpdateStatus(r.events.now())
	return r.events.UpdateEvent(ctx, event)
}

// promoteIntoFreedSlots promotes waitlisted users in ascending position
// order (earliest waiting first) until the freed slots are used up.
func (r *CapacityReconciler) promoteIntoFreedSlots(ctx context.Context, event *entities.Event, newMax int) error {
	joined, err := r.ledger.ListJoined(ctx, event.ID)
	if err != nil {
		return err
	}
	available := newMax - len(joined)
	if available <= 0 {
		return nil
	}
	waitlist, err := r.ledger.ListWaitlist(ctx, event.ID)
	if err != nil {
		return err
	}
	toPromote := available
	if len(waitlist) < toPromote {
		toPromote = len(waitlist)
	}
	promoted := 0
	for i := 0; i < toPromote; i++ {
		if _, err := r.ledger.Promote(ctx, event.ID, waitlist[i].UserID); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"event_id": event.ID,
				"user_id":  waitlist[i].UserID,
			}).Error("failed to promote participant during capacity increase")
			continue
		}
		promoted++
	}
	if promoted > 0 {
		if err := r.ledger.ResequenceWaitlist(ctx, event.ID); err != nil {
			return err
		}
		log.WithFields(log.Fields{"event_id": event.ID, "promoted": promoted}).Info("promoted waitlisted users after capacity increase")
	}
	return nil
}

// demoteExcess bumps the most-recently-joined participants to the back of
// the waitlist: earlier joiners keep their slots.
func (r *CapacityReconciler) demoteExcess(ctx context.Context, event *entities.Event, newMax int) error {
	joined, err := r.ledger.ListJoined(ctx, event.ID)
	if err != nil {
		return err
	}
	excess := len(joined) - newMax
	if excess <= 0 {
		return nil
	}
	sort.SliceStable(joined, func(i, j int) bool {
		return joined[i].JoinedAt.After(joined[j].JoinedAt)
	})
	demoted := 0
	for i := 0; i < excess && i < len(joined); i++ {
		if _, err := r.ledger.Demote(ctx, event.ID, joined[i].UserID); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"event_id": event.ID,
				"user_id":  joined[i].UserID,
			}).Error("failed to demote participant during capacity decrease")
			continue
		}
		demoted++
	}
	if demoted > 0 {
		log.WithFields(log.Fields{"event_id": event.ID, "demoted": demoted}).Info("moved excess participants to waitlist after capacity decrease")
	}
	return nil
}
