package usecase

import (
	"context"
	"testing"
	"time"

	"cremacao_pet/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulingSweep_PromoteScheduled(t *testing.T) {
	ctx := context.Background()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	f := newFixture(t)
	due := f.create(t, receptor, CreateRemovalCommand{ScheduledDate: "2026-03-10", ScheduledTime: "09:55"})
	stale := f.create(t, receptor, CreateRemovalCommand{ScheduledDate: "2026-03-10", ScheduledTime: "09:40"})
	future := f.create(t, receptor, CreateRemovalCommand{ScheduledDate: "2026-03-10", ScheduledTime: "10:30"})
	f.notifier.reset()

	sweep := NewSchedulingSweep(f.store, nil, nil, loc, 0)
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, loc)

	n, err := sweep.PromoteScheduled(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	promoted, _ := f.store.Get(ctx, due.ID)
	assert.Equal(t, entities.RemovalStatusSolicitada, promoted.Status)
	require.Len(t, promoted.History, 2)
	assert.Equal(t, entities.SystemActor.Name, promoted.History[1].User)
	assert.Len(t, f.notifier.forRole(entities.RoleReceptor), 1)

	for _, id := range []string{stale.ID, future.ID} {
		r, _ := f.store.Get(ctx, id)
		assert.Equal(t, entities.RemovalStatusAgendada, r.Status, "older misses and future schedules stay agendada")
	}

	t.Run("second tick is a no-op", func(t *testing.T) {
		n, err := sweep.PromoteScheduled(ctx, now.Add(time.Minute))
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("exactly at the scheduled time", func(t *testing.T) {
		n, err := sweep.PromoteScheduled(ctx, time.Date(2026, 3, 10, 10, 30, 0, 0, loc))
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("window end is exclusive", func(t *testing.T) {
		g := newFixture(t)
		r := g.create(t, receptor, CreateRemovalCommand{ScheduledDate: "2026-03-10", ScheduledTime: "09:50"})
		n, err := NewSchedulingSweep(g.store, nil, nil, loc, 0).PromoteScheduled(ctx, now)
		require.NoError(t, err)
		assert.Zero(t, n)
		stored, _ := g.store.Get(ctx, r.ID)
		assert.Equal(t, entities.RemovalStatusAgendada, stored.Status)
	})
}
