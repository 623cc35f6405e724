package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cremacao_pet/internal/adapter/persistence/repository"
	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemovalStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("forbidden role", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.store.Create(ctx, driver, CreateRemovalCommand{Pet: entities.Pet{Name: "Thor", Species: "cachorro"}})
		assert.True(t, errors.Is(err, ErrForbiddenRole), "got %v", err)
	})

	t.Run("pet name required", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.store.Create(ctx, receptor, CreateRemovalCommand{Pet: entities.Pet{Species: "gato"}})
		assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
	})

	t.Run("schedule needs date and time", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.store.Create(ctx, receptor, CreateRemovalCommand{
			Pet:           entities.Pet{Name: "Thor", Species: "cachorro"},
			ScheduledDate: "2026-03-10",
		})
		assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
	})

	t.Run("new removal is priced, versioned and announced", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, clinic, CreateRemovalCommand{
			Modality:      entities.ModalityIndividualPrata,
			PaymentMethod: "pix",
			Additionals:   []entities.Additional{{Type: "patinha", Quantity: 2, Value: decimal.NewFromInt(40)}},
		})

		assert.NotEmpty(t, r.ID)
		assert.Equal(t, entities.RemovalStatusSolicitada, r.Status)
		assert.Equal(t, 1, r.Version)
		assert.Equal(t, clinic.ID, r.CreatedByID)
		assert.True(t, r.Value.Equal(decimal.NewFromInt(580)), "500 base + 2x40, got %s", r.Value)
		require.Len(t, r.History, 1)
		assert.Equal(t, clinic.Name, r.History[0].User)
		assert.Len(t, f.notifier.forRole(entities.RoleReceptor), 1)
	})

	t.Run("explicit value wins over price table", func(t *testing.T) {
		f := newFixture(t)
		v := decimal.NewFromInt(999)
		r := f.create(t, receptor, CreateRemovalCommand{Modality: entities.ModalityColetivo, Value: &v})
		assert.True(t, r.Value.Equal(v))
	})

	t.Run("missing price contributes zero", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{
			Pet:      entities.Pet{Name: "Zeca", Species: "jabuti", Weight: "0-5kg"},
			Modality: entities.ModalityColetivo,
		})
		assert.True(t, r.Value.IsZero())
	})

	t.Run("scheduled intake starts agendada", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{ScheduledDate: "2026-03-11", ScheduledTime: "09:30"})
		assert.Equal(t, entities.RemovalStatusAgendada, r.Status)
	})

	t.Run("duplicate code", func(t *testing.T) {
		f := newFixture(t)
		f.create(t, receptor, CreateRemovalCommand{Code: "R-001"})
		_, err := f.store.Create(ctx, receptor, CreateRemovalCommand{Code: "R-001", Pet: entities.Pet{Name: "Mel", Species: "gato"}, Address: curitiba})
		assert.True(t, errors.Is(err, ErrDuplicateCode), "got %v", err)
	})
}

func TestRemovalStore_AssignCode(t *testing.T) {
	ctx := context.Background()

	t.Run("first code notifies three roles", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{})
		f.notifier.reset()

		updated, err := f.store.AssignCode(ctx, receptor, r.ID, "R-100", r.Version)
		require.NoError(t, err)
		assert.Equal(t, "R-100", updated.Code)
		assert.Equal(t, 2, updated.Version)
		assert.Len(t, updated.History, 2)
		assert.Len(t, f.notifier.forRole(entities.RoleReceptor), 1)
		assert.Len(t, f.notifier.forRole(entities.RoleMotorista), 1)
		assert.Len(t, f.notifier.forRole(entities.RoleFinanceiroJunior), 1)
	})

	t.Run("duplicate keeps previous code", func(t *testing.T) {
		f := newFixture(t)
		f.createWithCode(t, "R-1", entities.ModalityColetivo)
		second := f.createWithCode(t, "R-2", entities.ModalityColetivo)

		_, err := f.store.AssignCode(ctx, receptor, second.ID, "R-1", 0)
		assert.True(t, errors.Is(err, ErrDuplicateCode), "got %v", err)

		stored, err := f.store.Get(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, "R-2", stored.Code)
		assert.Len(t, stored.History, len(second.History))
	})

	t.Run("role not allowed", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{})
		_, err := f.store.AssignCode(ctx, driver, r.ID, "R-9", 0)
		assert.True(t, errors.Is(err, ErrForbiddenRole), "got %v", err)
	})
}

func TestRemovalStore_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.store.Update(ctx, "nope", 0, func(*entities.Removal) error { return nil })
		assert.True(t, errors.Is(err, ErrRemovalNotFound))
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{})
		_, err := f.store.AssignCode(ctx, receptor, r.ID, "R-1", r.Version)
		require.NoError(t, err)

		_, err = f.store.AssignCode(ctx, receptor, r.ID, "R-2", r.Version)
		assert.True(t, errors.Is(err, ErrVersionConflict), "got %v", err)
		assert.True(t, errors.Is(err, interfaces.ErrVersionConflict))
	})

	t.Run("history cannot shrink or change", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{})

		_, err := f.store.Update(ctx, r.ID, 0, func(rem *entities.Removal) error {
			rem.History = nil
			return nil
		})
		assert.True(t, errors.Is(err, ErrHistoryRewrite), "got %v", err)

		_, err = f.store.Update(ctx, r.ID, 0, func(rem *entities.Removal) error {
			rem.History[0].Action = "edited"
			return nil
		})
		assert.True(t, errors.Is(err, ErrHistoryRewrite), "got %v", err)

		stored, _ := f.store.Get(ctx, r.ID)
		assert.Equal(t, r.History, stored.History)
	})

	t.Run("mutation error leaves record untouched", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{})
		_, err := f.store.Update(ctx, r.ID, 0, func(rem *entities.Removal) error {
			rem.Code = "changed"
			return errors.New("boom")
		})
		require.Error(t, err)
		stored, _ := f.store.Get(ctx, r.ID)
		assert.Empty(t, stored.Code)
		assert.Equal(t, 1, stored.Version)
	})

	t.Run("a_caminho notifies the requester", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, clinic, CreateRemovalCommand{})
		f.advance(t, r.ID, entities.RemovalStatusEmAndamento)
		assert.Len(t, f.notifier.forUser(driver.ID), 1, "driver inbox")

		f.advance(t, r.ID, entities.RemovalStatusACaminho)
		assert.Len(t, f.notifier.forUser(clinic.ID), 1)
	})
}

func TestRemovalStore_UpdateMultiple(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.createWithCode(t, "L-1", entities.ModalityColetivo)
	b := f.createWithCode(t, "L-2", entities.ModalityColetivo)
	f.notifier.reset()

	batch := entities.NotifyRole(entities.RoleFinanceiroMaster, "lote", "")
	updated, err := f.store.UpdateMultiple(ctx, []string{"L-1", "L-2"}, func(r *entities.Removal) error {
		r.PetCondition = "ok"
		r.History = append(r.History, historyEntry(f.now, admin, "lote"))
		return nil
	}, &batch)
	require.NoError(t, err)
	require.Len(t, updated, 2)
	assert.Len(t, f.notifier.all(), 1, "one batch-level notification only")

	t.Run("one invalid member blocks every write", func(t *testing.T) {
		_, err := f.store.UpdateMultiple(ctx, []string{"L-1", "L-2"}, func(r *entities.Removal) error {
			if r.Code == "L-2" {
				return reject("test", ErrValidation, "no")
			}
			r.PetCondition = "changed"
			r.History = append(r.History, historyEntry(f.now, admin, "x"))
			return nil
		}, nil)
		require.Error(t, err)
		stored, _ := f.store.Get(ctx, a.ID)
		assert.Equal(t, "ok", stored.PetCondition)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := f.store.UpdateMultiple(ctx, []string{b.Code, "missing"}, func(*entities.Removal) error { return nil }, nil)
		assert.True(t, errors.Is(err, ErrRemovalNotFound), "got %v", err)
	})
}

// racingRemovalRepo lets another writer bump one removal right before a group write lands.
type racingRemovalRepo struct {
	*repository.RemovalMemoryRepository
	racedID string
}

func (r *racingRemovalRepo) UpdateMany(ctx context.Context, updates []interfaces.RemovalUpdate) ([]entities.Removal, error) {
	stored, err := r.GetByID(ctx, r.racedID)
	if err != nil {
		return nil, err
	}
	stored.PetCondition = "concurrent"
	if _, err := r.Update(ctx, stored, stored.Version); err != nil {
		return nil, err
	}
	return r.RemovalMemoryRepository.UpdateMany(ctx, updates)
}

func TestRemovalStore_UpdateMultiple_ConflictWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.createWithCode(t, "L-1", entities.ModalityColetivo)
	b := f.createWithCode(t, "L-2", entities.ModalityColetivo)

	repo := &racingRemovalRepo{RemovalMemoryRepository: f.removals, racedID: b.ID}
	store := NewRemovalStore(repo, f.prices, f.notifier, nil, nil).WithClock(func() time.Time { return f.now })
	f.notifier.reset()

	batch := entities.NotifyRole(entities.RoleFinanceiroMaster, "lote", "")
	updated, err := store.UpdateMultiple(ctx, []string{"L-1", "L-2"}, func(r *entities.Removal) error {
		r.PetCondition = "lote"
		r.History = append(r.History, historyEntry(f.now, admin, "lote"))
		return nil
	}, &batch)
	assert.True(t, errors.Is(err, ErrVersionConflict), "got %v", err)
	assert.Empty(t, updated)
	assert.Empty(t, f.notifier.all())

	first, err := store.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Version, first.Version, "first member is not written")
	assert.Empty(t, first.PetCondition)
	assert.Len(t, first.History, len(a.History))

	second, err := store.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "concurrent", second.PetCondition)
}
