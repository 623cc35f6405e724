package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"cremacao_pet/internal/domain/entities"
	mock_interfaces "cremacao_pet/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestTransition_HappyPathAppendsOneEntryPerOperation(t *testing.T) {
	f := newFixture(t)
	r := f.createWithCode(t, "IND-1", entities.ModalityIndividualOuro)

	path := []entities.RemovalStatus{
		entities.RemovalStatusEmAndamento,
		entities.RemovalStatusACaminho,
		entities.RemovalStatusRemovido,
		entities.RemovalStatusConcluida,
		entities.RemovalStatusAguardandoFinanceiroJunior,
		entities.RemovalStatusAguardandoBaixaMaster,
		entities.RemovalStatusFinalizada,
		entities.RemovalStatusCremado,
		entities.RemovalStatusProntoParaEntrega,
		entities.RemovalStatusEntregaAgendada,
	}
	prev := r
	for _, status := range path {
		next := f.advance(t, r.ID, status)
		assert.GreaterOrEqual(t, len(next.History), len(prev.History)+1, "status %s", status)
		assert.Equal(t, prev.History, next.History[:len(prev.History)], "history prefix kept at %s", status)
		assert.Greater(t, next.Version, prev.Version)
		prev = next
	}

	closed, err := f.transitions.ConfirmDelivery(context.Background(), receptor, r.ID, prev.Version)
	require.NoError(t, err)
	assert.Equal(t, entities.RemovalStatusFinalizada, closed.Status)
	assert.NotNil(t, closed.ClosedAt)
	assert.True(t, closed.IsTerminal())
	assert.Len(t, closed.History, len(prev.History)+1)
	assert.Empty(t, entities.PermittedOperations(entities.RoleAdmin, closed))
}

func TestTransition_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("reason is required", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{})
		_, err := f.transitions.Cancel(ctx, receptor, r.ID, 0, "   ")
		assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
	})

	t.Run("cancelled removal accepts nothing else", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{})

		cancelled, err := f.transitions.Cancel(ctx, receptor, r.ID, r.Version, "Tutor desistiu")
		require.NoError(t, err)
		assert.Equal(t, entities.RemovalStatusCancelada, cancelled.Status)
		assert.Equal(t, "Tutor desistiu", cancelled.CancellationReason)
		require.Len(t, cancelled.History, 2)
		assert.Equal(t, "Tutor desistiu", cancelled.History[1].Reason)

		_, err = f.transitions.DirectToDriver(ctx, receptor, r.ID, 0, DirectToDriverCommand{DriverID: driver.ID})
		assert.True(t, errors.Is(err, ErrTerminalStatus), "got %v", err)
		_, err = f.transitions.Cancel(ctx, admin, r.ID, 0, "de novo")
		assert.True(t, errors.Is(err, ErrTerminalStatus), "got %v", err)
		_, err = f.store.AssignCode(ctx, receptor, r.ID, "C-1", 0)
		assert.True(t, errors.Is(err, ErrTerminalStatus), "got %v", err)

		stored, _ := f.store.Get(ctx, r.ID)
		assert.Len(t, stored.History, 2)
		assert.Empty(t, entities.PermittedOperations(entities.RoleAdmin, stored))
	})

	t.Run("client cancels only own removals", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, clinic, CreateRemovalCommand{})
		_, err := f.transitions.Cancel(ctx, otherClinic, r.ID, 0, "engano")
		assert.True(t, errors.Is(err, ErrForbiddenRole), "got %v", err)
		_, err = f.transitions.Cancel(ctx, clinic, r.ID, 0, "engano")
		assert.NoError(t, err)
	})

	t.Run("not from a_caminho", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{})
		f.advance(t, r.ID, entities.RemovalStatusACaminho)
		_, err := f.transitions.Cancel(ctx, receptor, r.ID, 0, "tarde demais")
		assert.True(t, errors.Is(err, ErrInvalidTransition), "got %v", err)
	})
}

func TestTransition_DirectToDriver(t *testing.T) {
	ctx := context.Background()

	t.Run("driver is required", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{})
		_, err := f.transitions.DirectToDriver(ctx, receptor, r.ID, 0, DirectToDriverCommand{})
		assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
	})

	t.Run("wrong role", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{})
		_, err := f.transitions.DirectToDriver(ctx, driver, r.ID, 0, DirectToDriverCommand{DriverID: driver.ID})
		var rej *RejectionError
		require.True(t, errors.As(err, &rej))
		assert.Equal(t, entities.OpDirectToDriver, rej.Op)
		assert.True(t, errors.Is(err, ErrForbiddenRole))
	})

	t.Run("priority dispatch messages the driver", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		messenger := mock_interfaces.NewMockIMessenger(ctrl)

		f := newFixture(t)
		f.transitions.messenger = messenger
		r := f.create(t, receptor, CreateRemovalCommand{})

		messenger.EXPECT().SendMessage(gomock.Any(), "5541999990000", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, msg string) error {
				assert.True(t, strings.HasPrefix(msg, "PRIORIDADE"), msg)
				return nil
			},
		)

		updated, err := f.transitions.DirectToDriver(ctx, receptor, r.ID, 0, DirectToDriverCommand{
			DriverID:         driver.ID,
			DriverName:       driver.Name,
			DriverPhone:      "5541999990000",
			IsPriority:       true,
			PriorityDeadline: "16:00",
		})
		require.NoError(t, err)
		assert.Equal(t, entities.RemovalStatusEmAndamento, updated.Status)
		assert.True(t, updated.IsPriority)
		assert.Contains(t, updated.History[len(updated.History)-1].Action, "16:00")
	})

	t.Run("messenger failure does not undo the dispatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		messenger := mock_interfaces.NewMockIMessenger(ctrl)
		messenger.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("provider down"))

		f := newFixture(t)
		f.transitions.messenger = messenger
		r := f.create(t, receptor, CreateRemovalCommand{})

		updated, err := f.transitions.DirectToDriver(ctx, receptor, r.ID, 0, DirectToDriverCommand{DriverID: driver.ID, DriverPhone: "1"})
		require.NoError(t, err)
		assert.Equal(t, entities.RemovalStatusEmAndamento, updated.Status)
	})
}

func TestTransition_SchedulePickup(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid slots are refused", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{})
		for _, cmd := range []SchedulePickupCommand{
			{Date: "2026-03-12"},
			{Date: "12/03/2026", Time: "10:00"},
			{Date: "2026-03-09", Time: "10:00"},
		} {
			_, err := f.transitions.SchedulePickup(ctx, receptor, r.ID, 0, cmd)
			assert.True(t, errors.Is(err, ErrValidation), "%+v: got %v", cmd, err)
		}
		stored, _ := f.store.Get(ctx, r.ID)
		assert.Equal(t, entities.RemovalStatusSolicitada, stored.Status)
		assert.Len(t, stored.History, 1)
	})

	t.Run("only intake staff schedule", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, clinic, CreateRemovalCommand{})
		_, err := f.transitions.SchedulePickup(ctx, clinic, r.ID, 0, SchedulePickupCommand{Date: "2026-03-12", Time: "10:00"})
		assert.True(t, errors.Is(err, ErrForbiddenRole), "got %v", err)
	})

	t.Run("scheduled request returns to solicitada at its slot", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{})

		scheduled, err := f.transitions.SchedulePickup(ctx, receptor, r.ID, r.Version, SchedulePickupCommand{Date: "2026-03-12", Time: "10:00"})
		require.NoError(t, err)
		assert.Equal(t, entities.RemovalStatusAgendada, scheduled.Status)
		assert.Equal(t, "2026-03-12", scheduled.ScheduledDate)
		assert.Equal(t, "10:00", scheduled.ScheduledTime)
		require.Len(t, scheduled.History, 2)
		assert.Contains(t, scheduled.History[1].Action, "2026-03-12 10:00")

		_, err = f.transitions.SchedulePickup(ctx, receptor, r.ID, 0, SchedulePickupCommand{Date: "2026-03-13", Time: "10:00"})
		assert.True(t, errors.Is(err, ErrInvalidTransition), "got %v", err)

		sweep := NewSchedulingSweep(f.store, nil, nil, nil, 0)
		n, err := sweep.PromoteScheduled(ctx, time.Date(2026, 3, 12, 10, 2, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		promoted, _ := f.store.Get(ctx, r.ID)
		assert.Equal(t, entities.RemovalStatusSolicitada, promoted.Status)
	})
}

func TestTransition_DriverSteps(t *testing.T) {
	ctx := context.Background()

	t.Run("only the assigned driver starts the route", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{})
		f.advance(t, r.ID, entities.RemovalStatusEmAndamento)

		_, err := f.transitions.StartRoute(ctx, otherDriver, r.ID, 0)
		assert.True(t, errors.Is(err, ErrForbiddenRole), "got %v", err)

		actions, err := f.transitions.AvailableActions(ctx, otherDriver, r.ID)
		require.NoError(t, err)
		assert.Empty(t, actions)

		actions, err = f.transitions.AvailableActions(ctx, driver, r.ID)
		require.NoError(t, err)
		assert.Equal(t, []entities.Operation{entities.OpStartRoute}, actions)
	})

	t.Run("finalize pickup needs a positive confirmed weight", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{})
		f.advance(t, r.ID, entities.RemovalStatusRemovido)

		_, err := f.transitions.FinalizePickup(ctx, driver, r.ID, 0, FinalizePickupCommand{RealWeight: decimal.Zero, Confirmed: true})
		assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
		_, err = f.transitions.FinalizePickup(ctx, driver, r.ID, 0, FinalizePickupCommand{RealWeight: decimal.NewFromInt(-2), Confirmed: true})
		assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
		_, err = f.transitions.FinalizePickup(ctx, driver, r.ID, 0, FinalizePickupCommand{RealWeight: decimal.NewFromInt(8)})
		assert.True(t, errors.Is(err, ErrValidation), "unconfirmed weight, got %v", err)

		done, err := f.transitions.FinalizePickup(ctx, driver, r.ID, 0, FinalizePickupCommand{RealWeight: decimal.NewFromInt(8), Confirmed: true, PetCondition: "bom"})
		require.NoError(t, err)
		assert.Equal(t, entities.RemovalStatusConcluida, done.Status)
		assert.True(t, done.RealWeight.Equal(decimal.NewFromInt(8)))
		assert.Len(t, f.notifier.forRole(entities.RoleOperacional), 1)
	})
}

func awaitingJunior(t *testing.T, f *fixture, m entities.Modality, realKg string) entities.Removal {
	t.Helper()
	ctx := context.Background()
	r := f.create(t, receptor, CreateRemovalCommand{Modality: m, PaymentMethod: "pix"})
	f.advance(t, r.ID, entities.RemovalStatusRemovido)
	_, err := f.transitions.FinalizePickup(ctx, driver, r.ID, 0, FinalizePickupCommand{RealWeight: decimal.RequireFromString(realKg), Confirmed: true})
	require.NoError(t, err)
	return f.advance(t, r.ID, entities.RemovalStatusAguardandoFinanceiroJunior)
}

func TestTransition_WeightDivergence(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := awaitingJunior(t, f, entities.ModalityIndividualPrata, "8.0")
	require.True(t, r.Value.Equal(decimal.NewFromInt(500)))

	preview, err := f.transitions.PreviewWeightDivergence(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "6-10kg", preview.RealBracket)
	assert.True(t, preview.Delta.Equal(decimal.NewFromInt(120)))
	assert.True(t, preview.Subtotal.Equal(decimal.NewFromInt(620)))

	stored, _ := f.store.Get(ctx, r.ID)
	assert.True(t, stored.Value.Equal(decimal.NewFromInt(500)), "preview never saves")
	assert.Len(t, stored.History, len(r.History))

	_, err = f.transitions.ApplyWeightAdjustment(ctx, operacional, r.ID, 0)
	assert.True(t, errors.Is(err, ErrForbiddenRole), "got %v", err)

	adjusted, err := f.transitions.ApplyWeightAdjustment(ctx, finJunior, r.ID, 0)
	require.NoError(t, err)
	assert.True(t, adjusted.Value.Equal(decimal.NewFromInt(620)))
	assert.True(t, adjusted.AdjustmentConfirmed)
	assert.Len(t, adjusted.History, len(r.History)+1)

	_, err = f.transitions.ApplyWeightAdjustment(ctx, finJunior, r.ID, 0)
	assert.True(t, errors.Is(err, ErrValidation), "applied once, got %v", err)
}

func TestTransition_FinalizeForMaster(t *testing.T) {
	ctx := context.Background()

	t.Run("individual needs a cremation company", func(t *testing.T) {
		f := newFixture(t)
		r := awaitingJunior(t, f, entities.ModalityIndividualPrata, "3")
		_, err := f.transitions.FinalizeForMaster(ctx, finJunior, r.ID, 0, FinalizeForMasterCommand{})
		assert.True(t, errors.Is(err, ErrValidation), "got %v", err)

		_, err = f.transitions.SetCremationCompany(ctx, finJunior, r.ID, 0, "Crematório Paraná")
		require.NoError(t, err)
		done, err := f.transitions.FinalizeForMaster(ctx, finJunior, r.ID, 0, FinalizeForMasterCommand{})
		require.NoError(t, err)
		assert.Equal(t, entities.RemovalStatusAguardandoBaixaMaster, done.Status)
		assert.Equal(t, finJunior.ID, done.AssignedFinanceiroJuniorID)
	})

	t.Run("collective has no company gate", func(t *testing.T) {
		f := newFixture(t)
		r := awaitingJunior(t, f, entities.ModalityColetivo, "3")
		_, err := f.transitions.FinalizeForMaster(ctx, finJunior, r.ID, 0, FinalizeForMasterCommand{})
		assert.NoError(t, err)
	})

	t.Run("saves the pending divergence when asked", func(t *testing.T) {
		f := newFixture(t)
		r := awaitingJunior(t, f, entities.ModalityColetivo, "9")
		done, err := f.transitions.FinalizeForMaster(ctx, finJunior, r.ID, 0, FinalizeForMasterCommand{ApplyWeightDivergence: true})
		require.NoError(t, err)
		assert.True(t, done.Value.Equal(decimal.NewFromInt(350)))
		assert.True(t, done.AdjustmentConfirmed)
		assert.Len(t, done.History, len(r.History)+1)
	})
}

func TestTransition_AddCustomAdditionals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := awaitingJunior(t, f, entities.ModalityColetivo, "3")
	before := r.Value

	_, _, err := f.transitions.AddCustomAdditionals(ctx, finJunior, r.ID, 0, nil)
	assert.True(t, errors.Is(err, ErrValidation), "empty list, got %v", err)

	updated, warnings, err := f.transitions.AddCustomAdditionals(ctx, finJunior, r.ID, 0, []CustomAdditionalInput{
		{Name: "Pelinho", Quantity: 1, Value: decimal.NewFromInt(50)},
		{Name: "Certificado", Quantity: 2, Value: decimal.NewFromInt(100), ProofURL: "proof://123"},
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.True(t, updated.Value.Equal(before.Add(decimal.NewFromInt(150))), "got %s", updated.Value)
	require.Len(t, updated.History, len(r.History)+1)
	last := updated.History[len(updated.History)-1].Action
	assert.Contains(t, last, "Pelinho (x1)")
	assert.Contains(t, last, "Certificado (x2)")
	require.Len(t, updated.CustomAdditionals, 2)
	assert.NotEmpty(t, updated.CustomAdditionals[0].ID)
}

func TestTransition_ChangeModality(t *testing.T) {
	ctx := context.Background()

	t.Run("delta is added to the value", func(t *testing.T) {
		f := newFixture(t)
		r := awaitingJunior(t, f, entities.ModalityColetivo, "7")
		require.True(t, r.Value.Equal(decimal.NewFromInt(300)))

		preview, err := f.transitions.PreviewModalityChange(ctx, r.ID, entities.ModalityIndividualOuro)
		require.NoError(t, err)
		assert.Equal(t, "0-5kg", preview.Bracket, "weight adjustment not applied yet")
		assert.True(t, preview.Delta.Equal(decimal.NewFromInt(400)), "got %s", preview.Delta)

		changed, err := f.transitions.ChangeModality(ctx, finJunior, r.ID, 0, entities.ModalityIndividualOuro)
		require.NoError(t, err)
		assert.Equal(t, entities.ModalityIndividualOuro, changed.Modality)
		assert.True(t, changed.Value.Equal(decimal.NewFromInt(700)))
	})

	t.Run("weight adjustment and modality change add up in either order", func(t *testing.T) {
		modalityFirst := newFixture(t)
		r := awaitingJunior(t, modalityFirst, entities.ModalityColetivo, "8")
		changed, err := modalityFirst.transitions.ChangeModality(ctx, finJunior, r.ID, 0, entities.ModalityIndividualPrata)
		require.NoError(t, err)
		assert.True(t, changed.Value.Equal(decimal.NewFromInt(500)), "got %s", changed.Value)
		adjusted, err := modalityFirst.transitions.ApplyWeightAdjustment(ctx, finJunior, r.ID, 0)
		require.NoError(t, err)
		assert.True(t, adjusted.Value.Equal(decimal.NewFromInt(620)), "got %s", adjusted.Value)

		weightFirst := newFixture(t)
		r = awaitingJunior(t, weightFirst, entities.ModalityColetivo, "8")
		adjusted, err = weightFirst.transitions.ApplyWeightAdjustment(ctx, finJunior, r.ID, 0)
		require.NoError(t, err)
		assert.True(t, adjusted.Value.Equal(decimal.NewFromInt(350)), "got %s", adjusted.Value)
		changed, err = weightFirst.transitions.ChangeModality(ctx, finJunior, r.ID, 0, entities.ModalityIndividualPrata)
		require.NoError(t, err)
		assert.True(t, changed.Value.Equal(decimal.NewFromInt(620)), "got %s", changed.Value)
	})

	t.Run("zero delta neither mutates nor logs", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{
			Pet:      entities.Pet{Name: "Kiwi", Species: "papagaio", Weight: "0-5kg"},
			Modality: entities.ModalityColetivo,
		})
		f.advance(t, r.ID, entities.RemovalStatusAguardandoFinanceiroJunior)
		before, _ := f.store.Get(ctx, r.ID)

		_, err := f.transitions.ChangeModality(ctx, finJunior, r.ID, 0, entities.ModalityIndividualOuro)
		assert.True(t, errors.Is(err, ErrZeroDelta), "unpriced cells, got %v", err)
		_, err = f.transitions.ChangeModality(ctx, finJunior, r.ID, 0, entities.ModalityColetivo)
		assert.True(t, errors.Is(err, ErrZeroDelta), "same modality, got %v", err)

		after, _ := f.store.Get(ctx, r.ID)
		assert.Equal(t, before, after)
	})
}

func TestTransition_RegisterDevolution(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := awaitingJunior(t, f, entities.ModalityIndividualPrata, "3")

	_, err := f.transitions.RegisterDevolution(ctx, finJunior, r.ID, 0, DevolutionCommand{Amount: decimal.NewFromInt(50)})
	assert.True(t, errors.Is(err, ErrValidation), "reason required, got %v", err)
	_, err = f.transitions.RegisterDevolution(ctx, finJunior, r.ID, 0, DevolutionCommand{Amount: decimal.NewFromInt(5000), Reason: "x"})
	assert.True(t, errors.Is(err, ErrValidation), "over value, got %v", err)

	updated, err := f.transitions.RegisterDevolution(ctx, finJunior, r.ID, 0, DevolutionCommand{
		Amount:   decimal.NewFromInt(50),
		Reason:   "Desconto negociado",
		ProofURL: "proof://pix",
	})
	require.NoError(t, err)
	assert.True(t, updated.Value.Equal(decimal.NewFromInt(450)))
	last := updated.History[len(updated.History)-1]
	assert.Equal(t, "Desconto negociado", last.Reason)
	assert.Equal(t, "proof://pix", last.ProofURL)
}

func TestTransition_ReleaseForCremation(t *testing.T) {
	ctx := context.Background()

	t.Run("collective with additionals needs every confirmation", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{
			Modality:    entities.ModalityColetivo,
			Additionals: []entities.Additional{{Type: "patinha", Quantity: 1, Value: decimal.NewFromInt(40)}},
		})
		f.advance(t, r.ID, entities.RemovalStatusAguardandoFinanceiroJunior)
		_, _, err := f.transitions.AddCustomAdditionals(ctx, finJunior, r.ID, 0, []CustomAdditionalInput{
			{Name: "pelinho", Quantity: 1, Value: decimal.NewFromInt(30)},
		})
		require.NoError(t, err)
		ready := f.advance(t, r.ID, entities.RemovalStatusAguardandoBaixaMaster)

		_, err = f.transitions.ReleaseForCremation(ctx, operacional, r.ID, 0, map[string]bool{"patinha": true})
		assert.True(t, errors.Is(err, ErrValidation), "got %v", err)

		done, err := f.transitions.ReleaseForCremation(ctx, operacional, r.ID, 0, map[string]bool{"patinha": true, "pelinho": false})
		require.NoError(t, err)
		assert.Equal(t, entities.RemovalStatusFinalizada, done.Status)
		assert.True(t, done.IsTerminal())
		require.Len(t, done.History, len(ready.History)+1)
		summary := done.History[len(done.History)-1].Action
		assert.Contains(t, summary, "patinha: sim")
		assert.Contains(t, summary, "pelinho: não")

		_, err = f.transitions.MarkCremated(ctx, operacional, r.ID, 0, nil)
		assert.True(t, errors.Is(err, ErrTerminalStatus), "got %v", err)
	})

	t.Run("removal without modality is not closed", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{Modality: entities.ModalityColetivo})
		f.advance(t, r.ID, entities.RemovalStatusAguardandoBaixaMaster)
		_, err := f.store.Update(ctx, r.ID, 0, func(r *entities.Removal) error {
			r.Modality = ""
			return nil
		})
		require.NoError(t, err)

		_, err = f.transitions.ReleaseForCremation(ctx, operacional, r.ID, 0, nil)
		assert.True(t, errors.Is(err, ErrValidation), "got %v", err)

		stored, err := f.store.Get(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.RemovalStatusAguardandoBaixaMaster, stored.Status)
		assert.Nil(t, stored.ClosedAt)
		assert.False(t, stored.IsTerminal())
	})

	t.Run("individual stays open for cremation", func(t *testing.T) {
		f := newFixture(t)
		r := f.create(t, receptor, CreateRemovalCommand{Modality: entities.ModalityIndividualPrata})
		done := f.advance(t, r.ID, entities.RemovalStatusFinalizada)
		assert.False(t, done.IsTerminal())
		assert.Contains(t, entities.PermittedOperations(entities.RoleOperacional, done), entities.OpMarkCremated)

		cremated, err := f.transitions.MarkCremated(ctx, operacional, r.ID, 0, nil)
		require.NoError(t, err)
		assert.Equal(t, entities.RemovalStatusCremado, cremated.Status)
		assert.NotNil(t, cremated.CremationDate)
	})
}

func TestTransition_AssembleBagDeductsStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.stock.Create(ctx, admin, entities.StockItem{Name: "Urna Madeira", Quantity: 1, MinAlertQuantity: 2})
	require.NoError(t, err)
	_, err = f.stock.Create(ctx, admin, entities.StockItem{Name: "Saquinho", Quantity: 10, MinAlertQuantity: 2})
	require.NoError(t, err)

	r := f.create(t, receptor, CreateRemovalCommand{Modality: entities.ModalityIndividualOuro})
	f.advance(t, r.ID, entities.RemovalStatusCremado)

	_, _, err = f.transitions.AssembleBag(ctx, operacional, r.ID, 0, entities.BagAssembly{Items: []entities.BagItem{{Name: "", Quantity: 1}}})
	assert.True(t, errors.Is(err, ErrValidation), "got %v", err)

	updated, warnings, err := f.transitions.AssembleBag(ctx, operacional, r.ID, 0, entities.BagAssembly{
		Urn:   "Urna Madeira",
		Items: []entities.BagItem{{Name: "Saquinho", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, entities.RemovalStatusProntoParaEntrega, updated.Status)
	require.NotNil(t, updated.BagAssembly)
	assert.Equal(t, "Urna Madeira", updated.BagAssembly.Urn)

	require.Len(t, warnings, 1)
	assert.Equal(t, "Urna Madeira", warnings[0].Name)
	assert.Equal(t, 0, warnings[0].Quantity)

	saquinho, _ := f.stockRepo.GetByName(ctx, "saquinho")
	assert.Equal(t, 8, saquinho.Quantity)
}

func TestTransition_DailyDeliveryCap(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ids := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		r := f.createWithCode(t, fmt.Sprintf("D-%d", i), entities.ModalityIndividualPrata)
		f.advance(t, r.ID, entities.RemovalStatusProntoParaEntrega)
		ids = append(ids, r.ID)
	}

	for i, id := range ids[:6] {
		_, err := f.transitions.ScheduleDelivery(ctx, receptor, id, 0, ScheduleDeliveryCommand{Date: "2026-03-20", Address: "Rua A"})
		require.NoError(t, err, "delivery %d", i+1)
	}

	_, err := f.transitions.ScheduleDelivery(ctx, receptor, ids[6], 0, ScheduleDeliveryCommand{Date: "2026-03-20"})
	assert.True(t, errors.Is(err, ErrDeliveryCapacity), "got %v", err)
	stored, _ := f.store.Get(ctx, ids[6])
	assert.Equal(t, entities.RemovalStatusProntoParaEntrega, stored.Status)
	assert.Empty(t, stored.ScheduledDeliveryDate)

	other, err := f.transitions.ScheduleDelivery(ctx, receptor, ids[6], 0, ScheduleDeliveryCommand{Date: "2026-03-21"})
	require.NoError(t, err)
	assert.Equal(t, entities.RemovalStatusEntregaAgendada, other.Status)

	_, err = f.transitions.ScheduleDelivery(ctx, receptor, ids[0], 0, ScheduleDeliveryCommand{Date: "20/03/2026"})
	assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
}

func TestTransition_ScheduleDeliveryLockHeld(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	locker := mock_interfaces.NewMockILocker(ctrl)
	locker.EXPECT().TryLock(gomock.Any(), "delivery:2026-03-20").Return(false, nil)

	f := newFixture(t)
	f.transitions.locker = locker
	_, err := f.transitions.ScheduleDelivery(context.Background(), receptor, "any", 0, ScheduleDeliveryCommand{Date: "2026-03-20"})
	assert.True(t, errors.Is(err, ErrVersionConflict), "got %v", err)
}

func TestTransition_AwaitPickupThenConfirm(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.create(t, receptor, CreateRemovalCommand{Modality: entities.ModalityIndividualPrata})
	waiting := f.advance(t, r.ID, entities.RemovalStatusAguardandoRetirada)
	assert.Equal(t, entities.RemovalStatusAguardandoRetirada, waiting.Status)

	_, err := f.transitions.ConfirmDelivery(ctx, operacional, r.ID, 0)
	assert.True(t, errors.Is(err, ErrForbiddenRole), "got %v", err)

	done, err := f.transitions.ConfirmDelivery(ctx, receptor, r.ID, 0)
	require.NoError(t, err)
	assert.True(t, done.IsTerminal())
	assert.Contains(t, done.History[len(done.History)-1].Action, "Retirada")
}

func TestTransition_AvailableActions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.create(t, receptor, CreateRemovalCommand{Modality: entities.ModalityColetivo})

	tests := []struct {
		actor entities.Actor
		want  []entities.Operation
	}{
		{receptor, []entities.Operation{entities.OpAssignCode, entities.OpDirectToDriver, entities.OpSchedulePickup, entities.OpCancel}},
		{admin, []entities.Operation{entities.OpAssignCode, entities.OpDirectToDriver, entities.OpSchedulePickup, entities.OpCancel, entities.OpSetCremationCompany}},
		{clinic, []entities.Operation{entities.OpCancel}},
		{driver, nil},
		{finMaster, []entities.Operation{entities.OpCancel}},
	}
	for _, tt := range tests {
		t.Run(string(tt.actor.Role), func(t *testing.T) {
			got, err := f.transitions.AvailableActions(ctx, tt.actor, r.ID)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}
