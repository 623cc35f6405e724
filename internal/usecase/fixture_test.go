package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"cremacao_pet/internal/adapter/persistence/repository"
	"cremacao_pet/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	receptor    = entities.Actor{ID: "rec-1", Name: "Ana Receptora", Role: entities.RoleReceptor}
	driver      = entities.Actor{ID: "drv-1", Name: "Carlos Motorista", Role: entities.RoleMotorista}
	otherDriver = entities.Actor{ID: "drv-2", Name: "Bruno Motorista", Role: entities.RoleMotorista}
	operacional = entities.Actor{ID: "op-1", Name: "Olga Operacional", Role: entities.RoleOperacional}
	finJunior   = entities.Actor{ID: "fj-1", Name: "Julia Financeiro", Role: entities.RoleFinanceiroJunior}
	finMaster   = entities.Actor{ID: "fm-1", Name: "Marcos Financeiro", Role: entities.RoleFinanceiroMaster}
	admin       = entities.Actor{ID: "adm-1", Name: "Admin", Role: entities.RoleAdmin}
	clinic      = entities.Actor{ID: "clinic-1", Name: "Clínica Vida Animal", Role: entities.RoleCliente}
	otherClinic = entities.Actor{ID: "clinic-2", Name: "Clínica Patas", Role: entities.RoleCliente}
)

var curitiba = entities.Address{Street: "Rua XV", Number: "100", City: "Curitiba", State: "PR"}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []entities.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, x entities.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, x)
	return nil
}

func (n *recordingNotifier) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = nil
}

func (n *recordingNotifier) all() []entities.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]entities.Notification(nil), n.sent...)
}

func (n *recordingNotifier) forRole(role entities.Role) []entities.Notification {
	var out []entities.Notification
	for _, x := range n.all() {
		if x.RecipientRole == role {
			out = append(out, x)
		}
	}
	return out
}

func (n *recordingNotifier) forUser(id string) []entities.Notification {
	var out []entities.Notification
	for _, x := range n.all() {
		if x.RecipientID == id {
			out = append(out, x)
		}
	}
	return out
}

func seededPriceTable() entities.PriceTable {
	t := entities.NewPriceTable()
	prices := map[string][3]int64{
		"0-5kg":  {300, 500, 700},
		"6-10kg": {350, 620, 820},
	}
	for _, billing := range []entities.BillingType{entities.BillingTypeNaoFaturado, entities.BillingTypeFaturado} {
		for bracket, p := range prices {
			for i, m := range entities.AllModalities() {
				t.SetCell(entities.PriceCell{
					Region:   entities.RegionCuritibaRM,
					Species:  entities.SpeciesTypeNormal,
					Billing:  billing,
					Bracket:  bracket,
					Modality: m,
					Price:    decimal.NewFromInt(p[i]),
				})
			}
		}
	}
	return t
}

type fixture struct {
	now         time.Time
	notifier    *recordingNotifier
	removals    *repository.RemovalMemoryRepository
	stockRepo   *repository.StockMemoryRepository
	prices      *repository.PriceMemoryRepository
	store       *RemovalStore
	transitions *TransitionUseCase
	stock       *StockUseCase
	batches     *CremationBatchUseCase
	lotes       *BillingLoteUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		now:       time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		notifier:  &recordingNotifier{},
		removals:  repository.NewRemovalMemoryRepository(),
		stockRepo: repository.NewStockMemoryRepository(),
		prices:    repository.NewPriceMemoryRepository(seededPriceTable()),
	}
	clock := func() time.Time { return f.now }
	f.store = NewRemovalStore(f.removals, f.prices, f.notifier, nil, nil).WithClock(clock)
	f.stock = NewStockUseCase(f.stockRepo, f.notifier, nil, nil)
	f.transitions = NewTransitionUseCase(f.store, f.prices, f.stock, nil, nil, nil, nil, TransitionOptions{}).WithClock(clock)
	f.batches = NewCremationBatchUseCase(repository.NewCremationBatchMemoryRepository(), f.store, f.notifier, nil, nil).WithClock(clock)
	f.lotes = NewBillingLoteUseCase(f.store, nil, nil).WithClock(clock)
	return f
}

func (f *fixture) create(t *testing.T, actor entities.Actor, cmd CreateRemovalCommand) entities.Removal {
	t.Helper()
	if cmd.Pet.Name == "" {
		cmd.Pet = entities.Pet{Name: "Thor", Species: "cachorro", Weight: "0-5kg"}
	}
	if cmd.Address.City == "" {
		cmd.Address = curitiba
	}
	r, err := f.store.Create(context.Background(), actor, cmd)
	require.NoError(t, err)
	return r
}

func (f *fixture) createWithCode(t *testing.T, code string, m entities.Modality) entities.Removal {
	t.Helper()
	r := f.create(t, receptor, CreateRemovalCommand{Modality: m})
	r, err := f.store.AssignCode(context.Background(), receptor, r.ID, code, 0)
	require.NoError(t, err)
	return r
}

// advance drives a removal along the happy path until it reaches target.
func (f *fixture) advance(t *testing.T, id string, target entities.RemovalStatus) entities.Removal {
	t.Helper()
	ctx := context.Background()
	for step := 0; step < 20; step++ {
		r, err := f.store.Get(ctx, id)
		require.NoError(t, err)
		if r.Status == target {
			return r
		}
		switch r.Status {
		case entities.RemovalStatusSolicitada:
			_, err = f.transitions.DirectToDriver(ctx, receptor, id, 0, DirectToDriverCommand{DriverID: driver.ID, DriverName: driver.Name})
		case entities.RemovalStatusEmAndamento:
			_, err = f.transitions.StartRoute(ctx, driver, id, 0)
		case entities.RemovalStatusACaminho:
			_, err = f.transitions.ConfirmPickup(ctx, driver, id, 0, "")
		case entities.RemovalStatusRemovido:
			_, err = f.transitions.FinalizePickup(ctx, driver, id, 0, FinalizePickupCommand{RealWeight: decimal.RequireFromString("4.5"), Confirmed: true})
		case entities.RemovalStatusConcluida:
			_, err = f.transitions.SendToFinance(ctx, operacional, id, 0)
		case entities.RemovalStatusAguardandoFinanceiroJunior:
			if r.Modality.IsIndividual() && r.CremationCompany == "" {
				_, err = f.transitions.SetCremationCompany(ctx, finJunior, id, 0, "Crematório Paraná")
			} else {
				_, err = f.transitions.FinalizeForMaster(ctx, finJunior, id, 0, FinalizeForMasterCommand{})
			}
		case entities.RemovalStatusAguardandoBaixaMaster:
			confirmations := map[string]bool{}
			for _, name := range r.AllAdditionalNames() {
				confirmations[name] = true
			}
			_, err = f.transitions.ReleaseForCremation(ctx, operacional, id, 0, confirmations)
		case entities.RemovalStatusFinalizada:
			_, err = f.transitions.MarkCremated(ctx, operacional, id, 0, nil)
		case entities.RemovalStatusCremado:
			_, _, err = f.transitions.AssembleBag(ctx, operacional, id, 0, entities.BagAssembly{})
		case entities.RemovalStatusProntoParaEntrega:
			if target == entities.RemovalStatusAguardandoRetirada {
				_, err = f.transitions.AwaitPickup(ctx, receptor, id, 0)
			} else {
				_, err = f.transitions.ScheduleDelivery(ctx, receptor, id, 0, ScheduleDeliveryCommand{Date: "2026-03-12"})
			}
		default:
			t.Fatalf("no happy path from %s to %s", r.Status, target)
		}
		require.NoError(t, err, "advancing from %s", r.Status)
	}
	t.Fatalf("removal %s did not reach %s", id, target)
	return entities.Removal{}
}
