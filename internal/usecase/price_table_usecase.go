package usecase

import (
	"context"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/domain/pricing"
	"cremacao_pet/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PriceLookup is the UI-facing answer of a single price query. Found=false renders as "N/A".
type PriceLookup struct {
	Keys     pricing.Keys      `json:"keys"`
	Bracket  string            `json:"weight_bracket"`
	Modality entities.Modality `json:"modality"`
	Price    decimal.Decimal   `json:"price"`
	Found    bool              `json:"found"`
}

// IPriceTableUseCase exposes the price table: reads for everyone, edits for admins.

type IPriceTableUseCase interface {
	GetTable(ctx context.Context) (entities.PriceTable, error)
	Gaps(ctx context.Context) ([]entities.PriceCell, error)
	Resolve(ctx context.Context, address entities.Address, species, paymentMethod, bracket string, modality entities.Modality) (PriceLookup, error)
	SetPrice(ctx context.Context, actor entities.Actor, cell entities.PriceCell) (entities.PriceTable, error)
	AddBracket(ctx context.Context, actor entities.Actor, cell entities.PriceCell) (entities.PriceTable, error)
	RemoveBracket(ctx context.Context, actor entities.Actor, cell entities.PriceCell) (entities.PriceTable, error)
	SetModalityActive(ctx context.Context, actor entities.Actor, modality entities.Modality, active bool) (entities.PriceTable, error)
}

type PriceTableUseCase struct {
	repo   interfaces.IPriceRepository
	logger *zap.Logger
}

var _ IPriceTableUseCase = (*PriceTableUseCase)(nil)

func NewPriceTableUseCase(repo interfaces.IPriceRepository, logger *zap.Logger) *PriceTableUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PriceTableUseCase{repo: repo, logger: logger.Named("price_table")}
}

func (u *PriceTableUseCase) GetTable(ctx context.Context) (entities.PriceTable, error) {
	return u.repo.Get(ctx)
}

func (u *PriceTableUseCase) Gaps(ctx context.Context) ([]entities.PriceCell, error) {
	t, err := u.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return t.Gaps(), nil
}

func (u *PriceTableUseCase) Resolve(ctx context.Context, address entities.Address, species, paymentMethod, bracket string, modality entities.Modality) (PriceLookup, error) {
	t, err := u.repo.Get(ctx)
	if err != nil {
		return PriceLookup{}, err
	}
	keys := pricing.KeysFor(address, species, paymentMethod)
	price, ok := pricing.Resolve(t, keys, bracket, modality)
	return PriceLookup{Keys: keys, Bracket: bracket, Modality: modality, Price: price, Found: ok}, nil
}

func (u *PriceTableUseCase) SetPrice(ctx context.Context, actor entities.Actor, cell entities.PriceCell) (entities.PriceTable, error) {
	const op = "set_price"
	if err := validateCellKeys(op, cell); err != nil {
		return entities.PriceTable{}, err
	}
	if !cell.Modality.IsValid() {
		return entities.PriceTable{}, reject(op, ErrValidation, "unknown modality %q", cell.Modality)
	}
	if cell.Price.IsNegative() {
		return entities.PriceTable{}, reject(op, ErrValidation, "price must not be negative")
	}
	return u.edit(ctx, op, actor, func(t *entities.PriceTable) error {
		t.SetCell(cell)
		return nil
	})
}

func (u *PriceTableUseCase) AddBracket(ctx context.Context, actor entities.Actor, cell entities.PriceCell) (entities.PriceTable, error) {
	const op = "add_bracket"
	if err := validateCellKeys(op, cell); err != nil {
		return entities.PriceTable{}, err
	}
	return u.edit(ctx, op, actor, func(t *entities.PriceTable) error {
		t.AddBracket(cell.Region, cell.Species, cell.Billing, cell.Bracket)
		return nil
	})
}

func (u *PriceTableUseCase) RemoveBracket(ctx context.Context, actor entities.Actor, cell entities.PriceCell) (entities.PriceTable, error) {
	const op = "remove_bracket"
	if err := validateCellKeys(op, cell); err != nil {
		return entities.PriceTable{}, err
	}
	return u.edit(ctx, op, actor, func(t *entities.PriceTable) error {
		if !t.RemoveBracket(cell.Region, cell.Species, cell.Billing, cell.Bracket) {
			return reject(op, ErrValidation, "bracket %s not found", cell.Bracket)
		}
		return nil
	})
}

func (u *PriceTableUseCase) SetModalityActive(ctx context.Context, actor entities.Actor, modality entities.Modality, active bool) (entities.PriceTable, error) {
	const op = "set_modality_active"
	if !modality.IsValid() {
		return entities.PriceTable{}, reject(op, ErrValidation, "unknown modality %q", modality)
	}
	return u.edit(ctx, op, actor, func(t *entities.PriceTable) error {
		if t.ActiveModalities == nil {
			t.ActiveModalities = map[entities.Modality]bool{}
		}
		t.ActiveModalities[modality] = active
		return nil
	})
}

func (u *PriceTableUseCase) edit(ctx context.Context, op entities.Operation, actor entities.Actor, mutate func(t *entities.PriceTable) error) (entities.PriceTable, error) {
	if actor.Role != entities.RoleAdmin {
		return entities.PriceTable{}, reject(op, ErrForbiddenRole, "role %q", actor.Role)
	}
	current, err := u.repo.Get(ctx)
	if err != nil {
		return entities.PriceTable{}, err
	}
	next := current.Clone()
	if err := mutate(&next); err != nil {
		return entities.PriceTable{}, err
	}
	saved, err := u.repo.Save(ctx, next, current.Version)
	if err != nil {
		return entities.PriceTable{}, err
	}
	if gaps := saved.Gaps(); len(gaps) > 0 {
		u.logger.Info("price table has gaps", zap.String("op", string(op)), zap.Int("gaps", len(gaps)))
	}
	u.logger.Info("price table updated", zap.String("op", string(op)), zap.String("by", actor.DisplayName()), zap.Int("version", saved.Version))
	return saved, nil
}

func validateCellKeys(op entities.Operation, c entities.PriceCell) error {
	switch c.Region {
	case entities.RegionSC, entities.RegionLitoral, entities.RegionCuritibaRM:
	default:
		return reject(op, ErrValidation, "unknown region %q", c.Region)
	}
	switch c.Species {
	case entities.SpeciesTypeNormal, entities.SpeciesTypeExotico:
	default:
		return reject(op, ErrValidation, "unknown species type %q", c.Species)
	}
	switch c.Billing {
	case entities.BillingTypeFaturado, entities.BillingTypeNaoFaturado:
	default:
		return reject(op, ErrValidation, "unknown billing type %q", c.Billing)
	}
	for _, label := range pricing.BracketLabels() {
		if label == c.Bracket {
			return nil
		}
	}
	return reject(op, ErrValidation, "unknown weight bracket %q", c.Bracket)
}
