package pricing

import (
	"cremacao_pet/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// WeightDivergence compares the tutor-declared bracket with the bracket of the measured weight.
type WeightDivergence struct {
	DeclaredBracket string          `json:"declared_bracket"`
	RealBracket     string          `json:"real_bracket"`
	DeclaredPrice   decimal.Decimal `json:"declared_price"`
	RealPrice       decimal.Decimal `json:"real_price"`
	DeclaredFound   bool            `json:"declared_found"`
	RealFound       bool            `json:"real_found"`
	// Applicable is true only when the measured weight lands in a different, known bracket.
	Applicable bool            `json:"applicable"`
	Delta      decimal.Decimal `json:"delta"`
	// Subtotal is the current value plus Delta; the stored value is untouched.
	Subtotal decimal.Decimal `json:"subtotal"`
}

// ComputeWeightDivergence returns price(real bracket) - price(declared bracket) for the removal's modality.
// Missing cells contribute zero.
func ComputeWeightDivergence(table entities.PriceTable, r entities.Removal) WeightDivergence {
	out := WeightDivergence{
		DeclaredBracket: r.Pet.Weight,
		Delta:           decimal.Zero,
		Subtotal:        r.Value,
	}
	realBracket, ok := BracketForWeight(r.RealWeight)
	if !ok {
		return out
	}
	out.RealBracket = realBracket
	if realBracket == r.Pet.Weight {
		return out
	}

	keys := KeysForRemoval(r)
	out.DeclaredPrice, out.DeclaredFound = Resolve(table, keys, r.Pet.Weight, r.Modality)
	out.RealPrice, out.RealFound = Resolve(table, keys, realBracket, r.Modality)
	out.Applicable = true
	out.Delta = out.RealPrice.Sub(out.DeclaredPrice)
	out.Subtotal = r.Value.Add(out.Delta)
	return out
}

// ModalityChange is the price difference of switching tiers inside the current bracket.
type ModalityChange struct {
	From     entities.Modality `json:"from"`
	To       entities.Modality `json:"to"`
	Bracket  string            `json:"bracket"`
	OldPrice decimal.Decimal   `json:"old_price"`
	NewPrice decimal.Decimal   `json:"new_price"`
	Delta    decimal.Decimal   `json:"delta"`
	NewValue decimal.Decimal   `json:"new_value"`
}

// CurrentBracket is the bracket the stored value is priced on: the measured one once the weight
// adjustment was applied, else the declared one.
func CurrentBracket(r entities.Removal) string {
	if !r.AdjustmentConfirmed {
		return r.Pet.Weight
	}
	if b, ok := BracketForWeight(r.RealWeight); ok {
		return b
	}
	return r.Pet.Weight
}

func ComputeModalityChange(table entities.PriceTable, r entities.Removal, to entities.Modality) ModalityChange {
	keys := KeysForRemoval(r)
	bracket := CurrentBracket(r)
	oldPrice, _ := Resolve(table, keys, bracket, r.Modality)
	newPrice, _ := Resolve(table, keys, bracket, to)
	delta := newPrice.Sub(oldPrice)
	return ModalityChange{
		From:     r.Modality,
		To:       to,
		Bracket:  bracket,
		OldPrice: oldPrice,
		NewPrice: newPrice,
		Delta:    delta,
		NewValue: r.Value.Add(delta),
	}
}
