// Package pricing resolves the monetary value of a removal from the price table.
//
// Every function here is pure. A missing price is reported with ok=false and contributes zero
// to any delta; callers render it as "N/A" instead of failing the workflow.
package pricing

import (
	"strings"

	"cremacao_pet/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var litoralCities = []string{
	"Matinhos",
	"Guaratuba",
	"Pontal do Paraná",
	"Paranaguá",
	"Antonina",
	"Morretes",
	"Guaraqueçaba",
}

type bracket struct {
	label   string
	upperKg decimal.Decimal
}

// Brackets, ordered by inclusive upper bound.
var brackets = []bracket{
	{"0-5kg", decimal.NewFromInt(5)},
	{"6-10kg", decimal.NewFromInt(10)},
	{"11-20kg", decimal.NewFromInt(20)},
	{"21-40kg", decimal.NewFromInt(40)},
	{"41-50kg", decimal.NewFromInt(50)},
	{"51-60kg", decimal.NewFromInt(60)},
	{"61-80kg", decimal.NewFromInt(80)},
}

// BracketLabels returns the known bracket labels in ascending order.
func BracketLabels() []string {
	out := make([]string, 0, len(brackets))
	for _, b := range brackets {
		out = append(out, b.label)
	}
	return out
}

// Keys is the (region, species type, billing type) triple of a lookup.
type Keys struct {
	Region  entities.Region      `json:"region"`
	Species entities.SpeciesType `json:"species_type"`
	Billing entities.BillingType `json:"billing_type"`
}

func KeysFor(address entities.Address, species, paymentMethod string) Keys {
	return Keys{
		Region:  RegionFromAddress(address),
		Species: SpeciesTypeFromSpecies(species),
		Billing: BillingTypeFromPaymentMethod(paymentMethod),
	}
}

func KeysForRemoval(r entities.Removal) Keys {
	return KeysFor(r.Address, r.Pet.Species, r.PaymentMethod)
}

func RegionFromAddress(address entities.Address) entities.Region {
	if strings.EqualFold(strings.TrimSpace(address.State), "SC") {
		return entities.RegionSC
	}
	city := strings.TrimSpace(address.City)
	for _, c := range litoralCities {
		if strings.EqualFold(city, c) {
			return entities.RegionLitoral
		}
	}
	return entities.RegionCuritibaRM
}

func SpeciesTypeFromSpecies(species string) entities.SpeciesType {
	switch strings.ToLower(strings.TrimSpace(species)) {
	case "cachorro", "gato":
		return entities.SpeciesTypeNormal
	}
	return entities.SpeciesTypeExotico
}

func BillingTypeFromPaymentMethod(method string) entities.BillingType {
	if method == entities.PaymentMethodFaturado {
		return entities.BillingTypeFaturado
	}
	return entities.BillingTypeNaoFaturado
}

// BracketForWeight maps a measured weight to its bracket. Weights above 80kg, zero or negative have none.
func BracketForWeight(kg decimal.Decimal) (string, bool) {
	if !kg.IsPositive() {
		return "", false
	}
	for _, b := range brackets {
		if kg.LessThanOrEqual(b.upperKg) {
			return b.label, true
		}
	}
	return "", false
}

// Resolve looks up one price. Cells of inactive modalities resolve as missing.
func Resolve(table entities.PriceTable, keys Keys, bracket string, modality entities.Modality) (decimal.Decimal, bool) {
	if bracket == "" || !modality.IsValid() || !table.IsModalityActive(modality) {
		return decimal.Zero, false
	}
	return table.Cell(keys.Region, keys.Species, keys.Billing, bracket, modality)
}

// BasePrice is the price of the removal's declared bracket and modality.
func BasePrice(table entities.PriceTable, r entities.Removal) (decimal.Decimal, bool) {
	return Resolve(table, KeysForRemoval(r), r.Pet.Weight, r.Modality)
}

// AdditionalsTotal sums fixed additionals (value x quantity) and custom additionals (line totals).
func AdditionalsTotal(additionals []entities.Additional, custom []entities.CustomAdditional) decimal.Decimal {
	total := decimal.Zero
	for _, a := range additionals {
		total = total.Add(a.Value.Mul(decimal.NewFromInt(int64(a.Quantity))))
	}
	for _, c := range custom {
		total = total.Add(c.Value)
	}
	return total
}
