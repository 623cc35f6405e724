package entities

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type Region string

const (
	RegionSC         Region = "sc"
	RegionLitoral    Region = "litoral"
	RegionCuritibaRM Region = "curitiba_rm"
)

type SpeciesType string

const (
	SpeciesTypeNormal  SpeciesType = "normal"
	SpeciesTypeExotico SpeciesType = "exotico"
)

type BillingType string

const (
	BillingTypeFaturado    BillingType = "faturado"
	BillingTypeNaoFaturado BillingType = "nao_faturado"
)

// BracketPrices maps a modality to its price inside one weight bracket.
type BracketPrices map[Modality]decimal.Decimal

// PriceTable is the 5-level mapping region -> species type -> billing type -> weight bracket -> modality -> price.
//
// A (region, species, billing) group that exists must price every bracket it declares for every
// active modality; missing cells are data-entry gaps, see Gaps.
type PriceTable struct {
	Prices           map[Region]map[SpeciesType]map[BillingType]map[string]BracketPrices `json:"prices"`
	ActiveModalities map[Modality]bool                                                   `json:"active_modalities"`
	Version          int                                                                 `json:"version"`
	UpdatedAt        time.Time                                                           `json:"updated_at"`
}

// PriceCell addresses one price of the table.
type PriceCell struct {
	Region   Region          `json:"region"`
	Species  SpeciesType     `json:"species_type"`
	Billing  BillingType     `json:"billing_type"`
	Bracket  string          `json:"weight_bracket"`
	Modality Modality        `json:"modality"`
	Price    decimal.Decimal `json:"price"`
}

func NewPriceTable() PriceTable {
	active := make(map[Modality]bool, 3)
	for _, m := range AllModalities() {
		active[m] = true
	}
	return PriceTable{
		Prices:           map[Region]map[SpeciesType]map[BillingType]map[string]BracketPrices{},
		ActiveModalities: active,
		Version:          1,
	}
}

func (t PriceTable) IsModalityActive(m Modality) bool {
	return t.ActiveModalities[m]
}

// Cell returns the raw stored price, ignoring modality activation.
func (t PriceTable) Cell(region Region, species SpeciesType, billing BillingType, bracket string, m Modality) (decimal.Decimal, bool) {
	brackets := t.brackets(region, species, billing)
	if brackets == nil {
		return decimal.Zero, false
	}
	prices, ok := brackets[bracket]
	if !ok {
		return decimal.Zero, false
	}
	p, ok := prices[m]
	return p, ok
}

func (t PriceTable) brackets(region Region, species SpeciesType, billing BillingType) map[string]BracketPrices {
	bySpecies, ok := t.Prices[region]
	if !ok {
		return nil
	}
	byBilling, ok := bySpecies[species]
	if !ok {
		return nil
	}
	return byBilling[billing]
}

// SetCell stores c.Price, creating the intermediate levels when needed.
func (t *PriceTable) SetCell(c PriceCell) {
	t.ensureBracket(c.Region, c.Species, c.Billing, c.Bracket)[c.Modality] = c.Price
}

// AddBracket declares an empty bracket row for a group. Existing rows are kept.
func (t *PriceTable) AddBracket(region Region, species SpeciesType, billing BillingType, bracket string) {
	t.ensureBracket(region, species, billing, bracket)
}

// RemoveBracket drops a bracket row and reports whether it existed.
func (t *PriceTable) RemoveBracket(region Region, species SpeciesType, billing BillingType, bracket string) bool {
	brackets := t.brackets(region, species, billing)
	if brackets == nil {
		return false
	}
	if _, ok := brackets[bracket]; !ok {
		return false
	}
	delete(brackets, bracket)
	return true
}

func (t *PriceTable) ensureBracket(region Region, species SpeciesType, billing BillingType, bracket string) BracketPrices {
	if t.Prices == nil {
		t.Prices = map[Region]map[SpeciesType]map[BillingType]map[string]BracketPrices{}
	}
	bySpecies, ok := t.Prices[region]
	if !ok {
		bySpecies = map[SpeciesType]map[BillingType]map[string]BracketPrices{}
		t.Prices[region] = bySpecies
	}
	byBilling, ok := bySpecies[species]
	if !ok {
		byBilling = map[BillingType]map[string]BracketPrices{}
		bySpecies[species] = byBilling
	}
	brackets, ok := byBilling[billing]
	if !ok {
		brackets = map[string]BracketPrices{}
		byBilling[billing] = brackets
	}
	prices, ok := brackets[bracket]
	if !ok {
		prices = BracketPrices{}
		brackets[bracket] = prices
	}
	return prices
}

// Gaps lists every (group, bracket, active modality) combination without a price, sorted.
func (t PriceTable) Gaps() []PriceCell {
	var gaps []PriceCell
	for region, bySpecies := range t.Prices {
		for species, byBilling := range bySpecies {
			for billing, brackets := range byBilling {
				for bracket, prices := range brackets {
					for _, m := range AllModalities() {
						if !t.ActiveModalities[m] {
							continue
						}
						if _, ok := prices[m]; !ok {
							gaps = append(gaps, PriceCell{Region: region, Species: species, Billing: billing, Bracket: bracket, Modality: m})
						}
					}
				}
			}
		}
	}
	sort.Slice(gaps, func(i, j int) bool {
		return gaps[i].sortKey() < gaps[j].sortKey()
	})
	return gaps
}

func (c PriceCell) sortKey() string {
	return string(c.Region) + "|" + string(c.Species) + "|" + string(c.Billing) + "|" + c.Bracket + "|" + string(c.Modality)
}

// Clone deep-copies the table so callers can mutate it safely.
func (t PriceTable) Clone() PriceTable {
	out := PriceTable{
		Prices:           make(map[Region]map[SpeciesType]map[BillingType]map[string]BracketPrices, len(t.Prices)),
		ActiveModalities: make(map[Modality]bool, len(t.ActiveModalities)),
		Version:          t.Version,
		UpdatedAt:        t.UpdatedAt,
	}
	for m, active := range t.ActiveModalities {
		out.ActiveModalities[m] = active
	}
	for region, bySpecies := range t.Prices {
		for species, byBilling := range bySpecies {
			for billing, brackets := range byBilling {
				for bracket, prices := range brackets {
					row := out.ensureBracket(region, species, billing, bracket)
					for m, p := range prices {
						row[m] = p
					}
				}
			}
		}
	}
	return out
}
