package request

import (
	"strings"

	"cremacao_pet/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type BatchItemRequest struct {
	RemovalCode string `json:"removal_code" binding:"required"`
	PetName     string `json:"pet_name"`
	Weight      string `json:"weight"`
	Position    string `json:"position" binding:"required"`
}

type CreateBatchRequest struct {
	Items        []BatchItemRequest `json:"items" binding:"required"`
	OperatorName string             `json:"operator_name"`
}

func (r BatchItemRequest) ToItem() entities.BatchItem {
	return entities.BatchItem{
		RemovalCode: strings.TrimSpace(r.RemovalCode),
		PetName:     r.PetName,
		Weight:      r.Weight,
		Position:    entities.FurnacePosition(strings.TrimSpace(r.Position)),
	}
}

func (r CreateBatchRequest) ToItems() []entities.BatchItem {
	items := make([]entities.BatchItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, it.ToItem())
	}
	return items
}

type BatchOperatorRequest struct {
	OperatorName string `json:"operator_name"`
}

type CreateStockItemRequest struct {
	Name             string          `json:"name" binding:"required"`
	Category         string          `json:"category"`
	Quantity         int             `json:"quantity"`
	MinAlertQuantity int             `json:"min_alert_quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
}

func (r CreateStockItemRequest) ToEntity() entities.StockItem {
	return entities.StockItem{
		Name:             strings.TrimSpace(r.Name),
		Category:         strings.TrimSpace(r.Category),
		Quantity:         r.Quantity,
		MinAlertQuantity: r.MinAlertQuantity,
		UnitPrice:        r.UnitPrice,
	}
}

type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// PriceCellRequest addresses a price cell or, without modality and price, a bracket row.
type PriceCellRequest struct {
	Region        string          `json:"region" binding:"required"`
	SpeciesType   string          `json:"species_type" binding:"required"`
	BillingType   string          `json:"billing_type" binding:"required"`
	WeightBracket string          `json:"weight_bracket" binding:"required"`
	Modality      string          `json:"modality"`
	Price         decimal.Decimal `json:"price"`
}

func (r PriceCellRequest) ToCell() entities.PriceCell {
	return entities.PriceCell{
		Region:   entities.Region(strings.TrimSpace(r.Region)),
		Species:  entities.SpeciesType(strings.TrimSpace(r.SpeciesType)),
		Billing:  entities.BillingType(strings.TrimSpace(r.BillingType)),
		Bracket:  strings.TrimSpace(r.WeightBracket),
		Modality: entities.Modality(strings.TrimSpace(r.Modality)),
		Price:    r.Price,
	}
}

type ModalityActiveRequest struct {
	Modality string `json:"modality" binding:"required"`
	Active   bool   `json:"active"`
}

// LoteRequest selects the removals of one billing lote by code.
type LoteRequest struct {
	Codes     []string `json:"codes" binding:"required,min=1"`
	BoletoURL string   `json:"boleto_url"`
	ProofURL  string   `json:"proof_url"`
}

// TrimmedCodes drops blanks and duplicates, and keeps the request order.
func (r LoteRequest) TrimmedCodes() []string {
	seen := make(map[string]bool, len(r.Codes))
	out := make([]string, 0, len(r.Codes))
	for _, c := range r.Codes {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
