package entities

import "github.com/shopspring/decimal"

// StockItem is an inventory entry consumed by bag assembly or sold as a custom additional.
//
// Quantity is allowed to go negative: deductions never block fulfillment.
type StockItem struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category,omitempty"`
	Quantity         int             `json:"quantity"`
	MinAlertQuantity int             `json:"min_alert_quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
}

func (s StockItem) IsLow() bool {
	return s.Quantity <= s.MinAlertQuantity
}

func (s StockItem) IsNegative() bool {
	return s.Quantity < 0
}

// StockDeduction is one line of a deduction request.
type StockDeduction struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
