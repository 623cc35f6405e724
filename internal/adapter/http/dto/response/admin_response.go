package response

import (
	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/pkg"
)

type CremationBatchResponse struct {
	entities.CremationBatch
	Started  bool `json:"started"`
	Finished bool `json:"finished"`
}

func FromBatch(b entities.CremationBatch) CremationBatchResponse {
	if b.Items == nil {
		b.Items = []entities.BatchItem{}
	}
	return CremationBatchResponse{CremationBatch: b, Started: b.IsStarted(), Finished: b.IsFinished()}
}

// PartialBatchResponse is a stored batch plus the items the furnace had no room for.
type PartialBatchResponse struct {
	CremationBatchResponse
	Rejected []entities.BatchItem `json:"rejected"`
	Warning  pkg.HTTPError        `json:"warning"`
}

func FromPartialBatch(b entities.CremationBatch, rejected []entities.BatchItem, warning *pkg.AppError) PartialBatchResponse {
	return PartialBatchResponse{
		CremationBatchResponse: FromBatch(b),
		Rejected:               append([]entities.BatchItem{}, rejected...),
		Warning:                warning.ToHTTPError(),
	}
}

func FromBatches(bs []entities.CremationBatch) []CremationBatchResponse {
	out := make([]CremationBatchResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, FromBatch(b))
	}
	return out
}

type StockItemResponse struct {
	entities.StockItem
	Low      bool `json:"low"`
	Negative bool `json:"negative"`
}

func FromStockItem(s entities.StockItem) StockItemResponse {
	return StockItemResponse{StockItem: s, Low: s.IsLow(), Negative: s.IsNegative()}
}

func FromStockItems(items []entities.StockItem) []StockItemResponse {
	out := make([]StockItemResponse, 0, len(items))
	for _, s := range items {
		out = append(out, FromStockItem(s))
	}
	return out
}

// PriceTableResponse carries the table with its data-entry gaps so the editor can flag them.
type PriceTableResponse struct {
	Table entities.PriceTable  `json:"table"`
	Gaps  []entities.PriceCell `json:"gaps"`
}

func FromPriceTable(t entities.PriceTable) PriceTableResponse {
	gaps := t.Gaps()
	if gaps == nil {
		gaps = []entities.PriceCell{}
	}
	return PriceTableResponse{Table: t, Gaps: gaps}
}

type NotificationListResponse struct {
	Items  []entities.Notification `json:"items"`
	Unread int                     `json:"unread"`
}

func FromNotifications(ns []entities.Notification) NotificationListResponse {
	out := NotificationListResponse{Items: make([]entities.Notification, 0, len(ns))}
	for _, n := range ns {
		if !n.Read {
			out.Unread++
		}
		out.Items = append(out.Items, n)
	}
	return out
}
