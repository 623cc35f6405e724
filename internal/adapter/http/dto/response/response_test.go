package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/pkg"
)

func TestFromRemoval(t *testing.T) {
	closed := time.Now().UTC()
	r := entities.Removal{ID: "rem-1", Code: "R-1", Status: entities.RemovalStatusFinalizada, ClosedAt: &closed, Version: 3}

	res := FromRemoval(r)
	if !res.Terminal {
		t.Fatalf("closed finalizada must be terminal: %+v", res)
	}
	if res.History == nil {
		t.Fatalf("history must render as an empty list")
	}

	raw, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body map[string]any
	_ = json.Unmarshal(raw, &body)
	if body["id"] != "rem-1" || body["code"] != "R-1" || body["terminal"] != true || body["version"] != 3.0 {
		t.Fatalf("unexpected json: %s", raw)
	}

	open := FromRemoval(entities.Removal{ID: "rem-2", Status: entities.RemovalStatusFinalizada})
	if open.Terminal {
		t.Fatalf("open finalizada must not be terminal")
	}
}

func TestFromTransitionAndActions(t *testing.T) {
	tr := FromTransition(entities.Removal{ID: "rem-1"}, nil)
	if tr.Warnings == nil || len(tr.Warnings) != 0 {
		t.Fatalf("expected empty warnings, got %+v", tr.Warnings)
	}

	a := FromActions("rem-1", []entities.Operation{entities.OpCancel, entities.OpDirectToDriver})
	if a.RemovalID != "rem-1" || len(a.Actions) != 2 || a.Actions[0] != "cancel" {
		t.Fatalf("unexpected actions: %+v", a)
	}
}

func TestFromNotifications(t *testing.T) {
	res := FromNotifications([]entities.Notification{{ID: "n1"}, {ID: "n2", Read: true}, {ID: "n3"}})
	if res.Unread != 2 || len(res.Items) != 3 {
		t.Fatalf("unexpected inbox: %+v", res)
	}
	if empty := FromNotifications(nil); empty.Items == nil {
		t.Fatalf("items must render as an empty list")
	}
}

func TestFromBatchAndStock(t *testing.T) {
	started := time.Now().UTC()
	b := FromBatch(entities.CremationBatch{ID: "b1", StartedAt: &started})
	if !b.Started || b.Finished || b.Items == nil {
		t.Fatalf("unexpected batch flags: %+v", b)
	}

	s := FromStockItem(entities.StockItem{Name: "URNA", Quantity: -1, MinAlertQuantity: 2})
	if !s.Low || !s.Negative {
		t.Fatalf("unexpected stock flags: %+v", s)
	}
}

func TestFromPartialBatch(t *testing.T) {
	batch := entities.CremationBatch{ID: "b-1", Items: []entities.BatchItem{{RemovalCode: "A"}, {RemovalCode: "B"}, {RemovalCode: "C"}, {RemovalCode: "D"}}}
	warning := pkg.NewDomainError("BATCH_FULL", "Cremation batch is full", errors.New("furnace holds 4"), http.StatusBadRequest)

	raw, err := json.Marshal(FromPartialBatch(batch, []entities.BatchItem{{RemovalCode: "E"}}, warning))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body struct {
		ID       string               `json:"id"`
		Items    []entities.BatchItem `json:"items"`
		Rejected []entities.BatchItem `json:"rejected"`
		Warning  map[string]any       `json:"warning"`
	}
	_ = json.Unmarshal(raw, &body)
	if body.ID != "b-1" || len(body.Items) != 4 || len(body.Rejected) != 1 || body.Rejected[0].RemovalCode != "E" {
		t.Fatalf("unexpected json: %s", raw)
	}
	if body.Warning["code"] != "BATCH_FULL" {
		t.Fatalf("unexpected warning: %s", raw)
	}
}
