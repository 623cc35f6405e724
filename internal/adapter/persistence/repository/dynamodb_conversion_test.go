package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"cremacao_pet/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemovalItem_RoundTrip(t *testing.T) {
	created := time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC)
	cremated := created.Add(48 * time.Hour)
	rem := entities.Removal{
		ID:       "rem-1",
		Code:     "R-100",
		Status:   entities.RemovalStatusFinalizada,
		Modality: entities.ModalityIndividualOuro,
		Pet:      entities.Pet{Name: "Rex", Species: "cachorro", Weight: "10-20kg"},
		Address:  entities.Address{City: "Joinville", State: "SC"},
		Value:    decimal.RequireFromString("780.50"),
		Additionals: []entities.Additional{
			{Type: "pelucia", Quantity: 1, Value: decimal.NewFromInt(40)},
		},
		CustomAdditionals: []entities.CustomAdditional{
			{ID: "c1", Name: "URNA", Quantity: 1, Value: decimal.NewFromInt(90), FromStock: true},
		},
		RealWeight:    decimal.RequireFromString("14.2"),
		CremationDate: &cremated,
		BagAssembly:   &entities.BagAssembly{Items: []entities.BagItem{{Name: "Saco", Quantity: 1}}, Urn: "URNA"},
		CreatedByID:   "rec-1",
		Version:       7,
		CreatedAt:     created,
		UpdatedAt:     created,
		History:       []entities.HistoryEntry{{Action: "created"}, {Action: "cremated"}},
	}

	it := toRemovalItem(rem)
	assert.Equal(t, 2, it.HistoryCount)
	assert.Equal(t, "780.5", it.Value)

	av, err := attributevalue.MarshalMap(it)
	require.NoError(t, err)
	var back removalItem
	require.NoError(t, attributevalue.UnmarshalMap(av, &back))

	got := fromRemovalItem(back)
	assert.Nil(t, got.History, "history lives in its own table")
	assert.True(t, got.Value.Equal(rem.Value))
	assert.True(t, got.RealWeight.Equal(rem.RealWeight))
	require.NotNil(t, got.CremationDate)
	assert.True(t, got.CremationDate.Equal(cremated))
	assert.Nil(t, got.ClosedAt)
	assert.Equal(t, rem.Pet, got.Pet)
	assert.Equal(t, rem.Address, got.Address)
	assert.Equal(t, rem.BagAssembly, got.BagAssembly)
	require.Len(t, got.CustomAdditionals, 1)
	assert.True(t, got.CustomAdditionals[0].FromStock)
	assert.Equal(t, 7, got.Version)
	assert.True(t, got.CreatedAt.Equal(created))
}

func TestHistoryItem_RoundTrip(t *testing.T) {
	date := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	h := entities.HistoryEntry{Date: date, Action: "devolution", User: "Julia", Reason: "erro", ProofURL: "https://p/1"}
	it := toHistoryItem("rem-1", 3, h)
	assert.Equal(t, "rem-1", it.RemovalID)
	assert.Equal(t, 3, it.Seq)
	assert.Equal(t, h, fromHistoryItem(it))
}

func TestPriceTableItem_RoundTrip(t *testing.T) {
	table := entities.NewPriceTable()
	table.Version = 4
	table.ActiveModalities[entities.ModalityIndividualOuro] = false
	table.SetCell(entities.PriceCell{
		Region: entities.RegionSC, Species: entities.SpeciesTypeNormal, Billing: entities.BillingTypeFaturado,
		Bracket: "0-5kg", Modality: entities.ModalityColetivo, Price: decimal.RequireFromString("199.90"),
	})
	table.AddBracket(entities.RegionSC, entities.SpeciesTypeNormal, entities.BillingTypeFaturado, "5-10kg")

	av, err := attributevalue.MarshalMap(toPriceTableItem(table))
	require.NoError(t, err)
	var it priceTableItem
	require.NoError(t, attributevalue.UnmarshalMap(av, &it))
	assert.Equal(t, priceTableID, it.ID)

	got := fromPriceTableItem(it)
	assert.Equal(t, 4, got.Version)
	assert.False(t, got.IsModalityActive(entities.ModalityIndividualOuro))
	p, ok := got.Cell(entities.RegionSC, entities.SpeciesTypeNormal, entities.BillingTypeFaturado, "0-5kg", entities.ModalityColetivo)
	require.True(t, ok)
	assert.True(t, p.Equal(decimal.RequireFromString("199.9")))
	assert.Equal(t, table.Gaps(), got.Gaps(), "empty brackets survive the round trip")
}

func TestStockRecord_RoundTrip(t *testing.T) {
	s := entities.StockItem{ID: "s1", Name: " Urna Grande ", Quantity: -2, MinAlertQuantity: 1, UnitPrice: decimal.NewFromInt(120)}
	rec := toStockRecord(s)
	assert.Equal(t, "urna grande", rec.NameKey)

	got := fromStockRecord(rec)
	assert.Equal(t, s.Name, got.Name)
	assert.Equal(t, -2, got.Quantity)
	assert.True(t, got.UnitPrice.Equal(s.UnitPrice))
	assert.Equal(t, "urna grande", stockKeyAttr("URNA GRANDE")["name_key"].(*types.AttributeValueMemberS).Value)
}

func TestCanceledConditionIndex(t *testing.T) {
	none := aws.String("None")
	failed := aws.String("ConditionalCheckFailed")

	err := fmt.Errorf("transact: %w", &types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{{Code: none}, {Code: failed}, {Code: none}},
	})
	assert.Equal(t, 1, canceledConditionIndex(err))

	err = &types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{{Code: aws.String("ThrottlingError")}}}
	assert.Equal(t, -1, canceledConditionIndex(err))
	assert.Equal(t, -1, canceledConditionIndex(errors.New("network down")))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "removals", tableOrDefault("", "removals"))
	assert.Equal(t, "custom", tableOrDefault("custom", "removals"))
	assert.True(t, parseDecimal("not-a-number").IsZero())
	assert.Empty(t, formatTimePtr(nil))
	assert.Nil(t, parseTimePtr("garbage"))
}
