package repository

import (
	"context"
	"errors"
	"time"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	defaultPricesTableName = "price_table"
	priceTableID           = "current"
)

// priceTableItem stores the whole table as one item: region -> species -> billing -> bracket ->
// modality -> decimal string.
type priceTableItem struct {
	ID               string                                                        `dynamodbav:"id"`
	Prices           map[string]map[string]map[string]map[string]map[string]string `dynamodbav:"prices"`
	ActiveModalities map[string]bool                                               `dynamodbav:"active_modalities"`
	Version          int                                                           `dynamodbav:"version"`
	UpdatedAt        string                                                        `dynamodbav:"updated_at"`
}

// PriceDynamoRepository persists the price table as a single versioned item.
//
// Table requirements:
//   - PK: id (string)
type PriceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPriceRepository = (*PriceDynamoRepository)(nil)

func NewPriceDynamoRepository(ddb *dynamodb.Client, tableName string) *PriceDynamoRepository {
	return &PriceDynamoRepository{ddb: ddb, tableName: tableOrDefault(tableName, defaultPricesTableName)}
}

// Get returns the stored table, or an empty version-1 table when none was saved yet.
func (r *PriceDynamoRepository) Get(ctx context.Context) (entities.PriceTable, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: priceTableID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PriceTable{}, err
	}
	if len(out.Item) == 0 {
		return entities.NewPriceTable(), nil
	}
	var it priceTableItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PriceTable{}, err
	}
	return fromPriceTableItem(it), nil
}

func (r *PriceDynamoRepository) Save(ctx context.Context, t entities.PriceTable, expectedVersion int) (entities.PriceTable, error) {
	t = t.Clone()
	t.Version = expectedVersion + 1
	t.UpdatedAt = time.Now().UTC()

	av, err := attributevalue.MarshalMap(toPriceTableItem(t))
	if err != nil {
		return entities.PriceTable{}, err
	}

	// The first save of a fresh deployment has no item; Get reported it as version 1.
	condition := "#version = :expected"
	if expectedVersion == 1 {
		condition = "attribute_not_exists(#id) OR #version = :expected"
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String(condition),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: itoa(expectedVersion)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.PriceTable{}, interfaces.ErrVersionConflict
		}
		return entities.PriceTable{}, err
	}
	return t, nil
}

func toPriceTableItem(t entities.PriceTable) priceTableItem {
	it := priceTableItem{
		ID:               priceTableID,
		Prices:           map[string]map[string]map[string]map[string]map[string]string{},
		ActiveModalities: map[string]bool{},
		Version:          t.Version,
		UpdatedAt:        t.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	for m, active := range t.ActiveModalities {
		it.ActiveModalities[string(m)] = active
	}
	for region, bySpecies := range t.Prices {
		species := map[string]map[string]map[string]map[string]string{}
		for sp, byBilling := range bySpecies {
			billing := map[string]map[string]map[string]string{}
			for b, brackets := range byBilling {
				rows := map[string]map[string]string{}
				for bracket, prices := range brackets {
					row := map[string]string{}
					for m, p := range prices {
						row[string(m)] = p.String()
					}
					rows[bracket] = row
				}
				billing[string(b)] = rows
			}
			species[string(sp)] = billing
		}
		it.Prices[string(region)] = species
	}
	return it
}

func fromPriceTableItem(it priceTableItem) entities.PriceTable {
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	t := entities.PriceTable{
		Prices:           map[entities.Region]map[entities.SpeciesType]map[entities.BillingType]map[string]entities.BracketPrices{},
		ActiveModalities: map[entities.Modality]bool{},
		Version:          it.Version,
		UpdatedAt:        updatedAt,
	}
	for m, active := range it.ActiveModalities {
		t.ActiveModalities[entities.Modality(m)] = active
	}
	for region, bySpecies := range it.Prices {
		for sp, byBilling := range bySpecies {
			for b, brackets := range byBilling {
				for bracket, row := range brackets {
					t.AddBracket(entities.Region(region), entities.SpeciesType(sp), entities.BillingType(b), bracket)
					for m, p := range row {
						price, err := decimal.NewFromString(p)
						if err != nil {
							continue
						}
						t.SetCell(entities.PriceCell{
							Region:   entities.Region(region),
							Species:  entities.SpeciesType(sp),
							Billing:  entities.BillingType(b),
							Bracket:  bracket,
							Modality: entities.Modality(m),
							Price:    price,
						})
					}
				}
			}
		}
	}
	return t
}
