package repository

import (
	"context"
	"errors"
	"sort"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultStockTableName = "stock_items"

type stockItemRecord struct {
	NameKey          string `dynamodbav:"name_key"`
	ID               string `dynamodbav:"id"`
	Name             string `dynamodbav:"name"`
	Category         string `dynamodbav:"category,omitempty"`
	Quantity         int    `dynamodbav:"quantity"`
	MinAlertQuantity int    `dynamodbav:"min_alert_quantity"`
	UnitPrice        string `dynamodbav:"unit_price"`
}

// StockDynamoRepository persists stock items in DynamoDB.
//
// Table requirements:
//   - PK: name_key (string, lower-cased trimmed name)
//
// AddQuantity is a single UpdateItem with ADD, so concurrent deductions never lose updates.
type StockDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IStockRepository = (*StockDynamoRepository)(nil)

func NewStockDynamoRepository(ddb *dynamodb.Client, tableName string) *StockDynamoRepository {
	return &StockDynamoRepository{ddb: ddb, tableName: tableOrDefault(tableName, defaultStockTableName)}
}

func (r *StockDynamoRepository) Create(ctx context.Context, s entities.StockItem) (entities.StockItem, error) {
	av, err := attributevalue.MarshalMap(toStockRecord(s))
	if err != nil {
		return entities.StockItem{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{"#pk": "name_key"},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.StockItem{}, errAlreadyExists
		}
		return entities.StockItem{}, err
	}
	return s, nil
}

func (r *StockDynamoRepository) GetByName(ctx context.Context, name string) (entities.StockItem, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stockKeyAttr(name),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.StockItem{}, err
	}
	if len(out.Item) == 0 {
		return entities.StockItem{}, nil
	}
	var rec stockItemRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return entities.StockItem{}, err
	}
	return fromStockRecord(rec), nil
}

func (r *StockDynamoRepository) List(ctx context.Context) ([]entities.StockItem, error) {
	var out []entities.StockItem
	paginator := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var rec stockItemRecord
			if err := attributevalue.UnmarshalMap(raw, &rec); err != nil {
				return nil, err
			}
			out = append(out, fromStockRecord(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *StockDynamoRepository) AddQuantity(ctx context.Context, name string, delta int) (entities.StockItem, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stockKeyAttr(name),
		ConditionExpression: aws.String("attribute_exists(#pk)"),
		UpdateExpression:    aws.String("ADD #quantity :delta"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":delta": &types.AttributeValueMemberN{Value: itoa(delta)},
		},
		ExpressionAttributeNames: mergeNames(
			map[string]string{"#quantity": "quantity"},
			map[string]string{"#pk": "name_key"},
		),
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.StockItem{}, nil
		}
		return entities.StockItem{}, err
	}
	var rec stockItemRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &rec); err != nil {
		return entities.StockItem{}, err
	}
	return fromStockRecord(rec), nil
}

func stockKeyAttr(name string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"name_key": &types.AttributeValueMemberS{Value: stockKey(name)},
	}
}

func toStockRecord(s entities.StockItem) stockItemRecord {
	return stockItemRecord{
		NameKey:          stockKey(s.Name),
		ID:               s.ID,
		Name:             s.Name,
		Category:         s.Category,
		Quantity:         s.Quantity,
		MinAlertQuantity: s.MinAlertQuantity,
		UnitPrice:        s.UnitPrice.String(),
	}
}

func fromStockRecord(rec stockItemRecord) entities.StockItem {
	return entities.StockItem{
		ID:               rec.ID,
		Name:             rec.Name,
		Category:         rec.Category,
		Quantity:         rec.Quantity,
		MinAlertQuantity: rec.MinAlertQuantity,
		UnitPrice:        parseDecimal(rec.UnitPrice),
	}
}
