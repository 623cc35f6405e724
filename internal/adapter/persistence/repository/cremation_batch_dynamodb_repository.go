package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultBatchesTableName = "cremation_batches"

type batchMemberItem struct {
	RemovalCode string `dynamodbav:"removal_code"`
	PetName     string `dynamodbav:"pet_name"`
	Weight      string `dynamodbav:"weight"`
	Position    string `dynamodbav:"position"`
}

type cremationBatchItem struct {
	ID           string            `dynamodbav:"id"`
	Items        []batchMemberItem `dynamodbav:"items"`
	OperatorName string            `dynamodbav:"operator_name,omitempty"`
	CreatedAt    string            `dynamodbav:"created_at"`
	StartedAt    string            `dynamodbav:"started_at,omitempty"`
	FinishedAt   string            `dynamodbav:"finished_at,omitempty"`
}

// CremationBatchDynamoRepository persists furnace batches in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
type CremationBatchDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICremationBatchRepository = (*CremationBatchDynamoRepository)(nil)

func NewCremationBatchDynamoRepository(ddb *dynamodb.Client, tableName string) *CremationBatchDynamoRepository {
	return &CremationBatchDynamoRepository{ddb: ddb, tableName: tableOrDefault(tableName, defaultBatchesTableName)}
}

func (r *CremationBatchDynamoRepository) Create(ctx context.Context, b entities.CremationBatch) (entities.CremationBatch, error) {
	return r.put(ctx, b, "attribute_not_exists(#id)", errAlreadyExists)
}

func (r *CremationBatchDynamoRepository) GetByID(ctx context.Context, id string) (entities.CremationBatch, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.CremationBatch{}, err
	}
	if len(out.Item) == 0 {
		return entities.CremationBatch{}, nil
	}
	var it cremationBatchItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.CremationBatch{}, err
	}
	return fromCremationBatchItem(it), nil
}

func (r *CremationBatchDynamoRepository) List(ctx context.Context) ([]entities.CremationBatch, error) {
	var out []entities.CremationBatch
	paginator := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it cremationBatchItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			out = append(out, fromCremationBatchItem(it))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Update replaces an existing batch. An unknown id yields a zero-value batch.
func (r *CremationBatchDynamoRepository) Update(ctx context.Context, b entities.CremationBatch) (entities.CremationBatch, error) {
	return r.put(ctx, b, "attribute_exists(#id)", nil)
}

func (r *CremationBatchDynamoRepository) put(ctx context.Context, b entities.CremationBatch, condition string, onConflict error) (entities.CremationBatch, error) {
	av, err := attributevalue.MarshalMap(toCremationBatchItem(b))
	if err != nil {
		return entities.CremationBatch{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String(condition),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.CremationBatch{}, onConflict
		}
		return entities.CremationBatch{}, err
	}
	return b, nil
}

func toCremationBatchItem(b entities.CremationBatch) cremationBatchItem {
	it := cremationBatchItem{
		ID:           b.ID,
		OperatorName: b.OperatorName,
		CreatedAt:    b.CreatedAt.UTC().Format(time.RFC3339Nano),
		StartedAt:    formatTimePtr(b.StartedAt),
		FinishedAt:   formatTimePtr(b.FinishedAt),
	}
	for _, m := range b.Items {
		it.Items = append(it.Items, batchMemberItem{
			RemovalCode: m.RemovalCode,
			PetName:     m.PetName,
			Weight:      m.Weight,
			Position:    string(m.Position),
		})
	}
	return it
}

func fromCremationBatchItem(it cremationBatchItem) entities.CremationBatch {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	b := entities.CremationBatch{
		ID:           it.ID,
		OperatorName: it.OperatorName,
		CreatedAt:    createdAt,
		StartedAt:    parseTimePtr(it.StartedAt),
		FinishedAt:   parseTimePtr(it.FinishedAt),
	}
	for _, m := range it.Items {
		b.Items = append(b.Items, entities.BatchItem{
			RemovalCode: m.RemovalCode,
			PetName:     m.PetName,
			Weight:      m.Weight,
			Position:    entities.FurnacePosition(m.Position),
		})
	}
	return b
}
