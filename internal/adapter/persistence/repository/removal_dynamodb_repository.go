package repository

import (
	"context"
	"errors"
	"fmt"
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
	defaultRemovalsTableName = "removals"
	defaultHistoryTableName  = "removal_history"
	removalsCodeIndex        = "code-index"
	removalsStatusIndex      = "status-index"
	codeGuardPrefix          = "code#"
	// DynamoDB caps a TransactWriteItems call at 100 actions.
	maxTransactItems = 100
)

type petItem struct {
	Name    string `dynamodbav:"name"`
	Species string `dynamodbav:"species"`
	Breed   string `dynamodbav:"breed,omitempty"`
	Weight  string `dynamodbav:"weight"`
}

type addressItem struct {
	Street   string `dynamodbav:"street,omitempty"`
	Number   string `dynamodbav:"number,omitempty"`
	District string `dynamodbav:"district,omitempty"`
	City     string `dynamodbav:"city"`
	State    string `dynamodbav:"state"`
	ZipCode  string `dynamodbav:"zip_code,omitempty"`
}

type additionalItem struct {
	Type     string `dynamodbav:"type"`
	Quantity int    `dynamodbav:"quantity"`
	Value    string `dynamodbav:"value"`
}

type customAdditionalItem struct {
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	Quantity  int    `dynamodbav:"quantity"`
	Value     string `dynamodbav:"value"`
	ProofURL  string `dynamodbav:"proof_url,omitempty"`
	FromStock bool   `dynamodbav:"from_stock,omitempty"`
}

type removalItem struct {
	ID       string `dynamodbav:"id"`
	Code     string `dynamodbav:"code,omitempty"`
	Status   string `dynamodbav:"status"`
	Modality string `dynamodbav:"modality,omitempty"`

	Pet     petItem     `dynamodbav:"pet"`
	Address addressItem `dynamodbav:"address"`

	Value               string                 `dynamodbav:"value"`
	PaymentMethod       string                 `dynamodbav:"payment_method,omitempty"`
	Additionals         []additionalItem       `dynamodbav:"additionals,omitempty"`
	CustomAdditionals   []customAdditionalItem `dynamodbav:"custom_additionals,omitempty"`
	AdjustmentConfirmed bool                   `dynamodbav:"adjustment_confirmed"`

	RealWeight             string                `dynamodbav:"real_weight"`
	AssignedDriverID       string                `dynamodbav:"assigned_driver_id,omitempty"`
	AssignedDriverName     string                `dynamodbav:"assigned_driver_name,omitempty"`
	IsPriority             bool                  `dynamodbav:"is_priority"`
	PriorityDeadline       string                `dynamodbav:"priority_deadline,omitempty"`
	CremationCompany       string                `dynamodbav:"cremation_company,omitempty"`
	CremationDate          string                `dynamodbav:"cremation_date,omitempty"`
	BagAssembly            *entities.BagAssembly `dynamodbav:"bag_assembly,omitempty"`
	PetCondition           string                `dynamodbav:"pet_condition,omitempty"`
	FarewellSchedulingInfo string                `dynamodbav:"farewell_scheduling_info,omitempty"`
	ScheduledDate          string                `dynamodbav:"scheduled_date,omitempty"`
	ScheduledTime          string                `dynamodbav:"scheduled_time,omitempty"`
	ScheduledDeliveryDate  string                `dynamodbav:"scheduled_delivery_date,omitempty"`
	DeliveryAddress        string                `dynamodbav:"delivery_address,omitempty"`
	CancellationReason     string                `dynamodbav:"cancellation_reason,omitempty"`
	BatchID                string                `dynamodbav:"batch_id,omitempty"`

	CreatedByID                string `dynamodbav:"created_by_id"`
	CreatedByName              string `dynamodbav:"created_by_name,omitempty"`
	AssignedFinanceiroJuniorID string `dynamodbav:"assigned_financeiro_junior_id,omitempty"`
	AssignedFinanceiroMasterID string `dynamodbav:"assigned_financeiro_master_id,omitempty"`

	ClosedAt     string `dynamodbav:"closed_at,omitempty"`
	Version      int    `dynamodbav:"version"`
	HistoryCount int    `dynamodbav:"history_count"`
	CreatedAt    string `dynamodbav:"created_at"`
	UpdatedAt    string `dynamodbav:"updated_at"`
}

type historyItem struct {
	RemovalID string `dynamodbav:"removal_id"`
	Seq       int    `dynamodbav:"seq"`
	Date      string `dynamodbav:"date"`
	Action    string `dynamodbav:"action"`
	User      string `dynamodbav:"user"`
	Reason    string `dynamodbav:"reason,omitempty"`
	ProofURL  string `dynamodbav:"proof_url,omitempty"`
}

// codeGuardItem reserves a business code. It lives in the removals table without a status, so the
// status index never sees it.
type codeGuardItem struct {
	ID        string `dynamodbav:"id"`
	RemovalID string `dynamodbav:"removal_id"`
}

// RemovalDynamoRepository persists removals in DynamoDB.
//
// Table requirements:
//   - removals: PK id (string); GSI code-index (PK code); GSI status-index (PK status)
//   - removal_history: PK removal_id (string), SK seq (number)
//
// History entries are rows of their own; Update writes the new rows and the versioned removal in
// one transaction, so both land or neither does.
type RemovalDynamoRepository struct {
	ddb          *dynamodb.Client
	tableName    string
	historyTable string
}

var _ interfaces.IRemovalRepository = (*RemovalDynamoRepository)(nil)

func NewRemovalDynamoRepository(ddb *dynamodb.Client, tableName, historyTable string) *RemovalDynamoRepository {
	return &RemovalDynamoRepository{
		ddb:          ddb,
		tableName:    tableOrDefault(tableName, defaultRemovalsTableName),
		historyTable: tableOrDefault(historyTable, defaultHistoryTableName),
	}
}

func (r *RemovalDynamoRepository) Create(ctx context.Context, rem entities.Removal) (entities.Removal, error) {
	rem.Version = 1
	av, err := attributevalue.MarshalMap(toRemovalItem(rem))
	if err != nil {
		return entities.Removal{}, err
	}

	writes := []types.TransactWriteItem{{
		Put: &types.Put{
			TableName:                aws.String(r.tableName),
			Item:                     av,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		},
	}}
	if rem.Code != "" {
		guard, err := r.codeGuardPut(rem.Code, rem.ID)
		if err != nil {
			return entities.Removal{}, err
		}
		writes = append(writes, guard)
	}
	historyWrites, err := r.historyPuts(rem.ID, rem.History, 0)
	if err != nil {
		return entities.Removal{}, err
	}
	writes = append(writes, historyWrites...)

	if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: writes}); err != nil {
		if idx := canceledConditionIndex(err); idx >= 0 {
			if idx == 1 && rem.Code != "" {
				return entities.Removal{}, interfaces.ErrCodeTaken
			}
			return entities.Removal{}, errAlreadyExists
		}
		return entities.Removal{}, err
	}
	return rem.Clone(), nil
}

func (r *RemovalDynamoRepository) GetByID(ctx context.Context, id string) (entities.Removal, error) {
	it, found, err := r.getItem(ctx, id)
	if err != nil || !found {
		return entities.Removal{}, err
	}
	return r.withHistory(ctx, it)
}

func (r *RemovalDynamoRepository) GetByCode(ctx context.Context, code string) (entities.Removal, error) {
	if code == "" {
		return entities.Removal{}, nil
	}
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(removalsCodeIndex),
		KeyConditionExpression: aws.String("#code = :code"),
		ExpressionAttributeNames: map[string]string{
			"#code": "code",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":code": &types.AttributeValueMemberS{Value: code},
		},
	})
	if err != nil {
		return entities.Removal{}, err
	}
	for _, raw := range out.Items {
		var it removalItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return entities.Removal{}, err
		}
		if it.Status == "" {
			continue
		}
		// GSIs are eventually consistent; re-read the base item.
		return r.GetByID(ctx, it.ID)
	}
	return entities.Removal{}, nil
}

func (r *RemovalDynamoRepository) List(ctx context.Context, filter interfaces.RemovalFilter) ([]entities.Removal, error) {
	var items []removalItem
	var startKey map[string]types.AttributeValue
	for {
		var (
			raw  []map[string]types.AttributeValue
			last map[string]types.AttributeValue
		)
		if filter.Status != "" {
			out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
				TableName:                aws.String(r.tableName),
				IndexName:                aws.String(removalsStatusIndex),
				KeyConditionExpression:   aws.String("#status = :status"),
				ExpressionAttributeNames: map[string]string{"#status": "status"},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":status": &types.AttributeValueMemberS{Value: string(filter.Status)},
				},
				ExclusiveStartKey: startKey,
			})
			if err != nil {
				return nil, err
			}
			raw, last = out.Items, out.LastEvaluatedKey
		} else {
			out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
				TableName:                aws.String(r.tableName),
				FilterExpression:         aws.String("attribute_exists(#status)"),
				ExpressionAttributeNames: map[string]string{"#status": "status"},
				ExclusiveStartKey:        startKey,
			})
			if err != nil {
				return nil, err
			}
			raw, last = out.Items, out.LastEvaluatedKey
		}

		for _, av := range raw {
			var it removalItem
			if err := attributevalue.UnmarshalMap(av, &it); err != nil {
				return nil, err
			}
			items = append(items, it)
		}
		if len(last) == 0 {
			break
		}
		startKey = last
	}

	out := make([]entities.Removal, 0, len(items))
	for _, it := range items {
		if !matchesFilter(fromRemovalItem(it), filter) {
			continue
		}
		rem, err := r.withHistory(ctx, it)
		if err != nil {
			return nil, err
		}
		out = append(out, rem)
	}
	sortNewestFirst(out)
	return out, nil
}

// Update replaces the removal when the stored version equals expectedVersion. History rows past
// the stored history_count are appended; earlier rows are never rewritten.
func (r *RemovalDynamoRepository) Update(ctx context.Context, rem entities.Removal, expectedVersion int) (entities.Removal, error) {
	current, found, err := r.getItem(ctx, rem.ID)
	if err != nil {
		return entities.Removal{}, err
	}
	if !found {
		return entities.Removal{}, nil
	}
	if current.Version != expectedVersion {
		return entities.Removal{}, interfaces.ErrVersionConflict
	}

	rem.Version = expectedVersion + 1
	writes, codeChanged, err := r.updateWrites(current, rem, expectedVersion)
	if err != nil {
		return entities.Removal{}, err
	}

	if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: writes}); err != nil {
		switch idx := canceledConditionIndex(err); {
		case idx == 1 && codeChanged:
			return entities.Removal{}, interfaces.ErrCodeTaken
		case idx >= 0:
			return entities.Removal{}, interfaces.ErrVersionConflict
		}
		return entities.Removal{}, err
	}
	return rem.Clone(), nil
}

// UpdateMany writes every member in one transaction, so a failed condition on any of them leaves
// the whole group untouched.
func (r *RemovalDynamoRepository) UpdateMany(ctx context.Context, updates []interfaces.RemovalUpdate) ([]entities.Removal, error) {
	var writes []types.TransactWriteItem
	out := make([]entities.Removal, 0, len(updates))
	for _, u := range updates {
		current, found, err := r.getItem(ctx, u.Removal.ID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, nil
		}
		if current.Version != u.ExpectedVersion {
			return nil, interfaces.ErrVersionConflict
		}

		rem := u.Removal.Clone()
		rem.Version = u.ExpectedVersion + 1
		w, _, err := r.updateWrites(current, rem, u.ExpectedVersion)
		if err != nil {
			return nil, err
		}
		writes = append(writes, w...)
		out = append(out, rem)
	}
	if len(writes) == 0 {
		return out, nil
	}
	if len(writes) > maxTransactItems {
		return nil, fmt.Errorf("group update needs %d writes, a transaction takes at most %d", len(writes), maxTransactItems)
	}

	if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: writes}); err != nil {
		if canceledConditionIndex(err) >= 0 {
			return nil, interfaces.ErrVersionConflict
		}
		return nil, err
	}
	return out, nil
}

// updateWrites builds the conditional put of rem (already carrying its new version), the code
// guard swap when the code changed, and the appended history rows.
func (r *RemovalDynamoRepository) updateWrites(current removalItem, rem entities.Removal, expectedVersion int) ([]types.TransactWriteItem, bool, error) {
	if len(rem.History) < current.HistoryCount {
		return nil, false, fmt.Errorf("history shrank from %d to %d entries", current.HistoryCount, len(rem.History))
	}
	av, err := attributevalue.MarshalMap(toRemovalItem(rem))
	if err != nil {
		return nil, false, err
	}

	writes := []types.TransactWriteItem{{
		Put: &types.Put{
			TableName:                aws.String(r.tableName),
			Item:                     av,
			ConditionExpression:      aws.String("#version = :expected"),
			ExpressionAttributeNames: map[string]string{"#version": "version"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":expected": &types.AttributeValueMemberN{Value: itoa(expectedVersion)},
			},
		},
	}}
	codeChanged := rem.Code != current.Code && rem.Code != ""
	if codeChanged {
		guard, err := r.codeGuardPut(rem.Code, rem.ID)
		if err != nil {
			return nil, false, err
		}
		writes = append(writes, guard)
		if current.Code != "" {
			writes = append(writes, types.TransactWriteItem{Delete: &types.Delete{
				TableName: aws.String(r.tableName),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: codeGuardPrefix + current.Code},
				},
			}})
		}
	}
	historyWrites, err := r.historyPuts(rem.ID, rem.History, current.HistoryCount)
	if err != nil {
		return nil, false, err
	}
	return append(writes, historyWrites...), codeChanged, nil
}

func (r *RemovalDynamoRepository) getItem(ctx context.Context, id string) (removalItem, bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return removalItem{}, false, err
	}
	if len(out.Item) == 0 {
		return removalItem{}, false, nil
	}
	var it removalItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return removalItem{}, false, err
	}
	if it.Status == "" {
		return removalItem{}, false, nil
	}
	return it, true, nil
}

func (r *RemovalDynamoRepository) withHistory(ctx context.Context, it removalItem) (entities.Removal, error) {
	rem := fromRemovalItem(it)
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.historyTable),
			KeyConditionExpression: aws.String("removal_id = :rid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":rid": &types.AttributeValueMemberS{Value: it.ID},
			},
			ConsistentRead:    aws.Bool(true),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return entities.Removal{}, err
		}
		for _, raw := range out.Items {
			var h historyItem
			if err := attributevalue.UnmarshalMap(raw, &h); err != nil {
				return entities.Removal{}, err
			}
			if h.Seq >= it.HistoryCount {
				// Row of a transaction that has not been read back in full yet.
				continue
			}
			rem.History = append(rem.History, fromHistoryItem(h))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return rem, nil
}

func (r *RemovalDynamoRepository) codeGuardPut(code, removalID string) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(codeGuardItem{ID: codeGuardPrefix + code, RemovalID: removalID})
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	return types.TransactWriteItem{Put: &types.Put{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id) OR removal_id = :rid"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rid": &types.AttributeValueMemberS{Value: removalID},
		},
	}}, nil
}

func (r *RemovalDynamoRepository) historyPuts(removalID string, history []entities.HistoryEntry, from int) ([]types.TransactWriteItem, error) {
	writes := make([]types.TransactWriteItem, 0, len(history)-from)
	for seq := from; seq < len(history); seq++ {
		av, err := attributevalue.MarshalMap(toHistoryItem(removalID, seq, history[seq]))
		if err != nil {
			return nil, err
		}
		writes = append(writes, types.TransactWriteItem{Put: &types.Put{
			TableName:           aws.String(r.historyTable),
			Item:                av,
			ConditionExpression: aws.String("attribute_not_exists(seq)"),
		}})
	}
	return writes, nil
}

// canceledConditionIndex returns the position of the first write whose condition failed, or -1
// when err is not a conditional cancellation.
func canceledConditionIndex(err error) int {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return -1
	}
	for i, reason := range tce.CancellationReasons {
		if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
			return i
		}
	}
	return -1
}

func toRemovalItem(r entities.Removal) removalItem {
	it := removalItem{
		ID:                         r.ID,
		Code:                       r.Code,
		Status:                     string(r.Status),
		Modality:                   string(r.Modality),
		Pet:                        petItem(r.Pet),
		Address:                    addressItem(r.Address),
		Value:                      r.Value.String(),
		PaymentMethod:              r.PaymentMethod,
		AdjustmentConfirmed:        r.AdjustmentConfirmed,
		RealWeight:                 r.RealWeight.String(),
		AssignedDriverID:           r.AssignedDriverID,
		AssignedDriverName:         r.AssignedDriverName,
		IsPriority:                 r.IsPriority,
		PriorityDeadline:           r.PriorityDeadline,
		CremationCompany:           r.CremationCompany,
		CremationDate:              formatTimePtr(r.CremationDate),
		BagAssembly:                r.BagAssembly,
		PetCondition:               r.PetCondition,
		FarewellSchedulingInfo:     r.FarewellSchedulingInfo,
		ScheduledDate:              r.ScheduledDate,
		ScheduledTime:              r.ScheduledTime,
		ScheduledDeliveryDate:      r.ScheduledDeliveryDate,
		DeliveryAddress:            r.DeliveryAddress,
		CancellationReason:         r.CancellationReason,
		BatchID:                    r.BatchID,
		CreatedByID:                r.CreatedByID,
		CreatedByName:              r.CreatedByName,
		AssignedFinanceiroJuniorID: r.AssignedFinanceiroJuniorID,
		AssignedFinanceiroMasterID: r.AssignedFinanceiroMasterID,
		ClosedAt:                   formatTimePtr(r.ClosedAt),
		Version:                    r.Version,
		HistoryCount:               len(r.History),
		CreatedAt:                  r.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:                  r.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	for _, a := range r.Additionals {
		it.Additionals = append(it.Additionals, additionalItem{Type: a.Type, Quantity: a.Quantity, Value: a.Value.String()})
	}
	for _, c := range r.CustomAdditionals {
		it.CustomAdditionals = append(it.CustomAdditionals, customAdditionalItem{
			ID: c.ID, Name: c.Name, Quantity: c.Quantity, Value: c.Value.String(), ProofURL: c.ProofURL, FromStock: c.FromStock,
		})
	}
	return it
}

func fromRemovalItem(it removalItem) entities.Removal {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	r := entities.Removal{
		ID:                         it.ID,
		Code:                       it.Code,
		Status:                     entities.RemovalStatus(it.Status),
		Modality:                   entities.Modality(it.Modality),
		Pet:                        entities.Pet(it.Pet),
		Address:                    entities.Address(it.Address),
		Value:                      parseDecimal(it.Value),
		PaymentMethod:              it.PaymentMethod,
		AdjustmentConfirmed:        it.AdjustmentConfirmed,
		RealWeight:                 parseDecimal(it.RealWeight),
		AssignedDriverID:           it.AssignedDriverID,
		AssignedDriverName:         it.AssignedDriverName,
		IsPriority:                 it.IsPriority,
		PriorityDeadline:           it.PriorityDeadline,
		CremationCompany:           it.CremationCompany,
		CremationDate:              parseTimePtr(it.CremationDate),
		BagAssembly:                it.BagAssembly,
		PetCondition:               it.PetCondition,
		FarewellSchedulingInfo:     it.FarewellSchedulingInfo,
		ScheduledDate:              it.ScheduledDate,
		ScheduledTime:              it.ScheduledTime,
		ScheduledDeliveryDate:      it.ScheduledDeliveryDate,
		DeliveryAddress:            it.DeliveryAddress,
		CancellationReason:         it.CancellationReason,
		BatchID:                    it.BatchID,
		CreatedByID:                it.CreatedByID,
		CreatedByName:              it.CreatedByName,
		AssignedFinanceiroJuniorID: it.AssignedFinanceiroJuniorID,
		AssignedFinanceiroMasterID: it.AssignedFinanceiroMasterID,
		ClosedAt:                   parseTimePtr(it.ClosedAt),
		Version:                    it.Version,
		CreatedAt:                  createdAt,
		UpdatedAt:                  updatedAt,
	}
	for _, a := range it.Additionals {
		r.Additionals = append(r.Additionals, entities.Additional{Type: a.Type, Quantity: a.Quantity, Value: parseDecimal(a.Value)})
	}
	for _, c := range it.CustomAdditionals {
		r.CustomAdditionals = append(r.CustomAdditionals, entities.CustomAdditional{
			ID: c.ID, Name: c.Name, Quantity: c.Quantity, Value: parseDecimal(c.Value), ProofURL: c.ProofURL, FromStock: c.FromStock,
		})
	}
	return r
}

func toHistoryItem(removalID string, seq int, h entities.HistoryEntry) historyItem {
	return historyItem{
		RemovalID: removalID,
		Seq:       seq,
		Date:      h.Date.UTC().Format(time.RFC3339Nano),
		Action:    h.Action,
		User:      h.User,
		Reason:    h.Reason,
		ProofURL:  h.ProofURL,
	}
}

func fromHistoryItem(h historyItem) entities.HistoryEntry {
	date, _ := time.Parse(time.RFC3339Nano, h.Date)
	return entities.HistoryEntry{Date: date, Action: h.Action, User: h.User, Reason: h.Reason, ProofURL: h.ProofURL}
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}
