package repository

import (
	"context"
	"fmt"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/infrastructure/database"
	"order_ledger/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOrderEventsTableName    = "order_events"
	defaultOrderEventKeysTableName = "order_event_keys"
	orderEventsPurchaseIndex       = "purchase_id-created-index"
)

type orderEventItem struct {
	ID         string            `dynamodbav:"id"`
	Type       string            `dynamodbav:"type"`
	PurchaseID string            `dynamodbav:"purchase_id,omitempty"`
	Amount     string            `dynamodbav:"amount"`
	Gateway    string            `dynamodbav:"gateway,omitempty"`
	TxnID      string            `dynamodbav:"txnid,omitempty"`
	User       string            `dynamodbav:"user,omitempty"`
	Fields     map[string]string `dynamodbav:"fields,omitempty"`
	Created    string            `dynamodbav:"created"`
}

type orderEventKeyItem struct {
	Key     string `dynamodbav:"event_key"`
	EventID string `dynamodbav:"event_id"`
}

// OrderEventDynamoRepository is the append-only event store.
//
// Table requirements:
//   - order_events, PK: id
//   - GSI purchase_id-created-index (PK: purchase_id, SK: created)
//   - order_event_keys, PK: event_key (purchase|type|txnid of money-moving events)
//
// Orphan events carry no purchase_id and stay out of the index.
type OrderEventDynamoRepository struct {
	ddb       database.DynamoAPI
	tableName string
	keysTable string
}

var _ interfaces.IOrderEventRepository = (*OrderEventDynamoRepository)(nil)

func NewOrderEventDynamoRepository(ddb database.DynamoAPI) *OrderEventDynamoRepository {
	return &OrderEventDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDER_EVENTS_TABLE", defaultOrderEventsTableName),
		keysTable: getenvDefault("ORDER_EVENT_KEYS_TABLE", defaultOrderEventKeysTableName),
	}
}

func eventKey(purchaseID string, t entities.EventType, txnID string) string {
	return purchaseID + "|" + string(t) + "|" + txnID
}

func (r *OrderEventDynamoRepository) Create(ctx context.Context, e entities.OrderEvent) (entities.OrderEvent, error) {
	av, err := attributevalue.MarshalMap(toOrderEventItem(e))
	if err != nil {
		return entities.OrderEvent{}, err
	}
	put := &types.Put{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}

	if !e.Type.Transactional() || e.TxnID == "" {
		_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:                put.TableName,
			Item:                     put.Item,
			ConditionExpression:      put.ConditionExpression,
			ExpressionAttributeNames: put.ExpressionAttributeNames,
		})
		if err != nil {
			return entities.OrderEvent{}, err
		}
		return e, nil
	}

	guard, err := attributevalue.MarshalMap(orderEventKeyItem{Key: eventKey(e.PurchaseID, e.Type, e.TxnID), EventID: e.ID})
	if err != nil {
		return entities.OrderEvent{}, err
	}
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: put},
			{Put: &types.Put{
				TableName:                aws.String(r.keysTable),
				Item:                     guard,
				ConditionExpression:      aws.String("attribute_not_exists(#key)"),
				ExpressionAttributeNames: map[string]string{"#key": "event_key"},
			}},
		},
	})
	if isConditionFailed(err) {
		return entities.OrderEvent{}, fmt.Errorf("%w: %s %s", entities.ErrDuplicateTransaction, e.Type, e.TxnID)
	}
	if err != nil {
		return entities.OrderEvent{}, err
	}
	return e, nil
}

func (r *OrderEventDynamoRepository) ListByPurchase(ctx context.Context, purchaseID string) ([]entities.OrderEvent, error) {
	var (
		events []entities.OrderEvent
		start  map[string]types.AttributeValue
	)
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(orderEventsPurchaseIndex),
			KeyConditionExpression: aws.String("purchase_id = :pid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pid": &types.AttributeValueMemberS{Value: purchaseID},
			},
			ScanIndexForward:  aws.Bool(true),
			ExclusiveStartKey: start,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it orderEventItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			events = append(events, fromOrderEventItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		start = out.LastEvaluatedKey
	}
	entities.SortEvents(events)
	return events, nil
}

func (r *OrderEventDynamoRepository) FindByTxn(ctx context.Context, purchaseID string, eventType entities.EventType, txnID string) (entities.OrderEvent, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.keysTable),
		Key:            stringKey("event_key", eventKey(purchaseID, eventType, txnID)),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.OrderEvent{}, err
	}
	if len(out.Item) == 0 {
		return entities.OrderEvent{}, nil
	}
	var guard orderEventKeyItem
	if err := attributevalue.UnmarshalMap(out.Item, &guard); err != nil {
		return entities.OrderEvent{}, err
	}

	ev, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", guard.EventID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.OrderEvent{}, err
	}
	if len(ev.Item) == 0 {
		return entities.OrderEvent{}, nil
	}
	var it orderEventItem
	if err := attributevalue.UnmarshalMap(ev.Item, &it); err != nil {
		return entities.OrderEvent{}, err
	}
	return fromOrderEventItem(it), nil
}

func toOrderEventItem(e entities.OrderEvent) orderEventItem {
	return orderEventItem{
		ID:         e.ID,
		Type:       string(e.Type),
		PurchaseID: e.PurchaseID,
		Amount:     e.Amount.String(),
		Gateway:    e.Gateway,
		TxnID:      e.TxnID,
		User:       e.User,
		Fields:     e.Fields,
		Created:    formatTime(e.CreatedAt),
	}
}

func fromOrderEventItem(it orderEventItem) entities.OrderEvent {
	fields := it.Fields
	if fields == nil {
		fields = map[string]string{}
	}
	return entities.OrderEvent{
		ID:         it.ID,
		Type:       entities.EventType(it.Type),
		PurchaseID: it.PurchaseID,
		Amount:     parseDecimal(it.Amount),
		Gateway:    it.Gateway,
		TxnID:      it.TxnID,
		User:       it.User,
		Fields:     fields,
		CreatedAt:  parseTime(it.Created),
	}
}
