package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo stores items per table under a single string key attribute and
// honours attribute_not_exists conditions on puts.
type fakeDynamo struct {
	mu         sync.Mutex
	keys       map[string]string
	tables     map[string]map[string]map[string]types.AttributeValue
	updates    []*dynamodb.UpdateItemInput
	txs        []*dynamodb.TransactWriteItemsInput
	queries    []*dynamodb.QueryInput
	pages      []*dynamodb.QueryOutput
	updateErr  error
	updateHook func(*dynamodb.UpdateItemInput) error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{
		keys: map[string]string{
			"purchases":        "id",
			"purchase_txnids":  "txnid",
			"order_events":     "id",
			"order_event_keys": "event_key",
			"customers":        "id",
			"addresses":        "id",
			"applied_updates":  "update_key",
		},
		tables: map[string]map[string]map[string]types.AttributeValue{},
	}
}

func (f *fakeDynamo) keyOf(table string, item map[string]types.AttributeValue) string {
	s, _ := item[f.keys[table]].(*types.AttributeValueMemberS)
	if s == nil {
		return ""
	}
	return s.Value
}

func (f *fakeDynamo) exists(table string, item map[string]types.AttributeValue) bool {
	_, ok := f.tables[table][f.keyOf(table, item)]
	return ok
}

func (f *fakeDynamo) store(table string, item map[string]types.AttributeValue) {
	if f.tables[table] == nil {
		f.tables[table] = map[string]map[string]types.AttributeValue{}
	}
	f.tables[table][f.keyOf(table, item)] = item
}

func guarded(cond *string) bool {
	return strings.HasPrefix(aws.ToString(cond), "attribute_not_exists")
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := aws.ToString(in.TableName)
	return &dynamodb.GetItemOutput{Item: f.tables[table][f.keyOf(table, in.Key)]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := aws.ToString(in.TableName)
	if guarded(in.ConditionExpression) && f.exists(table, in.Item) {
		return nil, &types.ConditionalCheckFailedException{}
	}
	f.store(table, in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, in)
	if f.updateHook != nil {
		return &dynamodb.UpdateItemOutput{}, f.updateHook(in)
	}
	return &dynamodb.UpdateItemOutput{}, f.updateErr
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := aws.ToString(in.TableName)
	delete(f.tables[table], f.keyOf(table, in.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, in)
	if len(f.pages) == 0 {
		return &dynamodb.QueryOutput{}, nil
	}
	out := f.pages[0]
	f.pages = f.pages[1:]
	return out, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txs = append(f.txs, in)
	reasons := make([]types.CancellationReason, len(in.TransactItems))
	failed := false
	for i, it := range in.TransactItems {
		reasons[i] = types.CancellationReason{Code: aws.String("None")}
		if it.Put != nil && guarded(it.Put.ConditionExpression) && f.exists(aws.ToString(it.Put.TableName), it.Put.Item) {
			reasons[i] = types.CancellationReason{Code: aws.String("ConditionalCheckFailed")}
			failed = true
		}
	}
	if failed {
		return nil, &types.TransactionCanceledException{CancellationReasons: reasons}
	}
	for _, it := range in.TransactItems {
		if it.Put != nil {
			f.store(aws.ToString(it.Put.TableName), it.Put.Item)
		}
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}
