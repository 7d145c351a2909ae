package lock

import (
	"context"
	"os"
	"strconv"
	"time"

	"order_ledger/internal/infrastructure/database"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultLocksTableName = "txn_locks"

// DynamoBackend stores leases as items keyed by lock_key.
//
// Table requirements:
//   - PK: lock_key (string)
//   - TTL attribute (optional): expires_at
type DynamoBackend struct {
	ddb       database.DynamoAPI
	tableName string
	now       func() time.Time
}

func NewDynamoBackend(ddb database.DynamoAPI) *DynamoBackend {
	table := os.Getenv("TXN_LOCKS_TABLE")
	if table == "" {
		table = defaultLocksTableName
	}
	return &DynamoBackend{ddb: ddb, tableName: table, now: time.Now}
}

func (b *DynamoBackend) Name() string { return "dynamodb" }

// TryAcquire writes the lease unless another owner holds an unexpired one.
func (b *DynamoBackend) TryAcquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	now := b.now()
	_, err := b.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(b.tableName),
		Item: map[string]types.AttributeValue{
			"lock_key":   &types.AttributeValueMemberS{Value: key},
			"owner":      &types.AttributeValueMemberS{Value: owner},
			"expires_at": &types.AttributeValueMemberN{Value: strconv.FormatInt(now.Add(ttl).Unix(), 10)},
		},
		ConditionExpression: aws.String("attribute_not_exists(lock_key) OR expires_at < :now OR #owner = :owner"),
		ExpressionAttributeNames: map[string]string{
			"#owner": "owner",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now":   &types.AttributeValueMemberN{Value: strconv.FormatInt(now.Unix(), 10)},
			":owner": &types.AttributeValueMemberS{Value: owner},
		},
	})
	if err != nil {
		if database.IsConditionFailed(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Release deletes the lease only while this owner still holds it.
func (b *DynamoBackend) Release(ctx context.Context, key, owner string) error {
	_, err := b.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(b.tableName),
		Key: map[string]types.AttributeValue{
			"lock_key": &types.AttributeValueMemberS{Value: key},
		},
		ConditionExpression: aws.String("#owner = :owner"),
		ExpressionAttributeNames: map[string]string{
			"#owner": "owner",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner": &types.AttributeValueMemberS{Value: owner},
		},
	})
	if err != nil && !database.IsConditionFailed(err) {
		return err
	}
	return nil
}
