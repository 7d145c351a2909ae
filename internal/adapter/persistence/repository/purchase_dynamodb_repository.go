package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/infrastructure/database"
	"order_ledger/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

const (
	defaultPurchasesTableName    = "purchases"
	defaultPurchaseTxnsTableName = "purchase_txnids"
)

type purchaseItem struct {
	ID        string `dynamodbav:"id"`
	TxnID     string `dynamodbav:"txnid"`
	TxnStatus string `dynamodbav:"txnstatus"`
	Gateway   string `dynamodbav:"gateway"`
	Email     string `dynamodbav:"email,omitempty"`
	Total     string `dynamodbav:"total"`
	Created   string `dynamodbav:"created"`
	Doc       string `dynamodbav:"doc"`
}

type purchaseTxnItem struct {
	TxnID      string `dynamodbav:"txnid"`
	PurchaseID string `dynamodbav:"purchase_id"`
}

// PurchaseDynamoRepository persists purchases in DynamoDB.
//
// Table requirements:
//   - purchases, PK: id
//   - purchase_txnids, PK: txnid
//
// Both items are written in one transaction so a txnid can only ever own one purchase.
type PurchaseDynamoRepository struct {
	ddb       database.DynamoAPI
	tableName string
	txnTable  string
}

var _ interfaces.IPurchaseRepository = (*PurchaseDynamoRepository)(nil)

func NewPurchaseDynamoRepository(ddb database.DynamoAPI) *PurchaseDynamoRepository {
	return &PurchaseDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PURCHASES_TABLE", defaultPurchasesTableName),
		txnTable:  getenvDefault("PURCHASE_TXNIDS_TABLE", defaultPurchaseTxnsTableName),
	}
}

func (r *PurchaseDynamoRepository) Create(ctx context.Context, p entities.Purchase) (entities.Purchase, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	it, err := toPurchaseItem(p)
	if err != nil {
		return entities.Purchase{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Purchase{}, err
	}
	guard, err := attributevalue.MarshalMap(purchaseTxnItem{TxnID: p.TxnID, PurchaseID: p.ID})
	if err != nil {
		return entities.Purchase{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     av,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.txnTable),
				Item:                     guard,
				ConditionExpression:      aws.String("attribute_not_exists(#txnid)"),
				ExpressionAttributeNames: map[string]string{"#txnid": "txnid"},
			}},
		},
	})
	if isConditionFailed(err) {
		return entities.Purchase{}, fmt.Errorf("%w: %s", entities.ErrDuplicateTransaction, p.TxnID)
	}
	if err != nil {
		return entities.Purchase{}, err
	}
	return p, nil
}

func (r *PurchaseDynamoRepository) GetByID(ctx context.Context, id string) (entities.Purchase, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Purchase{}, err
	}
	if len(out.Item) == 0 {
		return entities.Purchase{}, nil
	}

	var it purchaseItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Purchase{}, err
	}
	return fromPurchaseItem(it)
}

func (r *PurchaseDynamoRepository) GetByTxnID(ctx context.Context, txnID string) (entities.Purchase, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.txnTable),
		Key:            stringKey("txnid", txnID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Purchase{}, err
	}
	if len(out.Item) == 0 {
		return entities.Purchase{}, nil
	}
	var guard purchaseTxnItem
	if err := attributevalue.UnmarshalMap(out.Item, &guard); err != nil {
		return entities.Purchase{}, err
	}
	return r.GetByID(ctx, guard.PurchaseID)
}

// UpdateStatus is a compare-and-set on txnstatus.
func (r *PurchaseDynamoRepository) UpdateStatus(ctx context.Context, id string, from, to entities.TxnStatus) (bool, error) {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("id", id),
		UpdateExpression:    aws.String("SET #status = :to"),
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :from"),
		ExpressionAttributeNames: map[string]string{
			"#id":     "id",
			"#status": "txnstatus",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from": &types.AttributeValueMemberS{Value: string(from)},
			":to":   &types.AttributeValueMemberS{Value: string(to)},
		},
	})
	if isConditionFailed(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func toPurchaseItem(p entities.Purchase) (purchaseItem, error) {
	doc, err := json.Marshal(p)
	if err != nil {
		return purchaseItem{}, err
	}
	return purchaseItem{
		ID:        p.ID,
		TxnID:     p.TxnID,
		TxnStatus: string(p.TxnStatus),
		Gateway:   p.Gateway,
		Email:     p.Email,
		Total:     p.Total.String(),
		Created:   formatTime(p.CreatedAt),
		Doc:       string(doc),
	}, nil
}

// fromPurchaseItem trusts the top-level txnstatus over the document; only the
// attribute is updated after creation.
func fromPurchaseItem(it purchaseItem) (entities.Purchase, error) {
	var p entities.Purchase
	if err := json.Unmarshal([]byte(it.Doc), &p); err != nil {
		return entities.Purchase{}, fmt.Errorf("decode purchase %s: %w", it.ID, err)
	}
	p.ID = it.ID
	p.TxnID = it.TxnID
	p.TxnStatus = entities.TxnStatus(it.TxnStatus)
	return p, nil
}
