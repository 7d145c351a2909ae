package repository

import (
	"context"
	"sort"
	"strconv"

	"order_ledger/internal/infrastructure/database"
	"order_ledger/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultProductsTableName       = "products"
	defaultAppliedUpdatesTableName = "applied_updates"
	defaultPricesTableName         = "prices"
	defaultPromotionsTableName     = "promotions"

	// A transaction holds at most 100 actions; one is the applied marker.
	maxSoldProducts = 99
)

type appliedUpdateItem struct {
	Key string `dynamodbav:"update_key"`
}

// CatalogDynamoRepository keeps the counters catalog entities carry for orders:
// product sales, price stock and promotion usage.
//
// Table requirements:
//   - products, PK: id (sold: N)
//   - applied_updates, PK: update_key
//   - prices, PK: id (stock: N, sold: N)
//   - promotions, PK: id (used: N)
type CatalogDynamoRepository struct {
	ddb             database.DynamoAPI
	productsTable   string
	appliedTable    string
	pricesTable     string
	promotionsTable string
}

var (
	_ interfaces.IProductStatsRepository = (*CatalogDynamoRepository)(nil)
	_ interfaces.IInventoryRepository    = (*CatalogDynamoRepository)(nil)
	_ interfaces.IPromotionRepository    = (*CatalogDynamoRepository)(nil)
)

func NewCatalogDynamoRepository(ddb database.DynamoAPI) *CatalogDynamoRepository {
	return &CatalogDynamoRepository{
		ddb:             ddb,
		productsTable:   getenvDefault("PRODUCTS_TABLE", defaultProductsTableName),
		appliedTable:    getenvDefault("APPLIED_UPDATES_TABLE", defaultAppliedUpdatesTableName),
		pricesTable:     getenvDefault("PRICES_TABLE", defaultPricesTableName),
		promotionsTable: getenvDefault("PROMOTIONS_TABLE", defaultPromotionsTableName),
	}
}

// ApplySold writes the applied marker and the product counters in one
// transaction, so a key is counted exactly once. Orders with more products
// than a transaction holds are split into chunks, each guarded by its own
// marker, and a retry completes only the chunks still missing.
func (r *CatalogDynamoRepository) ApplySold(ctx context.Context, key string, quantities map[string]int, delta int) (bool, error) {
	ids := make([]string, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	applied := false
	for chunk := 0; chunk == 0 || chunk*maxSoldProducts < len(ids); chunk++ {
		lo := chunk * maxSoldProducts
		hi := min(lo+maxSoldProducts, len(ids))
		marker := key
		if chunk > 0 {
			marker = key + "#" + strconv.Itoa(chunk+1)
		}
		ok, err := r.applySoldChunk(ctx, marker, ids[lo:hi], quantities, delta)
		if err != nil {
			return applied, err
		}
		applied = applied || ok
	}
	return applied, nil
}

func (r *CatalogDynamoRepository) applySoldChunk(ctx context.Context, key string, ids []string, quantities map[string]int, delta int) (bool, error) {
	marker, err := attributevalue.MarshalMap(appliedUpdateItem{Key: key})
	if err != nil {
		return false, err
	}
	actions := []types.TransactWriteItem{{Put: &types.Put{
		TableName:                aws.String(r.appliedTable),
		Item:                     marker,
		ConditionExpression:      aws.String("attribute_not_exists(#key)"),
		ExpressionAttributeNames: map[string]string{"#key": "update_key"},
	}}}
	for _, id := range ids {
		actions = append(actions, types.TransactWriteItem{Update: &types.Update{
			TableName:        aws.String(r.productsTable),
			Key:              stringKey("id", id),
			UpdateExpression: aws.String("ADD sold :n"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":n": &types.AttributeValueMemberN{Value: strconv.Itoa(quantities[id] * delta)},
			},
		}})
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: actions})
	if isConditionFailed(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *CatalogDynamoRepository) Decrement(ctx context.Context, priceID string, quantity int) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.pricesTable),
		Key:              stringKey("id", priceID),
		UpdateExpression: aws.String("ADD stock :neg, sold :q"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":neg": &types.AttributeValueMemberN{Value: strconv.Itoa(-quantity)},
			":q":   &types.AttributeValueMemberN{Value: strconv.Itoa(quantity)},
		},
	})
	return err
}

func (r *CatalogDynamoRepository) MarkUsed(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:        aws.String(r.promotionsTable),
			Key:              stringKey("id", id),
			UpdateExpression: aws.String("ADD used :one"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":one": &types.AttributeValueMemberN{Value: "1"},
			},
		}); err != nil {
			return err
		}
	}
	return nil
}
