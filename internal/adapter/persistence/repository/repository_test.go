package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"order_ledger/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

func TestPurchaseDynamoRepository(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDynamo()
	repo := NewPurchaseDynamoRepository(ddb)

	p := entities.Purchase{
		TxnID:     "txn-1",
		TxnStatus: entities.TxnStatusAuthed,
		Gateway:   "http",
		Email:     "ada@example.com",
		Total:     decimal.RequireFromString("50.00"),
		Items:     []entities.PurchasedItem{{ProductID: "shirt", Quantity: 2, Total: decimal.RequireFromString("50.00")}},
	}
	created, err := repo.Create(ctx, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp, got %+v", created)
	}

	t.Run("duplicate txnid", func(t *testing.T) {
		_, err := repo.Create(ctx, p)
		if !errors.Is(err, entities.ErrDuplicateTransaction) {
			t.Fatalf("expected ErrDuplicateTransaction, got %v", err)
		}
	})

	t.Run("lookups", func(t *testing.T) {
		byTxn, err := repo.GetByTxnID(ctx, "txn-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if byTxn.ID != created.ID || !byTxn.Total.Equal(decimal.RequireFromString("50")) || byTxn.Items[0].Quantity != 2 {
			t.Fatalf("unexpected purchase: %+v", byTxn)
		}
		missing, err := repo.GetByTxnID(ctx, "nope")
		if err != nil || missing.ID != "" {
			t.Fatalf("expected zero purchase, got %+v %v", missing, err)
		}
		missing, err = repo.GetByID(ctx, "nope")
		if err != nil || missing.ID != "" {
			t.Fatalf("expected zero purchase, got %+v %v", missing, err)
		}
	})

	t.Run("update status", func(t *testing.T) {
		ok, err := repo.UpdateStatus(ctx, created.ID, entities.TxnStatusAuthed, entities.TxnStatusCharged)
		if err != nil || !ok {
			t.Fatalf("expected update, got %v %v", ok, err)
		}
		in := ddb.updates[len(ddb.updates)-1]
		if in.ExpressionAttributeValues[":from"].(*types.AttributeValueMemberS).Value != "AUTHED" {
			t.Fatalf("expected compare on AUTHED, got %+v", in.ExpressionAttributeValues)
		}

		ddb.updateErr = &types.ConditionalCheckFailedException{}
		ok, err = repo.UpdateStatus(ctx, created.ID, entities.TxnStatusAuthed, entities.TxnStatusVoided)
		if err != nil || ok {
			t.Fatalf("expected stale status to be skipped, got %v %v", ok, err)
		}
		ddb.updateErr = nil
	})
}

func TestOrderEventDynamoRepository(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDynamo()
	repo := NewOrderEventDynamoRepository(ddb)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	captured := entities.OrderEvent{
		ID: "e2", Type: entities.EventCaptured, PurchaseID: "p1", TxnID: "txn-1", Gateway: "http",
		Amount: decimal.RequireFromString("50"), Fields: map[string]string{"fees": "1.75"}, CreatedAt: base.Add(time.Second),
	}

	t.Run("transactional events are unique", func(t *testing.T) {
		if _, err := repo.Create(ctx, captured); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		dup := captured
		dup.ID = "e3"
		if _, err := repo.Create(ctx, dup); !errors.Is(err, entities.ErrDuplicateTransaction) {
			t.Fatalf("expected ErrDuplicateTransaction, got %v", err)
		}
		found, err := repo.FindByTxn(ctx, "p1", entities.EventCaptured, "txn-1")
		if err != nil || found.ID != "e2" || found.Fees().String() != "1.75" {
			t.Fatalf("unexpected lookup: %+v %v", found, err)
		}
		missing, err := repo.FindByTxn(ctx, "p1", entities.EventRefunded, "txn-1")
		if err != nil || missing.ID != "" {
			t.Fatalf("expected zero event, got %+v %v", missing, err)
		}
	})

	t.Run("neutral events skip the key table", func(t *testing.T) {
		before := len(ddb.txs)
		capture := entities.OrderEvent{ID: "e1", Type: entities.EventCapture, PurchaseID: "p1", TxnID: "txn-1", CreatedAt: base}
		if _, err := repo.Create(ctx, capture); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		capture.ID = "e4"
		if _, err := repo.Create(ctx, capture); err != nil {
			t.Fatalf("neutral events may repeat: %v", err)
		}
		if len(ddb.txs) != before {
			t.Fatalf("expected plain puts for neutral events")
		}
	})

	t.Run("orphans are not indexed", func(t *testing.T) {
		orphan := entities.OrderEvent{ID: "e5", Type: entities.EventAuth, Amount: decimal.RequireFromString("5"), CreatedAt: base}
		if _, err := repo.Create(ctx, orphan); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := ddb.tables["order_events"]["e5"]["purchase_id"]; ok {
			t.Fatalf("orphan event must not carry a purchase_id attribute")
		}
	})

	t.Run("list pages and sorts", func(t *testing.T) {
		page1, _ := attributevalue.MarshalMap(toOrderEventItem(captured))
		first := entities.OrderEvent{ID: "e1", Type: entities.EventCapture, PurchaseID: "p1", CreatedAt: base}
		page2, _ := attributevalue.MarshalMap(toOrderEventItem(first))
		ddb.pages = []*dynamodb.QueryOutput{
			{Items: []map[string]types.AttributeValue{page1}, LastEvaluatedKey: stringKey("id", "e2")},
			{Items: []map[string]types.AttributeValue{page2}},
		}
		events, err := repo.ListByPurchase(ctx, "p1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(events) != 2 || events[0].ID != "e1" || events[1].ID != "e2" {
			t.Fatalf("unexpected events: %+v", events)
		}
		if !events[1].Amount.Equal(decimal.RequireFromString("50")) || !events[1].CreatedAt.Equal(captured.CreatedAt) {
			t.Fatalf("unexpected round trip: %+v", events[1])
		}
		if len(ddb.queries) != 2 || ddb.queries[1].ExclusiveStartKey == nil {
			t.Fatalf("expected a second page query")
		}
	})
}

func TestCustomerDynamoRepository(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDynamo()
	repo := NewCustomerDynamoRepository(ddb)

	c, err := repo.Save(ctx, entities.Customer{FirstName: "Ada", Email: " Ada@Example.com "})
	if err != nil || c.ID == "" {
		t.Fatalf("unexpected save: %+v %v", c, err)
	}
	stored := ddb.tables["customers"][c.ID]
	if stored["email"].(*types.AttributeValueMemberS).Value != "ada@example.com" {
		t.Fatalf("expected normalized email, got %+v", stored["email"])
	}

	ddb.pages = []*dynamodb.QueryOutput{{Items: []map[string]types.AttributeValue{stored}}}
	got, err := repo.GetByEmail(ctx, "ADA@example.com")
	if err != nil || got.ID != c.ID {
		t.Fatalf("unexpected lookup: %+v %v", got, err)
	}
	if v := ddb.queries[0].ExpressionAttributeValues[":email"].(*types.AttributeValueMemberS).Value; v != "ada@example.com" {
		t.Fatalf("expected lowercase query, got %s", v)
	}
	none, err := repo.GetByEmail(ctx, "nobody@example.com")
	if err != nil || none.ID != "" {
		t.Fatalf("expected zero customer, got %+v %v", none, err)
	}

	addr := entities.BillingAddress{Card: "1111", CardType: "Visa", CVV: "123"}
	addr.CustomerID = c.ID
	addr.City = "London"
	saved, err := repo.SaveAddress(ctx, "billing", addr)
	if err != nil || saved.CVV != "" {
		t.Fatalf("unexpected address: %+v %v", saved, err)
	}
	item := ddb.tables["addresses"][saved.ID]
	if _, ok := item["cvv"]; ok {
		t.Fatalf("cvv must never be stored")
	}
	if item["kind"].(*types.AttributeValueMemberS).Value != "billing" {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestCatalogDynamoRepository(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDynamo()
	repo := NewCatalogDynamoRepository(ddb)

	applied, err := repo.ApplySold(ctx, "p1:sold", map[string]int{"shirt": 2, "hat": 1}, 1)
	if err != nil || !applied {
		t.Fatalf("expected first apply, got %v %v", applied, err)
	}
	tx := ddb.txs[0]
	if len(tx.TransactItems) != 3 || keyID(tx.TransactItems[1].Update.Key) != "hat" {
		t.Fatalf("unexpected transaction: %+v", tx.TransactItems)
	}
	if n := tx.TransactItems[2].Update.ExpressionAttributeValues[":n"].(*types.AttributeValueMemberN).Value; n != "2" {
		t.Fatalf("expected shirt +2, got %s", n)
	}

	applied, err = repo.ApplySold(ctx, "p1:sold", map[string]int{"shirt": 2}, 1)
	if err != nil || applied {
		t.Fatalf("expected repeated key to be skipped, got %v %v", applied, err)
	}

	if err := repo.Decrement(ctx, "price-1", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v := ddb.updates[0].ExpressionAttributeValues[":neg"].(*types.AttributeValueMemberN).Value; v != "-3" {
		t.Fatalf("expected -3, got %s", v)
	}

	ddb.updateHook = func(in *dynamodb.UpdateItemInput) error {
		if keyID(in.Key) == "bad" {
			return errors.New("throttled")
		}
		return nil
	}
	if err := repo.MarkUsed(ctx, []string{"promo-1", "bad", "promo-2"}); err == nil {
		t.Fatalf("expected error")
	}
	if len(ddb.updates) != 3 {
		t.Fatalf("expected MarkUsed to stop at the failing promotion, got %d updates", len(ddb.updates))
	}
}

func TestCatalogDynamoRepository_ApplySoldChunks(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDynamo()
	repo := NewCatalogDynamoRepository(ddb)

	quantities := make(map[string]int, 150)
	for i := 0; i < 150; i++ {
		quantities[fmt.Sprintf("prod-%03d", i)] = 1
	}

	applied, err := repo.ApplySold(ctx, "big:sold", quantities, 1)
	if err != nil || !applied {
		t.Fatalf("expected apply, got %v %v", applied, err)
	}
	if len(ddb.txs) != 2 {
		t.Fatalf("expected two transactions, got %d", len(ddb.txs))
	}
	first, second := ddb.txs[0].TransactItems, ddb.txs[1].TransactItems
	if len(first) != 100 || len(second) != 52 {
		t.Fatalf("expected 100 and 52 actions, got %d and %d", len(first), len(second))
	}
	if keyID(first[99].Update.Key) != "prod-098" || keyID(second[1].Update.Key) != "prod-099" || keyID(second[51].Update.Key) != "prod-149" {
		t.Fatalf("expected products split in order")
	}
	if _, ok := ddb.tables["applied_updates"]["big:sold"]; !ok {
		t.Fatalf("expected first marker stored")
	}
	if _, ok := ddb.tables["applied_updates"]["big:sold#2"]; !ok {
		t.Fatalf("expected second marker stored")
	}

	applied, err = repo.ApplySold(ctx, "big:sold", quantities, 1)
	if err != nil || applied {
		t.Fatalf("expected repeated key to be skipped, got %v %v", applied, err)
	}

	delete(ddb.tables["applied_updates"], "big:sold#2")
	applied, err = repo.ApplySold(ctx, "big:sold", quantities, 1)
	if err != nil || !applied {
		t.Fatalf("expected retry to complete the missing chunk, got %v %v", applied, err)
	}
	if _, ok := ddb.tables["applied_updates"]["big:sold#2"]; !ok {
		t.Fatalf("expected second marker restored")
	}
}

// keyID reads the id of a single-attribute key.
func keyID(key map[string]types.AttributeValue) string {
	return key["id"].(*types.AttributeValueMemberS).Value
}
