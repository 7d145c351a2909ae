package repository

import (
	"context"
	"strings"
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
	defaultCustomersTableName = "customers"
	defaultAddressesTableName = "addresses"
	customersEmailIndex       = "email-index"
)

type customerItem struct {
	ID        string            `dynamodbav:"id"`
	Email     string            `dynamodbav:"email"`
	FirstName string            `dynamodbav:"firstname"`
	LastName  string            `dynamodbav:"lastname"`
	Phone     string            `dynamodbav:"phone,omitempty"`
	Company   string            `dynamodbav:"company,omitempty"`
	LoginName string            `dynamodbav:"loginname,omitempty"`
	Password  string            `dynamodbav:"password_hash,omitempty"`
	WPUser    string            `dynamodbav:"wpuser,omitempty"`
	Marketing bool              `dynamodbav:"marketing"`
	Info      map[string]string `dynamodbav:"info,omitempty"`
	Updated   string            `dynamodbav:"updated"`
}

// addressItem has no cvv attribute; card holds the truncated number only.
type addressItem struct {
	ID          string `dynamodbav:"id"`
	CustomerID  string `dynamodbav:"customer_id,omitempty"`
	Kind        string `dynamodbav:"kind"`
	Name        string `dynamodbav:"name,omitempty"`
	Address     string `dynamodbav:"address"`
	Address2    string `dynamodbav:"xaddress,omitempty"`
	City        string `dynamodbav:"city"`
	State       string `dynamodbav:"state"`
	Country     string `dynamodbav:"country"`
	Postcode    string `dynamodbav:"postcode"`
	Card        string `dynamodbav:"card,omitempty"`
	CardType    string `dynamodbav:"cardtype,omitempty"`
	CardExpires string `dynamodbav:"cardexpires,omitempty"`
	CardHolder  string `dynamodbav:"cardholder,omitempty"`
}

// CustomerDynamoRepository persists customers and their addresses.
//
// Table requirements:
//   - customers, PK: id, GSI email-index (PK: email)
//   - addresses, PK: id
type CustomerDynamoRepository struct {
	ddb            database.DynamoAPI
	tableName      string
	addressesTable string
}

var _ interfaces.ICustomerRepository = (*CustomerDynamoRepository)(nil)

func NewCustomerDynamoRepository(ddb database.DynamoAPI) *CustomerDynamoRepository {
	return &CustomerDynamoRepository{
		ddb:            ddb,
		tableName:      getenvDefault("CUSTOMERS_TABLE", defaultCustomersTableName),
		addressesTable: getenvDefault("ADDRESSES_TABLE", defaultAddressesTableName),
	}
}

func (r *CustomerDynamoRepository) GetByEmail(ctx context.Context, email string) (entities.Customer, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(customersEmailIndex),
		KeyConditionExpression: aws.String("email = :email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: strings.ToLower(strings.TrimSpace(email))},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Customer{}, err
	}
	if len(out.Items) == 0 {
		return entities.Customer{}, nil
	}
	var it customerItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Customer{}, err
	}
	return fromCustomerItem(it), nil
}

func (r *CustomerDynamoRepository) Save(ctx context.Context, c entities.Customer) (entities.Customer, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	av, err := attributevalue.MarshalMap(toCustomerItem(c))
	if err != nil {
		return entities.Customer{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.Customer{}, err
	}
	return c, nil
}

func (r *CustomerDynamoRepository) SaveAddress(ctx context.Context, kind string, a entities.BillingAddress) (entities.BillingAddress, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CVV = ""
	it := addressItem{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		Kind:       kind,
		Name:       a.Name,
		Address:    a.Address.Address,
		Address2:   a.Address2,
		City:       a.City,
		State:      a.State,
		Country:    a.Country,
		Postcode:   a.Postcode,
		Card:       a.Card,
		CardType:   a.CardType,
		CardHolder: a.CardHolder,
	}
	if !a.CardExpires.IsZero() {
		it.CardExpires = a.CardExpires.UTC().Format(time.DateOnly)
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.BillingAddress{}, err
	}
	if _, err := r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.addressesTable),
		Item:      av,
	}); err != nil {
		return entities.BillingAddress{}, err
	}
	return a, nil
}

func toCustomerItem(c entities.Customer) customerItem {
	return customerItem{
		ID:        c.ID,
		Email:     strings.ToLower(strings.TrimSpace(c.Email)),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Company:   c.Company,
		LoginName: c.LoginName,
		Password:  c.Password,
		WPUser:    c.WPUser,
		Marketing: c.Marketing,
		Info:      c.Info,
		Updated:   formatTime(time.Now()),
	}
}

func fromCustomerItem(it customerItem) entities.Customer {
	return entities.Customer{
		ID:        it.ID,
		FirstName: it.FirstName,
		LastName:  it.LastName,
		Email:     it.Email,
		Phone:     it.Phone,
		Company:   it.Company,
		LoginName: it.LoginName,
		Password:  it.Password,
		WPUser:    it.WPUser,
		Marketing: it.Marketing,
		Info:      it.Info,
	}
}
