package repository

import (
	"context"
	"fmt"
	"strings"

	"agency_configurator/internal/domain/entities"
	"agency_configurator/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const ordersContactEmailIndex = "contact_email-index"

type contactItem struct {
	Name    string `dynamodbav:"name"`
	Email   string `dynamodbav:"email"`
	Phone   string `dynamodbav:"phone,omitempty"`
	Company string `dynamodbav:"company,omitempty"`
	Message string `dynamodbav:"message,omitempty"`
}

type orderItem struct {
	ID               string         `dynamodbav:"id"`
	ServiceID        string         `dynamodbav:"service_id"`
	Configuration    map[string]any `dynamodbav:"configuration"`
	Contact          contactItem    `dynamodbav:"contact"`
	ContactEmail     string         `dynamodbav:"contact_email"`
	TotalPrice       string         `dynamodbav:"total_price"`
	DeliveryTimeDays int            `dynamodbav:"delivery_time_days"`
	Currency         string         `dynamodbav:"currency"`
	Status           string         `dynamodbav:"status"`
	CreatedAt        string         `dynamodbav:"created_at"`
	UpdatedAt        string         `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: contact_email-index (PK: contact_email)

type OrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client, tableName string) *OrderDynamoRepository {
	return &OrderDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Order{}, wrapConditional(err, interfaces.ErrAlreadyExists)
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}
	return unmarshalOrder(out.Item)
}

func (r *OrderDynamoRepository) ListByContactEmail(ctx context.Context, email string) ([]entities.Order, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ordersContactEmailIndex),
		KeyConditionExpression: aws.String("contact_email = :email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: normalizeEmail(email)},
		},
	})

	items := make([]entities.Order, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			o, err := unmarshalOrder(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, o)
		}
	}
	return items, nil
}

// UpdateStatus only writes when the stored status still equals expected.
func (r *OrderDynamoRepository) UpdateStatus(ctx context.Context, id string, expected, next entities.OrderStatus) (entities.Order, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :expected"),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected":   &types.AttributeValueMemberS{Value: string(expected)},
			":status":     &types.AttributeValueMemberS{Value: string(next)},
			":updated_at": &types.AttributeValueMemberS{Value: nowString()},
		},
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.Order{}, wrapConditional(err, interfaces.ErrConditionFailed)
	}
	if len(out.Attributes) == 0 {
		return entities.Order{}, nil
	}
	return unmarshalOrder(out.Attributes)
}

func unmarshalOrder(raw map[string]types.AttributeValue) (entities.Order, error) {
	var it orderItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toOrderItem(o entities.Order) orderItem {
	return orderItem{
		ID:            o.ID,
		ServiceID:     o.ServiceID,
		Configuration: o.Configuration.ToMap(),
		Contact: contactItem{
			Name:    o.ContactInfo.Name,
			Email:   o.ContactInfo.Email,
			Phone:   o.ContactInfo.Phone,
			Company: o.ContactInfo.Company,
			Message: o.ContactInfo.Message,
		},
		ContactEmail:     normalizeEmail(o.ContactInfo.Email),
		TotalPrice:       decimalToString(o.TotalPrice),
		DeliveryTimeDays: o.DeliveryTimeDays,
		Currency:         o.Currency,
		Status:           string(o.Status),
		CreatedAt:        formatTime(o.CreatedAt),
		UpdatedAt:        formatTime(o.UpdatedAt),
	}
}

func fromOrderItem(it orderItem) (entities.Order, error) {
	total, err := parseDecimal("total_price", it.TotalPrice)
	if err != nil {
		return entities.Order{}, err
	}
	cfg, err := entities.ConfigurationFromMap(it.Configuration)
	if err != nil {
		return entities.Order{}, fmt.Errorf("order %s configuration: %w", it.ID, err)
	}

	return entities.Order{
		ID:            it.ID,
		ServiceID:     it.ServiceID,
		Configuration: cfg,
		ContactInfo: entities.ContactInfo{
			Name:    it.Contact.Name,
			Email:   it.Contact.Email,
			Phone:   it.Contact.Phone,
			Company: it.Contact.Company,
			Message: it.Contact.Message,
		},
		TotalPrice:       total,
		DeliveryTimeDays: it.DeliveryTimeDays,
		Currency:         it.Currency,
		Status:           entities.OrderStatus(it.Status),
		CreatedAt:        parseTime(it.CreatedAt),
		UpdatedAt:        parseTime(it.UpdatedAt),
	}, nil
}
