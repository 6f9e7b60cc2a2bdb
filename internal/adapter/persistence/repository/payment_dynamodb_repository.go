package repository

import (
	"context"

	"agency_configurator/internal/domain/entities"
	"agency_configurator/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const paymentsOrderIDIndex = "order_id-index"

type paymentItem struct {
	ID                 string `dynamodbav:"id"`
	OrderID            string `dynamodbav:"order_id"`
	Amount             string `dynamodbav:"amount"`
	Currency           string `dynamodbav:"currency"`
	ClientHandle       string `dynamodbav:"client_handle"`
	CheckoutURL        string `dynamodbav:"checkout_url,omitempty"`
	Status             string `dynamodbav:"status"`
	ProviderPaymentID  string `dynamodbav:"provider_payment_id,omitempty"`
	ProviderPayloadRaw string `dynamodbav:"provider_payload_raw,omitempty"`
	CreatedAt          string `dynamodbav:"created_at"`
	UpdatedAt          string `dynamodbav:"updated_at"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_id-index (PK: order_id)

type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client, tableName string) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
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
		return entities.Payment{}, wrapConditional(err, interfaces.ErrAlreadyExists)
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}
	return unmarshalPayment(out.Item)
}

func (r *PaymentDynamoRepository) ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsOrderIDIndex),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: orderID},
		},
	})

	items := make([]entities.Payment, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			pay, err := unmarshalPayment(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, pay)
		}
	}
	return items, nil
}

// Update records the provider outcome. It only applies to a pending payment.
func (r *PaymentDynamoRepository) Update(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	updatedAt := formatTime(p.UpdatedAt)
	if updatedAt == "" {
		updatedAt = nowString()
	}
	values := map[string]types.AttributeValue{
		":status":     &types.AttributeValueMemberS{Value: string(p.Status)},
		":pending":    &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPending)},
		":updated_at": &types.AttributeValueMemberS{Value: updatedAt},
	}
	names := map[string]string{
		"#status":     "status",
		"#updated_at": "updated_at",
	}
	expr := "SET #status = :status, #updated_at = :updated_at"
	if p.ProviderPaymentID != "" {
		expr += ", #provider_payment_id = :provider_payment_id"
		values[":provider_payment_id"] = &types.AttributeValueMemberS{Value: p.ProviderPaymentID}
		names["#provider_payment_id"] = "provider_payment_id"
	}
	if len(p.ProviderPayloadRaw) > 0 {
		expr += ", #provider_payload_raw = :provider_payload_raw"
		values[":provider_payload_raw"] = &types.AttributeValueMemberS{Value: string(p.ProviderPayloadRaw)}
		names["#provider_payload_raw"] = "provider_payload_raw"
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: p.ID},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :pending"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.Payment{}, wrapConditional(err, interfaces.ErrConditionFailed)
	}
	if len(out.Attributes) == 0 {
		return entities.Payment{}, nil
	}
	return unmarshalPayment(out.Attributes)
}

func unmarshalPayment(raw map[string]types.AttributeValue) (entities.Payment, error) {
	var it paymentItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it)
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                 p.ID,
		OrderID:            p.OrderID,
		Amount:             decimalToString(p.Amount),
		Currency:           p.Currency,
		ClientHandle:       p.ClientHandle,
		CheckoutURL:        p.CheckoutURL,
		Status:             string(p.Status),
		ProviderPaymentID:  p.ProviderPaymentID,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
		CreatedAt:          formatTime(p.CreatedAt),
		UpdatedAt:          formatTime(p.UpdatedAt),
	}
}

func fromPaymentItem(it paymentItem) (entities.Payment, error) {
	amount, err := parseDecimal("amount", it.Amount)
	if err != nil {
		return entities.Payment{}, err
	}
	p := entities.Payment{
		ID:                it.ID,
		OrderID:           it.OrderID,
		Amount:            amount,
		Currency:          it.Currency,
		ClientHandle:      it.ClientHandle,
		CheckoutURL:       it.CheckoutURL,
		Status:            entities.PaymentStatus(it.Status),
		ProviderPaymentID: it.ProviderPaymentID,
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
	}
	if it.ProviderPayloadRaw != "" {
		p.ProviderPayloadRaw = []byte(it.ProviderPayloadRaw)
	}
	return p, nil
}
