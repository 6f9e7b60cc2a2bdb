package repository

import (
	"context"
	"fmt"

	"agency_configurator/internal/domain/entities"
	"agency_configurator/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type choiceItem struct {
	Value                  string `dynamodbav:"value"`
	Label                  string `dynamodbav:"label"`
	PriceAdjustment        string `dynamodbav:"price_adjustment"`
	DeliveryTimeAdjustment int    `dynamodbav:"delivery_time_adjustment"`
}

type optionItem struct {
	ID                     string       `dynamodbav:"id"`
	Label                  string       `dynamodbav:"label"`
	Type                   string       `dynamodbav:"type"`
	PriceAdjustment        string       `dynamodbav:"price_adjustment"`
	DeliveryTimeAdjustment int          `dynamodbav:"delivery_time_adjustment"`
	Choices                []choiceItem `dynamodbav:"choices,omitempty"`
}

type stepItem struct {
	ID      string       `dynamodbav:"id"`
	Title   string       `dynamodbav:"title"`
	Options []optionItem `dynamodbav:"options"`
}

type serviceItem struct {
	ID                   string     `dynamodbav:"id"`
	Name                 string     `dynamodbav:"name"`
	Category             string     `dynamodbav:"category"`
	Description          string     `dynamodbav:"description,omitempty"`
	BasePrice            string     `dynamodbav:"base_price"`
	DeliveryTimeBaseDays int        `dynamodbav:"delivery_time_base_days"`
	Steps                []stepItem `dynamodbav:"steps"`
	Status               string     `dynamodbav:"status"`
	CreatedAt            string     `dynamodbav:"created_at"`
	UpdatedAt            string     `dynamodbav:"updated_at"`
}

// ServiceDynamoRepository persists catalog services in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Steps are stored inline as a list of maps so a service is read in one GetItem.

type ServiceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IServiceRepository = (*ServiceDynamoRepository)(nil)

func NewServiceDynamoRepository(ddb *dynamodb.Client, tableName string) *ServiceDynamoRepository {
	return &ServiceDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ServiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Service, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Service{}, err
	}
	if len(out.Item) == 0 {
		return entities.Service{}, nil
	}
	return unmarshalService(out.Item)
}

func (r *ServiceDynamoRepository) List(ctx context.Context) ([]entities.Service, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})

	var items []entities.Service
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			s, err := unmarshalService(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, s)
		}
	}
	return items, nil
}

// Save creates or replaces the whole service definition.
func (r *ServiceDynamoRepository) Save(ctx context.Context, s entities.Service) (entities.Service, error) {
	av, err := attributevalue.MarshalMap(toServiceItem(s))
	if err != nil {
		return entities.Service{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.Service{}, err
	}
	return s, nil
}

func (r *ServiceDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.ServiceStatus) (entities.Service, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
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
		if isConditionalCheckFailed(err) {
			return entities.Service{}, nil
		}
		return entities.Service{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Service{}, nil
	}
	return unmarshalService(out.Attributes)
}

func unmarshalService(raw map[string]types.AttributeValue) (entities.Service, error) {
	var it serviceItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Service{}, err
	}
	return fromServiceItem(it)
}

func toServiceItem(s entities.Service) serviceItem {
	steps := make([]stepItem, 0, len(s.Steps))
	for _, step := range s.Steps {
		opts := make([]optionItem, 0, len(step.Options))
		for _, o := range step.Options {
			var choices []choiceItem
			for _, c := range o.Choices {
				choices = append(choices, choiceItem{
					Value:                  c.Value,
					Label:                  c.Label,
					PriceAdjustment:        decimalToString(c.PriceAdjustment),
					DeliveryTimeAdjustment: c.DeliveryTimeAdjustment,
				})
			}
			opts = append(opts, optionItem{
				ID:                     o.ID,
				Label:                  o.Label,
				Type:                   string(o.Type),
				PriceAdjustment:        decimalToString(o.PriceAdjustment),
				DeliveryTimeAdjustment: o.DeliveryTimeAdjustment,
				Choices:                choices,
			})
		}
		steps = append(steps, stepItem{ID: step.ID, Title: step.Title, Options: opts})
	}

	return serviceItem{
		ID:                   s.ID,
		Name:                 s.Name,
		Category:             s.Category,
		Description:          s.Description,
		BasePrice:            decimalToString(s.BasePrice),
		DeliveryTimeBaseDays: s.DeliveryTimeBaseDays,
		Steps:                steps,
		Status:               string(s.Status),
		CreatedAt:            formatTime(s.CreatedAt),
		UpdatedAt:            formatTime(s.UpdatedAt),
	}
}

func fromServiceItem(it serviceItem) (entities.Service, error) {
	base, err := parseDecimal("base_price", it.BasePrice)
	if err != nil {
		return entities.Service{}, err
	}

	steps := make([]entities.ConfigStep, 0, len(it.Steps))
	for _, si := range it.Steps {
		opts := make([]entities.ConfigOption, 0, len(si.Options))
		for _, oi := range si.Options {
			adj, err := parseDecimal("price_adjustment", oi.PriceAdjustment)
			if err != nil {
				return entities.Service{}, fmt.Errorf("option %s: %w", oi.ID, err)
			}
			var choices []entities.Choice
			for _, ci := range oi.Choices {
				cadj, err := parseDecimal("price_adjustment", ci.PriceAdjustment)
				if err != nil {
					return entities.Service{}, fmt.Errorf("option %s choice %s: %w", oi.ID, ci.Value, err)
				}
				choices = append(choices, entities.Choice{
					Value:                  ci.Value,
					Label:                  ci.Label,
					PriceAdjustment:        cadj,
					DeliveryTimeAdjustment: ci.DeliveryTimeAdjustment,
				})
			}
			opts = append(opts, entities.ConfigOption{
				ID:                     oi.ID,
				Label:                  oi.Label,
				Type:                   entities.OptionType(oi.Type),
				PriceAdjustment:        adj,
				DeliveryTimeAdjustment: oi.DeliveryTimeAdjustment,
				Choices:                choices,
			})
		}
		steps = append(steps, entities.ConfigStep{ID: si.ID, Title: si.Title, Options: opts})
	}

	return entities.Service{
		ID:                   it.ID,
		Name:                 it.Name,
		Category:             it.Category,
		Description:          it.Description,
		BasePrice:            base,
		DeliveryTimeBaseDays: it.DeliveryTimeBaseDays,
		Steps:                steps,
		Status:               entities.ServiceStatus(it.Status),
		CreatedAt:            parseTime(it.CreatedAt),
		UpdatedAt:            parseTime(it.UpdatedAt),
	}, nil
}
