package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"memehub-backend/application/ports"
	"memehub-backend/domain/core/entities"
	pkgerrors "memehub-backend/pkg/errors"
)

// CategoryRepository implements ports.CategoryRepository on DynamoDB
type CategoryRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewCategoryRepository creates a new DynamoDB category repository
func NewCategoryRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.CategoryRepository {
	return &CategoryRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// categoryItem is the DynamoDB item structure for a keyword category
type categoryItem struct {
	PK          string `dynamodbav:"PK"`
	SK          string `dynamodbav:"SK"`
	GSI1PK      string `dynamodbav:"GSI1PK"`
	GSI1SK      string `dynamodbav:"GSI1SK"`
	EntityType  string `dynamodbav:"EntityType"`
	Name        string `dynamodbav:"Name"`
	IsRecommend bool   `dynamodbav:"IsRecommend"`
	IsDeleted   bool   `dynamodbav:"IsDeleted"`
	CreatedAt   string `dynamodbav:"CreatedAt"`
	UpdatedAt   string `dynamodbav:"UpdatedAt"`
}

// Save persists a category
func (r *CategoryRepository) Save(ctx context.Context, category *entities.KeywordCategory) error {
	item := categoryItem{
		PK:          categoryPK(category.Name()),
		SK:          skMetadata,
		GSI1PK:      gsi1Category,
		GSI1SK:      keywordGSI1SK(category.Name()),
		EntityType:  "CATEGORY",
		Name:        category.Name(),
		IsRecommend: category.IsRecommend(),
		IsDeleted:   category.IsDeleted(),
		CreatedAt:   category.CreatedAt().Format(time.RFC3339Nano),
		UpdatedAt:   category.UpdatedAt().Format(time.RFC3339Nano),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal category", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("save category", err)
	}
	return nil
}

// FindByName returns a category in any state; NotFound if never created.
// Callers decide what a soft-deleted category means for them.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*entities.KeywordCategory, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: categoryPK(name)},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get category", err)
	}
	if out.Item == nil {
		return nil, pkgerrors.NewNotFoundError("category")
	}

	var item categoryItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal category", err)
	}
	return itemToCategory(&item), nil
}

// FindAll returns every category, deleted ones included
func (r *CategoryRepository) FindAll(ctx context.Context) ([]*entities.KeywordCategory, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("GSI1PK").Equal(expression.Value(gsi1Category))).
		Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build category query", err)
	}

	categories := make([]*entities.KeywordCategory, 0)
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(r.indexName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query categories", err)
		}

		for _, raw := range out.Items {
			var item categoryItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, pkgerrors.NewDatabaseError("unmarshal category", err)
			}
			categories = append(categories, itemToCategory(&item))
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return categories, nil
}

// Delete soft-deletes a category
func (r *CategoryRepository) Delete(ctx context.Context, name string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: categoryPK(name)},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
		UpdateExpression:    aws.String("SET IsDeleted = :true, UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(PK) AND IsDeleted = :false"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true":  &types.AttributeValueMemberBOOL{Value: true},
			":false": &types.AttributeValueMemberBOOL{Value: false},
			":now":   &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return pkgerrors.NewNotFoundError("category")
		}
		return pkgerrors.NewDatabaseError("delete category", err)
	}
	return nil
}

func itemToCategory(item *categoryItem) *entities.KeywordCategory {
	createdAt, _ := time.Parse(time.RFC3339Nano, item.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, item.UpdatedAt)
	return entities.ReconstructKeywordCategory(item.Name, item.IsRecommend, item.IsDeleted, createdAt, updatedAt)
}
