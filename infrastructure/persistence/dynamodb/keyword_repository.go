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
	"memehub-backend/domain/core/valueobjects"
	pkgerrors "memehub-backend/pkg/errors"
)

// KeywordRepository implements ports.KeywordRepository on DynamoDB
type KeywordRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewKeywordRepository creates a new DynamoDB keyword repository
func NewKeywordRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.KeywordRepository {
	return &KeywordRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// keywordItem is the DynamoDB item structure for a keyword
type keywordItem struct {
	PK          string `dynamodbav:"PK"`
	SK          string `dynamodbav:"SK"`
	GSI1PK      string `dynamodbav:"GSI1PK"`
	GSI1SK      string `dynamodbav:"GSI1SK"`
	EntityType  string `dynamodbav:"EntityType"`
	KeywordID   string `dynamodbav:"KeywordID"`
	Name        string `dynamodbav:"Name"`
	SearchCount int    `dynamodbav:"SearchCount"`
	Category    string `dynamodbav:"Category"`
	IsDeleted   bool   `dynamodbav:"IsDeleted"`
	CreatedAt   string `dynamodbav:"CreatedAt"`
	UpdatedAt   string `dynamodbav:"UpdatedAt"`
}

// Save persists a keyword
func (r *KeywordRepository) Save(ctx context.Context, keyword *entities.Keyword) error {
	item := keywordItem{
		PK:          keywordPK(keyword.ID().String()),
		SK:          skMetadata,
		GSI1PK:      gsi1Keyword,
		GSI1SK:      keywordGSI1SK(keyword.Name()),
		EntityType:  "KEYWORD",
		KeywordID:   keyword.ID().String(),
		Name:        keyword.Name(),
		SearchCount: keyword.SearchCount(),
		Category:    keyword.Category(),
		IsDeleted:   keyword.IsDeleted(),
		CreatedAt:   keyword.CreatedAt().Format(time.RFC3339Nano),
		UpdatedAt:   keyword.UpdatedAt().Format(time.RFC3339Nano),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal keyword", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("save keyword", err)
	}
	return nil
}

// FindByID returns an active keyword
func (r *KeywordRepository) FindByID(ctx context.Context, id valueobjects.KeywordID) (*entities.Keyword, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: keywordPK(id.String())},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get keyword", err)
	}
	if out.Item == nil {
		return nil, pkgerrors.NewNotFoundError("keyword")
	}

	var item keywordItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal keyword", err)
	}
	if item.IsDeleted {
		return nil, pkgerrors.NewNotFoundError("keyword")
	}
	return itemToKeyword(&item)
}

// FindByIDs batch-resolves keywords, skipping absent or deleted ones
func (r *KeywordRepository) FindByIDs(ctx context.Context, ids []valueobjects.KeywordID) ([]*entities.Keyword, error) {
	keywords := make([]*entities.Keyword, 0, len(ids))

	for start := 0; start < len(ids); start += 100 {
		end := start + 100
		if end > len(ids) {
			end = len(ids)
		}

		keys := make([]map[string]types.AttributeValue, 0, end-start)
		for _, id := range ids[start:end] {
			keys = append(keys, map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: keywordPK(id.String())},
				"SK": &types.AttributeValueMemberS{Value: skMetadata},
			})
		}

		for len(keys) > 0 {
			out, err := r.client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
				RequestItems: map[string]types.KeysAndAttributes{
					r.tableName: {Keys: keys},
				},
			})
			if err != nil {
				return nil, pkgerrors.NewDatabaseError("batch get keywords", err)
			}

			for _, raw := range out.Responses[r.tableName] {
				var item keywordItem
				if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
					return nil, pkgerrors.NewDatabaseError("unmarshal keyword", err)
				}
				if item.IsDeleted {
					continue
				}
				keyword, err := itemToKeyword(&item)
				if err != nil {
					return nil, err
				}
				keywords = append(keywords, keyword)
			}

			keys = out.UnprocessedKeys[r.tableName].Keys
		}
	}

	return keywords, nil
}

// FindByName resolves an active keyword through the GSI1 name key
func (r *KeywordRepository) FindByName(ctx context.Context, name string) (*entities.Keyword, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("GSI1PK").Equal(expression.Value(gsi1Keyword)).
			And(expression.Key("GSI1SK").Equal(expression.Value(keywordGSI1SK(name))))).
		WithFilter(expression.Name("IsDeleted").Equal(expression.Value(false))).
		Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build keyword query", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query keyword by name", err)
	}
	if len(out.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("keyword")
	}

	var item keywordItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal keyword", err)
	}
	return itemToKeyword(&item)
}

// FindByCategory returns active keywords in a category
func (r *KeywordRepository) FindByCategory(ctx context.Context, category string) ([]*entities.Keyword, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("GSI1PK").Equal(expression.Value(gsi1Keyword))).
		WithFilter(expression.Name("IsDeleted").Equal(expression.Value(false)).
			And(expression.Name("Category").Equal(expression.Value(category)))).
		Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build keyword query", err)
	}

	keywords := make([]*entities.Keyword, 0)
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(r.indexName),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query keywords by category", err)
		}

		for _, raw := range out.Items {
			var item keywordItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, pkgerrors.NewDatabaseError("unmarshal keyword", err)
			}
			keyword, err := itemToKeyword(&item)
			if err != nil {
				return nil, err
			}
			keywords = append(keywords, keyword)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return keywords, nil
}

// IncrementSearchCount bumps the search counter with a single ADD update
func (r *KeywordRepository) IncrementSearchCount(ctx context.Context, id valueobjects.KeywordID) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: keywordPK(id.String())},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
		UpdateExpression:    aws.String("ADD SearchCount :one SET UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(PK) AND IsDeleted = :false"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one":   &types.AttributeValueMemberN{Value: "1"},
			":false": &types.AttributeValueMemberBOOL{Value: false},
			":now":   &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return pkgerrors.NewNotFoundError("keyword")
		}
		return pkgerrors.NewDatabaseError("increment search count", err)
	}
	return nil
}

// Delete soft-deletes a keyword
func (r *KeywordRepository) Delete(ctx context.Context, id valueobjects.KeywordID) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: keywordPK(id.String())},
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
			return pkgerrors.NewNotFoundError("keyword")
		}
		return pkgerrors.NewDatabaseError("delete keyword", err)
	}
	return nil
}

func itemToKeyword(item *keywordItem) (*entities.Keyword, error) {
	id, err := valueobjects.ParseKeywordID(item.KeywordID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("parse keyword id", err)
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, item.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, item.UpdatedAt)

	return entities.ReconstructKeyword(
		id,
		item.Name,
		item.SearchCount,
		item.Category,
		item.IsDeleted,
		createdAt, updatedAt,
	), nil
}
