package dynamodb

import (
	"context"
	"strconv"
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

// MemeRepository implements ports.MemeRepository on DynamoDB
type MemeRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewMemeRepository creates a new DynamoDB meme repository
func NewMemeRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.MemeRepository {
	return &MemeRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// memeItem is the DynamoDB item structure for a meme
type memeItem struct {
	PK          string   `dynamodbav:"PK"`
	SK          string   `dynamodbav:"SK"`
	GSI1PK      string   `dynamodbav:"GSI1PK"`
	GSI1SK      string   `dynamodbav:"GSI1SK"`
	EntityType  string   `dynamodbav:"EntityType"`
	MemeID      string   `dynamodbav:"MemeID"`
	Title       string   `dynamodbav:"Title"`
	Image       string   `dynamodbav:"Image"`
	Source      string   `dynamodbav:"Source"`
	Reaction    int      `dynamodbav:"Reaction"`
	IsTodayMeme bool     `dynamodbav:"IsTodayMeme"`
	KeywordIDs  []string `dynamodbav:"KeywordIDs"`
	IsDeleted   bool     `dynamodbav:"IsDeleted"`
	CreatedAt   string   `dynamodbav:"CreatedAt"`
	UpdatedAt   string   `dynamodbav:"UpdatedAt"`
}

// Save persists a meme
func (r *MemeRepository) Save(ctx context.Context, meme *entities.Meme) error {
	item := memeItem{
		PK:          memePK(meme.ID().String()),
		SK:          skMetadata,
		GSI1PK:      gsi1Meme,
		GSI1SK:      memeGSI1SK(meme.CreatedAt(), meme.ID().String()),
		EntityType:  "MEME",
		MemeID:      meme.ID().String(),
		Title:       meme.Title(),
		Image:       meme.Image(),
		Source:      meme.Source(),
		Reaction:    meme.Reaction(),
		IsTodayMeme: meme.IsTodayMeme(),
		KeywordIDs:  valueobjects.KeywordIDStrings(meme.KeywordIDs()),
		IsDeleted:   meme.IsDeleted(),
		CreatedAt:   meme.CreatedAt().Format(time.RFC3339Nano),
		UpdatedAt:   meme.UpdatedAt().Format(time.RFC3339Nano),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal meme", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("save meme", err)
	}

	r.logger.Debug("Saved meme", zap.String("memeId", meme.ID().String()))
	return nil
}

// FindByID returns an active meme
func (r *MemeRepository) FindByID(ctx context.Context, id valueobjects.MemeID) (*entities.Meme, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: memePK(id.String())},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get meme", err)
	}
	if out.Item == nil {
		return nil, pkgerrors.NewNotFoundError("meme")
	}

	var item memeItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal meme", err)
	}
	if item.IsDeleted {
		return nil, pkgerrors.NewNotFoundError("meme")
	}
	return itemToMeme(&item)
}

// FindByIDs batch-resolves memes, skipping absent or deleted ones
func (r *MemeRepository) FindByIDs(ctx context.Context, ids []valueobjects.MemeID) ([]*entities.Meme, error) {
	memes := make([]*entities.Meme, 0, len(ids))

	// BatchGetItem takes at most 100 keys per call
	for start := 0; start < len(ids); start += 100 {
		end := start + 100
		if end > len(ids) {
			end = len(ids)
		}

		keys := make([]map[string]types.AttributeValue, 0, end-start)
		for _, id := range ids[start:end] {
			keys = append(keys, map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: memePK(id.String())},
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
				return nil, pkgerrors.NewDatabaseError("batch get memes", err)
			}

			for _, raw := range out.Responses[r.tableName] {
				var item memeItem
				if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
					return nil, pkgerrors.NewDatabaseError("unmarshal meme", err)
				}
				if item.IsDeleted {
					continue
				}
				meme, err := itemToMeme(&item)
				if err != nil {
					return nil, err
				}
				memes = append(memes, meme)
			}

			keys = out.UnprocessedKeys[r.tableName].Keys
		}
	}

	return memes, nil
}

// FindActive returns all non-deleted memes via the GSI1 MEME partition
func (r *MemeRepository) FindActive(ctx context.Context) ([]*entities.Meme, error) {
	filter := expression.Name("IsDeleted").Equal(expression.Value(false))
	return r.queryMemePartition(ctx, filter)
}

// FindToday returns non-deleted featured memes
func (r *MemeRepository) FindToday(ctx context.Context) ([]*entities.Meme, error) {
	filter := expression.Name("IsDeleted").Equal(expression.Value(false)).
		And(expression.Name("IsTodayMeme").Equal(expression.Value(true)))
	return r.queryMemePartition(ctx, filter)
}

func (r *MemeRepository) queryMemePartition(ctx context.Context, filter expression.ConditionBuilder) ([]*entities.Meme, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("GSI1PK").Equal(expression.Value(gsi1Meme))).
		WithFilter(filter).
		Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build meme query", err)
	}

	memes := make([]*entities.Meme, 0)
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(r.indexName),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ScanIndexForward:          aws.Bool(false),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query memes", err)
		}

		for _, raw := range out.Items {
			var item memeItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, pkgerrors.NewDatabaseError("unmarshal meme", err)
			}
			meme, err := itemToMeme(&item)
			if err != nil {
				return nil, err
			}
			memes = append(memes, meme)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return memes, nil
}

// IncrementReaction bumps the reaction counter with a single ADD update
// and returns the new value. There is no read-modify-write anywhere.
func (r *MemeRepository) IncrementReaction(ctx context.Context, id valueobjects.MemeID) (int, error) {
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: memePK(id.String())},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
		UpdateExpression:    aws.String("ADD Reaction :one SET UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(PK) AND IsDeleted = :false"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one":   &types.AttributeValueMemberN{Value: "1"},
			":false": &types.AttributeValueMemberBOOL{Value: false},
			":now":   &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339Nano)},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return 0, pkgerrors.NewNotFoundError("meme")
		}
		return 0, pkgerrors.NewDatabaseError("increment reaction", err)
	}

	n, ok := out.Attributes["Reaction"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, pkgerrors.NewDatabaseError("increment reaction", nil)
	}
	reaction, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, pkgerrors.NewDatabaseError("increment reaction", err)
	}
	return reaction, nil
}

// Delete soft-deletes a meme; the item and its history stay in the table
func (r *MemeRepository) Delete(ctx context.Context, id valueobjects.MemeID) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: memePK(id.String())},
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
			return pkgerrors.NewNotFoundError("meme")
		}
		return pkgerrors.NewDatabaseError("delete meme", err)
	}
	return nil
}

func itemToMeme(item *memeItem) (*entities.Meme, error) {
	id, err := valueobjects.ParseMemeID(item.MemeID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("parse meme id", err)
	}

	keywordIDs := make([]valueobjects.KeywordID, 0, len(item.KeywordIDs))
	for _, raw := range item.KeywordIDs {
		kid, err := valueobjects.ParseKeywordID(raw)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("parse keyword id", err)
		}
		keywordIDs = append(keywordIDs, kid)
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, item.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, item.UpdatedAt)

	return entities.ReconstructMeme(
		id,
		item.Title, item.Image, item.Source,
		item.Reaction,
		item.IsTodayMeme,
		keywordIDs,
		item.IsDeleted,
		createdAt, updatedAt,
	), nil
}
