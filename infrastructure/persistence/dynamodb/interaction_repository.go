package dynamodb

import (
	"context"
	"sort"
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

// InteractionRepository implements ports.InteractionRepository on
// DynamoDB. All of a device's ledger lives in its USER partition; the
// SAVE sort key is deterministic, everything else carries a nanosecond
// timestamp and accumulates.
type InteractionRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewInteractionRepository creates a new DynamoDB interaction repository
func NewInteractionRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.InteractionRepository {
	return &InteractionRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// interactionItem is the DynamoDB item structure for one ledger record
type interactionItem struct {
	PK              string `dynamodbav:"PK"`
	SK              string `dynamodbav:"SK"`
	EntityType      string `dynamodbav:"EntityType"`
	DeviceID        string `dynamodbav:"DeviceID"`
	MemeID          string `dynamodbav:"MemeID"`
	InteractionType string `dynamodbav:"InteractionType"`
	IsDeleted       bool   `dynamodbav:"IsDeleted"`
	CreatedAt       string `dynamodbav:"CreatedAt"`
	UpdatedAt       string `dynamodbav:"UpdatedAt"`
}

// Insert appends a new interaction record
func (r *InteractionRepository) Insert(ctx context.Context, interaction *entities.Interaction) error {
	item := interactionItem{
		PK:              userPK(interaction.DeviceID().String()),
		SK:              interactionSK(interaction.Type(), interaction.CreatedAt(), interaction.MemeID().String()),
		EntityType:      "INTERACTION",
		DeviceID:        interaction.DeviceID().String(),
		MemeID:          interaction.MemeID().String(),
		InteractionType: interaction.Type().String(),
		IsDeleted:       interaction.IsDeleted(),
		CreatedAt:       interaction.CreatedAt().Format(time.RFC3339Nano),
		UpdatedAt:       interaction.CreatedAt().Format(time.RFC3339Nano),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal interaction", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("insert interaction", err)
	}
	return nil
}

// FindSave returns the logical SAVE row in any state
func (r *InteractionRepository) FindSave(ctx context.Context, deviceID valueobjects.DeviceID, memeID valueobjects.MemeID) (*entities.Interaction, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(deviceID.String())},
			"SK": &types.AttributeValueMemberS{Value: saveSK(memeID.String())},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get save", err)
	}
	if out.Item == nil {
		return nil, pkgerrors.NewNotFoundError("save")
	}

	var item interactionItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal interaction", err)
	}
	return itemToInteraction(&item)
}

// Exists reports whether an active record exists for the triple
func (r *InteractionRepository) Exists(ctx context.Context, deviceID valueobjects.DeviceID, memeID valueobjects.MemeID, itype entities.InteractionType) (bool, error) {
	items, err := r.queryLedger(ctx, deviceID, itype,
		expression.Name("IsDeleted").Equal(expression.Value(false)).
			And(expression.Name("MemeID").Equal(expression.Value(memeID.String()))))
	if err != nil {
		return false, err
	}
	return len(items) > 0, nil
}

// RestoreSave clears the soft-delete flag on the logical SAVE row
func (r *InteractionRepository) RestoreSave(ctx context.Context, deviceID valueobjects.DeviceID, memeID valueobjects.MemeID) error {
	return r.flipSave(ctx, deviceID, memeID, false)
}

// SoftDeleteSave marks the active SAVE row deleted
func (r *InteractionRepository) SoftDeleteSave(ctx context.Context, deviceID valueobjects.DeviceID, memeID valueobjects.MemeID) error {
	return r.flipSave(ctx, deviceID, memeID, true)
}

func (r *InteractionRepository) flipSave(ctx context.Context, deviceID valueobjects.DeviceID, memeID valueobjects.MemeID, deleted bool) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(deviceID.String())},
			"SK": &types.AttributeValueMemberS{Value: saveSK(memeID.String())},
		},
		UpdateExpression:    aws.String("SET IsDeleted = :target, UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(PK) AND IsDeleted = :current"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":target":  &types.AttributeValueMemberBOOL{Value: deleted},
			":current": &types.AttributeValueMemberBOOL{Value: !deleted},
			":now":     &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return pkgerrors.NewNotFoundError("save")
		}
		return pkgerrors.NewDatabaseError("toggle save", err)
	}
	return nil
}

// CountByType counts active records for (device, type)
func (r *InteractionRepository) CountByType(ctx context.Context, deviceID valueobjects.DeviceID, itype entities.InteractionType) (int, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("PK").Equal(expression.Value(userPK(deviceID.String()))).
			And(expression.Key("SK").BeginsWith(interactionTypePrefix(itype)))).
		WithFilter(expression.Name("IsDeleted").Equal(expression.Value(false))).
		Build()
	if err != nil {
		return 0, pkgerrors.NewDatabaseError("build interaction query", err)
	}

	count := 0
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			Select:                    types.SelectCount,
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return 0, pkgerrors.NewDatabaseError("count interactions", err)
		}

		count += int(out.Count)
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return count, nil
}

// FindSavedMemeIDs lists meme IDs with an active SAVE row, most recently
// saved first
func (r *InteractionRepository) FindSavedMemeIDs(ctx context.Context, deviceID valueobjects.DeviceID) ([]valueobjects.MemeID, error) {
	items, err := r.queryLedger(ctx, deviceID, entities.InteractionSave,
		expression.Name("IsDeleted").Equal(expression.Value(false)))
	if err != nil {
		return nil, err
	}

	// the deterministic SAVE sort key orders by meme id, not recency
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UpdatedAt > items[j].UpdatedAt
	})

	ids := make([]valueobjects.MemeID, 0, len(items))
	for _, item := range items {
		id, err := valueobjects.ParseMemeID(item.MemeID)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("parse meme id", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *InteractionRepository) queryLedger(ctx context.Context, deviceID valueobjects.DeviceID, itype entities.InteractionType, filter expression.ConditionBuilder) ([]interactionItem, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("PK").Equal(expression.Value(userPK(deviceID.String()))).
			And(expression.Key("SK").BeginsWith(interactionTypePrefix(itype)))).
		WithFilter(filter).
		Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build interaction query", err)
	}

	items := make([]interactionItem, 0)
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query interactions", err)
		}

		for _, raw := range out.Items {
			var item interactionItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, pkgerrors.NewDatabaseError("unmarshal interaction", err)
			}
			items = append(items, item)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return items, nil
}

func itemToInteraction(item *interactionItem) (*entities.Interaction, error) {
	deviceID, err := valueobjects.ParseDeviceID(item.DeviceID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("parse device id", err)
	}
	memeID, err := valueobjects.ParseMemeID(item.MemeID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("parse meme id", err)
	}
	itype, err := entities.ParseInteractionType(item.InteractionType)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("parse interaction type", err)
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, item.CreatedAt)
	return entities.ReconstructInteraction(deviceID, memeID, itype, item.IsDeleted, createdAt), nil
}
