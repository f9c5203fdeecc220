package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"memehub-backend/application/ports"
	"memehub-backend/domain/core/entities"
	"memehub-backend/domain/core/valueobjects"
	pkgerrors "memehub-backend/pkg/errors"
)

// UserRepository implements ports.UserRepository on DynamoDB
type UserRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewUserRepository creates a new DynamoDB user repository
func NewUserRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// userItem is the DynamoDB item structure for a device user
type userItem struct {
	PK            string   `dynamodbav:"PK"`
	SK            string   `dynamodbav:"SK"`
	EntityType    string   `dynamodbav:"EntityType"`
	DeviceID      string   `dynamodbav:"DeviceID"`
	LastSeenMemes []string `dynamodbav:"LastSeenMemes"`
	IsDeleted     bool     `dynamodbav:"IsDeleted"`
	CreatedAt     string   `dynamodbav:"CreatedAt"`
	UpdatedAt     string   `dynamodbav:"UpdatedAt"`
}

// Save persists a user
func (r *UserRepository) Save(ctx context.Context, user *entities.User) error {
	item := userItem{
		PK:            userPK(user.DeviceID().String()),
		SK:            skMetadata,
		EntityType:    "USER",
		DeviceID:      user.DeviceID().String(),
		LastSeenMemes: valueobjects.MemeIDStrings(user.LastSeenMemes()),
		IsDeleted:     user.IsDeleted(),
		CreatedAt:     user.CreatedAt().Format(time.RFC3339Nano),
		UpdatedAt:     user.UpdatedAt().Format(time.RFC3339Nano),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal user", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("save user", err)
	}

	r.logger.Debug("Saved user", zap.String("deviceId", user.DeviceID().String()))
	return nil
}

// FindByDeviceID returns an active user
func (r *UserRepository) FindByDeviceID(ctx context.Context, deviceID valueobjects.DeviceID) (*entities.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(deviceID.String())},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get user", err)
	}
	if out.Item == nil {
		return nil, pkgerrors.NewNotFoundError("user")
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal user", err)
	}
	if item.IsDeleted {
		return nil, pkgerrors.NewNotFoundError("user")
	}

	lastSeen := make([]valueobjects.MemeID, 0, len(item.LastSeenMemes))
	for _, raw := range item.LastSeenMemes {
		id, err := valueobjects.ParseMemeID(raw)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("parse meme id", err)
		}
		lastSeen = append(lastSeen, id)
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, item.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, item.UpdatedAt)
	return entities.ReconstructUser(deviceID, lastSeen, item.IsDeleted, createdAt, updatedAt), nil
}

// UpdateLastSeen replaces the stored last-seen list wholesale. Two racing
// updates for one device leave whichever wrote last; that is the intended
// behavior for view history.
func (r *UserRepository) UpdateLastSeen(ctx context.Context, deviceID valueobjects.DeviceID, memeIDs []valueobjects.MemeID) error {
	ids, err := attributevalue.Marshal(valueobjects.MemeIDStrings(memeIDs))
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal last seen", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(deviceID.String())},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
		UpdateExpression:    aws.String("SET LastSeenMemes = :ids, UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(PK) AND IsDeleted = :false"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ids":   ids,
			":false": &types.AttributeValueMemberBOOL{Value: false},
			":now":   &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return pkgerrors.NewNotFoundError("user")
		}
		return pkgerrors.NewDatabaseError("update last seen", err)
	}
	return nil
}
