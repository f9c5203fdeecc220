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

// RecommendWatchRepository implements ports.RecommendWatchRepository on
// DynamoDB. One item per (device, week); the sort key carries the week's
// Monday date.
type RecommendWatchRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewRecommendWatchRepository creates a new DynamoDB recommend-watch
// repository
func NewRecommendWatchRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.RecommendWatchRepository {
	return &RecommendWatchRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// recommendWatchItem is the DynamoDB item structure for a weekly record
type recommendWatchItem struct {
	PK         string   `dynamodbav:"PK"`
	SK         string   `dynamodbav:"SK"`
	EntityType string   `dynamodbav:"EntityType"`
	DeviceID   string   `dynamodbav:"DeviceID"`
	StartDate  string   `dynamodbav:"StartDate"`
	MemeIDs    []string `dynamodbav:"MemeIDs"`
	IsDeleted  bool     `dynamodbav:"IsDeleted"`
	CreatedAt  string   `dynamodbav:"CreatedAt"`
	UpdatedAt  string   `dynamodbav:"UpdatedAt"`
}

// FindByWeek returns the record for (device, weekStart)
func (r *RecommendWatchRepository) FindByWeek(ctx context.Context, deviceID valueobjects.DeviceID, weekStart time.Time) (*entities.RecommendWatch, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(deviceID.String())},
			"SK": &types.AttributeValueMemberS{Value: recommendWatchSK(weekStart)},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get recommend watch", err)
	}
	if out.Item == nil {
		return nil, pkgerrors.NewNotFoundError("recommend watch")
	}

	var item recommendWatchItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal recommend watch", err)
	}
	if item.IsDeleted {
		return nil, pkgerrors.NewNotFoundError("recommend watch")
	}

	memeIDs := make([]valueobjects.MemeID, 0, len(item.MemeIDs))
	for _, raw := range item.MemeIDs {
		id, err := valueobjects.ParseMemeID(raw)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("parse meme id", err)
		}
		memeIDs = append(memeIDs, id)
	}

	startDate, _ := time.Parse(weekStartLayout, item.StartDate)
	createdAt, _ := time.Parse(time.RFC3339Nano, item.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, item.UpdatedAt)
	return entities.ReconstructRecommendWatch(deviceID, startDate, memeIDs, item.IsDeleted, createdAt, updatedAt), nil
}

// Save creates or replaces the weekly record
func (r *RecommendWatchRepository) Save(ctx context.Context, watch *entities.RecommendWatch) error {
	item := recommendWatchItem{
		PK:         userPK(watch.DeviceID().String()),
		SK:         recommendWatchSK(watch.StartDate()),
		EntityType: "RECOWATCH",
		DeviceID:   watch.DeviceID().String(),
		StartDate:  watch.StartDate().UTC().Format(weekStartLayout),
		MemeIDs:    valueobjects.MemeIDStrings(watch.MemeIDs()),
		IsDeleted:  watch.IsDeleted(),
		CreatedAt:  watch.CreatedAt().Format(time.RFC3339Nano),
		UpdatedAt:  watch.UpdatedAt().Format(time.RFC3339Nano),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal recommend watch", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("save recommend watch", err)
	}
	return nil
}
