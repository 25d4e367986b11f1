// Package dynamodb implements cloud snapshot persistence on a
// single-table DynamoDB layout.
package dynamodb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"opencut-backend/application/ports"
	"opencut-backend/domain/core/aggregates"
	pkgerrors "opencut-backend/pkg/errors"
)

// snapshotRecord is how a timeline snapshot is stored.
// PK = TIMELINE#<id>, SK = SNAPSHOT. The full snapshot travels as a
// JSON document so the storage schema never chases the domain model.
type snapshotRecord struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	ID         string `dynamodbav:"ID"`
	Name       string `dynamodbav:"Name"`
	Version    int    `dynamodbav:"Version"`
	Data       string `dynamodbav:"Data"`
	UpdatedAt  string `dynamodbav:"UpdatedAt"`
	EntityType string `dynamodbav:"EntityType"`
}

const snapshotEntityType = "TIMELINE_SNAPSHOT"

func snapshotPK(id string) string { return fmt.Sprintf("TIMELINE#%s", id) }

// SnapshotStore implements ports.SnapshotStore using DynamoDB
type SnapshotStore struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewSnapshotStore creates a DynamoDB-backed snapshot store
func NewSnapshotStore(client *dynamodb.Client, tableName string, logger *zap.Logger) *SnapshotStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotStore{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// SaveSnapshot upserts a timeline snapshot
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snap aggregates.TimelineSnapshot) error {
	if snap.ID == "" {
		return pkgerrors.NewValidation("snapshot is missing its timeline ID")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to serialize snapshot")
	}

	record := snapshotRecord{
		PK:         snapshotPK(snap.ID),
		SK:         "SNAPSHOT",
		ID:         snap.ID,
		Name:       snap.Name,
		Version:    snap.Version,
		Data:       string(data),
		UpdatedAt:  snap.UpdatedAt.UTC().Format(time.RFC3339Nano),
		EntityType: snapshotEntityType,
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal snapshot record")
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return pkgerrors.Wrap(err, "failed to save snapshot")
	}

	s.logger.Debug("snapshot saved",
		zap.String("timelineID", snap.ID),
		zap.Int("version", snap.Version),
	)
	return nil
}

// LoadSnapshot retrieves a snapshot by timeline ID
func (s *SnapshotStore) LoadSnapshot(ctx context.Context, id string) (aggregates.TimelineSnapshot, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: snapshotPK(id)},
			"SK": &types.AttributeValueMemberS{Value: "SNAPSHOT"},
		},
	})
	if err != nil {
		return aggregates.TimelineSnapshot{}, pkgerrors.Wrap(err, "failed to load snapshot")
	}
	if result.Item == nil {
		return aggregates.TimelineSnapshot{}, pkgerrors.NewNotFound("snapshot " + id)
	}

	var record snapshotRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return aggregates.TimelineSnapshot{}, pkgerrors.Wrap(err, "failed to unmarshal snapshot record")
	}

	var snap aggregates.TimelineSnapshot
	if err := json.Unmarshal([]byte(record.Data), &snap); err != nil {
		return aggregates.TimelineSnapshot{}, pkgerrors.Wrap(err, "stored snapshot is malformed")
	}
	return snap, nil
}

// ListSnapshots scans for snapshot metadata, most recently updated first
func (s *SnapshotStore) ListSnapshots(ctx context.Context) ([]ports.SnapshotInfo, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("EntityType").Equal(expression.Value(snapshotEntityType))).
		WithProjection(expression.NamesList(
			expression.Name("ID"),
			expression.Name("Name"),
			expression.Name("Version"),
			expression.Name("UpdatedAt"),
		)).
		Build()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to build scan expression")
	}

	var infos []ports.SnapshotInfo
	var lastKey map[string]types.AttributeValue
	for {
		result, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(s.tableName),
			FilterExpression:          expr.Filter(),
			ProjectionExpression:      expr.Projection(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, pkgerrors.Wrap(err, "failed to scan snapshots")
		}

		for _, item := range result.Items {
			var record snapshotRecord
			if err := attributevalue.UnmarshalMap(item, &record); err != nil {
				return nil, pkgerrors.Wrap(err, "failed to unmarshal snapshot record")
			}
			info := ports.SnapshotInfo{
				ID:      record.ID,
				Name:    record.Name,
				Version: record.Version,
			}
			if ts, parseErr := time.Parse(time.RFC3339Nano, record.UpdatedAt); parseErr == nil {
				info.UpdatedAt = ts
			}
			infos = append(infos, info)
		}

		lastKey = result.LastEvaluatedKey
		if len(lastKey) == 0 {
			break
		}
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].UpdatedAt.After(infos[j].UpdatedAt)
	})
	return infos, nil
}

// DeleteSnapshot removes a snapshot. Unknown IDs are not an error.
func (s *SnapshotStore) DeleteSnapshot(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: snapshotPK(id)},
			"SK": &types.AttributeValueMemberS{Value: "SNAPSHOT"},
		},
	})
	if err != nil {
		return pkgerrors.Wrap(err, "failed to delete snapshot")
	}
	return nil
}
