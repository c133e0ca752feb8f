/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
	"github.com/rs/zerolog"

	"github.com/rohankumardubey/xviz/errors"
	"github.com/rohankumardubey/xviz/snapshot"
)

// EntityType is stored on every item written by this package.
const EntityType = "XVIZObjectSnapshot"

// API is the subset of the DynamoDB client used by DataStore.
type API interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
	BatchWriteItem(ctx context.Context, params *sdk.BatchWriteItemInput, optFns ...func(*sdk.Options)) (*sdk.BatchWriteItemOutput, error)
}

// DataStore implements datastore.DataStore on a single DynamoDB table.
// Every session is one partition; the sort key orders objects by id.
type DataStore struct {
	client    API
	tableName string
	keys      KeySchema
	logger    zerolog.Logger
}

// Option configures a DataStore
type Option func(*DataStore)

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(d *DataStore) {
		d.logger = logger
	}
}

// WithKeySchema replaces DefaultKeySchema
func WithKeySchema(keys KeySchema) Option {
	return func(d *DataStore) {
		d.keys = keys
	}
}

// item is the stored form of a snapshot.Record.
type item struct {
	PK             string         `dynamodbav:"PK"`
	SK             string         `dynamodbav:"SK"`
	EntityType     string         `dynamodbav:"EntityType"`
	SessionID      string         `dynamodbav:"SessionID"`
	ObjectID       string         `dynamodbav:"ObjectID"`
	LastFrameIndex int            `dynamodbav:"LastFrameIndex"`
	StartTime      float64        `dynamodbav:"StartTime"`
	EndTime        float64        `dynamodbav:"EndTime"`
	Position       []float64      `dynamodbav:"Position,omitempty"`
	Valid          bool           `dynamodbav:"Valid"`
	Streams        []string       `dynamodbav:"Streams,omitempty"`
	Attributes     map[string]any `dynamodbav:"Attributes,omitempty"`
	ExportedAt     string         `dynamodbav:"ExportedAt"`
}

// NewDynamoDBClient initializes a DynamoDB client. Empty keys fall back to
// the default credential chain; a non-empty endpoint overrides the service
// endpoint, as for DynamoDB Local.
func NewDynamoDBClient(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion, endpoint string) (*sdk.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(awsRegion)}
	if awsAccessKey != "" && awsSecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// New constructs a DataStore on tableName.
func New(client API, tableName string, opts ...Option) (*DataStore, error) {
	if client == nil {
		return nil, errors.NewValidationError("client", "must not be nil")
	}
	if tableName == "" {
		return nil, errors.NewValidationError("tableName", "must not be empty")
	}

	d := &DataStore{
		client:    client,
		tableName: tableName,
		keys:      DefaultKeySchema(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.keys.validate(); err != nil {
		return nil, err
	}

	d.logger.Debug().Str("table", tableName).Msg("DynamoDB datastore initialized")
	return d, nil
}

// GetOne retrieves the record of one object.
func (d *DataStore) GetOne(ctx context.Context, sessionID, objectID string) (*snapshot.Record, error) {
	key, err := d.keys.key(sessionID, objectID)
	if err != nil {
		return nil, err
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &d.tableName,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, errors.NewNotFoundError("Record", sessionID+"/"+objectID)
	}

	rec, err := unmarshalRecord(out.Item)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Put stores rec under the keys derived from its session and object id.
// A stored record from a later frame is kept and reported as a
// ConditionFailedError.
func (d *DataStore) Put(ctx context.Context, rec snapshot.Record) error {
	key, err := d.keys.key(rec.SessionID, rec.ObjectID)
	if err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(toItem(rec))
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	for k, v := range key {
		av[k] = v
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName:           &d.tableName,
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK) OR LastFrameIndex <= :frame"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":frame": &types.AttributeValueMemberN{Value: strconv.Itoa(rec.LastFrameIndex)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if stderrors.As(err, &cfe) {
			return errors.NewConditionFailedError("put",
				fmt.Sprintf("%s/%s has a record newer than frame %d", rec.SessionID, rec.ObjectID, rec.LastFrameIndex))
		}
		return fmt.Errorf("PutItem failed: %w", err)
	}

	d.logger.Debug().
		Str("session", rec.SessionID).
		Str("object", rec.ObjectID).
		Int("frame", rec.LastFrameIndex).
		Msg("record stored")
	return nil
}

// Delete removes the record of one object. A missing record is reported
// as a NotFoundError.
func (d *DataStore) Delete(ctx context.Context, sessionID, objectID string) error {
	key, err := d.keys.key(sessionID, objectID)
	if err != nil {
		return err
	}

	out, err := d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName:    &d.tableName,
		Key:          key,
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	if len(out.Attributes) == 0 {
		return errors.NewNotFoundError("Record", sessionID+"/"+objectID)
	}
	return nil
}

func toItem(rec snapshot.Record) item {
	return item{
		EntityType:     EntityType,
		SessionID:      rec.SessionID,
		ObjectID:       rec.ObjectID,
		LastFrameIndex: rec.LastFrameIndex,
		StartTime:      rec.StartTime,
		EndTime:        rec.EndTime,
		Position:       rec.Position,
		Valid:          rec.Valid,
		Streams:        rec.Streams,
		Attributes:     rec.Attributes,
		ExportedAt:     rec.ExportedAt.String(),
	}
}

func unmarshalRecord(av map[string]types.AttributeValue) (snapshot.Record, error) {
	var it item
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return snapshot.Record{}, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	if it.EntityType != "" && it.EntityType != EntityType {
		return snapshot.Record{}, fmt.Errorf("unexpected EntityType %q", it.EntityType)
	}

	rec := snapshot.Record{
		SessionID:      it.SessionID,
		ObjectID:       it.ObjectID,
		LastFrameIndex: it.LastFrameIndex,
		StartTime:      it.StartTime,
		EndTime:        it.EndTime,
		Position:       it.Position,
		Valid:          it.Valid,
		Streams:        it.Streams,
		Attributes:     it.Attributes,
	}
	if it.ExportedAt != "" {
		exportedAt, err := strfmt.ParseDateTime(it.ExportedAt)
		if err != nil {
			return snapshot.Record{}, fmt.Errorf("invalid ExportedAt %q: %w", it.ExportedAt, err)
		}
		rec.ExportedAt = strfmt.DateTime(time.Time(exportedAt).UTC())
	}
	return rec, nil
}
