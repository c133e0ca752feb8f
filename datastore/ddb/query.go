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
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/rohankumardubey/xviz/errors"
	"github.com/rohankumardubey/xviz/snapshot"
)

// batchWriteLimit is the DynamoDB cap on requests per BatchWriteItem call.
const batchWriteLimit = 25

// Query returns the records of one session ordered by object id, reading
// the partition page by page.
func (d *DataStore) Query(ctx context.Context, params *snapshot.QueryParams, opts ...snapshot.QueryOption) ([]snapshot.Record, error) {
	if params == nil {
		return nil, errors.NewValidationError("params", "must not be nil")
	}
	pk, err := d.keys.partition(params.SessionID)
	if err != nil {
		return nil, err
	}

	options := snapshot.DefaultQueryOptions()
	for _, opt := range opts {
		opt(&options)
	}

	input := &sdk.QueryInput{
		TableName:              &d.tableName,
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: pk},
		},
		Limit:            aws.Int32(options.PageSize),
		ScanIndexForward: aws.Bool(true),
	}
	if params.FrameIndex != nil {
		input.FilterExpression = aws.String("LastFrameIndex = :frame")
		input.ExpressionAttributeValues[":frame"] = &types.AttributeValueMemberN{Value: strconv.Itoa(*params.FrameIndex)}
	}

	var results []snapshot.Record
	err = d.paginate(ctx, input, options, func(items []map[string]types.AttributeValue) (bool, error) {
		for _, av := range items {
			rec, err := unmarshalRecord(av)
			if err != nil {
				return false, err
			}
			results = append(results, rec)
			if params.Limit > 0 && len(results) >= params.Limit {
				return false, nil
			}
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteSession removes every record in the session partition.
func (d *DataStore) DeleteSession(ctx context.Context, sessionID string) (int, error) {
	pk, err := d.keys.partition(sessionID)
	if err != nil {
		return 0, err
	}

	options := snapshot.DefaultQueryOptions()
	input := &sdk.QueryInput{
		TableName:              &d.tableName,
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: pk},
		},
		ProjectionExpression: aws.String("PK, SK"),
		Limit:                aws.Int32(options.PageSize),
	}

	var keys []map[string]types.AttributeValue
	err = d.paginate(ctx, input, options, func(items []map[string]types.AttributeValue) (bool, error) {
		for _, av := range items {
			keys = append(keys, map[string]types.AttributeValue{"PK": av["PK"], "SK": av["SK"]})
		}
		return true, nil
	})
	if err != nil {
		return 0, err
	}

	removed := 0
	for start := 0; start < len(keys); start += batchWriteLimit {
		end := min(start+batchWriteLimit, len(keys))
		if err := d.batchDelete(ctx, keys[start:end], options); err != nil {
			return removed, err
		}
		removed += end - start
	}

	d.logger.Info().Str("session", sessionID).Int("removed", removed).Msg("session records deleted")
	return removed, nil
}

// paginate runs input until the partition is exhausted or handle returns false.
func (d *DataStore) paginate(
	ctx context.Context,
	input *sdk.QueryInput,
	options snapshot.QueryOptions,
	handle func([]map[string]types.AttributeValue) (bool, error),
) error {
	progress := snapshot.QueryProgress{StartTime: time.Now()}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		out, err := d.queryWithRetry(ctx, input, options)
		if err != nil {
			return err
		}

		progress.PagesProcessed++
		progress.ItemsProcessed += int64(len(out.Items))
		if options.ProgressHandler != nil {
			options.ProgressHandler(progress)
		}

		more, err := handle(out.Items)
		if err != nil {
			return err
		}
		if !more || len(out.LastEvaluatedKey) == 0 {
			return nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// queryWithRetry executes a query with configurable retry logic
func (d *DataStore) queryWithRetry(
	ctx context.Context,
	input *sdk.QueryInput,
	options snapshot.QueryOptions,
) (*sdk.QueryOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		out, err := d.client.Query(ctx, input)
		if err == nil {
			return out, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			return nil, fmt.Errorf("query error: %w", err)
		}

		d.logger.Warn().Err(err).Int("attempt", attempt+1).Msg("retrying query")
		if attempt < options.MaxRetries {
			if err := sleep(ctx, time.Duration(attempt+1)*options.RetryBackoff); err != nil {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("query failed after %d retries: %w", options.MaxRetries, lastErr)
}

// batchDelete deletes up to batchWriteLimit keys, resubmitting unprocessed ones.
func (d *DataStore) batchDelete(ctx context.Context, keys []map[string]types.AttributeValue, options snapshot.QueryOptions) error {
	requests := make([]types.WriteRequest, 0, len(keys))
	for _, key := range keys {
		requests = append(requests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{Key: key},
		})
	}

	for attempt := 0; ; attempt++ {
		out, err := d.client.BatchWriteItem(ctx, &sdk.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{d.tableName: requests},
		})
		if err != nil {
			return fmt.Errorf("BatchWriteItem failed: %w", err)
		}

		requests = out.UnprocessedItems[d.tableName]
		if len(requests) == 0 {
			return nil
		}
		if attempt >= options.MaxRetries {
			return fmt.Errorf("%d deletes unprocessed after %d retries", len(requests), options.MaxRetries)
		}
		if err := sleep(ctx, time.Duration(attempt+1)*options.RetryBackoff); err != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// isRetryableError determines if a DynamoDB error is retryable. Service
// errors arrive wrapped in operation and response errors.
func isRetryableError(err error) bool {
	var throughput *types.ProvisionedThroughputExceededException
	var limit *types.RequestLimitExceeded
	var internal *types.InternalServerError
	if stderrors.As(err, &throughput) || stderrors.As(err, &limit) || stderrors.As(err, &internal) {
		return true
	}

	var retryable interface{ IsRetryable() bool }
	if stderrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}

	return false
}
