package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrConditionFailed is returned by PutItemIfAbsent when the item already
// exists. Callers translate it into their own conflict error.
var ErrConditionFailed = errors.New("conditional check failed")

func (c *DynamoDBClient) PutItem(
	ctx context.Context,
	tableName string,
	item interface{},
) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(tableName),
		Item:      av,
	}

	_, err = c.svc.PutItem(ctx, input)
	if err != nil {
		return fmt.Errorf("put item %s: %w", tableName, err)
	}
	return nil
}

// PutItemIfAbsent writes the item only when no item with the same value in
// keyAttr exists yet.
func (c *DynamoDBClient) PutItemIfAbsent(
	ctx context.Context,
	tableName string,
	item interface{},
	keyAttr string,
) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:                aws.String(tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{"#pk": keyAttr},
	}

	_, err = c.svc.PutItem(ctx, input)
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("put item %s: %w", tableName, ErrConditionFailed)
		}
		return fmt.Errorf("put item %s: %w", tableName, err)
	}
	return nil
}

func (c *DynamoDBClient) GetItem(
	ctx context.Context,
	tableName string,
	key map[string]types.AttributeValue,
	out interface{},
) error {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(tableName),
		Key:       key,
	}

	res, err := c.svc.GetItem(ctx, input)
	if err != nil {
		return fmt.Errorf("get item %s: %w", tableName, err)
	}
	if res.Item == nil {
		return fmt.Errorf("item not found in %s", tableName)
	}

	if err := attributevalue.UnmarshalMap(res.Item, out); err != nil {
		return fmt.Errorf("unmarshal item: %w", err)
	}
	return nil
}

func (c *DynamoDBClient) UpdateItem(
	ctx context.Context,
	tableName string,
	key map[string]types.AttributeValue,
	updateExpr string,
	exprAttrValues map[string]types.AttributeValue,
	exprAttrNames map[string]string,
	out interface{},
) error {
	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(tableName),
		Key:                       key,
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: exprAttrValues,
		ExpressionAttributeNames:  exprAttrNames,
		ReturnValues:              types.ReturnValueAllNew,
	}

	res, err := c.svc.UpdateItem(ctx, input)
	if err != nil {
		return fmt.Errorf("update item %s: %w", tableName, err)
	}

	if out != nil {
		if err := attributevalue.UnmarshalMap(res.Attributes, out); err != nil {
			return fmt.Errorf("unmarshal updated item: %w", err)
		}
	}
	return nil
}

func (c *DynamoDBClient) DeleteItem(
	ctx context.Context,
	tableName string,
	key map[string]types.AttributeValue,
) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(tableName),
		Key:       key,
	}

	_, err := c.svc.DeleteItem(ctx, input)
	if err != nil {
		return fmt.Errorf("delete item %s: %w", tableName, err)
	}
	return nil
}

func (c *DynamoDBClient) QueryItems(
	ctx context.Context,
	tableName string,
	indexName *string,
	keyCondExpr string,
	exprAttrValues map[string]types.AttributeValue,
	exprAttrNames map[string]string,
	scanIndexForward *bool,
) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(tableName),
		KeyConditionExpression:    aws.String(keyCondExpr),
		ExpressionAttributeValues: exprAttrValues,
	}
	if indexName != nil {
		input.IndexName = indexName
	}
	if exprAttrNames != nil {
		input.ExpressionAttributeNames = exprAttrNames
	}

	if scanIndexForward != nil {
		input.ScanIndexForward = aws.Bool(*scanIndexForward)
	}

	out, err := c.svc.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("query %s[%s]: %w", tableName, aws.ToString(indexName), err)
	}

	return out.Items, nil
}

func (c *DynamoDBClient) QueryItemsWithFilter(
	ctx context.Context,
	tableName string,
	indexName *string,
	keyCondExpr string,
	filterExpr *string,
	exprAttrValues map[string]types.AttributeValue,
	exprAttrNames map[string]string,
) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(tableName),
		KeyConditionExpression:    aws.String(keyCondExpr),
		ExpressionAttributeValues: exprAttrValues,
	}
	if indexName != nil {
		input.IndexName = indexName
	}
	if filterExpr != nil {
		input.FilterExpression = filterExpr
	}
	if exprAttrNames != nil {
		input.ExpressionAttributeNames = exprAttrNames
	}
	out, err := c.svc.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("query %s[%s]: %w", tableName, aws.ToString(indexName), err)
	}
	return out.Items, nil
}

func (c *DynamoDBClient) ScanItems(
	ctx context.Context,
	tableName string,
	filterExpr string,
	exprAttrValues map[string]types.AttributeValue,
	exprAttrNames map[string]string,
) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.ScanInput{
		TableName:                 aws.String(tableName),
		FilterExpression:          aws.String(filterExpr),
		ExpressionAttributeValues: exprAttrValues,
	}

	if exprAttrNames != nil {
		input.ExpressionAttributeNames = exprAttrNames
	}

	out, err := c.svc.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", tableName, err)
	}

	return out.Items, nil
}

// ScanAll performs a complete scan of the table, handling pagination internally
func (c *DynamoDBClient) ScanAll(
	ctx context.Context,
	tableName string,
) ([]map[string]types.AttributeValue, error) {
	var allItems []map[string]types.AttributeValue
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		input := &dynamodb.ScanInput{
			TableName: aws.String(tableName),
		}

		if lastEvaluatedKey != nil {
			input.ExclusiveStartKey = lastEvaluatedKey
		}

		result, err := c.svc.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan all %s: %w", tableName, err)
		}

		allItems = append(allItems, result.Items...)

		if result.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = result.LastEvaluatedKey
	}

	return allItems, nil
}

func (c *DynamoDBClient) ScanAllWithFilter(
	ctx context.Context,
	tableName string,
	filterExpr string,
	exprAttrValues map[string]types.AttributeValue,
	exprAttrNames map[string]string,
) ([]map[string]types.AttributeValue, error) {
	var allItems []map[string]types.AttributeValue
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		input := &dynamodb.ScanInput{
			TableName:                 aws.String(tableName),
			FilterExpression:          aws.String(filterExpr),
			ExpressionAttributeValues: exprAttrValues,
		}
		if exprAttrNames != nil {
			input.ExpressionAttributeNames = exprAttrNames
		}
		if lastEvaluatedKey != nil {
			input.ExclusiveStartKey = lastEvaluatedKey
		}

		result, err := c.svc.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan all with filter %s: %w", tableName, err)
		}

		allItems = append(allItems, result.Items...)

		if result.LastEvaluatedKey == nil || len(result.LastEvaluatedKey) == 0 {
			break
		}
		lastEvaluatedKey = result.LastEvaluatedKey
	}
	return allItems, nil
}

// QueryAll performs a complete query, handling pagination internally.
func (c *DynamoDBClient) QueryAll(
	ctx context.Context,
	tableName string,
	indexName *string,
	keyCondExpr string,
	exprAttrValues map[string]types.AttributeValue,
) ([]map[string]types.AttributeValue, error) {
	var allItems []map[string]types.AttributeValue
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		input := &dynamodb.QueryInput{
			TableName:                 aws.String(tableName),
			KeyConditionExpression:    aws.String(keyCondExpr),
			ExpressionAttributeValues: exprAttrValues,
		}

		if indexName != nil {
			input.IndexName = indexName
		}

		if lastEvaluatedKey != nil {
			input.ExclusiveStartKey = lastEvaluatedKey
		}

		result, err := c.svc.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("query all %s[%s]: %w", tableName, aws.ToString(indexName), err)
		}

		allItems = append(allItems, result.Items...)

		if result.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = result.LastEvaluatedKey
	}

	return allItems, nil
}

func (c *DynamoDBClient) ParallelScanWithFilter(
	ctx context.Context,
	tableName string,
	filterExpr string,
	exprAttrValues map[string]types.AttributeValue,
	exprAttrNames map[string]string,
	projectionExpr *string,
	totalSegments int,
) ([]map[string]types.AttributeValue, error) {
	if totalSegments < 1 {
		totalSegments = 8
	} // tune to vCPU
	type segRes struct {
		items []map[string]types.AttributeValue
		err   error
	}
	out := make(chan segRes, totalSegments)

	for seg := 0; seg < totalSegments; seg++ {
		seg := seg
		go func() {
			var all []map[string]types.AttributeValue
			var last map[string]types.AttributeValue
			for {
				in := &dynamodb.ScanInput{
					TableName:                 aws.String(tableName),
					ExpressionAttributeValues: exprAttrValues,
					Segment:                   aws.Int32(int32(seg)),
					TotalSegments:             aws.Int32(int32(totalSegments)),
				}
				if filterExpr != "" {
					in.FilterExpression = aws.String(filterExpr)
				}
				if exprAttrNames != nil {
					in.ExpressionAttributeNames = exprAttrNames
				}
				if projectionExpr != nil {
					in.ProjectionExpression = projectionExpr
				}
				if last != nil {
					in.ExclusiveStartKey = last
				}

				res, err := c.svc.Scan(ctx, in)
				if err != nil {
					out <- segRes{nil, fmt.Errorf("scan seg %d: %w", seg, err)}
					return
				}

				all = append(all, res.Items...)
				if len(res.LastEvaluatedKey) == 0 {
					break
				}
				last = res.LastEvaluatedKey
			}
			out <- segRes{all, nil}
		}()
	}

	var all []map[string]types.AttributeValue
	for i := 0; i < totalSegments; i++ {
		r := <-out
		if r.err != nil {
			return nil, r.err
		}
		all = append(all, r.items...)
	}
	return all, nil
}

func (c *DynamoDBClient) BatchWriteItem(
	ctx context.Context,
	tableName string,
	putItems []interface{},
	deleteKeys []map[string]types.AttributeValue,
) error {
	if len(putItems) == 0 && len(deleteKeys) == 0 {
		return nil
	}

	var writeRequests []types.WriteRequest

	for _, item := range putItems {
		av, err := attributevalue.MarshalMap(item)
		if err != nil {
			return fmt.Errorf("marshal put item: %w", err)
		}

		writeRequests = append(writeRequests, types.WriteRequest{
			PutRequest: &types.PutRequest{
				Item: av,
			},
		})
	}

	for _, key := range deleteKeys {
		writeRequests = append(writeRequests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{
				Key: key,
			},
		})
	}

	const batchSize = 25
	for i := 0; i < len(writeRequests); i += batchSize {
		end := i + batchSize
		if end > len(writeRequests) {
			end = len(writeRequests)
		}

		batch := writeRequests[i:end]
		requests := map[string][]types.WriteRequest{
			tableName: batch,
		}

		if err := c.batchWriteWithRetry(ctx, requests); err != nil {
			return fmt.Errorf("batch write item: %w", err)
		}
	}

	return nil
}

func (c *DynamoDBClient) batchWriteWithRetry(
	ctx context.Context,
	requests map[string][]types.WriteRequest,
) error {
	const maxRetries = 3
	retryCount := 0
	currentRequests := requests

	for len(currentRequests) > 0 && retryCount < maxRetries {
		input := &dynamodb.BatchWriteItemInput{
			RequestItems: currentRequests,
		}

		result, err := c.svc.BatchWriteItem(ctx, input)
		if err != nil {
			return fmt.Errorf("batch write (attempt %d): %w", retryCount+1, err)
		}

		if len(result.UnprocessedItems) == 0 {
			return nil
		}

		currentRequests = result.UnprocessedItems
		retryCount++

		if retryCount < maxRetries {
			backoffDuration := time.Duration(1<<uint(retryCount-1)) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoffDuration):
			}
		}
	}

	if len(currentRequests) > 0 {
		return fmt.Errorf(
			"failed to process all items after %d retries, %d items remain unprocessed",
			maxRetries, countUnprocessedItems(currentRequests),
		)
	}

	return nil
}

func countUnprocessedItems(requests map[string][]types.WriteRequest) int {
	count := 0
	for _, reqs := range requests {
		count += len(reqs)
	}
	return count
}

func (c *DynamoDBClient) TableExists(ctx context.Context, tableName string) (bool, error) {
	_, err := c.svc.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
	if err != nil {
		var nf *types.ResourceNotFoundException
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, fmt.Errorf("describe table %s: %w", tableName, err)
	}
	return true, nil
}

func (c *DynamoDBClient) CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error {
	_, err := c.svc.CreateTable(ctx, input)
	if err != nil {
		return fmt.Errorf("create table %s: %w", aws.ToString(input.TableName), err)
	}
	return nil
}

// WaitForTable blocks until the table reaches ACTIVE, up to the given timeout.
func (c *DynamoDBClient) WaitForTable(ctx context.Context, tableName string, timeout time.Duration) error {
	waiter := dynamodb.NewTableExistsWaiter(c.svc)
	err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	}, timeout)
	if err != nil {
		return fmt.Errorf("wait for table %s: %w", tableName, err)
	}
	return nil
}
