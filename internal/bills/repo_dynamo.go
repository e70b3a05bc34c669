package bills

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of the DynamoDB client the repo uses.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoRepo stores bills in a DynamoDB table keyed (userId, billId).
type DynamoRepo struct {
	Client DynamoAPI
	Table  string
}

const defaultListLimit = 50

// Put writes one bill as a single atomic put.
func (r *DynamoRepo) Put(ctx context.Context, record Record) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return PersistenceError{Op: "put", OwnerID: record.OwnerID, BillID: record.BillID, Err: err}
	}
	if _, err := r.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.Table),
		Item:      item,
	}); err != nil {
		return PersistenceError{Op: "put", OwnerID: record.OwnerID, BillID: record.BillID, Err: err}
	}
	return nil
}

// List queries one owner's bills newest first, optionally filtered by
// utility category, returning an opaque token when more pages remain.
func (r *DynamoRepo) List(ctx context.Context, ownerID string, opts ListOptions) (ListPage, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.Table),
		KeyConditionExpression: aws.String("userId = :userId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: ownerID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(limit),
	}
	if opts.UtilityCategory != "" {
		input.FilterExpression = aws.String("utilityType = :utilityType")
		input.ExpressionAttributeValues[":utilityType"] = &types.AttributeValueMemberS{Value: opts.UtilityCategory}
	}
	if opts.PageToken != "" {
		startBillID, err := decodePageToken(opts.PageToken)
		if err != nil {
			return ListPage{}, err
		}
		input.ExclusiveStartKey = billKey(ownerID, startBillID)
	}

	out, err := r.Client.Query(ctx, input)
	if err != nil {
		return ListPage{}, PersistenceError{Op: "query", OwnerID: ownerID, Err: err}
	}

	records := make([]Record, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &records); err != nil {
		return ListPage{}, PersistenceError{Op: "query", OwnerID: ownerID, Err: err}
	}

	page := ListPage{Bills: records}
	if lastKey := out.LastEvaluatedKey; len(lastKey) > 0 {
		if attr, ok := lastKey["billId"].(*types.AttributeValueMemberS); ok {
			page.NextPageToken = encodePageToken(attr.Value)
		}
	}
	return page, nil
}

// Get fetches one bill by key.
func (r *DynamoRepo) Get(ctx context.Context, ownerID, billID string) (Record, error) {
	out, err := r.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.Table),
		Key:       billKey(ownerID, billID),
	})
	if err != nil {
		return Record{}, PersistenceError{Op: "get", OwnerID: ownerID, BillID: billID, Err: err}
	}
	if len(out.Item) == 0 {
		return Record{}, ErrNotFound
	}

	var record Record
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return Record{}, PersistenceError{Op: "get", OwnerID: ownerID, BillID: billID, Err: err}
	}
	return record, nil
}

// Delete removes one bill; a missing bill maps to ErrNotFound.
func (r *DynamoRepo) Delete(ctx context.Context, ownerID, billID string) error {
	_, err := r.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.Table),
		Key:                 billKey(ownerID, billID),
		ConditionExpression: aws.String("attribute_exists(billId)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return ErrNotFound
		}
		return PersistenceError{Op: "delete", OwnerID: ownerID, BillID: billID, Err: err}
	}
	return nil
}

func billKey(ownerID, billID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: ownerID},
		"billId": &types.AttributeValueMemberS{Value: billID},
	}
}

func encodePageToken(billID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(billID))
}

func decodePageToken(token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("invalid page token: %w", err)
	}
	return string(raw), nil
}

var _ Repo = (*DynamoRepo)(nil)
