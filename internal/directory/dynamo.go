package directory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"stockpulse/internal/logger"
	"stockpulse/internal/types"
)

// DynamoDBAPI is the subset of the DynamoDB client the store calls, so
// tests can fake the SDK surface.
type DynamoDBAPI interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Store holds subscriber records in a DynamoDB table keyed by email.
type Store struct {
	client   DynamoDBAPI
	table    string
	pageSize int32
}

func NewStore(client DynamoDBAPI, table string, pageSize int32) *Store {
	return &Store{
		client:   client,
		table:    table,
		pageSize: pageSize,
	}
}

// List returns one page of subscribers plus a continuation cursor. Pass
// the returned cursor back in to get the next page; an empty cursor
// means the scan is complete.
func (s *Store) List(ctx context.Context, cursor string) ([]types.Subscriber, string, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.table),
		Limit:     aws.Int32(s.pageSize),
	}
	if cursor != "" {
		input.ExclusiveStartKey = map[string]ddbtypes.AttributeValue{
			"email": &ddbtypes.AttributeValueMemberS{Value: cursor},
		}
	}

	out, err := s.client.Scan(ctx, input)
	if err != nil {
		return nil, "", fmt.Errorf("scan subscribers in %s: %w", s.table, err)
	}

	var subs []types.Subscriber
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &subs); err != nil {
		return nil, "", fmt.Errorf("unmarshal subscribers: %w", err)
	}

	next := ""
	if key, ok := out.LastEvaluatedKey["email"].(*ddbtypes.AttributeValueMemberS); ok {
		next = key.Value
	}

	logger.Debug(ctx, "Subscriber page loaded", "count", len(subs), "more", next != "")
	return subs, next, nil
}

// Put writes or replaces one subscription record
func (s *Store) Put(ctx context.Context, sub types.Subscriber) error {
	item, err := attributevalue.MarshalMap(sub)
	if err != nil {
		return fmt.Errorf("marshal subscriber %s: %w", sub.Email, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put subscriber %s: %w", sub.Email, err)
	}
	return nil
}

// Delete removes one subscription record by email
func (s *Store) Delete(ctx context.Context, email string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]ddbtypes.AttributeValue{
			"email": &ddbtypes.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return fmt.Errorf("delete subscriber %s: %w", email, err)
	}
	return nil
}
