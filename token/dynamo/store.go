package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/MrEthical07/goToken/token"
)

const (
	// RefreshTokenIndex is an exported constant or variable used by the token engine.
	RefreshTokenIndex = "RefreshTokenIndex"
	// UserIdIndex is an exported constant or variable used by the token engine.
	UserIdIndex = "UserIdIndex"
)

type dynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

type dynamoRecord struct {
	ID           string   `dynamodbav:"jti"`
	RefreshValue string   `dynamodbav:"refresh_value"`
	UserID       string   `dynamodbav:"user_id"`
	Subject      string   `dynamodbav:"subject"`
	Email        string   `dynamodbav:"email,omitempty"`
	Nickname     string   `dynamodbav:"nickname,omitempty"`
	Roles        []string `dynamodbav:"roles,omitempty"`
	IssuedAt     int64    `dynamodbav:"issued_at"`
	ExpiresAt    int64    `dynamodbav:"expires_at"`
	CreatedAt    int64    `dynamodbav:"created_at"`
	UpdatedAt    int64    `dynamodbav:"updated_at"`
}

// Store is a DynamoDB-backed token.Store.
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store struct {
	client dynamoAPI
	table  string
}

// NewStore creates a [Store] over the given table. The table must be keyed
// by jti and carry the RefreshTokenIndex and UserIdIndex secondary indexes.
func NewStore(client *dynamodb.Client, table string) (*Store, error) {
	return newStore(client, table)
}

func newStore(client dynamoAPI, table string) (*Store, error) {
	if client == nil {
		return nil, errors.New("dynamodb client required")
	}
	if table == "" {
		return nil, errors.New("table name required")
	}
	return &Store{client: client, table: table}, nil
}

// Put describes the put operation and its observable behavior.
//
// Put may return an error when input validation, dependency calls, or security checks fail.
// Put does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) Put(ctx context.Context, record *token.Record) error {
	if record == nil || record.ID == "" || record.RefreshValue == "" {
		return errors.New("incomplete token record")
	}

	item, err := attributevalue.MarshalMap(toDynamoRecord(record))
	if err != nil {
		return fmt.Errorf("marshal token record: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", token.ErrUnavailable, err)
	}

	return nil
}

// GetByID describes the getbyid operation and its observable behavior.
//
// GetByID may return an error when input validation, dependency calls, or security checks fail.
// GetByID does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) GetByID(ctx context.Context, id string) (*token.Record, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]ddbtypes.AttributeValue{
			"jti": &ddbtypes.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", token.ErrUnavailable, err)
	}
	if len(out.Item) == 0 {
		return nil, token.ErrNotFound
	}

	return unmarshalRecord(out.Item)
}

// GetByRefreshValue describes the getbyrefreshvalue operation and its observable behavior.
//
// GetByRefreshValue may return an error when input validation, dependency calls, or security checks fail.
// GetByRefreshValue does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) GetByRefreshValue(ctx context.Context, refreshValue string) (*token.Record, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		IndexName:              aws.String(RefreshTokenIndex),
		KeyConditionExpression: aws.String("refresh_value = :rv"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":rv": &ddbtypes.AttributeValueMemberS{Value: refreshValue},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", token.ErrUnavailable, err)
	}
	if len(out.Items) == 0 {
		return nil, token.ErrNotFound
	}

	return unmarshalRecord(out.Items[0])
}

// DeleteByID describes the deletebyid operation and its observable behavior.
//
// DeleteByID may return an error when input validation, dependency calls, or security checks fail.
// DeleteByID does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) DeleteByID(ctx context.Context, id string) (bool, error) {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]ddbtypes.AttributeValue{
			"jti": &ddbtypes.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(jti)"),
	})
	if err != nil {
		var conditionFailed *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", token.ErrUnavailable, err)
	}

	return true, nil
}

func toDynamoRecord(record *token.Record) dynamoRecord {
	return dynamoRecord{
		ID:           record.ID,
		RefreshValue: record.RefreshValue,
		UserID:       record.UserID,
		Subject:      record.Subject,
		Email:        record.Email,
		Nickname:     record.Nickname,
		Roles:        record.Roles,
		IssuedAt:     record.IssuedAt,
		ExpiresAt:    record.ExpiresAt,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

func unmarshalRecord(item map[string]ddbtypes.AttributeValue) (*token.Record, error) {
	var raw dynamoRecord
	if err := attributevalue.UnmarshalMap(item, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal token record: %w", err)
	}
	return &token.Record{
		ID:           raw.ID,
		RefreshValue: raw.RefreshValue,
		UserID:       raw.UserID,
		Subject:      raw.Subject,
		Email:        raw.Email,
		Nickname:     raw.Nickname,
		Roles:        raw.Roles,
		IssuedAt:     raw.IssuedAt,
		ExpiresAt:    raw.ExpiresAt,
		CreatedAt:    raw.CreatedAt,
		UpdatedAt:    raw.UpdatedAt,
	}, nil
}
