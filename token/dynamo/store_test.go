package dynamo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/MrEthical07/goToken/token"
)

// fakeDynamo implements dynamoAPI over in-memory maps, including the
// conditional-delete semantics the rotation protocol depends on.
type fakeDynamo struct {
	mu    sync.Mutex
	items map[string]map[string]ddbtypes.AttributeValue
	err   error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]ddbtypes.AttributeValue{}}
}

func itemID(item map[string]ddbtypes.AttributeValue) string {
	member, ok := item["jti"].(*ddbtypes.AttributeValueMemberS)
	if !ok {
		return ""
	}
	return member.Value
}

func (f *fakeDynamo) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.items[itemID(params.Item)] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.items[itemID(params.Key)]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: item}, nil
}

func (f *fakeDynamo) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	rv, ok := params.ExpressionAttributeValues[":rv"].(*ddbtypes.AttributeValueMemberS)
	if !ok {
		return &dynamodb.QueryOutput{}, nil
	}
	for _, item := range f.items {
		member, ok := item["refresh_value"].(*ddbtypes.AttributeValueMemberS)
		if ok && member.Value == rv.Value {
			return &dynamodb.QueryOutput{Items: []map[string]ddbtypes.AttributeValue{item}}, nil
		}
	}
	return &dynamodb.QueryOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	id := itemID(params.Key)
	if _, ok := f.items[id]; !ok {
		return nil, &ddbtypes.ConditionalCheckFailedException{}
	}
	delete(f.items, id)
	return &dynamodb.DeleteItemOutput{}, nil
}

func newFakeStore(t *testing.T) (*Store, *fakeDynamo) {
	t.Helper()

	fake := newFakeDynamo()
	store, err := newStore(fake, "refresh_tokens")
	if err != nil {
		t.Fatalf("newStore failed: %v", err)
	}
	return store, fake
}

func dynamoTestRecord(id, refreshValue string) *token.Record {
	now := time.Now()
	return &token.Record{
		ID:           id,
		RefreshValue: refreshValue,
		UserID:       "u1",
		Subject:      "u1",
		Email:        "u1@example.com",
		Roles:        []string{"user"},
		IssuedAt:     now.Unix(),
		ExpiresAt:    now.Add(time.Hour).Unix(),
		CreatedAt:    now.Unix(),
		UpdatedAt:    now.Unix(),
	}
}

func TestNewStoreValidation(t *testing.T) {
	if _, err := NewStore(nil, "refresh_tokens"); err == nil {
		t.Fatal("expected nil client to be rejected")
	}
	if _, err := newStore(newFakeDynamo(), ""); err == nil {
		t.Fatal("expected empty table name to be rejected")
	}
}

func TestDynamoPutAndGet(t *testing.T) {
	store, _ := newFakeStore(t)
	ctx := context.Background()

	want := dynamoTestRecord("jti-1", "aaaabbbbccccddddaaaabbbbccccdddd")
	if err := store.Put(ctx, want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.GetByID(ctx, "jti-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ID != want.ID || got.RefreshValue != want.RefreshValue || got.UserID != want.UserID {
		t.Fatalf("record mismatch: got %+v want %+v", got, want)
	}

	byValue, err := store.GetByRefreshValue(ctx, want.RefreshValue)
	if err != nil {
		t.Fatalf("GetByRefreshValue failed: %v", err)
	}
	if byValue.ID != "jti-1" {
		t.Fatalf("expected jti-1, got %s", byValue.ID)
	}
}

func TestDynamoNotFound(t *testing.T) {
	store, _ := newFakeStore(t)
	ctx := context.Background()

	if _, err := store.GetByID(ctx, "missing"); !errors.Is(err, token.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetByRefreshValue(ctx, "missing"); !errors.Is(err, token.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDynamoConditionalDeleteSingleWinner(t *testing.T) {
	store, _ := newFakeStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, dynamoTestRecord("jti-1", "aaaabbbbccccddddaaaabbbbccccdddd")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	existed, err := store.DeleteByID(ctx, "jti-1")
	if err != nil {
		t.Fatalf("DeleteByID failed: %v", err)
	}
	if !existed {
		t.Fatal("expected first delete to win")
	}

	// ConditionalCheckFailedException maps to (false, nil), not an error.
	existed, err = store.DeleteByID(ctx, "jti-1")
	if err != nil {
		t.Fatalf("second DeleteByID failed: %v", err)
	}
	if existed {
		t.Fatal("expected second delete to lose")
	}
}

func TestDynamoPutRejectsIncompleteRecord(t *testing.T) {
	store, _ := newFakeStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, nil); err == nil {
		t.Fatal("expected nil record to be rejected")
	}
	if err := store.Put(ctx, &token.Record{ID: "jti-1"}); err == nil {
		t.Fatal("expected record without refresh value to be rejected")
	}
}

func TestDynamoUnavailableWrapped(t *testing.T) {
	store, fake := newFakeStore(t)
	fake.err = errors.New("throttled")
	ctx := context.Background()

	if err := store.Put(ctx, dynamoTestRecord("jti-1", "aaaabbbbccccddddaaaabbbbccccdddd")); !errors.Is(err, token.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable from Put, got %v", err)
	}
	if _, err := store.GetByID(ctx, "jti-1"); !errors.Is(err, token.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable from GetByID, got %v", err)
	}
	if _, err := store.GetByRefreshValue(ctx, "rv"); !errors.Is(err, token.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable from GetByRefreshValue, got %v", err)
	}
	if _, err := store.DeleteByID(ctx, "jti-1"); !errors.Is(err, token.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable from DeleteByID, got %v", err)
	}
}

func TestDynamoRoundtripPreservesAttributes(t *testing.T) {
	want := dynamoTestRecord("jti-1", "aaaabbbbccccddddaaaabbbbccccdddd")

	item, err := attributevalue.MarshalMap(toDynamoRecord(want))
	if err != nil {
		t.Fatalf("MarshalMap failed: %v", err)
	}

	got, err := unmarshalRecord(item)
	if err != nil {
		t.Fatalf("unmarshalRecord failed: %v", err)
	}
	if got.ExpiresAt != want.ExpiresAt || got.IssuedAt != want.IssuedAt {
		t.Fatalf("timestamp mismatch: got %+v want %+v", got, want)
	}
	if len(got.Roles) != 1 || got.Roles[0] != "user" {
		t.Fatalf("roles mismatch: %v", got.Roles)
	}
}
