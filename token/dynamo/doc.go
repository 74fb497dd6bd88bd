// Package dynamo provides a DynamoDB-backed token.Store.
//
// # Table layout
//
// One table keyed by the access-token id (jti), with two global secondary
// indexes: RefreshTokenIndex on refresh_value and UserIdIndex on user_id.
// The expires_at attribute doubles as the table's TTL field so expired
// records age out without a sweeper.
//
// # One-winner delete
//
// DeleteByID uses a conditional DeleteItem (attribute_exists on the key), so
// concurrent rotations of the same refresh token observe exactly one
// successful claim, matching the Redis store's semantics.
package dynamo
