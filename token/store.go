package token

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is an exported constant or variable used by the token engine.
	ErrNotFound = errors.New("token record not found")
	// ErrUnavailable is an exported constant or variable used by the token engine.
	ErrUnavailable = errors.New("token store unavailable")
)

// Record is the persisted state behind one access/refresh token pair. ID is
// the access-token jti and the primary key; RefreshValue is the opaque secret
// presented on rotation and indexed as a secondary key. The claims snapshot
// is denormalized into the record so a rotation can rebuild context without
// decoding the old access token.
type Record struct {
	ID           string
	RefreshValue string
	UserID       string
	Subject      string
	Email        string
	Nickname     string
	Roles        []string
	IssuedAt     int64
	ExpiresAt    int64
	CreatedAt    int64
	UpdatedAt    int64
}

// Store is the refresh-token persistence contract.
//
// DeleteByID is the scissor point of the rotation protocol: it returns true
// only for the caller that actually removed the record. Deleting an absent id
// is not an error.
type Store interface {
	Put(ctx context.Context, record *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	GetByRefreshValue(ctx context.Context, refreshValue string) (*Record, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}
