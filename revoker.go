package goToken

import (
	"context"
	"fmt"

	"github.com/MrEthical07/goToken/jwt"
	"github.com/MrEthical07/goToken/token"
)

// Revoker invalidates the refresh record behind a presented access token.
// The token id is the canonical revocation key. Expired access tokens still
// revoke: a just-expired token must be able to clean up its refresh record.
type Revoker struct {
	codec *jwt.Codec
	store token.Store
}

// NewRevoker returns a [Revoker] over the given codec and store.
func NewRevoker(codec *jwt.Codec, store token.Store) *Revoker {
	return &Revoker{
		codec: codec,
		store: store,
	}
}

// Revoke describes the revoke operation and its observable behavior.
//
// Revoke may return an error when input validation, dependency calls, or security checks fail.
// Revoke does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *Revoker) Revoke(ctx context.Context, tokenStr string) error {
	if r == nil || r.codec == nil || r.store == nil {
		return ErrEngineNotReady
	}

	claims, err := r.codec.DecodeExpired(tokenStr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	// Deleting an absent id is a no-op; revoking twice never errors.
	_, err = r.store.DeleteByID(ctx, claims.ID)
	return err
}
