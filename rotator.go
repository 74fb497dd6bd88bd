package goToken

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrEthical07/goToken/token"
)

// Rotator exchanges a presented refresh value for a brand-new pair. The old
// record is conditionally deleted before the new pair is issued; of two
// concurrent rotations presenting the same value, exactly one observes the
// delete and wins, the other is rejected with [ErrUnknownRefreshToken].
//
// Any rejection before the delete leaves the presented refresh token usable.
// The window between delete and fresh issuance is the one accepted risk: a
// store failure there loses the session and forces a re-login rather than
// leaving two live refresh tokens.
type Rotator struct {
	issuer *Issuer
	store  token.Store
	users  UserProvider
}

// NewRotator describes the newrotator operation and its observable behavior.
//
// NewRotator may return an error when input validation, dependency calls, or security checks fail.
// NewRotator does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewRotator(issuer *Issuer, store token.Store, users UserProvider) (*Rotator, error) {
	if issuer == nil {
		return nil, errors.New("issuer required")
	}
	if store == nil {
		return nil, errors.New("store required")
	}
	if users == nil {
		return nil, errors.New("user provider required")
	}

	return &Rotator{
		issuer: issuer,
		store:  store,
		users:  users,
	}, nil
}

// Rotate describes the rotate operation and its observable behavior.
//
// Rotate may return an error when input validation, dependency calls, or security checks fail.
// Rotate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *Rotator) Rotate(ctx context.Context, refreshValue string) (TokenPair, error) {
	if refreshValue == "" {
		return TokenPair{}, ErrUnknownRefreshToken
	}

	record, err := r.store.GetByRefreshValue(ctx, refreshValue)
	if err != nil {
		if errors.Is(err, token.ErrNotFound) {
			return TokenPair{}, ErrUnknownRefreshToken
		}
		return TokenPair{}, err
	}

	// The subject must still resolve. Providers signal absence with
	// ErrUserNotFound; only that case is the deleted-subject inconsistency.
	// Any other provider error is an outage and surfaces as itself.
	user, err := r.users.GetUserByID(record.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return TokenPair{}, fmt.Errorf("%w: %v", ErrSubjectNotFound, err)
		}
		return TokenPair{}, fmt.Errorf("resolving refresh subject: %w", err)
	}

	existed, err := r.store.DeleteByID(ctx, record.ID)
	if err != nil {
		return TokenPair{}, err
	}
	if !existed {
		// A concurrent rotation claimed the record first.
		return TokenPair{}, ErrUnknownRefreshToken
	}

	return r.issuer.Issue(ctx, UserSnapshot{
		ID:       user.UserID,
		Email:    user.Email,
		Nickname: user.Nickname,
		Roles:    append([]string(nil), user.Roles...),
	})
}
