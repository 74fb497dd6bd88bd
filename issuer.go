package goToken

import (
	"context"
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MrEthical07/goToken/internal"
	"github.com/MrEthical07/goToken/jwt"
	"github.com/MrEthical07/goToken/token"
)

// Issuer creates fresh access/refresh pairs. A refresh record is persisted
// before the signed access token leaves this type; a caller never holds an
// access token whose refresh record does not exist.
type Issuer struct {
	codec        *jwt.Codec
	store        token.Store
	accessTTL    time.Duration
	refreshBytes int
	now          func() time.Time
}

// NewIssuer describes the newissuer operation and its observable behavior.
//
// NewIssuer may return an error when input validation, dependency calls, or security checks fail.
// NewIssuer does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewIssuer(codec *jwt.Codec, store token.Store, accessTTL time.Duration, refreshBytes int) (*Issuer, error) {
	if codec == nil {
		return nil, errors.New("codec required")
	}
	if store == nil {
		return nil, errors.New("store required")
	}
	if accessTTL <= 0 {
		return nil, errors.New("access TTL must be > 0")
	}
	if refreshBytes < internal.MinRefreshValueBytes {
		return nil, errors.New("refresh value must be at least 16 bytes")
	}

	return &Issuer{
		codec:        codec,
		store:        store,
		accessTTL:    accessTTL,
		refreshBytes: refreshBytes,
		now:          time.Now,
	}, nil
}

// Issue describes the issue operation and its observable behavior.
//
// Issue may return an error when input validation, dependency calls, or security checks fail.
// Issue does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (i *Issuer) Issue(ctx context.Context, user UserSnapshot) (TokenPair, error) {
	if user.ID == "" {
		return TokenPair{}, fmt.Errorf("%w: empty subject", ErrIssuanceFailed)
	}

	jti := uuid.NewString()
	refreshValue, err := internal.NewRefreshValue(i.refreshBytes)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%w: %v", ErrIssuanceFailed, err)
	}

	now := i.now()
	expiresAt := now.Add(i.accessTTL)

	record := &token.Record{
		ID:           jti,
		RefreshValue: refreshValue,
		UserID:       user.ID,
		Subject:      user.ID,
		Email:        user.Email,
		Nickname:     user.Nickname,
		Roles:        append([]string(nil), user.Roles...),
		IssuedAt:     now.Unix(),
		ExpiresAt:    expiresAt.Unix(),
		CreatedAt:    now.Unix(),
		UpdatedAt:    now.Unix(),
	}

	if err := i.store.Put(ctx, record); err != nil {
		return TokenPair{}, fmt.Errorf("%w: %v", ErrIssuanceFailed, err)
	}

	claims := &jwt.AccessClaims{
		User: user,
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        jti,
			Subject:   user.ID,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(expiresAt),
		},
	}

	access, err := i.codec.Encode(claims)
	if err != nil {
		// The record is already persisted; remove it so no refresh value can
		// outlive a token that was never handed out.
		_, _ = i.store.DeleteByID(ctx, jti)
		return TokenPair{}, fmt.Errorf("%w: %v", ErrIssuanceFailed, err)
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refreshValue,
		ExpiresIn:    int64(i.accessTTL / time.Second),
	}, nil
}
