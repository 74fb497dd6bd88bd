package goToken

import (
	"errors"
	"fmt"

	"github.com/MrEthical07/goToken/jwt"
)

// Validator checks a presented access token by signature and expiry alone.
// It never touches the store, so a rotated or revoked access token remains
// acceptable until its natural expiry. Callers needing immediate revocation
// must shorten the access TTL instead.
type Validator struct {
	codec *jwt.Codec
}

// NewValidator returns a [Validator] over the given codec.
func NewValidator(codec *jwt.Codec) *Validator {
	return &Validator{codec: codec}
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (v *Validator) Validate(tokenStr string) (*AccessClaims, error) {
	if v == nil || v.codec == nil {
		return nil, ErrEngineNotReady
	}

	claims, err := v.codec.Decode(tokenStr)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		// Malformed and forged tokens collapse into one outward error so the
		// response never reveals which check failed.
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	return claims, nil
}
