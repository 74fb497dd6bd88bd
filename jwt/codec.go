package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is an exported constant or variable used by the token engine.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed is an exported constant or variable used by the token engine.
	ErrTokenMalformed = errors.New("malformed token")
	// ErrSignatureInvalid is an exported constant or variable used by the token engine.
	ErrSignatureInvalid = errors.New("invalid token signature")
)

// UserSnapshot is the identity payload embedded in the access token under the
// "user" claim. It is captured at issuance time and is not refreshed until
// the next rotation re-resolves the subject.
type UserSnapshot struct {
	ID       string   `json:"id"`
	Email    string   `json:"email,omitempty"`
	Nickname string   `json:"nickname,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// AccessClaims defines a public type used by goToken APIs.
//
// AccessClaims instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AccessClaims struct {
	User UserSnapshot `json:"user"`
	jwt.RegisteredClaims
}

// KeyProvider supplies the HMAC signing key. Implementations may rotate the
// underlying material; the codec reads the key on every operation.
type KeyProvider interface {
	SigningKey() []byte
}

// StaticKey is a [KeyProvider] backed by a fixed byte slice.
type StaticKey []byte

// SigningKey returns the key bytes.
func (k StaticKey) SigningKey() []byte {
	return []byte(k)
}

// Config defines a public type used by goToken APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Key    KeyProvider
	Issuer string
	Leeway time.Duration
}

// Codec signs and verifies access tokens with HMAC-SHA256. It carries no
// clock of its own for encoding: IssuedAt and ExpiresAt are set by the
// caller, so Encode is deterministic for a given claims value and key.
type Codec struct {
	config Config
}

// NewCodec describes the newcodec operation and its observable behavior.
//
// NewCodec may return an error when input validation, dependency calls, or security checks fail.
// NewCodec does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewCodec(cfg Config) (*Codec, error) {
	if cfg.Key == nil {
		return nil, errors.New("key provider required")
	}
	if len(cfg.Key.SigningKey()) < 16 {
		return nil, errors.New("signing key must be at least 16 bytes")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	return &Codec{config: cfg}, nil
}

// Encode describes the encode operation and its observable behavior.
//
// Encode may return an error when input validation, dependency calls, or security checks fail.
// Encode does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Codec) Encode(claims *AccessClaims) (string, error) {
	if claims == nil {
		return "", errors.New("nil claims")
	}
	if claims.ID == "" {
		return "", errors.New("claims missing token id")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return "", errors.New("claims missing timestamps")
	}
	// The issuer default is applied to a copy so the caller's claims value
	// is never mutated.
	signed := *claims
	if c.config.Issuer != "" && signed.Issuer == "" {
		signed.Issuer = c.config.Issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &signed)
	return token.SignedString(c.config.Key.SigningKey())
}

// Decode verifies the signature, structure, and registered claims of an
// access token, including expiry. Callers must treat any error as an
// authentication failure.
//
// Decode may return an error when input validation, dependency calls, or security checks fail.
// Decode does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Codec) Decode(tokenStr string) (*AccessClaims, error) {
	return c.parse(tokenStr, false)
}

// DecodeExpired verifies signature and structure but skips claims
// validation, so expired tokens still decode. It exists for revocation
// cleanup, where the token id of an expired token is still needed. The
// result must never be treated as an authenticated principal.
func (c *Codec) DecodeExpired(tokenStr string) (*AccessClaims, error) {
	return c.parse(tokenStr, true)
}

func (c *Codec) parse(tokenStr string, skipValidation bool) (*AccessClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if skipValidation {
		options = append(options, jwt.WithoutClaimsValidation())
	} else {
		if c.config.Leeway > 0 {
			options = append(options, jwt.WithLeeway(c.config.Leeway))
		}
		if c.config.Issuer != "" {
			options = append(options, jwt.WithIssuer(c.config.Issuer))
		}
	}

	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenStr, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return c.config.Key.SigningKey(), nil
	})
	if err != nil {
		return nil, mapParseError(err)
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || (!skipValidation && !token.Valid) {
		return nil, ErrTokenMalformed
	}
	if claims.ID == "" {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}
