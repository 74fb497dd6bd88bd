package goToken

import (
	"errors"

	"github.com/MrEthical07/goToken/token"
)

var (
	// ErrInvalidCredentials is an exported constant or variable used by the token engine.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is an exported constant or variable used by the token engine.
	// [UserProvider] implementations return it (directly or wrapped) when a
	// lookup matches no account.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnknownRefreshToken is an exported constant or variable used by the token engine.
	ErrUnknownRefreshToken = errors.New("unknown refresh token")
	// ErrSubjectNotFound is an exported constant or variable used by the token engine.
	ErrSubjectNotFound = errors.New("refresh token subject no longer resolves")
	// ErrTokenExpired is an exported constant or variable used by the token engine.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is an exported constant or variable used by the token engine.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrIssuanceFailed is an exported constant or variable used by the token engine.
	ErrIssuanceFailed = errors.New("token issuance failed")
	// ErrAccountExists is an exported constant or variable used by the token engine.
	ErrAccountExists = errors.New("account already exists")
	// ErrAccountCreationDisabled is an exported constant or variable used by the token engine.
	ErrAccountCreationDisabled = errors.New("account creation disabled")
	// ErrAccountCreationInvalid is an exported constant or variable used by the token engine.
	ErrAccountCreationInvalid = errors.New("invalid account creation request")
	// ErrEngineNotReady is an exported constant or variable used by the token engine.
	ErrEngineNotReady = errors.New("engine not fully configured")

	// ErrStoreUnavailable is an exported constant or variable used by the token engine.
	// It is the same value as [token.ErrUnavailable] so errors.Is matches across layers.
	ErrStoreUnavailable = token.ErrUnavailable
)
