package goToken

import (
	"context"
	"io"

	internalaudit "github.com/MrEthical07/goToken/internal/audit"
	"github.com/MrEthical07/goToken/jwt"
)

// UserSnapshot is the identity payload embedded in access tokens and refresh
// records. See [jwt.UserSnapshot].
type UserSnapshot = jwt.UserSnapshot

// AccessClaims is the decoded access-token claim set. See [jwt.AccessClaims].
type AccessClaims = jwt.AccessClaims

// TokenPair is returned by issuance, login, and refresh. ExpiresIn is the
// access-token lifetime in seconds, ready for a Bearer token response.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// UserRecord is the full account record returned by [UserProvider].
// It carries the credential hash alongside the public snapshot attributes.
type UserRecord struct {
	UserID       string
	Identifier   string
	Email        string
	Nickname     string
	PasswordHash string
	Roles        []string
}

// UserProvider is the interface that callers must implement to integrate
// goToken with their user database. It covers credential lookup, subject
// resolution during rotation, and account creation.
//
// GetUserByIdentifier and GetUserByID must return [ErrUserNotFound]
// (directly or wrapped) when no account matches; any other error is treated
// as a provider failure, not an absent account. CreateUser must return
// [ErrAccountExists] (directly or wrapped) when the identifier is already
// taken.
type UserProvider interface {
	GetUserByIdentifier(identifier string) (UserRecord, error)
	GetUserByID(userID string) (UserRecord, error)
	CreateUser(ctx context.Context, input CreateUserInput) (UserRecord, error)
}

// CreateUserInput is the input for [UserProvider.CreateUser]. The password
// arrives pre-hashed; providers never see plaintext.
type CreateUserInput struct {
	Identifier   string
	Email        string
	Nickname     string
	PasswordHash string
	Roles        []string
}

// CreateAccountRequest is the input for [Engine.Register]. Identifier and
// Password are required; Roles default to [AccountConfig].DefaultRoles when
// empty.
type CreateAccountRequest struct {
	Identifier string
	Email      string
	Nickname   string
	Password   string
	Roles      []string
}

// CreateAccountResult is returned by [Engine.Register]. It includes the new
// UserID and, when AutoLogin is enabled, a freshly issued token pair.
type CreateAccountResult struct {
	UserID       string
	Roles        []string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
