package goToken

import (
	"context"
	"errors"
	"fmt"
	"time"

	internalaudit "github.com/MrEthical07/goToken/internal/audit"
	"github.com/MrEthical07/goToken/jwt"
	"github.com/MrEthical07/goToken/password"
	"github.com/MrEthical07/goToken/token"
)

// Engine defines a public type used by goToken APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config       Config
	codec        *jwt.Codec
	store        token.Store
	userProvider UserProvider
	passwordHash *password.Argon2
	issuer       *Issuer
	rotator      *Rotator
	validator    *Validator
	revoker      *Revoker
	audit        *internalaudit.Dispatcher
	metrics      *Metrics
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Login(ctx context.Context, identifier, pass string) (TokenPair, error) {
	if e == nil || e.passwordHash == nil || e.issuer == nil || e.userProvider == nil {
		return TokenPair{}, ErrEngineNotReady
	}
	if identifier == "" || pass == "" {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, "", "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"identifier": identifier,
				"reason":     "empty_input",
			}
		})
		return TokenPair{}, ErrInvalidCredentials
	}

	user, err := e.userProvider.GetUserByIdentifier(identifier)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		// The audit trail records the real cause; the caller only ever sees
		// ErrInvalidCredentials so login cannot be used to enumerate accounts.
		e.emitAudit(ctx, auditEventLoginFailure, false, "", "", fmt.Errorf("%w: %v", ErrUserNotFound, err), func() map[string]string {
			return map[string]string{
				"identifier": identifier,
				"reason":     "user_not_found",
			}
		})
		return TokenPair{}, ErrInvalidCredentials
	}

	ok, err := e.passwordHash.Verify(pass, user.PasswordHash)
	if err != nil || !ok {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, user.UserID, "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"identifier": identifier,
				"reason":     "password_mismatch",
			}
		})
		return TokenPair{}, ErrInvalidCredentials
	}
	pass = ""

	pair, err := e.Issue(ctx, snapshotFromRecord(user))
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, user.UserID, "", err, func() map[string]string {
			return map[string]string{
				"identifier": identifier,
				"reason":     "issue_failed",
			}
		})
		return TokenPair{}, err
	}

	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, user.UserID, "", nil, func() map[string]string {
		return map[string]string{
			"identifier": identifier,
		}
	})

	return pair, nil
}

// Issue describes the issue operation and its observable behavior.
//
// Issue may return an error when input validation, dependency calls, or security checks fail.
// Issue does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Issue(ctx context.Context, user UserSnapshot) (TokenPair, error) {
	if e == nil || e.issuer == nil {
		return TokenPair{}, ErrEngineNotReady
	}

	pair, err := e.issuer.Issue(ctx, user)
	if err != nil {
		e.metricInc(MetricIssueFailure)
		if errors.Is(err, ErrStoreUnavailable) {
			e.metricInc(MetricStoreUnavailable)
		}
		e.emitAudit(ctx, auditEventIssueFailure, false, user.ID, "", err, nil)
		return TokenPair{}, err
	}

	e.metricInc(MetricIssueSuccess)
	e.emitAudit(ctx, auditEventTokenIssued, true, user.ID, "", nil, nil)

	return pair, nil
}

// Refresh describes the refresh operation and its observable behavior.
//
// Refresh may return an error when input validation, dependency calls, or security checks fail.
// Refresh does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Refresh(ctx context.Context, refreshValue string) (TokenPair, error) {
	if e == nil || e.rotator == nil {
		return TokenPair{}, ErrEngineNotReady
	}

	pair, err := e.rotator.Rotate(ctx, refreshValue)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownRefreshToken):
			e.metricInc(MetricRefreshUnknownToken)
			e.emitAudit(ctx, auditEventRefreshInvalid, false, "", "", err, nil)
		case errors.Is(err, ErrSubjectNotFound):
			e.metricInc(MetricRefreshSubjectGone)
			e.emitAudit(ctx, auditEventRefreshSubjectGone, false, "", "", err, nil)
		case errors.Is(err, ErrStoreUnavailable):
			e.metricInc(MetricRefreshFailure)
			e.metricInc(MetricStoreUnavailable)
			e.emitAudit(ctx, auditEventRefreshInvalid, false, "", "", err, nil)
		default:
			e.metricInc(MetricRefreshFailure)
			e.emitAudit(ctx, auditEventRefreshInvalid, false, "", "", err, nil)
		}
		return TokenPair{}, err
	}

	e.metricInc(MetricRefreshSuccess)
	e.emitAudit(ctx, auditEventRefreshSuccess, true, "", "", nil, nil)

	return pair, nil
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Validate(ctx context.Context, tokenStr string) (*AccessClaims, error) {
	if e == nil || e.validator == nil {
		return nil, ErrEngineNotReady
	}

	if e.metrics != nil && e.metrics.LatencyEnabled() {
		start := time.Now()
		// The closure defers the time.Since call itself; deferring the
		// Observe call directly would snapshot the duration immediately.
		defer func() {
			e.metrics.Observe(MetricValidateLatency, time.Since(start))
		}()
	}

	claims, err := e.validator.Validate(tokenStr)
	if err != nil {
		e.metricInc(MetricValidateFailure)
		e.emitAudit(ctx, auditEventValidateFailure, false, "", "", err, nil)
		return nil, err
	}

	e.metricInc(MetricValidateSuccess)

	return claims, nil
}

// Logout describes the logout operation and its observable behavior.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Logout(ctx context.Context, tokenStr string) error {
	if e == nil || e.revoker == nil {
		return ErrEngineNotReady
	}

	err := e.revoker.Revoke(ctx, tokenStr)
	if err != nil {
		e.metricInc(MetricLogoutFailure)
		if errors.Is(err, ErrStoreUnavailable) {
			e.metricInc(MetricStoreUnavailable)
		}
		e.emitAudit(ctx, auditEventLogoutInvalid, false, "", "", err, nil)
		return err
	}

	e.metricInc(MetricLogout)
	e.emitAudit(ctx, auditEventLogout, true, "", "", nil, nil)

	return nil
}

// Register describes the register operation and its observable behavior.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Register(ctx context.Context, req CreateAccountRequest) (CreateAccountResult, error) {
	if e == nil || e.passwordHash == nil || e.userProvider == nil {
		return CreateAccountResult{}, ErrEngineNotReady
	}
	if !e.config.Account.Enabled {
		e.metricInc(MetricAccountCreationFailure)
		e.emitAudit(ctx, auditEventAccountCreationFailure, false, "", "", ErrAccountCreationDisabled, nil)
		return CreateAccountResult{}, ErrAccountCreationDisabled
	}
	if req.Identifier == "" || req.Password == "" {
		e.metricInc(MetricAccountCreationFailure)
		e.emitAudit(ctx, auditEventAccountCreationFailure, false, "", "", ErrAccountCreationInvalid, func() map[string]string {
			return map[string]string{
				"reason": "missing_fields",
			}
		})
		return CreateAccountResult{}, ErrAccountCreationInvalid
	}

	hash, err := e.passwordHash.Hash(req.Password)
	if err != nil {
		e.metricInc(MetricAccountCreationFailure)
		e.emitAudit(ctx, auditEventAccountCreationFailure, false, "", "", ErrAccountCreationInvalid, func() map[string]string {
			return map[string]string{
				"reason": "password_policy",
			}
		})
		return CreateAccountResult{}, fmt.Errorf("%w: %v", ErrAccountCreationInvalid, err)
	}
	req.Password = ""

	roles := req.Roles
	if len(roles) == 0 {
		roles = append([]string(nil), e.config.Account.DefaultRoles...)
	}

	user, err := e.userProvider.CreateUser(ctx, CreateUserInput{
		Identifier:   req.Identifier,
		Email:        req.Email,
		Nickname:     req.Nickname,
		PasswordHash: hash,
		Roles:        roles,
	})
	if err != nil {
		if errors.Is(err, ErrAccountExists) {
			e.metricInc(MetricAccountCreationDuplicate)
			e.emitAudit(ctx, auditEventAccountCreationDuplicate, false, "", "", err, func() map[string]string {
				return map[string]string{
					"identifier": req.Identifier,
				}
			})
			return CreateAccountResult{}, err
		}
		e.metricInc(MetricAccountCreationFailure)
		e.emitAudit(ctx, auditEventAccountCreationFailure, false, "", "", err, nil)
		return CreateAccountResult{}, err
	}

	result := CreateAccountResult{
		UserID: user.UserID,
		Roles:  user.Roles,
	}

	if e.config.Account.AutoLogin {
		pair, err := e.Issue(ctx, snapshotFromRecord(user))
		if err != nil {
			// The account exists; only the auto-login half failed.
			e.metricInc(MetricAccountCreationFailure)
			e.emitAudit(ctx, auditEventAccountCreationFailure, false, user.UserID, "", err, func() map[string]string {
				return map[string]string{
					"reason": "auto_login_failed",
				}
			})
			return CreateAccountResult{}, err
		}
		result.AccessToken = pair.AccessToken
		result.RefreshToken = pair.RefreshToken
		result.ExpiresIn = pair.ExpiresIn
	}

	e.metricInc(MetricAccountCreationSuccess)
	e.emitAudit(ctx, auditEventAccountCreationSuccess, true, user.UserID, "", nil, func() map[string]string {
		return map[string]string{
			"identifier": req.Identifier,
		}
	})

	return result, nil
}

func snapshotFromRecord(user UserRecord) UserSnapshot {
	return UserSnapshot{
		ID:       user.UserID,
		Email:    user.Email,
		Nickname: user.Nickname,
		Roles:    append([]string(nil), user.Roles...),
	}
}
