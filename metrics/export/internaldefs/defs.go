package internaldefs

import (
	goToken "github.com/MrEthical07/goToken"
)

// CounterDef defines a public type used by goToken APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goToken.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goToken APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goToken.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the token engine.
var CounterDefs = []CounterDef{
	{ID: goToken.MetricLoginSuccess, Name: "gotoken_login_success_total", Help: "Successful login attempts."},
	{ID: goToken.MetricLoginFailure, Name: "gotoken_login_failure_total", Help: "Failed login attempts."},
	{ID: goToken.MetricIssueSuccess, Name: "gotoken_issue_success_total", Help: "Issued access/refresh pairs."},
	{ID: goToken.MetricIssueFailure, Name: "gotoken_issue_failure_total", Help: "Failed issuance operations."},
	{ID: goToken.MetricRefreshSuccess, Name: "gotoken_refresh_success_total", Help: "Successful refresh rotations."},
	{ID: goToken.MetricRefreshFailure, Name: "gotoken_refresh_failure_total", Help: "Failed refresh rotations."},
	{ID: goToken.MetricRefreshUnknownToken, Name: "gotoken_refresh_unknown_token_total", Help: "Rotations rejected for an unknown or already claimed refresh token."},
	{ID: goToken.MetricRefreshSubjectGone, Name: "gotoken_refresh_subject_gone_total", Help: "Rotations rejected because the subject no longer resolves."},
	{ID: goToken.MetricValidateSuccess, Name: "gotoken_validate_success_total", Help: "Successful access-token validations."},
	{ID: goToken.MetricValidateFailure, Name: "gotoken_validate_failure_total", Help: "Failed access-token validations."},
	{ID: goToken.MetricLogout, Name: "gotoken_logout_total", Help: "Logout operations."},
	{ID: goToken.MetricLogoutFailure, Name: "gotoken_logout_failure_total", Help: "Failed logout operations."},
	{ID: goToken.MetricAccountCreationSuccess, Name: "gotoken_account_creation_success_total", Help: "Successful account creations."},
	{ID: goToken.MetricAccountCreationDuplicate, Name: "gotoken_account_creation_duplicate_total", Help: "Account creation attempts rejected as duplicate."},
	{ID: goToken.MetricAccountCreationFailure, Name: "gotoken_account_creation_failure_total", Help: "Failed account creations."},
	{ID: goToken.MetricStoreUnavailable, Name: "gotoken_store_unavailable_total", Help: "Operations that hit an unavailable refresh-token store."},
}

// HistogramDefs is an exported constant or variable used by the token engine.
var HistogramDefs = []HistogramDef{
	{ID: goToken.MetricValidateLatency, Name: "gotoken_validate_latency_seconds", Help: "Validate latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the token engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the token engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
