// Package goToken implements a token lifecycle engine: short-lived signed
// access tokens (HMAC-SHA256 JWT) paired with opaque rotating refresh tokens
// backed by Redis or DynamoDB.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build]. The separable capabilities ([Issuer], [Rotator],
// [Validator], [Revoker]) are also exported for callers who want the protocol
// without the login/register facade.
//
// # Architecture boundaries
//
// goToken is the public surface. It exposes [Engine], [Builder], [Config],
// the capability types, and value types (TokenPair, MetricsSnapshot, audit
// sinks). Claims encoding lives in jwt/, refresh-record persistence in
// token/, and audit dispatch under internal/.
//
// # What this package must NOT do
//
//   - Serve HTTP or impose a transport; examples show the wiring, callers
//     own routing and response shaping.
//   - Store or look up user accounts; that is the caller's [UserProvider].
//   - Retry store operations; retries belong to the storage adapter or the
//     infrastructure in front of it.
//
// # Performance contract
//
// Validate is the hot path: one signature verification, no store access, no
// allocation beyond the returned claims. Issue, Refresh, and Logout are
// allowed the latency of their store round-trips and nothing more — there is
// no background goroutine except the audit dispatcher.
package goToken
