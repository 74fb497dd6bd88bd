// Package middleware provides net/http middleware over the token engine.
//
// # Components
//
//   - [Guard] — bearer-token validation; puts the decoded claims in the
//     request context for [ClaimsFromContext].
//   - [CorrelationID] — assigns or propagates X-Correlation-ID and threads it
//     into the engine context for audit events.
//
// # Architecture boundaries
//
// This package adapts the engine to net/http. It never interprets claims
// beyond passing them along, and it never writes response bodies other than
// the generic unauthorized error.
//
// # What this package must NOT do
//
//   - Distinguish expired from malformed tokens in responses.
//   - Import any goToken sub-package other than the root.
package middleware
