// Package jwt implements the access-token codec: HMAC-SHA256 signing and strict
// verification of claims carrying an embedded user snapshot.
//
// # Claims shape
//
// Access tokens carry the registered claims (jti, sub, iat, exp) plus a "user"
// claim with the subject snapshot captured at issuance. The codec never reads
// the clock while encoding; callers set iat and exp explicitly.
//
// # Architecture boundaries
//
// This package owns signing and verification only. Token persistence, rotation,
// and revocation belong to the token store and the Engine.
//
// # What this package must NOT do
//
//   - Touch the refresh-token store or any network backend.
//   - Import goToken or any sibling package (no upward imports).
//   - Accept non-HMAC signing algorithms.
package jwt
