// Package token provides persistence for refresh-token records and the
// conditional delete that anchors the rotation protocol.
//
// # Record layout
//
// Records are keyed by the access-token id (jti) and carry the opaque refresh
// value as a secondary lookup key. In Redis the record is stored as a compact
// binary blob under the id key, with a separate index key mapping the refresh
// value back to the id. Both keys expire with the refresh lifetime.
//
// # One-winner delete
//
// [Store.DeleteByID] reports whether the record existed at deletion time. The
// Redis implementation runs a Lua script that removes the record and its
// refresh-value index atomically, so two concurrent rotations of the same
// refresh token observe exactly one successful claim.
//
// # What this package must NOT do
//
//   - Parse or create signed access tokens (the jwt package owns that).
//   - Import goToken or any sibling package (no upward imports).
//   - Enforce rotation policy — it only provides the primitives.
package token
