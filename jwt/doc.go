// Package jwt signs and verifies the two token shapes the gateway accepts: identity
// tokens presented as "Authorization: Bearer <token>" and session tokens carried by the
// session cookie.
//
// Both are HS256 tokens keyed from the single server secret. Each purpose gets its own
// HKDF-derived key (see [DeriveKey]) so a session token can never be replayed as a
// Bearer token or the other way round.
package jwt
