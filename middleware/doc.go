// Package middleware adapts the gateway to net/http.
//
// [Require] guards a handler with a role allow-list, [RequireAuthenticated] with an empty
// one, and [Recover] turns panics into a JSON 500 envelope. Failures are written as
// response envelopes; no middleware here ever writes plain text or HTML.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Gateway calls. It does NOT resolve
// credentials or decide access itself; every decision is delegated to Gateway.Guard.
//
// # What this package must NOT do
//
//   - Parse tokens or cookies directly.
//   - Access Redis.
//   - Alter the envelope Gateway.Guard returns.
package middleware
