// Package gateway decides who is calling an almapac API route and whether they may.
//
// A [Gateway] resolves the caller's [Identity] from one of two credential transports
// (the session cookie or an "Authorization: Bearer" token), checks the identity's role
// against the route's allow-list, and produces the 401/403 response envelopes every
// route returns on failure. Storage errors raised by route handlers go through
// [Gateway.Translate], which maps them onto the same envelope shape.
//
// # Credential precedence
//
// Resolution order is the named policy [PrecedenceCookieFirst]: a valid session cookie
// always wins, and the Bearer header is only consulted when the cookie path yields
// nothing. A request carrying both a valid cookie and a different valid Bearer token is
// served as the cookie's identity, silently. Operators testing with a Bearer token from a
// browser that holds a session will see the browser's identity.
//
// # Architecture boundaries
//
// gateway is the public surface. It exposes [Gateway], [Builder], [Config] and value types
// ([Identity], [MetricsSnapshot]). Session persistence lives in session/, token handling
// in jwt/, role sets in permission/, envelopes in response/ and storage error mapping in
// storage/ and translate/.
//
// # What this package must NOT do
//
//   - Expose Redis clients, token parsing errors or session encoding in its API.
//   - Enumerate a route's allow-list in any response.
//   - Import any sub-package that re-imports gateway.
package gateway
