// Package permission holds the role model used by route allow-lists: a fixed-size
// [RoleSet] bitmask of numeric role ids and a [Catalog] of the roles the deployment
// knows about.
//
// # Architecture boundaries
//
// This package is a pure in-memory data structure with no I/O. Authorization decisions
// are made by the gateway, which only asks a RoleSet whether it contains a role id.
//
// # What this package must NOT do
//
//   - Access Redis, databases, or the network.
//   - Import the gateway, jwt, or session packages.
//   - Reveal allow-list contents in user-facing messages.
package permission
