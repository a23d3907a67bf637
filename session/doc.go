// Package session provides the Redis-backed store behind the session cookie and the
// compact binary encoding of its records.
//
// # Binary encoding
//
// Records are stored as a versioned binary blob. The first byte is the schema version;
// strings follow with uvarint length prefixes, then the role id as a varint and the two
// timestamps as big-endian int64. There is no size limit on profile fields.
//
// # Architecture boundaries
//
// This package owns the [Store] (Redis operations) and the [Record] model. It does NOT
// verify cookie tokens or make authorization decisions; the gateway does both.
//
// # What this package must NOT do
//
//   - Import the gateway, jwt, or permission packages.
//   - Store secrets or raw tokens in [Record] fields.
package session
