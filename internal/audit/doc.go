// Package audit implements async dispatching of access decisions and session lifecycle
// events.
//
// # Components
//
//   - [Sink]: interface for event consumers (channel, JSON writer, slog, no-op).
//   - [Dispatcher]: buffered async relay with drop-if-full / block-if-full semantics.
//   - [Event]: structured record of who asked for what and what was decided.
//
// # Architecture boundaries
//
// This package owns event buffering and sink delivery. It does NOT decide which events
// to emit; the gateway does.
//
// # What this package must NOT do
//
//   - Filter or suppress events based on business logic.
//   - Import the gateway or any sibling internal package.
package audit
