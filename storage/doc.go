// Package storage defines the error type every persistence client in the application
// reports failures with, and the adapters that turn driver errors into it.
//
// An [Error] is a closed, discriminated union: its [Kind] says which class of failure
// occurred and, for [KindKnownRequest], its [Code] names the exact failure from a fixed
// vocabulary (see [KnownCodes]). Callers never inspect driver error strings; they call
// [Classify] at the repository boundary and hand the result to the translate package.
//
// Supported drivers: pgx/pgconn (PostgreSQL), gorm, modernc.org/sqlite, database/sql.
package storage
