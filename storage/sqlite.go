package storage

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// FromSQLite classifies *sqlite.Error values from modernc.org/sqlite. Both primary and
// extended result codes are accepted.
func FromSQLite(err error) (*Error, bool) {
	var liteErr *sqlite.Error
	if !errors.As(err, &liteErr) {
		return nil, false
	}

	code := liteErr.Code()
	msg := liteErr.Error()

	switch code & 0xff {
	case sqlite3.SQLITE_CONSTRAINT:
		return sqliteConstraint(code, msg, err), true
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return Known(CodeConnectionPoolTimeout, Meta{Cause: msg}, err), true
	case sqlite3.SQLITE_TOOBIG:
		return Known(CodeValueTooLong, Meta{Cause: msg}, err), true
	case sqlite3.SQLITE_MISMATCH:
		return Known(CodeInvalidValue, Meta{Cause: msg}, err), true
	case sqlite3.SQLITE_RANGE:
		return Known(CodeQueryParameterLimit, Meta{Cause: msg}, err), true
	case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_AUTH, sqlite3.SQLITE_PERM:
		return New(KindInitialization, err), true
	case sqlite3.SQLITE_CORRUPT, sqlite3.SQLITE_NOMEM, sqlite3.SQLITE_INTERNAL:
		return New(KindFatal, err), true
	case sqlite3.SQLITE_ERROR:
		if strings.Contains(msg, "no such table") {
			return Known(CodeTableNotFound, Meta{Cause: msg}, err), true
		}
		if strings.Contains(msg, "no such column") {
			return Known(CodeColumnNotFound, Meta{Cause: msg}, err), true
		}
		if strings.Contains(msg, "syntax error") {
			return Known(CodeQueryParse, Meta{Cause: msg}, err), true
		}
	}
	return New(KindUnknownRequest, err), true
}

func sqliteConstraint(code int, msg string, err error) *Error {
	target, model := sqliteTarget(msg)
	meta := Meta{Target: target, Model: model, Cause: msg}

	switch {
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE,
		code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY,
		strings.Contains(msg, "UNIQUE constraint failed"):
		return Known(CodeUniqueViolation, meta, err)
	case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY,
		strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return Known(CodeForeignKeyViolation, Meta{Cause: msg}, err)
	case code == sqlite3.SQLITE_CONSTRAINT_NOTNULL,
		strings.Contains(msg, "NOT NULL constraint failed"):
		return Known(CodeNullViolation, meta, err)
	default:
		return Known(CodeConstraintFailed, Meta{Cause: msg}, err)
	}
}

// sqliteTarget parses "... constraint failed: barcos.empresa_id, barcos.nombre (2067)".
func sqliteTarget(msg string) ([]string, string) {
	idx := strings.LastIndex(msg, "failed: ")
	if idx < 0 {
		return nil, ""
	}
	list := msg[idx+len("failed: "):]
	if paren := strings.LastIndex(list, " ("); paren >= 0 {
		list = list[:paren]
	}

	var (
		cols  []string
		model string
	)
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		table, col, ok := strings.Cut(part, ".")
		if !ok {
			continue
		}
		model = table
		cols = append(cols, col)
	}
	return cols, model
}
