package storage

import (
	"errors"
	"strings"
)

// Kind discriminates storage failures.
type Kind uint8

const (
	// KindKnownRequest is a request-level failure with a vocabulary Code.
	KindKnownRequest Kind = iota + 1
	// KindUnknownRequest is a request-level failure the driver could not classify.
	KindUnknownRequest
	// KindValidation is a malformed query or payload rejected before reaching the database.
	KindValidation
	// KindInitialization is a failure to connect to or authenticate with the database.
	KindInitialization
	// KindFatal is a crash of the storage client itself.
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindKnownRequest:
		return "known_request"
	case KindUnknownRequest:
		return "unknown_request"
	case KindValidation:
		return "validation"
	case KindInitialization:
		return "initialization"
	case KindFatal:
		return "fatal"
	default:
		return "invalid"
	}
}

// Meta is the optional metadata attached to a storage failure.
//
// Target, Field, Column, Constraint, Model and Relation are curated names that may be
// shown to clients. Cause is storage-produced text and is only ever logged.
type Meta struct {
	Target     []string
	Field      string
	Column     string
	Constraint string
	Model      string
	Relation   string
	Cause      string
}

// Fields returns the column names the failure refers to, preferring Target.
func (m Meta) Fields() []string {
	if len(m.Target) > 0 {
		out := make([]string, len(m.Target))
		copy(out, m.Target)
		return out
	}
	if m.Field != "" {
		return []string{m.Field}
	}
	if m.Column != "" {
		return []string{m.Column}
	}
	return nil
}

// Error is the storage failure value. Construct it with [Known] or [New].
type Error struct {
	Kind  Kind
	Code  Code
	Meta  Meta
	Cause error
}

// Known builds a KindKnownRequest error with the given code.
func Known(code Code, meta Meta, cause error) *Error {
	return &Error{Kind: KindKnownRequest, Code: code, Meta: meta, Cause: cause}
}

// New builds an error of any other kind.
func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("storage: ")
	b.WriteString(e.Kind.String())
	if e.Code != "" {
		b.WriteString(" ")
		b.WriteString(string(e.Code))
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Classify converts err into an *Error. It reports false when err did not originate in
// a supported storage driver.
func Classify(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}

	var se *Error
	if errors.As(err, &se) && se != nil {
		return se, true
	}

	for _, adapter := range adapters {
		if se, ok := adapter(err); ok {
			return se, true
		}
	}
	return nil, false
}

type adapter func(error) (*Error, bool)

// Drivers wrap each other (gorm wraps pgconn), so the most specific adapters run first.
var adapters = []adapter{
	FromPostgres,
	FromSQLite,
	FromGorm,
	FromSQL,
}
