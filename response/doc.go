// Package response defines the single envelope every API route answers with and the
// registry of HTTP status codes and reason phrases it is built on.
//
// # Wire contract
//
// An [Envelope] serializes as
//
//	{"success": bool, "code": number, "message": string, "data": any|null, "errors": object?}
//
// where "errors" is present only when non-nil and "success" is always exactly
// 200 <= status < 300.
//
// # Construction
//
// Routes build envelopes through the named presets ([OK], [Created], [BadRequest],
// [Forbidden], ...). Each preset pins its status and carries a default message that
// [WithMessage] can replace. Envelopes are values: nothing mutates them after construction.
package response
