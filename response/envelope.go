package response

import (
	"encoding/json"
	"maps"
	"net/http"
	"slices"
)

// Params is the full input of [New]. Zero values mean: application code 0, no data,
// no errors object.
type Params struct {
	Code    int
	Message string
	Data    any
	Errors  map[string]any
	Status  int
}

// Envelope is the canonical success/failure result of a route.
//
// Envelope is a value type with unexported fields; every accessor returns deep copies of the
// errors object it holds, so an Envelope can be shared between goroutines once built.
type Envelope struct {
	success bool
	code    int
	message string
	data    any
	errors  map[string]any
	status  int
}

// Body is the JSON shape written on the wire.
type Body struct {
	Success bool           `json:"success"`
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data"`
	Errors  map[string]any `json:"errors,omitempty"`
}

// WireResponse pairs the status line with the body that goes under it.
type WireResponse struct {
	Status int
	Body   Body
}

// New builds an Envelope from p. It never fails: an unregistered status still produces
// an envelope whose StatusName is [UnknownStatus].
func New(p Params) Envelope {
	env := Envelope{
		success: IsSuccess(p.Status),
		code:    p.Code,
		message: p.Message,
		data:    p.Data,
		status:  p.Status,
	}
	if p.Errors != nil {
		env.errors = cloneErrors(p.Errors)
	}
	return env
}

// Success is true exactly when Status is in [200,300).
func (e Envelope) Success() bool { return e.success }

// Code is the application-level code, 0 unless set.
func (e Envelope) Code() int { return e.code }

// Message is the human-readable message.
func (e Envelope) Message() string { return e.message }

// Data is the payload, nil when absent.
func (e Envelope) Data() any { return e.data }

// Status is the HTTP status the envelope is written with.
func (e Envelope) Status() int { return e.status }

// StatusName is the registry reason phrase for Status.
func (e Envelope) StatusName() string { return StatusName(e.status) }

// Errors returns a copy of the structured errors object, nil when absent.
func (e Envelope) Errors() map[string]any {
	if e.errors == nil {
		return nil
	}
	return cloneErrors(e.errors)
}

// cloneErrors copies m along with the nested maps and slices it holds.
func cloneErrors(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneErrors(v)
	case map[string]string:
		return maps.Clone(v)
	case []string:
		return slices.Clone(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// IsZero reports whether e was never constructed.
func (e Envelope) IsZero() bool { return e.status == 0 }

// Wire returns the status line and body for e.
func (e Envelope) Wire() WireResponse {
	return WireResponse{
		Status: e.status,
		Body: Body{
			Success: e.success,
			Code:    e.code,
			Message: e.message,
			Data:    e.data,
			Errors:  e.Errors(),
		},
	}
}

// MarshalJSON encodes the wire body of e.
func (e Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Wire().Body)
}

// Write sends env to w as JSON with env's status. 204 and 304 are written without a body.
func Write(w http.ResponseWriter, env Envelope) error {
	wire := env.Wire()
	if wire.Status == http.StatusNoContent || wire.Status == http.StatusNotModified {
		w.WriteHeader(wire.Status)
		return nil
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(wire.Status)
	return json.NewEncoder(w).Encode(wire.Body)
}
