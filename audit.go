package gateway

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	internalaudit "github.com/AdolfoCB/almapac-gateway/internal/audit"
)

// Audit event types.
const (
	AuditNotAuthenticated = "not_authenticated"
	AuditAccessDenied     = "access_denied"
	AuditSessionStarted   = "session_started"
	AuditSessionEnded     = "session_ended"
)

// AuditEvent is one access decision or session lifecycle record.
type AuditEvent = internalaudit.Event

// AuditSink receives audit events from the dispatcher goroutine.
type AuditSink = internalaudit.Sink

// NoOpSink discards events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink forwards events to a buffered channel.
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink writes one JSON object per line.
type JSONWriterSink = internalaudit.JSONWriterSink

// SlogSink logs events through a *slog.Logger.
type SlogSink = internalaudit.SlogSink

func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

func NewSlogSink(logger *slog.Logger) *SlogSink {
	return internalaudit.NewSlogSink(logger)
}

func (g *Gateway) emitAudit(ctx context.Context, r *http.Request, event AuditEvent) {
	if g.audit == nil {
		return
	}
	if r != nil {
		event.Method = r.Method
		event.Path = r.URL.Path
		event.RemoteAddr = r.RemoteAddr
	}
	g.audit.Emit(ctx, event)
}
