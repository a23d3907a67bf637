package gateway

import (
	"log/slog"
	"net/http"

	"github.com/AdolfoCB/almapac-gateway/permission"
	"github.com/AdolfoCB/almapac-gateway/response"
)

// MsgAuthenticate is the fixed 401 message.
const MsgAuthenticate = "No autenticado. Inicie sesión o envíe el encabezado Authorization: Bearer <token>"

// Authorize permits id when allow is empty or contains id.RoleID, and returns
// [ErrForbidden] otherwise. It depends on nothing but its arguments.
func Authorize(id Identity, allow permission.RoleSet) error {
	if allow.Empty() || allow.Has(id.RoleID) {
		return nil
	}
	return ErrForbidden
}

// Guard resolves the caller of r and checks it against allow. When ok is false the
// returned envelope (401 or 403) must be written as the response. The 403 envelope never
// mentions which roles would have been accepted.
func (g *Gateway) Guard(r *http.Request, allow permission.RoleSet) (id Identity, failure response.Envelope, ok bool) {
	id, _, failure, ok = g.GuardSource(r, allow)
	return id, failure, ok
}

// GuardSource is Guard that also reports which transport the identity came from.
func (g *Gateway) GuardSource(r *http.Request, allow permission.RoleSet) (Identity, CredentialSource, response.Envelope, bool) {
	if g == nil {
		return Identity{}, SourceNone, response.InternalError(), false
	}

	id, source, err := g.Resolve(r)
	if err != nil {
		g.metrics.Inc(MetricNotAuthenticated)
		g.emitAudit(r.Context(), r, AuditEvent{EventType: AuditNotAuthenticated, Reason: err.Error()})
		return Identity{}, SourceNone, g.unauthorized, false
	}

	if err := Authorize(id, allow); err != nil {
		g.metrics.Inc(MetricForbidden)
		g.logger.LogAttrs(r.Context(), slog.LevelInfo, "access denied",
			slog.String("event", "access_denied"),
			slog.String("username", id.Username),
			slog.Int("role_id", id.RoleID),
			slog.String("source", source.String()),
			slog.String("allow", allow.String()),
			slog.String("path", r.URL.Path),
		)
		g.emitAudit(r.Context(), r, AuditEvent{
			EventType: AuditAccessDenied,
			Username:  id.Username,
			RoleID:    id.RoleID,
			Source:    source.String(),
			Reason:    err.Error(),
		})
		return Identity{}, SourceNone, g.forbidden, false
	}

	g.metrics.Inc(MetricPermitted)
	return id, source, response.Envelope{}, true
}

func failureEnvelopes(hint string) (unauthorized, forbidden response.Envelope) {
	if hint == "" {
		hint = DefaultTokenHint
	}
	unauthorized = response.Unauthorized(
		response.WithMessage(MsgAuthenticate),
		response.WithError("hint", hint),
	)
	forbidden = response.Forbidden()
	return unauthorized, forbidden
}
