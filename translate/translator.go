package translate

import (
	"log/slog"
	"net/http"

	"github.com/AdolfoCB/almapac-gateway/response"
	"github.com/AdolfoCB/almapac-gateway/storage"
)

// Fixed messages for the non-request storage kinds.
const (
	MsgValidation     = "Los datos enviados a la base de datos no son válidos"
	MsgInitialization = "No se pudo establecer conexión con la base de datos"
	MsgFatal          = "Error crítico en la base de datos"
	MsgUnknownRequest = "Error desconocido en la base de datos"
	MsgUnexpectedCode = "Error inesperado de base de datos"
)

// Translator turns storage failures into envelopes. The zero value is usable and logs
// to slog.Default().
type Translator struct {
	logger *slog.Logger
}

// New returns a Translator that logs unrecognized failures to logger.
func New(logger *slog.Logger) *Translator {
	return &Translator{logger: logger}
}

func (t *Translator) log() *slog.Logger {
	if t == nil || t.logger == nil {
		return slog.Default()
	}
	return t.logger
}

// Translate maps err onto an envelope. It reports false when err is not a storage
// failure; the caller then answers with a generic 500 itself.
func (t *Translator) Translate(err error) (response.Envelope, bool) {
	se, ok := storage.Classify(err)
	if !ok {
		return response.Envelope{}, false
	}

	switch se.Kind {
	case storage.KindKnownRequest:
		return t.known(se), true
	case storage.KindValidation:
		return response.BadRequest(response.WithMessage(MsgValidation)), true
	case storage.KindInitialization:
		t.log().Error("storage unavailable",
			"event", "storage_initialization_failed",
			"error", se.Error(),
		)
		return response.ServiceUnavailable(response.WithMessage(MsgInitialization)), true
	case storage.KindFatal:
		t.log().Error("storage client crashed",
			"event", "storage_fatal",
			"error", se.Error(),
		)
		return response.InternalError(response.WithMessage(MsgFatal)), true
	default:
		t.log().Error("unrecognized storage failure",
			"event", "storage_error_unrecognized",
			"kind", se.Kind.String(),
			"error", se.Error(),
		)
		return response.InternalError(response.WithMessage(MsgUnknownRequest)), true
	}
}

func (t *Translator) known(se *storage.Error) response.Envelope {
	r, ok := rules[se.Code]
	if !ok {
		t.log().Error("storage error code without translation rule",
			"event", "storage_error_unknown_code",
			"code", string(se.Code),
			"error", se.Error(),
		)
		return response.InternalError(
			response.WithMessage(MsgUnexpectedCode),
			response.WithError("code", string(se.Code)),
		)
	}

	if r.status >= http.StatusInternalServerError {
		t.log().Error("storage request failed",
			"event", "storage_request_failed",
			"code", string(se.Code),
			"error", se.Error(),
		)
	}

	return response.New(response.Params{
		Status:  r.status,
		Message: r.message(se.Meta),
		Errors:  errorsObject(se, r.expose),
	})
}

func errorsObject(se *storage.Error, expose bool) map[string]any {
	out := map[string]any{"code": string(se.Code)}
	if !expose {
		return out
	}
	if fields := se.Meta.Fields(); len(fields) > 0 {
		out["fields"] = fields
	}
	if se.Meta.Model != "" {
		out["model"] = se.Meta.Model
	}
	if se.Meta.Constraint != "" {
		out["constraint"] = se.Meta.Constraint
	}
	if se.Meta.Relation != "" {
		out["relation"] = se.Meta.Relation
	}
	return out
}

// OrInternal translates err, falling back to a generic 500 for non-storage failures.
func (t *Translator) OrInternal(err error) response.Envelope {
	if env, ok := t.Translate(err); ok {
		return env
	}
	t.log().Error("unhandled route error",
		"event", "route_error_unhandled",
		"error", err,
	)
	return response.InternalError()
}

// Respond writes the envelope for err to w.
func (t *Translator) Respond(w http.ResponseWriter, err error) {
	_ = response.Write(w, t.OrInternal(err))
}
