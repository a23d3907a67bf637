package response

import "net/http"

// Option adjusts a preset before the envelope is built.
type Option func(*Params)

// WithMessage replaces the preset's default message.
func WithMessage(msg string) Option {
	return func(p *Params) {
		p.Message = msg
	}
}

// WithCode sets the application-level code.
func WithCode(code int) Option {
	return func(p *Params) {
		p.Code = code
	}
}

// WithData attaches a payload.
func WithData(data any) Option {
	return func(p *Params) {
		p.Data = data
	}
}

// WithErrors attaches a structured errors object.
func WithErrors(errs map[string]any) Option {
	return func(p *Params) {
		p.Errors = errs
	}
}

// WithError adds one key to the errors object.
func WithError(key string, value any) Option {
	return func(p *Params) {
		next := make(map[string]any, len(p.Errors)+1)
		for k, v := range p.Errors {
			next[k] = v
		}
		next[key] = value
		p.Errors = next
	}
}

// Default messages. They are user-facing and in Spanish like the rest of the product.
const (
	MsgOK                 = "Operación exitosa"
	MsgCreated            = "Recurso creado correctamente"
	MsgAccepted           = "Solicitud aceptada"
	MsgNoContent          = "Sin contenido"
	MsgBadRequest         = "Solicitud inválida"
	MsgUnauthorized       = "No autenticado"
	MsgForbidden          = "Acceso denegado"
	MsgNotFound           = "Recurso no encontrado"
	MsgConflict           = "Conflicto con el estado actual del recurso"
	MsgUnprocessable      = "Los datos enviados no son válidos"
	MsgPageExpired        = "La página ha expirado, recargue e intente de nuevo"
	MsgInternalError      = "Error interno del servidor"
	MsgNotImplemented     = "Funcionalidad no implementada"
	MsgBadGateway         = "Respuesta inválida de un servicio externo"
	MsgServiceUnavailable = "Servicio no disponible temporalmente"
	MsgGatewayTimeout     = "Tiempo de espera agotado con un servicio externo"
)

func preset(status int, msg string, data any, opts []Option) Envelope {
	p := Params{Status: status, Message: msg, Data: data}
	for _, opt := range opts {
		if opt != nil {
			opt(&p)
		}
	}
	p.Status = status
	return New(p)
}

func OK(data any, opts ...Option) Envelope {
	return preset(http.StatusOK, MsgOK, data, opts)
}

func Created(data any, opts ...Option) Envelope {
	return preset(http.StatusCreated, MsgCreated, data, opts)
}

func Accepted(data any, opts ...Option) Envelope {
	return preset(http.StatusAccepted, MsgAccepted, data, opts)
}

func NoContent(opts ...Option) Envelope {
	return preset(http.StatusNoContent, MsgNoContent, nil, opts)
}

func BadRequest(opts ...Option) Envelope {
	return preset(http.StatusBadRequest, MsgBadRequest, nil, opts)
}

func Unauthorized(opts ...Option) Envelope {
	return preset(http.StatusUnauthorized, MsgUnauthorized, nil, opts)
}

func Forbidden(opts ...Option) Envelope {
	return preset(http.StatusForbidden, MsgForbidden, nil, opts)
}

func NotFound(opts ...Option) Envelope {
	return preset(http.StatusNotFound, MsgNotFound, nil, opts)
}

func Conflict(opts ...Option) Envelope {
	return preset(http.StatusConflict, MsgConflict, nil, opts)
}

func UnprocessableEntity(opts ...Option) Envelope {
	return preset(http.StatusUnprocessableEntity, MsgUnprocessable, nil, opts)
}

// PageExpired answers with the unofficial 419.
func PageExpired(opts ...Option) Envelope {
	return preset(StatusPageExpired, MsgPageExpired, nil, opts)
}

func InternalError(opts ...Option) Envelope {
	return preset(http.StatusInternalServerError, MsgInternalError, nil, opts)
}

func NotImplemented(opts ...Option) Envelope {
	return preset(http.StatusNotImplemented, MsgNotImplemented, nil, opts)
}

func BadGateway(opts ...Option) Envelope {
	return preset(http.StatusBadGateway, MsgBadGateway, nil, opts)
}

func ServiceUnavailable(opts ...Option) Envelope {
	return preset(http.StatusServiceUnavailable, MsgServiceUnavailable, nil, opts)
}

func GatewayTimeout(opts ...Option) Envelope {
	return preset(http.StatusGatewayTimeout, MsgGatewayTimeout, nil, opts)
}
