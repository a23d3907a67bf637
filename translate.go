package gateway

import (
	"net/http"

	"github.com/AdolfoCB/almapac-gateway/response"
	"github.com/AdolfoCB/almapac-gateway/storage"
)

// Translate maps err onto a response envelope. ok is false when err is not a storage
// error; the caller then decides what to send.
func (g *Gateway) Translate(err error) (response.Envelope, bool) {
	if g == nil {
		return response.Envelope{}, false
	}
	env, ok := g.translator.Translate(err)
	if !ok {
		g.metrics.Inc(MetricStorageUnrecognized)
		return env, false
	}
	if se, classified := storage.Classify(err); classified && se.Kind == storage.KindKnownRequest && !storage.IsKnown(se.Code) {
		g.metrics.Inc(MetricStorageUnknownCode)
	} else {
		g.metrics.Inc(MetricStorageTranslated)
	}
	return env, true
}

// Respond writes the translation of err, or a generic 500 when err is not a storage
// error.
func (g *Gateway) Respond(w http.ResponseWriter, err error) {
	env, ok := g.Translate(err)
	if !ok {
		env = g.translator.OrInternal(err)
	}
	_ = response.Write(w, env)
}
