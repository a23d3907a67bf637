package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AdolfoCB/almapac-gateway/storage"
	"gorm.io/gorm"
)

func TestTranslateCountsOutcomes(t *testing.T) {
	env := newTestGateway(t)

	env1, ok := env.gw.Translate(gorm.ErrRecordNotFound)
	if !ok || env1.Status() != http.StatusNotFound {
		t.Fatalf("expected 404 for record not found, got %d ok=%v", env1.Status(), ok)
	}
	env2, ok := env.gw.Translate(storage.Known("P2099", storage.Meta{}, nil))
	if !ok || env2.Status() != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unknown code, got %d ok=%v", env2.Status(), ok)
	}
	if _, ok := env.gw.Translate(errors.New("plain failure")); ok {
		t.Fatal("expected plain error to be unrecognized")
	}

	snap := env.gw.MetricsSnapshot().Counters
	if snap[MetricStorageTranslated] != 1 || snap[MetricStorageUnknownCode] != 1 || snap[MetricStorageUnrecognized] != 1 {
		t.Fatalf("unexpected storage counters %v", snap)
	}
}

func TestRespondFallsBackToInternalError(t *testing.T) {
	env := newTestGateway(t)

	rec := httptest.NewRecorder()
	env.gw.Respond(rec, errors.New("boom"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["success"] != false {
		t.Fatalf("unexpected body %v", body)
	}
}
