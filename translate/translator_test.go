package translate

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AdolfoCB/almapac-gateway/response"
	"github.com/AdolfoCB/almapac-gateway/storage"
	"github.com/jackc/pgx/v5/pgconn"
)

func quietTranslator() *Translator {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var expectedStatus = map[storage.Code]int{
	storage.CodeValueTooLong:              422,
	storage.CodeRecordNotFoundInWhere:     404,
	storage.CodeUniqueViolation:           409,
	storage.CodeForeignKeyViolation:       409,
	storage.CodeConstraintFailed:          400,
	storage.CodeInvalidStoredValue:        400,
	storage.CodeInvalidValue:              400,
	storage.CodeDataValidation:            422,
	storage.CodeQueryParse:                400,
	storage.CodeQueryValidation:           400,
	storage.CodeRawQueryFailed:            500,
	storage.CodeNullViolation:             422,
	storage.CodeMissingRequiredValue:      422,
	storage.CodeMissingRequiredArgument:   400,
	storage.CodeRequiredRelationViolation: 409,
	storage.CodeRelatedRecordNotFound:     404,
	storage.CodeQueryInterpretation:       400,
	storage.CodeRelationNotConnected:      400,
	storage.CodeConnectedRecordsNotFound:  404,
	storage.CodeInputError:                400,
	storage.CodeValueOutOfRange:           422,
	storage.CodeTableNotFound:             500,
	storage.CodeColumnNotFound:            500,
	storage.CodeInconsistentColumnData:    400,
	storage.CodeConnectionPoolTimeout:     503,
	storage.CodeRecordNotFound:            404,
	storage.CodeUnsupportedFeature:        500,
	storage.CodeMultipleErrors:            500,
	storage.CodeTransactionAPI:            500,
	storage.CodeQueryParameterLimit:       400,
	storage.CodeFulltextIndexNotFound:     500,
	storage.CodeReplicaSetRequired:        500,
	storage.CodeNumberOverflow:            422,
	storage.CodeWriteConflict:             409,
}

func TestEveryKnownCodeHasRule(t *testing.T) {
	for _, code := range storage.KnownCodes() {
		if _, ok := rules[code]; !ok {
			t.Fatalf("code %s has no translation rule", code)
		}
	}
	if len(rules) != len(storage.KnownCodes()) {
		t.Fatalf("rules table has %d entries, vocabulary has %d", len(rules), len(storage.KnownCodes()))
	}
}

func TestTranslateKnownCodes(t *testing.T) {
	tr := quietTranslator()
	const secret = "duplicate key value violates unique constraint \"barcos_pkey\" on host 10.0.0.4"

	for _, code := range storage.KnownCodes() {
		err := storage.Known(code, storage.Meta{
			Target:     []string{"matricula"},
			Constraint: "barcos_matricula_key",
			Model:      "Barco",
			Cause:      secret,
		}, errors.New(secret))

		env, ok := tr.Translate(err)
		if !ok {
			t.Fatalf("%s: translate returned not recognized", code)
		}
		want, ok := expectedStatus[code]
		if !ok {
			t.Fatalf("%s: missing from expected status table", code)
		}
		if env.Status() != want {
			t.Fatalf("%s: status %d, want %d", code, env.Status(), want)
		}
		if env.Success() {
			t.Fatalf("%s: failure envelope reported success", code)
		}
		if strings.Contains(env.Message(), secret) || strings.Contains(env.Message(), "10.0.0.4") {
			t.Fatalf("%s: message leaks storage text: %q", code, env.Message())
		}
		if env.Errors()["code"] != string(code) {
			t.Fatalf("%s: errors.code = %v", code, env.Errors()["code"])
		}
		for _, v := range env.Errors() {
			if s, ok := v.(string); ok && strings.Contains(s, secret) {
				t.Fatalf("%s: errors object leaks storage text", code)
			}
		}
	}
}

func TestTranslateDuplicateNameScenario(t *testing.T) {
	err := storage.Known(storage.CodeUniqueViolation, storage.Meta{
		Target: []string{"nombre"},
		Model:  "Barco",
	}, nil)

	env, ok := quietTranslator().Translate(err)
	if !ok {
		t.Fatal("expected recognized error")
	}
	if env.Status() != http.StatusConflict {
		t.Fatalf("expected 409, got %d", env.Status())
	}
	if !strings.Contains(env.Message(), "ya existe un barco con este nombre") {
		t.Fatalf("unexpected message %q", env.Message())
	}
	fields, _ := env.Errors()["fields"].([]string)
	if len(fields) != 1 || fields[0] != "nombre" {
		t.Fatalf("fields not exposed for highlighting: %v", env.Errors())
	}
}

func TestDuplicateMessageVariants(t *testing.T) {
	cases := []struct {
		meta storage.Meta
		want string
	}{
		{storage.Meta{Target: []string{"empresa_id", "codigo"}}, "empresa_id, codigo"},
		{storage.Meta{Target: []string{"nombre_muelle"}, Model: "Muelle"}, "ya existe un muelle con este nombre"},
		{storage.Meta{Field: "username"}, "ya existe un registro con este nombre"},
		{storage.Meta{Column: "matricula"}, "mismo valor de matricula"},
		{storage.Meta{}, "ya existe un registro con estos datos"},
	}
	for _, tc := range cases {
		if got := duplicateMessage(tc.meta); !strings.Contains(got, tc.want) {
			t.Fatalf("duplicateMessage(%+v) = %q, want substring %q", tc.meta, got, tc.want)
		}
	}
}

func TestTranslateInitializationScenario(t *testing.T) {
	internal := "dial tcp 10.1.2.3:5432: connect: connection refused"
	err := storage.New(storage.KindInitialization, errors.New(internal))

	env, ok := quietTranslator().Translate(err)
	if !ok {
		t.Fatal("expected recognized error")
	}
	if env.Status() != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", env.Status())
	}
	if !strings.Contains(env.Message(), "No se pudo establecer conexión") {
		t.Fatalf("unexpected message %q", env.Message())
	}
	if strings.Contains(env.Message(), internal) || env.Errors() != nil {
		t.Fatalf("initialization failure leaked detail: %+v", env.Wire())
	}
}

func TestTranslateKinds(t *testing.T) {
	tr := quietTranslator()
	cases := []struct {
		kind   storage.Kind
		status int
	}{
		{storage.KindValidation, 400},
		{storage.KindInitialization, 503},
		{storage.KindFatal, 500},
		{storage.KindUnknownRequest, 500},
	}
	for _, tc := range cases {
		env, ok := tr.Translate(storage.New(tc.kind, errors.New("inner detail")))
		if !ok || env.Status() != tc.status {
			t.Fatalf("%s: got %d ok=%v, want %d", tc.kind, env.Status(), ok, tc.status)
		}
		if strings.Contains(env.Message(), "inner detail") {
			t.Fatalf("%s: leaked inner detail", tc.kind)
		}
	}
}

func TestTranslateUnknownCodeKeepsRawCode(t *testing.T) {
	env, ok := quietTranslator().Translate(storage.Known("P2099", storage.Meta{}, nil))
	if !ok {
		t.Fatal("expected recognized error")
	}
	if env.Status() != http.StatusInternalServerError || env.Message() != MsgUnexpectedCode {
		t.Fatalf("unexpected envelope %+v", env.Wire())
	}
	if env.Errors()["code"] != "P2099" {
		t.Fatalf("raw code missing: %v", env.Errors())
	}
}

func TestTranslateUnrecognizedReturnsFalse(t *testing.T) {
	tr := quietTranslator()
	for _, err := range []error{nil, errors.New("validation: bad input"), io.ErrUnexpectedEOF} {
		if env, ok := tr.Translate(err); ok {
			t.Fatalf("Translate(%v) = %+v, want not recognized", err, env.Wire())
		}
	}
}

func TestTranslateDriverErrorEndToEnd(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:      "23505",
		TableName: "barco",
		Message:   `duplicate key value violates unique constraint "barco_nombre_key"`,
		Detail:    `Key (nombre)=(Titan) already exists.`,
	}
	env, ok := quietTranslator().Translate(pgErr)
	if !ok || env.Status() != http.StatusConflict {
		t.Fatalf("unexpected translation: %+v ok=%v", env.Wire(), ok)
	}
	if !strings.Contains(env.Message(), "ya existe un barco con este nombre") {
		t.Fatalf("unexpected message %q", env.Message())
	}
	if strings.Contains(env.Message(), "barco_nombre_key") || strings.Contains(env.Message(), "Titan") {
		t.Fatalf("message leaks driver text: %q", env.Message())
	}
}

func TestRespondFallsBackToInternalError(t *testing.T) {
	rr := httptest.NewRecorder()
	quietTranslator().Respond(rr, errors.New("pdf renderer exploded"))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "pdf renderer") {
		t.Fatalf("raw error leaked: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), response.MsgInternalError) {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
}
