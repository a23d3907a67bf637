package translate

import (
	"net/http"
	"strings"

	"github.com/AdolfoCB/almapac-gateway/storage"
)

type rule struct {
	status int
	// expose controls whether curated metadata is attached under "errors".
	expose  bool
	message func(storage.Meta) string
}

func fixed(msg string) func(storage.Meta) string {
	return func(storage.Meta) string { return msg }
}

// withField appends " (campo: x)" when exactly one column is known.
func withField(msg string) func(storage.Meta) string {
	return func(m storage.Meta) string {
		if fields := m.Fields(); len(fields) == 1 {
			return msg + " (campo: " + fields[0] + ")"
		}
		return msg
	}
}

var rules = map[storage.Code]rule{
	storage.CodeValueTooLong:              {http.StatusUnprocessableEntity, true, withField("El valor proporcionado es demasiado largo")},
	storage.CodeRecordNotFoundInWhere:     {http.StatusNotFound, false, notFoundMessage},
	storage.CodeUniqueViolation:           {http.StatusConflict, true, duplicateMessage},
	storage.CodeForeignKeyViolation:       {http.StatusConflict, true, fixed("La operación hace referencia a un registro relacionado que no existe o que está en uso")},
	storage.CodeConstraintFailed:          {http.StatusBadRequest, true, fixed("La operación viola una restricción de la base de datos")},
	storage.CodeInvalidStoredValue:        {http.StatusBadRequest, true, withField("El valor almacenado no es válido para el tipo del campo")},
	storage.CodeInvalidValue:              {http.StatusBadRequest, true, withField("El valor proporcionado no es válido")},
	storage.CodeDataValidation:            {http.StatusUnprocessableEntity, true, fixed("Los datos enviados no superaron la validación")},
	storage.CodeQueryParse:                {http.StatusBadRequest, false, fixed("La consulta no pudo ser interpretada")},
	storage.CodeQueryValidation:           {http.StatusBadRequest, false, fixed("La consulta no es válida")},
	storage.CodeRawQueryFailed:            {http.StatusInternalServerError, false, fixed("La consulta a la base de datos falló")},
	storage.CodeNullViolation:             {http.StatusUnprocessableEntity, true, requiredMessage},
	storage.CodeMissingRequiredValue:      {http.StatusUnprocessableEntity, true, requiredMessage},
	storage.CodeMissingRequiredArgument:   {http.StatusBadRequest, true, withField("Falta un argumento requerido")},
	storage.CodeRequiredRelationViolation: {http.StatusConflict, true, fixed("El cambio rompe una relación requerida entre registros")},
	storage.CodeRelatedRecordNotFound:     {http.StatusNotFound, true, fixed("No se encontró un registro relacionado")},
	storage.CodeQueryInterpretation:       {http.StatusBadRequest, false, fixed("Error al interpretar la consulta")},
	storage.CodeRelationNotConnected:      {http.StatusBadRequest, true, fixed("Los registros de la relación no están vinculados")},
	storage.CodeConnectedRecordsNotFound:  {http.StatusNotFound, true, fixed("No se encontraron los registros relacionados requeridos")},
	storage.CodeInputError:                {http.StatusBadRequest, true, fixed("Error en los datos de entrada")},
	storage.CodeValueOutOfRange:           {http.StatusUnprocessableEntity, true, withField("El valor está fuera del rango permitido")},
	storage.CodeTableNotFound:             {http.StatusInternalServerError, false, fixed("La estructura de la base de datos no coincide con la aplicación")},
	storage.CodeColumnNotFound:            {http.StatusInternalServerError, false, fixed("La estructura de la base de datos no coincide con la aplicación")},
	storage.CodeInconsistentColumnData:    {http.StatusBadRequest, true, withField("Datos inconsistentes para el campo")},
	storage.CodeConnectionPoolTimeout:     {http.StatusServiceUnavailable, false, fixed("La base de datos no respondió a tiempo, intente de nuevo")},
	storage.CodeRecordNotFound:            {http.StatusNotFound, false, notFoundMessage},
	storage.CodeUnsupportedFeature:        {http.StatusInternalServerError, false, fixed("Operación no soportada por la base de datos")},
	storage.CodeMultipleErrors:            {http.StatusInternalServerError, false, fixed("Se produjeron varios errores en la base de datos")},
	storage.CodeTransactionAPI:            {http.StatusInternalServerError, false, fixed("Error en la transacción de base de datos")},
	storage.CodeQueryParameterLimit:       {http.StatusBadRequest, false, fixed("La consulta excede el límite de parámetros permitido")},
	storage.CodeFulltextIndexNotFound:     {http.StatusInternalServerError, false, fixed("No existe el índice de búsqueda requerido")},
	storage.CodeReplicaSetRequired:        {http.StatusInternalServerError, false, fixed("La base de datos no está configurada para transacciones")},
	storage.CodeNumberOverflow:            {http.StatusUnprocessableEntity, true, withField("El número excede el tamaño permitido")},
	storage.CodeWriteConflict:             {http.StatusConflict, false, fixed("Conflicto de escritura con otra operación, intente de nuevo")},
}

var nameHints = []string{"nombre", "name"}

func hasNameHint(field string) bool {
	field = strings.ToLower(field)
	for _, hint := range nameHints {
		if strings.Contains(field, hint) {
			return true
		}
	}
	return false
}

func modelNoun(model string) string {
	model = strings.TrimSpace(model)
	if model == "" {
		return "registro"
	}
	return strings.ToLower(model)
}

func duplicateMessage(m storage.Meta) string {
	fields := m.Fields()
	switch {
	case len(fields) > 1:
		return "Registro duplicado: ya existe un registro con la misma combinación de " + strings.Join(fields, ", ")
	case len(fields) == 1 && hasNameHint(fields[0]):
		return "Registro duplicado: ya existe un " + modelNoun(m.Model) + " con este nombre"
	case len(fields) == 1:
		return "Registro duplicado: ya existe un registro con el mismo valor de " + fields[0]
	default:
		return "Registro duplicado: ya existe un registro con estos datos"
	}
}

func notFoundMessage(m storage.Meta) string {
	if m.Model != "" {
		return "No se encontró el registro de " + modelNoun(m.Model)
	}
	return "El registro solicitado no existe"
}

func requiredMessage(m storage.Meta) string {
	if fields := m.Fields(); len(fields) == 1 {
		return "El campo " + fields[0] + " es obligatorio"
	}
	return "Falta un valor obligatorio"
}
