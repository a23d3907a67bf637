package storage

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var pgKnownCodes = map[string]Code{
	"23505": CodeUniqueViolation,
	"23503": CodeForeignKeyViolation,
	"23502": CodeNullViolation,
	"23514": CodeConstraintFailed,
	"23P01": CodeConstraintFailed,
	"22001": CodeValueTooLong,
	"22003": CodeValueOutOfRange,
	"22P02": CodeInvalidValue,
	"22007": CodeDataValidation,
	"22008": CodeDataValidation,
	"22023": CodeInvalidValue,
	"42P01": CodeTableNotFound,
	"42703": CodeColumnNotFound,
	"42601": CodeQueryParse,
	"42804": CodeInconsistentColumnData,
	"40001": CodeWriteConflict,
	"40P01": CodeWriteConflict,
	"57014": CodeConnectionPoolTimeout,
	"54000": CodeQueryParameterLimit,
	"0A000": CodeUnsupportedFeature,
	"25P02": CodeTransactionAPI,
}

// FromPostgres classifies *pgconn.PgError and *pgconn.ConnectError values.
func FromPostgres(err error) (*Error, bool) {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return New(KindInitialization, err), true
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil, false
	}

	switch {
	case strings.HasPrefix(pgErr.Code, "08"), // connection exception
		strings.HasPrefix(pgErr.Code, "28"), // invalid authorization
		pgErr.Code == "3D000",               // unknown database
		pgErr.Code == "53300",               // too many connections
		pgErr.Code == "57P03":               // cannot connect now
		return New(KindInitialization, err), true
	case strings.HasPrefix(pgErr.Code, "XX"):
		return New(KindFatal, err), true
	}

	code, ok := pgKnownCodes[pgErr.Code]
	if !ok {
		return New(KindUnknownRequest, err), true
	}

	meta := Meta{
		Column:     pgErr.ColumnName,
		Constraint: pgErr.ConstraintName,
		Model:      pgErr.TableName,
		Cause:      pgErr.Message,
	}
	if code == CodeUniqueViolation || code == CodeForeignKeyViolation {
		meta.Target = keyColumns(pgErr.Detail)
	}
	return Known(code, meta, err), true
}

// keyColumns extracts the column list from details such as
// "Key (empresa_id, nombre)=(1, Titan) already exists.".
func keyColumns(detail string) []string {
	rest, ok := strings.CutPrefix(detail, "Key (")
	if !ok {
		return nil
	}
	list, _, ok := strings.Cut(rest, ")=")
	if !ok {
		return nil
	}
	var out []string
	for _, col := range strings.Split(list, ",") {
		col = strings.Trim(strings.TrimSpace(col), `"`)
		if col != "" {
			out = append(out, col)
		}
	}
	return out
}
