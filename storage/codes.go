package storage

// Code is a storage error code from the fixed vocabulary below. The values are the
// vendor codes the application's data layer has always reported.
type Code string

const (
	CodeValueTooLong              Code = "P2000"
	CodeRecordNotFoundInWhere     Code = "P2001"
	CodeUniqueViolation           Code = "P2002"
	CodeForeignKeyViolation       Code = "P2003"
	CodeConstraintFailed          Code = "P2004"
	CodeInvalidStoredValue        Code = "P2005"
	CodeInvalidValue              Code = "P2006"
	CodeDataValidation            Code = "P2007"
	CodeQueryParse                Code = "P2008"
	CodeQueryValidation           Code = "P2009"
	CodeRawQueryFailed            Code = "P2010"
	CodeNullViolation             Code = "P2011"
	CodeMissingRequiredValue      Code = "P2012"
	CodeMissingRequiredArgument   Code = "P2013"
	CodeRequiredRelationViolation Code = "P2014"
	CodeRelatedRecordNotFound     Code = "P2015"
	CodeQueryInterpretation       Code = "P2016"
	CodeRelationNotConnected      Code = "P2017"
	CodeConnectedRecordsNotFound  Code = "P2018"
	CodeInputError                Code = "P2019"
	CodeValueOutOfRange           Code = "P2020"
	CodeTableNotFound             Code = "P2021"
	CodeColumnNotFound            Code = "P2022"
	CodeInconsistentColumnData    Code = "P2023"
	CodeConnectionPoolTimeout     Code = "P2024"
	CodeRecordNotFound            Code = "P2025"
	CodeUnsupportedFeature        Code = "P2026"
	CodeMultipleErrors            Code = "P2027"
	CodeTransactionAPI            Code = "P2028"
	CodeQueryParameterLimit       Code = "P2029"
	CodeFulltextIndexNotFound     Code = "P2030"
	CodeReplicaSetRequired        Code = "P2031"
	CodeNumberOverflow            Code = "P2033"
	CodeWriteConflict             Code = "P2034"
)

var knownCodes = []Code{
	CodeValueTooLong,
	CodeRecordNotFoundInWhere,
	CodeUniqueViolation,
	CodeForeignKeyViolation,
	CodeConstraintFailed,
	CodeInvalidStoredValue,
	CodeInvalidValue,
	CodeDataValidation,
	CodeQueryParse,
	CodeQueryValidation,
	CodeRawQueryFailed,
	CodeNullViolation,
	CodeMissingRequiredValue,
	CodeMissingRequiredArgument,
	CodeRequiredRelationViolation,
	CodeRelatedRecordNotFound,
	CodeQueryInterpretation,
	CodeRelationNotConnected,
	CodeConnectedRecordsNotFound,
	CodeInputError,
	CodeValueOutOfRange,
	CodeTableNotFound,
	CodeColumnNotFound,
	CodeInconsistentColumnData,
	CodeConnectionPoolTimeout,
	CodeRecordNotFound,
	CodeUnsupportedFeature,
	CodeMultipleErrors,
	CodeTransactionAPI,
	CodeQueryParameterLimit,
	CodeFulltextIndexNotFound,
	CodeReplicaSetRequired,
	CodeNumberOverflow,
	CodeWriteConflict,
}

// KnownCodes returns the full vocabulary in code order.
func KnownCodes() []Code {
	out := make([]Code, len(knownCodes))
	copy(out, knownCodes)
	return out
}

// IsKnown reports whether c belongs to the vocabulary.
func IsKnown(c Code) bool {
	for _, k := range knownCodes {
		if k == c {
			return true
		}
	}
	return false
}
