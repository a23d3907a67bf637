package storage

import (
	"errors"

	"gorm.io/gorm"
)

var gormKnown = []struct {
	err  error
	code Code
}{
	{gorm.ErrRecordNotFound, CodeRecordNotFound},
	{gorm.ErrDuplicatedKey, CodeUniqueViolation},
	{gorm.ErrForeignKeyViolated, CodeForeignKeyViolation},
	{gorm.ErrCheckConstraintViolated, CodeConstraintFailed},
	{gorm.ErrInvalidData, CodeDataValidation},
	{gorm.ErrInvalidTransaction, CodeTransactionAPI},
	{gorm.ErrNotImplemented, CodeUnsupportedFeature},
	{gorm.ErrDryRunModeUnsupported, CodeUnsupportedFeature},
}

var gormValidation = []error{
	gorm.ErrMissingWhereClause,
	gorm.ErrUnsupportedRelation,
	gorm.ErrPrimaryKeyRequired,
	gorm.ErrModelValueRequired,
	gorm.ErrModelAccessibleFieldsRequired,
	gorm.ErrSubQueryRequired,
	gorm.ErrInvalidField,
	gorm.ErrEmptySlice,
	gorm.ErrInvalidValue,
	gorm.ErrInvalidValueOfLength,
	gorm.ErrPreloadNotAllowed,
}

var gormInitialization = []error{
	gorm.ErrUnsupportedDriver,
	gorm.ErrInvalidDB,
	gorm.ErrRegistered,
}

// FromGorm classifies gorm sentinel errors. Driver errors wrapped by gorm are handled by
// the driver adapters, which run first.
func FromGorm(err error) (*Error, bool) {
	for _, k := range gormKnown {
		if errors.Is(err, k.err) {
			return Known(k.code, Meta{}, err), true
		}
	}
	for _, v := range gormValidation {
		if errors.Is(err, v) {
			return New(KindValidation, err), true
		}
	}
	for _, i := range gormInitialization {
		if errors.Is(err, i) {
			return New(KindInitialization, err), true
		}
	}
	return nil, false
}
