package storage

import (
	"database/sql"
	"database/sql/driver"
	"errors"
)

// FromSQL classifies the database/sql sentinels shared by every driver.
func FromSQL(err error) (*Error, bool) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Known(CodeRecordNotFoundInWhere, Meta{}, err), true
	case errors.Is(err, sql.ErrTxDone):
		return Known(CodeTransactionAPI, Meta{}, err), true
	case errors.Is(err, sql.ErrConnDone), errors.Is(err, driver.ErrBadConn):
		return New(KindInitialization, err), true
	}
	return nil, false
}
