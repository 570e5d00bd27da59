// Package sqlerr translates PostgreSQL driver errors into application errors.
//
// Raw SQLSTATE codes are mapped onto the few categories the HTTP layer
// presents as client errors. Everything else is Other.
package sqlerr

import (
	"fmt"
)

// Code is a driver-independent error category.
type Code string

const (
	Other             Code = "other"
	NotNullViolation  Code = "not_null_violation"
	InvalidText       Code = "invalid_text_representation"
	NumericOutOfRange Code = "numeric_value_out_of_range"
)

// Severity mirrors the PostgreSQL message severity levels.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a normalized database error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (SQLSTATE %s)", e.Severity, e.Message, e.DatabaseCode)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE code to a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "22P02":
		return InvalidText
	case "22003":
		return NumericOutOfRange
	default:
		return Other
	}
}

// MapSeverity maps the severity reported by the server. Unknown values are
// treated as errors.
func MapSeverity(severity string) Severity {
	switch s := Severity(severity); s {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return s
	default:
		return SeverityError
	}
}
