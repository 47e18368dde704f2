// Package apperr provides the coded errors surfaced to users. Each error
// carries a machine-readable code plus the message-catalog key used to
// render it.
package apperr

import "errors"

// Code is a machine-readable error code.
type Code string

const (
	CodeConfigInvalid     Code = "CONFIG_INVALID"
	CodeBrowseModeConfirm Code = "BROWSE_MODE_CONFIRM"
	CodeEntityNotFound    Code = "ENTITY_NOT_FOUND"
	CodePackInvalid       Code = "PACK_INVALID"
	CodeFormulaInvalid    Code = "FORMULA_INVALID"
	CodeDialogClosed      Code = "DIALOG_CLOSED"
	CodeUnknown           Code = "UNKNOWN"
)

// keys maps codes to their message catalog key.
var keys = map[Code]string{
	CodeConfigInvalid:     "ITEM_BROWSER.Errors.ConfigInvalid",
	CodeBrowseModeConfirm: "ITEM_BROWSER.WaitError",
	CodeEntityNotFound:    "ITEM_BROWSER.Errors.EntityNotFound",
	CodePackInvalid:       "ITEM_BROWSER.Errors.PackInvalid",
	CodeFormulaInvalid:    "ITEM_BROWSER.Errors.FormulaInvalid",
	CodeDialogClosed:      "ITEM_BROWSER.Errors.DialogClosed",
}

// Error is a coded domain error.
type Error struct {
	Code     Code
	Message  string            // internal message for logs
	Metadata map[string]string // values for the localized template
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Message != "" {
		return e.Message + ": " + e.Cause.Error()
	}
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Key returns the message catalog key for the error's code.
func (e *Error) Key() string {
	return KeyFor(e.Code)
}

// New creates an error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata creates an error with values for the localized message.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap creates an error wrapping a cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// KeyFor returns the catalog key for a code.
func KeyFor(code Code) string {
	if k, ok := keys[code]; ok {
		return k
	}
	return "ITEM_BROWSER.Errors.Unknown"
}
