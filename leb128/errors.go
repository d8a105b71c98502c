package leb128

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	// ERR_UNEXPECTED_EOF: input ended before a byte with a clear continuation bit.
	ERR_UNEXPECTED_EOF ErrorCode = "ERR_UNEXPECTED_EOF"

	// Reported by DecodeCanonical only.
	ERR_OVERFLOW    ErrorCode = "ERR_OVERFLOW"
	ERR_NON_MINIMAL ErrorCode = "ERR_NON_MINIMAL"

	// Reported by DecodeN only.
	ERR_INVALID_COUNT ErrorCode = "ERR_INVALID_COUNT"
)

type Error struct {
	Code ErrorCode
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Is matches any *Error with the same code; Msg is ignored.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrUnexpectedEOF = &Error{Code: ERR_UNEXPECTED_EOF}
	ErrOverflow      = &Error{Code: ERR_OVERFLOW}
	ErrNonMinimal    = &Error{Code: ERR_NON_MINIMAL}
	ErrInvalidCount  = &Error{Code: ERR_INVALID_COUNT}
)

// CodeOf extracts the code of the first *Error in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if !errors.As(err, &e) || e == nil {
		return "", false
	}
	return e.Code, true
}

func leberr(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}
