package rpt

import "fmt"

// ErrorCode is a stable numeric error code returned by the query surface,
// matching the SWMM output API's own error numbering so that callers
// porting code from that API see the same values.
type ErrorCode int

// Defined error codes. Values are part of the public API and must not
// change.
const (
	// ErrNone indicates success.
	ErrNone ErrorCode = 0

	// ErrNoOutputBuffer is returned when a query is passed a nil output
	// buffer.
	ErrNoOutputBuffer ErrorCode = 411

	// ErrNotOpen is returned by any query issued before Open succeeded or
	// after Close.
	ErrNotOpen ErrorCode = 412

	// ErrInvalidParameter is returned for an unrecognized enum value
	// (element kind, unit code, time code, ...).
	ErrInvalidParameter ErrorCode = 421

	// ErrOutOfRange is returned when an entity index is outside
	// [0, count) for its kind.
	ErrOutOfRange ErrorCode = 423

	// ErrFileUnopenable is returned when the OS could not open the file.
	ErrFileUnopenable ErrorCode = 434

	// ErrRunTerminatedNoResults is returned when the file's leading and
	// trailing magic numbers disagree, or the run terminated with an
	// error recorded in the epilogue.
	ErrRunTerminatedNoResults ErrorCode = 435

	// ErrNoResults is returned when the epilogue reports zero or fewer
	// reporting periods.
	ErrNoResults ErrorCode = 436

	// ErrOpenRequired keeps the C API's code 441 in the table. No
	// operation in this package returns it: queries on a handle that was
	// never opened return ErrNotOpen.
	ErrOpenRequired ErrorCode = 441
)

var errorText = map[ErrorCode]string{
	ErrNoOutputBuffer:         "Input Error 411: no memory allocated for results.",
	ErrNotOpen:                "Input Error 412: no results; binary file hasn't been opened.",
	ErrInvalidParameter:       "Input Error 421: invalid parameter code.",
	ErrOutOfRange:             "Input Error 423: index out of range.",
	ErrFileUnopenable:         "File Error 434: unable to open binary output file.",
	ErrRunTerminatedNoResults: "File Error 435: run terminated; no results in binary file.",
	ErrNoResults:              "File Error 436: no results in binary file.",
	ErrOpenRequired:           "Error 441: need to call Open before calling this function.",
}

// Error implements the error interface so an ErrorCode can be returned
// and compared directly as a Go error.
func (c ErrorCode) Error() string {
	if msg, ok := errorText[c]; ok {
		return msg
	}
	return fmt.Sprintf("swmmout: unknown error code %d", int(c))
}

// ErrorMessage copies the English message for code into a buffer
// truncated to n bytes, mirroring the C API's out-parameter allocator
// style. It returns the message cut to its first n bytes (the whole
// message when n <= 0 or n is at least its length) and ErrNone, or
// ("", ErrInvalidParameter) for an unrecognized code.
func ErrorMessage(code ErrorCode, n int) (string, ErrorCode) {
	msg, ok := errorText[code]
	if !ok {
		return "", ErrInvalidParameter
	}
	if n > 0 && n < len(msg) {
		return msg[:n], ErrNone
	}
	return msg, ErrNone
}
