package dejson

import (
	"errors"
	"fmt"

	"github.com/kaptinlin/go-i18n"
)

// Status is the runtime's ABI-stable result code. Its numeric values are
// part of the wire contract between the schema compiler and the runtime
// and must never be renumbered; new codes are appended at the end.
type Status int

// Runtime status codes, in the order defined by the original ABI.
const (
	StatusOK Status = iota
	StatusObjectExpected
	StatusUnknownRecord
	StatusEOFExpected
	StatusMissingKey
	StatusUnterminatedKey
	StatusMissingValue
	StatusUnterminatedObject
	StatusInvalidValue
	StatusUnterminatedString
	StatusUnterminatedArray
	StatusInvalidEscape

	// StatusBufferTooSmall is returned when a materialization pass would
	// write past the end of the caller-supplied buffer. Never produced by
	// a correctly-sized call (one preceded by Size), but guards against a
	// caller passing a stale or truncated buffer.
	StatusBufferTooSmall

	// StatusDuplicateName is a compile-time-only status surfaced by
	// internal/codegen when two record or field names hash to the same
	// DJB32 value; the runtime never returns it.
	StatusDuplicateName
)

// === Runtime status errors ===
var (
	// ErrObjectExpected is returned when a '{' was required but not found.
	ErrObjectExpected = errors.New("object expected")

	// ErrUnknownRecord is returned when a record hash has no resolver entry.
	ErrUnknownRecord = errors.New("unknown record")

	// ErrEOFExpected is returned when trailing non-whitespace bytes follow the root value.
	ErrEOFExpected = errors.New("end of input expected")

	// ErrMissingKey is returned when an object member does not begin with a quoted key.
	ErrMissingKey = errors.New("missing key")

	// ErrUnterminatedKey is returned when a quoted key's closing quote is never found.
	ErrUnterminatedKey = errors.New("unterminated key")

	// ErrMissingValue is returned when the ':' separating key and value is missing.
	ErrMissingValue = errors.New("missing value")

	// ErrUnterminatedObject is returned when an object's closing '}' is never found.
	ErrUnterminatedObject = errors.New("unterminated object")

	// ErrInvalidValue is returned when a JSON value is malformed or out of range for its field.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnterminatedString is returned when a string literal's closing quote is never found.
	ErrUnterminatedString = errors.New("unterminated string")

	// ErrUnterminatedArray is returned when an array's closing ']' is never found.
	ErrUnterminatedArray = errors.New("unterminated array")

	// ErrInvalidEscape is returned when a string literal contains an unknown or malformed escape.
	ErrInvalidEscape = errors.New("invalid escape")

	// ErrBufferTooSmall is returned when materialization would write past the supplied buffer.
	ErrBufferTooSmall = errors.New("buffer too small")

	// ErrDuplicateName is returned by the compiler when two names hash identically.
	ErrDuplicateName = errors.New("duplicate name hash")
)

var statusErrors = [...]error{
	StatusOK:                 nil,
	StatusObjectExpected:     ErrObjectExpected,
	StatusUnknownRecord:      ErrUnknownRecord,
	StatusEOFExpected:        ErrEOFExpected,
	StatusMissingKey:         ErrMissingKey,
	StatusUnterminatedKey:    ErrUnterminatedKey,
	StatusMissingValue:       ErrMissingValue,
	StatusUnterminatedObject: ErrUnterminatedObject,
	StatusInvalidValue:       ErrInvalidValue,
	StatusUnterminatedString: ErrUnterminatedString,
	StatusUnterminatedArray:  ErrUnterminatedArray,
	StatusInvalidEscape:      ErrInvalidEscape,
	StatusBufferTooSmall:     ErrBufferTooSmall,
	StatusDuplicateName:      ErrDuplicateName,
}

var statusCodes = map[error]Status{}

func init() {
	for status, err := range statusErrors {
		if err != nil {
			statusCodes[err] = Status(status)
		}
	}
}

// Err returns the sentinel error for a status code, or nil for StatusOK.
func (s Status) Err() error {
	if int(s) < 0 || int(s) >= len(statusErrors) {
		return fmt.Errorf("dejson: unknown status %d", int(s))
	}
	return statusErrors[s]
}

// StatusOf extracts the Status carried by an error produced by this package.
// It returns StatusOK if err is nil, the matching status if err is one of
// this package's sentinel errors or wraps one directly (one level of
// errors.Unwrap), and StatusInvalidValue for any other error.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	if status, ok := statusCodes[errors.Unwrap(err)]; ok {
		return status
	}
	if status, ok := statusCodes[err]; ok {
		return status
	}
	return StatusInvalidValue
}

// statusMessageCodes maps a Status to its i18n message key, used by Localize.
var statusMessageCodes = map[Status]string{
	StatusObjectExpected:     "object_expected",
	StatusUnknownRecord:      "unknown_record",
	StatusEOFExpected:        "eof_expected",
	StatusMissingKey:         "missing_key",
	StatusUnterminatedKey:    "unterminated_key",
	StatusMissingValue:       "missing_value",
	StatusUnterminatedObject: "unterminated_object",
	StatusInvalidValue:       "invalid_value",
	StatusUnterminatedString: "unterminated_string",
	StatusUnterminatedArray:  "unterminated_array",
	StatusInvalidEscape:      "invalid_escape",
	StatusBufferTooSmall:     "buffer_too_small",
	StatusDuplicateName:      "duplicate_name",
}

// Localize returns a localized diagnostic for this status using the
// embedded locale bundle, falling back to the default English message.
func (s Status) Localize(localizer *i18n.Localizer) string {
	code, ok := statusMessageCodes[s]
	if !ok || localizer == nil {
		if err := s.Err(); err != nil {
			return err.Error()
		}
		return "ok"
	}
	return localizer.Get(code)
}
