// Package schederr implements the closed failure taxonomy from the
// format/build/error-handling design: a small set of tagged error kinds
// that a host can switch on, instead of matching error strings.
package schederr

import "fmt"

// Kind is one of the closed set of failure modes the core can return.
type Kind string

const (
	KindEmptyFile             Kind = "EmptyFile"
	KindEncoding              Kind = "Encoding"
	KindInvalidFormat         Kind = "InvalidFormat"
	KindMissingHeader         Kind = "MissingHeader"
	KindMissingRequiredTable  Kind = "MissingRequiredTable"
	KindFileTooLarge          Kind = "FileTooLarge"
	KindTooManyRows           Kind = "TooManyRows"
	KindXMLParsingFailed      Kind = "XmlParsingFailed"
	KindBinaryFormatUnsupport Kind = "BinaryFormatNotFullySupported"
)

// Error is the single error type every core failure mode is reported
// as. Kind is the tag a host switches on; Message is for humans;
// Cause, when set, is the underlying error (wrapped, so errors.Is/As
// still reach it).
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, schederr.EmptyFile) work against the Kind tag
// without requiring a sentinel value per kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func kindOnly(k Kind) *Error { return &Error{Kind: k} }

// Sentinels usable with errors.Is for the zero-argument kinds.
var (
	EmptyFile     = kindOnly(KindEmptyFile)
	Encoding      = kindOnly(KindEncoding)
	InvalidFormat = kindOnly(KindInvalidFormat)
)

// NewEmptyFile reports a zero-byte input.
func NewEmptyFile() *Error {
	return &Error{Kind: KindEmptyFile, Message: "input is empty"}
}

// NewEncoding reports that neither Windows-1252 nor UTF-8 decoded the input.
func NewEncoding(cause error) *Error {
	return &Error{Kind: KindEncoding, Message: "could not decode as Windows-1252 or UTF-8", Cause: cause}
}

// NewInvalidFormat reports bytes that decoded but contained no recognizable markers.
func NewInvalidFormat(detail string) *Error {
	return &Error{Kind: KindInvalidFormat, Message: detail}
}

// NewMissingHeader is the advisory (non-fatal) ERMHDR-absent condition,
// surfaced as an error value for callers that want to treat it as one;
// the tabular reader itself only records it on its validation.Result
// (§7) and proceeds.
func NewMissingHeader() *Error {
	return &Error{Kind: KindMissingHeader, Message: "no ERMHDR line encountered"}
}

// NewMissingRequiredTable reports that a mandatory table (only PROJECT
// today) was absent after a full parse.
func NewMissingRequiredTable(table string) *Error {
	return &Error{Kind: KindMissingRequiredTable, Message: fmt.Sprintf("required table %q is missing", table)}
}

// NewFileTooLarge reports an input exceeding the size ceiling.
func NewFileTooLarge(sizeMiB, maxMiB float64) *Error {
	return &Error{Kind: KindFileTooLarge, Message: fmt.Sprintf("input is %.2f MiB, exceeds maximum of %.0f MiB", sizeMiB, maxMiB)}
}

// NewTooManyRows reports cumulative %R rows exceeding the row ceiling.
func NewTooManyRows(count, max int) *Error {
	return &Error{Kind: KindTooManyRows, Message: fmt.Sprintf("row count %d exceeds maximum of %d", count, max)}
}

// NewXMLParsingFailed wraps an XML-path failure.
func NewXMLParsingFailed(cause error) *Error {
	return &Error{Kind: KindXMLParsingFailed, Message: "failed to parse XML export", Cause: cause}
}

// NewBinaryFormatNotFullySupported reports a compound-binary MPP file
// with no embeddable XML stream found inside it.
func NewBinaryFormatNotFullySupported() *Error {
	return &Error{Kind: KindBinaryFormatUnsupport, Message: "compound-binary MPP format is not fully supported; no embedded XML project was found"}
}
