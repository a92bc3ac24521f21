package xmlcore

import "errors"

// Scanner errors. Once any of these is returned from Next, the Scanner
// latches into its error state and every subsequent call returns
// ErrSyntax. ErrCannotReset from ResetPosition and ErrUnexpectedEndOfInput
// from EndInput leave the Scanner's state unchanged.
var (
	// ErrDoctypeNotSupported is returned when a DOCTYPE declaration is
	// encountered. DOCTYPE is rejected wholesale; no internal subset is
	// skipped.
	ErrDoctypeNotSupported = errors.New("xmlcore: DOCTYPE is not supported")

	// ErrInvalidCharacterReference is returned when a numeric character
	// reference overflows U+10FFFF or resolves to a codepoint that is not
	// a legal XML Char.
	ErrInvalidCharacterReference = errors.New("xmlcore: invalid character reference")

	// ErrSyntax is the catch-all lexical error, also returned by every
	// call made after the Scanner has latched into its error state.
	ErrSyntax = errors.New("xmlcore: syntax error")

	// ErrUnexpectedEndOfInput is returned by EndInput when the document
	// has not reached a state that legally ends a document.
	ErrUnexpectedEndOfInput = errors.New("xmlcore: unexpected end of input")

	// ErrCannotReset is returned by ResetPosition when the current state
	// holds positional information that cannot be truthfully split.
	ErrCannotReset = errors.New("xmlcore: position cannot be reset in this state")
)

// Decoder errors.
var (
	// ErrInvalidEncoding is returned by Decoder.AdaptTo when the
	// requested encoding name is not one the decoder can honor.
	ErrInvalidEncoding = errors.New("xmlcore: invalid or unsupported encoding")

	// ErrInvalidUTF8 is returned by UTF8Decoder.ReadCodepoint for
	// overlong forms, out-of-range bytes, and encoded surrogates.
	ErrInvalidUTF8 = errors.New("xmlcore: invalid UTF-8 byte sequence")

	// ErrInvalidUTF16 is returned by UTF16Decoder.ReadCodepoint for
	// unpaired surrogates or a trailing half code unit.
	ErrInvalidUTF16 = errors.New("xmlcore: invalid UTF-16 code unit sequence")
)

// Writer errors. Every one of these is a contract violation: the caller
// invoked a method the current Writer state does not allow. Per §7, these
// are fail-fast programmer errors; the Writer latches into its own error
// state exactly as the Scanner does, so every later call also fails.
var (
	ErrWriterClosed          = errors.New("xmlcore: write after eof")
	ErrNoOpenElement         = errors.New("xmlcore: no open element")
	ErrDeclarationTooLate    = errors.New("xmlcore: xml_declaration only legal before any content")
	ErrNotNamespaceAware     = errors.New("xmlcore: namespace-qualified call on a non-namespace-aware writer")
	ErrEmptyNamespace        = errors.New("xmlcore: empty namespace URI")
	ErrEOFNotReady           = errors.New("xmlcore: eof is only legal after the root element has closed")
	ErrIllegalInState        = errors.New("xmlcore: call is not legal in the writer's current state")
)
