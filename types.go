package readtext

import (
	"github.com/mrjoshuak/readtext/config"
	"github.com/mrjoshuak/readtext/internal/readability"
)

// Version information for the readtext library.
const (
	Version = "0.4.0"
	Name    = "readtext"
)

// DefaultMaxBufferSize is the largest document accepted unless
// WithMaxBufferSize says otherwise.
const DefaultMaxBufferSize = 4 << 20

var (
	// ErrNoContentFound is returned when no element qualifies as content root.
	ErrNoContentFound = readability.ErrNoContentFound
	// ErrDocumentTooLarge is returned for input above the buffer limit.
	ErrDocumentTooLarge = readability.ErrDocumentTooLarge
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = config.ErrInvalidConfig
)

// IsParseError reports whether err was raised while reading or parsing input.
func IsParseError(err error) bool {
	return readability.IsParseError(err)
}

// IsExtractionError reports whether err was raised by the content heuristics.
func IsExtractionError(err error) bool {
	return readability.IsExtractionError(err)
}

// IsValidationError reports whether err was caused by invalid input or options.
func IsValidationError(err error) bool {
	return readability.IsValidationError(err)
}
