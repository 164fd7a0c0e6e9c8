package blake3

import "github.com/pkg/errors"

var (
	// ErrInvalidKeyLength is returned when a keyed hasher is constructed
	// with a key that is not exactly 32 bytes.
	ErrInvalidKeyLength = errors.New("blake3: key must be exactly 32 bytes")

	// ErrEmptyContext is returned when a derive key hasher is constructed
	// with an empty context string.
	ErrEmptyContext = errors.New("blake3: derive key context must not be empty")

	// ErrConflictingMode is returned when more than one of the key and
	// derive key context options are set at once.
	ErrConflictingMode = errors.New("blake3: key and derive key context are mutually exclusive")

	// ErrInvalidOutputLength is returned when a finalize length is not
	// positive.
	ErrInvalidOutputLength = errors.New("blake3: output length must be positive")

	// ErrInvalidDigestSize is returned when a digest size is outside of
	// [1, 65536].
	ErrInvalidDigestSize = errors.New("blake3: digest size must be between 1 and 65536 bytes")
)
