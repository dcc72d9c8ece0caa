package sim

import "errors"

var (
	// ErrInvalidFrameCount is returned when a frame count is non-numeric, zero, or negative.
	// It is raised before any engine runs; no partial result is produced.
	ErrInvalidFrameCount = errors.New("invalid frame count")

	// ErrInvalidInput is returned when reference-string text contains no valid page numbers.
	ErrInvalidInput = errors.New("invalid reference string")

	// ErrUnknownAlgorithm is returned for an algorithm name outside ValidAlgorithms.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrInvalidGeneratorConfig is returned for generator bounds that cannot produce a sequence.
	ErrInvalidGeneratorConfig = errors.New("invalid generator config")
)
