package speech

import "errors"

var (
	// ErrInvalidConfig reports construction parameters that violate the block contract.
	ErrInvalidConfig = errors.New("speech: invalid analysis configuration")
	// ErrInputLength reports a sample buffer whose length differs from the block size.
	ErrInputLength = errors.New("speech: input length does not match block size")
	// ErrIndexOutOfRange reports a sample index outside the signal buffer.
	ErrIndexOutOfRange = errors.New("speech: sample index out of range")
	// ErrUnsupportedFormat reports PCM buffers the analyzer cannot consume.
	ErrUnsupportedFormat = errors.New("speech: unsupported PCM format")
)
