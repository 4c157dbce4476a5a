package id3scan

import (
	"github.com/simonhull/id3scan/internal/types"
)

// OutOfBoundsError is an alias to types.OutOfBoundsError.
// Re-exporting from internal/types to maintain public API.
type OutOfBoundsError = types.OutOfBoundsError

// MissingTagError is an alias to types.MissingTagError.
type MissingTagError = types.MissingTagError

// TruncatedFileError is an alias to types.TruncatedFileError.
type TruncatedFileError = types.TruncatedFileError

// UnknownFrameError is an alias to types.UnknownFrameError.
type UnknownFrameError = types.UnknownFrameError

// UnsupportedEncodingError is an alias to types.UnsupportedEncodingError.
type UnsupportedEncodingError = types.UnsupportedEncodingError
