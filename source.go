package id3scan

import (
	"bytes"
	"io"
)

// Source is a read-only, size-known view of one file.
//
// Analysis only ever reads the ranges it needs through ReaderAt, never past
// Size. A Source is borrowed for the duration of one analysis call.
type Source struct {
	ReaderAt io.ReaderAt
	Size     int64

	// Name is used as Event.Filename and in error messages
	Name string
}

// NewSource wraps an in-memory buffer.
func NewSource(data []byte, name string) Source {
	return Source{
		ReaderAt: bytes.NewReader(data),
		Size:     int64(len(data)),
		Name:     name,
	}
}
