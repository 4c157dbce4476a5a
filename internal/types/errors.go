package types

import "fmt"

// OutOfBoundsError is returned when attempting to read beyond file bounds.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (file size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// MissingTagError is reported when a tag's magic or version does not match.
//
// It is not fatal: it only means that tag version is absent from the file.
type MissingTagError struct {
	Path   string
	Reason string
	Tag    TagKind
}

func (e *MissingTagError) Error() string {
	return fmt.Sprintf("%s: no %s tag: %s", e.Path, e.Tag, e.Reason)
}

// TruncatedFileError is reported when a declared size runs past the end of
// the file or of the enclosing tag.
type TruncatedFileError struct {
	Path   string
	What   string
	Offset int64
	Length int64 // declared length
	Size   int64 // bytes actually available from offset 0
	Tag    TagKind
}

func (e *TruncatedFileError) Error() string {
	return fmt.Sprintf("%s: %s %s at offset %d declares %d bytes but only %d are available",
		e.Path, e.Tag, e.What, e.Offset, e.Length, e.Size-e.Offset)
}

// UnknownFrameError is attached to events for frame ids missing from the
// dispatch table. Analysis continues past such frames.
type UnknownFrameError struct {
	ID string
}

func (e *UnknownFrameError) Error() string {
	return fmt.Sprintf("unknown frame %q", e.ID)
}

// UnsupportedEncodingError is attached to text frames whose encoding byte is
// outside {0, 1, 2, 3}.
type UnsupportedEncodingError struct {
	Encoding byte
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("unsupported text encoding byte 0x%02x", e.Encoding)
}
