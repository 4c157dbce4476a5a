package id3v2

import (
	"fmt"

	binutil "github.com/simonhull/id3scan/internal/binary"
	"github.com/simonhull/id3scan/internal/types"
)

const (
	// HeaderSize is the size of the fixed ID3v2 header.
	HeaderSize = 10

	magic              = "ID3"
	flagExtendedHeader = 1 << 6
)

// Header represents a validated ID3v2 tag header
type Header struct {
	Major byte // 2, 3 or 4
	Minor byte // always 0
	Flags byte
	Size  uint32 // Tag size (excluding header), synchsafe

	// HeaderSize is the offset of the first frame: the fixed header plus
	// the extended header when present.
	HeaderSize int64

	// TotalSize is the offset just past the tag: 10 + Size.
	TotalSize int64
}

// FrameHeaderSize returns the size of one frame header for this version.
func (h Header) FrameHeaderSize() int64 {
	if h.Major == 2 {
		return 6
	}
	return 10
}

// idSize returns the length of a frame id for this version.
func (h Header) idSize() int64 {
	if h.Major == 2 {
		return 3
	}
	return 4
}

// String summarises the header the way the HEAD event shows it.
func (h Header) String() string {
	return fmt.Sprintf("ID3v2.%d TotalTagSize(%x)", h.Major, h.TotalSize)
}

// parseHeader reads and validates the ID3v2 header at offset 0.
//
// A missing magic or an unsupported version yields a *types.MissingTagError.
// Sizes are not checked against the file here.
func parseHeader(sr *binutil.SafeReader) (Header, error) {
	buf, err := sr.Bytes(0, HeaderSize, "ID3v2 header")
	if err != nil || string(buf[0:3]) != magic {
		return Header{}, &types.MissingTagError{
			Path:   sr.Path(),
			Tag:    types.TagID3v2,
			Reason: "ID3v2 header not found",
		}
	}

	h := Header{
		Major: buf[3],
		Minor: buf[4],
		Flags: buf[5],
		Size:  binutil.Synchsafe28(buf[6:10]),
	}

	if h.Minor != 0 || (h.Major != 2 && h.Major != 3 && h.Major != 4) {
		return Header{}, &types.MissingTagError{
			Path:   sr.Path(),
			Tag:    types.TagID3v2,
			Reason: fmt.Sprintf("invalid header version[%02x%02x]", h.Major, h.Minor),
		}
	}

	h.HeaderSize = HeaderSize + extendedHeaderSize(sr, h)
	h.TotalSize = HeaderSize + int64(h.Size)

	return h, nil
}

// extendedHeaderSize returns how many bytes the extended header occupies.
//
// ID3v2.3 stores a direct size that excludes its own 4 bytes; ID3v2.4 a
// synchsafe size that includes them. In ID3v2.2 the flag bit means
// compression and there is no extended header.
func extendedHeaderSize(sr *binutil.SafeReader, h Header) int64 {
	if h.Flags&flagExtendedHeader == 0 || h.Major == 2 {
		return 0
	}

	ext, err := sr.Bytes(HeaderSize, 4, "extended header size")
	if err != nil {
		// Counting the size field alone is enough to fail the bounds check.
		return 4
	}

	if h.Major == 3 {
		return 4 + int64(binutil.Uint32BE(ext))
	}
	return int64(binutil.Synchsafe28(ext))
}
