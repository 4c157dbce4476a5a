// Package id3v2 walks the frames of an ID3v2.2, ID3v2.3 or ID3v2.4 tag at
// the start of a file and reports each one as an event.
package id3v2

import (
	"bytes"
	"errors"
	"fmt"

	binutil "github.com/simonhull/id3scan/internal/binary"
	"github.com/simonhull/id3scan/internal/registry"
	"github.com/simonhull/id3scan/internal/render"
	"github.com/simonhull/id3scan/internal/types"
)

// Values reported for frames missing from the dispatch tables, followed by
// the raw body.
const (
	unknownV22    = "(unknown frame)(v2)"
	unknownCommon = "(unknown frame)(common)"
)

type analyzer struct{}

// Analyze reports the tag header and every frame to sink. It returns true
// when a valid header was found, even if the frames turned out truncated.
func (analyzer) Analyze(sr *binutil.SafeReader, sink types.Sink) bool {
	h, err := parseHeader(sr)
	if err != nil {
		reason := err.Error()
		var mt *types.MissingTagError
		if errors.As(err, &mt) {
			reason = mt.Reason
		}
		sink(types.Event{
			Kind:     types.KindDiagnostic,
			Tag:      types.TagID3v2,
			Label:    "HEAD",
			Size:     HeaderSize,
			Value:    reason,
			Filename: sr.Path(),
			Err:      err,
		})
		return false
	}

	sink(types.Event{
		Kind:     types.KindHeader,
		Tag:      types.TagID3v2,
		Label:    "HEAD",
		Size:     h.HeaderSize,
		Value:    h.String(),
		Filename: sr.Path(),
	})

	if end := max(h.HeaderSize, h.TotalSize); end > sr.Size() {
		sink(types.Event{
			Kind:     types.KindDiagnostic,
			Tag:      types.TagID3v2,
			Label:    "HEAD",
			Size:     end,
			Value:    fmt.Sprintf("tag size %x > filesize %x", end, sr.Size()),
			Filename: sr.Path(),
			Err: &types.TruncatedFileError{
				Path:   sr.Path(),
				Tag:    types.TagID3v2,
				What:   "tag",
				Length: end,
				Size:   sr.Size(),
			},
		})
		return false
	}

	walk(sr, h, sink)
	return true
}

// walk reports frames from the end of the header up to the tag boundary.
// The cursor advances by at least one frame header per step.
func walk(sr *binutil.SafeReader, h Header, sink types.Sink) {
	hdrSize := h.FrameHeaderSize()
	idSize := h.idSize()

	for cursor := h.HeaderSize; cursor < h.TotalSize; {
		left := h.TotalSize - cursor
		if left < hdrSize {
			rest, err := sr.Bytes(cursor, left, "frame header")
			if err == nil && allZero(rest) {
				return
			}
			sink(truncated(sr, cursor, left, hdrSize, "frame header"))
			return
		}

		fh, err := sr.Bytes(cursor, hdrSize, "frame header")
		if err != nil {
			sink(truncated(sr, cursor, left, hdrSize, "frame header"))
			return
		}

		idBytes := fh[:idSize]
		if allZero(idBytes) {
			// padding
			return
		}

		declared := int64(binutil.FrameSize(h.Major, fh[idSize:hdrSize-flagsSize(h)]))
		ev := types.Event{
			Kind:     types.KindFrame,
			Tag:      types.TagID3v2,
			Label:    render.Opaque(idBytes),
			Offset:   cursor,
			Size:     hdrSize + declared,
			Filename: sr.Path(),
		}

		bodyOff := cursor + hdrSize
		bodyLen := min(declared, h.TotalSize-bodyOff)
		if bodyLen < declared {
			ev.Err = &types.TruncatedFileError{
				Path:   sr.Path(),
				Tag:    types.TagID3v2,
				What:   "frame " + ev.Label,
				Offset: bodyOff,
				Length: declared,
				Size:   h.TotalSize,
			}
		}

		body, err := sr.Bytes(bodyOff, bodyLen, "frame body")
		if err != nil {
			// the tag fits the file, so this is an I/O failure
			ev.Kind = types.KindDiagnostic
			ev.Value = err.Error()
			ev.Err = err
			sink(ev)
			return
		}

		frame, known := Lookup(h.Major, string(idBytes))
		if known {
			ev.Name = frame.Name
			value, derr := frame.Decode(body, h.Major)
			ev.Value = value
			if ev.Err == nil {
				ev.Err = derr
			}
		} else {
			ev.Kind = types.KindUnknownFrame
			ev.Value = unknownCommon
			if h.Major == 2 {
				ev.Value = unknownV22
			}
			if raw := render.Opaque(body); raw != "" {
				ev.Value += " " + raw
			}
			if ev.Err == nil {
				ev.Err = &types.UnknownFrameError{ID: ev.Label}
			}
		}
		sink(ev)

		cursor += hdrSize + declared
	}
}

// flagsSize is the number of flag bytes at the end of a frame header.
func flagsSize(h Header) int64 {
	if h.Major == 2 {
		return 0
	}
	return 2
}

func truncated(sr *binutil.SafeReader, off, left, want int64, what string) types.Event {
	err := &types.TruncatedFileError{
		Path:   sr.Path(),
		Tag:    types.TagID3v2,
		What:   what,
		Offset: off,
		Length: want,
		Size:   off + left,
	}
	return types.Event{
		Kind:     types.KindDiagnostic,
		Tag:      types.TagID3v2,
		Label:    "FRAME",
		Offset:   off,
		Size:     left,
		Value:    fmt.Sprintf("%d bytes left, frame header needs %d", left, want),
		Filename: sr.Path(),
		Err:      err,
	}
}

func allZero(b []byte) bool {
	return len(bytes.Trim(b, "\x00")) == 0
}

// init registers the ID3v2 analyzer
func init() {
	registry.Register(types.TagID3v2, analyzer{})
}
