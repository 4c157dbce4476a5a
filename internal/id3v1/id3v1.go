// Package id3v1 analyzes the fixed 128-byte ID3v1 trailer and the rare
// 227-byte enhanced ("TAG+") block that may precede it.
package id3v1

import (
	"fmt"
	"strconv"

	binutil "github.com/simonhull/id3scan/internal/binary"
	"github.com/simonhull/id3scan/internal/registry"
	"github.com/simonhull/id3scan/internal/render"
	"github.com/simonhull/id3scan/internal/types"
)

const (
	// TagSize is the size of the ID3v1 trailer.
	TagSize = 128
	// EnhancedSize is the size of the enhanced block before the trailer.
	EnhancedSize = 227

	magic         = "TAG"
	enhancedMagic = "TAG+"

	// Comment byte 28 is NUL when byte 29 holds a track number (ID3v1.1).
	trackMarkerOffset = 125
	trackOffset       = 126
	genreOffset       = 127
)

// field is one fixed-position string in a trailer or enhanced block.
type field struct {
	name   string
	offset int64
	size   int64
}

// https://id3.org/ID3v1
var fields = []field{
	{"Song", 3, 30},
	{"Artist", 33, 30},
	{"Album", 63, 30},
	{"Year", 93, 4},
	{"Comment", 97, 30},
}

var enhancedFields = []field{
	{"EnhTitle", 4, 60},
	{"EnhArtist", 64, 60},
	{"EnhAlbum", 124, 60},
	{"EnhGenre", 185, 30},
	{"StartTime", 215, 6},
	{"EndTime", 221, 6},
}

const speedOffset = 184

var speeds = [...]string{"unset", "slow", "medium", "fast", "hardcore"}

// analyzer implements registry.Analyzer.
type analyzer struct{}

// Analyze reports the trailer's fields to sink and returns whether a "TAG"
// trailer was found.
//
// A file shorter than the trailer, or one without the magic, yields exactly
// one diagnostic event.
func (analyzer) Analyze(sr *binutil.SafeReader, sink types.Sink) bool {
	size := sr.Size()
	if size < TagSize {
		sink(types.Event{
			Kind:     types.KindDiagnostic,
			Tag:      types.TagID3v1,
			Label:    "HEAD",
			Size:     int64(len(magic)),
			Value:    fmt.Sprintf("filesize %d < %d", size, TagSize),
			Filename: sr.Path(),
			Err: &types.MissingTagError{
				Path:   sr.Path(),
				Tag:    types.TagID3v1,
				Reason: fmt.Sprintf("file is %d bytes, trailer needs %d", size, TagSize),
			},
		})
		return false
	}

	base := size - TagSize
	block, err := sr.Bytes(base, TagSize, "ID3v1 trailer")
	if err != nil {
		sink(diagnostic(sr, base, TagSize, err))
		return false
	}

	head := types.Event{
		Kind:     types.KindHeader,
		Tag:      types.TagID3v1,
		Label:    "HEAD",
		Offset:   base,
		Size:     int64(len(magic)),
		Value:    render.Opaque(block[:len(magic)]),
		Filename: sr.Path(),
	}
	if string(block[:len(magic)]) != magic {
		head.Kind = types.KindDiagnostic
		head.Err = &types.MissingTagError{Path: sr.Path(), Tag: types.TagID3v1, Reason: "no TAG magic"}
		sink(head)
		return false
	}
	sink(head)

	emitFields(sr, sink, block, base, fields)

	if block[trackMarkerOffset] == 0 {
		sink(types.Event{
			Kind:     types.KindField,
			Tag:      types.TagID3v1,
			Label:    "track",
			Offset:   base + trackOffset,
			Size:     1,
			Value:    strconv.Itoa(int(block[trackOffset])),
			Filename: sr.Path(),
		})
	}

	code := block[genreOffset]
	sink(types.Event{
		Kind:     types.KindField,
		Tag:      types.TagID3v1,
		Label:    "Genre",
		Offset:   base + genreOffset,
		Size:     1,
		Value:    fmt.Sprintf("{%s}%d", GenreName(code), code),
		Filename: sr.Path(),
	})

	// The enhanced block is rare, so its absence is not reported.
	analyzeEnhanced(sr, sink)

	return true
}

func analyzeEnhanced(sr *binutil.SafeReader, sink types.Sink) {
	base := sr.Size() - TagSize - EnhancedSize
	if base < 0 {
		return
	}
	block, err := sr.Bytes(base, EnhancedSize, "ID3v1 enhanced block")
	if err != nil || string(block[:len(enhancedMagic)]) != enhancedMagic {
		return
	}

	sink(types.Event{
		Kind:     types.KindHeader,
		Tag:      types.TagID3v1,
		Label:    "ENHANCE",
		Offset:   base,
		Size:     int64(len(enhancedMagic)),
		Value:    enhancedMagic,
		Filename: sr.Path(),
	})

	emitFields(sr, sink, block, base, enhancedFields[:3])

	speed := block[speedOffset]
	name := "(none)"
	if int(speed) < len(speeds) {
		name = speeds[speed]
	}
	sink(types.Event{
		Kind:     types.KindField,
		Tag:      types.TagID3v1,
		Label:    "Speed",
		Offset:   base + speedOffset,
		Size:     1,
		Value:    fmt.Sprintf("{%s}%d", name, speed),
		Filename: sr.Path(),
	})

	emitFields(sr, sink, block, base, enhancedFields[3:])
}

func emitFields(sr *binutil.SafeReader, sink types.Sink, block []byte, base int64, fs []field) {
	for _, f := range fs {
		sink(types.Event{
			Kind:     types.KindField,
			Tag:      types.TagID3v1,
			Label:    f.name,
			Offset:   base + f.offset,
			Size:     f.size,
			Value:    render.Text(block[f.offset : f.offset+f.size]),
			Filename: sr.Path(),
		})
	}
}

func diagnostic(sr *binutil.SafeReader, off, size int64, err error) types.Event {
	return types.Event{
		Kind:     types.KindDiagnostic,
		Tag:      types.TagID3v1,
		Label:    "HEAD",
		Offset:   off,
		Size:     size,
		Value:    err.Error(),
		Filename: sr.Path(),
		Err:      err,
	}
}

// init registers the ID3v1 analyzer
func init() {
	registry.Register(types.TagID3v1, analyzer{})
}
