// Package types provides the core data structures shared by the tag analyzers.
//
// This package defines the Event, Sink and TagKind types that every analyzer
// produces, plus the error taxonomy used to classify diagnostics.
package types

// TagKind identifies one tag version family.
type TagKind int

const (
	// TagUnknown is the zero value.
	TagUnknown TagKind = iota
	// TagID3v1 is the 128-byte trailer (and its enhanced extension).
	TagID3v1
	// TagID3v2 is the frame-based header at the start of the file.
	TagID3v2
)

// String returns the conventional name of the tag kind.
func (k TagKind) String() string {
	switch k {
	case TagID3v1:
		return "ID3v1"
	case TagID3v2:
		return "ID3v2"
	case TagUnknown:
		return "Unknown"
	default:
		return "Unknown"
	}
}

// TagKinds returns every analyzable tag kind in analysis order.
//
// ID3v2 comes first because it sits at the start of the file.
func TagKinds() []TagKind {
	return []TagKind{TagID3v2, TagID3v1}
}
