package types

import "fmt"

// EventKind classifies an Event.
type EventKind int

const (
	// KindHeader reports a recognised tag header ("TAG", "ID3", "TAG+").
	KindHeader EventKind = iota
	// KindField reports one fixed-position ID3v1 field.
	KindField
	// KindFrame reports one ID3v2 frame found in the dispatch table.
	KindFrame
	// KindUnknownFrame reports an ID3v2 frame whose id is not in the table.
	KindUnknownFrame
	// KindDiagnostic reports a structural problem that stopped an analyzer.
	KindDiagnostic
)

func (k EventKind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindField:
		return "field"
	case KindFrame:
		return "frame"
	case KindUnknownFrame:
		return "unknown-frame"
	case KindDiagnostic:
		return "diagnostic"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one analysis record: where a field or frame lives in the file
// and a printable rendering of its content.
//
// Events are the only output of the analyzers. Formatting them for a
// console or any other destination is up to the Sink.
type Event struct {
	// Err classifies diagnostics and partially decoded frames (nil otherwise)
	Err error

	// Label is the field name ("Song", "Genre") or frame id ("TIT2")
	Label string

	// Name is the frame's display name ("title"), empty for ID3v1 fields
	Name string

	// Value is the rendered content, never empty for a non-empty field
	// unless the field starts with a NUL byte
	Value string

	// Filename is the display name of the source
	Filename string

	// Offset of the field or frame from the start of the file
	Offset int64

	// Size is the declared size in bytes (frame header included for frames)
	Size int64

	Kind EventKind
	Tag  TagKind
}

// String formats the event the way the simple console printer does.
func (e Event) String() string {
	return fmt.Sprintf("offset[%4x]\tsize[%2x]\tframe[%s]\tbody[%s]", e.Offset, e.Size, e.Label, e.Value)
}

// Sink receives events synchronously, in file order.
//
// A Sink should return promptly and must not panic.
type Sink func(Event)
