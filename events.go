package id3scan

import "github.com/simonhull/id3scan/internal/types"

// Event is one analysis record. See types.Event for the fields.
type Event = types.Event

// EventKind classifies an Event.
type EventKind = types.EventKind

// Event kinds.
const (
	KindHeader       = types.KindHeader
	KindField        = types.KindField
	KindFrame        = types.KindFrame
	KindUnknownFrame = types.KindUnknownFrame
	KindDiagnostic   = types.KindDiagnostic
)

// Sink receives events synchronously, in file order.
type Sink = types.Sink

// TagKind identifies a tag version family.
type TagKind = types.TagKind

// Tag kinds.
const (
	TagID3v1 = types.TagID3v1
	TagID3v2 = types.TagID3v2
)
