// Package registry manages the analyzers for each tag kind.
package registry

import (
	binutil "github.com/simonhull/id3scan/internal/binary"
	"github.com/simonhull/id3scan/internal/types"
)

// Analyzer is the interface every tag analyzer implements.
type Analyzer interface {
	// Analyze reports the tag's fields to sink and returns whether the tag
	// was found. Absence of the tag is not an error.
	Analyze(sr *binutil.SafeReader, sink types.Sink) bool
}

// analyzers maps tag kinds to their analyzers.
var analyzers = make(map[types.TagKind]Analyzer)

// Register registers an analyzer for a tag kind.
// This is called by tag packages during initialization (init functions).
func Register(kind types.TagKind, analyzer Analyzer) {
	analyzers[kind] = analyzer
}

// Get returns the analyzer for a given tag kind.
// Returns nil if no analyzer is registered for the kind.
func Get(kind types.TagKind) Analyzer {
	return analyzers[kind]
}
