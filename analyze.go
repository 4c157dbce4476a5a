package id3scan

import (
	binutil "github.com/simonhull/id3scan/internal/binary"
	"github.com/simonhull/id3scan/internal/registry"

	_ "github.com/simonhull/id3scan/internal/id3v1" // Register ID3v1 analyzer
	_ "github.com/simonhull/id3scan/internal/id3v2" // Register ID3v2 analyzer
)

// Result reports which tags an analysis found.
type Result struct {
	// Name of the analysed source
	Name string

	ID3v1 bool
	ID3v2 bool
}

// Found reports whether any tag was found.
func (r Result) Found() bool {
	return r.ID3v1 || r.ID3v2
}

// AnalyzeID3v1 reports the ID3v1 trailer and, when present, the enhanced
// block before it. It returns whether the trailer was found.
//
// A source shorter than 128 bytes or without the "TAG" magic produces
// exactly one diagnostic event.
func AnalyzeID3v1(src Source, sink Sink) bool {
	return analyzeTag(TagID3v1, src, sink)
}

// AnalyzeID3v2 reports the ID3v2 header and each frame up to the padding or
// the end of the tag. It returns whether a valid header was found, even when
// frames turned out to be truncated.
func AnalyzeID3v2(src Source, sink Sink) bool {
	return analyzeTag(TagID3v2, src, sink)
}

// Analyze runs every enabled analyzer over src. Absence of a tag is not an
// error: it shows up as a diagnostic event and a false flag in the Result.
//
// Example:
//
//	src := id3scan.NewSource(data, "song.mp3")
//	res := id3scan.Analyze(src, func(ev id3scan.Event) {
//		fmt.Println(ev)
//	})
func Analyze(src Source, sink Sink, opts ...Option) Result {
	return analyze(src, sink, applyOptions(opts))
}

func analyze(src Source, sink Sink, options *analyzeOptions) Result {
	res := Result{Name: src.Name}
	for _, kind := range options.tags {
		found := analyzeTag(kind, src, sink)
		options.logger.Debug("analyzed tag", "file", src.Name, "tag", kind, "found", found)

		switch kind {
		case TagID3v1:
			res.ID3v1 = found
		case TagID3v2:
			res.ID3v2 = found
		}
	}
	return res
}

func analyzeTag(kind TagKind, src Source, sink Sink) bool {
	a := registry.Get(kind)
	if a == nil {
		return false
	}
	if sink == nil {
		sink = func(Event) {}
	}
	sr := binutil.NewSafeReader(src.ReaderAt, src.Size, src.Name)
	return a.Analyze(sr, sink)
}
