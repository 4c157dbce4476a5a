package id3scan

import (
	"log/slog"
	"runtime"

	"github.com/simonhull/id3scan/internal/types"
)

// Option configures an analysis.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	res, err := id3scan.AnalyzeFile("song.mp3", sink,
//	    id3scan.WithTags(id3scan.TagID3v2),
//	    id3scan.WithLogger(logger),
//	)
type Option func(*analyzeOptions)

// analyzeOptions holds configuration for one analysis or batch.
type analyzeOptions struct {
	tags        []TagKind    // Analyzers to run, in order
	logger      *slog.Logger // Debug output; never nil
	concurrency int          // AnalyzeMany worker limit
}

// defaultOptions returns the default configuration.
func defaultOptions() *analyzeOptions {
	return &analyzeOptions{
		tags:        types.TagKinds(),
		logger:      slog.New(slog.DiscardHandler),
		concurrency: runtime.NumCPU(),
	}
}

func applyOptions(opts []Option) *analyzeOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithTags restricts analysis to the given tag kinds, run in the order
// given.
//
// By default ID3v2 is analysed first, then ID3v1.
//
// Example:
//
//	// Only the trailer
//	res := id3scan.Analyze(src, sink, id3scan.WithTags(id3scan.TagID3v1))
func WithTags(kinds ...TagKind) Option {
	return func(o *analyzeOptions) {
		o.tags = kinds
	}
}

// WithLogger sets the logger used for debug output.
//
// The library never logs above debug level; analysis results travel through
// events only. A nil logger keeps the default, which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *analyzeOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithConcurrency limits how many files AnalyzeMany reads at once.
//
// Default is runtime.NumCPU(). Values below 1 keep the default.
func WithConcurrency(n int) Option {
	return func(o *analyzeOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}
