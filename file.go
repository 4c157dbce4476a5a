package id3scan

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
)

// AnalyzeFile opens path read-only and analyses it.
//
// Only a failure to open or stat the file is returned as an error; anything
// wrong inside the file is reported through events.
//
// Example:
//
//	res, err := id3scan.AnalyzeFile("song.mp3", func(ev id3scan.Event) {
//		fmt.Println(ev)
//	})
//	if err != nil {
//		return err
//	}
func AnalyzeFile(path string, sink Sink, opts ...Option) (Result, error) {
	return analyzeFile(path, sink, applyOptions(opts))
}

func analyzeFile(path string, sink Sink, options *analyzeOptions) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{Name: path}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return Result{Name: path}, fmt.Errorf("stat file: %w", err)
	}
	if stat.IsDir() {
		return Result{Name: path}, fmt.Errorf("%s: is a directory", path)
	}

	src := Source{ReaderAt: f, Size: stat.Size(), Name: path}
	return analyze(src, sink, options), nil
}

// Report is the outcome of one file in a batch.
type Report struct {
	Path   string
	Result Result

	// Err is set when the file could not be opened; it does not stop the
	// rest of the batch
	Err error
}

// AnalyzeMany analyses files concurrently.
//
// Files are read in parallel using up to runtime.NumCPU() goroutines (see
// WithConcurrency). Each file's events are buffered and handed to sink from
// the calling goroutine as soon as that file and every file before it have
// finished, so events arrive grouped by file in input order and sink never
// runs concurrently with itself.
//
// Cancellation is checked between files. A cancelled batch returns the
// reports of the files already delivered together with ctx.Err(); nothing
// after them reaches sink.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	reports, err := id3scan.AnalyzeMany(ctx, paths, printEvent)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, r := range reports {
//		if r.Err != nil {
//			log.Printf("%s: %v", r.Path, r.Err)
//		}
//	}
func AnalyzeMany(ctx context.Context, paths []string, sink Sink, opts ...Option) ([]Report, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	options := applyOptions(opts)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(options.concurrency)

	results := make([]Report, len(paths))
	buffered := make([][]Event, len(paths))
	done := make([]chan struct{}, len(paths))
	for i := range done {
		done[i] = make(chan struct{})
	}

	// g.Go blocks at the concurrency limit, so files are queued from their
	// own goroutine while this one delivers.
	waited := make(chan error, 1)
	go func() {
		for i, path := range paths {
			g.Go(func() error {
				defer close(done[i])
				if err := gctx.Err(); err != nil {
					return err
				}

				var events []Event
				res, err := analyzeFile(path, func(ev Event) {
					events = append(events, ev)
				}, options)
				if err != nil {
					options.logger.Debug("skipping file", "file", path, "error", err)
				}

				results[i] = Report{Path: path, Result: res, Err: err}
				buffered[i] = events
				return nil
			})
		}
		waited <- g.Wait()
	}()

	var (
		reports []Report
		err     error
	)
	for i := range paths {
		select {
		case <-done[i]:
		case <-ctx.Done():
		}
		// The parent context: gctx is also cancelled once Wait returns.
		if err = ctx.Err(); err != nil {
			break
		}

		if sink != nil {
			for _, ev := range buffered[i] {
				sink(ev)
			}
		}
		buffered[i] = nil
		reports = append(reports, results[i])
	}

	// In-flight files finish before returning.
	if werr := <-waited; err == nil {
		err = werr
	}
	if err != nil {
		options.logger.Debug("batch cancelled", "delivered", len(reports), "files", len(paths), "error", err)
	}
	return reports, err
}
