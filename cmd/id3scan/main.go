// Command id3scan prints the location and content of every ID3 field and
// frame in MP3 files.
//
// Usage:
//
//	id3scan [-v] [-n] [-all] [-tags id3v1,id3v2] [-j N] <files...>
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/simonhull/id3scan"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type config struct {
	verbose     bool
	names       bool
	all         bool
	debug       bool
	version     bool
	concurrency int
	tags        []id3scan.TagKind
	paths       []string
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var (
		cfg  config
		tags string
	)
	fs := flag.NewFlagSet("id3scan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&cfg.verbose, "v", false, "verbose: one line per event, prefixed with the filename")
	fs.BoolVar(&cfg.names, "n", false, "show frame display names")
	fs.BoolVar(&cfg.all, "all", false, "analyse files without the .mp3 extension too")
	fs.BoolVar(&cfg.debug, "debug", false, "log debug output to stderr")
	fs.BoolVar(&cfg.version, "version", false, "print version and exit")
	fs.IntVar(&cfg.concurrency, "j", 0, "files analysed in parallel (default: number of CPUs)")
	fs.StringVar(&tags, "tags", "id3v2,id3v1", "comma-separated tag kinds to analyse, in order")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: id3scan [flags] <files...>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	kinds, err := parseTags(tags)
	if err != nil {
		return cfg, err
	}
	cfg.tags = kinds
	cfg.paths = fs.Args()
	return cfg, nil
}

func parseTags(s string) ([]id3scan.TagKind, error) {
	var kinds []id3scan.TagKind
	for name := range strings.SplitSeq(s, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "id3v1", "v1":
			kinds = append(kinds, id3scan.TagID3v1)
		case "id3v2", "v2":
			kinds = append(kinds, id3scan.TagID3v2)
		case "":
		default:
			return nil, fmt.Errorf("unknown tag kind %q", name)
		}
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("no tag kinds in %q", s)
	}
	return kinds, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	if cfg.version {
		fmt.Fprintln(stdout, id3scan.GetVersionInfo())
		return 0
	}

	level := slog.LevelInfo
	if cfg.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	paths := selectPaths(cfg.paths, cfg.all, logger)
	if len(paths) == 0 {
		logger.Error("no files to analyse")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var p printer
	if cfg.verbose {
		p = &verbosePrinter{w: stdout, names: cfg.names}
	} else {
		p = &simplePrinter{w: stdout, names: cfg.names}
	}

	reports, err := id3scan.AnalyzeMany(ctx, paths, p.print,
		id3scan.WithTags(cfg.tags...),
		id3scan.WithConcurrency(cfg.concurrency),
		id3scan.WithLogger(logger),
	)
	p.flush()
	if err != nil {
		logger.Error("analysis stopped", "error", err)
		return 1
	}

	status := 0
	for _, r := range reports {
		if r.Err != nil {
			logger.Error("cannot analyse file", "file", r.Path, "error", r.Err)
			status = 1
		}
	}
	return status
}

// selectPaths drops files without the .mp3 extension unless all is set.
func selectPaths(paths []string, all bool, logger *slog.Logger) []string {
	if all {
		return paths
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !strings.EqualFold(filepath.Ext(p), ".mp3") {
			logger.Debug("skipping non-mp3 file", "file", p)
			continue
		}
		out = append(out, p)
	}
	return out
}
