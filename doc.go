// Package id3scan reports where every ID3 field and frame lives in an MP3
// file and what it says.
//
// id3scan is an inspection tool, not a tag reader. For each ID3v1 field,
// ID3v1 enhanced ("TAG+") field and ID3v2 frame it emits an Event with the
// byte offset, the declared size, a short label and a printable rendering of
// the content. Text of unknown or mislabelled encoding is detected, decoded
// and marked, so mojibake and broken tags show up as such instead of being
// silently "fixed".
//
// # Quick Start
//
//	res, err := id3scan.AnalyzeFile("song.mp3", func(ev id3scan.Event) {
//		fmt.Println(ev)
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !res.Found() {
//		fmt.Println("no ID3 tags")
//	}
//
// # Rendering
//
// Values carry markers describing how they were decoded:
//
//	Hello                   plain ASCII
//	{CP932}...              detected charset, converted to UTF-8
//	{UTF-16}...             declared charset of an ID3v2 text frame
//	{ISO-8859-1}{BROKEN}{UTF-8}...
//	                        the declared charset does not match the bytes
//	{HalfByteBroken}{CP932}...
//	                        decoded after dropping a cut final character
//	{HEX}00ff...            nothing validated; lowercase hex dump
//
// # Structural Problems
//
// Analysis never fails on file content. A missing or invalid tag yields a
// single diagnostic Event whose Err is a *MissingTagError; a tag or frame
// that runs past the end of the file yields a *TruncatedFileError. Frames
// with ids outside the dispatch table are still reported, with an
// *UnknownFrameError attached. Use errors.As to classify:
//
//	var te *id3scan.TruncatedFileError
//	if errors.As(ev.Err, &te) {
//		log.Printf("truncated %s at %d", te.What, te.Offset)
//	}
//
// # Many Files
//
// AnalyzeMany analyses files in parallel and delivers each file's events
// to the sink in input order, one file at a time:
//
//	reports, err := id3scan.AnalyzeMany(ctx, paths, sink,
//	    id3scan.WithConcurrency(8),
//	    id3scan.WithLogger(slog.Default()),
//	)
package id3scan
