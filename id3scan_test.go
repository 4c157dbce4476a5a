package id3scan_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/davecgh/go-spew/spew"
	dtag "github.com/dhowden/tag"

	"github.com/simonhull/id3scan"
)

// trailer builds a 128-byte ID3v1.1 trailer.
func trailer(song, artist string, track, genre byte) []byte {
	b := make([]byte, 128)
	copy(b, "TAG")
	copy(b[3:33], song)
	copy(b[33:63], artist)
	b[125] = 0
	b[126] = track
	b[127] = genre
	return b
}

// id3v23 builds an ID3v2.3 tag with one TIT2 frame and some padding.
func id3v23(title string) []byte {
	body := append([]byte{0}, title...)
	frame := append([]byte("TIT2"), 0, 0, 0, byte(len(body)), 0, 0)
	frame = append(frame, body...)
	frame = append(frame, make([]byte, 32)...)
	n := len(frame)
	hdr := []byte{'I', 'D', '3', 3, 0, 0, 0, 0, byte(n >> 7), byte(n & 0x7F)}
	return append(hdr, frame...)
}

func mp3(title, song string) []byte {
	data := id3v23(title)
	data = append(data, bytes.Repeat([]byte{0xFF, 0xFB, 0x90, 0x00}, 64)...)
	return append(data, trailer(song, "Artist", 7, 17)...)
}

func collect(events *[]id3scan.Event) id3scan.Sink {
	return func(ev id3scan.Event) {
		*events = append(*events, ev)
	}
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyze_BothTags(t *testing.T) {
	var events []id3scan.Event
	res := id3scan.Analyze(id3scan.NewSource(mp3("Title", "Song"), "song.mp3"), collect(&events))

	if !res.ID3v1 || !res.ID3v2 || !res.Found() {
		t.Fatalf("Result = %+v", res)
	}
	if res.Name != "song.mp3" {
		t.Errorf("Name = %q", res.Name)
	}

	// ID3v2 is reported first
	if events[0].Tag != id3scan.TagID3v2 || events[0].Kind != id3scan.KindHeader {
		t.Errorf("first event = %+v", events[0])
	}

	want := map[string]string{
		"TIT2":  "{ISO-8859-1}Title",
		"Song":  "Song",
		"track": "7",
		"Genre": "{Rock}17",
	}
	got := make(map[string]string)
	for _, ev := range events {
		if ev.Filename != "song.mp3" {
			t.Errorf("event %s has Filename %q", ev.Label, ev.Filename)
		}
		got[ev.Label] = ev.Value
	}
	for label, value := range want {
		if got[label] != value {
			t.Errorf("%s = %q, want %q\n%s", label, got[label], value, spew.Sdump(events))
		}
	}
}

func TestAnalyze_NoTags(t *testing.T) {
	var events []id3scan.Event
	res := id3scan.Analyze(id3scan.NewSource(make([]byte, 64), "empty.mp3"), collect(&events))

	if res.Found() {
		t.Errorf("Result = %+v, want nothing found", res)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want one diagnostic per tag:\n%s", len(events), spew.Sdump(events))
	}
	for _, ev := range events {
		var mt *id3scan.MissingTagError
		if ev.Kind != id3scan.KindDiagnostic || !errors.As(ev.Err, &mt) {
			t.Errorf("event = %+v", ev)
		}
	}
}

func TestAnalyze_WithTags(t *testing.T) {
	var events []id3scan.Event
	res := id3scan.Analyze(id3scan.NewSource(mp3("T", "S"), "x.mp3"), collect(&events),
		id3scan.WithTags(id3scan.TagID3v1))

	if res.ID3v2 || !res.ID3v1 {
		t.Errorf("Result = %+v", res)
	}
	for _, ev := range events {
		if ev.Tag != id3scan.TagID3v1 {
			t.Errorf("unexpected %s event %s", ev.Tag, ev.Label)
		}
	}
}

func TestAnalyze_NilSink(t *testing.T) {
	res := id3scan.Analyze(id3scan.NewSource(mp3("T", "S"), "x.mp3"), nil)
	if !res.Found() {
		t.Error("expected tags with a nil sink")
	}
}

func TestAnalyzeID3v1_ShortSource(t *testing.T) {
	var events []id3scan.Event
	if id3scan.AnalyzeID3v1(id3scan.NewSource(make([]byte, 127), "short"), collect(&events)) {
		t.Error("expected false")
	}
	if len(events) != 1 || events[0].Kind != id3scan.KindDiagnostic {
		t.Errorf("events:\n%s", spew.Sdump(events))
	}
}

func TestAnalyzeID3v2_Truncated(t *testing.T) {
	data := id3v23("Title")[:20]
	var events []id3scan.Event
	if id3scan.AnalyzeID3v2(id3scan.NewSource(data, "cut"), collect(&events)) {
		t.Error("expected false for a tag larger than the file")
	}
	if len(events) != 2 || events[0].Kind != id3scan.KindHeader {
		t.Fatalf("events:\n%s", spew.Sdump(events))
	}
	var te *id3scan.TruncatedFileError
	if !errors.As(events[1].Err, &te) {
		t.Errorf("Err = %v", events[1].Err)
	}
}

// The trailer values must match an independent ID3v1 reader.
func TestAnalyzeFile_AgreesWithReader(t *testing.T) {
	data := append(bytes.Repeat([]byte{0xFF, 0xFB, 0x90, 0x00}, 64), trailer("Cross Checked", "Some Band", 3, 8)...)
	path := writeFile(t, "v1.mp3", data)

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	m, err := dtag.ReadFrom(f)
	if err != nil {
		t.Fatalf("ReadFrom() error = %v", err)
	}

	got := make(map[string]string)
	res, err := id3scan.AnalyzeFile(path, func(ev id3scan.Event) {
		got[ev.Label] = ev.Value
	})
	if err != nil {
		t.Fatalf("AnalyzeFile() error = %v", err)
	}
	if !res.ID3v1 {
		t.Fatal("expected trailer")
	}

	if got["Song"] != m.Title() || got["Artist"] != m.Artist() {
		t.Errorf("Song/Artist = %q/%q, reader says %q/%q", got["Song"], got["Artist"], m.Title(), m.Artist())
	}
	if !strings.HasPrefix(got["Genre"], "{"+m.Genre()+"}") {
		t.Errorf("Genre = %q, reader says %q", got["Genre"], m.Genre())
	}
}

func TestAnalyzeFile_Errors(t *testing.T) {
	if _, err := id3scan.AnalyzeFile("/nonexistent/path.mp3", nil); err == nil {
		t.Error("expected error for nonexistent file")
	}
	if _, err := id3scan.AnalyzeFile(t.TempDir(), nil); err == nil {
		t.Error("expected error for a directory")
	}
}

func TestAnalyzeMany_OrderAndErrors(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, "a.mp3", mp3("A", "a")),
		filepath.Join(dir, "missing.mp3"),
		writeFile(t, "b.mp3", mp3("B", "b")),
		writeFile(t, "c.mp3", make([]byte, 10)),
	}

	var (
		files []string
		calls atomic.Int32
	)
	reports, err := id3scan.AnalyzeMany(context.Background(), paths, func(ev id3scan.Event) {
		calls.Add(1)
		if len(files) == 0 || files[len(files)-1] != ev.Filename {
			files = append(files, ev.Filename)
		}
	}, id3scan.WithConcurrency(2))
	if err != nil {
		t.Fatalf("AnalyzeMany() error = %v", err)
	}

	if len(reports) != len(paths) {
		t.Fatalf("got %d reports", len(reports))
	}
	for i, r := range reports {
		if r.Path != paths[i] {
			t.Errorf("report %d is for %s, want %s", i, r.Path, paths[i])
		}
	}
	if reports[1].Err == nil {
		t.Error("expected error for the missing file")
	}
	if !reports[0].Result.Found() || !reports[2].Result.Found() || reports[3].Result.Found() {
		t.Errorf("reports:\n%s", spew.Sdump(reports))
	}

	// events arrive grouped by file, in input order
	wantFiles := []string{paths[0], paths[2], paths[3]}
	if len(files) != len(wantFiles) {
		t.Fatalf("event files = %v, want %v", files, wantFiles)
	}
	for i := range wantFiles {
		if files[i] != wantFiles[i] {
			t.Errorf("event files = %v, want %v", files, wantFiles)
			break
		}
	}
	if calls.Load() == 0 {
		t.Error("sink never called")
	}
}

func TestAnalyzeMany_Cancelled(t *testing.T) {
	path := writeFile(t, "a.mp3", mp3("A", "a"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	called := false
	reports, err := id3scan.AnalyzeMany(ctx, []string{path, path, path}, func(id3scan.Event) {
		called = true
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(reports) != 0 || called {
		t.Error("expected no reports and no events after cancellation")
	}
}

func TestAnalyzeMany_CancelledMidBatch(t *testing.T) {
	paths := []string{
		writeFile(t, "a.mp3", mp3("A", "a")),
		writeFile(t, "b.mp3", mp3("B", "b")),
		writeFile(t, "c.mp3", mp3("C", "c")),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var files []string
	reports, err := id3scan.AnalyzeMany(ctx, paths, func(ev id3scan.Event) {
		cancel()
		files = append(files, ev.Filename)
	}, id3scan.WithConcurrency(1))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}

	// the first file is delivered whole; nothing after it
	if len(reports) != 1 || reports[0].Path != paths[0] || !reports[0].Result.Found() {
		t.Fatalf("reports:\n%s", spew.Sdump(reports))
	}
	if len(files) < 2 {
		t.Errorf("got %d events for the first file, want all of them", len(files))
	}
	for _, f := range files {
		if f != paths[0] {
			t.Errorf("event for %s delivered after cancellation", f)
		}
	}
}

func TestAnalyzeMany_Empty(t *testing.T) {
	reports, err := id3scan.AnalyzeMany(context.Background(), nil, nil)
	if reports != nil || err != nil {
		t.Errorf("AnalyzeMany(nil) = %v, %v", reports, err)
	}
}

func TestGetVersionInfo(t *testing.T) {
	info := id3scan.GetVersionInfo()
	if info.Version != id3scan.Version || id3scan.GetVersion() != id3scan.Version {
		t.Errorf("version = %q", info.Version)
	}
	if info.GoVersion == "" || info.GoVersion == "unknown" {
		t.Errorf("GoVersion = %q", info.GoVersion)
	}
	if !strings.Contains(info.String(), id3scan.Version) {
		t.Errorf("String() = %q", info.String())
	}
}
