package id3v2

import (
	"errors"
	"strings"
	"testing"

	"github.com/simonhull/id3scan/internal/types"
)

func pngData(w, h int) []byte {
	b := append([]byte{}, pngSignature...)
	b = append(b, 0, 0, 0, 13)
	b = append(b, "IHDR"...)
	b = append(b, byte(w>>24), byte(w>>16), byte(w>>8), byte(w))
	b = append(b, byte(h>>24), byte(h>>16), byte(h>>8), byte(h))
	return b
}

func cat(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

func TestFrame_Decode(t *testing.T) {
	var (
		title   = Frame{"title", StrategyString}
		comment = Frame{"comment", StrategyComment}
		genre   = Frame{"ctype", StrategyGenre}
		userURL = Frame{"user url", StrategyUserURL}
		opaque  = Frame{"official url", StrategyOpaque}
	)

	tests := []struct {
		name  string
		frame Frame
		body  []byte
		want  string
	}{
		{"latin1 ascii", title, []byte("\x00Hello"), "{ISO-8859-1}Hello"},
		{"latin1 accent", title, []byte("\x00caf\xe9"), "{ISO-8859-1}café"},
		{"latin1 holding utf-8", title, []byte("\x00h\xc3\xa9llo"), "{ISO-8859-1}{BROKEN}{UTF-8}héllo"},
		{"utf-16 le", title, []byte("\x01\xff\xfeH\x00i\x00"), "{UTF-16}Hi"},
		{"utf-16 be bom", title, []byte("\x01\xfe\xff\x00H\x00i"), "{UTF-16}Hi"},
		{"utf-16be", title, []byte("\x02\x00H\x00i"), "{UTF-16BE}Hi"},
		{"utf-8", title, []byte("\x03h\xc3\xa9llo"), "{UTF-8}héllo"},
		{"utf-8 ascii", title, []byte("\x03plain"), "{UTF-8}plain"},
		{"trailing terminator", title, []byte("\x00Hello\x00"), "{ISO-8859-1}Hello"},
		{"empty", title, []byte{0}, "{ISO-8859-1}"},
		{"no body", title, nil, ""},
		{"multi utf-8", title, []byte("\x03a\x00b"), "{UTF-8}a / b"},
		{"multi utf-16 inherits bom", title, []byte("\x01\xff\xfea\x00\x00\x00b\x00"), "{UTF-16}a / b"},
		{"utf-16 terminator with padding", title, []byte{0x01, 0xFF, 0xFE, 'A', 0x00, 0x00, 0x00, 0x00}, "{UTF-16}A"},
		{"utf-16 stray byte after terminator", title, []byte{0x01, 0xFF, 0xFE, 'A', 0x00, 0x00, 0x00, 'x'}, "{UTF-16}A"},
		{"utf-16be cut last unit", title, []byte{0x02, 0x00, 'O', 0x00, 'K', 0x00}, "{UTF-16BE}{HalfByteBroken}OK"},
		{"comment", comment, []byte("\x00engdesc\x00text"), "[eng] {ISO-8859-1}desc / text"},
		{"comment no description", comment, []byte("\x00eng\x00text"), "[eng] {ISO-8859-1}text"},
		{"genre reference", genre, []byte("\x00(17)"), "{ISO-8859-1}(17) {Rock}"},
		{"genre number", genre, []byte("\x0017"), "{ISO-8859-1}17 {Rock}"},
		{"genre name", genre, []byte("\x00Shoegaze"), "{ISO-8859-1}Shoegaze"},
		{"genre multi", genre, []byte("\x0320\x00Jazz"), "{UTF-8}20 {Alternative} / Jazz"},
		{"user url", userURL, []byte("\x00home\x00http://x.org"), "{ISO-8859-1}home <http://x.org>"},
		{"user url no description", userURL, []byte("\x00\x00http://x.org"), "http://x.org"},
		{"url", opaque, []byte("http://x.org"), "http://x.org"},
		{"private owner", opaque, []byte("owner\x00\x01\x02"), "owner"},
		{"binary", opaque, []byte{0x01, 0x02}, "{HEX}0102"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.frame.Decode(tt.body, 3)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFrame_Decode_UnknownEncoding(t *testing.T) {
	got, err := Frame{"title", StrategyString}.Decode([]byte("\x07abc"), 4)
	if got != "(unknown enc) 07" {
		t.Errorf("Decode() = %q", got)
	}
	var ue *types.UnsupportedEncodingError
	if !errors.As(err, &ue) || ue.Encoding != 7 {
		t.Errorf("error = %v, want UnsupportedEncodingError", err)
	}
}

func TestFrame_Decode_Picture(t *testing.T) {
	apic := Frame{"picture", StrategyPicture}
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0xFF, 0xC0, 0x00, 0x11, 0x08, 0x00, 0x64, 0x00, 0xC8, 0x00}

	tests := []struct {
		name  string
		major byte
		body  []byte
		want  string
	}{
		{"apic png", 3, cat([]byte("\x00image/png\x00\x03cover\x00"), pngData(300, 200)),
			"image/png 300x200 [Front cover] cover (24 bytes)"},
		{"apic jpeg", 4, cat([]byte("\x00image/jpeg\x00\x00\x00"), jpeg),
			"image/jpeg 200x100 [Other] (16 bytes)"},
		{"pic png", 2, cat([]byte("\x00PNG\x03\x00"), pngData(1, 1)),
			"image/png 1x1 [Front cover] (24 bytes)"},
		{"undetected format", 3, []byte("\x00image/x-foo\x00\x04\x00abcd"),
			"image/x-foo [Back cover] (4 bytes)"},
		{"odd picture type", 3, []byte("\x00\x00\x63\x00abcd"),
			"image/unknown [type 99] (4 bytes)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := apic.Decode(tt.body, tt.major)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFrame_Decode_BrokenPicture(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		want error
	}{
		{"too short", []byte{0, 'a'}, errPictureTooShort},
		{"mime not terminated", []byte("\x00image/png"), errPictureNoMIMETerm},
		{"no picture type", []byte("\x00png\x00"), errPictureTruncated},
		{"no data", []byte("\x00png\x00\x03desc\x00"), errPictureNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Frame{"picture", StrategyPicture}.Decode(tt.body, 3)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if !strings.HasPrefix(got, "{HEX}") {
				t.Errorf("Decode() = %q, want hex fallback", got)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		major byte
		id    string
		want  string
		ok    bool
	}{
		{2, "TT2", "title", true},
		{2, "PIC", "picture", true},
		{2, "TIT2", "", false},
		{3, "TIT2", "title", true},
		{4, "TIT2", "title", true},
		{4, "APIC", "picture", true},
		{3, "TT2", "", false},
		{4, "ZZZZ", "", false},
	}
	for _, tt := range tests {
		f, ok := Lookup(tt.major, tt.id)
		if ok != tt.ok || f.Name != tt.want {
			t.Errorf("Lookup(%d, %q) = %q, %v; want %q, %v", tt.major, tt.id, f.Name, ok, tt.want, tt.ok)
		}
	}
}

func TestTables_IDLengths(t *testing.T) {
	for id := range framesV22 {
		if len(id) != 3 {
			t.Errorf("v2.2 id %q is not 3 characters", id)
		}
	}
	for id := range framesV23 {
		if len(id) != 4 {
			t.Errorf("v2.3 id %q is not 4 characters", id)
		}
	}
}

func TestStrategy_String(t *testing.T) {
	if got := StrategyOpaque.String(); got != "opaque" {
		t.Errorf("String() = %q", got)
	}
	if got := Strategy(42).String(); got != "unknown" {
		t.Errorf("String() = %q", got)
	}
}
