// Package render turns tag field bytes into printable text.
//
// Rendering never fails. Text whose charset cannot be verified is retried
// with up to two trailing bytes dropped (a fixed-width field often cuts the
// last multi-byte character in half), and anything still undetermined is
// shown as a marked hex dump.
package render

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/simonhull/id3scan/internal/charset"
)

// Markers prefixed to rendered values.
const (
	MarkHalfByte = "{HalfByteBroken}"
	MarkBroken   = "{BROKEN}"
	MarkHex      = "{HEX}"
)

// maxRetries is how many trailing bytes may be dropped to recover a field.
const maxRetries = 2

// MaxHexBytes caps hex dumps; longer runs are cut and the remainder counted.
const MaxHexBytes = 128

// Text renders a field of unknown encoding.
//
// ASCII is returned unchanged. Any other detected charset is converted to
// UTF-8 and prefixed with "{CHARSET}". A field starting with NUL is empty.
func Text(b []byte) string {
	if len(b) == 0 || b[0] == 0 {
		return ""
	}

	d, ok := detect(b)
	if !ok {
		return MarkHex + Hex(b)
	}

	var sb strings.Builder
	if d.dropped > 0 {
		sb.WriteString(MarkHalfByte)
	}
	if d.charset != charset.ASCII {
		sb.WriteString(tag(d.charset))
	}
	sb.WriteString(d.text)
	return sb.String()
}

// Declared renders text whose encoding was declared by the tag itself.
//
// The output starts with "{HINT}". When the detected charset disagrees with
// the hint the text is still shown, decoded with the detected charset and
// marked "{BROKEN}{DETECTED}". A UTF-16BE hint carries no byte-order mark to
// detect from, so it is validated directly, with the same half-byte retries.
func Declared(b []byte, hint charset.Charset) string {
	var sb strings.Builder
	sb.WriteString(tag(hint))

	if hint == charset.UTF16BE {
		for k := 0; k <= maxRetries && k < len(b); k++ {
			text, err := charset.Decode(b[:len(b)-k], hint)
			if err != nil {
				continue
			}
			if k > 0 {
				sb.WriteString(MarkHalfByte)
			}
			sb.WriteString(text)
			return sb.String()
		}
		sb.WriteString(MarkBroken + MarkHex + Hex(b))
		return sb.String()
	}

	if len(b) == 0 || b[0] == 0 {
		return sb.String()
	}

	d, ok := detect(b)
	if !ok {
		sb.WriteString(MarkBroken + MarkHex + Hex(b))
		return sb.String()
	}

	broken := !compatible(hint, d.charset)
	if broken {
		sb.WriteString(MarkBroken)
	}
	if d.dropped > 0 {
		sb.WriteString(MarkHalfByte)
	}
	if broken {
		sb.WriteString(tag(d.charset))
	}
	sb.WriteString(d.text)
	return sb.String()
}

// Opaque renders identifiers, URLs and binary payloads without charset
// detection: printable ASCII as is, anything else as hex.
//
// Like a C string, the text ends at the first NUL byte.
func Opaque(b []byte) string {
	s := b
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	if len(s) > 0 && printable(s) {
		return string(s)
	}
	if len(bytes.Trim(b, "\x00")) == 0 {
		return ""
	}
	return MarkHex + Hex(b)
}

// Hex dumps b as lowercase hex with trailing NUL padding removed.
//
// Dumps longer than MaxHexBytes are cut and end with the count of bytes left
// out, e.g. "00ff...(+300 bytes)".
func Hex(b []byte) string {
	b = bytes.TrimRight(b, "\x00")
	if len(b) <= MaxHexBytes {
		return hex.EncodeToString(b)
	}
	return fmt.Sprintf("%s...(+%d bytes)", hex.EncodeToString(b[:MaxHexBytes]), len(b)-MaxHexBytes)
}

type detection struct {
	text    string
	charset charset.Charset
	dropped int
}

// detect tries b, then b without its last byte, then without its last two.
func detect(b []byte) (detection, bool) {
	for k := 0; k <= maxRetries && k < len(b); k++ {
		run := b[:len(b)-k]
		cs := charset.Detect(run)
		if cs == charset.Undetermined {
			continue
		}
		text, err := charset.Decode(run, cs)
		if err != nil {
			continue
		}
		return detection{text: text, charset: cs, dropped: k}, true
	}
	return detection{}, false
}

// compatible reports whether text detected as got honours a declared hint.
// ASCII text satisfies a Latin-1 or UTF-8 declaration.
func compatible(hint, got charset.Charset) bool {
	if hint == got {
		return true
	}
	return got == charset.ASCII && (hint == charset.ISO8859_1 || hint == charset.UTF8)
}

func tag(c charset.Charset) string {
	return "{" + c.String() + "}"
}

func printable(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}
