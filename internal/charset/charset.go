// Package charset detects which text encoding plausibly produced a byte run.
//
// Detection is verification, not guessing: a candidate encoding is accepted
// only if the bytes decode under it without a replacement character. UTF-16
// must also encode back to the same bytes.
// Candidates are tried from the strictest to the most permissive, so valid
// UTF-8 or Shift_JIS text is never misreported as Latin-1.
package charset

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset is a text encoding the detector knows about.
type Charset int

const (
	// Undetermined means no candidate encoding validated.
	Undetermined Charset = iota
	// ASCII is printable 7-bit text (0x20-0x7E).
	ASCII
	// UTF8 is UTF-8.
	UTF8
	// UTF16 is UTF-16 introduced by a byte-order mark.
	UTF16
	// CP932 is Microsoft's Shift_JIS variant.
	CP932
	// ISO8859_1 is Latin-1, the permissive fallback.
	ISO8859_1
	// UTF16BE is BOM-less big-endian UTF-16 (ID3v2.4 encoding byte 2).
	// Detect never returns it; it is only ever declared.
	UTF16BE
)

func (c Charset) String() string {
	switch c {
	case ASCII:
		return "ASCII"
	case UTF8:
		return "UTF-8"
	case UTF16:
		return "UTF-16"
	case CP932:
		return "CP932"
	case ISO8859_1:
		return "ISO-8859-1"
	case UTF16BE:
		return "UTF-16BE"
	case Undetermined:
		return "undetermined"
	default:
		return fmt.Sprintf("Charset(%d)", int(c))
	}
}

// ErrInvalid is returned by Decode when b does not validate under the charset.
var ErrInvalid = errors.New("charset: bytes do not validate")

// Detect returns the first charset that validates b, or Undetermined.
//
// b is the exact field: NUL padding and embedded NULs included. The narrow
// charsets (ASCII, UTF-8, CP932, ISO-8859-1) only see b up to its first NUL.
// UTF-16 sees all of b, because NUL bytes are part of UTF-16 text, and it
// must start with a byte-order mark. A run that starts with a byte-order
// mark is never considered narrow text.
func Detect(b []byte) Charset {
	narrow := !hasBOM(b)
	s := cstring(b)

	switch {
	case narrow && isASCII(s):
		return ASCII
	case narrow && utf8.Valid(s):
		return UTF8
	case narrow && decodesCleanly(japanese.ShiftJIS, s):
		return CP932
	case validUTF16(b):
		return UTF16
	case narrow && isLatin1(s):
		return ISO8859_1
	}
	return Undetermined
}

// Valid reports whether b validates under c.
func Valid(b []byte, c Charset) bool {
	switch c {
	case ASCII:
		return !hasBOM(b) && isASCII(cstring(b))
	case UTF8:
		return !hasBOM(b) && utf8.Valid(cstring(b))
	case CP932:
		return !hasBOM(b) && decodesCleanly(japanese.ShiftJIS, cstring(b))
	case ISO8859_1:
		return !hasBOM(b) && isLatin1(cstring(b))
	case UTF16:
		return validUTF16(b)
	case UTF16BE:
		return len(b)%2 == 0 && roundTrips(utf16BE, b)
	default:
		return false
	}
}

// Decode converts b from c into a UTF-8 string.
//
// Text stops at the first NUL character, and byte-order marks are dropped.
// ErrInvalid is returned when b does not validate under c.
func Decode(b []byte, c Charset) (string, error) {
	if !Valid(b, c) {
		return "", fmt.Errorf("decode %s: %w", c, ErrInvalid)
	}

	switch c {
	case ASCII, UTF8:
		return string(cstring(b)), nil
	case CP932:
		return decodeWith(japanese.ShiftJIS, cstring(b))
	case ISO8859_1:
		return decodeWith(charmap.ISO8859_1, cstring(b))
	case UTF16:
		enc := utf16BE
		if b[0] == 0xFF {
			enc = utf16LE
		}
		return decodeWith(enc, b[2:])
	case UTF16BE:
		return decodeWith(utf16BE, b)
	default:
		return "", fmt.Errorf("decode %s: %w", c, ErrInvalid)
	}
}

var (
	utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
)

func decodeWith(enc encoding.Encoding, b []byte) (string, error) {
	out, _, err := transform.Bytes(enc.NewDecoder(), b)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	text := string(out)
	if i := strings.IndexByte(text, 0); i >= 0 {
		text = text[:i]
	}
	return strings.ReplaceAll(text, "\ufeff", ""), nil
}

// roundTrips reports whether b decodes under enc and encodes back to b.
//
// x/text decoders substitute U+FFFD for invalid input instead of failing,
// so comparing the re-encoded bytes is what catches malformed sequences.
func roundTrips(enc encoding.Encoding, b []byte) bool {
	decoded, _, err := transform.Bytes(enc.NewDecoder(), b)
	if err != nil {
		return false
	}
	encoded, _, err := transform.Bytes(enc.NewEncoder(), decoded)
	if err != nil {
		return false
	}
	return bytes.Equal(encoded, b)
}

// decodesCleanly reports whether b decodes under enc with every byte mapped.
//
// Shift_JIS has several byte pairs for one character (the NEC and IBM
// extension rows), and the encoder only writes one of them, so a byte-exact
// round trip would reject valid CP932 text.
func decodesCleanly(enc encoding.Encoding, b []byte) bool {
	decoded, _, err := transform.Bytes(enc.NewDecoder(), b)
	if err != nil {
		return false
	}
	return !bytes.ContainsRune(decoded, utf8.RuneError)
}

func validUTF16(b []byte) bool {
	if !hasBOM(b) || len(b)%2 != 0 {
		return false
	}
	enc := utf16BE
	if b[0] == 0xFF {
		enc = utf16LE
	}
	return roundTrips(enc, b[2:])
}

func hasBOM(b []byte) bool {
	return len(b) >= 2 &&
		((b[0] == 0xFF && b[1] == 0xFE) || (b[0] == 0xFE && b[1] == 0xFF))
}

// cstring returns b up to, not including, its first NUL byte.
func cstring(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}

func isLatin1(b []byte) bool {
	for _, c := range b {
		if (c < 0x20 || c > 0x7E) && c < 0xA0 {
			return false
		}
	}
	return true
}
