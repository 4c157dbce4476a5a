package id3v2

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/simonhull/id3scan/internal/charset"
	"github.com/simonhull/id3scan/internal/id3v1"
	"github.com/simonhull/id3scan/internal/render"
	"github.com/simonhull/id3scan/internal/types"
)

// Text encoding bytes
const (
	encLatin1  = 0x00
	encUTF16   = 0x01 // with BOM
	encUTF16BE = 0x02 // v2.4 only
	encUTF8    = 0x03 // v2.4 only
)

// multiSeparator joins NUL-separated values of one frame.
const multiSeparator = " / "

// hint returns the charset an encoding byte declares.
func hint(enc byte) (charset.Charset, error) {
	switch enc {
	case encLatin1:
		return charset.ISO8859_1, nil
	case encUTF16:
		return charset.UTF16, nil
	case encUTF16BE:
		return charset.UTF16BE, nil
	case encUTF8:
		return charset.UTF8, nil
	default:
		return charset.Undetermined, &types.UnsupportedEncodingError{Encoding: enc}
	}
}

// Decode renders a frame body according to the entry's strategy.
//
// The returned string is always usable. A non-nil error classifies a body
// that could only be partly decoded.
func (f Frame) Decode(body []byte, major byte) (string, error) {
	switch f.Strategy {
	case StrategyOpaque:
		return render.Opaque(body), nil
	case StrategyPicture:
		return decodePicture(body, major)
	}

	if len(body) == 0 {
		return "", nil
	}

	enc := body[0]
	cs, err := hint(enc)
	if err != nil {
		return fmt.Sprintf("(unknown enc) %02x", enc), err
	}
	data := body[1:]

	switch f.Strategy {
	case StrategyComment:
		return decodeComment(data, enc, cs), nil
	case StrategyUserURL:
		return decodeUserURL(data, enc, cs), nil
	case StrategyGenre:
		return renderText(data, enc, cs, genreRef), nil
	default:
		return renderText(data, enc, cs, nil), nil
	}
}

// decodeComment handles [language(3)][description\0][text].
func decodeComment(data []byte, enc byte, cs charset.Charset) string {
	if len(data) < 3 {
		return render.Opaque(data)
	}
	text := renderText(data[3:], enc, cs, nil)
	return fmt.Sprintf("[%s] %s", render.Opaque(data[:3]), text)
}

// decodeUserURL handles [description\0][url]. The URL is always Latin-1.
func decodeUserURL(data []byte, enc byte, cs charset.Charset) string {
	end := findNullTerminator(data, enc)
	if end < 0 {
		return renderText(data, enc, cs, nil)
	}
	url := render.Opaque(data[end+terminatorSize(enc):])
	if end == 0 {
		return url
	}
	return fmt.Sprintf("%s <%s>", renderText(data[:end], enc, cs, nil), url)
}

// renderText renders every NUL-separated value of a text body.
//
// Each value goes through render.Declared, so the first one carries the
// "{CHARSET}" hint prefix and later ones only their own markers. Empty
// values are skipped. In UTF-16 only the first value is required to carry a
// byte-order mark; later ones without one inherit it.
func renderText(data []byte, enc byte, cs charset.Charset, annotate func(string) string) string {
	prefix := "{" + cs.String() + "}"

	var (
		parts []string
		bom   []byte
	)
	for _, seg := range splitValues(data, enc) {
		if enc == encUTF16 {
			switch {
			case isBOM(seg):
				if bom == nil {
					bom = seg[:2]
				}
			case bom != nil:
				seg = append(bom[:2:2], seg...)
			}
			if len(seg) == 2 && isBOM(seg) {
				continue
			}
		}

		out := render.Declared(seg, cs)
		if len(parts) > 0 {
			out = strings.TrimPrefix(out, prefix)
		}
		if annotate != nil {
			out += annotate(plainText(seg, cs))
		}
		parts = append(parts, out)
	}

	if len(parts) == 0 {
		return prefix
	}
	return strings.Join(parts, multiSeparator)
}

// splitValues cuts data at every encoding-sized terminator, dropping empty
// values.
func splitValues(data []byte, enc byte) [][]byte {
	var out [][]byte
	for len(data) > 0 {
		end := findNullTerminator(data, enc)
		if end < 0 {
			// Writers pad past the last terminator; a NUL tail or a
			// sub-code-unit stub is not a value.
			if !allZero(data) && len(data) >= terminatorSize(enc) {
				out = append(out, data)
			}
			break
		}
		if end > 0 {
			out = append(out, data[:end])
		}
		data = data[end+terminatorSize(enc):]
	}
	return out
}

// plainText decodes seg without any markers, or returns "".
func plainText(seg []byte, cs charset.Charset) string {
	if s, err := charset.Decode(seg, cs); err == nil {
		return s
	}
	if s, err := charset.Decode(seg, charset.Detect(seg)); err == nil {
		return s
	}
	return ""
}

// genreRef names numeric genre references: "(17)" or "17" -> " {Rock}".
func genreRef(text string) string {
	s := text
	if strings.HasPrefix(s, "(") {
		end := strings.IndexByte(s, ')')
		if end < 0 {
			return ""
		}
		s = s[1:end]
	}
	code, err := strconv.Atoi(s)
	if err != nil || code < 0 || code > 0xFF {
		return ""
	}
	return " {" + id3v1.GenreName(byte(code)) + "}"
}

// findNullTerminator finds the null terminator based on encoding
func findNullTerminator(data []byte, encoding byte) int {
	switch encoding {
	case encUTF16, encUTF16BE: // double-byte null
		for i := 0; i < len(data)-1; i += 2 {
			if data[i] == 0 && data[i+1] == 0 {
				return i
			}
		}
		return -1

	default:
		return bytes.IndexByte(data, 0)
	}
}

// terminatorSize returns the size of the null terminator for the encoding
func terminatorSize(encoding byte) int {
	switch encoding {
	case encUTF16, encUTF16BE:
		return 2
	default:
		return 1
	}
}

func isBOM(b []byte) bool {
	return len(b) >= 2 &&
		((b[0] == 0xFF && b[1] == 0xFE) || (b[0] == 0xFE && b[1] == 0xFF))
}
