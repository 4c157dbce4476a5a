package id3v2

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/simonhull/id3scan/internal/render"
)

var (
	errPictureTooShort   = errors.New("picture frame too short")
	errPictureNoMIMETerm = errors.New("picture MIME type not null-terminated")
	errPictureTruncated  = errors.New("picture frame truncated after MIME type")
	errPictureNoData     = errors.New("picture frame has no image data")
)

// pictureTypes names the APIC/PIC picture type byte.
var pictureTypes = [...]string{
	"Other",
	"File icon",
	"Other file icon",
	"Front cover",
	"Back cover",
	"Leaflet page",
	"Media",
	"Lead artist",
	"Artist",
	"Conductor",
	"Band",
	"Composer",
	"Lyricist",
	"Recording location",
	"During recording",
	"During performance",
	"Video capture",
	"A bright colored fish",
	"Illustration",
	"Band logotype",
	"Publisher logotype",
}

// picture is the summary of an attached picture frame.
type picture struct {
	MIMEType    string
	Description string
	Type        byte
	Width       int
	Height      int
	Length      int
}

func (p picture) String() string {
	var sb strings.Builder
	sb.WriteString(p.MIMEType)
	if p.Width > 0 && p.Height > 0 {
		fmt.Fprintf(&sb, " %dx%d", p.Width, p.Height)
	}
	fmt.Fprintf(&sb, " [%s]", pictureTypeName(p.Type))
	if p.Description != "" {
		sb.WriteString(" " + p.Description)
	}
	fmt.Fprintf(&sb, " (%d bytes)", p.Length)
	return sb.String()
}

func pictureTypeName(t byte) string {
	if int(t) < len(pictureTypes) {
		return pictureTypes[t]
	}
	return fmt.Sprintf("type %d", t)
}

// decodePicture summarises an APIC (v2.3/v2.4) or PIC (v2.2) body.
// Format:
//
//	[1 byte]              Text encoding
//	[null-terminated]     MIME type (APIC) or [3 bytes] image format (PIC)
//	[1 byte]              Picture type
//	[null-terminated]     Description
//	[remaining]           Picture data
//
// A body that does not parse is shown as hex along with the reason.
func decodePicture(body []byte, major byte) (string, error) {
	p, err := parsePicture(body, major)
	if err != nil {
		return render.MarkHex + render.Hex(body), err
	}
	return p.String(), nil
}

func parsePicture(data []byte, major byte) (picture, error) {
	if len(data) < 4 {
		return picture{}, errPictureTooShort
	}

	encoding := data[0]
	pos := 1

	var mimeType string
	if major == 2 {
		mimeType = string(data[pos : pos+3])
		pos += 3
	} else {
		// Always ISO-8859-1
		mimeEnd := bytes.IndexByte(data[pos:], 0)
		if mimeEnd < 0 {
			return picture{}, errPictureNoMIMETerm
		}
		mimeType = string(data[pos : pos+mimeEnd])
		pos += mimeEnd + 1
	}

	// Handle legacy MIME type markers
	switch strings.ToLower(mimeType) {
	case "jpg":
		mimeType = "image/jpeg"
	case "png":
		mimeType = "image/png"
	case "", "-->":
		mimeType = "image/unknown"
	}

	if pos >= len(data) {
		return picture{}, errPictureTruncated
	}

	pictureType := data[pos]
	pos++

	// Some encoders don't null-terminate the description; the rest is
	// then taken as image data.
	description := ""
	if descEnd := findNullTerminator(data[pos:], encoding); descEnd >= 0 {
		description = render.Text(data[pos : pos+descEnd])
		pos += descEnd + terminatorSize(encoding)
	}

	if pos >= len(data) {
		return picture{}, errPictureNoData
	}

	imageData := data[pos:]
	if detected := detectMIMEType(imageData); detected != "" {
		mimeType = detected
	}
	width, height := detectImageDimensions(imageData, mimeType)

	return picture{
		MIMEType:    mimeType,
		Description: description,
		Type:        pictureType,
		Width:       width,
		Height:      height,
		Length:      len(imageData),
	}, nil
}

// detectMIMEType detects image MIME type from magic bytes.
func detectMIMEType(data []byte) string {
	if len(data) < 4 {
		return ""
	}

	switch {
	case data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "image/jpeg"
	case data[0] == 0x89 && data[1] == 'P' && data[2] == 'N' && data[3] == 'G':
		return "image/png"
	case data[0] == 'G' && data[1] == 'I' && data[2] == 'F':
		return "image/gif"
	case data[0] == 'B' && data[1] == 'M':
		return "image/bmp"
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return "image/webp"
	}
	return ""
}

// detectImageDimensions extracts width/height from image data.
func detectImageDimensions(data []byte, mimeType string) (int, int) {
	switch mimeType {
	case "image/jpeg":
		return detectJPEGDimensions(data)
	case "image/png":
		return detectPNGDimensions(data)
	default:
		return 0, 0
	}
}

// detectJPEGDimensions scans for a baseline, extended or progressive
// start-of-frame marker: FF Cn [2 len] [1 precision] [2 height] [2 width].
func detectJPEGDimensions(data []byte) (int, int) {
	for i := 0; i+9 <= len(data); i++ {
		if data[i] != 0xFF {
			continue
		}
		switch data[i+1] {
		case 0xC0, 0xC1, 0xC2:
			height := int(data[i+5])<<8 | int(data[i+6])
			width := int(data[i+7])<<8 | int(data[i+8])
			return width, height
		}
	}
	return 0, 0
}

var pngSignature = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// detectPNGDimensions reads the IHDR chunk that follows the 8-byte
// signature: [4 len] [4 "IHDR"] [4 width] [4 height].
func detectPNGDimensions(data []byte) (int, int) {
	if len(data) < 24 || !bytes.HasPrefix(data, pngSignature) {
		return 0, 0
	}
	width := int(data[16])<<24 | int(data[17])<<16 | int(data[18])<<8 | int(data[19])
	height := int(data[20])<<24 | int(data[21])<<16 | int(data[22])<<8 | int(data[23])
	return width, height
}
