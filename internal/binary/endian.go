package binary

import "encoding/binary"

// Synchsafe28 decodes a 4-byte synchsafe integer (7 usable bits per byte).
//
// ID3v2 uses this layout for the tag size in every version, and for frame
// and extended header sizes from version 2.4 on.
//
// Example:
//
//	size := binary.Synchsafe28([]byte{0x00, 0x00, 0x02, 0x01}) // 0x101
func Synchsafe28(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// Direct24 decodes a plain big-endian 24-bit integer.
//
// Given 3 bytes it decodes all of them (ID3v2.2 frame size). Given 4 bytes
// only the low 3 are used, which is how ID3v2.3 frame sizes are read.
//
// Example:
//
//	size := binary.Direct24([]byte{0x00, 0x00, 0x02, 0x01}) // 0x201
func Direct24(b []byte) uint32 {
	switch len(b) {
	case 3:
		return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	case 4:
		return Direct24(b[1:])
	default:
		return 0
	}
}

// Uint32BE decodes a big-endian 32-bit integer, or 0 if b is not 4 bytes long.
func Uint32BE(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// FrameSize decodes an ID3v2 frame size field for the given major version.
//
// Versions below 4 use the direct 24-bit layout, version 4 the synchsafe one.
func FrameSize(major byte, b []byte) uint32 {
	if major < 4 {
		return Direct24(b)
	}
	return Synchsafe28(b)
}
