// Package section implements the fixed-size wire structures of the
// packet stream: the bit-packed 16-bit packet header and the 32-bit
// type-2 length word.
//
// Both are defined over big-endian integers with explicit shift/mask
// extraction; no struct overlay or native bit-field layout is involved,
// so the codec is identical on every platform.
package section

import (
	"encoding/binary"
	"fmt"

	"github.com/fpgakit/xbit/errs"
)

// Packet header field layout within the big-endian 16-bit word.
const (
	HeaderSize = 2 // packet header size in bytes

	TypeShift = 13     // type occupies bits 15..13
	TypeMask  = 0x7    // 3 bits
	OpShift   = 11     // opcode occupies bits 12..11
	OpMask    = 0x3    // 2 bits
	RegShift = 5    // register address occupies bits 10..5
	RegMask  = 0x3F // 6 bits
	WordMask = 0x1F // word count occupies bits 4..0

	TypeBits = 3
	OpBits   = 2
	RegBits  = 6
	WordBits = 5
)

// Type-2 length word.
const (
	LengthSize = 4 // 32-bit big-endian word count field
	WordSize   = 4 // one configuration word in bytes
)

// PacketHeader is the decoded 16-bit packet control word.
type PacketHeader struct {
	// Type is the packet type: 0 NOOP, 1 short-form, 2 long-form.
	Type uint8
	// Opcode is the operation: 0 NOOP, 1 READ, 2 WRITE.
	Opcode uint8
	// RegisterAddress is the 6-bit target register address.
	RegisterAddress uint8
	// WordCount is the 5-bit payload length in words (type-1 only).
	WordCount uint8
}

// ParsePacketHeader decodes a header from the first two bytes of data.
func ParsePacketHeader(data []byte) (PacketHeader, error) {
	if len(data) < HeaderSize {
		return PacketHeader{}, fmt.Errorf("%w: packet header needs %d bytes, have %d",
			errs.ErrTruncatedInput, HeaderSize, len(data))
	}

	word := binary.BigEndian.Uint16(data)

	return PacketHeader{
		Type:            uint8(word >> TypeShift & TypeMask),
		Opcode:          uint8(word >> OpShift & OpMask),
		RegisterAddress: uint8(word >> RegShift & RegMask),
		WordCount:       uint8(word & WordMask),
	}, nil
}

// Bytes serializes the header into its two big-endian wire bytes. Field
// values wider than their bit width are truncated to the field.
func (h PacketHeader) Bytes() []byte {
	word := uint16(h.Type&TypeMask)<<TypeShift |
		uint16(h.Opcode&OpMask)<<OpShift |
		uint16(h.RegisterAddress&RegMask)<<RegShift |
		uint16(h.WordCount&WordMask)

	b := make([]byte, HeaderSize)
	binary.BigEndian.PutUint16(b, word)

	return b
}

// ParseLength decodes the 32-bit big-endian type-2 length word.
func ParseLength(data []byte) (uint32, error) {
	if len(data) < LengthSize {
		return 0, fmt.Errorf("%w: type 2 length field needs %d bytes, have %d",
			errs.ErrTruncatedInput, LengthSize, len(data))
	}

	return binary.BigEndian.Uint32(data), nil
}

// LengthBytes serializes a type-2 length word.
func LengthBytes(wordCount uint32) []byte {
	b := make([]byte, LengthSize)
	binary.BigEndian.PutUint32(b, wordCount)

	return b
}

// TypeName returns the display name for a packet type.
func TypeName(typ uint8) (string, error) {
	switch typ {
	case 0:
		return "NOOP", nil
	case 1:
		return "Type1", nil
	case 2:
		return "Type2", nil
	default:
		return "", fmt.Errorf("%w: %d", errs.ErrUnexpectedPacketType, typ)
	}
}

// OpcodeName returns the display name for an opcode.
func OpcodeName(opcode uint8) (string, error) {
	switch opcode {
	case 0:
		return "NOOP", nil
	case 1:
		return "READ", nil
	case 2:
		return "WRITE", nil
	default:
		return "", fmt.Errorf("%w: opcode %d", errs.ErrUnexpectedPacketType, opcode)
	}
}
